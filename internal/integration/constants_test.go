package integration_test

const (
	dbName         = "movies_catalog"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	cacheImageName = "redis:7"

	// User identities the auth middleware reads from the session.
	TestUserId  = 1
	TestAdminId = 2

	// Movie fixtures
	TestMovieTitle      = "Test Movie"
	TestMovieOverview   = "A test movie overview."
	TestMovieTrailerUrl = "https://example.com/trailer"
	TestMoviePosterUrl  = "https://example.com/poster.jpg"

	// Theater fixtures. Coordinates are in central Istanbul.
	TestTheaterName = "City Cinema"
	TestTheaterLat  = 41.0082
	TestTheaterLong = 28.9784
)
