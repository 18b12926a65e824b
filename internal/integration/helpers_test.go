package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(&c)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		return k == "timestamp" || k == "requestId" || k == "createdAt"
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

// resetState empties every table and the response cache, so each scenario
// starts from a blank catalog. Sessions live in redis too, so scenarios mint
// their cookies after calling this.
func resetState(t testing.TB, app *TestApp) {
	t.Helper()

	_, err := app.DB.Exec(context.Background(),
		`TRUNCATE genres, movies, theaters RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	require.NoError(t, app.Redis.FlushAll(context.Background()).Err())
}

// sessionCookie commits a session carrying the given identity and returns the
// cookie the application's session middleware will accept.
func sessionCookie(t testing.TB, app *TestApp, userId int, isAdmin bool) http.Cookie {
	t.Helper()

	ctx, err := app.Sessions.Load(context.Background(), "")
	require.NoError(t, err)

	app.Sessions.Put(ctx, "userID", userId)
	if isAdmin {
		app.Sessions.Put(ctx, "isAdmin", true)
	}

	token, _, err := app.Sessions.Commit(ctx)
	require.NoError(t, err)

	return http.Cookie{Name: "session_id", Value: token}
}

type testMovie struct {
	Title       string
	Overview    string
	TrailerUrl  string
	PosterUrl   string
	ReleaseDate time.Time
}

func defaultTestMovie() testMovie {
	return testMovie{
		Title:       TestMovieTitle,
		Overview:    TestMovieOverview,
		TrailerUrl:  TestMovieTrailerUrl,
		PosterUrl:   TestMoviePosterUrl,
		ReleaseDate: time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour),
	}
}

func insertTestGenre(t testing.TB, db *pgxpool.Pool, name string) int {
	t.Helper()

	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO genres (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertTestMovie(t testing.TB, db *pgxpool.Pool, m testMovie) int {
	t.Helper()

	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO movies (title, overview, trailer_url, poster_url, release_date)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		m.Title, m.Overview, m.TrailerUrl, m.PosterUrl, m.ReleaseDate).Scan(&id)
	require.NoError(t, err)

	return id
}

func linkMovieGenre(t testing.TB, db *pgxpool.Pool, movieId, genreId int) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1, $2)`, movieId, genreId)
	require.NoError(t, err)
}

func insertTestTheater(t testing.TB, db *pgxpool.Pool, name string, long, lat float64) int {
	t.Helper()

	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO theaters (name, address, city, district, location)
		 VALUES ($1, '1 Main St', 'Istanbul', 'Kadikoy', ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography)
		 RETURNING id`,
		name, long, lat).Scan(&id)
	require.NoError(t, err)

	return id
}

func linkMovieTheater(t testing.TB, db *pgxpool.Pool, movieId, theaterId int) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`INSERT INTO movie_theaters (movie_id, theater_id) VALUES ($1, $2)`, movieId, theaterId)
	require.NoError(t, err)
}

func insertTestRating(t testing.TB, db *pgxpool.Pool, movieId, userId, score int) int {
	t.Helper()

	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO ratings (movie_id, user_id, score) VALUES ($1, $2, $3) RETURNING id`,
		movieId, userId, score).Scan(&id)
	require.NoError(t, err)

	return id
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	script, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(script))
	require.NoError(t, err)
}
