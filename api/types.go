// Package api holds the request and response types of the HTTP surface.
package api

import "time"

// MovieStatus indicates whether a movie is currently showing or upcoming.
type MovieStatus string

const (
	NOWSHOWING MovieStatus = "NOW_SHOWING"
	COMINGSOON MovieStatus = "COMING_SOON"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type GenreResponse struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type GenreRequest struct {
	Id   int    `json:"id"`
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// GetMoviesParams carries the optional filter and pagination query parameters
// of GET /movies. Pointer fields distinguish absent from zero.
type GetMoviesParams struct {
	Page       *int    `validate:"omitempty,gt=0"`
	PageSize   *int    `validate:"omitempty,gt=0"`
	Title      *string `validate:"omitempty,max=200"`
	GenreId    *int    `validate:"omitempty,gt=0"`
	InCinemas  *bool
	ComingSoon *bool
}

type MovieSummary struct {
	Id          int         `json:"id"`
	Title       string      `json:"title"`
	PosterUrl   string      `json:"posterUrl,omitempty"`
	ReleaseDate time.Time   `json:"releaseDate"`
	Status      MovieStatus `json:"status"`
}

type MovieListResponse struct {
	Movies   []MovieSummary `json:"movies"`
	Metadata *Metadata      `json:"metadata,omitempty"`
}

type MovieDetailResponse struct {
	Id          int             `json:"id"`
	Title       string          `json:"title"`
	Overview    string          `json:"overview,omitempty"`
	TrailerUrl  string          `json:"trailerUrl,omitempty"`
	PosterUrl   string          `json:"posterUrl,omitempty"`
	ReleaseDate time.Time       `json:"releaseDate"`
	Status      MovieStatus     `json:"status"`
	Genres      []GenreResponse `json:"genres"`
	AvgRating   string          `json:"avgRating"`
	RatingCount int             `json:"ratingCount"`
}

// MovieRequest is the JSON body of PUT /movies/{id}. POST /movies accepts the
// same fields as multipart form values alongside the optional poster file.
type MovieRequest struct {
	Id          int       `json:"id"`
	Title       string    `json:"title" validate:"required,notblank,max=200"`
	Overview    string    `json:"overview" validate:"max=2000"`
	TrailerUrl  string    `json:"trailerUrl" validate:"omitempty,url"`
	ReleaseDate time.Time `json:"releaseDate" validate:"required"`
	GenreIds    []int     `json:"genreIds" validate:"omitempty,dive,gt=0"`
}

type GetRatingsParams struct {
	MovieId  *int `validate:"required,gt=0"`
	Page     *int `validate:"omitempty,gt=0"`
	PageSize *int `validate:"omitempty,gt=0"`
}

type RatingRequest struct {
	MovieId int `json:"movieId" validate:"required,gt=0"`
	Score   int `json:"score" validate:"required,min=1,max=5"`
}

type RatingResponse struct {
	Id        int       `json:"id"`
	MovieId   int       `json:"movieId"`
	UserId    int       `json:"userId"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

type RatingListResponse struct {
	Ratings  []RatingResponse `json:"ratings"`
	Metadata *Metadata        `json:"metadata,omitempty"`
}

type GetMovieTheatersParams struct {
	Latitude  *float64 `validate:"required,min=-90,max=90"`
	Longitude *float64 `validate:"required,min=-180,max=180"`
	Page      *int     `validate:"omitempty,gt=0"`
	PageSize  *int     `validate:"omitempty,gt=0"`
}

type TheaterResponse struct {
	Id         int     `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	District   string  `json:"district"`
	DistanceKm float64 `json:"distanceKm"`
}

type TheaterListResponse struct {
	Theaters []TheaterResponse `json:"theaters"`
	Metadata *Metadata         `json:"metadata,omitempty"`
}
