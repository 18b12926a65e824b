package app

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/metinatakli/movies-catalog-api/api"
	"github.com/metinatakli/movies-catalog-api/internal/cache"
	"github.com/metinatakli/movies-catalog-api/internal/domain"
	"github.com/metinatakli/movies-catalog-api/internal/service"
	"github.com/shopspring/decimal"
)

const (
	defaultPage     = 1
	defaultPageSize = 10

	// maxPosterBytes bounds the multipart poster upload of POST /movies.
	maxPosterBytes = 5 << 20
)

// totalRecordsHeader exposes the total match count of a filtered listing out
// of band, so the body stays a plain collection.
const totalRecordsHeader = "Total-Records-Quantity"

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request) {
	params, err := parseGetMoviesParams(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(params); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := app.toMovieFilters(params)

	key := cache.Key(service.MoviesTag, r.URL.Path, r.URL.Query())

	movies, metadata, err := app.movies.List(r.Context(), key, filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   make([]api.MovieSummary, len(movies)),
		Metadata: toMetadata(metadata),
	}
	for i, movie := range movies {
		resp.Movies[i] = toMovieSummary(movie)
	}

	headers := make(http.Header)
	headers.Set(totalRecordsHeader, strconv.Itoa(metadata.TotalRecords))

	err = app.writeJSON(w, http.StatusOK, resp, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	key := cache.Key(service.MoviesTag, r.URL.Path, r.URL.Query())

	movie, err := app.movies.Get(r.Context(), key, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp, err := toMovieDetailResponse(movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CreateMovie accepts a multipart form: the movie fields as form values and
// an optional poster archive under the "poster" part.
func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPosterBytes)

	err := r.ParseMultipartForm(maxPosterBytes)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	req, err := parseMovieForm(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(req); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	poster, err := readPosterFile(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie := toMovie(req)

	err = app.movies.Create(r.Context(), &movie, poster)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, errors.New("one or more genres do not exist"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieSummary(&movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req api.MovieRequest

	if err := app.readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(req); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie := toMovie(req)

	err = app.movies.Update(r.Context(), id, &movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIDMismatch):
			app.badRequestResponse(w, r, errors.New("ID mismatch"))
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.movies.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseGetMoviesParams(r *http.Request) (api.GetMoviesParams, error) {
	var params api.GetMoviesParams
	var err error

	if params.Page, err = readIntQuery(r, "page"); err != nil {
		return params, err
	}
	if params.PageSize, err = readIntQuery(r, "pageSize"); err != nil {
		return params, err
	}
	if params.GenreId, err = readIntQuery(r, "genreId"); err != nil {
		return params, err
	}
	if params.InCinemas, err = readBoolQuery(r, "inCinemas"); err != nil {
		return params, err
	}
	if params.ComingSoon, err = readBoolQuery(r, "comingSoon"); err != nil {
		return params, err
	}
	params.Title = readStringQuery(r, "title")

	return params, nil
}

// toMovieFilters applies pagination defaults and clamps pageSize to the
// configured upper bound.
func (app *Application) toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	filters := domain.MovieFilters{
		Page:     defaultPage,
		PageSize: defaultPageSize,
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = min(*params.PageSize, app.config.MaxPageSize)
	}
	if params.Title != nil {
		filters.Title = *params.Title
	}
	if params.GenreId != nil {
		filters.GenreID = *params.GenreId
	}
	if params.InCinemas != nil {
		filters.InCinemas = *params.InCinemas
	}
	if params.ComingSoon != nil {
		filters.ComingSoon = *params.ComingSoon
	}

	return filters
}

func (app *Application) paginationFrom(page, pageSize *int) domain.Pagination {
	pagination := domain.Pagination{
		Page:     defaultPage,
		PageSize: defaultPageSize,
	}

	if page != nil {
		pagination.Page = *page
	}
	if pageSize != nil {
		pagination.PageSize = min(*pageSize, app.config.MaxPageSize)
	}

	return pagination
}

func parseMovieForm(r *http.Request) (api.MovieRequest, error) {
	var req api.MovieRequest
	var err error

	req.Title = r.FormValue("title")
	req.Overview = r.FormValue("overview")
	req.TrailerUrl = r.FormValue("trailerUrl")

	if v := r.FormValue("releaseDate"); v != "" {
		req.ReleaseDate, err = time.Parse("2006-01-02", v)
		if err != nil {
			return req, fmt.Errorf("invalid releaseDate: %w", err)
		}
	}

	for _, v := range r.Form["genreIds"] {
		id, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("invalid genreIds value %q", v)
		}
		req.GenreIds = append(req.GenreIds, id)
	}

	return req, nil
}

func readPosterFile(r *http.Request) (*domain.File, error) {
	file, header, err := r.FormFile("poster")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &domain.File{
		Name:        header.Filename,
		ContentType: posterContentType(header),
		Data:        data,
	}, nil
}

func posterContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func toMovie(req api.MovieRequest) domain.Movie {
	return domain.Movie{
		ID:          req.Id,
		Title:       req.Title,
		Overview:    req.Overview,
		TrailerUrl:  req.TrailerUrl,
		ReleaseDate: req.ReleaseDate,
		GenreIDs:    req.GenreIds,
	}
}

func toMovieSummary(movie *domain.Movie) api.MovieSummary {
	return api.MovieSummary{
		Id:          movie.ID,
		Title:       movie.Title,
		PosterUrl:   movie.PosterUrl,
		ReleaseDate: movie.ReleaseDate,
		Status:      movieStatus(movie.ReleaseDate),
	}
}

func toMovieDetailResponse(movie *domain.Movie) (api.MovieDetailResponse, error) {
	avgRating, err := formatAvgRating(movie)
	if err != nil {
		return api.MovieDetailResponse{}, err
	}

	genres := make([]api.GenreResponse, len(movie.Genres))
	for i, genre := range movie.Genres {
		genres[i] = toGenreResponse(genre)
	}

	return api.MovieDetailResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Overview:    movie.Overview,
		TrailerUrl:  movie.TrailerUrl,
		PosterUrl:   movie.PosterUrl,
		ReleaseDate: movie.ReleaseDate,
		Status:      movieStatus(movie.ReleaseDate),
		Genres:      genres,
		AvgRating:   avgRating,
		RatingCount: movie.RatingCount,
	}, nil
}

func formatAvgRating(movie *domain.Movie) (string, error) {
	if !movie.AvgRating.Valid {
		return "0", nil
	}

	val, err := movie.AvgRating.Float64Value()
	if err != nil {
		return "", err
	}

	return decimal.NewFromFloat(val.Float64).Round(1).String(), nil
}

// movieStatus derives the presentation status from the release date alone.
func movieStatus(releaseDate time.Time) api.MovieStatus {
	if releaseDate.After(time.Now()) {
		return api.COMINGSOON
	}
	return api.NOWSHOWING
}

func toMetadata(metadata *domain.Metadata) *api.Metadata {
	if metadata == nil {
		return nil
	}

	return &api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
