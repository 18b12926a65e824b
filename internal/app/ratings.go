package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/metinatakli/movies-catalog-api/api"
	"github.com/metinatakli/movies-catalog-api/internal/cache"
	"github.com/metinatakli/movies-catalog-api/internal/domain"
	"github.com/metinatakli/movies-catalog-api/internal/service"
)

func (app *Application) ListRatings(w http.ResponseWriter, r *http.Request) {
	params, err := parseGetRatingsParams(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(params); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	pagination := app.paginationFrom(params.Page, params.PageSize)

	key := cache.Key(service.RatingsTag, r.URL.Path, r.URL.Query())

	ratings, metadata, err := app.ratings.List(r.Context(), key, *params.MovieId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.RatingListResponse{
		Ratings:  make([]api.RatingResponse, len(ratings)),
		Metadata: toMetadata(metadata),
	}
	for i, rating := range ratings {
		resp.Ratings[i] = toRatingResponse(rating)
	}

	headers := make(http.Header)
	headers.Set(totalRecordsHeader, strconv.Itoa(metadata.TotalRecords))

	err = app.writeJSON(w, http.StatusOK, resp, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CreateRating records the caller's score for a movie. Repeated submissions
// by the same user overwrite the earlier score rather than conflict.
func (app *Application) CreateRating(w http.ResponseWriter, r *http.Request) {
	var req api.RatingRequest

	if err := app.readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(req); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	rating := domain.Rating{
		MovieID: req.MovieId,
		UserID:  app.contextGetUserId(r),
		Score:   req.Score,
	}

	err := app.ratings.Rate(r.Context(), &rating)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, errors.New("the movie does not exist"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toRatingResponse(&rating), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteRating(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.ratings.Delete(r.Context(), id, app.contextGetUserId(r), app.contextIsAdmin(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrNotPermitted):
			app.forbiddenResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseGetRatingsParams(r *http.Request) (api.GetRatingsParams, error) {
	var params api.GetRatingsParams
	var err error

	if params.MovieId, err = readIntQuery(r, "movieId"); err != nil {
		return params, err
	}
	if params.Page, err = readIntQuery(r, "page"); err != nil {
		return params, err
	}
	if params.PageSize, err = readIntQuery(r, "pageSize"); err != nil {
		return params, err
	}

	return params, nil
}

func toRatingResponse(rating *domain.Rating) api.RatingResponse {
	return api.RatingResponse{
		Id:        rating.ID,
		MovieId:   rating.MovieID,
		UserId:    rating.UserID,
		Score:     rating.Score,
		CreatedAt: rating.CreatedAt,
	}
}
