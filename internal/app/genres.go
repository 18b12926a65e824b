package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/movies-catalog-api/api"
	"github.com/metinatakli/movies-catalog-api/internal/cache"
	"github.com/metinatakli/movies-catalog-api/internal/domain"
	"github.com/metinatakli/movies-catalog-api/internal/service"
)

func (app *Application) ListGenres(w http.ResponseWriter, r *http.Request) {
	key := cache.Key(service.GenresTag, r.URL.Path, r.URL.Query())

	genres, err := app.genres.List(r.Context(), key)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.GenreResponse, len(genres))
	for i, genre := range genres {
		resp[i] = toGenreResponse(genre)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	key := cache.Key(service.GenresTag, r.URL.Path, r.URL.Query())

	genre, err := app.genres.Get(r.Context(), key, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toGenreResponse(*genre), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req api.GenreRequest

	if err := app.readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(req); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	genre := domain.Genre{Name: req.Name}

	err := app.genres.Create(r.Context(), &genre)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateGenre):
			app.badRequestResponse(w, r, fmt.Errorf("the genre with the name %s exists already", genre.Name))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toGenreResponse(genre), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req api.GenreRequest

	if err := app.readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(req); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	genre := domain.Genre{ID: req.Id, Name: req.Name}

	err = app.genres.Update(r.Context(), id, &genre)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIDMismatch):
			app.badRequestResponse(w, r, errors.New("ID mismatch"))
		case errors.Is(err, domain.ErrDuplicateGenre):
			app.badRequestResponse(w, r, fmt.Errorf("the genre with the name %s exists already", genre.Name))
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.genres.Delete(r.Context(), id)
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

func toGenreResponse(genre domain.Genre) api.GenreResponse {
	return api.GenreResponse{
		Id:   genre.ID,
		Name: genre.Name,
	}
}
