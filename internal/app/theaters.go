package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/metinatakli/movies-catalog-api/api"
	"github.com/metinatakli/movies-catalog-api/internal/domain"
)

// GetMovieTheaters lists the theaters screening a movie within the search
// radius of the caller's coordinates, nearest first. Results depend on the
// caller's location, so they bypass the response cache.
func (app *Application) GetMovieTheaters(w http.ResponseWriter, r *http.Request) {
	movieID, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	params, err := parseGetMovieTheatersParams(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(params); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	pagination := app.paginationFrom(params.Page, params.PageSize)

	theaters, metadata, err := app.theaters.Search(
		r.Context(), movieID, *params.Longitude, *params.Latitude, pagination)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := api.TheaterListResponse{
		Theaters: make([]api.TheaterResponse, len(theaters)),
		Metadata: toMetadata(metadata),
	}
	for i, theater := range theaters {
		resp.Theaters[i] = toTheaterResponse(theater)
	}

	headers := make(http.Header)
	headers.Set(totalRecordsHeader, strconv.Itoa(metadata.TotalRecords))

	err = app.writeJSON(w, http.StatusOK, resp, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func parseGetMovieTheatersParams(r *http.Request) (api.GetMovieTheatersParams, error) {
	var params api.GetMovieTheatersParams
	var err error

	if params.Latitude, err = readFloatQuery(r, "latitude"); err != nil {
		return params, err
	}
	if params.Longitude, err = readFloatQuery(r, "longitude"); err != nil {
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

func toTheaterResponse(theater domain.Theater) api.TheaterResponse {
	return api.TheaterResponse{
		Id:         theater.ID,
		Name:       theater.Name,
		Address:    theater.Address,
		City:       theater.City,
		District:   theater.District,
		DistanceKm: theater.Distance,
	}
}
