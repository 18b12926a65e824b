package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/movies-catalog-api/api"
	"github.com/metinatakli/movies-catalog-api/internal/domain"
	"github.com/metinatakli/movies-catalog-api/internal/mocks"
)

func TestGetMovieTheaters(t *testing.T) {
	theaters := []domain.Theater{
		{ID: 1, Name: "City Cinema", Address: "1 Main St", City: "Istanbul", District: "Kadikoy", Distance: 1.2},
		{ID: 2, Name: "Grand Theater", Address: "5 High St", City: "Istanbul", District: "Besiktas", Distance: 7.8},
	}

	tests := []struct {
		name            string
		id              string
		url             string
		existsFunc      func(ctx context.Context, id int) (bool, error)
		getTheatersFunc func(ctx context.Context, movieID int, long, lat float64, pagination domain.Pagination) ([]domain.Theater, *domain.Metadata, error)
		wantStatus      int
		wantErrMessage  string
		wantResponse    *api.TheaterListResponse
	}{
		{
			name: "successful retrieval ordered by distance",
			id:   "1",
			url:  "/movies/1/theaters?latitude=41.0&longitude=29.0",
			existsFunc: func(ctx context.Context, id int) (bool, error) {
				return true, nil
			},
			getTheatersFunc: func(ctx context.Context, movieID int, long, lat float64, pagination domain.Pagination) ([]domain.Theater, *domain.Metadata, error) {
				if movieID != 1 || long != 29.0 || lat != 41.0 {
					t.Errorf("got movieID=%d long=%v lat=%v", movieID, long, lat)
				}

				return theaters, domain.NewMetadata(2, 1, 10), nil
			},
			wantStatus: http.StatusOK,
			wantResponse: &api.TheaterListResponse{
				Theaters: []api.TheaterResponse{
					{Id: 1, Name: "City Cinema", Address: "1 Main St", City: "Istanbul", District: "Kadikoy", DistanceKm: 1.2},
					{Id: 2, Name: "Grand Theater", Address: "5 High St", City: "Istanbul", District: "Besiktas", DistanceKm: 7.8},
				},
				Metadata: &api.Metadata{CurrentPage: 1, FirstPage: 1, LastPage: 1, PageSize: 10, TotalRecords: 2},
			},
		},
		{
			name:           "validation error - missing coordinates",
			id:             "1",
			url:            "/movies/1/theaters",
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:           "validation error - latitude out of range",
			id:             "1",
			url:            "/movies/1/theaters?latitude=91.0&longitude=29.0",
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at most 90",
		},
		{
			name: "movie not found",
			id:   "99",
			url:  "/movies/99/theaters?latitude=41.0&longitude=29.0",
			existsFunc: func(ctx context.Context, id int) (bool, error) {
				return false, nil
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "The requested resource not found",
		},
		{
			name: "database error",
			id:   "1",
			url:  "/movies/1/theaters?latitude=41.0&longitude=29.0",
			existsFunc: func(ctx context.Context, id int) (bool, error) {
				return true, nil
			},
			getTheatersFunc: func(ctx context.Context, movieID int, long, lat float64, pagination domain.Pagination) ([]domain.Theater, *domain.Metadata, error) {
				return nil, nil, fmt.Errorf("database connection error")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: "The server encountered a problem and could not process your request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(func(d *testDeps) {
				d.movieRepo = &mocks.MockMovieRepo{ExistsFunc: tt.existsFunc}
				d.theaterRepo = &mocks.MockTheaterRepo{GetTheatersByMovieAndLocationFunc: tt.getTheatersFunc}
			})

			w, r := executeRequest(t, http.MethodGet, tt.url, nil)
			r = withIDParam(r, tt.id)

			app.GetMovieTheaters(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("GetMovieTheaters() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantResponse != nil {
				var response api.TheaterListResponse
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if diff := cmp.Diff(tt.wantResponse, &response); diff != "" {
					t.Errorf("GetMovieTheaters() response mismatch (-want +got):\n%s", diff)
				}
			}

			checkErrorResponse(t, w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}
