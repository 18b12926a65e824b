package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/movies-catalog-api/api"
	"github.com/metinatakli/movies-catalog-api/internal/cache"
	"github.com/metinatakli/movies-catalog-api/internal/mocks"
	"github.com/metinatakli/movies-catalog-api/internal/service"
	appvalidator "github.com/metinatakli/movies-catalog-api/internal/validator"
)

// testDeps collects the mock collaborators a test can override before the
// services are wired around them.
type testDeps struct {
	genreRepo   *mocks.MockGenreRepo
	movieRepo   *mocks.MockMovieRepo
	ratingRepo  *mocks.MockRatingRepo
	theaterRepo *mocks.MockTheaterRepo
	storage     *mocks.MockFileStorage
}

func newTestApplication(opts ...func(*testDeps)) *Application {
	deps := &testDeps{
		genreRepo:   &mocks.MockGenreRepo{},
		movieRepo:   &mocks.MockMovieRepo{},
		ratingRepo:  &mocks.MockRatingRepo{},
		theaterRepo: &mocks.MockTheaterRepo{},
		storage:     &mocks.MockFileStorage{},
	}

	for _, opt := range opts {
		opt(deps)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tagCache := cache.NewMemoryCache(cache.Config{TTL: time.Minute})

	return &Application{
		config:         Config{MaxPageSize: 50},
		logger:         logger,
		validator:      appvalidator.NewValidator(),
		sessionManager: scs.New(),
		cache:          tagCache,
		genres:         service.NewGenreService(deps.genreRepo, tagCache, logger, time.Minute),
		movies:         service.NewMovieService(deps.movieRepo, deps.storage, tagCache, logger, time.Minute),
		ratings:        service.NewRatingService(deps.ratingRepo, tagCache, logger, time.Minute),
		theaters:       service.NewTheaterService(deps.movieRepo, deps.theaterRepo),
	}
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// withIDParam injects a chi route context carrying the {id} URL parameter, so
// handlers can be exercised without mounting the full router.
func withIDParam(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// asUser stamps the caller identity on the request context the way the
// authenticate middleware would after reading the session.
func asUser(r *http.Request, userId int, isAdmin bool) *http.Request {
	ctx := context.WithValue(r.Context(), SessionKeyUserId, userId)
	if isAdmin {
		ctx = context.WithValue(ctx, SessionKeyIsAdmin, true)
	}

	return r.WithContext(ctx)
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
