package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/movies-catalog-api/internal/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(otelchi.Middleware("movies-catalog-api", otelchi.WithChiRoutes(r)))
	r.Use(middleware.RecoverPanic)
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.authenticate)

	r.NotFound(middleware.NotFoundHandler)

	r.Get("/v1/healthcheck", app.GetHealth)

	r.Route("/genres", func(r chi.Router) {
		r.Get("/", app.ListGenres)
		r.Get("/{id}", app.GetGenre)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication)
			r.Use(app.requireAdmin)

			r.Post("/", app.CreateGenre)
			r.Put("/{id}", app.UpdateGenre)
			r.Delete("/{id}", app.DeleteGenre)
		})
	})

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.ListMovies)
		r.Get("/{id}", app.GetMovie)
		r.Get("/{id}/theaters", app.GetMovieTheaters)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication)
			r.Use(app.requireAdmin)

			r.Post("/", app.CreateMovie)
			r.Put("/{id}", app.UpdateMovie)
			r.Delete("/{id}", app.DeleteMovie)
		})
	})

	r.Route("/ratings", func(r chi.Router) {
		r.Get("/", app.ListRatings)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication)

			r.Post("/", app.CreateRating)
			r.Delete("/{id}", app.DeleteRating)
		})
	})

	fileServer := http.FileServer(http.Dir(app.config.Storage.Root))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	return r
}
