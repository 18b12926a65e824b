package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/metinatakli/movies-catalog-api/internal/cache"
	"github.com/metinatakli/movies-catalog-api/internal/domain"
)

// PosterContainer is the blob container that holds movie poster archives.
const PosterContainer = "movies"

// movieList wraps the list tuple so it survives the cache's JSON round-trip.
type movieList struct {
	Movies   []*domain.Movie
	Metadata *domain.Metadata
}

type MovieService struct {
	repo    domain.MovieRepository
	storage domain.FileStorage
	cache   cache.TagCache
	ttl     time.Duration
	mut     mutator
	logger  *slog.Logger
}

func NewMovieService(
	repo domain.MovieRepository,
	storage domain.FileStorage,
	c cache.TagCache,
	logger *slog.Logger,
	ttl time.Duration,
) *MovieService {
	return &MovieService{
		repo:    repo,
		storage: storage,
		cache:   c,
		ttl:     ttl,
		mut:     mutator{cache: c, logger: logger},
		logger:  logger,
	}
}

func (s *MovieService) List(ctx context.Context, key string, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	result, err := cache.GetOrFetch(ctx, s.cache, key, []string{MoviesTag}, s.ttl,
		func(ctx context.Context) (movieList, error) {
			movies, metadata, err := s.repo.GetAll(ctx, filters)
			return movieList{Movies: movies, Metadata: metadata}, err
		})
	if err != nil {
		return nil, nil, err
	}

	return result.Movies, result.Metadata, nil
}

func (s *MovieService) Get(ctx context.Context, key string, id int) (*domain.Movie, error) {
	return cache.GetOrFetch(ctx, s.cache, key, []string{MoviesTag}, s.ttl,
		func(ctx context.Context) (*domain.Movie, error) {
			return s.repo.GetById(ctx, id)
		})
}

// Create stores the poster archive first, then persists the movie and evicts
// the movies tag. If the store mutation fails the uploaded poster is removed
// again on a best-effort basis.
func (s *MovieService) Create(ctx context.Context, movie *domain.Movie, poster *domain.File) error {
	movie.Title = strings.TrimSpace(movie.Title)

	if poster != nil {
		url, err := s.storage.Store(ctx, PosterContainer, *poster)
		if err != nil {
			return err
		}
		movie.PosterUrl = url
	}

	err := s.mut.do(ctx, []string{MoviesTag}, func(ctx context.Context) error {
		return s.repo.Create(ctx, movie)
	})
	if err != nil && movie.PosterUrl != "" {
		if delErr := s.storage.Delete(context.WithoutCancel(ctx), movie.PosterUrl, PosterContainer); delErr != nil {
			s.logger.Warn("failed to remove orphaned poster", "url", movie.PosterUrl, "error", delErr)
		}
	}

	return err
}

func (s *MovieService) Update(ctx context.Context, id int, movie *domain.Movie) error {
	if movie.ID != id {
		return domain.ErrIDMismatch
	}

	movie.Title = strings.TrimSpace(movie.Title)

	return s.mut.do(ctx, []string{MoviesTag}, func(ctx context.Context) error {
		return s.repo.Update(ctx, movie)
	})
}

// Delete removes the movie (cascading to its genre associations and ratings,
// hence the ratings tag eviction) and then its poster archive. A failed
// poster deletion is logged, not surfaced: the catalog mutation already
// committed.
func (s *MovieService) Delete(ctx context.Context, id int) error {
	movie, err := s.repo.GetById(ctx, id)
	if err != nil {
		return err
	}

	err = s.mut.do(ctx, []string{MoviesTag, RatingsTag}, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if movie.PosterUrl != "" {
		if err := s.storage.Delete(context.WithoutCancel(ctx), movie.PosterUrl, PosterContainer); err != nil {
			s.logger.Warn("failed to delete poster", "url", movie.PosterUrl, "error", err)
		}
	}

	return nil
}
