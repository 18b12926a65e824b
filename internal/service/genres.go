package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/metinatakli/movies-catalog-api/internal/cache"
	"github.com/metinatakli/movies-catalog-api/internal/domain"
)

type GenreService struct {
	repo  domain.GenreRepository
	cache cache.TagCache
	ttl   time.Duration
	mut   mutator
}

func NewGenreService(repo domain.GenreRepository, c cache.TagCache, logger *slog.Logger, ttl time.Duration) *GenreService {
	return &GenreService{
		repo:  repo,
		cache: c,
		ttl:   ttl,
		mut:   mutator{cache: c, logger: logger},
	}
}

func (s *GenreService) List(ctx context.Context, key string) ([]domain.Genre, error) {
	return cache.GetOrFetch(ctx, s.cache, key, []string{GenresTag}, s.ttl,
		func(ctx context.Context) ([]domain.Genre, error) {
			return s.repo.GetAll(ctx)
		})
}

func (s *GenreService) Get(ctx context.Context, key string, id int) (*domain.Genre, error) {
	return cache.GetOrFetch(ctx, s.cache, key, []string{GenresTag}, s.ttl,
		func(ctx context.Context) (*domain.Genre, error) {
			return s.repo.GetById(ctx, id)
		})
}

// Create persists the genre and evicts the genres tag. Names are compared
// exactly (case-sensitive) after trimming surrounding whitespace; the unique
// index in the store is the authority, the Exists pre-check only produces a
// friendlier failure before the insert is attempted.
func (s *GenreService) Create(ctx context.Context, genre *domain.Genre) error {
	genre.Name = strings.TrimSpace(genre.Name)

	exists, err := s.repo.Exists(ctx, genre.Name)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateGenre
	}

	return s.mut.do(ctx, []string{GenresTag}, func(ctx context.Context) error {
		return s.repo.Create(ctx, genre)
	})
}

func (s *GenreService) Update(ctx context.Context, id int, genre *domain.Genre) error {
	if genre.ID != id {
		return domain.ErrIDMismatch
	}

	genre.Name = strings.TrimSpace(genre.Name)

	return s.mut.do(ctx, []string{GenresTag}, func(ctx context.Context) error {
		return s.repo.Update(ctx, genre)
	})
}

func (s *GenreService) Delete(ctx context.Context, id int) error {
	return s.mut.do(ctx, []string{GenresTag}, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}
