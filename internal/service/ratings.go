package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/metinatakli/movies-catalog-api/internal/cache"
	"github.com/metinatakli/movies-catalog-api/internal/domain"
)

type ratingList struct {
	Ratings  []*domain.Rating
	Metadata *domain.Metadata
}

type RatingService struct {
	repo  domain.RatingRepository
	cache cache.TagCache
	ttl   time.Duration
	mut   mutator
}

func NewRatingService(repo domain.RatingRepository, c cache.TagCache, logger *slog.Logger, ttl time.Duration) *RatingService {
	return &RatingService{
		repo:  repo,
		cache: c,
		ttl:   ttl,
		mut:   mutator{cache: c, logger: logger},
	}
}

func (s *RatingService) List(ctx context.Context, key string, movieID int, pagination domain.Pagination) ([]*domain.Rating, *domain.Metadata, error) {
	result, err := cache.GetOrFetch(ctx, s.cache, key, []string{RatingsTag}, s.ttl,
		func(ctx context.Context) (ratingList, error) {
			ratings, metadata, err := s.repo.GetAllByMovie(ctx, movieID, pagination)
			return ratingList{Ratings: ratings, Metadata: metadata}, err
		})
	if err != nil {
		return nil, nil, err
	}

	return result.Ratings, result.Metadata, nil
}

// Rate records the caller's score for a movie, overwriting any previous one.
// Movie payloads embed rating aggregates, so the movies tag is evicted along
// with ratings.
func (s *RatingService) Rate(ctx context.Context, rating *domain.Rating) error {
	return s.mut.do(ctx, []string{RatingsTag, MoviesTag}, func(ctx context.Context) error {
		return s.repo.Upsert(ctx, rating)
	})
}

// Delete removes a rating. Only its owner or an administrator may do so.
func (s *RatingService) Delete(ctx context.Context, id, callerID int, isAdmin bool) error {
	rating, err := s.repo.GetById(ctx, id)
	if err != nil {
		return err
	}

	if rating.UserID != callerID && !isAdmin {
		return domain.ErrNotPermitted
	}

	return s.mut.do(ctx, []string{RatingsTag, MoviesTag}, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}
