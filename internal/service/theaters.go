package service

import (
	"context"

	"github.com/metinatakli/movies-catalog-api/internal/domain"
)

// TheaterService answers geospatial theater lookups. Results depend on the
// caller's coordinates, so nothing here goes through the response cache.
type TheaterService struct {
	movies   domain.MovieRepository
	theaters domain.TheaterRepository
}

func NewTheaterService(movies domain.MovieRepository, theaters domain.TheaterRepository) *TheaterService {
	return &TheaterService{movies: movies, theaters: theaters}
}

// Search returns the theaters screening the given movie within the search
// radius of the caller's coordinates, nearest first. It returns
// ErrRecordNotFound when the movie does not exist.
func (s *TheaterService) Search(
	ctx context.Context,
	movieID int,
	long, lat float64,
	pagination domain.Pagination,
) ([]domain.Theater, *domain.Metadata, error) {
	exists, err := s.movies.Exists(ctx, movieID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, domain.ErrRecordNotFound
	}

	return s.theaters.GetTheatersByMovieAndLocation(ctx, movieID, long, lat, pagination)
}
