package mocks

import (
	"context"

	"github.com/metinatakli/movies-catalog-api/internal/domain"
)

type MockTheaterRepo struct {
	domain.TheaterRepository
	GetTheatersByMovieAndLocationFunc func(
		ctx context.Context,
		movieID int,
		long, lat float64,
		pagination domain.Pagination,
	) ([]domain.Theater, *domain.Metadata, error)
}

func (m *MockTheaterRepo) GetTheatersByMovieAndLocation(
	ctx context.Context,
	movieID int,
	long, lat float64,
	pagination domain.Pagination,
) ([]domain.Theater, *domain.Metadata, error) {
	return m.GetTheatersByMovieAndLocationFunc(ctx, movieID, long, lat, pagination)
}
