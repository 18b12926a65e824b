package mocks

import (
	"context"

	"github.com/metinatakli/movies-catalog-api/internal/domain"
)

type MockRatingRepo struct {
	domain.RatingRepository
	GetAllByMovieFunc func(ctx context.Context, movieID int, pagination domain.Pagination) ([]*domain.Rating, *domain.Metadata, error)
	GetByIdFunc       func(ctx context.Context, id int) (*domain.Rating, error)
	UpsertFunc        func(ctx context.Context, rating *domain.Rating) error
	DeleteFunc        func(ctx context.Context, id int) error
}

func (m *MockRatingRepo) GetAllByMovie(ctx context.Context, movieID int, pagination domain.Pagination) ([]*domain.Rating, *domain.Metadata, error) {
	return m.GetAllByMovieFunc(ctx, movieID, pagination)
}

func (m *MockRatingRepo) GetById(ctx context.Context, id int) (*domain.Rating, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockRatingRepo) Upsert(ctx context.Context, rating *domain.Rating) error {
	return m.UpsertFunc(ctx, rating)
}

func (m *MockRatingRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}
