package domain

import (
	"context"
	"time"
)

// Rating is a single user's score for a movie. A user has at most one rating
// per movie; repeated submissions overwrite the previous score.
type Rating struct {
	ID        int
	MovieID   int
	UserID    int
	Score     int
	CreatedAt time.Time
}

type RatingRepository interface {
	GetAllByMovie(ctx context.Context, movieID int, pagination Pagination) ([]*Rating, *Metadata, error)
	GetById(ctx context.Context, id int) (*Rating, error)
	Upsert(ctx context.Context, rating *Rating) error
	Delete(ctx context.Context, id int) error
}
