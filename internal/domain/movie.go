package domain

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// ShowingWindow is how long after its release date a movie counts as
// currently in cinemas.
const ShowingWindow = 90 * 24 * time.Hour

type Movie struct {
	ID          int
	Title       string
	Overview    string
	TrailerUrl  string
	ReleaseDate time.Time
	PosterUrl   string
	Genres      []Genre
	GenreIDs    []int
	AvgRating   pgtype.Numeric
	RatingCount int
}

// MovieFilters is the declarative filter request of GET /movies. Zero values
// impose no restriction; present fields are combined by conjunction.
type MovieFilters struct {
	Page       int
	PageSize   int
	Title      string
	GenreID    int
	InCinemas  bool
	ComingSoon bool
}

func (f MovieFilters) Pagination() Pagination {
	return Pagination{Page: f.Page, PageSize: f.PageSize}
}

func (f MovieFilters) Limit() int {
	return f.PageSize
}

func (f MovieFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int) error
}
