package domain

import "context"

type Theater struct {
	ID       int
	Name     string
	Address  string
	City     string
	District string
	Distance float64
}

type TheaterRepository interface {
	GetTheatersByMovieAndLocation(
		ctx context.Context,
		movieID int,
		long, lat float64,
		pagination Pagination,
	) ([]Theater, *Metadata, error)
}
