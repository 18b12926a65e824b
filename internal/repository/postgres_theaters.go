package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movies-catalog-api/internal/domain"
)

// searchRadiusMeters bounds theater search to 20km around the caller.
const searchRadiusMeters = 20000

type PostgresTheaterRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTheaterRepository(db *pgxpool.Pool) *PostgresTheaterRepository {
	return &PostgresTheaterRepository{
		db: db,
	}
}

func (p *PostgresTheaterRepository) GetTheatersByMovieAndLocation(
	ctx context.Context,
	movieID int,
	long, lat float64,
	pagination domain.Pagination,
) ([]domain.Theater, *domain.Metadata, error) {
	query := `
		SELECT
			t.id,
			t.name,
			t.address,
			t.city,
			t.district,
			ST_Distance(t.location, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography) / 1000 AS distance,
			count(*) OVER() AS total_count
		FROM theaters t
		INNER JOIN movie_theaters mt ON mt.theater_id = t.id AND mt.movie_id = $1
		WHERE ST_DWithin(t.location, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography, $4)
		ORDER BY t.location <-> ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography
		LIMIT $5 OFFSET $6`

	args := []any{movieID, long, lat, searchRadiusMeters, pagination.Limit(), pagination.Offset()}

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	theaters := make([]domain.Theater, 0, pagination.PageSize)
	var totalCount int

	for rows.Next() {
		var theater domain.Theater

		err := rows.Scan(
			&theater.ID,
			&theater.Name,
			&theater.Address,
			&theater.City,
			&theater.District,
			&theater.Distance,
			&totalCount,
		)

		if err != nil {
			return nil, nil, err
		}

		theaters = append(theaters, theater)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalCount, pagination.Page, pagination.PageSize)

	return theaters, metadata, nil
}
