package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movies-catalog-api/internal/domain"
)

type PostgresRatingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRatingRepository(db *pgxpool.Pool) *PostgresRatingRepository {
	return &PostgresRatingRepository{
		db: db,
	}
}

func (p *PostgresRatingRepository) GetAllByMovie(ctx context.Context, movieID int, pagination domain.Pagination) ([]*domain.Rating, *domain.Metadata, error) {
	query := `SELECT count(*) OVER(), id, movie_id, user_id, score, created_at
		FROM ratings
		WHERE movie_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3`

	rows, err := p.db.Query(ctx, query, movieID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	ratings := []*domain.Rating{}

	for rows.Next() {
		var rating domain.Rating

		err := rows.Scan(
			&totalRecords,
			&rating.ID,
			&rating.MovieID,
			&rating.UserID,
			&rating.Score,
			&rating.CreatedAt,
		)

		if err != nil {
			return nil, nil, err
		}

		ratings = append(ratings, &rating)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return ratings, metadata, nil
}

func (p *PostgresRatingRepository) GetById(ctx context.Context, id int) (*domain.Rating, error) {
	query := `SELECT id, movie_id, user_id, score, created_at FROM ratings WHERE id = $1`

	var rating domain.Rating

	err := p.db.QueryRow(ctx, query, id).Scan(
		&rating.ID,
		&rating.MovieID,
		&rating.UserID,
		&rating.Score,
		&rating.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &rating, nil
}

// Upsert inserts the rating or, when the caller already rated this movie,
// overwrites the previous score.
func (p *PostgresRatingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	query := `INSERT INTO ratings (movie_id, user_id, score)
		VALUES ($1, $2, $3)
		ON CONFLICT (movie_id, user_id) DO UPDATE SET score = EXCLUDED.score
		RETURNING id, created_at`

	err := p.db.QueryRow(ctx, query, rating.MovieID, rating.UserID, rating.Score).
		Scan(&rating.ID, &rating.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresRatingRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM ratings WHERE id = $1`

	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
