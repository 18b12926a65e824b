package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movies-catalog-api/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

// GetAll runs a single bounded query whose WHERE clause is the conjunction of
// the filter fields that are present. The window count gives the total number
// of matching rows before LIMIT/OFFSET; ordering is always primary key
// ascending so page sequences stay deterministic.
func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	conditions := []string{}
	args := []any{}

	if filters.Title != "" {
		args = append(args, filters.Title)
		conditions = append(conditions, fmt.Sprintf("m.title ILIKE '%%' || $%d || '%%'", len(args)))
	}

	if filters.GenreID > 0 {
		args = append(args, filters.GenreID)
		conditions = append(conditions,
			fmt.Sprintf("EXISTS (SELECT 1 FROM movie_genres mg WHERE mg.movie_id = m.id AND mg.genre_id = $%d)", len(args)))
	}

	if filters.InCinemas {
		days := int(domain.ShowingWindow / (24 * time.Hour))
		conditions = append(conditions,
			fmt.Sprintf("m.release_date <= now() AND m.release_date > now() - interval '%d days'", days))
	}

	if filters.ComingSoon {
		conditions = append(conditions, "m.release_date > now()")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, filters.Limit(), filters.Offset())

	query := fmt.Sprintf(`SELECT count(*) OVER(), m.id, m.title, m.release_date, m.poster_url
		FROM movies m
		%s
		ORDER BY m.id
		LIMIT $%d OFFSET $%d`, whereClause, len(args)-1, len(args))

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.ReleaseDate,
			&movie.PosterUrl,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT
			m.id,
			m.title,
			m.overview,
			m.trailer_url,
			m.release_date,
			m.poster_url,
			COALESCE(jsonb_agg(
				DISTINCT jsonb_build_object('ID', g.id, 'Name', g.name)
			) FILTER (WHERE g.id IS NOT NULL), '[]') AS genres,
			COALESCE(avg(r.score), 0) AS avg_rating,
			count(DISTINCT r.id) AS rating_count
		FROM movies m
		LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		LEFT JOIN genres g ON g.id = mg.genre_id
		LEFT JOIN ratings r ON r.movie_id = m.id
		WHERE m.id = $1
		GROUP BY m.id`

	var movie domain.Movie
	var genresJson json.RawMessage

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Overview,
		&movie.TrailerUrl,
		&movie.ReleaseDate,
		&movie.PosterUrl,
		&genresJson,
		&movie.AvgRating,
		&movie.RatingCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	if len(genresJson) > 0 {
		if err := json.Unmarshal(genresJson, &movie.Genres); err != nil {
			return nil, err
		}
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`

	var exists bool

	err := p.db.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO movies (title, overview, trailer_url, release_date, poster_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err = tx.QueryRow(ctx, query,
		movie.Title,
		movie.Overview,
		movie.TrailerUrl,
		movie.ReleaseDate,
		movie.PosterUrl,
	).Scan(&movie.ID)
	if err != nil {
		return err
	}

	if err := insertMovieGenres(ctx, tx, movie.ID, movie.GenreIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE movies
		SET title = $1, overview = $2, trailer_url = $3, release_date = $4
		WHERE id = $5`

	tag, err := tx.Exec(ctx, query,
		movie.Title,
		movie.Overview,
		movie.TrailerUrl,
		movie.ReleaseDate,
		movie.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movie.ID); err != nil {
		return err
	}

	if err := insertMovieGenres(ctx, tx, movie.ID, movie.GenreIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes the movie row; genre associations and ratings go with it via
// ON DELETE CASCADE.
func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM movies WHERE id = $1`

	tag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func insertMovieGenres(ctx context.Context, tx pgx.Tx, movieID int, genreIDs []int) error {
	for _, genreID := range genreIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1, $2)`,
			movieID, genreID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
				return fmt.Errorf("genre %d: %w", genreID, domain.ErrRecordNotFound)
			}

			return err
		}
	}

	return nil
}
