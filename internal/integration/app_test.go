package integration_test

import (
	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movies-catalog-api/internal/app"
	"github.com/redis/go-redis/v9"

	"context"
)

// TestApp wraps the wired application together with direct handles on the
// database and redis, so tests can seed data and mint session cookies behind
// the API's back.
type TestApp struct {
	App      *app.Application
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Sessions *scs.SessionManager
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	application, err := app.New(cfg)
	if err != nil {
		return nil, err
	}

	db, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.URL})

	// A second session manager over the same redis store. Sessions it commits
	// are visible to the application's own manager.
	sessions := scs.New()
	sessions.Store = goredisstore.New(redisClient)

	return &TestApp{
		App:      application,
		DB:       db,
		Redis:    redisClient,
		Sessions: sessions,
	}, nil
}

func (a *TestApp) Close() {
	a.Redis.Close()
	a.DB.Close()
	a.App.Close()
}
