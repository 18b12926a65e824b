package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movies-catalog-api/internal/cache"
	"github.com/metinatakli/movies-catalog-api/internal/repository"
	"github.com/metinatakli/movies-catalog-api/internal/service"
	"github.com/metinatakli/movies-catalog-api/internal/storage"
	appvalidator "github.com/metinatakli/movies-catalog-api/internal/validator"
	"github.com/metinatakli/movies-catalog-api/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	sessionManager *scs.SessionManager
	cache          cache.TagCache

	genres   *service.GenreService
	movies   *service.MovieService
	ratings  *service.RatingService
	theaters *service.TheaterService
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type CacheConfig struct {
	TTL      time.Duration
	Coalesce bool
}

type StorageConfig struct {
	Root    string
	BaseURL string
}

type Config struct {
	Port             int
	Env              string
	MaxPageSize      int
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	Cache            CacheConfig
	Storage          StorageConfig
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.IntVar(&cfg.MaxPageSize, "max-page-size", 50, "Upper bound for the pageSize query parameter")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.DurationVar(&cfg.Cache.TTL, "cache-ttl", cache.DefaultTTL, "Response cache entry TTL")
	flag.BoolVar(&cfg.Cache.Coalesce, "cache-coalesce", false, "Coalesce concurrent cache populates per key")

	flag.StringVar(&cfg.Storage.Root, "storage-root", "./archives", "Archive storage root directory")
	flag.StringVar(&cfg.Storage.BaseURL, "storage-base-url", "http://localhost:3000", "Public base URL for stored archives")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	app, err := New(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.serve()
}

// New wires the application from configuration: connection pools, the cache,
// the session manager, the repositories, and the entity services. Close must
// be called when the application is no longer needed.
func New(cfg Config) (*Application, error) {
	logger := newLogger(cfg)

	db, err := newDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	tagCache := cache.NewRedisCache(redisClient, cache.Config{
		TTL:      cfg.Cache.TTL,
		Coalesce: cfg.Cache.Coalesce,
	})

	fileStorage := storage.NewDiskStorage(cfg.Storage.Root, cfg.Storage.BaseURL, logger)

	genreRepo := repository.NewPostgresGenreRepository(db)
	movieRepo := repository.NewPostgresMovieRepository(db)
	ratingRepo := repository.NewPostgresRatingRepository(db)
	theaterRepo := repository.NewPostgresTheaterRepository(db)

	app := &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      appvalidator.NewValidator(),
		sessionManager: newSessionManager(redisClient),
		cache:          tagCache,
		genres:         service.NewGenreService(genreRepo, tagCache, logger, cfg.Cache.TTL),
		movies:         service.NewMovieService(movieRepo, fileStorage, tagCache, logger, cfg.Cache.TTL),
		ratings:        service.NewRatingService(ratingRepo, tagCache, logger, cfg.Cache.TTL),
		theaters:       service.NewTheaterService(movieRepo, theaterRepo),
	}

	return app, nil
}

func (app *Application) Close() {
	app.redis.Close()
	app.db.Close()
}

func newLogger(cfg Config) *slog.Logger {
	textHandler := slog.NewTextHandler(os.Stdout, nil)

	if cfg.OtelCollectorUrl == "" {
		return slog.New(textHandler)
	}

	return slog.New(NewMultiHandler(textHandler, otelslog.NewHandler("movies-catalog-api")))
}

func newSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func newRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}
	if err := redisotel.InstrumentMetrics(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
