// Package server wires the application together: storage, migrations, the
// advice pipeline, the daily digest scheduler and the HTTP endpoint.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/qianzhu/lifeplanner/internal/logging"
	"github.com/qianzhu/lifeplanner/internal/server/advice"
	"github.com/qianzhu/lifeplanner/internal/server/config"
	"github.com/qianzhu/lifeplanner/internal/server/export"
	"github.com/qianzhu/lifeplanner/internal/server/httpapi"
	"github.com/qianzhu/lifeplanner/internal/server/migrations"
	"github.com/qianzhu/lifeplanner/internal/server/records"
	"github.com/qianzhu/lifeplanner/internal/server/snapshots"
	"github.com/qianzhu/lifeplanner/internal/server/users"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *http.Server
	scheduler  *snapshots.Scheduler
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	secret := []byte(cfg.SecretKey)

	recordService := records.NewService(records.NewPostgresRepository(db), logger)
	userService := users.NewService(users.NewPostgresRepository(db), logger, secret, cfg.AccessTokenValidityDuration)

	generator := advice.NewOpenAIGenerator(cfg.AdviceAPIKey, cfg.AdviceBaseURL, cfg.AdviceModel)
	adviceCache := advice.NewCache(generator, recordService, logger)

	snapshotService := snapshots.NewService(
		snapshots.NewPostgresRepository(db),
		snapshots.NewRedisDayCache(redisClient),
		snapshots.NewOpenAIContentClient(cfg.AdviceAPIKey, cfg.AdviceBaseURL, cfg.AdviceModel),
		logger,
	)
	scheduler, err := snapshots.NewScheduler(snapshotService, logger, cfg.DailyFetchTime)
	if err != nil {
		return nil, fmt.Errorf("scheduler init error: %w", err)
	}

	exportService := export.NewService(recordService, cfg)

	httpServer := httpapi.NewHTTPServer(cfg.EndpointAddrHTTP, logger,
		httpapi.NewAccountsController(userService, logger),
		httpapi.NewRecordsController(recordService, secret, logger),
		httpapi.NewAdviceController(adviceCache, recordService, snapshotService, secret, logger),
		httpapi.NewSnapshotsController(snapshotService, secret, logger),
		httpapi.NewDashboardController(recordService, adviceCache, secret, logger),
		httpapi.NewExportController(exportService, secret, logger),
	)

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		httpServer: httpServer,
		scheduler:  scheduler,
	}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.UpContext(ctx, db, ".")
}

// Run starts the HTTP server and the daily digest scheduler, blocking until
// a termination signal or a fatal component error.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info(ctx, "http server starting", "addr", app.config.EndpointAddrHTTP)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return app.httpServer.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		if err := app.scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("scheduler: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if closeErr := app.db.Close(); closeErr != nil {
		app.logger.Error(ctx, "db close failed", "error", closeErr)
	}

	return err
}
