// Package server initializes and runs the housekeeping server.
// It opens the poll store, applies migrations, and starts the HTTP API
// and the optional in-process sweep scheduler with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Alok0227/rallly/internal/logging"
	"github.com/Alok0227/rallly/internal/server/config"
	"github.com/Alok0227/rallly/internal/server/housekeeping"
	"github.com/Alok0227/rallly/internal/server/httpapi"
	"github.com/Alok0227/rallly/internal/server/repositories/repomanager"
	"github.com/Alok0227/rallly/internal/server/scheduler"
	"github.com/WatchBeam/clock"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	sweeper   *housekeeping.Service
	api       *httpapi.Server
	scheduler *scheduler.Scheduler
}

func NewApp(c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	metrics := housekeeping.NewMetrics(prometheus.DefaultRegisterer)
	sweeper := housekeeping.NewService(db, rm, c, clock.C, logger, metrics)

	api := httpapi.NewServer(c.EndpointAddr, c.SecretKey, sweeper, logger)
	sched := scheduler.NewScheduler(sweeper, c.SweepSchedule, logger)

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		sweeper:   sweeper,
		api:       api,
		scheduler: sched,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.scheduler.Start(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.api.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	app.scheduler.Stop()
	_ = app.db.Close()
}
