// Package server wires configuration, storage and transports into the
// taskboard server process.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/dmitrijs2005/taskboard/internal/server/metrics"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/taskboard/internal/server/grpc"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	taskService    *services.TaskService
	profileService *services.ProfileService
}

// NewApp opens the database, applies pending migrations and builds the
// services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, slog.LevelInfo)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	n, err := rm.RunMigrations(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}
	logger.Info(ctx, "Migrations applied", "count", n)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    services.NewUserService(db, rm, c),
		taskService:    services.NewTaskService(db, rm),
		profileService: services.NewProfileService(db, rm, services.NewS3Storage(c), c.AvatarBaseURL),
	}, nil
}

// runMetricsServer serves /metrics until ctx is done.
func (app *App) runMetricsServer(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: app.config.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run blocks until ctx is cancelled or one of the servers fails.
func (app *App) Run(ctx context.Context) error {
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.taskService, app.profileService, app.config.SecretKey)
	g.Go(func() error { return s.Run(ctx) })

	if app.config.MetricsAddr != "" {
		g.Go(func() error { return app.runMetricsServer(ctx) })
	}

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}
