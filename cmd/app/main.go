package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcels/cmd"
	httpin "parcels/internal/adapters/in/http"
	"parcels/internal/adapters/out/postgres"
	"parcels/internal/core/application/usecases/commands"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(slogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := postgres.Open(configs.Postgres(), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, slogger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			slogger.Error("Failed to close connections", "error", closeErr)
		}
	}()

	seedParcelTypes(ctx, app, slogger)

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Failed to create jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	if err = startWebServer(ctx, app, configs.HTTPPort); err != nil {
		slogger.Error("Web server stopped", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	jobManager.StopAll(shutdownCtx)
}

func seedParcelTypes(ctx context.Context, app *cmd.CompositionRoot, slogger *slog.Logger) {
	seed, err := commands.NewSeedParcelTypesCommand(commands.DefaultParcelTypes...)
	if err != nil {
		log.Fatalf("Invalid parcel type seed: %v", err)
	}
	created, err := app.CreateSeedParcelTypesCommandHandler().Handle(ctx, seed)
	if err != nil {
		log.Fatalf("Failed to seed parcel types: %v", err)
	}
	if created > 0 {
		slogger.Info("Parcel types seeded", "created", created)
	}
}

// startWebServer serves until ctx is cancelled, then shuts the server down gracefully.
func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) error {
	e, err := httpin.NewRouter(app.CreateServer())
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
