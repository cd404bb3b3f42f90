package main

import (
	"context"
	"log/slog"

	"parcels/cmd"
	"parcels/internal/adapters/out/postgres"
	"parcels/internal/core/application/usecases/commands"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// application runs the use cases against the configured database.
type application struct {
	root *cmd.CompositionRoot
}

func connect(ctx context.Context, slogger *slog.Logger) (operations, func(), error) {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	gormDB, err := postgres.Open(configs.Postgres(), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, nil, err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return nil, nil, err
	}

	root, err := cmd.NewCompositionRoot(ctx, configs, gormDB, slogger)
	if err != nil {
		return nil, nil, err
	}

	release := func() {
		if closeErr := root.Close(); closeErr != nil {
			slogger.Warn("Failed to close connections", "error", closeErr)
		}
		if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	}
	return application{root: root}, release, nil
}

func (a application) CalculateDeliveryCosts(ctx context.Context) (commands.CalculateDeliveryCostsResult, error) {
	handler, err := a.root.CreateCalculateDeliveryCostsCommandHandler()
	if err != nil {
		return commands.CalculateDeliveryCostsResult{}, err
	}
	return handler.Handle(ctx, commands.NewCalculateDeliveryCostsCommand())
}

func (a application) SeedParcelTypes(ctx context.Context, names []string) (int, error) {
	seed, err := commands.NewSeedParcelTypesCommand(names...)
	if err != nil {
		return 0, err
	}
	return a.root.CreateSeedParcelTypesCommandHandler().Handle(ctx, seed)
}

func (a application) DeleteParcelType(ctx context.Context, name string) error {
	del, err := commands.NewDeleteParcelTypeCommand(name)
	if err != nil {
		return err
	}
	return a.root.CreateDeleteParcelTypeCommandHandler().Handle(ctx, del)
}
