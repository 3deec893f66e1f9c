package main

import (
	"context"
	"fmt"

	"users_manager_backend/platform/config"
	"users_manager_backend/platform/db"
	"users_manager_backend/platform/logger"
)

// MigrateCmd groups the schema commands.
type MigrateCmd struct {
	Up      MigrateUpCmd      `cmd:"" help:"Apply all pending migrations."`
	Down    MigrateDownCmd    `cmd:"" help:"Roll back every applied migration."`
	Version MigrateVersionCmd `cmd:"" help:"Print the current schema version."`
}

type MigrateUpCmd struct{}

func (MigrateUpCmd) Run(_ context.Context, _ *Globals) error {
	cfg := config.LoadDatabase()
	if err := db.RunMigrations(cfg); err != nil {
		return err
	}
	logger.New(cfg.Env).Info("migrations applied")
	return nil
}

type MigrateDownCmd struct{}

func (MigrateDownCmd) Run(_ context.Context, _ *Globals) error {
	cfg := config.LoadDatabase()
	if err := db.RollbackMigrations(cfg); err != nil {
		return err
	}
	logger.New(cfg.Env).Info("migrations rolled back")
	return nil
}

type MigrateVersionCmd struct{}

func (MigrateVersionCmd) Run(_ context.Context, _ *Globals) error {
	status, err := db.MigrationVersion(config.LoadDatabase())
	if err != nil {
		return err
	}
	if !status.Applied {
		fmt.Println("no migrations applied")
		return nil
	}
	fmt.Printf("version %d (dirty: %t)\n", status.Version, status.Dirty)
	return nil
}
