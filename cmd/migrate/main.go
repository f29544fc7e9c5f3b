package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"academy/config"
	"academy/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
)

func main() {
	command := flag.String("command", postgres.MigrateUp, "Migration command: up, down or status")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *command); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if cfg.Postgres == nil {
		return errors.New("postgres configuration is required to run migrations")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return errors.Wrap(err, "failed to create PostgreSQL client")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	defer sqlDB.Close()

	return postgres.Migrate(ctx, sqlDB, command)
}
