package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"nexus-api/internal/config"
	"nexus-api/internal/observability/logging"
	"nexus-api/internal/store"
	"nexus-api/pkg/db"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s up|down|status\n", os.Args[0])
	}
	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		ServiceName: "nexus-migrate",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)

	if cfg.DatabaseType != db.DialectPostgres {
		logger.Error("migrations only target postgres; use DATABASE_SYNCHRONIZE for sqlite", "database", cfg.DatabaseType)
		os.Exit(2)
	}

	gdb, err := db.OpenGorm(db.Config{Dialect: cfg.DatabaseType, DSN: cfg.DatabaseURL, LogSQL: cfg.DatabaseLogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Error("sql db", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := store.RunMigrations(context.Background(), sqlDB, command); err != nil {
		logger.Error("migrate", "command", command, "error", err)
		os.Exit(1)
	}
	logger.Info("migrations done", "command", command)
}
