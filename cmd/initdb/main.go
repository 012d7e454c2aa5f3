// Command initdb creates the content library tables and indexes for the
// configured environment's table prefix. With -drop it removes any existing
// tables first.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/JaredForchheimer/Hack-Coms/internal/config"
	"github.com/JaredForchheimer/Hack-Coms/internal/repository/postgres"
)

func main() {
	drop := flag.Bool("drop", false, "drop existing tables before creating")
	configFile := flag.String("config", "", "optional YAML config file (overrides environment)")
	logDir := flag.String("log-dir", "", "also write logs to a timestamped file in this directory")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, closeLog, err := newLogger(cfg, *logDir)
	if err != nil {
		log.Fatalf("setup logging: %v", err)
	}
	defer closeLog()
	logger.Info("initializing schema",
		"environment", cfg.Environment,
		"table_prefix", cfg.TablePrefix,
		"database", cfg.Database.Database,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *drop {
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("drop schema: %v", err)
		}
		logger.Info("existing tables dropped")
	}

	if err := postgres.CreateSchema(ctx, pool, tables); err != nil {
		log.Fatalf("create schema: %v", err)
	}

	logger.Info("schema ready",
		"tables", []string{
			tables.Projects, tables.TextSources, tables.Summaries,
			tables.Translations, tables.Videos, tables.Links,
		},
	)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load(), nil
}

func newLogger(cfg *config.Config, logDir string) (*slog.Logger, func(), error) {
	if logDir == "" {
		return config.NewLogger(os.Stdout, cfg.Debug), func() {}, nil
	}
	f, err := config.SetupLogFile(logDir, 10)
	if err != nil {
		return nil, nil, err
	}
	logger := config.NewLogger(io.MultiWriter(os.Stdout, f), cfg.Debug)
	return logger, func() { f.Close() }, nil
}
