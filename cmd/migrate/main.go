package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

func main() {
	source := flag.String("source", "file://migrations", "migration source URL")
	steps := flag.Int("steps", 0, "number of migrations to apply for up/down, 0 means all")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [flags] up|down|version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if cfg.DB.Driver != config.DriverPostgres {
		appLogger.Warn("SQL migrations only apply to postgres, other drivers migrate on startup",
			zap.String("driver", cfg.DB.Driver))
		return
	}

	m, err := migrate.New(*source, cfg.DB.DSN)
	if err != nil {
		appLogger.Fatal("Failed to create migrate instance", err)
	}
	defer m.Close()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			appLogger.Fatal("Failed to read schema version", verr)
		}
		appLogger.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		appLogger.Fatal("Migration failed", err)
	}
	appLogger.Info("Migrations applied", zap.String("command", flag.Arg(0)))
}
