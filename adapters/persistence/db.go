package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

func NewPostgresPool(cfg config.Config, log logger.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("do not create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	log.Info("Connect PostgreSQL successfully.")
	return pool, nil
}

// OpenStores builds the stores for the configured driver. The returned
// func releases the underlying connections.
func OpenStores(cfg config.Config, log logger.Logger) (portfolio.Stores, func(), error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pool, err := NewPostgresPool(cfg, log)
		if err != nil {
			return portfolio.Stores{}, nil, err
		}
		return NewPostgresStores(pool, log), pool.Close, nil
	case config.DriverSQLite, "":
		db, err := NewSQLiteDB(cfg.DB.DSN, log)
		if err != nil {
			return portfolio.Stores{}, nil, err
		}
		return NewGormStores(db), func() {
			if err := CloseGorm(db); err != nil {
				log.Error("Failed to close SQLite", err)
			}
		}, nil
	case config.DriverMemory:
		log.Warn("Using in-memory stores, content is lost on restart")
		return NewMemoryStores(), func() {}, nil
	default:
		return portfolio.Stores{}, nil, fmt.Errorf("unknown db driver %q", cfg.DB.Driver)
	}
}

