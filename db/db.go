package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/altamira-viajes/backoffice/lib/service"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

func Open(config *service.Config) (*bun.DB, error) {
	dsn := config.DatabaseUri
	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.HasPrefix(dsn, "unix://"):
	default:
		return nil, fmt.Errorf("invalid database connection string %s, only (postgres|postgresql|unix):// is supported", dsn)
	}

	dbConn := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(dbConn, pgdialect.New())
	db.SetMaxOpenConns(config.DatabaseMaxConns)
	db.SetMaxIdleConns(config.DatabaseMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(config.DatabaseConnMaxLifetime) * time.Second)

	db.AddQueryHook(bundebug.NewQueryHook(
		// disable the hook
		bundebug.WithEnabled(false),
		// BUNDEBUG=1 logs failed queries
		// BUNDEBUG=2 logs all queries
		bundebug.FromEnv("BUNDEBUG"),
	))

	return db, nil
}
