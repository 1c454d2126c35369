package main

import (
	"database/sql"
	"fmt"

	"github.com/gopsql/db"
	"github.com/gopsql/entity"
	"github.com/gopsql/gopg"
	"github.com/gopsql/logger"
	"github.com/gopsql/pgx"
	"github.com/gopsql/pq"
	"github.com/gopsql/standard"
	"github.com/spf13/viper"
	_ "modernc.org/sqlite"
)

// dialect returns the name used for placeholders and DDL: "sqlite" or
// "postgres".
func dialect(driver string) string {
	if driver == "sqlite" {
		return "sqlite"
	}
	return "postgres"
}

func openExecutor(v *viper.Viper) (*entity.DBExecutor, error) {
	driver := v.GetString(cfgKeyDriver)
	dsn := v.GetString(cfgKeyDSN)

	var conn db.DB
	var err error
	switch driver {
	case "postgres", "pq":
		conn, err = pq.Open(dsn)
	case "pgx":
		conn, err = pgx.Open(dsn)
	case "gopg":
		conn, err = gopg.Open(dsn)
	case "sqlite":
		var c *sql.DB
		if c, err = sql.Open("sqlite", dsn); err == nil {
			// one connection, or ":memory:" gives every statement its own database
			c.SetMaxOpenConns(1)
			conn = standard.NewDB("sqlite", c)
		}
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	exe := entity.NewDBExecutor(conn, dialect(driver))
	if v.GetBool(cfgKeyVerbose) {
		exe.SetLogger(logger.StandardLogger)
	}
	return exe, nil
}
