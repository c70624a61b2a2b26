package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/techcorp/internal-tools/internal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const dbDriver = "pgx"

// initDB opens the pgx pool through sqlx and verifies it with a ping.
func initDB(ctx context.Context, cfg internal.DatabaseConfig, lg *slog.Logger) (*sqlx.DB, error) {
	dbConn, err := sqlx.Open(dbDriver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.PingContext(pingCtx); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.RedactedDSN(), err)
	}

	lg.Info("database connected", "target", cfg.RedactedDSN(), "max_open_conns", cfg.MaxOpenConns)
	return dbConn, nil
}

// initGorm wraps the existing pool so gorm and sqlx share connections.
func initGorm(db *sqlx.DB, cfg internal.DatabaseConfig) (*gorm.DB, error) {
	logLevel := gormLogger.Silent
	if cfg.LogQueries {
		logLevel = gormLogger.Info
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:                 gormLogger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return gdb, nil
}
