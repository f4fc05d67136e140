// Package gormstore implements the repositories on SQLite through gorm, for
// local runs without PostgreSQL.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"apollo/internal/infrastructure/logging"
)

// Open opens (creating if needed) the SQLite database at path and migrates the schema.
func Open(ctx context.Context, path string, logger *slog.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logging.NewGormLogger(logger, 500*time.Millisecond),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&guildModel{}, &userModel{}, &eventChannelModel{}, &eventModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("SQLite database ready", "path", path)
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
