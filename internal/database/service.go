/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"fmt"

	"digital-stamp-go/internal/models"
	"digital-stamp-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.StateStore.
var _ store.StateStore = (*Service)(nil)

// Service keeps the session document in a single-file SQLite database, one
// table per collection.
type Service struct {
	db   *sql.DB
	path string
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	// Set connection timeouts and limits
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection with timeout
	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	service := &Service{db: db, path: cfg.Path}
	if err := service.initSchema(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

// dsn keeps ":memory:" usable for tests.
func dsn(path string) string {
	if path == ":memory:" {
		return path
	}
	return path + "?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=off"
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema(ctx context.Context) error {
	schema := `
	-- Stamps in collection order. No foreign keys from the history tables:
	-- mail and order records keep weak references to deleted stamps.
	CREATE TABLE IF NOT EXISTS stamps (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		design TEXT NOT NULL,
		label TEXT NOT NULL,
		color TEXT NOT NULL,
		value TEXT NOT NULL,
		image_ref TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS mail_history (
		position INTEGER PRIMARY KEY,
		stamp_id TEXT NOT NULL,
		recipient TEXT NOT NULL,
		address TEXT NOT NULL,
		sent_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_mail_history_stamp_id ON mail_history(stamp_id);

	CREATE TABLE IF NOT EXISTS orders (
		position INTEGER PRIMARY KEY,
		order_id TEXT NOT NULL UNIQUE,
		stamp_id TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity BETWEEN 1 AND 1000),
		total_cost TEXT NOT NULL,
		shipping_address TEXT NOT NULL,
		placed_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_orders_stamp_id ON orders(stamp_id);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}
