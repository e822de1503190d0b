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

package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"digital-stamp-go/internal/api"
	"digital-stamp-go/internal/database"
	"digital-stamp-go/internal/imagestore"
	"digital-stamp-go/internal/jsonfile"
	"digital-stamp-go/internal/models"
	"digital-stamp-go/internal/render"
	"digital-stamp-go/internal/session"
	"digital-stamp-go/internal/store"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

// Services is everything a CLI tool needs for one session.
type Services struct {
	State   store.StateStore
	Images  store.ImageStore
	Session *session.Session
	Stamps  *api.StampService
	Palette Palette
}

// InitializeLogger installs a global zap logger. mode "console" selects the
// human-readable development encoder; anything else is JSON.
func InitializeLogger(mode string) (*zap.Logger, func()) {
	var (
		logger *zap.Logger
		err    error
	)
	if strings.EqualFold(mode, "console") {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// NewSessionContext tags ctx with a fresh session id for log correlation.
func NewSessionContext(ctx context.Context, tool string) context.Context {
	return models.WithSessionContext(ctx, &models.SessionContext{
		SessionId: uuid.NewString(),
		Tool:      tool,
		StartedAt: time.Now().UTC(),
	})
}

// InitializeServices opens the configured backends and restores the saved
// session. A missing or unreadable state document is logged and the session
// starts empty.
func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	stateStore, err := NewStateStore(ctx, cfg.State)
	if err != nil {
		return nil, err
	}

	images, err := NewImageStore(ctx, cfg.Images)
	if err != nil {
		stateStore.Close()
		return nil, err
	}

	palette, err := LoadPalette(cfg.Palette)
	if err != nil {
		zap.L().Warn("Using built-in color palette", zap.String("file", cfg.Palette), zap.Error(err))
		palette = DefaultPalette()
	}

	sess := session.New(images)
	services := &Services{
		State:   stateStore,
		Images:  images,
		Session: sess,
		Stamps:  api.NewStampService(render.NewRenderer(), images, sess),
		Palette: palette,
	}

	services.LoadSession(ctx)
	return services, nil
}

// NewStateStore selects the persistence gateway.
func NewStateStore(ctx context.Context, cfg models.StateConfig) (store.StateStore, error) {
	switch cfg.Backend {
	case models.StateBackendSQLite:
		db, err := database.NewService(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return db, nil
	case models.StateBackendJSON, "":
		file, err := jsonfile.NewService(cfg.File)
		if err != nil {
			return nil, err
		}
		return file, nil
	default:
		return nil, fmt.Errorf("unsupported state backend: %s", cfg.Backend)
	}
}

// NewImageStore selects where rendered rasters are kept.
func NewImageStore(ctx context.Context, cfg models.ImageConfig) (store.ImageStore, error) {
	switch cfg.Backend {
	case models.ImageBackendS3:
		s3Store, err := imagestore.NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s3Store, nil
	case models.ImageBackendFilesystem, "":
		fileStore, err := imagestore.NewFileStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return fileStore, nil
	default:
		return nil, fmt.Errorf("unsupported image backend: %s", cfg.Backend)
	}
}

// LoadSession restores the saved document into the session.
func (cs *Services) LoadSession(ctx context.Context) {
	state, err := cs.State.Load(ctx)
	if err != nil {
		var warning *models.StorageWarning
		if errors.As(err, &warning) {
			zap.L().Warn("Starting with empty stamp collection",
				zap.String("op", warning.Op),
				zap.String("path", warning.Path),
				zap.Error(warning.Err))
		} else {
			zap.L().Warn("Starting with empty stamp collection", zap.Error(err))
		}
		state = models.EmptyState()
	}

	cs.Session.Restore(state)
	zap.L().Info("Session loaded",
		zap.Int("stamps", len(state.Stamps)),
		zap.Int("mail_history", len(state.MailHistory)),
		zap.Int("orders", len(state.Orders)))
}

// SaveSession writes the session back. Failures are logged, not fatal: the
// operation already happened in memory.
func (cs *Services) SaveSession(ctx context.Context) error {
	if err := cs.State.Save(ctx, cs.Session.Snapshot()); err != nil {
		zap.L().Error("Failed to save session", zap.Error(err))
		return err
	}
	return nil
}

func (cs *Services) Close() {
	if cs.State != nil {
		cs.State.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
