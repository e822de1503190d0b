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

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"digital-stamp-go/internal/models"
)

func Load() (*models.Config, error) {
	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	stateBackend := strings.ToLower(getEnvString("STATE_BACKEND", models.StateBackendJSON))
	if stateBackend != models.StateBackendJSON && stateBackend != models.StateBackendSQLite {
		return nil, fmt.Errorf("invalid STATE_BACKEND: %q (want %q or %q)", stateBackend, models.StateBackendJSON, models.StateBackendSQLite)
	}

	imageBackend := strings.ToLower(getEnvString("IMAGE_BACKEND", models.ImageBackendFilesystem))
	if imageBackend != models.ImageBackendFilesystem && imageBackend != models.ImageBackendS3 {
		return nil, fmt.Errorf("invalid IMAGE_BACKEND: %q (want %q or %q)", imageBackend, models.ImageBackendFilesystem, models.ImageBackendS3)
	}

	bucket := getEnvString("S3_BUCKET", "")
	if imageBackend == models.ImageBackendS3 && bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required when IMAGE_BACKEND=s3")
	}

	return &models.Config{
		State: models.StateConfig{
			Backend: stateBackend,
			File:    getEnvString("STATE_FILE", "stamp_data.json"),
			Database: models.DatabaseConfig{
				Path:            getEnvString("DATABASE_PATH", "stamps.db"),
				MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 1),
				MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 1),
				ConnMaxLifetime: connMaxLifetime,
				ConnMaxIdleTime: connMaxIdleTime,
				PingTimeout:     pingTimeout,
			},
		},
		Images: models.ImageConfig{
			Backend:  imageBackend,
			Dir:      getEnvString("IMAGE_DIR", "stamps"),
			Bucket:   bucket,
			Prefix:   getEnvString("S3_PREFIX", "stamps/"),
			Region:   getEnvString("AWS_REGION", "us-east-1"),
			Endpoint: getEnvString("S3_ENDPOINT", ""),
		},
		Scanner: models.ScannerConfig{
			RejectDuplicates: getEnvBool("SCAN_REJECT_DUPLICATES", false),
			MaxLength:        getEnvInt("SCAN_MAX_LENGTH", 100),
		},
		Palette: getEnvString("PALETTE_FILE", "palette.yaml"),
		LogMode: LogFormat(),
	}, nil
}

// LogFormat is read on its own so the logger can exist before Load runs.
func LogFormat() string {
	return getEnvString("LOG_FORMAT", "json")
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
