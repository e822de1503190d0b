package models

import "time"

// Config represents the application configuration
type Config struct {
	State   StateConfig
	Images  ImageConfig
	Scanner ScannerConfig
	Palette string
	LogMode string
}

// StateConfig selects and configures the persistence gateway
type StateConfig struct {
	Backend  string // "json" or "sqlite"
	File     string
	Database DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// ImageConfig selects where rendered stamp rasters live
type ImageConfig struct {
	Backend  string // "filesystem" or "s3"
	Dir      string
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

// ScannerConfig holds barcode scan log settings
type ScannerConfig struct {
	RejectDuplicates bool
	MaxLength        int
}

const (
	StateBackendJSON   = "json"
	StateBackendSQLite = "sqlite"

	ImageBackendFilesystem = "filesystem"
	ImageBackendS3         = "s3"
)
