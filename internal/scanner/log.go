// Package scanner records barcodes read from a keyboard-emulating USB
// scanner. The device types each code followed by Enter, so a scan is one
// line of input.
package scanner

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"digital-stamp-go/internal/models"

	"go.uber.org/zap"
)

// DefaultMaxLength applies when the config leaves ScannerConfig.MaxLength unset.
const DefaultMaxLength = 100

var ErrDuplicateScan = errors.New("barcode already scanned")

// Log is the ordered list of accepted scans for one session.
type Log struct {
	records          []models.ScanRecord
	seen             map[string]struct{}
	rejectDuplicates bool
	maxLength        int
	now              func() time.Time
}

func NewLog(cfg models.ScannerConfig) *Log {
	maxLength := cfg.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Log{
		records:          []models.ScanRecord{},
		seen:             make(map[string]struct{}),
		rejectDuplicates: cfg.RejectDuplicates,
		maxLength:        maxLength,
		now:              time.Now,
	}
}

// WithClock overrides the timestamp source.
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

// Scan validates and records one barcode.
func (l *Log) Scan(code string) (models.ScanRecord, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.ScanRecord{}, models.NewValidationError("barcode", "must not be blank")
	}
	if utf8.RuneCountInString(code) > l.maxLength {
		return models.ScanRecord{}, models.NewValidationError("barcode", fmt.Sprintf("must be at most %d characters", l.maxLength))
	}

	if _, dup := l.seen[code]; dup && l.rejectDuplicates {
		zap.L().Debug("Rejected duplicate scan", zap.String("barcode", code))
		return models.ScanRecord{}, fmt.Errorf("%s: %w", code, ErrDuplicateScan)
	}

	record := models.ScanRecord{Barcode: code, ScannedAt: l.now().UTC()}
	l.records = append(l.records, record)
	l.seen[code] = struct{}{}

	zap.L().Info("Barcode scanned",
		zap.String("barcode", code),
		zap.Int("count", len(l.records)))
	return record, nil
}

// List returns the scans in arrival order.
func (l *Log) List() []models.ScanRecord {
	return append([]models.ScanRecord{}, l.records...)
}

func (l *Log) Len() int {
	return len(l.records)
}

func (l *Log) Clear() {
	l.records = []models.ScanRecord{}
	l.seen = make(map[string]struct{})
}
