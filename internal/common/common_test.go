package common

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"digital-stamp-go/internal/api"
	"digital-stamp-go/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLoadPalette(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "palette.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
colors:
  - name: Navy
    hex: "#000080"
  - name: blue
    hex: "#0000AA"
`), 0o644))

	palette, err := LoadPalette(file)
	require.NoError(t, err)

	c, err := palette.Resolve("navy")
	require.NoError(t, err)
	assert.Equal(t, models.Color{B: 0x80}, c)

	// file entries override defaults
	c, err = palette.Resolve("BLUE")
	require.NoError(t, err)
	assert.Equal(t, models.Color{B: 0xaa}, c)

	// defaults not in the file remain
	_, err = palette.Resolve("gold")
	assert.NoError(t, err)
}

func TestLoadPalette_MissingFile(t *testing.T) {
	palette, err := LoadPalette(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette(), palette)
}

func TestLoadPalette_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "colors: [oops"},
		{"missing name", "colors:\n  - hex: \"#FFFFFF\"\n"},
		{"bad hex", "colors:\n  - name: mud\n    hex: \"brown\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "palette.yaml")
			require.NoError(t, os.WriteFile(file, []byte(tt.content), 0o644))
			_, err := LoadPalette(file)
			assert.Error(t, err)
		})
	}
}

func TestPaletteResolve(t *testing.T) {
	palette := DefaultPalette()

	c, err := palette.Resolve("#FF8800")
	require.NoError(t, err)
	assert.Equal(t, models.Color{R: 0xff, G: 0x88}, c)

	_, err = palette.Resolve("chartreuse-ish")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestResolveStampId(t *testing.T) {
	stamps := []models.Stamp{
		{Id: "abcd1111-0000-4000-8000-000000000000"},
		{Id: "abcd2222-0000-4000-8000-000000000000"},
		{Id: "ef001111-0000-4000-8000-000000000000"},
	}

	tests := []struct {
		name    string
		query   string
		want    string
		wantErr bool
	}{
		{"full id", stamps[1].Id, stamps[1].Id, false},
		{"unique prefix", "ef00", stamps[2].Id, false},
		{"ambiguous prefix", "abcd", "", true},
		{"short prefix passes through", "ab", "ab", false},
		{"unknown passes through", "ffff", "ffff", false},
		{"blank", "  ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveStampId(stamps, tt.query)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintStamps(t *testing.T) {
	var buf bytes.Buffer
	PrintStamps(&buf, nil)
	assert.Contains(t, buf.String(), "No stamps")

	buf.Reset()
	PrintStamps(&buf, []models.Stamp{{
		Id:     "12345678-aaaa-4bbb-8ccc-dddddddddddd",
		Design: models.DesignWavy,
		Label:  "forever",
		Color:  models.ColorBlue,
		Value:  decimal.RequireFromString("0.55"),
	}})
	out := buf.String()
	assert.Contains(t, out, "12345678")
	assert.Contains(t, out, "FOREVER")
	assert.Contains(t, out, "USPS $0.55")
	assert.Contains(t, out, "#0000FF")
}

func TestPrintHistory_DanglingReference(t *testing.T) {
	var buf bytes.Buffer
	PrintHistory(&buf, api.History{
		Mail: []api.MailHistoryEntry{{
			Record: models.MailRecord{StampId: "gone", Recipient: "Ann", Address: "1 Main St"},
		}},
		Orders: []api.OrderHistoryEntry{},
	})
	out := buf.String()
	assert.Contains(t, out, api.StampUnavailable)
	assert.Contains(t, out, "No orders placed yet.")
}

func newTestConfig(t *testing.T) *models.Config {
	dir := t.TempDir()
	return &models.Config{
		State: models.StateConfig{
			Backend: models.StateBackendJSON,
			File:    filepath.Join(dir, "stamp_data.json"),
		},
		Images: models.ImageConfig{
			Backend: models.ImageBackendFilesystem,
			Dir:     filepath.Join(dir, "stamps"),
		},
		Palette: filepath.Join(dir, "palette.yaml"),
	}
}

func TestInitializeServices_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig(t)

	services, err := InitializeServices(ctx, cfg)
	require.NoError(t, err)
	assert.Empty(t, services.Session.List())

	label := gofakeit.LetterN(8)
	stamp, err := services.Stamps.CreateStamp(ctx, api.CreateStampParams{
		Design: models.DesignStar,
		Label:  label,
		Color:  models.ColorBlue,
		Value:  decimal.RequireFromString("1.25"),
	})
	require.NoError(t, err)
	require.NoError(t, services.SaveSession(ctx))
	services.Close()

	reopened, err := InitializeServices(ctx, cfg)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.Session.Get(stamp.Id)
	require.True(t, ok)
	assert.Equal(t, label, got.Label)
	assert.True(t, got.Value.Equal(stamp.Value))

	data, err := reopened.Stamps.StampImage(ctx, stamp.Id)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestInitializeServices_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig(t)
	cfg.State.Backend = models.StateBackendSQLite
	cfg.State.Database = models.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "stamps.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  time.Second,
	}

	services, err := InitializeServices(ctx, cfg)
	require.NoError(t, err)
	defer services.Close()

	_, err = services.Stamps.CreateStamp(ctx, api.CreateStampParams{
		Design: models.DesignClassic,
		Label:  "Forever",
		Color:  models.ColorBlue,
		Value:  decimal.RequireFromString("0.55"),
	})
	require.NoError(t, err)
	require.NoError(t, services.SaveSession(ctx))

	state, err := services.State.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, state.Stamps, 1)
}

func TestInitializeServices_CorruptStateStartsEmpty(t *testing.T) {
	cfg := newTestConfig(t)
	require.NoError(t, os.WriteFile(cfg.State.File, []byte("{not json"), 0o644))

	services, err := InitializeServices(context.Background(), cfg)
	require.NoError(t, err)
	defer services.Close()

	assert.Empty(t, services.Session.List())
	assert.Empty(t, services.Session.MailHistory())
}

func TestNewStateStore_Unsupported(t *testing.T) {
	_, err := NewStateStore(context.Background(), models.StateConfig{Backend: "postgres"})
	assert.Error(t, err)

	_, err = NewImageStore(context.Background(), models.ImageConfig{Backend: "ftp"})
	assert.Error(t, err)
}

func TestInitializeLogger_InstallsGlobal(t *testing.T) {
	prev := zap.L()
	defer zap.ReplaceGlobals(prev)
	zap.ReplaceGlobals(zap.NewNop())

	for _, mode := range []string{"json", "console"} {
		logger, cleanup := InitializeLogger(mode)
		assert.Same(t, logger, zap.L())
		assert.True(t, zap.L().Core().Enabled(zapcore.InfoLevel), mode)
		cleanup()
	}
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.False(t, isIgnorableSyncError(errors.New("disk full")))
	assert.True(t, isIgnorableSyncError(errors.New("sync /dev/stderr: inappropriate ioctl for device")))
}
