package scanner

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"digital-stamp-go/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestLog(reject bool) *Log {
	return NewLog(models.ScannerConfig{RejectDuplicates: reject}).WithClock(func() time.Time { return fixedNow })
}

func TestScan_TrimsAndRecords(t *testing.T) {
	log := newTestLog(false)

	rec, err := log.Scan("  9400111899223100001234 \r")
	require.NoError(t, err)
	assert.Equal(t, "9400111899223100001234", rec.Barcode)
	assert.True(t, rec.ScannedAt.Equal(fixedNow))
	assert.Equal(t, []models.ScanRecord{rec}, log.List())
}

func TestScan_Validation(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"whitespace", "   \t"},
		{"too long", strings.Repeat("9", DefaultMaxLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := newTestLog(false)
			_, err := log.Scan(tt.code)

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "barcode", verr.Field)
			assert.Zero(t, log.Len())
		})
	}
}

func TestScan_MaxLengthBoundary(t *testing.T) {
	log := newTestLog(false)
	_, err := log.Scan(strings.Repeat("1", DefaultMaxLength))
	assert.NoError(t, err)
}

func TestScan_Duplicates(t *testing.T) {
	code := gofakeit.Numerify("##########")

	t.Run("allowed by default", func(t *testing.T) {
		log := newTestLog(false)
		_, err := log.Scan(code)
		require.NoError(t, err)
		_, err = log.Scan(code)
		require.NoError(t, err)
		assert.Equal(t, 2, log.Len())
	})

	t.Run("rejected when configured", func(t *testing.T) {
		log := newTestLog(true)
		_, err := log.Scan(code)
		require.NoError(t, err)
		_, err = log.Scan(" " + code)
		assert.ErrorIs(t, err, ErrDuplicateScan)
		assert.Equal(t, 1, log.Len())
	})
}

func TestClear(t *testing.T) {
	log := newTestLog(true)
	_, err := log.Scan("ABC")
	require.NoError(t, err)

	log.Clear()
	assert.Empty(t, log.List())

	// the duplicate set is reset too
	_, err = log.Scan("ABC")
	assert.NoError(t, err)
}

func TestList_ReturnsCopy(t *testing.T) {
	log := newTestLog(false)
	_, err := log.Scan("ABC")
	require.NoError(t, err)

	list := log.List()
	list[0].Barcode = "changed"
	assert.Equal(t, "ABC", log.List()[0].Barcode)
}

func TestRun_ReadsUntilEOF(t *testing.T) {
	log := newTestLog(true)
	input := "111\n\n222\n111\n333"

	var accepted, rejected []string
	err := log.Run(context.Background(), strings.NewReader(input), Handlers{
		OnScan: func(line string, rec models.ScanRecord, err error) {
			if err != nil {
				rejected = append(rejected, line)
				return
			}
			accepted = append(accepted, rec.Barcode)
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222", "333"}, accepted)
	assert.Equal(t, []string{"", "111"}, rejected)
}

func TestRun_ClearCommand(t *testing.T) {
	log := newTestLog(true)
	input := "111\n222\n :CLEAR \n111\n"

	var cleared []int
	var accepted []string
	err := log.Run(context.Background(), strings.NewReader(input), Handlers{
		OnScan: func(_ string, rec models.ScanRecord, err error) {
			require.NoError(t, err)
			accepted = append(accepted, rec.Barcode)
		},
		OnClear: func(n int) { cleared = append(cleared, n) },
	})

	require.NoError(t, err)
	assert.Equal(t, []int{2}, cleared)
	// duplicates are allowed again after a clear
	assert.Equal(t, []string{"111", "222", "111"}, accepted)
	assert.Equal(t, 1, log.Len())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device unplugged")
}

func TestRun_ReadError(t *testing.T) {
	log := newTestLog(false)
	err := log.Run(context.Background(), failingReader{}, Handlers{})
	assert.ErrorContains(t, err, "device unplugged")
}

func TestRun_Cancel(t *testing.T) {
	log := newTestLog(false)
	pr, pw := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())

	scanned := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		errCh <- log.Run(ctx, pr, Handlers{
			OnScan: func(string, models.ScanRecord, error) { close(scanned) },
		})
	}()

	_, err := pw.Write([]byte("ABC\n"))
	require.NoError(t, err)
	<-scanned

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.Equal(t, 1, log.Len())

	// unblock the reader goroutine
	require.NoError(t, pw.Close())
}
