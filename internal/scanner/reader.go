package scanner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"digital-stamp-go/internal/models"

	"go.uber.org/zap"
)

// ClearCommand typed on its own line empties the log instead of being
// recorded as a barcode.
const ClearCommand = ":clear"

// Handlers are the callbacks Run reports to. Either may be nil.
type Handlers struct {
	// OnScan receives every line read, with the record or the reason it
	// was rejected.
	OnScan func(line string, record models.ScanRecord, err error)
	// OnClear receives the number of scans discarded by ClearCommand.
	OnClear func(cleared int)
}

// Run feeds lines from r into the log until EOF or ctx is cancelled.
// Reading happens on a separate goroutine so cancellation is not held up by
// a blocked terminal read; that goroutine exits once r returns.
func (l *Log) Run(ctx context.Context, r io.Reader, h Handlers) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Scan input cancelled", zap.Int("scans", l.Len()))
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read scanner input: %w", err)
				}
				return nil
			}
			if strings.EqualFold(strings.TrimSpace(line), ClearCommand) {
				cleared := l.Len()
				l.Clear()
				zap.L().Info("Scan log cleared", zap.Int("cleared", cleared))
				if h.OnClear != nil {
					h.OnClear(cleared)
				}
				continue
			}
			record, err := l.Scan(line)
			if h.OnScan != nil {
				h.OnScan(line, record, err)
			}
		}
	}
}
