package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// DefaultTickInterval is the ticker period when none is configured
const DefaultTickInterval = 250 * time.Millisecond

// KeyReader blocks until one keypress is available
type KeyReader interface {
	ReadKey() (KeyInput, error)
}

// RunTicker sends a Tick every interval until ctx is done or a send fails
func RunTicker(ctx context.Context, s Sender, interval time.Duration, logger *slog.Logger) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Send(Tick{}); err != nil {
				logger.Error("producer stopped", "producer", "ticker", "error", err)
				return nil
			}
		}
	}
}

// RunInput forwards every key read from r until the reader is exhausted,
// ctx is done or a send fails. Reaching the end of input sends Quit.
func RunInput(ctx context.Context, s Sender, r KeyReader, logger *slog.Logger) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		key, err := r.ReadKey()
		if errors.Is(err, io.EOF) {
			if err := s.Send(Quit{}); err != nil {
				logger.Debug("quit after end of input not delivered", "error", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}

		if err := s.Send(key); err != nil {
			logger.Error("producer stopped", "producer", "input", "error", err)
			return nil
		}
	}
}
