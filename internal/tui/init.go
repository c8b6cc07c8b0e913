package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/reqform/internal/events"
	"github.com/studiowebux/reqform/internal/form"
	"github.com/studiowebux/reqform/internal/keybinds"
	"github.com/studiowebux/reqform/internal/types"
)

// Options configures a TUI session
type Options struct {
	TickInterval time.Duration
	Transport    form.Transport
	Keybinds     *keybinds.Registry
	Theme        string
	// Prefill optionally seeds the form fields
	Prefill *types.HttpRequest
}

// Run starts the TUI and blocks until the user quits
func Run(ctx context.Context, opts Options, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	q := events.NewQueue()
	defer q.Close()

	formOpts := []form.Option{form.WithLogger(logger)}
	if opts.Keybinds != nil {
		formOpts = append(formOpts, form.WithKeybinds(opts.Keybinds))
	}
	f := form.New(q, opts.Transport, formOpts...)
	if opts.Prefill != nil {
		if err := f.Prefill(opts.Prefill); err != nil {
			return err
		}
	}

	interval := opts.TickInterval
	if interval <= 0 {
		interval = events.DefaultTickInterval
	}
	go func() {
		if err := events.RunTicker(ctx, q, interval, logger); err != nil {
			logger.Error("tick producer failed", "error", err)
		}
	}()

	m := New(ctx, f, q, opts.Theme, logger)

	// Pass pointer since Update uses pointer receiver
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}

	return nil
}
