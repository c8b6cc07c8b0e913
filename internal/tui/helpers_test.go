package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/reqform/internal/events"
	"github.com/studiowebux/reqform/internal/form"
	"github.com/studiowebux/reqform/internal/types"
)

type stubTransport struct {
	response *types.Response
	err      error
}

func (s stubTransport) Do(context.Context, *types.HttpRequest) (*types.Response, error) {
	return s.response, s.err
}

// newTestModel creates a sized Model over a fresh queue
func newTestModel(t *testing.T, transport form.Transport) (*Model, *events.Queue) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	q := events.NewQueue()
	f := form.New(q, transport, form.WithLogger(logger))
	m := New(ctx, f, q, "", logger)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, q
}

// pump applies pending queue events through Update, as the program would
func pump(t *testing.T, m *Model) {
	t.Helper()
	for m.queue.Len() > 0 {
		msg := m.waitForEvent()()
		m.Update(msg)
	}
}

// settle consumes events until the queue is empty and no request is running
func settle(t *testing.T, m *Model) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for m.form.InFlight() || m.queue.Len() > 0 {
		ev, err := m.queue.Next(ctx)
		require.NoError(t, err)
		m.Update(eventMsg{event: ev})
	}
}
