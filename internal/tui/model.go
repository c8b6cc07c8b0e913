package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/reqform/internal/events"
	"github.com/studiowebux/reqform/internal/form"
)

// eventMsg carries one event pulled from the queue
type eventMsg struct {
	event events.Event
}

// queueDoneMsg reports that the queue closed or the context ended
type queueDoneMsg struct {
	err error
}

// Model is the Bubble Tea side of the form. Terminal keys are pushed into
// the event queue; events pulled from the queue are applied to the form one
// per Update, and every Update is followed by a render.
type Model struct {
	ctx    context.Context
	form   *form.Form
	queue  *events.Queue
	logger *slog.Logger

	spinner     spinner.Model
	help        help.Model
	highlighter *highlighter

	width    int
	height   int
	quitting bool
}

// New creates the model. theme is a chroma style name used for JSON bodies.
func New(ctx context.Context, f *form.Form, q *events.Queue, theme string, logger *slog.Logger) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleSpinner

	return &Model{
		ctx:         ctx,
		form:        f,
		queue:       q,
		logger:      logger,
		spinner:     s,
		help:        help.New(),
		highlighter: newHighlighter(theme),
	}
}

// Init starts pulling events and animating the spinner
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.spinner.Tick)
}

// waitForEvent blocks on the queue in a command so Update stays the single
// consumer
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, err := m.queue.Next(m.ctx)
		if err != nil {
			return queueDoneMsg{err: err}
		}
		return eventMsg{event: ev}
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if err := m.queue.Send(keyInput(msg)); err != nil {
			m.logger.Error("input producer stopped", "error", err)
		}
		return m, nil

	case eventMsg:
		if _, tick := msg.event.(events.Tick); !tick {
			m.logger.Debug("dispatch", "event", events.Kind(msg.event))
			if m.form.Handle(msg.event) {
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, m.waitForEvent()

	case queueDoneMsg:
		m.logger.Debug("event queue finished", "error", msg.err)
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the form
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	frame := m.render()
	if x, y, ok := m.Cursor(); ok {
		frame = placeCursor(frame, x, y, cursorCell(m.form.Field(m.form.Focus()).Buffer()))
	}
	return frame
}
