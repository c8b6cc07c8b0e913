package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/reqform/internal/events"
	"github.com/studiowebux/reqform/internal/executor"
	"github.com/studiowebux/reqform/internal/focus"
	"github.com/studiowebux/reqform/internal/types"
)

func TestKeyInput(t *testing.T) {
	tests := []struct {
		name      string
		msg       tea.KeyMsg
		wantName  string
		wantRunes []rune
	}{
		{"letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, "q", []rune{'q'}},
		{"wide rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'世'}}, "世", []rune{'世'}},
		{"alt letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}, Alt: true}, "alt+q", nil},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, " ", []rune{' '}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, "enter", nil},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, "ctrl+s", nil},
		{"shift+up", tea.KeyMsg{Type: tea.KeyShiftUp}, "shift+up", nil},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a=1"), Paste: true}, "paste", []rune("a=1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keyInput(tt.msg)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantRunes, got.Runes)
		})
	}
}

func TestUpdate_KeysGoThroughQueue(t *testing.T) {
	m, q := newTestModel(t, stubTransport{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, focus.Url, m.form.Focus(), "focus changes only when the event is consumed")

	pump(t, m)
	assert.Equal(t, focus.Body, m.form.Focus())
}

func TestUpdate_EventReschedulesWait(t *testing.T) {
	m, q := newTestModel(t, stubTransport{})

	_, cmd := m.Update(eventMsg{event: events.Tick{}})
	require.NotNil(t, cmd)

	require.NoError(t, q.Send(events.ChangeFocus{Position: focus.Body}))
	msg := cmd()
	assert.Equal(t, eventMsg{event: events.ChangeFocus{Position: focus.Body}}, msg)
}

func TestUpdate_QuitEvent(t *testing.T) {
	m, _ := newTestModel(t, stubTransport{})

	_, cmd := m.Update(eventMsg{event: events.Quit{}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "", m.View())
}

func TestUpdate_QueueClosed(t *testing.T) {
	m, q := newTestModel(t, stubTransport{})
	q.Close()

	msg := m.waitForEvent()()
	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestSubmitRendersResponse(t *testing.T) {
	resp := executor.ToResponse(&types.RequestResult{
		Status:       404,
		StatusText:   "404 Not Found",
		Headers:      []types.Header{{Name: "X-Trace", Value: "abc"}},
		Body:         "missing",
		Duration:     250 * time.Millisecond,
		ResponseSize: 7,
	})
	m, _ := newTestModel(t, stubTransport{response: resp})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	settle(t, m)

	view := m.View()
	assert.Contains(t, view, "STATUS: 404 Not Found")
	assert.Contains(t, view, "RESPONSE TIME: 0.250s")
	assert.Contains(t, view, "missing")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	pump(t, m)
	assert.Contains(t, m.View(), "abc")
}

func TestView_ShowsPanelsAndHelp(t *testing.T) {
	m, _ := newTestModel(t, stubTransport{})

	view := m.View()
	for _, want := range []string{"Ctrl + s: send request", "[M]METHOD", "GET", "[U]URL", "[Q]QUERY", "[R]BODY", "[B]Body", "[H]Header", "STATUS: -"} {
		assert.Contains(t, view, want)
	}
}

func TestView_EmptyBeforeWindowSize(t *testing.T) {
	m, _ := newTestModel(t, stubTransport{})
	m.width, m.height = 0, 0
	assert.Equal(t, "", m.View())
}

func TestView_ErrorLine(t *testing.T) {
	m, _ := newTestModel(t, stubTransport{err: context.DeadlineExceeded})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	settle(t, m)

	assert.Contains(t, m.View(), msgTimeout)
	assert.Nil(t, m.form.Response())
}
