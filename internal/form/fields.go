package form

import (
	"github.com/studiowebux/reqform/internal/editor"
	"github.com/studiowebux/reqform/internal/executor"
	"github.com/studiowebux/reqform/internal/focus"
)

// stateOf derives the state of the field at pos from the form focus
func stateOf(pos, current focus.Position, editing bool) focus.State {
	if pos != current {
		return focus.Unfocused
	}
	if editing {
		return focus.Editing
	}
	return focus.Focused
}

// MethodField is the enumerated method choice. It never enters Editing.
type MethodField struct {
	index int
}

// Value returns the selected method
func (m *MethodField) Value() string {
	return executor.Methods[m.index]
}

// Cycle selects the next method, wrapping after the last one
func (m *MethodField) Cycle() {
	m.index = (m.index + 1) % len(executor.Methods)
}

// Set selects method, returning false when it is not in the list
func (m *MethodField) Set(method string) bool {
	for i, v := range executor.Methods {
		if v == method {
			m.index = i
			return true
		}
	}
	return false
}

// TextField is a Url, Query or Body field backed by an editor buffer
type TextField struct {
	pos    focus.Position
	buffer *editor.Buffer
}

func newTextField(pos focus.Position, buffer *editor.Buffer) *TextField {
	return &TextField{pos: pos, buffer: buffer}
}

// Position returns where the field sits in the grid
func (t *TextField) Position() focus.Position {
	return t.pos
}

// Buffer exposes the underlying buffer for rendering
func (t *TextField) Buffer() *editor.Buffer {
	return t.buffer
}

// Viewer is a read-only scroll view over response lines
type Viewer struct {
	pos    focus.Position
	offset int
}

// Offset returns the index of the first visible line
func (v *Viewer) Offset() int {
	return v.offset
}

// ScrollDown moves the window down one row, clamped to the last line
func (v *Viewer) ScrollDown(total int) {
	if v.offset < total-1 {
		v.offset++
	}
}

// ScrollUp moves the window up one row, clamped to the first line
func (v *Viewer) ScrollUp() {
	if v.offset > 0 {
		v.offset--
	}
}

func (v *Viewer) reset() {
	v.offset = 0
}
