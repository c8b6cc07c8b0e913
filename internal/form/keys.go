package form

import (
	"github.com/studiowebux/reqform/internal/editor"
	"github.com/studiowebux/reqform/internal/events"
	"github.com/studiowebux/reqform/internal/focus"
	"github.com/studiowebux/reqform/internal/keybinds"
)

// handleKey routes a key to the focused field. Keys the field does not
// consume fall through to the global bindings; unknown keys are ignored.
func (f *Form) handleKey(k events.KeyInput) {
	switch {
	case f.editing:
		f.handleEditingKey(k)
	case f.focus.IsResponse():
		f.handleViewerKey(k)
	default:
		f.handleFocusedKey(k)
	}
}

func (f *Form) handleFocusedKey(k events.KeyInput) {
	action, ok := f.keys.Match(keybinds.ContextFocused, k.Name)
	if !ok {
		return
	}
	if action != keybinds.ActionActivate {
		f.perform(action)
		return
	}

	if f.focus == focus.Method {
		f.method.Cycle()
		return
	}
	f.editing = true
}

func (f *Form) handleEditingKey(k events.KeyInput) {
	field := f.Field(f.focus)
	if field == nil {
		f.editing = false
		return
	}

	if action, ok := f.keys.Lookup(keybinds.ContextEditing, k.Name); ok {
		f.edit(field, action)
		return
	}

	if k.Printable() {
		f.insert(field, k.Runes)
		return
	}

	if action, ok := f.keys.Lookup(keybinds.ContextGlobal, k.Name); ok {
		f.perform(action)
	}
}

// insert types runes into field and syncs once if anything changed
func (f *Form) insert(field *TextField, runes []rune) {
	changed := false
	for _, r := range runes {
		if field.buffer.InsertChar(r) {
			changed = true
		}
	}
	if changed {
		f.afterEdit(field)
	}
}

func (f *Form) edit(field *TextField, action keybinds.Action) {
	buf := field.buffer
	switch action {
	case keybinds.ActionStopEditing:
		f.editing = false
	case keybinds.ActionNewline:
		// a new empty Query row does not change the query until typed into
		buf.InsertNewline()
	case keybinds.ActionBackspace:
		if buf.Backspace() {
			f.afterEdit(field)
		}
	case keybinds.ActionCursorLeft:
		buf.Move(editor.Left)
	case keybinds.ActionCursorRight:
		buf.Move(editor.Right)
	case keybinds.ActionCursorUp:
		buf.Move(editor.Up)
	case keybinds.ActionCursorDown:
		buf.Move(editor.Down)
	case keybinds.ActionCursorHome:
		buf.MoveLineStart()
	case keybinds.ActionCursorEnd:
		buf.MoveLineEnd()
	case keybinds.ActionPaste:
		f.paste(field)
	default:
		f.perform(action)
	}
}

func (f *Form) handleViewerKey(k events.KeyInput) {
	action, ok := f.keys.Match(keybinds.ContextViewer, k.Name)
	if !ok {
		return
	}

	view := f.Viewer(f.focus)
	switch action {
	case keybinds.ActionScrollDown:
		view.ScrollDown(len(f.ViewLines(f.focus)))
	case keybinds.ActionScrollUp:
		view.ScrollUp()
	case keybinds.ActionCopy:
		f.copyView(f.focus)
	default:
		f.perform(action)
	}
}

// perform runs a global action by sending the matching event
func (f *Form) perform(action keybinds.Action) {
	if target, ok := keybinds.FocusTarget(action); ok {
		f.send(events.ChangeFocus{Position: target})
		return
	}

	switch action {
	case keybinds.ActionQuit:
		f.send(events.Quit{})
	case keybinds.ActionSubmit:
		f.send(events.Request{})
	case keybinds.ActionFocusUp:
		f.moveFocus(f.focus.Up())
	case keybinds.ActionFocusDown:
		f.moveFocus(f.focus.Down())
	case keybinds.ActionFocusLeft:
		f.moveFocus(f.focus.Left())
	case keybinds.ActionFocusRight:
		f.moveFocus(f.focus.Right())
	default:
		f.logger.Debug("action not available here", "action", string(action), "focus", f.focus.String())
	}
}

// moveFocus sends a focus change unless navigation was clamped at an edge
func (f *Form) moveFocus(target focus.Position) {
	if target == f.focus {
		return
	}
	f.send(events.ChangeFocus{Position: target})
}
