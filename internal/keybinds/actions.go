package keybinds

import "github.com/studiowebux/reqform/internal/focus"

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal  Context = "global"  // Available everywhere
	ContextFocused Context = "focused" // Focused request field
	ContextEditing Context = "editing" // Text field being edited
	ContextViewer  Context = "viewer"  // Focused response view
)

// Contexts lists every known context
var Contexts = []Context{ContextGlobal, ContextFocused, ContextEditing, ContextViewer}

const (
	// Global actions
	ActionQuit   Action = "quit"
	ActionSubmit Action = "submit"

	// Direct focus
	ActionFocusMethod         Action = "focus_method"
	ActionFocusUrl            Action = "focus_url"
	ActionFocusQuery          Action = "focus_query"
	ActionFocusBody           Action = "focus_body"
	ActionFocusResponseBody   Action = "focus_response_body"
	ActionFocusResponseHeader Action = "focus_response_header"

	// Grid navigation
	ActionFocusUp    Action = "focus_up"
	ActionFocusDown  Action = "focus_down"
	ActionFocusLeft  Action = "focus_left"
	ActionFocusRight Action = "focus_right"

	// Field lifecycle
	ActionActivate    Action = "activate"     // Enter editing, or cycle the method
	ActionStopEditing Action = "stop_editing" // Back to focused

	// Text editing
	ActionNewline     Action = "newline"
	ActionBackspace   Action = "backspace"
	ActionCursorLeft  Action = "cursor_left"
	ActionCursorRight Action = "cursor_right"
	ActionCursorUp    Action = "cursor_up"
	ActionCursorDown  Action = "cursor_down"
	ActionCursorHome  Action = "cursor_home"
	ActionCursorEnd   Action = "cursor_end"
	ActionPaste       Action = "paste"

	// Response views
	ActionScrollUp   Action = "scroll_up"
	ActionScrollDown Action = "scroll_down"
	ActionCopy       Action = "copy_to_clipboard"
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:                {ActionQuit, "quit", "Global"},
	ActionSubmit:              {ActionSubmit, "send request", "Global"},
	ActionFocusMethod:         {ActionFocusMethod, "method", "Focus"},
	ActionFocusUrl:            {ActionFocusUrl, "url", "Focus"},
	ActionFocusQuery:          {ActionFocusQuery, "query", "Focus"},
	ActionFocusBody:           {ActionFocusBody, "body", "Focus"},
	ActionFocusResponseBody:   {ActionFocusResponseBody, "response body", "Focus"},
	ActionFocusResponseHeader: {ActionFocusResponseHeader, "response header", "Focus"},
	ActionFocusUp:             {ActionFocusUp, "focus up", "Focus"},
	ActionFocusDown:           {ActionFocusDown, "focus down", "Focus"},
	ActionFocusLeft:           {ActionFocusLeft, "focus left", "Focus"},
	ActionFocusRight:          {ActionFocusRight, "focus right", "Focus"},
	ActionActivate:            {ActionActivate, "edit", "Field"},
	ActionStopEditing:         {ActionStopEditing, "stop editing", "Field"},
	ActionNewline:             {ActionNewline, "new line", "Editing"},
	ActionBackspace:           {ActionBackspace, "delete", "Editing"},
	ActionCursorLeft:          {ActionCursorLeft, "left", "Editing"},
	ActionCursorRight:         {ActionCursorRight, "right", "Editing"},
	ActionCursorUp:            {ActionCursorUp, "up", "Editing"},
	ActionCursorDown:          {ActionCursorDown, "down", "Editing"},
	ActionCursorHome:          {ActionCursorHome, "line start", "Editing"},
	ActionCursorEnd:           {ActionCursorEnd, "end", "Editing"},
	ActionPaste:               {ActionPaste, "paste", "Editing"},
	ActionScrollUp:            {ActionScrollUp, "scroll up", "Response"},
	ActionScrollDown:          {ActionScrollDown, "scroll down", "Response"},
	ActionCopy:                {ActionCopy, "copy", "Response"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is one the form can perform
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// FocusTarget returns the field a direct-focus action moves to
func FocusTarget(action Action) (focus.Position, bool) {
	switch action {
	case ActionFocusMethod:
		return focus.Method, true
	case ActionFocusUrl:
		return focus.Url, true
	case ActionFocusQuery:
		return focus.Query, true
	case ActionFocusBody:
		return focus.Body, true
	case ActionFocusResponseBody:
		return focus.ResponseBody, true
	case ActionFocusResponseHeader:
		return focus.ResponseHeader, true
	}
	return 0, false
}
