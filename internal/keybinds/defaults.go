package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerFocusedBindings(r)
	registerEditingBindings(r)
	registerViewerBindings(r)

	return r
}

// registerGlobalBindings sets up the shortcuts every field falls back to
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuit)
	r.Register(ContextGlobal, "ctrl+s", ActionSubmit)

	r.Register(ContextGlobal, "m", ActionFocusMethod)
	r.Register(ContextGlobal, "u", ActionFocusUrl)
	r.Register(ContextGlobal, "q", ActionFocusQuery)
	r.Register(ContextGlobal, "r", ActionFocusBody)
	r.Register(ContextGlobal, "b", ActionFocusResponseBody)
	r.Register(ContextGlobal, "h", ActionFocusResponseHeader)

	r.Register(ContextGlobal, "shift+up", ActionFocusUp)
	r.Register(ContextGlobal, "shift+down", ActionFocusDown)
	r.Register(ContextGlobal, "shift+left", ActionFocusLeft)
	r.Register(ContextGlobal, "shift+right", ActionFocusRight)
}

// registerFocusedBindings sets up keys for a focused, non-editing field
func registerFocusedBindings(r *Registry) {
	r.Register(ContextFocused, "enter", ActionActivate)
}

// registerEditingBindings sets up keys for text fields being edited
func registerEditingBindings(r *Registry) {
	r.Register(ContextEditing, "esc", ActionStopEditing)
	r.Register(ContextEditing, "enter", ActionNewline)
	r.Register(ContextEditing, "backspace", ActionBackspace)
	r.Register(ContextEditing, "left", ActionCursorLeft)
	r.Register(ContextEditing, "right", ActionCursorRight)
	r.Register(ContextEditing, "up", ActionCursorUp)
	r.Register(ContextEditing, "down", ActionCursorDown)
	r.RegisterMultiple(ContextEditing, []string{"home", "ctrl+a"}, ActionCursorHome)
	r.RegisterMultiple(ContextEditing, []string{"end", "ctrl+e"}, ActionCursorEnd)
	r.Register(ContextEditing, "ctrl+v", ActionPaste)
}

// registerViewerBindings sets up keys for the read-only response views
func registerViewerBindings(r *Registry) {
	r.RegisterMultiple(ContextViewer, []string{"k", "up"}, ActionScrollUp)
	r.RegisterMultiple(ContextViewer, []string{"j", "down"}, ActionScrollDown)
	r.Register(ContextViewer, "y", ActionCopy)
}
