package form

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/studiowebux/reqform/internal/editor"
	"github.com/studiowebux/reqform/internal/events"
	"github.com/studiowebux/reqform/internal/focus"
	"github.com/studiowebux/reqform/internal/keybinds"
	"github.com/studiowebux/reqform/internal/types"
)

// ErrInFlight is reported when a submit arrives while a request is running
var ErrInFlight = errors.New("request already in flight")

// Form is the root coordinator of the request form
type Form struct {
	focus   focus.Position
	editing bool

	method MethodField
	url    *TextField
	query  *TextField
	body   *TextField

	responseBody   *Viewer
	responseHeader *Viewer
	tab            focus.Position

	response *types.Response
	err      error

	mediator *Mediator
	sender   events.Sender
	keys      *keybinds.Registry
	clipboard Clipboard
	logger    *slog.Logger
}

// Clipboard reads and writes the system clipboard
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Option configures a Form
type Option func(*Form)

// WithKeybinds replaces the default key registry
func WithKeybinds(r *keybinds.Registry) Option {
	return func(f *Form) { f.keys = r }
}

// WithLogger sets the logger for dispatch and request diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) { f.logger = l }
}

// WithClipboard replaces the system clipboard
func WithClipboard(c Clipboard) Option {
	return func(f *Form) { f.clipboard = c }
}

// New creates a form with Url focused. Events produced by key handling
// and request completion are sent to sender.
func New(sender events.Sender, transport Transport, opts ...Option) *Form {
	f := &Form{
		focus:          focus.Url,
		url:            newTextField(focus.Url, editor.NewSingleLine()),
		query:          newTextField(focus.Query, editor.NewMultiLine(false)),
		body:           newTextField(focus.Body, editor.NewMultiLine(true)),
		responseBody:   &Viewer{pos: focus.ResponseBody},
		responseHeader: &Viewer{pos: focus.ResponseHeader},
		tab:            focus.ResponseBody,
		sender:         sender,
		keys:           keybinds.NewDefaultRegistry(),
		clipboard:      systemClipboard{},
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.mediator = NewMediator(transport, sender, f.logger)
	return f
}

// Handle applies one event. It returns true when the loop should stop.
func (f *Form) Handle(ev events.Event) bool {
	switch ev := ev.(type) {
	case events.KeyInput:
		f.handleKey(ev)
	case events.Quit:
		f.mediator.Close()
		return true
	case events.SetQuery:
		f.applyQuery(ev)
	case events.Request:
		f.submit()
	case events.Response:
		f.install(ev)
	case events.ChangeFocus:
		f.changeFocus(ev.Position)
	case events.Tick:
	}
	return false
}

// changeFocus is the only mutator of the form focus
func (f *Form) changeFocus(pos focus.Position) {
	if !pos.Valid() {
		f.logger.Warn("ignoring focus change to unknown position", "position", int(pos))
		return
	}
	f.logger.Debug("focus changed", "from", f.focus.String(), "to", pos.String())
	f.focus = pos
	f.editing = false
	if pos.IsResponse() {
		f.tab = pos
	}
}

func (f *Form) submit() {
	req := f.Request()
	if !f.mediator.Submit(req) {
		f.err = ErrInFlight
	}
}

func (f *Form) install(ev events.Response) {
	f.mediator.Complete()
	if ev.Err != nil {
		f.logger.Info("request failed", "error", ev.Err)
		f.err = ev.Err
		return
	}
	if ev.Response == nil {
		return
	}

	resp := ev.Response
	resp.Unchanged = f.response != nil && f.response.Digest == resp.Digest
	f.response = resp
	f.responseBody.reset()
	f.responseHeader.reset()
	f.err = nil
}

func (f *Form) send(ev events.Event) {
	if err := f.sender.Send(ev); err != nil {
		f.logger.Error("failed to send event", "event", events.Kind(ev), "error", err)
	}
}

func (f *Form) copyView(pos focus.Position) {
	lines := f.ViewLines(pos)
	if len(lines) == 0 {
		return
	}
	if err := f.clipboard.WriteAll(strings.Join(lines, "\n")); err != nil {
		f.err = fmt.Errorf("copy to clipboard: %w", err)
	}
}

func (f *Form) paste(field *TextField) {
	text, err := f.clipboard.ReadAll()
	if err != nil {
		f.err = fmt.Errorf("paste from clipboard: %w", err)
		return
	}
	f.insert(field, []rune(text))
}

// Prefill loads a request into the fields without emitting events. The
// Query field is derived from the URL directly.
func (f *Form) Prefill(req *types.HttpRequest) error {
	if req.Method != "" && !f.method.Set(strings.ToUpper(req.Method)) {
		return fmt.Errorf("unsupported method %q", req.Method)
	}
	f.url.buffer.SetText(req.URL)
	f.url.buffer.MoveEnd()
	if q, ok := queryOf(req.URL); ok {
		f.query.buffer.SetLines(splitQuery(q))
	} else {
		f.query.buffer.Clear()
	}
	f.body.buffer.SetText(req.Body)
	return nil
}

// Request derives the outgoing request from the current field values
func (f *Form) Request() *types.HttpRequest {
	return &types.HttpRequest{
		Method: f.method.Value(),
		URL:    f.url.buffer.Text(),
		Body:   f.body.buffer.Join("\n"),
	}
}

// Focus returns the focused position
func (f *Form) Focus() focus.Position {
	return f.focus
}

// Editing reports whether the focused field is being edited
func (f *Form) Editing() bool {
	return f.editing
}

// State returns the state of the field at pos
func (f *Form) State(pos focus.Position) focus.State {
	return stateOf(pos, f.focus, f.editing)
}

// ContainerState returns Focused when the focus is inside the container
// (request or response) that holds pos
func (f *Form) ContainerState(pos focus.Position) focus.State {
	if pos.IsResponse() == f.focus.IsResponse() {
		return focus.Focused
	}
	return focus.Unfocused
}

// Method returns the selected method
func (f *Form) Method() string {
	return f.method.Value()
}

// Field returns the text field at pos, or nil for Method and the
// response views
func (f *Form) Field(pos focus.Position) *TextField {
	switch pos {
	case focus.Url:
		return f.url
	case focus.Query:
		return f.query
	case focus.Body:
		return f.body
	}
	return nil
}

// Viewer returns the response view at pos, or nil for request fields
func (f *Form) Viewer(pos focus.Position) *Viewer {
	switch pos {
	case focus.ResponseBody:
		return f.responseBody
	case focus.ResponseHeader:
		return f.responseHeader
	}
	return nil
}

// ViewLines returns the lines shown by the response view at pos
func (f *Form) ViewLines(pos focus.Position) []string {
	if f.response == nil {
		return nil
	}
	switch pos {
	case focus.ResponseBody:
		return f.response.Lines
	case focus.ResponseHeader:
		return f.response.HeaderLines()
	}
	return nil
}

// ActiveTab returns the response view shown in the response panel
func (f *Form) ActiveTab() focus.Position {
	return f.tab
}

// Response returns the last successful response, or nil
func (f *Form) Response() *types.Response {
	return f.response
}

// Err returns the error from the last failed action, cleared by the next
// successful response
func (f *Form) Err() error {
	return f.err
}

// InFlight reports whether a request is running
func (f *Form) InFlight() bool {
	return f.mediator.InFlight()
}

// Keybinds returns the key registry used for dispatch
func (f *Form) Keybinds() *keybinds.Registry {
	return f.keys
}

// KeyContext returns the keybinding context of the focused field
func (f *Form) KeyContext() keybinds.Context {
	switch {
	case f.editing:
		return keybinds.ContextEditing
	case f.focus.IsResponse():
		return keybinds.ContextViewer
	default:
		return keybinds.ContextFocused
	}
}
