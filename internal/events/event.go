package events

import (
	"unicode/utf8"

	"github.com/studiowebux/reqform/internal/focus"
	"github.com/studiowebux/reqform/internal/types"
)

// Event is one unit of work for the consumer loop. The set of
// implementations is closed.
type Event interface {
	event()
}

// KeyInput is a single keypress. Name uses Bubble Tea's key naming
// ("enter", "ctrl+s", "a"). Runes holds the text to insert for printable
// keys and pastes; it is empty for control keys.
type KeyInput struct {
	Name  string
	Runes []rune
}

// Tick asks for a render and carries no state change
type Tick struct{}

// Quit stops the consumer loop
type Quit struct{}

// SetQuery carries a new canonical query string for the Url and Query
// fields. Source is the field whose edit produced it; that view is already
// current and is left alone. Any other Source updates both views.
type SetQuery struct {
	Text   string
	Source focus.Position
}

// Request asks the mediator to submit the current form
type Request struct{}

// Response delivers the outcome of a submitted request. At most one of
// Response and Err is set; both nil means there was nothing to display.
type Response struct {
	Response *types.Response
	Err      error
}

// ChangeFocus moves the single form focus to Position
type ChangeFocus struct {
	Position focus.Position
}

func (KeyInput) event()    {}
func (Tick) event()        {}
func (Quit) event()        {}
func (SetQuery) event()    {}
func (Request) event()     {}
func (Response) event()    {}
func (ChangeFocus) event() {}

// Key builds a KeyInput from a key name. Single-rune names are treated as
// printable input.
func Key(name string) KeyInput {
	if name == "space" {
		name = " "
	}
	if utf8.RuneCountInString(name) == 1 {
		return KeyInput{Name: name, Runes: []rune(name)}
	}
	return KeyInput{Name: name}
}

// Printable reports whether the key carries text to insert
func (k KeyInput) Printable() bool {
	return len(k.Runes) > 0
}

// Kind names the event type for logs
func Kind(ev Event) string {
	switch ev.(type) {
	case KeyInput:
		return "key_input"
	case Tick:
		return "tick"
	case Quit:
		return "quit"
	case SetQuery:
		return "set_query"
	case Request:
		return "request"
	case Response:
		return "response"
	case ChangeFocus:
		return "change_focus"
	default:
		return "unknown"
	}
}
