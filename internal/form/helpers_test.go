package form

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/studiowebux/reqform/internal/events"
	"github.com/studiowebux/reqform/internal/executor"
	"github.com/studiowebux/reqform/internal/focus"
	"github.com/studiowebux/reqform/internal/types"
)

// recordingSender collects events instead of queueing them
type recordingSender struct {
	mu     sync.Mutex
	events []events.Event
}

func (s *recordingSender) Send(ev events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSender) take() []events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.events
	s.events = nil
	return out
}

// fakeTransport returns a canned response. When release is set, Do blocks
// until it is closed.
type fakeTransport struct {
	mu       sync.Mutex
	calls    []*types.HttpRequest
	response *types.Response
	err      error
	release  chan struct{}
}

func (t *fakeTransport) Do(ctx context.Context, req *types.HttpRequest) (*types.Response, error) {
	t.mu.Lock()
	t.calls = append(t.calls, req)
	t.mu.Unlock()
	if t.release != nil {
		<-t.release
	}
	return t.response, t.err
}

func (t *fakeTransport) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

func newTestForm(t *testing.T, opts ...Option) (*Form, *recordingSender) {
	t.Helper()
	s := &recordingSender{}
	return New(s, &fakeTransport{}, opts...), s
}

// dispatch feeds every recorded event back into the form, the way the
// consumer loop would, until no new events appear
func dispatch(f *Form, s *recordingSender) {
	for {
		evs := s.take()
		if len(evs) == 0 {
			return
		}
		for _, ev := range evs {
			f.Handle(ev)
		}
	}
}

func press(f *Form, s *recordingSender, keys ...string) {
	for _, k := range keys {
		f.Handle(events.Key(k))
		dispatch(f, s)
	}
}

func typeText(f *Form, s *recordingSender, text string) {
	for _, r := range text {
		press(f, s, string(r))
	}
}

func activeCount(f *Form) int {
	n := 0
	for _, p := range focus.Positions {
		if f.State(p).Active() {
			n++
		}
	}
	return n
}

func sampleResponse(body string, headers ...types.Header) *types.Response {
	return executor.ToResponse(&types.RequestResult{
		Status:       200,
		StatusText:   "200 OK",
		Headers:      headers,
		Body:         body,
		ResponseSize: len(body),
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadAll() (string, error) {
	return c.text, c.err
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}
