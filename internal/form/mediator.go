package form

import (
	"context"
	"log/slog"
	"time"

	"github.com/studiowebux/reqform/internal/events"
	"github.com/studiowebux/reqform/internal/executor"
	"github.com/studiowebux/reqform/internal/types"
)

// Transport performs one request and returns the display model
type Transport interface {
	Do(ctx context.Context, req *types.HttpRequest) (*types.Response, error)
}

// HTTPTransport sends requests with the executor and pretty-prints the
// result
type HTTPTransport struct {
	Options executor.Options
}

// Do implements Transport
func (t HTTPTransport) Do(ctx context.Context, req *types.HttpRequest) (*types.Response, error) {
	result, err := executor.Execute(ctx, req, t.Options)
	if err != nil {
		return nil, err
	}
	return executor.ToResponse(result), nil
}

// RequestState is the mediator lifecycle
type RequestState int

const (
	Idle RequestState = iota
	Requesting
)

func (s RequestState) String() string {
	if s == Requesting {
		return "requesting"
	}
	return "idle"
}

// Mediator runs submitted requests off the consumer loop and reports
// results as Response events. Its state is only touched from the loop.
type Mediator struct {
	transport Transport
	sender    events.Sender
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	state   RequestState
	started time.Time
}

// NewMediator creates an idle mediator
func NewMediator(transport Transport, sender events.Sender, logger *slog.Logger) *Mediator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Mediator{
		transport: transport,
		sender:    sender,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Submit starts req unless a request is already running. It returns false
// when the submit was dropped.
func (m *Mediator) Submit(req *types.HttpRequest) bool {
	if m.state == Requesting {
		m.logger.Debug("dropping submit, request in flight", "method", req.Method, "url", req.URL)
		return false
	}

	m.state = Requesting
	m.started = time.Now()
	m.logger.Debug("request started", "method", req.Method, "url", req.URL)

	go func() {
		resp, err := m.transport.Do(m.ctx, req)
		if sendErr := m.sender.Send(events.Response{Response: resp, Err: err}); sendErr != nil {
			m.logger.Error("failed to deliver response", "error", sendErr)
		}
	}()
	return true
}

// Complete returns the mediator to Idle
func (m *Mediator) Complete() {
	if m.state == Requesting {
		m.logger.Debug("request finished", "elapsed", time.Since(m.started))
	}
	m.state = Idle
}

// State returns the current lifecycle state
func (m *Mediator) State() RequestState {
	return m.state
}

// InFlight reports whether a request is running
func (m *Mediator) InFlight() bool {
	return m.state == Requesting
}

// Close cancels a running request
func (m *Mediator) Close() {
	m.cancel()
}
