package events

import (
	"context"
	"errors"
	"log/slog"
)

// Handler applies one event to the model and reports whether the loop
// should stop
type Handler interface {
	Handle(ev Event) (quit bool)
}

// Run consumes q until a handler asks to quit, ctx is done or the queue is
// closed. Ticks skip the handler and only trigger render. render may be nil.
func Run(ctx context.Context, q *Queue, h Handler, render func(), logger *slog.Logger) error {
	for {
		ev, err := q.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if _, tick := ev.(Tick); !tick {
			logger.Debug("dispatch", "event", Kind(ev))
			if h.Handle(ev) {
				return nil
			}
		}

		if render != nil {
			render()
		}
	}
}
