package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/reqform/internal/events"
	"github.com/studiowebux/reqform/internal/executor"
	"github.com/studiowebux/reqform/internal/form"
	"github.com/studiowebux/reqform/internal/keybinds"
	"github.com/studiowebux/reqform/internal/types"
)

// ReplayOptions drives the form headlessly from a key script
type ReplayOptions struct {
	Script       io.Reader
	Transport    form.Transport
	Keybinds     *keybinds.Registry
	TickInterval time.Duration
	Prefill      *types.HttpRequest
	OutputFormat string // text, json, yaml
	Logger       *slog.Logger

	// Out defaults to os.Stdout
	Out io.Writer
}

// Report is the form state once a replay has finished
type Report struct {
	Request  *types.HttpRequest `json:"request" yaml:"request"`
	Focus    string             `json:"focus" yaml:"focus"`
	Response *types.Response    `json:"response,omitempty" yaml:"response,omitempty"`
	Error    string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// Replay feeds the script into the event queue and runs the event loop
// until the script ends and any request it started has completed
func Replay(ctx context.Context, opts ReplayOptions) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	q := events.NewQueue()
	defer q.Close()

	formOpts := []form.Option{form.WithLogger(logger)}
	if opts.Keybinds != nil {
		formOpts = append(formOpts, form.WithKeybinds(opts.Keybinds))
	}
	f := form.New(q, opts.Transport, formOpts...)
	if opts.Prefill != nil {
		if err := f.Prefill(opts.Prefill); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return events.RunTicker(gctx, q, opts.TickInterval, logger)
	})
	g.Go(func() error {
		return events.RunInput(gctx, q, events.NewScriptReader(opts.Script), logger)
	})
	g.Go(func() error {
		defer cancel()
		defer q.Close()
		return events.Run(gctx, q, &drainingHandler{form: f, queue: q}, nil, logger)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Request:  f.Request(),
		Focus:    f.Focus().String(),
		Response: f.Response(),
	}
	if err := f.Err(); err != nil {
		report.Error = err.Error()
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	text, err := formatReport(report, opts.OutputFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to format report: %w", err)
	}
	fmt.Fprint(out, text)

	return report, nil
}

// drainingHandler holds a Quit back until the events queued before it have
// run and no request is in flight, so the last submit is still installed
type drainingHandler struct {
	form        *form.Form
	queue       *events.Queue
	quitPending bool
}

func (h *drainingHandler) Handle(ev events.Event) bool {
	if _, ok := ev.(events.Quit); ok {
		if h.form.InFlight() {
			h.quitPending = true
			return false
		}
		if h.queue.Len() > 0 {
			// requeue behind events the form emitted after the script ended
			return h.queue.Send(events.Quit{}) != nil && h.form.Handle(ev)
		}
	}
	if h.form.Handle(ev) {
		return true
	}
	if h.quitPending && !h.form.InFlight() {
		return h.form.Handle(events.Quit{})
	}
	return false
}

func formatReport(r *Report, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "yaml":
		data, err := yaml.Marshal(r)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text", "":
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%s %s\n", r.Request.Method, r.Request.URL))
		if r.Request.Body != "" {
			sb.WriteString(r.Request.Body + "\n")
		}
		sb.WriteString("Focus: " + r.Focus + "\n")
		if r.Response != nil {
			sb.WriteString(fmt.Sprintf("\n%s | %s | %s\n",
				r.Response.StatusText,
				executor.FormatSeconds(r.Response.Elapsed),
				executor.FormatSize(r.Response.Size)))
			for _, line := range r.Response.Lines {
				sb.WriteString(line + "\n")
			}
		}
		if r.Error != "" {
			sb.WriteString("\nError: " + r.Error + "\n")
		}
		return sb.String(), nil

	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}
