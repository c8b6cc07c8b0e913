package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/reqform/internal/executor"
	"github.com/studiowebux/reqform/internal/filter"
	"github.com/studiowebux/reqform/internal/types"
)

// ErrRequestFailed is returned when the server answered with a 4xx or 5xx
// status. The response has already been printed.
var ErrRequestFailed = errors.New("request failed")

// RunOptions contains options for sending one request without the form
type RunOptions struct {
	Method       string
	URL          string
	Body         string
	OutputFormat string // json, yaml, body, text
	ShowFull     bool
	Filter       string // JMESPath filter expression
	Query        string // JMESPath query expression
	Timeout      time.Duration
	Insecure     bool
	CAFile       string

	// Out defaults to os.Stdout
	Out io.Writer
}

// Run sends the request described by opts and prints the result
func Run(ctx context.Context, opts RunOptions) error {
	req := &types.HttpRequest{
		Method: strings.ToUpper(opts.Method),
		URL:    opts.URL,
		Body:   opts.Body,
	}
	if req.Method == "" {
		req.Method = executor.Methods[0]
	}

	result, err := executor.Execute(ctx, req, executor.Options{
		Timeout:            opts.Timeout,
		InsecureSkipVerify: opts.Insecure,
		CAFile:             opts.CAFile,
	})
	if err != nil {
		return err
	}

	if opts.Filter != "" || opts.Query != "" {
		body, err := filter.Apply(result.Body, opts.Filter, opts.Query)
		if err != nil {
			return err
		}
		result.Body = body
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	output, err := formatOutput(result, opts.OutputFormat, opts.ShowFull, colorEnabled(out))
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Fprint(out, output)

	if result.Status >= 400 {
		return fmt.Errorf("%w: %s", ErrRequestFailed, result.StatusText)
	}
	return nil
}

// formatOutput formats the result based on the output format
func formatOutput(result *types.RequestResult, format string, showFull, color bool) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "body":
		return result.Body, nil

	case "text", "":
		var sb strings.Builder

		sb.WriteString(paint(statusColor(result.Status), result.StatusText, color))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Duration: %s | Size: %s\n",
			executor.FormatDuration(result.Duration),
			executor.FormatSize(result.ResponseSize)))

		if showFull && len(result.Headers) > 0 {
			sb.WriteString("\nHeaders:\n")
			for _, h := range result.Headers {
				sb.WriteString("  " + h.String() + "\n")
			}
		}

		if result.Body != "" {
			if showFull {
				sb.WriteString("\nBody:\n")
			} else {
				sb.WriteString("\n")
			}
			sb.WriteString(strings.Join(executor.PrettyLines(result.Body), "\n"))
			sb.WriteString("\n")
		}

		return sb.String(), nil

	default:
		return "", fmt.Errorf("unknown output format %q (want text, body, json or yaml)", format)
	}
}

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
)

func statusColor(status int) string {
	switch {
	case executor.IsSuccessStatus(status):
		return colorGreen
	case status >= 400:
		return colorRed
	}
	return colorYellow
}

func paint(code, text string, enabled bool) string {
	if !enabled {
		return text
	}
	return code + text + colorReset
}

// colorEnabled reports whether w is a terminal
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
