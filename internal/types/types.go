package types

import (
	"strings"
	"time"
)

// HttpRequest is the outgoing call derived from the form fields
type HttpRequest struct {
	Method string `json:"method" yaml:"method"`
	URL    string `json:"url" yaml:"url"`
	Body   string `json:"body,omitempty" yaml:"body,omitempty"`
}

// Header is a single response header in receipt order
type Header struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// String renders the header the way the header view shows it
func (h Header) String() string {
	return h.Name + ": " + h.Value
}

// RequestResult contains the raw HTTP response data
type RequestResult struct {
	Status       int           `json:"status"`
	StatusText   string        `json:"statusText"`
	Headers      []Header      `json:"headers"`
	Body         string        `json:"body"`
	Duration     time.Duration `json:"duration"`
	RequestSize  int           `json:"requestSize"`
	ResponseSize int           `json:"responseSize"`
}

// Response is the Response Model displayed by the form
type Response struct {
	Status     int           `json:"status" yaml:"status"`
	StatusText string        `json:"statusText" yaml:"statusText"`
	Headers    []Header      `json:"headers" yaml:"headers"`
	Lines      []string      `json:"lines" yaml:"lines"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
	Size       int           `json:"size" yaml:"size"`
	Digest     uint64        `json:"digest" yaml:"digest"`
	// Unchanged is set when the body digest matches the previous response
	Unchanged bool `json:"unchanged,omitempty" yaml:"unchanged,omitempty"`
}

// Body joins the display lines back into text
func (r *Response) Body() string {
	return strings.Join(r.Lines, "\n")
}

// HeaderLines renders every header as "Name: Value"
func (r *Response) HeaderLines() []string {
	lines := make([]string, len(r.Headers))
	for i, h := range r.Headers {
		lines[i] = h.String()
	}
	return lines
}
