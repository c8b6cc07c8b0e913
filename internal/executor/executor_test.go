package executor

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/reqform/internal/types"
)

func headerNames(headers []types.Header) []string {
	var names []string
	for _, h := range headers {
		names = append(names, h.Name)
	}
	return names
}

func TestExecute_PreservesHeaderOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			w.Header().Set("Location", "/final")
			w.WriteHeader(http.StatusFound)
			return
		}

		// net/http sorts headers on write, so answer on the raw connection
		hj, ok := w.(http.Hijacker)
		if !assert.True(t, ok) {
			return
		}
		conn, buf, err := hj.Hijack()
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()
		buf.WriteString("HTTP/1.1 200 OK\r\n")
		buf.WriteString("Zeta: last-alpha\r\n")
		buf.WriteString("Content-Type: text/plain\r\n")
		buf.WriteString("X-Multi: one\r\n")
		buf.WriteString("Alpha: first-alpha\r\n")
		buf.WriteString("X-Multi: two\r\n")
		buf.WriteString("Content-Length: 2\r\n")
		buf.WriteString("\r\n")
		buf.WriteString("ok")
		buf.Flush()
	}))
	defer srv.Close()

	want := []string{"Zeta", "Content-Type", "X-Multi", "Alpha", "X-Multi", "Content-Length"}

	tests := []struct {
		name string
		path string
	}{
		{"direct", "/final"},
		{"after redirect", "/start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Execute(context.Background(), &types.HttpRequest{Method: "GET", URL: srv.URL + tt.path}, Options{Timeout: 5 * time.Second})
			require.NoError(t, err)

			assert.Equal(t, 200, result.Status)
			assert.Equal(t, "ok", result.Body)
			assert.Equal(t, want, headerNames(result.Headers))
			assert.Equal(t, "one", result.Headers[2].Value)
			assert.Equal(t, "two", result.Headers[4].Value)
		})
	}
}

func TestHeaderLog_KeepsLastConnection(t *testing.T) {
	heads := &headerLog{}
	assert.Nil(t, heads.names())

	first, second := net.Pipe()
	defer first.Close()
	defer second.Close()

	redirect := heads.wrap(first).(*recordingConn)
	redirect.rec.write([]byte("HTTP/1.1 302 Found\r\nLocation: /final\r\nDate: x\r\n\r\n"))

	final := heads.wrap(second).(*recordingConn)
	final.rec.write([]byte("HTTP/1.1 200 OK\r\nB: 1\r\nA: 2\r\n\r\n"))

	// late body bytes of the redirect do not leak into the final head
	redirect.rec.write([]byte("HTTP/1.1 200 OK\r\nC: 3\r\n\r\n"))

	assert.Equal(t, []string{"B", "A"}, heads.names())
}

func TestExecute_SendsMethodAndBody(t *testing.T) {
	var gotMethod, gotBody, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	result, err := Execute(context.Background(), &types.HttpRequest{
		Method: "POST",
		URL:    srv.URL + "/items?a=1&b=2",
		Body:   `{"name":"x"}`,
	}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "POST", gotMethod)
	assert.Equal(t, "a=1&b=2", gotQuery)
	assert.Equal(t, `{"name":"x"}`, gotBody)
	assert.Equal(t, http.StatusCreated, result.Status)
	assert.Equal(t, len(`{"name":"x"}`), result.RequestSize)
}

func TestExecute_ErrorStatusIsResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer srv.Close()

	result, err := Execute(context.Background(), &types.HttpRequest{Method: "GET", URL: srv.URL}, Options{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, result.Status)
	assert.True(t, IsClientErrorStatus(result.Status))
}

func TestExecute_Errors(t *testing.T) {
	// Reserve a port and close it so the dial is refused
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	closedAddr := ln.Addr().String()
	ln.Close()

	tests := []struct {
		name string
		req  *types.HttpRequest
	}{
		{"unsupported method", &types.HttpRequest{Method: "PATCH", URL: "http://localhost"}},
		{"invalid url", &types.HttpRequest{Method: "GET", URL: "http://[::1"}},
		{"missing scheme", &types.HttpRequest{Method: "GET", URL: "localhost/path"}},
		{"connection refused", &types.HttpRequest{Method: "GET", URL: "http://" + closedAddr}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Execute(context.Background(), tt.req, Options{Timeout: 2 * time.Second})
			assert.Error(t, err)
			assert.Nil(t, result)
		})
	}
}

func TestExecute_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Execute(ctx, &types.HttpRequest{Method: "GET", URL: srv.URL}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOrderHeaders(t *testing.T) {
	h := http.Header{
		"B":     {"1"},
		"A":     {"2"},
		"Extra": {"3"},
		"Multi": {"x", "y", "z"},
	}

	got := orderHeaders(h, []string{"B", "Multi", "A", "Unknown", "Multi"})

	assert.Equal(t, []types.Header{
		{Name: "B", Value: "1"},
		{Name: "Multi", Value: "x"},
		{Name: "A", Value: "2"},
		{Name: "Multi", Value: "y"},
		{Name: "Extra", Value: "3"},
		{Name: "Multi", Value: "z"},
	}, got)
}

func TestHeaderRecorder_SkipsInterimResponses(t *testing.T) {
	rec := &headerRecorder{}
	rec.write([]byte("HTTP/1.1 100 Continue\r\n\r\nHTTP/1.1 200 OK\r\nB: 1\r\n"))
	assert.Nil(t, rec.names())

	rec.write([]byte("a: 2\r\n\r\nbody"))
	assert.Equal(t, []string{"B", "A"}, rec.names())
}

func TestPrettyLines(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"empty", "", []string{}},
		{"json object", `{"a":1,"b":[true]}`, []string{"{", `  "a": 1,`, `  "b": [`, "    true", "  ]", "}"}},
		{"plain text", "line1\nline2\n", []string{"line1", "line2"}},
		{"crlf text", "a\r\nb", []string{"a", "b"}},
		{"broken json", `{"a":`, []string{`{"a":`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrettyLines(tt.body))
		})
	}
}

func TestToResponse(t *testing.T) {
	result := &types.RequestResult{
		Status:       200,
		StatusText:   "200 OK",
		Headers:      []types.Header{{Name: "A", Value: "1"}},
		Body:         `{"x":1}`,
		Duration:     1500 * time.Millisecond,
		ResponseSize: 7,
	}

	resp := ToResponse(result)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, []string{"{", `  "x": 1`, "}"}, resp.Lines)
	assert.Equal(t, []string{"A: 1"}, resp.HeaderLines())
	assert.Equal(t, Digest(`{"x":1}`), resp.Digest)
	assert.Equal(t, 7, resp.Size)

	result.Headers[0].Value = "changed"
	assert.Equal(t, "1", resp.Headers[0].Value)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "1.50s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "0.125s", FormatSeconds(125*time.Millisecond))
	assert.Equal(t, "512B", FormatSize(512))
	assert.Equal(t, "1.50KB", FormatSize(1536))
	assert.Equal(t, "2.00MB", FormatSize(2*1024*1024))

	assert.True(t, IsSuccessStatus(204))
	assert.False(t, IsSuccessStatus(301))
	assert.True(t, IsServerErrorStatus(503))
}
