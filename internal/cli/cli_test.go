package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/reqform/internal/types"
)

func newUsersServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"name":"ada","active":true},{"name":"bob","active":false}]`))
		case "/echo":
			w.Write([]byte(r.Method))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunTextOutput(t *testing.T) {
	srv := newUsersServer(t)
	var out bytes.Buffer

	err := Run(context.Background(), RunOptions{
		URL:      srv.URL + "/users",
		ShowFull: true,
		Timeout:  5 * time.Second,
		Out:      &out,
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "200 OK")
	assert.Contains(t, text, "Headers:\n")
	assert.Contains(t, text, "  Content-Type: application/json\n")
	assert.Contains(t, text, `"name": "ada"`)
	assert.NotContains(t, text, colorReset, "buffers are not terminals")
}

func TestRunMethodDefaultsAndCase(t *testing.T) {
	srv := newUsersServer(t)

	tests := []struct {
		method string
		want   string
	}{
		{"", "GET"},
		{"post", "POST"},
		{"DELETE", "DELETE"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var out bytes.Buffer
			err := Run(context.Background(), RunOptions{
				Method:       tt.method,
				URL:          srv.URL + "/echo",
				OutputFormat: "body",
				Out:          &out,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunFilterAndQuery(t *testing.T) {
	srv := newUsersServer(t)
	var out bytes.Buffer

	err := Run(context.Background(), RunOptions{
		URL:          srv.URL + "/users",
		OutputFormat: "body",
		Filter:       "[?active]",
		Query:        "[].name",
		Out:          &out,
	})
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal(out.Bytes(), &names))
	assert.Equal(t, []string{"ada"}, names)
}

func TestRunStructuredOutput(t *testing.T) {
	srv := newUsersServer(t)

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Run(context.Background(), RunOptions{URL: srv.URL + "/users", OutputFormat: "json", Out: &out}))

		var result types.RequestResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, 200, result.Status)
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Run(context.Background(), RunOptions{URL: srv.URL + "/users", OutputFormat: "yaml", Out: &out}))

		var result map[string]any
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, 200, result["status"])
	})
}

func TestRunErrors(t *testing.T) {
	srv := newUsersServer(t)

	t.Run("client error status", func(t *testing.T) {
		var out bytes.Buffer
		err := Run(context.Background(), RunOptions{URL: srv.URL + "/missing", Out: &out})
		assert.ErrorIs(t, err, ErrRequestFailed)
		assert.Contains(t, out.String(), "404 Not Found")
	})

	t.Run("unknown format", func(t *testing.T) {
		err := Run(context.Background(), RunOptions{URL: srv.URL + "/users", OutputFormat: "xml", Out: &bytes.Buffer{}})
		assert.ErrorContains(t, err, "unknown output format")
	})

	t.Run("unsupported method", func(t *testing.T) {
		err := Run(context.Background(), RunOptions{Method: "PATCH", URL: srv.URL, Out: &bytes.Buffer{}})
		assert.Error(t, err)
	})

	t.Run("bad filter", func(t *testing.T) {
		err := Run(context.Background(), RunOptions{URL: srv.URL + "/users", Filter: "[?", Out: &bytes.Buffer{}})
		assert.ErrorContains(t, err, "filter")
	})
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, colorGreen, statusColor(204))
	assert.Equal(t, colorYellow, statusColor(302))
	assert.Equal(t, colorRed, statusColor(404))
	assert.Equal(t, colorRed, statusColor(503))
	assert.Equal(t, "x", paint(colorRed, "x", false))
	assert.Equal(t, colorRed+"x"+colorReset, paint(colorRed, "x", true))
}
