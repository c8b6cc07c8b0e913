package executor

import (
	"bytes"
	"net"
	"net/http"
	"net/textproto"
	"sort"
	"strings"
	"sync"

	"github.com/studiowebux/reqform/internal/types"
)

// maxHeaderCapture bounds the bytes kept while looking for the end of the
// response header block
const maxHeaderCapture = 1 << 20

var headerEnd = []byte("\r\n\r\n")

// headerRecorder keeps the raw bytes of the response head so the header
// names can be listed in the order the server sent them
type headerRecorder struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	done bool
}

func (r *headerRecorder) write(p []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return
	}

	r.buf.Write(p)
	for {
		data := r.buf.Bytes()
		end := bytes.Index(data, headerEnd)
		if end < 0 {
			if r.buf.Len() > maxHeaderCapture {
				r.done = true
			}
			return
		}
		// 1xx interim responses precede the final head
		if isInterim(data[:end]) {
			r.buf.Next(end + len(headerEnd))
			continue
		}
		r.buf.Truncate(end + 2)
		r.done = true
		return
	}
}

func isInterim(head []byte) bool {
	line, _, _ := bytes.Cut(head, []byte("\r\n"))
	fields := strings.Fields(string(line))
	return len(fields) >= 2 && strings.HasPrefix(fields[1], "1")
}

// names returns the header names of the final response head in receipt
// order, or nil when the head was not captured
func (r *headerRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.done || r.buf.Len() == 0 {
		return nil
	}

	lines := strings.Split(r.buf.String(), "\r\n")
	var names []string
	for _, line := range lines[1:] {
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		name, _, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		names = append(names, textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(name)))
	}
	return names
}

// headerLog hands every dialed connection its own recorder. Keep-alives are
// off, so each redirect hop dials again and the last recorder holds the
// head of the final response.
type headerLog struct {
	mu   sync.Mutex
	last *headerRecorder
}

func (l *headerLog) wrap(conn net.Conn) net.Conn {
	rec := &headerRecorder{}
	l.mu.Lock()
	l.last = rec
	l.mu.Unlock()
	return &recordingConn{Conn: conn, rec: rec}
}

func (l *headerLog) names() []string {
	l.mu.Lock()
	rec := l.last
	l.mu.Unlock()
	if rec == nil {
		return nil
	}
	return rec.names()
}

type recordingConn struct {
	net.Conn
	rec *headerRecorder
}

func (c *recordingConn) Read(p []byte) (int, error) {
	n, err := c.Conn.Read(p)
	if n > 0 {
		c.rec.write(p[:n])
	}
	return n, err
}

// orderHeaders flattens h into pairs following order. Values of a repeated
// name are emitted in the order they were received. Names missing from
// order are appended alphabetically.
func orderHeaders(h http.Header, order []string) []types.Header {
	out := make([]types.Header, 0, len(h))
	next := make(map[string]int, len(h))

	for _, name := range order {
		values, ok := h[name]
		if !ok || next[name] >= len(values) {
			continue
		}
		out = append(out, types.Header{Name: name, Value: values[next[name]]})
		next[name]++
	}

	var rest []string
	for name := range h {
		if next[name] < len(h[name]) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		for _, v := range h[name][next[name]:] {
			out = append(out, types.Header{Name: name, Value: v})
		}
	}

	return out
}
