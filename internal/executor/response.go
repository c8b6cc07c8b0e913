package executor

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/studiowebux/reqform/internal/types"
)

// PrettyLines splits a body into display lines. Valid JSON is re-indented
// with two spaces; anything else is split on newlines as received.
func PrettyLines(body string) []string {
	if body == "" {
		return []string{}
	}

	trimmed := strings.TrimSpace(body)
	if json.Valid([]byte(trimmed)) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(trimmed), "", "  "); err == nil {
			return strings.Split(buf.String(), "\n")
		}
	}

	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(body, "\n"), "\n")
}

// Digest hashes a raw response body
func Digest(body string) uint64 {
	return xxhash.Sum64String(body)
}

// ToResponse builds the Response Model for a completed request
func ToResponse(result *types.RequestResult) *types.Response {
	headers := make([]types.Header, len(result.Headers))
	copy(headers, result.Headers)

	return &types.Response{
		Status:     result.Status,
		StatusText: result.StatusText,
		Headers:    headers,
		Lines:      PrettyLines(result.Body),
		Elapsed:    result.Duration,
		Size:       result.ResponseSize,
		Digest:     Digest(result.Body),
	}
}
