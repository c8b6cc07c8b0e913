package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/x/ansi"

	"github.com/studiowebux/reqform/internal/types"
)

const defaultTheme = "monokai"

// highlighter colours JSON bodies and keeps the result for the last
// response digest, so scrolling does not re-run the lexer
type highlighter struct {
	theme string

	cached bool
	digest uint64
	lines  []string
	runs   int
}

func newHighlighter(theme string) *highlighter {
	if theme == "" {
		theme = defaultTheme
	}
	return &highlighter{theme: theme}
}

// Lines returns display lines for resp, highlighted when the body is JSON.
// The result always has one entry per body line.
func (h *highlighter) Lines(resp *types.Response) []string {
	if !looksLikeJSON(resp.Lines) {
		return resp.Lines
	}
	if h.cached && h.digest == resp.Digest && len(h.lines) == len(resp.Lines) {
		return h.lines
	}

	h.runs++
	var buf strings.Builder
	if err := quick.Highlight(&buf, resp.Body(), "json", "terminal256", h.theme); err != nil {
		return resp.Lines
	}

	out := strings.Split(buf.String(), "\n")
	// trailing resets may land after the final newline
	for len(out) > len(resp.Lines) && ansi.Strip(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	if len(out) != len(resp.Lines) {
		return resp.Lines
	}

	h.cached = true
	h.digest = resp.Digest
	h.lines = out
	return out
}

func looksLikeJSON(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	first := strings.TrimSpace(lines[0])
	return strings.HasPrefix(first, "{") || strings.HasPrefix(first, "[")
}
