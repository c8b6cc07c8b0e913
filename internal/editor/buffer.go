// Package editor implements the line-oriented text buffer behind the Url,
// Query and Body fields.
package editor

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Direction is a cursor movement direction
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// closers maps an opening rune to the rune inserted after it when
// auto-pairing is enabled
var closers = map[rune]rune{
	'{': '}',
	'"': '"',
}

// Buffer is an editable sequence of lines with a cursor.
//
// Invariant: 0 <= row < len(lines) and 0 <= col <= len(lines[row]).
type Buffer struct {
	lines     [][]rune
	row       int
	col       int
	multiLine bool
	autoPair  bool
}

// NewSingleLine creates a buffer that holds exactly one line and rejects
// control characters
func NewSingleLine() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// NewMultiLine creates a multi-line buffer. autoPair enables closing of
// '{' and '"' on insert.
func NewMultiLine(autoPair bool) *Buffer {
	return &Buffer{lines: [][]rune{{}}, multiLine: true, autoPair: autoPair}
}

// MultiLine reports whether the buffer accepts newlines
func (b *Buffer) MultiLine() bool {
	return b.multiLine
}

// InsertChar inserts r at the cursor and advances the cursor by one.
// It returns false when the rune was rejected.
func (b *Buffer) InsertChar(r rune) bool {
	if r == '\n' {
		return b.InsertNewline()
	}
	if unicode.IsControl(r) && (!b.multiLine || r == '\r') {
		return false
	}

	line := b.lines[b.row]
	ins := []rune{r}
	if closer, ok := closers[r]; ok && b.autoPair {
		ins = append(ins, closer)
	}
	b.lines[b.row] = insertRunes(line, b.col, ins)
	b.col++
	return true
}

// InsertNewline splits the current line at the cursor. The cursor moves to
// column 0 of the new line. Single-line buffers ignore it.
func (b *Buffer) InsertNewline() bool {
	if !b.multiLine {
		return false
	}

	line := b.lines[b.row]
	head := append([]rune{}, line[:b.col]...)
	tail := append([]rune{}, line[b.col:]...)

	lines := make([][]rune, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:b.row]...)
	lines = append(lines, head, tail)
	lines = append(lines, b.lines[b.row+1:]...)
	b.lines = lines

	b.row++
	b.col = 0
	return true
}

// Backspace deletes the rune before the cursor, or joins the current line
// onto the previous one when the cursor is at column 0. It returns false
// when there was nothing to delete.
func (b *Buffer) Backspace() bool {
	if b.col > 0 {
		line := b.lines[b.row]
		b.lines[b.row] = append(line[:b.col-1:b.col-1], line[b.col:]...)
		b.col--
		return true
	}
	if b.row == 0 {
		return false
	}

	prev := b.lines[b.row-1]
	b.col = len(prev)
	b.lines[b.row-1] = append(prev[:len(prev):len(prev)], b.lines[b.row]...)
	b.lines = append(b.lines[:b.row], b.lines[b.row+1:]...)
	b.row--
	return true
}

// Move moves the cursor one step, clamped to the buffer edges
func (b *Buffer) Move(d Direction) {
	switch d {
	case Left:
		if b.col > 0 {
			b.col--
		}
	case Right:
		if b.col < len(b.lines[b.row]) {
			b.col++
		}
	case Up:
		if b.multiLine && b.row > 0 {
			b.row--
			b.clampCol()
		}
	case Down:
		if b.multiLine && b.row < len(b.lines)-1 {
			b.row++
			b.clampCol()
		}
	}
}

// MoveEnd puts the cursor after the last rune of the last line
func (b *Buffer) MoveEnd() {
	b.row = len(b.lines) - 1
	b.col = len(b.lines[b.row])
}

// MoveStart puts the cursor at the first column of the first line
func (b *Buffer) MoveStart() {
	b.row = 0
	b.col = 0
}

// MoveLineStart puts the cursor at column 0 of the current line
func (b *Buffer) MoveLineStart() {
	b.col = 0
}

// MoveLineEnd puts the cursor after the last rune of the current line
func (b *Buffer) MoveLineEnd() {
	b.col = len(b.lines[b.row])
}

func (b *Buffer) clampCol() {
	if n := len(b.lines[b.row]); b.col > n {
		b.col = n
	}
}

// Text returns the buffer content with lines joined by '\n'
func (b *Buffer) Text() string {
	return b.Join("\n")
}

// Join returns the buffer content with lines joined by sep
func (b *Buffer) Join(sep string) string {
	return strings.Join(b.Lines(), sep)
}

// Lines returns a copy of every line as a string
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// SetText replaces the content, splitting on '\n' for multi-line buffers.
// The cursor is reset to the start.
func (b *Buffer) SetText(text string) {
	if !b.multiLine {
		b.SetLines([]string{strings.ReplaceAll(text, "\n", "")})
		return
	}
	b.SetLines(strings.Split(text, "\n"))
}

// SetLines replaces the content with lines. An empty slice leaves one empty
// line. The cursor is reset to the start.
func (b *Buffer) SetLines(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	if !b.multiLine && len(lines) > 1 {
		lines = []string{strings.Join(lines, "")}
	}
	b.lines = make([][]rune, len(lines))
	for i, l := range lines {
		b.lines[i] = []rune(l)
	}
	b.MoveStart()
}

// Clear empties the buffer
func (b *Buffer) Clear() {
	b.SetLines(nil)
}

// Cursor returns the cursor as (line index, column index)
func (b *Buffer) Cursor() (row, col int) {
	return b.row, b.col
}

// LineCount returns the number of lines, always at least one
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// ScreenColumn converts the cursor column into display cells, counting wide
// runes as two cells
func (b *Buffer) ScreenColumn() int {
	return runewidth.StringWidth(string(b.lines[b.row][:b.col]))
}

func insertRunes(line []rune, at int, ins []rune) []rune {
	out := make([]rune, 0, len(line)+len(ins))
	out = append(out, line[:at]...)
	out = append(out, ins...)
	return append(out, line[at:]...)
}
