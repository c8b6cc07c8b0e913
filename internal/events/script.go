package events

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// ScriptReader reads keys from a text script, one directive per line:
//
//	enter            a key name
//	type a=1&b=2     one key per rune
//	sleep 500ms      pause before the next key
//	# comment
type ScriptReader struct {
	scanner *bufio.Scanner
	pending []KeyInput
	line    int
	sleep   func(time.Duration)
}

// NewScriptReader creates a reader over r
func NewScriptReader(r io.Reader) *ScriptReader {
	return &ScriptReader{
		scanner: bufio.NewScanner(r),
		sleep:   time.Sleep,
	}
}

// ReadKey returns the next key, or io.EOF at the end of the script
func (s *ScriptReader) ReadKey() (KeyInput, error) {
	for len(s.pending) == 0 {
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return KeyInput{}, err
			}
			return KeyInput{}, io.EOF
		}
		s.line++
		if err := s.parse(s.scanner.Text()); err != nil {
			return KeyInput{}, err
		}
	}

	key := s.pending[0]
	s.pending = s.pending[1:]
	return key, nil
}

func (s *ScriptReader) parse(raw string) error {
	line := strings.TrimRight(raw, "\r")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	switch {
	case strings.HasPrefix(trimmed, "type "):
		text := strings.TrimPrefix(strings.TrimLeft(line, " \t"), "type ")
		for _, r := range text {
			s.pending = append(s.pending, KeyInput{Name: string(r), Runes: []rune{r}})
		}
	case strings.HasPrefix(trimmed, "sleep "):
		d, err := time.ParseDuration(strings.TrimSpace(strings.TrimPrefix(trimmed, "sleep ")))
		if err != nil {
			return fmt.Errorf("line %d: invalid sleep: %w", s.line, err)
		}
		s.sleep(d)
	default:
		s.pending = append(s.pending, Key(trimmed))
	}
	return nil
}
