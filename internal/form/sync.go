package form

import (
	"strings"

	"github.com/studiowebux/reqform/internal/events"
	"github.com/studiowebux/reqform/internal/focus"
)

// queryOf returns the text after the first '?' in url, and whether url has
// a '?' at all
func queryOf(url string) (string, bool) {
	_, q, ok := strings.Cut(url, "?")
	return q, ok
}

func splitQuery(q string) []string {
	return strings.Split(q, "&")
}

func (f *Form) afterEdit(field *TextField) {
	switch field.pos {
	case focus.Url:
		f.syncQueryFromURL()
	case focus.Query:
		f.syncURLFromQuery()
	}
}

// syncQueryFromURL sends the URL query to the Query field when they differ
func (f *Form) syncQueryFromURL() {
	q, ok := queryOf(f.url.buffer.Text())
	if !ok || q == f.query.buffer.Join("&") {
		return
	}
	f.send(events.SetQuery{Text: q, Source: focus.Url})
}

// syncURLFromQuery sends the joined Query rows to the Url field when they
// differ from the URL query
func (f *Form) syncURLFromQuery() {
	joined := f.query.buffer.Join("&")
	q, ok := queryOf(f.url.buffer.Text())
	if ok && q == joined {
		return
	}
	if !ok && joined == "" {
		return
	}
	f.send(events.SetQuery{Text: joined, Source: focus.Query})
}

// applyQuery updates every view except the one the edit came from
func (f *Form) applyQuery(ev events.SetQuery) {
	if ev.Source != focus.Query {
		f.setQueryRows(ev.Text)
	}
	if ev.Source != focus.Url {
		f.setURLQuery(ev.Text)
	}
}

func (f *Form) setQueryRows(text string) {
	if f.query.buffer.Join("&") == text {
		return
	}
	f.query.buffer.SetLines(splitQuery(text))
}

func (f *Form) setURLQuery(text string) {
	url := f.url.buffer.Text()
	if q, ok := queryOf(url); ok && q == text {
		return
	}
	base, _, _ := strings.Cut(url, "?")
	f.url.buffer.SetText(base + "?" + text)
	f.url.buffer.MoveEnd()
}
