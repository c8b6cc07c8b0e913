package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/studiowebux/reqform/internal/editor"
	"github.com/studiowebux/reqform/internal/executor"
	"github.com/studiowebux/reqform/internal/focus"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen      = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorLightGreen = lipgloss.AdaptiveColor{Light: "#2e8b57", Dark: "#90ee90"}
	colorRed        = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorGray       = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan       = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleCursor = lipgloss.NewStyle().
			Reverse(true)

	styleSpinner = lipgloss.NewStyle().
			Foreground(colorCyan)

	styleHeaderName = lipgloss.NewStyle().
			Bold(true)

	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)
)

// stateColor picks the border and text colour for a field state
func stateColor(s focus.State) lipgloss.TerminalColor {
	switch s {
	case focus.Editing:
		return colorLightGreen
	case focus.Focused:
		return colorGreen
	default:
		return colorGray
	}
}

// render draws the whole screen. It only reads form state.
func (m *Model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	l := m.layout()
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHelp(m.width),
		m.renderRequest(m.width, l.request),
		m.renderResponse(m.width, l.response),
		m.renderErrorLine(m.width),
	)
}

type layout struct {
	request  int
	response int
}

func (m *Model) layout() layout {
	avail := m.height - HelpLines - ErrorLines
	request := avail * RequestPercent / 100
	if floor := TopRowHeight + MinRequestRows; request < floor {
		request = floor
	}
	response := avail - request
	if floor := StatusLines + TabLines + PanelBorder + PanelTitleLines; response < floor {
		response = floor
	}
	return layout{request: request, response: response}
}

func (m *Model) renderHelp(width int) string {
	line := styleTitle.Render("Ctrl + s: send request")
	if m.form.InFlight() {
		line += "  " + m.spinner.View() + styleSubtle.Render(" sending")
	}
	keys := newHelpKeys(m.form.Keybinds(), m.form.KeyContext())
	return lipgloss.JoinVertical(lipgloss.Left, ansi.Truncate(line, width, "…"), m.help.View(keys))
}

func (m *Model) renderRequest(width, height int) string {
	urlWidth := width - MethodWidth
	top := lipgloss.JoinHorizontal(
		lipgloss.Top,
		panel("[M]METHOD", m.form.State(focus.Method), MethodWidth, TopRowHeight,
			[]string{lipgloss.NewStyle().Foreground(stateColor(m.form.State(focus.Method))).Render(m.form.Method())}),
		m.textPanel("[U]URL", focus.Url, urlWidth, TopRowHeight),
	)

	rows := height - TopRowHeight
	left := width / 2
	bottom := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.textPanel("[Q]QUERY", focus.Query, left, rows),
		m.textPanel("[R]BODY", focus.Body, width-left, rows),
	)

	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (m *Model) textPanel(title string, pos focus.Position, width, height int) string {
	state := m.form.State(pos)
	style := lipgloss.NewStyle()
	if state.Active() {
		style = style.Foreground(stateColor(state))
	}
	buf := m.form.Field(pos).Buffer()
	lines := visibleBuffer(buf, state == focus.Editing, width-PanelBorder, height-PanelBorder-PanelTitleLines, style)
	return panel(title, state, width, height, lines)
}

// panel draws a bordered box with a title row. Lines are truncated to the
// inner width and cut to the inner height.
func panel(title string, state focus.State, width, height int, lines []string) string {
	innerW := max(width-PanelBorder, 1)
	innerH := max(height-PanelBorder, 1)
	color := stateColor(state)

	content := make([]string, 0, innerH)
	content = append(content, lipgloss.NewStyle().Foreground(color).Bold(state.Active()).Render(title))
	for _, line := range lines {
		if len(content) == innerH {
			break
		}
		content = append(content, ansi.Truncate(line, innerW, ""))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(innerW).
		Height(innerH).
		Render(strings.Join(content, "\n"))
}

// visibleBuffer returns the rows of buf that fit in height. While editing,
// rows scroll so the cursor row is visible and the cursor line scrolls
// horizontally so the cursor cell fits in width. The cursor itself is drawn
// by placeCursor.
func visibleBuffer(buf *editor.Buffer, editing bool, width, height int, style lipgloss.Style) []string {
	lines := buf.Lines()
	row, col := buf.Cursor()
	start := firstVisibleRow(row, height, editing)
	end := min(len(lines), start+max(height, 1))

	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if editing && i == row {
			runes := []rune(lines[i])
			out = append(out, style.Render(string(runes[cursorScroll(runes, col, width):])))
			continue
		}
		out = append(out, style.Render(lines[i]))
	}
	return out
}

func firstVisibleRow(row, height int, editing bool) int {
	if !editing || height <= 0 || row < height {
		return 0
	}
	return row - height + 1
}

// placeCursor draws a block cursor showing under over the cell at (x, y)
func placeCursor(frame string, x, y int, under string) string {
	lines := strings.Split(frame, "\n")
	if y < 0 || y >= len(lines) || x < 0 {
		return frame
	}

	line := lines[y]
	w := max(runewidth.StringWidth(under), 1)
	lines[y] = ansi.Cut(line, 0, x) + styleCursor.Render(under) + ansi.Cut(line, x+w, ansi.StringWidth(line))
	return strings.Join(lines, "\n")
}

// cursorCell returns the text under the editing cursor, a space at the end
// of a line
func cursorCell(buf *editor.Buffer) string {
	row, col := buf.Cursor()
	runes := []rune(buf.Lines()[row])
	if col < len(runes) {
		return string(runes[col])
	}
	return " "
}

// cursorScroll returns the first rune to show so that the cursor cell fits
// in width display cells
func cursorScroll(runes []rune, col, width int) int {
	start := 0
	for start < col && runewidth.StringWidth(string(runes[start:col]))+1 > width {
		start++
	}
	return start
}

// Cursor reports where the cursor belongs while a field is being edited, in
// screen cells from the top-left corner. View draws the block cursor there.
func (m *Model) Cursor() (x, y int, ok bool) {
	pos := m.form.Focus()
	if !m.form.Editing() || m.width == 0 {
		return 0, 0, false
	}
	field := m.form.Field(pos)
	if field == nil {
		return 0, 0, false
	}

	l := m.layout()
	var left, top, width, height int
	switch pos {
	case focus.Url:
		left, top, width, height = MethodWidth, HelpLines, m.width-MethodWidth, TopRowHeight
	case focus.Query:
		left, top, width, height = 0, HelpLines+TopRowHeight, m.width/2, l.request-TopRowHeight
	case focus.Body:
		left, top, width, height = m.width/2, HelpLines+TopRowHeight, m.width-m.width/2, l.request-TopRowHeight
	}

	buf := field.Buffer()
	row, col := buf.Cursor()
	innerW := width - PanelBorder
	rows := height - PanelBorder - PanelTitleLines
	runes := []rune(buf.Lines()[row])
	skipped := runewidth.StringWidth(string(runes[:cursorScroll(runes, col, innerW)]))

	x = left + 1 + buf.ScreenColumn() - skipped
	y = top + 1 + PanelTitleLines + row - firstVisibleRow(row, rows, true)
	return x, y, true
}

func (m *Model) renderResponse(width, height int) string {
	tab := m.form.ActiveTab()
	lines := m.viewLines(tab)
	if offset := m.form.Viewer(tab).Offset(); offset < len(lines) {
		lines = lines[offset:]
	} else {
		lines = nil
	}

	title := "RESPONSE BODY"
	if tab == focus.ResponseHeader {
		title = "RESPONSE HEADER"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderStatus(width),
		m.renderTabs(tab),
		panel(title, m.form.State(tab), width, height-StatusLines-TabLines, lines),
	)
}

func (m *Model) viewLines(tab focus.Position) []string {
	resp := m.form.Response()
	if resp == nil {
		return nil
	}
	if tab == focus.ResponseHeader {
		lines := make([]string, len(resp.Headers))
		for i, h := range resp.Headers {
			lines[i] = styleHeaderName.Render(h.Name) + ": " + h.Value
		}
		return lines
	}
	return m.highlighter.Lines(resp)
}

func (m *Model) renderStatus(width int) string {
	resp := m.form.Response()
	if resp == nil {
		return styleSubtle.Render("STATUS: -")
	}

	statusStyle := styleSubtle
	switch {
	case executor.IsSuccessStatus(resp.Status):
		statusStyle = styleSuccess
	case executor.IsClientErrorStatus(resp.Status), executor.IsServerErrorStatus(resp.Status):
		statusStyle = styleError
	}

	parts := []string{
		statusStyle.Render("STATUS: " + resp.StatusText),
		"RESPONSE TIME: " + executor.FormatSeconds(resp.Elapsed),
		"SIZE: " + executor.FormatSize(resp.Size),
	}
	if resp.Unchanged {
		parts = append(parts, styleSubtle.Render("(unchanged)"))
	}
	return ansi.Truncate(strings.Join(parts, "   "), width, "…")
}

func (m *Model) renderTabs(active focus.Position) string {
	tab := func(label string, pos focus.Position) string {
		if pos == active {
			return styleTabActive.Render(label)
		}
		return styleSubtle.Render(label)
	}
	return tab("[B]Body", focus.ResponseBody) + "  " + tab("[H]Header", focus.ResponseHeader)
}

func (m *Model) renderErrorLine(width int) string {
	msg := categorizeError(m.form.Err())
	if msg == "" {
		return ""
	}
	return styleError.Render(ansi.Truncate(msg, width, "…"))
}
