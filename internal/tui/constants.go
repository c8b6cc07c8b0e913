package tui

// Layout constants
const (
	HelpLines       = 2  // shortcut line + bubbles help
	ErrorLines      = 1  // categorized error line
	StatusLines     = 1  // status, latency and size
	TabLines        = 1  // [B]Body / [H]Header
	PanelBorder     = 2  // top + bottom or left + right border cells
	PanelTitleLines = 1  // title row inside each panel
	MethodWidth     = 15 // method panel, wide enough for "DELETE" plus title
	TopRowHeight    = 4  // method and url panels: border + title + value
	RequestPercent  = 40 // share of the remaining height given to the request panels
	MinRequestRows  = 3  // minimum query/body panel height
)
