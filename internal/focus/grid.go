// Package focus describes the 2x3 grid of form fields and directional
// navigation between them.
//
//	       col 0          col 1
//	row 0  Method         Url
//	row 1  Query          Body
//	row 2  ResponseBody   ResponseHeader
package focus

// Position names one field of the form
type Position int

const (
	Method Position = iota
	Url
	Query
	Body
	ResponseBody
	ResponseHeader
)

// Positions lists every field in grid order
var Positions = []Position{Method, Url, Query, Body, ResponseBody, ResponseHeader}

// Coordinate is a (column, row) cell of the grid
type Coordinate struct {
	Col int
	Row int
}

var coordinates = map[Position]Coordinate{
	Method:         {0, 0},
	Url:            {1, 0},
	Query:          {0, 1},
	Body:           {1, 1},
	ResponseBody:   {0, 2},
	ResponseHeader: {1, 2},
}

// Coordinate returns the grid cell of p
func (p Position) Coordinate() Coordinate {
	return coordinates[p]
}

// FromCoordinate returns the field at c, or false when c lies outside the grid
func FromCoordinate(c Coordinate) (Position, bool) {
	for p, pc := range coordinates {
		if pc == c {
			return p, true
		}
	}
	return 0, false
}

// Up returns the field above p, or p itself at the top edge
func (p Position) Up() Position {
	return p.step(0, -1)
}

// Down returns the field below p, or p itself at the bottom edge
func (p Position) Down() Position {
	return p.step(0, 1)
}

// Left returns the field left of p, or p itself at the left edge
func (p Position) Left() Position {
	return p.step(-1, 0)
}

// Right returns the field right of p, or p itself at the right edge
func (p Position) Right() Position {
	return p.step(1, 0)
}

func (p Position) step(dc, dr int) Position {
	c := p.Coordinate()
	if next, ok := FromCoordinate(Coordinate{Col: c.Col + dc, Row: c.Row + dr}); ok {
		return next
	}
	return p
}

// IsResponse reports whether p belongs to the response container
func (p Position) IsResponse() bool {
	return p == ResponseBody || p == ResponseHeader
}

// IsRequest reports whether p belongs to the request container
func (p Position) IsRequest() bool {
	return !p.IsResponse()
}

// Valid reports whether p names a field of the grid
func (p Position) Valid() bool {
	_, ok := coordinates[p]
	return ok
}

func (p Position) String() string {
	switch p {
	case Method:
		return "method"
	case Url:
		return "url"
	case Query:
		return "query"
	case Body:
		return "body"
	case ResponseBody:
		return "response_body"
	case ResponseHeader:
		return "response_header"
	default:
		return "unknown"
	}
}

// State is the focus lifecycle state of a field or container
type State int

const (
	Unfocused State = iota
	Focused
	Editing
)

// Active reports whether the state is Focused or Editing
func (s State) Active() bool {
	return s != Unfocused
}

func (s State) String() string {
	switch s {
	case Focused:
		return "focused"
	case Editing:
		return "editing"
	default:
		return "unfocused"
	}
}
