package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinateRoundTrip(t *testing.T) {
	for _, p := range Positions {
		got, ok := FromCoordinate(p.Coordinate())
		assert.True(t, ok, p.String())
		assert.Equal(t, p, got)
	}
}

func TestFromCoordinateOutsideGrid(t *testing.T) {
	for _, c := range []Coordinate{{-1, 0}, {0, -1}, {2, 0}, {0, 3}, {2, 2}} {
		_, ok := FromCoordinate(c)
		assert.False(t, ok, "%+v", c)
	}
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name string
		from Position
		move func(Position) Position
		want Position
	}{
		{"method up is clamped", Method, Position.Up, Method},
		{"method left is clamped", Method, Position.Left, Method},
		{"method right", Method, Position.Right, Url},
		{"method down", Method, Position.Down, Query},
		{"url right is clamped", Url, Position.Right, Url},
		{"url down", Url, Position.Down, Body},
		{"body down", Body, Position.Down, ResponseHeader},
		{"query down", Query, Position.Down, ResponseBody},
		{"response body down is clamped", ResponseBody, Position.Down, ResponseBody},
		{"response header left", ResponseHeader, Position.Left, ResponseBody},
		{"response header up", ResponseHeader, Position.Up, Body},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.move(tt.from))
		})
	}
}

func TestContainers(t *testing.T) {
	for _, p := range []Position{Method, Url, Query, Body} {
		assert.True(t, p.IsRequest(), p.String())
		assert.False(t, p.IsResponse(), p.String())
	}
	for _, p := range []Position{ResponseBody, ResponseHeader} {
		assert.True(t, p.IsResponse(), p.String())
	}
	assert.False(t, Position(42).Valid())
}
