package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersBody = `{"items":[{"name":"a","status":"active"},{"name":"b","status":"disabled"},{"name":"c","status":"active"}]}`

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		filter string
		query  string
		want   string
	}{
		{"no expressions", usersBody, "", "", usersBody},
		{"query only", usersBody, "", "items[].name", "[\n  \"a\",\n  \"b\",\n  \"c\"\n]"},
		{"filter then query", usersBody, "items[?status=='active']", "[].name", "[\n  \"a\",\n  \"c\"\n]"},
		{"missing field", usersBody, "", "nothing", "null"},
		{"scalar", `{"count":3}`, "", "count", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.body, tt.filter, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_Errors(t *testing.T) {
	_, err := Apply("not json", "", "a")
	assert.ErrorContains(t, err, "invalid JSON")

	_, err = Apply(usersBody, "items[", "")
	assert.ErrorContains(t, err, "failed to apply filter")
}

func TestIsValidJMESPath(t *testing.T) {
	assert.True(t, IsValidJMESPath("items[].name"))
	assert.False(t, IsValidJMESPath("items[?"))
}
