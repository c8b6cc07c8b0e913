package keybinds

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/studiowebux/reqform/internal/focus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchFallsBackToGlobal(t *testing.T) {
	r := NewDefaultRegistry()

	action, ok := r.Match(ContextViewer, "j")
	require.True(t, ok)
	assert.Equal(t, ActionScrollDown, action)

	action, ok = r.Match(ContextViewer, "ctrl+s")
	require.True(t, ok)
	assert.Equal(t, ActionSubmit, action)

	_, ok = r.Match(ContextViewer, "z")
	assert.False(t, ok)
}

func TestLookupIgnoresGlobal(t *testing.T) {
	r := NewDefaultRegistry()

	_, ok := r.Lookup(ContextEditing, "m")
	assert.False(t, ok, "printable keys are not editing bindings")

	action, ok := r.Lookup(ContextEditing, "esc")
	require.True(t, ok)
	assert.Equal(t, ActionStopEditing, action)
}

func TestDefaultGlobalShortcuts(t *testing.T) {
	r := NewDefaultRegistry()
	tests := []struct {
		key  string
		want Action
	}{
		{"ctrl+c", ActionQuit},
		{"ctrl+s", ActionSubmit},
		{"m", ActionFocusMethod},
		{"u", ActionFocusUrl},
		{"q", ActionFocusQuery},
		{"r", ActionFocusBody},
		{"b", ActionFocusResponseBody},
		{"h", ActionFocusResponseHeader},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := r.Lookup(ContextGlobal, tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFocusTarget(t *testing.T) {
	pos, ok := FocusTarget(ActionFocusResponseHeader)
	require.True(t, ok)
	assert.Equal(t, focus.ResponseHeader, pos)

	_, ok = FocusTarget(ActionSubmit)
	assert.False(t, ok)
}

func TestGetBindingString(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Equal(t, "down, j", r.GetBindingString(ContextViewer, ActionScrollDown))
	assert.Equal(t, "ctrl+s", r.GetBindingString(ContextViewer, ActionSubmit))
	assert.Equal(t, "unbound", r.GetBindingString(ContextFocused, ActionCopy))
}

func TestCloneIsIndependent(t *testing.T) {
	r := NewDefaultRegistry()
	clone := r.Clone()
	clone.Register(ContextGlobal, "f5", ActionSubmit)

	assert.False(t, r.HasBinding(ContextGlobal, "f5"))
	assert.True(t, clone.HasBinding(ContextViewer, "f5"))
}

func TestLoadConfigJSONC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.jsonc")
	content := `{
  // trailing commas and comments are fine
  "version": "1.0",
  "global": { "submit": "f5, ctrl+s", },
  "viewer": { "scroll_down": "n" },
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r, err := LoadOrDefault(path, discardLogger())
	require.NoError(t, err)

	action, ok := r.Lookup(ContextGlobal, "f5")
	require.True(t, ok)
	assert.Equal(t, ActionSubmit, action)

	action, ok = r.Lookup(ContextViewer, "n")
	require.True(t, ok)
	assert.Equal(t, ActionScrollDown, action)

	_, ok = r.Lookup(ContextViewer, "j")
	assert.False(t, ok, "override replaces the default keys of the action")

	_, ok = r.Lookup(ContextViewer, "k")
	assert.True(t, ok, "other actions keep their defaults")
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	r, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.jsonc"), discardLogger())
	require.NoError(t, err)
	assert.True(t, r.HasBinding(ContextGlobal, "ctrl+s"))
}

func TestLoadOrDefaultValidates(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
		wantLog string
	}{
		{
			name:    "printable key in editing",
			content: `{ "editing": { "stop_editing": "a" } }`,
			wantErr: "printable key bound to 'stop_editing' cannot be typed",
		},
		{
			name:    "shadowed global key is only a warning",
			content: `{ "viewer": { "copy_to_clipboard": "q" } }`,
			wantLog: "shadows global binding",
		},
		{
			name:    "reserved key rebound is only a warning",
			content: `{ "global": { "quit": "ctrl+q" } }`,
			wantLog: "reserved key should stay bound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "keybinds.jsonc")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))

			r, err := LoadOrDefault(path, logger)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, r)
			assert.Contains(t, logs.String(), tt.wantLog)
		})
	}
}

func TestApplyConfigRejectsUnknownAction(t *testing.T) {
	err := ApplyConfig(NewRegistry(), &Config{Global: map[string]string{"fly": "f"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action 'fly'")
}

func TestExportConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.jsonc")
	require.NoError(t, SaveConfig(ExportConfig(NewDefaultRegistry()), path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	r := NewRegistry()
	require.NoError(t, ApplyConfig(r, cfg))

	for _, ctx := range Contexts {
		assert.Equal(t, NewDefaultRegistry().list(ctx), r.list(ctx), string(ctx))
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
