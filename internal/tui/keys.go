package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/reqform/internal/events"
	"github.com/studiowebux/reqform/internal/keybinds"
)

// keyInput converts a Bubble Tea key into a queue event. Only plain runes
// and space carry text; alt combinations are treated as shortcuts.
func keyInput(msg tea.KeyMsg) events.KeyInput {
	k := events.KeyInput{Name: msg.String()}
	switch msg.Type {
	case tea.KeyRunes:
		if !msg.Alt {
			k.Runes = append([]rune(nil), msg.Runes...)
		}
		if msg.Paste {
			k.Name = "paste"
		}
	case tea.KeySpace:
		if !msg.Alt {
			k.Runes = []rune{' '}
		}
	}
	return k
}

// helpKeys adapts the registry to the bubbles help component for one context
type helpKeys struct {
	local  []key.Binding
	global []key.Binding
}

func newHelpKeys(r *keybinds.Registry, ctx keybinds.Context) helpKeys {
	h := helpKeys{global: bindingsFor(r, keybinds.ContextGlobal)}
	if ctx != keybinds.ContextGlobal {
		h.local = bindingsFor(r, ctx)
	}
	return h
}

// bindingsFor groups the keys of each action in ctx into one help entry
func bindingsFor(r *keybinds.Registry, ctx keybinds.Context) []key.Binding {
	var order []keybinds.Action
	keys := make(map[keybinds.Action][]string)
	for _, b := range r.ListBindings(ctx) {
		if b.Context != ctx {
			continue
		}
		if _, seen := keys[b.Action]; !seen {
			order = append(order, b.Action)
		}
		keys[b.Action] = append(keys[b.Action], b.Key)
	}

	out := make([]key.Binding, 0, len(order))
	for _, action := range order {
		info := keybinds.GetActionInfo(action)
		out = append(out, key.NewBinding(
			key.WithKeys(keys[action]...),
			key.WithHelp(strings.Join(keys[action], "/"), info.Description),
		))
	}
	return out
}

// ShortHelp implements help.KeyMap
func (h helpKeys) ShortHelp() []key.Binding {
	if len(h.local) > 0 {
		return h.local
	}
	return h.global
}

// FullHelp implements help.KeyMap
func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.local, h.global}
}
