/*
Package keybinds maps key names to form actions.

# Contexts

Every binding lives in one context:
  - Global: shortcuts handled by every field (quit, submit, direct focus)
  - Focused: a request field that has focus but is not being edited
  - Editing: a text field in the editing state
  - Viewer: a focused read-only response view

Match looks in the given context first and then in Global. Lookup checks a
single context only; the editing dispatcher uses it so that printable keys
insert text instead of triggering global shortcuts.

# Configuration File Format

Overrides live in keybinds.jsonc. Comments and trailing commas are allowed.
Each section maps an action to a comma-separated key list:

	{
	  // submit with F5 as well
	  "global": { "submit": "ctrl+s,f5" },
	  "viewer": { "scroll_down": "j,down" },
	}

Overrides replace the default keys of the actions they name; other
defaults are kept.
*/
package keybinds
