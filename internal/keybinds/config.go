package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration. Each section maps
// an action name to a comma-separated list of keys.
type Config struct {
	Version string            `json:"version"`
	Global  map[string]string `json:"global,omitempty"`
	Focused map[string]string `json:"focused,omitempty"`
	Editing map[string]string `json:"editing,omitempty"`
	Viewer  map[string]string `json:"viewer,omitempty"`
}

const configHeader = "// reqform keybindings. Each entry maps an action to comma-separated keys.\n"

// LoadConfig loads keybinding configuration from a JSON or JSONC file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSONC file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append([]byte(configHeader), data...), 0644)
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:  c.Global,
		ContextFocused: c.Focused,
		ContextEditing: c.Editing,
		ContextViewer:  c.Viewer,
	}
}

// ApplyConfig applies user configuration to a registry.
// User bindings replace the default keys of the actions they name.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, bindings := range config.sections() {
		for actionStr, keyList := range bindings {
			action := Action(actionStr)
			if !IsKnownAction(action) {
				return fmt.Errorf("unknown action '%s' in context '%s'", actionStr, context)
			}

			keys := splitKeys(keyList)
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("action '%s' in context '%s': %w", actionStr, context, err)
				}
			}

			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}

	return nil
}

func splitKeys(list string) []string {
	var keys []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// LoadOrDefault loads user config if it exists, otherwise returns default
// registry. A config that fails validation is rejected; warnings are logged.
func LoadOrDefault(configPath string, logger *slog.Logger) (*Registry, error) {
	registry := NewDefaultRegistry()
	if configPath == "" {
		return registry, nil
	}

	config, err := LoadConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return registry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load keybinds: %w", err)
	}

	if err := ApplyConfig(registry, config); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	result := NewValidator().ValidateRegistry(registry)
	if result.HasErrors() {
		return nil, fmt.Errorf("invalid keybinds in %s:\n%s", configPath, result.String())
	}
	for _, warn := range result.Warnings {
		logger.Warn("keybinding warning", "path", configPath, "context", string(warn.Context), "key", warn.Key, "message", warn.Message)
	}

	return registry, nil
}

// ExportConfig converts a registry into a config file structure
func ExportConfig(registry *Registry) *Config {
	config := &Config{Version: "1.0"}
	sections := map[Context]*map[string]string{
		ContextGlobal:  &config.Global,
		ContextFocused: &config.Focused,
		ContextEditing: &config.Editing,
		ContextViewer:  &config.Viewer,
	}

	for context, section := range sections {
		grouped := map[Action][]string{}
		for _, b := range registry.list(context) {
			grouped[b.Action] = append(grouped[b.Action], b.Key)
		}
		if len(grouped) == 0 {
			continue
		}

		*section = make(map[string]string, len(grouped))
		for action, keys := range grouped {
			sort.Strings(keys)
			(*section)[string(action)] = strings.Join(keys, ",")
		}
	}

	return config
}
