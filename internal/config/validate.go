package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ValidateKeys rejects keybinding sets where a key string cannot be
// parsed or where two actions claim the same key.
func ValidateKeys(keys *KeyBindings) error {
	claims := make(map[string][]string)

	v := reflect.ValueOf(keys).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		if v.Field(i).Kind() != reflect.String {
			continue
		}
		keyStr := v.Field(i).String()
		if keyStr == "" {
			continue
		}
		name := t.Field(i).Name
		if _, err := ParseKey(keyStr); err != nil {
			return fmt.Errorf("invalid key for %s: %w", name, err)
		}
		claims[keyStr] = append(claims[keyStr], name)
	}

	var conflicts []string
	for key, actions := range claims {
		if len(actions) > 1 {
			conflicts = append(conflicts, fmt.Sprintf("key %q is used by: %s", key, strings.Join(actions, ", ")))
		}
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return fmt.Errorf("duplicate keybindings found:\n  %s", strings.Join(conflicts, "\n  "))
	}
	return nil
}

// ValidateColor reports whether the name is one of the terminal colors
// gocui understands.
func ValidateColor(color string) bool {
	switch strings.ToLower(color) {
	case "default", "black", "red", "green", "yellow", "blue", "magenta", "cyan", "white":
		return true
	}
	return false
}
