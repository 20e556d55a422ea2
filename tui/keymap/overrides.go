package keymap

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/grovetools/ccsessions/config"
)

// Overrides maps snake_case binding names to replacement keys, e.g.
// {"quit": ["Q"]} replaces the Quit binding.
type Overrides map[string][]string

// LoadOverrides reads the "keys" section of the config file.
func LoadOverrides(cfg *config.Config) (Overrides, error) {
	if cfg == nil {
		return nil, nil
	}
	var o Overrides
	if err := cfg.UnmarshalExtension("keys", &o); err != nil {
		return nil, err
	}
	return o, nil
}

// ApplyOverrides applies overrides to any KeyMap struct. Config keys in
// snake_case map to CamelCase key.Binding fields; embedded structs are
// processed recursively.
//
// Example:
//
//	km := browser.DefaultKeyMap()
//	ApplyOverrides(&km, Overrides{"rename": {"n"}}) // km.Rename now fires on "n"
func ApplyOverrides(km interface{}, overrides Overrides) {
	if len(overrides) == 0 {
		return
	}

	v := reflect.ValueOf(km)
	if v.Kind() != reflect.Ptr {
		return
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return
	}

	applyOverridesRecursive(v, overrides)
}

func applyOverridesRecursive(v reflect.Value, overrides Overrides) {
	t := v.Type()
	bindingType := reflect.TypeOf(key.Binding{})

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if fieldType.Anonymous && field.Kind() == reflect.Struct {
			applyOverridesRecursive(field, overrides)
			continue
		}

		if fieldType.Type != bindingType {
			continue
		}

		keys, ok := overrides[camelToSnake(fieldType.Name)]
		if !ok || len(keys) == 0 {
			continue
		}

		// Keep the help description, show the first new key.
		current := field.Interface().(key.Binding)
		field.Set(reflect.ValueOf(key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], current.Help().Desc),
		)))
	}
}

// camelToSnake converts a CamelCase string to snake_case.
// Examples: LabelEdit -> label_edit, SortMessages -> sort_messages
func camelToSnake(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
