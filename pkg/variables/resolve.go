// Package variables resolves template variable declarations against the values
// supplied by a configuration.
package variables

import (
	"github.com/sadanandam5592/orca/pkg/document"
	"github.com/sadanandam5592/orca/pkg/models"
)

type Binding struct {
	Name  string
	Type  string
	Value document.Value
}

// Resolve returns the variable bindings for a generated pipeline. Declared
// variables come first in declaration order, a configured value overriding the
// declared default. Declared variables with neither are left out. Configured
// variables the template does not declare follow, sorted by name.
func Resolve(declared []models.VariableDefinition, configured document.Map) []Binding {
	bindings := make([]Binding, 0, len(declared)+len(configured))
	seen := make(map[string]bool, len(declared))

	for _, d := range declared {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true

		if v, ok := configured[d.Name]; ok {
			bindings = append(bindings, Binding{Name: d.Name, Type: d.Type, Value: v.Clone()})
		} else if d.HasDefault() {
			bindings = append(bindings, Binding{Name: d.Name, Type: d.Type, Value: d.DefaultValue.Clone()})
		}
	}

	for _, name := range configured.Keys() {
		if seen[name] {
			continue
		}
		bindings = append(bindings, Binding{Name: name, Value: configured[name].Clone()})
	}
	return bindings
}

// AsMap turns bindings into the name to value mapping the execution engine
// evaluates expressions against.
func AsMap(bindings []Binding) document.Map {
	m := make(document.Map, len(bindings))
	for _, b := range bindings {
		m[b.Name] = b.Value
	}
	return m
}
