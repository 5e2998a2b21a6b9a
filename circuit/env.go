package circuit

import "sort"

// Environment is a flat name to value binding store.
type Environment struct {
	values map[string]any
}

func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]any)}
}

// Define binds name to value, replacing any earlier binding.
func (e *Environment) Define(name string, value any) {
	e.values[name] = value
}

func (e *Environment) Lookup(name string) (any, bool) {
	val, ok := e.values[name]
	return val, ok
}

func (e *Environment) Len() int {
	return len(e.values)
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
