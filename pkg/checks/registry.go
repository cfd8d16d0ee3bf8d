package checks

import (
	"fmt"
	"sort"
)

// Factory constructs a fresh check with default configuration.
type Factory func() Check

// Info is the stable description of a registered check.
type Info struct {
	Name        string
	Description string
	Properties  []Property
}

// Registry maps check names to factories with deterministic ordering.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a check factory under the name of the check it builds.
func (r *Registry) Register(factory Factory) error {
	name := factory().Name()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCheck, name)
	}

	r.factories[name] = factory

	return nil
}

// New constructs a fresh instance of the named check.
func (r *Registry) New(name string) (Check, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCheck, name)
	}

	return factory(), nil
}

// Names returns the registered check names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Describe returns stable metadata for every registered check, in name
// order.
func (r *Registry) Describe() []Info {
	infos := make([]Info, 0, len(r.factories))

	for _, name := range r.Names() {
		check := r.factories[name]()
		infos = append(infos, Info{
			Name:        check.Name(),
			Description: check.Description(),
			Properties:  check.Properties(),
		})
	}

	return infos
}
