package prompt

import (
	"fmt"
	"sort"
)

// Registry is a named collection of templates. The package-level registry is
// populated with the built-in templates at init and read-only afterwards.
type Registry struct {
	templates map[string]*Template
}

func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// Register adds a template under its name. Registering the same name twice
// is an error.
func (r *Registry) Register(tmpl *Template) error {
	if _, exists := r.templates[tmpl.Name()]; exists {
		return fmt.Errorf("registry: template %q already registered", tmpl.Name())
	}
	r.templates[tmpl.Name()] = tmpl
	return nil
}

func (r *Registry) mustRegister(tmpl *Template) {
	if err := r.Register(tmpl); err != nil {
		panic(err)
	}
}

// Get returns the template registered under name.
func (r *Registry) Get(name string) (*Template, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("registry: no template named %q", name)
	}
	return tmpl, nil
}

// Names returns the registered template names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Get looks a template up in the default registry.
func Get(name string) (*Template, error) {
	return defaultRegistry.Get(name)
}

// Names lists the default registry's template names, sorted.
func Names() []string {
	return defaultRegistry.Names()
}
