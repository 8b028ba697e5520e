// Package prompt holds the static prompt templates tabletalk sends to
// language models, along with the rendering and output-parsing primitives
// they need.
package prompt

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// placeholderRegex matches a {name} substitution point. Braces around
// anything that is not an identifier are left alone.
var placeholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// MissingVariableError is returned by Render when a declared variable has no
// binding.
type MissingVariableError struct {
	Template string
	Name     string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("template %s: missing variable %q", e.Template, e.Name)
}

// UnknownVariableError is returned by Render when a binding names a variable
// the template never declared.
type UnknownVariableError struct {
	Template string
	Name     string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("template %s: unknown variable %q", e.Template, e.Name)
}

// Template is an immutable prompt template: a text with {name} placeholders
// and the ordered list of variable names it declares. Construct once, render
// many times; a Template is safe for concurrent use.
type Template struct {
	name      string
	text      string
	variables []string
}

// New builds a Template and verifies that the declared variables and the
// placeholders appearing in the text agree in both directions. A variable
// declared but never referenced, or referenced but never declared, is a
// configuration error.
func New(name, text string, variables []string) (*Template, error) {
	declared := make(map[string]bool, len(variables))
	for _, v := range variables {
		if declared[v] {
			return nil, fmt.Errorf("template %s: variable %q declared twice", name, v)
		}
		declared[v] = true
	}

	referenced := make(map[string]bool)
	for _, m := range placeholderRegex.FindAllStringSubmatch(text, -1) {
		referenced[m[1]] = true
	}

	for _, v := range variables {
		if !referenced[v] {
			return nil, fmt.Errorf("template %s: declared variable %q does not appear in template", name, v)
		}
	}
	for r := range referenced {
		if !declared[r] {
			return nil, fmt.Errorf("template %s: placeholder {%s} is not a declared variable", name, r)
		}
	}

	tmpl := &Template{
		name:      name,
		text:      text,
		variables: append([]string(nil), variables...),
	}
	return tmpl, nil
}

// MustNew is New for package-level templates; it panics on configuration
// errors.
func MustNew(name, text string, variables []string) *Template {
	tmpl, err := New(name, text, variables)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// Name returns the template's registry name.
func (t *Template) Name() string {
	return t.name
}

// Text returns the raw template text.
func (t *Template) Text() string {
	return t.text
}

// Variables returns the declared variable names in declaration order.
func (t *Template) Variables() []string {
	return append([]string(nil), t.variables...)
}

// Render substitutes every placeholder with its bound value. The bindings
// must cover exactly the declared variables: a missing name yields a
// *MissingVariableError, an extra one a *UnknownVariableError. Substitution
// is a single pass, so braces inside bound values are emitted verbatim and
// never re-expanded.
func (t *Template) Render(vars map[string]string) (string, error) {
	for _, v := range t.variables {
		if _, ok := vars[v]; !ok {
			return "", &MissingVariableError{Template: t.name, Name: v}
		}
	}
	if len(vars) != len(t.variables) {
		declared := make(map[string]bool, len(t.variables))
		for _, v := range t.variables {
			declared[v] = true
		}
		extra := make([]string, 0, 1)
		for name := range vars {
			if !declared[name] {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		return "", &UnknownVariableError{Template: t.name, Name: extra[0]}
	}

	var sb strings.Builder
	last := 0
	for _, loc := range placeholderRegex.FindAllStringSubmatchIndex(t.text, -1) {
		sb.WriteString(t.text[last:loc[0]])
		sb.WriteString(vars[t.text[loc[2]:loc[3]]])
		last = loc[1]
	}
	sb.WriteString(t.text[last:])
	return sb.String(), nil
}
