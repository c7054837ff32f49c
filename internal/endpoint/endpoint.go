// Package endpoint holds the static table mapping logical operation names to
// remote paths together with the per-endpoint request conventions.
package endpoint

import (
	"fmt"
	"net/http"
	"sort"
)

// BodyKind is the encoding an endpoint expects. It is fixed per endpoint:
// the remote side breaks when form and JSON are mixed.
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyQuery
	BodyForm
	BodyJSON
)

func (k BodyKind) String() string {
	switch k {
	case BodyQuery:
		return "query"
	case BodyForm:
		return "form"
	case BodyJSON:
		return "json"
	default:
		return "none"
	}
}

// SuccessRule decides whether an embedded response code means success.
// code is nil when the response carried no code field.
type SuccessRule func(code *int) bool

// CodeOne accepts only code == 1.
func CodeOne(code *int) bool {
	return code != nil && *code == 1
}

// CodeOneOrAbsent accepts code == 1 or a missing code (older endpoints).
func CodeOneOrAbsent(code *int) bool {
	return code == nil || *code == 1
}

// Descriptor describes one remote operation.
type Descriptor struct {
	Name    string
	Method  string
	Path    string
	Body    BodyKind
	Auth    bool
	Success SuccessRule
}

// Succeeded applies the descriptor's success rule, defaulting to CodeOne.
func (d Descriptor) Succeeded(code *int) bool {
	if d.Success == nil {
		return CodeOne(code)
	}
	return d.Success(code)
}

// Table is an immutable set of descriptors.
type Table struct {
	byName map[string]Descriptor
}

// NewTable validates and indexes descriptors.
func NewTable(descriptors ...Descriptor) (*Table, error) {
	byName := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		if d.Name == "" || d.Path == "" {
			return nil, fmt.Errorf("endpoint: descriptor missing name or path: %+v", d)
		}
		if _, exists := byName[d.Name]; exists {
			return nil, fmt.Errorf("endpoint: duplicate name %q", d.Name)
		}
		if d.Method == "" {
			d.Method = http.MethodGet
		}
		if d.Method == http.MethodGet && (d.Body == BodyForm || d.Body == BodyJSON) {
			return nil, fmt.Errorf("endpoint: %s is GET but declares a %s body", d.Name, d.Body)
		}
		if d.Success == nil {
			d.Success = CodeOne
		}
		byName[d.Name] = d
	}
	return &Table{byName: byName}, nil
}

// Lookup returns the descriptor registered under name.
func (t *Table) Lookup(name string) (Descriptor, bool) {
	if t == nil {
		return Descriptor{}, false
	}
	d, ok := t.byName[name]
	return d, ok
}

// MustLookup is Lookup for names known at compile time.
func (t *Table) MustLookup(name string) Descriptor {
	d, ok := t.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("endpoint: unknown %q", name))
	}
	return d
}

// Names lists the registered names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
