// Package palette holds the color themes the terminal UI draws with.
//
// A Palette maps a display attribute name (e.g. "focused-link") to its
// color specs. Every palette starts from the built-in base table; user
// palettes from the configuration document are layered on top.
package palette

import (
	"slices"
	"sort"

	"dario.cat/mergo"

	"github.com/thoreinstein/gertty/internal/errors"
)

// Built-in palette names.
const (
	Default = "default"
	Light   = "light"
)

// nameKey is the entry field carrying the palette name; it is never an attribute.
const nameKey = "name"

// Palette is a set of display attributes. It is not safe for concurrent
// mutation; resolved palettes are only read.
type Palette struct {
	attrs map[string][]string
}

// Entry is one display attribute with its color specs.
type Entry struct {
	Name  string
	Specs []string
}

// New returns the base palette updated with overrides.
func New(overrides map[string][]string) (*Palette, error) {
	p := &Palette{attrs: cloneAttrs(defaultAttributes)}
	if err := p.Update(overrides); err != nil {
		return nil, err
	}
	return p, nil
}

// Builtins returns fresh copies of the built-in palettes in their fixed order.
func Builtins() []NamedPalette {
	base, _ := New(nil)
	light, _ := New(lightAttributes)
	return []NamedPalette{
		{Name: Default, Palette: base},
		{Name: Light, Palette: light},
	}
}

// NamedPalette pairs a palette with the name it is registered under.
type NamedPalette struct {
	Name    string
	Palette *Palette
}

// Update shallow-merges overrides into p: attributes present in overrides
// replace the stored ones, all others are kept. A "name" key is ignored.
func (p *Palette) Update(overrides map[string][]string) error {
	if len(overrides) == 0 {
		return nil
	}
	src := cloneAttrs(overrides)
	delete(src, nameKey)
	if err := mergo.Merge(&p.attrs, src, mergo.WithOverride); err != nil {
		return errors.Wrap(err, "merging palette attributes")
	}
	return nil
}

// Attribute returns the color specs for name.
func (p *Palette) Attribute(name string) ([]string, bool) {
	specs, ok := p.attrs[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(specs), true
}

// Len returns the number of attributes.
func (p *Palette) Len() int {
	return len(p.attrs)
}

// Entries returns every attribute sorted by name.
func (p *Palette) Entries() []Entry {
	names := make([]string, 0, len(p.attrs))
	for name := range p.attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Specs: slices.Clone(p.attrs[name])})
	}
	return entries
}

// FromEntry splits a decoded document entry into its name and attributes.
// The entry shape has already been checked by the schema.
func FromEntry(entry map[string]any) (string, map[string][]string, error) {
	name, ok := entry[nameKey].(string)
	if !ok || name == "" {
		return "", nil, errors.New("palette entry has no name")
	}

	attrs := make(map[string][]string, len(entry)-1)
	for key, raw := range entry {
		if key == nameKey {
			continue
		}
		list, ok := raw.([]any)
		if !ok {
			return "", nil, errors.Newf("palette %q: attribute %q must be a list of strings", name, key)
		}
		specs := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return "", nil, errors.Newf("palette %q: attribute %q must be a list of strings", name, key)
			}
			specs = append(specs, s)
		}
		attrs[key] = specs
	}
	return name, attrs, nil
}

func cloneAttrs(src map[string][]string) map[string][]string {
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = slices.Clone(v)
	}
	return out
}
