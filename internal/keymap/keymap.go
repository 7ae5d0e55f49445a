// Package keymap holds the key bindings the terminal UI dispatches on.
//
// A KeyMap maps a command name to its bindings. Each binding is a
// Sequence of one or more keys pressed in order, so vi users can bind
// "quit" to ":" followed by "q".
package keymap

import (
	"slices"
	"sort"
	"strings"

	"dario.cat/mergo"

	"github.com/thoreinstein/gertty/internal/errors"
)

// Built-in keymap names.
const (
	Default = "default"
	Vi      = "vi"
)

const nameKey = "name"

// Sequence is a series of keys that must be pressed in order.
type Sequence []string

// String renders the sequence with keys separated by spaces, e.g. ": q".
func (s Sequence) String() string {
	return strings.Join(s, " ")
}

// KeyMap maps commands to bindings.
type KeyMap struct {
	bindings map[string][]Sequence
}

// NamedKeyMap pairs a keymap with the name it is registered under.
type NamedKeyMap struct {
	Name   string
	KeyMap *KeyMap
}

// New returns the base keymap updated with overrides.
func New(overrides map[string][]Sequence) (*KeyMap, error) {
	km := &KeyMap{bindings: cloneBindings(defaultBindings)}
	if err := km.Update(overrides); err != nil {
		return nil, err
	}
	return km, nil
}

// Builtins returns fresh copies of the built-in keymaps in their fixed order.
func Builtins() []NamedKeyMap {
	base, _ := New(nil)
	vi, _ := New(viBindings)
	return []NamedKeyMap{
		{Name: Default, KeyMap: base},
		{Name: Vi, KeyMap: vi},
	}
}

// Update shallow-merges overrides into km: commands present in overrides
// have all their bindings replaced, every other command is kept.
func (km *KeyMap) Update(overrides map[string][]Sequence) error {
	if len(overrides) == 0 {
		return nil
	}
	src := cloneBindings(overrides)
	delete(src, nameKey)
	if err := mergo.Merge(&km.bindings, src, mergo.WithOverride); err != nil {
		return errors.Wrap(err, "merging key bindings")
	}
	return nil
}

// Bindings returns the key sequences bound to command.
func (km *KeyMap) Bindings(command string) []Sequence {
	return cloneSequences(km.bindings[command])
}

// Commands returns every command bound to key, sorted. Only the first key
// of each sequence is considered.
func (km *KeyMap) Commands(key string) []string {
	var out []string
	for command, seqs := range km.bindings {
		for _, seq := range seqs {
			if len(seq) > 0 && seq[0] == key {
				out = append(out, command)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// CommandNames returns every bound command, sorted.
func (km *KeyMap) CommandNames() []string {
	names := make([]string, 0, len(km.bindings))
	for name := range km.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatKeys renders the bindings of command for help screens, e.g. "f1, ?".
func (km *KeyMap) FormatKeys(command string) string {
	seqs := km.bindings[command]
	parts := make([]string, 0, len(seqs))
	for _, seq := range seqs {
		parts = append(parts, seq.String())
	}
	return strings.Join(parts, ", ")
}

// ParseBinding converts a decoded binding value: a string, or a list whose
// items are strings (alternative keys) or lists of strings (sequences).
func ParseBinding(raw any) ([]Sequence, error) {
	switch v := raw.(type) {
	case string:
		return []Sequence{{v}}, nil
	case []any:
		seqs := make([]Sequence, 0, len(v))
		for _, item := range v {
			switch it := item.(type) {
			case string:
				seqs = append(seqs, Sequence{it})
			case []any:
				seq := make(Sequence, 0, len(it))
				for _, key := range it {
					s, ok := key.(string)
					if !ok {
						return nil, errors.Newf("key sequence items must be strings, got %T", key)
					}
					seq = append(seq, s)
				}
				seqs = append(seqs, seq)
			default:
				return nil, errors.Newf("binding items must be strings or lists, got %T", item)
			}
		}
		return seqs, nil
	default:
		return nil, errors.Newf("binding must be a string or a list, got %T", raw)
	}
}

// FromEntry splits a decoded document entry into its name and bindings.
// Documents spell commands with hyphens ("cursor-down"); they are stored
// under their space-separated names.
func FromEntry(entry map[string]any) (string, map[string][]Sequence, error) {
	name, ok := entry[nameKey].(string)
	if !ok || name == "" {
		return "", nil, errors.New("keymap entry has no name")
	}

	bindings := make(map[string][]Sequence, len(entry)-1)
	for command, raw := range entry {
		if command == nameKey {
			continue
		}
		seqs, err := ParseBinding(raw)
		if err != nil {
			return "", nil, errors.Wrapf(err, "keymap %q: command %q", name, command)
		}
		bindings[strings.ReplaceAll(command, "-", " ")] = seqs
	}
	return name, bindings, nil
}

func cloneBindings(src map[string][]Sequence) map[string][]Sequence {
	out := make(map[string][]Sequence, len(src))
	for k, v := range src {
		out[k] = cloneSequences(v)
	}
	return out
}

func cloneSequences(seqs []Sequence) []Sequence {
	if seqs == nil {
		return nil
	}
	out := make([]Sequence, len(seqs))
	for i, s := range seqs {
		out[i] = slices.Clone(s)
	}
	return out
}
