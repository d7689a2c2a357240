package header

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/http/httpguts"
)

var (
	ErrNotFound          = errors.New("header not found")
	ErrInvalidHeader     = errors.New("invalid header")
	ErrInvalidHeaderRole = errors.New("header not allowed for this message")
)

type entry struct {
	name   Name
	values []string
}

// Map is an ordered header collection with case-insensitive keys.
// A Map is not safe for concurrent mutation; messages hand out clones.
type Map struct {
	order   []string
	entries map[string]*entry
}

func NewMap() *Map {
	return &Map{entries: make(map[string]*entry, 16)}
}

// FromPairs builds a map from name/value pairs, keeping their order.
// Repeated names accumulate values.
func FromPairs(pairs ...[2]string) (*Map, error) {
	m := NewMap()
	for _, p := range pairs {
		if err := m.Add(p[0], p[1]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func lookupKey(name string) string {
	return strings.ToLower(name)
}

func validate(name string, values []string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("%w: name %q", ErrInvalidHeader, name)
	}
	for _, v := range values {
		if !httpguts.ValidHeaderFieldValue(v) {
			return fmt.Errorf("%w: value %q for %s", ErrInvalidHeader, v, name)
		}
	}
	return nil
}

// Put replaces every value stored for name. Calling Put without values
// removes the header.
func (m *Map) Put(name string, values ...string) error {
	if len(values) == 0 {
		m.Remove(name)
		return nil
	}
	if err := validate(name, values); err != nil {
		return err
	}

	k := lookupKey(name)
	if e, ok := m.entries[k]; ok {
		e.values = slices.Clone(values)
		return nil
	}

	m.entries[k] = &entry{name: Canonical(name), values: slices.Clone(values)}
	m.order = append(m.order, k)
	return nil
}

// Add appends value to the values stored for name.
func (m *Map) Add(name string, value string) error {
	if err := validate(name, []string{value}); err != nil {
		return err
	}

	k := lookupKey(name)
	if e, ok := m.entries[k]; ok {
		e.values = append(e.values, value)
		return nil
	}

	m.entries[k] = &entry{name: Canonical(name), values: []string{value}}
	m.order = append(m.order, k)
	return nil
}

func (m *Map) Has(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.entries[lookupKey(name)]
	return ok
}

func (m *Map) Get(name string) ([]string, error) {
	if m != nil {
		if e, ok := m.entries[lookupKey(name)]; ok {
			return slices.Clone(e.values), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Value returns the first value of name or an empty string.
func (m *Map) Value(name string) string {
	if m == nil {
		return ""
	}
	e, ok := m.entries[lookupKey(name)]
	if !ok || len(e.values) == 0 {
		return ""
	}
	return e.values[0]
}

func (m *Map) Remove(name string) {
	k := lookupKey(name)
	if _, ok := m.entries[k]; !ok {
		return
	}
	delete(m.entries, k)
	m.order = slices.DeleteFunc(m.order, func(o string) bool { return o == k })
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Names returns the header names in insertion order.
func (m *Map) Names() []Name {
	if m == nil {
		return nil
	}
	names := make([]Name, 0, len(m.order))
	for _, k := range m.order {
		names = append(names, m.entries[k].name)
	}
	return names
}

// Range calls fn for every header in insertion order until fn returns false.
func (m *Map) Range(fn func(name Name, values []string) bool) {
	if m == nil {
		return
	}
	for _, k := range m.order {
		e := m.entries[k]
		if !fn(e.name, slices.Clone(e.values)) {
			return
		}
	}
}

func (m *Map) AnyKey(pred func(Name) bool) bool {
	if m == nil {
		return false
	}
	for _, k := range m.order {
		if pred(m.entries[k].name) {
			return true
		}
	}
	return false
}

// Equal reports whether m and other hold the same headers with the same
// values in the same order.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	if m == nil || other == nil {
		return true
	}
	if !slices.Equal(m.order, other.order) {
		return false
	}
	for k, e := range m.entries {
		o := other.entries[k]
		if o.name != e.name || !slices.Equal(o.values, e.values) {
			return false
		}
	}
	return true
}

func (m *Map) DeepClone() *Map {
	clone := &Map{
		order:   slices.Clone(m.order),
		entries: make(map[string]*entry, len(m.entries)),
	}
	for k, e := range m.entries {
		clone.entries[k] = &entry{name: e.name, values: slices.Clone(e.values)}
	}
	return clone
}

// CheckRole fails with ErrInvalidHeaderRole when the map holds a header
// reserved for the other kind of message.
func (m *Map) CheckRole(allowed Role) error {
	var offending Name
	found := m.AnyKey(func(n Name) bool {
		role := n.Role()
		if role != Unrestricted && role != allowed {
			offending = n
			return true
		}
		return false
	})
	if found {
		return fmt.Errorf("%w: %s is %s", ErrInvalidHeaderRole, offending, offending.Role())
	}
	return nil
}
