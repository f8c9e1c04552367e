// object.go: the three reference-semantics containers.
//
// Object, Array and StringObject all satisfy BindingTarget (reference.go),
// so a Reference can treat any of them as a property base. Property keys are
// always normalized to string form before lookup or store, even when the
// logical key is numeric.
package scope

import (
	"sort"
	"strconv"
)

// Object is a keyed mapping from string property names to values. Insertion
// order carries no meaning; Keys returns a sorted view for enumeration and
// printing.
type Object struct {
	Entries map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{Entries: map[string]Value{}}
}

// NewObjectOf wraps an existing entry map (shared, not copied).
func NewObjectOf(entries map[string]Value) *Object {
	if entries == nil {
		entries = map[string]Value{}
	}
	return &Object{Entries: entries}
}

// Get returns the named property, or Undefined when absent.
func (o *Object) Get(name string) Value {
	if v, ok := o.Entries[name]; ok {
		return v
	}
	return Undefined
}

// Set stores the named property.
func (o *Object) Set(name string, v Value) { o.Entries[name] = v }

// Delete removes the named property; absent names are a no-op.
func (o *Object) Delete(name string) { delete(o.Entries, name) }

// Has reports property presence.
func (o *Object) Has(name string) bool {
	_, ok := o.Entries[name]
	return ok
}

// Keys returns the property names in sorted order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.Entries))
	for k := range o.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (o *Object) GetBindingValue(name string) Value      { return o.Get(name) }
func (o *Object) SetMutableBinding(name string, v Value) { o.Set(name, v) }

// Array is an ordered sequence addressed by non-negative integer index plus
// a synthetic "length" pseudo-property.
type Array struct {
	Items []Value
}

// NewArray returns an array over the given items (shared, not copied).
func NewArray(items ...Value) *Array { return &Array{Items: items} }

// arrayIndex parses a normalized property key as a sequence index.
func arrayIndex(name string) (int, bool) {
	i, err := strconv.Atoi(name)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// Get returns "length", an element, or Undefined for out-of-range indices.
// Non-index property names are a fault: arrays have no other properties.
func (a *Array) Get(name string) Value {
	if name == "length" {
		return Number(float64(len(a.Items)))
	}
	i, ok := arrayIndex(name)
	if !ok {
		fail("invalid array index %q", name)
	}
	if i >= len(a.Items) {
		return Undefined
	}
	return a.Items[i]
}

// Set writes an element. Writing at i >= length first extends the sequence
// with Undefined fillers so every index below i stays defined; writing never
// shrinks the sequence.
func (a *Array) Set(name string, v Value) {
	i, ok := arrayIndex(name)
	if !ok {
		fail("invalid array index %q", name)
	}
	for i >= len(a.Items) {
		a.Items = append(a.Items, Undefined)
	}
	a.Items[i] = v
}

// Has reports whether name addresses an existing element or "length".
func (a *Array) Has(name string) bool {
	if name == "length" {
		return true
	}
	i, ok := arrayIndex(name)
	return ok && i < len(a.Items)
}

func (a *Array) GetBindingValue(name string) Value      { return a.Get(name) }
func (a *Array) SetMutableBinding(name string, v Value) { a.Set(name, v) }

// StringObject wraps a text value in a mutable, indexable container. It
// exposes "length" and positional single-character reads.
type StringObject struct {
	Text string
}

// NewStringObject wraps text.
func NewStringObject(text string) *StringObject { return &StringObject{Text: text} }

// Get returns "length" or the one-character string at an index; reads past
// the end yield Undefined.
func (s *StringObject) Get(name string) Value {
	if name == "length" {
		return Number(float64(len(s.Text)))
	}
	i, ok := arrayIndex(name)
	if !ok {
		fail("invalid string index %q", name)
	}
	if i >= len(s.Text) {
		return Undefined
	}
	return Str(s.Text[i : i+1])
}

// Set replaces the entire backing text with text[:i] + value + text[i+1:].
// The inserted value is not limited to a single character, so a write can
// grow the text by more than it replaces.
func (s *StringObject) Set(name string, v Value) {
	i, ok := arrayIndex(name)
	if !ok {
		fail("invalid string index %q", name)
	}
	if i > len(s.Text) {
		i = len(s.Text)
	}
	rest := ""
	if i+1 <= len(s.Text) {
		rest = s.Text[i+1:]
	}
	s.Text = s.Text[:i] + DisplayString(v) + rest
}

// Has reports whether name addresses "length" or an in-range index.
func (s *StringObject) Has(name string) bool {
	if name == "length" {
		return true
	}
	i, ok := arrayIndex(name)
	return ok && i < len(s.Text)
}

func (s *StringObject) GetBindingValue(name string) Value      { return s.Get(name) }
func (s *StringObject) SetMutableBinding(name string, v Value) { s.Set(name, v) }

// stringBase is the transient box for property access on a primitive string
// (the only primitive-base kind the runtime supports). Reads see length and
// positional characters; writes are rejected because primitive text is
// immutable.
type stringBase string

func (s stringBase) GetBindingValue(name string) Value {
	if name == "length" {
		return Number(float64(len(s)))
	}
	i, ok := arrayIndex(name)
	if !ok {
		fail("invalid string index %q", name)
	}
	if i >= len(s) {
		return Undefined
	}
	return Str(string(s[i : i+1]))
}

func (s stringBase) SetMutableBinding(name string, v Value) {
	failRef("cannot assign property %q of immutable string", name)
}
