// File: internal/document/value.go
// Brief: Tagged value tree used by the resolver for decoded config documents.

// Package document models a decoded JSON/YAML configuration as a tagged value
// tree. Mappings preserve key declaration order so downstream reporting stays
// deterministic, and mappings carrying a local "$ref" pointer are classified
// as Reference values so traversal code can switch on kind instead of probing
// for magic keys.
package document

import "fmt"

// Kind enumerates the shapes a Value can take.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMapping
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMapping:
		return "mapping"
	case KindReference:
		return "reference"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// RefKey is the mapping key that marks a reference entry.
const RefKey = "$ref"

// Value is one node of a document tree. The zero Value is null.
type Value struct {
	kind    Kind
	boolVal bool
	intVal  int64
	fltVal  float64
	strVal  string
	list    []*Value
	mapping *Mapping
	ref     *Reference
}

// Reference is a mapping entry that declared a local "$ref" pointer plus
// override fields to merge on top of the referenced target.
type Reference struct {
	Pointer   string
	Overrides *Mapping
}

// Null returns the null value.
func Null() *Value { return &Value{kind: KindNull} }

// Bool wraps a boolean scalar.
func Bool(b bool) *Value { return &Value{kind: KindBool, boolVal: b} }

// Int wraps an integer scalar.
func Int(i int64) *Value { return &Value{kind: KindInt, intVal: i} }

// Float wraps a floating-point scalar.
func Float(f float64) *Value { return &Value{kind: KindFloat, fltVal: f} }

// String wraps a string scalar.
func String(s string) *Value { return &Value{kind: KindString, strVal: s} }

// List wraps a slice of values.
func List(items ...*Value) *Value { return &Value{kind: KindList, list: items} }

// FromMapping wraps a mapping, classifying it as a Reference when it carries
// a string-valued "$ref" key. Non-string "$ref" values stay plain mappings;
// the schema validator rejects those before resolution ever sees them.
func FromMapping(m *Mapping) *Value {
	if m == nil {
		m = NewMapping()
	}
	if ptr, ok := m.Get(RefKey); ok && ptr.Kind() == KindString {
		overrides := NewMapping()
		for _, key := range m.keys {
			if key == RefKey {
				continue
			}
			overrides.Set(key, m.items[key])
		}
		return &Value{kind: KindReference, ref: &Reference{Pointer: ptr.Str(), Overrides: overrides}}
	}
	return &Value{kind: KindMapping, mapping: m}
}

// Kind reports the variant stored in v.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// Boolean returns the boolean payload. Valid only for KindBool.
func (v *Value) Boolean() bool { return v.boolVal }

// Integer returns the integer payload. Valid only for KindInt.
func (v *Value) Integer() int64 { return v.intVal }

// FloatVal returns the float payload. Valid only for KindFloat.
func (v *Value) FloatVal() float64 { return v.fltVal }

// Str returns the string payload. Valid only for KindString.
func (v *Value) Str() string { return v.strVal }

// Items returns the backing slice of a list value. Callers must not mutate.
func (v *Value) Items() []*Value { return v.list }

// Map returns the backing mapping of a KindMapping value.
func (v *Value) Map() *Mapping { return v.mapping }

// Ref returns the reference payload of a KindReference value.
func (v *Value) Ref() *Reference { return v.ref }

// AsMapping reports the mapping form of v. For a Reference it reconstructs
// the declared mapping, "$ref" entry included, so callers that treat the
// document as plain data (pointer descent, merge) see the raw shape.
func (v *Value) AsMapping() (*Mapping, bool) {
	switch v.Kind() {
	case KindMapping:
		return v.mapping, true
	case KindReference:
		m := NewMapping()
		m.Set(RefKey, String(v.ref.Pointer))
		for _, key := range v.ref.Overrides.keys {
			m.Set(key, v.ref.Overrides.items[key])
		}
		return m, true
	default:
		return nil, false
	}
}

// Clone returns a deep copy of v. Scalars are shared-free by construction so
// only containers allocate.
func (v *Value) Clone() *Value {
	switch v.Kind() {
	case KindList:
		items := make([]*Value, len(v.list))
		for i, item := range v.list {
			items[i] = item.Clone()
		}
		return &Value{kind: KindList, list: items}
	case KindMapping:
		return &Value{kind: KindMapping, mapping: v.mapping.Clone()}
	case KindReference:
		return &Value{kind: KindReference, ref: &Reference{
			Pointer:   v.ref.Pointer,
			Overrides: v.ref.Overrides.Clone(),
		}}
	default:
		clone := *v
		return &clone
	}
}

// Mapping is an insertion-ordered string-keyed map of values.
type Mapping struct {
	keys  []string
	items map[string]*Value
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{items: make(map[string]*Value)}
}

// Set stores value under key, appending the key on first insertion and
// keeping its original position on overwrite.
func (m *Mapping) Set(key string, value *Value) {
	if _, exists := m.items[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.items[key] = value
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (*Value, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.items[key]
	return ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int { return len(m.keys) }

// Keys returns the keys in declaration order. The slice is a copy.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Clone returns a deep copy of the mapping.
func (m *Mapping) Clone() *Mapping {
	out := NewMapping()
	for _, key := range m.keys {
		out.Set(key, m.items[key].Clone())
	}
	return out
}
