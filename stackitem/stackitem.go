// Package stackitem implements the tagged stack-item variant the
// interpreter pushes, pops and inspects: integers, byte strings,
// arrays, structs, maps, booleans and opaque interop handles.
package stackitem

import (
	"bytes"

	"github.com/wqq1991/neo-gui-nel/bigint"
)

// Type discriminates the variants of Item.
type Type byte

const (
	TypeBoolean Type = iota
	TypeInteger
	TypeByteString
	TypeArray
	TypeStruct
	TypeMap
	TypeInteropInterface
)

func (t Type) String() string {
	switch t {
	case TypeBoolean:
		return "Boolean"
	case TypeInteger:
		return "Integer"
	case TypeByteString:
		return "ByteString"
	case TypeArray:
		return "Array"
	case TypeStruct:
		return "Struct"
	case TypeMap:
		return "Map"
	case TypeInteropInterface:
		return "InteropInterface"
	default:
		return "Unknown"
	}
}

// Item is any value the evaluation or alt stack can hold.
type Item interface {
	Type() Type

	// AsBigInteger decodes the item's byte representation as a
	// little-endian two's-complement integer. ok is false when the
	// item has no integer reading (Null, an Integer wrapping an absent
	// value, Array, Struct, Map, InteropInterface), in which case the
	// returned *bigint.Int reports Absent() for the benefit of
	// check_big_integers.
	AsBigInteger() (*bigint.Int, bool)

	// AsByteArray returns the item's raw byte representation.
	AsByteArray() []byte

	IsArray() bool
	AsArray() []Item
	AsBool() bool
}

// Boolean is a true/false flag.
type Boolean bool

func (b Boolean) Type() Type { return TypeBoolean }
func (b Boolean) AsBigInteger() (*bigint.Int, bool) {
	if b {
		return bigint.FromInt64(1), true
	}
	return bigint.FromInt64(0), true
}
func (b Boolean) AsByteArray() []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}
func (b Boolean) IsArray() bool  { return false }
func (b Boolean) AsArray() []Item { return nil }
func (b Boolean) AsBool() bool   { return bool(b) }

// Integer wraps a bigint.Int.
type Integer struct {
	v *bigint.Int
}

// NewInteger wraps v.
func NewInteger(v *bigint.Int) Integer { return Integer{v: v} }

func (i Integer) Type() Type { return TypeInteger }
func (i Integer) AsBigInteger() (*bigint.Int, bool) {
	return i.v, !i.v.Absent()
}
func (i Integer) AsByteArray() []byte  { return i.v.Bytes() }
func (i Integer) IsArray() bool        { return false }
func (i Integer) AsArray() []Item      { return nil }
func (i Integer) AsBool() bool         { return i.v.Sign() != 0 }

// ByteString is a raw byte-string item.
type ByteString []byte

func (b ByteString) Type() Type { return TypeByteString }
func (b ByteString) AsBigInteger() (*bigint.Int, bool) {
	return bigint.FromBytes(b), true
}
func (b ByteString) AsByteArray() []byte { return []byte(b) }
func (b ByteString) IsArray() bool       { return false }
func (b ByteString) AsArray() []Item     { return nil }
func (b ByteString) AsBool() bool {
	for _, c := range b {
		if c != 0 {
			return true
		}
	}
	return false
}

// Array is an ordered, mutable, reference-shared sequence of items.
type Array struct {
	items []Item
}

// NewArray wraps items (not copied).
func NewArray(items []Item) *Array { return &Array{items: items} }

func (a *Array) Type() Type { return TypeArray }
func (a *Array) AsBigInteger() (*bigint.Int, bool) {
	return bigint.FromBytes(nil), false
}
func (a *Array) AsByteArray() []byte { return nil }
func (a *Array) IsArray() bool       { return true }
func (a *Array) AsArray() []Item     { return a.items }
func (a *Array) AsBool() bool        { return true }
func (a *Array) Len() int            { return len(a.items) }

// Struct holds items like Array, distinguished only by tag
// here: the harness only needs type discrimination, not NEO's
// by-value struct-copy semantics (§9 cyclic-reference handling is the
// interpreter's concern, not stackitem's).
type Struct struct {
	items []Item
}

// NewStruct wraps items (not copied).
func NewStruct(items []Item) *Struct { return &Struct{items: items} }

func (s *Struct) Type() Type { return TypeStruct }
func (s *Struct) AsBigInteger() (*bigint.Int, bool) {
	return bigint.FromBytes(nil), false
}
func (s *Struct) AsByteArray() []byte { return nil }
func (s *Struct) IsArray() bool       { return true }
func (s *Struct) AsArray() []Item     { return s.items }
func (s *Struct) AsBool() bool        { return true }
func (s *Struct) Len() int            { return len(s.items) }

// Clone returns a shallow copy of s with its own backing slice. The
// interpreter does not call it: DUP and OVER push the same *Struct.
func (s *Struct) Clone() *Struct {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return &Struct{items: items}
}

// mapEntry preserves insertion order for deterministic iteration.
type mapEntry struct {
	key Item
	val Item
}

// Map is an ordered association of Item keys to Item values.
type Map struct {
	entries []mapEntry
}

// NewMap returns an empty map.
func NewMap() *Map { return &Map{} }

func (m *Map) Type() Type { return TypeMap }
func (m *Map) AsBigInteger() (*bigint.Int, bool) {
	return bigint.FromBytes(nil), false
}
func (m *Map) AsByteArray() []byte { return nil }
func (m *Map) IsArray() bool       { return false }
func (m *Map) AsArray() []Item     { return nil }
func (m *Map) AsBool() bool        { return true }
func (m *Map) Len() int            { return len(m.entries) }

// Set inserts or overwrites the value for key, keyed by byte-string
// equality of the key's AsByteArray() representation.
func (m *Map) Set(key, val Item) {
	kb := key.AsByteArray()
	for i, e := range m.entries {
		if bytes.Equal(e.key.AsByteArray(), kb) {
			m.entries[i].val = val
			return
		}
	}
	m.entries = append(m.entries, mapEntry{key: key, val: val})
}

// Get looks up key by byte-string equality.
func (m *Map) Get(key Item) (Item, bool) {
	kb := key.AsByteArray()
	for _, e := range m.entries {
		if bytes.Equal(e.key.AsByteArray(), kb) {
			return e.val, true
		}
	}
	return nil, false
}

// InteropInterface wraps an opaque host-provided handle, never
// inspected by the interpreter beyond identity.
type InteropInterface struct {
	Handle interface{}
}

func (i InteropInterface) Type() Type { return TypeInteropInterface }
func (i InteropInterface) AsBigInteger() (*bigint.Int, bool) {
	return bigint.FromBytes(nil), false
}
func (i InteropInterface) AsByteArray() []byte { return nil }
func (i InteropInterface) IsArray() bool       { return false }
func (i InteropInterface) AsArray() []Item     { return nil }
func (i InteropInterface) AsBool() bool        { return i.Handle != nil }

// Null represents an absent value distinct from any zero value; its
// AsBigInteger decodes as an absent operand per §4.1's null rule.
type Null struct{}

func (Null) Type() Type { return TypeByteString }
func (Null) AsBigInteger() (*bigint.Int, bool) {
	return bigint.FromBytes(nil), false
}
func (Null) AsByteArray() []byte { return nil }
func (Null) IsArray() bool       { return false }
func (Null) AsArray() []Item     { return nil }
func (Null) AsBool() bool        { return false }
