package stbjson

import (
	"math"

	"github.com/pkg/errors"
)

// Kind is an enum for the JSON value types a Value can hold.
type Kind uint8

// Kinds a Value can carry. The zero value, Invalid, signals an
// uninitialized sentinel and is never produced by Parse.
const (
	Invalid Kind = iota
	Null
	False
	True
	Number
	String
	Array
	Object
	Raw
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case False:
		return "false"
	case True:
		return "true"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	case Raw:
		return "raw"
	default:
		return "invalid"
	}
}

// Value is one node of a JSON value tree. Depending on its Kind it
// carries a subset of its fields:
//
//	Kind     fields used
//	Null     -
//	False    -
//	True     -
//	Number   num, numInt
//	String   str
//	Raw      str
//	Array    children
//	Object   children (each with a non-empty key)
//
// A Value never stores a parent pointer; pointer/patch operations that
// need ancestry walk down from a root instead, matching the source
// library's struct layout (next/prev/child, no parent).
type Value struct {
	kind     Kind
	key      string
	str      string
	num      float64
	numInt   int32
	children []*Value

	reference bool
	constKey  bool
}

// ErrNotContainer is returned by tree-editing methods when called on a
// Value that is not an Array or Object.
var ErrNotContainer = errors.New("stbjson: not array or object")

// ErrReferenceImmutable is returned when a mutating method is called on
// a Value built by NewArrayReference/NewObjectReference/NewStringReference,
// whose children or string payload are shared with another tree.
var ErrReferenceImmutable = errors.New("stbjson: value is a reference and cannot be mutated in place")

// Kind reports the type tag of v. A nil Value reports Invalid, mirroring
// the source library's null-safe type query.
func (v *Value) Kind() Kind {
	if v == nil {
		return Invalid
	}
	return v.kind
}

func (v *Value) IsInvalid() bool { return v.Kind() == Invalid }
func (v *Value) IsNull() bool    { return v.Kind() == Null }
func (v *Value) IsFalse() bool   { return v.Kind() == False }
func (v *Value) IsTrue() bool    { return v.Kind() == True }
func (v *Value) IsBool() bool    { k := v.Kind(); return k == True || k == False }
func (v *Value) IsNumber() bool  { return v.Kind() == Number }
func (v *Value) IsString() bool  { return v.Kind() == String }
func (v *Value) IsArray() bool   { return v.Kind() == Array }
func (v *Value) IsObject() bool  { return v.Kind() == Object }
func (v *Value) IsRaw() bool     { return v.Kind() == Raw }

// IsReference reports whether v shares its children/string payload with
// another Value rather than owning them.
func (v *Value) IsReference() bool { return v != nil && v.reference }

// HasConstKey reports whether v's object key is flagged as a borrowed
// literal. No constructor in this package sets the flag; SetKey, Set,
// SetFold and ReplaceAt clear it. Kept for
// API parity with the source library; Go's garbage collector makes no
// distinction in practice.
func (v *Value) HasConstKey() bool { return v != nil && v.constKey }

// Key returns the object key v is stored under in its parent, or "" for
// array children and roots.
func (v *Value) Key() string {
	if v == nil {
		return ""
	}
	return v.key
}

// BoolValue reports the boolean a True/False Value carries. It returns
// false for any other Kind.
func (v *Value) BoolValue() bool { return v.Kind() == True }

// NumberValue returns the float64 a Number Value carries, or
// math.NaN() for any other Kind.
func (v *Value) NumberValue() float64 {
	if v == nil || v.kind != Number {
		return math.NaN()
	}
	return v.num
}

// IntValue returns the saturated int32 projection of a Number Value, or
// 0 for any other Kind.
func (v *Value) IntValue() int32 {
	if v == nil || v.kind != Number {
		return 0
	}
	return v.numInt
}

// StringValue returns the payload of a String or Raw Value, or "" for
// any other Kind.
func (v *Value) StringValue() string {
	if v == nil || (v.kind != String && v.kind != Raw) {
		return ""
	}
	return v.str
}

// Children returns the live slice of v's children for Array/Object v,
// or nil otherwise. Callers must not mutate the returned slice directly;
// use the tree-editing methods instead.
func (v *Value) Children() []*Value {
	if v == nil || (v.kind != Array && v.kind != Object) {
		return nil
	}
	return v.children
}

// Len reports the number of children of an Array or Object, 0 for
// Invalid, and 1 for any other Kind (matching the source library's
// "a scalar has length one" convention).
func (v *Value) Len() int {
	switch v.Kind() {
	case Array, Object:
		return len(v.children)
	case Invalid:
		return 0
	default:
		return 1
	}
}

// Total returns the number of Values in the subtree rooted at v,
// including v itself.
func (v *Value) Total() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case Array, Object:
		n := 1
		for _, c := range v.children {
			n += c.Total()
		}
		return n
	default:
		return 1
	}
}

func newScalar(k Kind) *Value { return &Value{kind: k} }

// NewNull returns a new Null Value.
func NewNull() *Value { return newScalar(Null) }

// NewBool returns a new True or False Value.
func NewBool(b bool) *Value {
	if b {
		return newScalar(True)
	}
	return newScalar(False)
}

func clampInt32(f float64) int32 {
	switch {
	case f >= float64(math.MaxInt32):
		return math.MaxInt32
	case f <= float64(math.MinInt32):
		return math.MinInt32
	default:
		return int32(f)
	}
}

// NewNumber returns a new Number Value holding f and its saturated int32
// projection.
func NewNumber(f float64) *Value {
	return &Value{kind: Number, num: f, numInt: clampInt32(f)}
}

// NewString returns a new String Value that owns a copy of s.
func NewString(s string) *Value { return &Value{kind: String, str: s} }

// NewRaw returns a new Raw Value; s is emitted by the serializer
// verbatim, without escaping or validation.
func NewRaw(s string) *Value { return &Value{kind: Raw, str: s} }

// NewArray returns a new Array Value containing items in order. Any item
// carrying an object key has that key cleared, matching array-children
// never carrying keys.
func NewArray(items ...*Value) *Value {
	v := &Value{kind: Array, children: make([]*Value, 0, len(items))}
	for _, it := range items {
		it.key = ""
		v.children = append(v.children, it)
	}
	return v
}

// NewObject returns a new, empty Object Value.
func NewObject() *Value {
	return &Value{kind: Object}
}

// NewIntArray returns a new Array of Number Values built from ints.
func NewIntArray(ints []int) *Value {
	items := make([]*Value, len(ints))
	for i, n := range ints {
		items[i] = NewNumber(float64(n))
	}
	return NewArray(items...)
}

// NewFloatArray returns a new Array of Number Values built from floats.
func NewFloatArray(floats []float64) *Value {
	items := make([]*Value, len(floats))
	for i, f := range floats {
		items[i] = NewNumber(f)
	}
	return NewArray(items...)
}

// NewStringArray returns a new Array of String Values built from strs.
func NewStringArray(strs []string) *Value {
	items := make([]*Value, len(strs))
	for i, s := range strs {
		items[i] = NewString(s)
	}
	return NewArray(items...)
}

// NewArrayReference returns a new Array Value that shares src's children
// slice rather than copying it. Mutating the returned Value's children
// in place is rejected; build a fresh Array to add or remove items.
func NewArrayReference(src *Value) (*Value, error) {
	if src == nil || src.kind != Array {
		return nil, errors.Wrap(ErrNotContainer, "NewArrayReference")
	}
	return &Value{kind: Array, children: src.children, reference: true}, nil
}

// NewObjectReference returns a new Object Value that shares src's
// children slice rather than copying it.
func NewObjectReference(src *Value) (*Value, error) {
	if src == nil || src.kind != Object {
		return nil, errors.Wrap(ErrNotContainer, "NewObjectReference")
	}
	return &Value{kind: Object, children: src.children, reference: true}, nil
}

// NewStringReference returns a new String Value sharing s's backing
// bytes (a no-op distinction in Go, since strings are already immutable
// and shared; kept for API parity with the source library's
// IS_REFERENCE flag).
func NewStringReference(s string) *Value {
	return &Value{kind: String, str: s, reference: true}
}

// Append adds v to the end of the Array or Object a. For an Object, v
// must already carry a non-empty Key (set via (*Value).SetKey or a
// constructor); for an Array, any key v carries is cleared.
func (a *Value) Append(v *Value) error {
	if a == nil || (a.kind != Array && a.kind != Object) {
		return errors.Wrap(ErrNotContainer, "Append")
	}
	if a.reference {
		return errors.Wrap(ErrReferenceImmutable, "Append")
	}
	if a.kind == Object && v.key == "" {
		return errors.New("stbjson: object child must have a non-empty key")
	}
	if a.kind == Array {
		v.key = ""
	}
	a.children = append(a.children, v)
	return nil
}

// SetKey sets the object key under which v will be stored by a
// subsequent Append. It returns v for chaining.
func (v *Value) SetKey(key string) *Value {
	v.key = key
	v.constKey = false
	return v
}

// InsertAt inserts v before the child currently at index in the Array a.
// An index >= a.Len() is equivalent to Append.
func (a *Value) InsertAt(index int, v *Value) error {
	if a == nil || a.kind != Array {
		return errors.Wrap(ErrNotContainer, "InsertAt")
	}
	if a.reference {
		return errors.Wrap(ErrReferenceImmutable, "InsertAt")
	}
	if index < 0 {
		index = 0
	}
	if index >= len(a.children) {
		a.children = append(a.children, v)
		return nil
	}
	a.children = append(a.children, nil)
	copy(a.children[index+1:], a.children[index:])
	a.children[index] = v
	return nil
}

// DetachAt removes and returns the child at index from the Array or
// Object a. It reports false if index is out of range or a is a
// reference, whose shared children slice is left unchanged.
func (a *Value) DetachAt(index int) (*Value, bool) {
	if a == nil || (a.kind != Array && a.kind != Object) || a.reference {
		return nil, false
	}
	if index < 0 || index >= len(a.children) {
		return nil, false
	}
	c := a.children[index]
	a.children = append(a.children[:index], a.children[index+1:]...)
	return c, true
}

// Detach removes and returns child from the Array or Object a, found by
// pointer identity. It reports false if child is not a direct child of a.
func (a *Value) Detach(child *Value) (*Value, bool) {
	if a == nil {
		return nil, false
	}
	for i, c := range a.children {
		if c == child {
			return a.DetachAt(i)
		}
	}
	return nil, false
}

// ReplaceAt replaces the child at index of the Array or Object a with v,
// keeping the slot's key for Object containers (v.Key() is overwritten
// with the replaced child's key) and clearing v's key for Array
// containers.
func (a *Value) ReplaceAt(index int, v *Value) error {
	if a == nil || (a.kind != Array && a.kind != Object) {
		return errors.Wrap(ErrNotContainer, "ReplaceAt")
	}
	if a.reference {
		return errors.Wrap(ErrReferenceImmutable, "ReplaceAt")
	}
	if index < 0 || index >= len(a.children) {
		return errors.Wrap(ErrPathNotFound, "ReplaceAt: index out of range")
	}
	if a.kind == Object {
		v.key = a.children[index].key
		v.constKey = false
	} else {
		v.key = ""
	}
	a.children[index] = v
	return nil
}

// Replace finds old among a's children by pointer identity and replaces
// it with v. It reports false if old is not a direct child of a.
func (a *Value) Replace(old, v *Value) bool {
	if a == nil {
		return false
	}
	for i, c := range a.children {
		if c == old {
			_ = a.ReplaceAt(i, v)
			return true
		}
	}
	return false
}

// Get returns the first-to-last-winning child of object o whose key
// matches name exactly (case-sensitive). Matching a duplicate key
// returns the last child parsed with that key, per the data model's
// documented duplicate-key handling.
func (o *Value) Get(name string) *Value {
	if o == nil || o.kind != Object {
		return nil
	}
	var found *Value
	for _, c := range o.children {
		if c.key == name {
			found = c
		}
	}
	return found
}

// GetFold is Get's ASCII-case-insensitive counterpart.
func (o *Value) GetFold(name string) *Value {
	if o == nil || o.kind != Object {
		return nil
	}
	var found *Value
	for _, c := range o.children {
		if asciiEqualFold(c.key, name) {
			found = c
		}
	}
	return found
}

// HasKey reports whether object o has a child with the exact key name.
func (o *Value) HasKey(name string) bool { return o.Get(name) != nil }

// Set installs v under key in object o, deleting any prior binding(s)
// for key (case-sensitive) first, then appending v at the tail. This is
// the semantics the patch engine's "add" operation uses for objects.
func (o *Value) Set(key string, v *Value) error {
	if o == nil || o.kind != Object {
		return errors.Wrap(ErrNotContainer, "Set")
	}
	if o.reference {
		return errors.Wrap(ErrReferenceImmutable, "Set")
	}
	o.deleteAll(key, true)
	v.key = key
	v.constKey = false
	o.children = append(o.children, v)
	return nil
}

// SetFold is Set's ASCII-case-insensitive counterpart: it deletes any
// prior binding whose key folds equal to key before inserting v under
// the literal key given.
func (o *Value) SetFold(key string, v *Value) error {
	if o == nil || o.kind != Object {
		return errors.Wrap(ErrNotContainer, "SetFold")
	}
	if o.reference {
		return errors.Wrap(ErrReferenceImmutable, "SetFold")
	}
	o.deleteAll(key, false)
	v.key = key
	v.constKey = false
	o.children = append(o.children, v)
	return nil
}

func (o *Value) deleteAll(key string, caseSensitive bool) {
	if o.reference {
		return
	}
	out := o.children[:0]
	for _, c := range o.children {
		match := c.key == key
		if !caseSensitive {
			match = asciiEqualFold(c.key, key)
		}
		if !match {
			out = append(out, c)
		}
	}
	o.children = out
}

// Delete removes the (possibly several, per the duplicate-key data
// model) children of object o whose key exactly matches name. It
// reports whether any child was removed.
func (o *Value) Delete(name string) bool {
	if o == nil || o.kind != Object {
		return false
	}
	before := len(o.children)
	o.deleteAll(name, true)
	return len(o.children) != before
}

// DeleteFold is Delete's ASCII-case-insensitive counterpart.
func (o *Value) DeleteFold(name string) bool {
	if o == nil || o.kind != Object {
		return false
	}
	before := len(o.children)
	o.deleteAll(name, false)
	return len(o.children) != before
}

// AddNull, AddBool, AddNumber, AddString and AddRaw are convenience
// mutators over Set for the corresponding scalar kinds, mirroring the
// source library's stb_json_add*toobject family (see SPEC_FULL.md §10).

func (o *Value) AddNull(name string) error          { return o.Set(name, NewNull()) }
func (o *Value) AddBool(name string, b bool) error  { return o.Set(name, NewBool(b)) }
func (o *Value) AddNumber(name string, f float64) error {
	return o.Set(name, NewNumber(f))
}
func (o *Value) AddString(name, s string) error { return o.Set(name, NewString(s)) }
func (o *Value) AddRaw(name, raw string) error  { return o.Set(name, NewRaw(raw)) }

// Duplicate returns a deep (if recurse is true) or shallow copy of v.
// A shallow copy of an Array or Object shares the original's children
// slice rather than copying it, matching the source library's
// stb_json_duplicate(recurse=false) behavior. Duplicate never copies
// v's own key; callers that reinsert the copy under a key call SetKey
// themselves.
//
// Duplicate returns ErrCircularLimit instead of recursing past
// circularWalkLimit levels, guarding against a tree built by hand with
// Append that (unlike anything Parse can produce) contains a cycle.
func (v *Value) Duplicate(recurse bool) (*Value, error) {
	return v.duplicate(recurse, 0)
}

func (v *Value) duplicate(recurse bool, depth int) (*Value, error) {
	if v == nil {
		return nil, nil
	}
	if depth > circularWalkLimit {
		return nil, ErrCircularLimit
	}
	cp := &Value{kind: v.kind, str: v.str, num: v.num, numInt: v.numInt}
	if (v.kind == Array || v.kind == Object) && recurse {
		cp.children = make([]*Value, 0, len(v.children))
		for _, c := range v.children {
			cc, err := c.duplicate(true, depth+1)
			if err != nil {
				return nil, err
			}
			cc.key = c.key
			cc.constKey = c.constKey
			cp.children = append(cp.children, cc)
		}
	} else if v.kind == Array || v.kind == Object {
		cp.children = v.children
		cp.reference = true
	}
	return cp, nil
}

func asciiToLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// asciiEqualFold compares a and b ignoring ASCII case only, matching the
// source library's tolower-based comparator rather than Unicode case
// folding.
func asciiEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if asciiToLower(a[i]) != asciiToLower(b[i]) {
			return false
		}
	}
	return true
}
