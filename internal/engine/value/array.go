package value

import (
	"math"
	"strconv"
)

// Indexed is the element surface array methods run against. Both *Array and an
// observation handle over an array implement it, so a method can run on raw
// storage or route every element write through the handle.
type Indexed interface {
	Len() int
	Index(i int) any
	SetIndex(i int, v any) bool
	DeleteIndex(i int) bool
	SetLen(n int) bool
}

type hole struct{}

var holeValue any = hole{}

// Array is a dense list of elements with holes and a writable length.
type Array struct {
	elems []any
}

// ArrayOf builds an array holding items.
func ArrayOf(items ...any) *Array {
	a := &Array{elems: make([]any, len(items))}
	for i, v := range items {
		a.elems[i] = Normalize(v)
	}
	return a
}

// Len returns the array length.
func (a *Array) Len() int {
	return len(a.elems)
}

// Index returns element i, or Undefined for holes and out-of-range indices.
func (a *Array) Index(i int) any {
	if i < 0 || i >= len(a.elems) {
		return Undefined
	}
	if _, ok := a.elems[i].(hole); ok {
		return Undefined
	}
	return a.elems[i]
}

// HasIndex reports whether index i holds an element.
func (a *Array) HasIndex(i int) bool {
	if i < 0 || i >= len(a.elems) {
		return false
	}
	_, isHole := a.elems[i].(hole)
	return !isHole
}

// SetIndex stores v at i, growing the array with holes when needed.
func (a *Array) SetIndex(i int, v any) bool {
	if i < 0 {
		return false
	}
	if i >= len(a.elems) {
		a.grow(i + 1)
	}
	a.elems[i] = Normalize(v)
	return true
}

// DeleteIndex turns element i into a hole without changing the length.
func (a *Array) DeleteIndex(i int) bool {
	if i >= 0 && i < len(a.elems) {
		a.elems[i] = holeValue
	}
	return true
}

// SetLen truncates the array or extends it with holes.
func (a *Array) SetLen(n int) bool {
	if n < 0 {
		return false
	}
	if n <= len(a.elems) {
		clear(a.elems[n:])
		a.elems = a.elems[:n]
		return true
	}
	a.grow(n)
	return true
}

func (a *Array) grow(n int) {
	for len(a.elems) < n {
		a.elems = append(a.elems, holeValue)
	}
}

// Values returns a copy of the elements, holes read as Undefined.
func (a *Array) Values() []any {
	out := make([]any, len(a.elems))
	for i := range out {
		out[i] = a.Index(i)
	}
	return out
}

// Get reads an element or the length.
func (a *Array) Get(key any) any {
	return a.GetWith(KeyOf(key), a)
}

// GetWith reads an element or the length. Arrays carry no accessors, so the receiver is unused.
func (a *Array) GetWith(k Key, _ any) any {
	v, ok := a.Lookup(k)
	if !ok {
		return Undefined
	}
	return v
}

// Lookup reads an own element or the length.
func (a *Array) Lookup(k Key) (any, bool) {
	if k.IsLength() {
		return float64(len(a.elems)), true
	}
	if i, ok := k.Index(); ok && a.HasIndex(i) {
		return a.elems[i], true
	}
	return nil, false
}

// Set writes an element or the length. Non-index keys are rejected.
func (a *Array) Set(key, v any) bool {
	return a.SetWith(KeyOf(key), Normalize(v), a)
}

// SetWith writes an element or the length.
func (a *Array) SetWith(k Key, v, _ any) bool {
	if k.IsLength() {
		n := ToNumber(v)
		if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
			return false
		}
		return a.SetLen(int(n))
	}
	if i, ok := k.Index(); ok {
		return a.SetIndex(i, v)
	}
	return false
}

// Delete removes an element, leaving a hole. The length cannot be deleted.
func (a *Array) Delete(key any) bool {
	k := KeyOf(key)
	if k.IsLength() {
		return false
	}
	if i, ok := k.Index(); ok {
		return a.DeleteIndex(i)
	}
	return true
}

// Has reports whether the key names the length or a present element.
func (a *Array) Has(key any) bool {
	_, ok := a.Lookup(KeyOf(key))
	return ok
}

// Descriptor returns the descriptor of an element or of the length.
func (a *Array) Descriptor(key any) (Descriptor, bool) {
	k := KeyOf(key)
	v, ok := a.Lookup(k)
	if !ok {
		return Descriptor{}, false
	}
	if k.IsLength() {
		return Descriptor{Value: v, Writable: true}, true
	}
	return DataDescriptor(v), true
}

// Define accepts data descriptors for elements and the length only.
func (a *Array) Define(key any, d Descriptor) bool {
	if d.IsAccessor() {
		return false
	}
	return a.SetWith(KeyOf(key), Normalize(d.Value), a)
}

// Keys returns the indices of present elements.
func (a *Array) Keys() []Key {
	out := make([]Key, 0, len(a.elems))
	for i := range a.elems {
		if a.HasIndex(i) {
			out = append(out, NewKey(strconv.Itoa(i)))
		}
	}
	return out
}

func (a *Array) String() string { return Display(a) }
