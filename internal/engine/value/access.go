package value

import (
	"slices"
	"sort"
	"time"
)

// Unwrapper is implemented by wrappers that can hand back the value they wrap.
type Unwrapper interface {
	Raw() any
}

// Raw unwraps v if it is a wrapper, otherwise returns it unchanged.
func Raw(v any) any {
	if u, ok := v.(Unwrapper); ok {
		return u.Raw()
	}
	return v
}

// GetWith reads property k of container c. Getters run with the given receiver.
func GetWith(c any, k Key, receiver any) any {
	switch x := c.(type) {
	case *Object:
		return x.GetWith(k, receiver)
	case *Array:
		return x.GetWith(k, receiver)
	case *Set:
		return x.Get(k)
	case *Map:
		if !k.IsSymbol() && k.String() == "size" {
			return float64(x.Size())
		}
	}
	return Undefined
}

// SetWith assigns property k of container c. Setters run with the given receiver.
func SetWith(c any, k Key, v, receiver any) bool {
	switch x := c.(type) {
	case *Object:
		return x.SetWith(k, Normalize(v), receiver)
	case *Array:
		return x.SetWith(k, Normalize(v), receiver)
	}
	return false
}

// HasKey reports whether c has the own property k.
func HasKey(c any, k Key) bool {
	switch x := c.(type) {
	case *Object:
		return x.Has(k)
	case *Array:
		return x.Has(k)
	}
	return false
}

// DeleteKey removes property k from c.
func DeleteKey(c any, k Key) bool {
	switch x := c.(type) {
	case *Object:
		return x.remove(k)
	case *Array:
		return x.Delete(k)
	}
	return true
}

// DescriptorOf returns the own property descriptor of k on c.
func DescriptorOf(c any, k Key) (Descriptor, bool) {
	switch x := c.(type) {
	case *Object:
		return x.Descriptor(k)
	case *Array:
		return x.Descriptor(k)
	}
	return Descriptor{}, false
}

// DefineOn installs a descriptor for k on c.
func DefineOn(c any, k Key, d Descriptor) bool {
	switch x := c.(type) {
	case *Object:
		return x.Define(k, d)
	case *Array:
		return x.Define(k, d)
	}
	return false
}

// OwnKeys lists the enumerable own keys of c.
func OwnKeys(c any) []Key {
	switch x := c.(type) {
	case *Object:
		return x.EnumerableKeys()
	case *Array:
		return x.Keys()
	}
	return nil
}

// Lookup resolves one path segment against a container: own properties for
// objects and arrays, entries for maps.
func Lookup(c any, k Key) (any, bool) {
	switch x := c.(type) {
	case *Object:
		return x.Lookup(k)
	case *Array:
		return x.Lookup(k)
	case *Map:
		return x.Lookup(k.Value())
	case *WeakMap:
		return x.Lookup(k.Value())
	}
	return nil, false
}

// Store writes one path segment regardless of writability. It is used to
// rebuild before-images and to roll back writes.
func Store(c any, k Key, v any) bool {
	switch x := c.(type) {
	case *Object:
		if x.SetWith(k, v, x) {
			return true
		}
		return x.Define(k, DataDescriptor(v))
	case *Array:
		return x.SetWith(k, v, x)
	case *Map:
		x.Set(k.Value(), v)
		return true
	case *WeakMap:
		return x.Set(k.Value(), v) == nil
	}
	return false
}

// Remove deletes one path segment.
func Remove(c any, k Key) bool {
	switch x := c.(type) {
	case *Object:
		return x.remove(k)
	case *Array:
		return x.Delete(k)
	case *Map:
		return x.Delete(k.Value())
	case *WeakMap:
		return x.Delete(k.Value())
	}
	return false
}

// Clone returns a one-level plain copy of a container: enumerable own
// properties become data properties, elements and entries are shared.
// Non-containers are returned unchanged.
func Clone(v any) any {
	switch x := v.(type) {
	case *Object:
		o := NewObject()
		for _, k := range x.keys {
			if x.props[k].Enumerable {
				o.SetWith(k, x.GetWith(k, x), o)
			}
		}
		return o
	case *Array:
		return &Array{elems: slices.Clone(x.elems)}
	case *Set:
		c := &Set{}
		c.tab.cloneFrom(&x.tab)
		return c
	case *Map:
		c := &Map{}
		c.tab.cloneFrom(&x.tab)
		return c
	case *Date:
		return &Date{ms: x.ms}
	}
	return v
}

// Snapshot is the own state of a container, restorable in place so the
// container keeps its identity.
type Snapshot struct {
	kind   Kind
	keys   []Key
	props  []Descriptor
	sealed bool
	elems  []any
	vals   []any
	ms     float64
}

// TakeSnapshot captures the own state of v. Weak collections and non-containers yield nil.
func TakeSnapshot(v any) *Snapshot {
	switch x := v.(type) {
	case *Object:
		s := &Snapshot{kind: KindObject, keys: slices.Clone(x.keys), sealed: x.sealed}
		s.props = make([]Descriptor, len(x.keys))
		for i, k := range x.keys {
			s.props[i] = *x.props[k]
		}
		return s
	case *Array:
		return &Snapshot{kind: KindArray, elems: slices.Clone(x.elems)}
	case *Set:
		items := x.Values()
		return &Snapshot{kind: KindSet, elems: items, vals: items}
	case *Map:
		return &Snapshot{kind: KindMap, elems: x.Keys(), vals: x.Values()}
	case *Date:
		return &Snapshot{kind: KindDate, ms: x.ms}
	}
	return nil
}

// Restore puts the captured state back into v.
func (s *Snapshot) Restore(v any) bool {
	if s == nil || KindOf(v) != s.kind {
		return false
	}
	switch x := v.(type) {
	case *Object:
		x.keys = slices.Clone(s.keys)
		x.props = make(map[Key]*Descriptor, len(s.keys))
		for i, k := range s.keys {
			d := s.props[i]
			x.props[k] = &d
		}
		x.sealed = s.sealed
	case *Array:
		x.elems = slices.Clone(s.elems)
	case *Set:
		x.tab.clear()
		for _, item := range s.elems {
			x.tab.put(item, item)
		}
	case *Map:
		x.tab.clear()
		for i, k := range s.elems {
			x.tab.put(k, s.vals[i])
		}
	case *Date:
		x.ms = s.ms
	}
	return true
}

// From converts plain Go data into the value model: map[string]any becomes an
// *Object with sorted keys, slices become *Array, numbers become float64.
func From(v any) any {
	switch x := v.(type) {
	case map[string]any:
		o := NewObject()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			o.Set(k, From(x[k]))
		}
		return o
	case []any:
		a := &Array{elems: make([]any, len(x))}
		for i, e := range x {
			a.elems[i] = From(e)
		}
		return a
	case []string:
		a := &Array{elems: make([]any, len(x))}
		for i, e := range x {
			a.elems[i] = e
		}
		return a
	case time.Time:
		return NewDate(x)
	}
	return Normalize(v)
}

// ToGo converts a value back into plain Go data. Objects become
// map[string]any, arrays and sets become []any, maps become []Entry.
func ToGo(v any) any {
	switch x := Raw(v).(type) {
	case *Object:
		out := make(map[string]any, len(x.keys))
		for _, k := range x.EnumerableKeys() {
			out[k.String()] = ToGo(x.GetWith(k, x))
		}
		return out
	case *Array:
		out := make([]any, x.Len())
		for i := range out {
			out[i] = ToGo(x.Index(i))
		}
		return out
	case *Set:
		out := make([]any, 0, x.Size())
		for item := range x.tab.entries() {
			out = append(out, ToGo(item))
		}
		return out
	case *Map:
		out := make([]Entry, 0, x.Size())
		for k, v := range x.tab.entries() {
			out = append(out, Entry{Key: ToGo(k), Value: ToGo(v)})
		}
		return out
	case *Date:
		return x.GoTime()
	}
	return v
}
