package value

import "slices"

// Descriptor describes an own property. A descriptor with a Get or Set function is an accessor;
// otherwise it is a data property holding Value.
type Descriptor struct {
	Value        any
	Get          *Func
	Set          *Func
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// IsAccessor reports whether the descriptor defines a getter or a setter.
func (d Descriptor) IsAccessor() bool {
	return d.Get != nil || d.Set != nil
}

// DataDescriptor returns a writable, enumerable, configurable data descriptor.
func DataDescriptor(v any) Descriptor {
	return Descriptor{Value: v, Writable: true, Enumerable: true, Configurable: true}
}

// Record is the property surface shared by raw containers and observation handles.
type Record interface {
	Get(key any) any
	Set(key, v any) bool
	Delete(key any) bool
	Has(key any) bool
	Descriptor(key any) (Descriptor, bool)
	Keys() []Key
}

// Object is an ordered collection of own properties.
type Object struct {
	keys   []Key
	props  map[Key]*Descriptor
	sealed bool
}

// NewObject returns an empty extensible object.
func NewObject() *Object {
	return &Object{props: make(map[Key]*Descriptor)}
}

// ObjectOf builds an object from alternating key, value arguments.
func ObjectOf(kv ...any) *Object {
	o := NewObject()
	for i := 0; i+1 < len(kv); i += 2 {
		o.Set(kv[i], kv[i+1])
	}
	return o
}

// Get returns the value of an own property, invoking a getter with the object as receiver.
func (o *Object) Get(key any) any {
	return o.GetWith(KeyOf(key), o)
}

// GetWith returns the property value, invoking a getter with the given receiver.
func (o *Object) GetWith(k Key, receiver any) any {
	d := o.props[k.Prop()]
	if d == nil {
		return Undefined
	}
	if d.IsAccessor() {
		if d.Get == nil {
			return Undefined
		}
		return d.Get.Call(receiver)
	}
	return d.Value
}

// Lookup returns an own property value and whether the property exists.
func (o *Object) Lookup(k Key) (any, bool) {
	d := o.props[k.Prop()]
	if d == nil {
		return nil, false
	}
	if d.IsAccessor() {
		return o.GetWith(k, o), true
	}
	return d.Value, true
}

// Set assigns a property. It reports false when the property is read-only,
// is an accessor without a setter, or the object is not extensible.
func (o *Object) Set(key, v any) bool {
	return o.SetWith(KeyOf(key), Normalize(v), o)
}

// SetWith assigns a property, invoking a setter with the given receiver.
func (o *Object) SetWith(k Key, v, receiver any) bool {
	k = k.Prop()
	if d := o.props[k]; d != nil {
		if d.IsAccessor() {
			if d.Set == nil {
				return false
			}
			d.Set.Call(receiver, v)
			return true
		}
		if !d.Writable {
			return false
		}
		d.Value = v
		return true
	}
	if o.sealed {
		return false
	}
	d := DataDescriptor(v)
	o.keys = append(o.keys, k)
	o.props[k] = &d
	return true
}

// Delete removes an own property. Deleting a missing property succeeds;
// deleting a non-configurable one fails.
func (o *Object) Delete(key any) bool {
	return o.remove(KeyOf(key))
}

func (o *Object) remove(k Key) bool {
	k = k.Prop()
	d := o.props[k]
	if d == nil {
		return true
	}
	if !d.Configurable {
		return false
	}
	delete(o.props, k)
	if i := slices.Index(o.keys, k); i >= 0 {
		o.keys = slices.Delete(o.keys, i, i+1)
	}
	return true
}

// Has reports whether the object has the own property.
func (o *Object) Has(key any) bool {
	_, ok := o.props[KeyOf(key).Prop()]
	return ok
}

// Descriptor returns a copy of the own property descriptor.
func (o *Object) Descriptor(key any) (Descriptor, bool) {
	d := o.props[KeyOf(key).Prop()]
	if d == nil {
		return Descriptor{}, false
	}
	return *d, true
}

// Define installs a property descriptor. Redefining a non-configurable property
// is only allowed when nothing but the value of a writable data property changes.
func (o *Object) Define(key any, d Descriptor) bool {
	k := KeyOf(key).Prop()
	d.Value = Normalize(d.Value)
	if d.IsAccessor() {
		d.Writable = false
		d.Value = nil
	}
	cur := o.props[k]
	if cur == nil {
		if o.sealed {
			return false
		}
		o.keys = append(o.keys, k)
		o.props[k] = &d
		return true
	}
	if !cur.Configurable {
		if d.Configurable || d.Enumerable != cur.Enumerable || d.IsAccessor() != cur.IsAccessor() {
			return false
		}
		if cur.IsAccessor() {
			if d.Get != cur.Get || d.Set != cur.Set {
				return false
			}
		} else if !cur.Writable && (d.Writable || !SameValue(d.Value, cur.Value)) {
			return false
		}
	}
	*cur = d
	return true
}

// Keys returns the own property keys in insertion order.
func (o *Object) Keys() []Key {
	return slices.Clone(o.keys)
}

// EnumerableKeys returns the own enumerable string keys in insertion order.
func (o *Object) EnumerableKeys() []Key {
	out := make([]Key, 0, len(o.keys))
	for _, k := range o.keys {
		if d := o.props[k]; d.Enumerable && !k.IsSymbol() {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of own properties.
func (o *Object) Len() int {
	return len(o.keys)
}

// Freeze makes every property read-only and non-configurable and the object non-extensible.
func (o *Object) Freeze() *Object {
	for _, d := range o.props {
		d.Configurable = false
		if !d.IsAccessor() {
			d.Writable = false
		}
	}
	o.sealed = true
	return o
}

// IsFrozen reports whether Freeze has been applied.
func (o *Object) IsFrozen() bool {
	return o.sealed
}

func (o *Object) String() string { return "[object Object]" }
