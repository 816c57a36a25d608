package watch

import (
	"github.com/Viskhan-95/golden-chicken/internal/engine/keypath"
	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
)

var (
	_ value.Record    = (*Handle)(nil)
	_ value.Indexed   = (*Handle)(nil)
	_ value.Unwrapper = (*Handle)(nil)
)

// Handle is the observing wrapper around a raw target. Every read through a
// handle hands out handles for nested containers; every write through it is
// reported. There is at most one handle per target and watcher.
type Handle struct {
	w      *watcher
	target any
	kind   value.Kind
}

// Raw returns the wrapped target.
func (h *Handle) Raw() any { return h.target }

// Kind returns the container kind of the target.
func (h *Handle) Kind() value.Kind { return h.kind }

// Path returns the most recent route from the root to this handle's target.
func (h *Handle) Path() keypath.Path {
	p, _ := h.w.cache.path(h.target)
	return p
}

// Get reads a property. Nested containers come back as handles.
func (h *Handle) Get(key any) any {
	return h.w.get(h, value.KeyOf(key))
}

// At follows a chain of property reads.
func (h *Handle) At(keys ...any) any {
	var cur any = h
	for _, k := range keys {
		switch c := cur.(type) {
		case *Handle:
			cur = c.Get(k)
		default:
			cur = value.GetWith(c, value.KeyOf(k), c)
		}
	}
	return cur
}

// Set writes a property. It reports false when the write is vetoed or the
// property cannot be written.
func (h *Handle) Set(key, v any) bool {
	return h.w.set(h, value.KeyOf(key), v)
}

// Delete removes a property. Deleting a missing property succeeds without a report.
func (h *Handle) Delete(key any) bool {
	return h.w.delete(h, value.KeyOf(key))
}

// DefineProperty installs a descriptor; it is reported only when it differs from the current one.
func (h *Handle) DefineProperty(key any, d value.Descriptor) bool {
	return h.w.define(h, value.KeyOf(key), d)
}

// Has reports whether the target has the own property.
func (h *Handle) Has(key any) bool {
	return value.HasKey(h.target, value.KeyOf(key))
}

// Descriptor returns the own property descriptor.
func (h *Handle) Descriptor(key any) (value.Descriptor, bool) {
	return h.w.cache.descriptor(h.target, value.KeyOf(key))
}

// Keys returns the enumerable own keys.
func (h *Handle) Keys() []value.Key {
	return value.OwnKeys(h.target)
}

// Len returns the array length, the number of object keys, or the collection size.
func (h *Handle) Len() int {
	switch c := h.target.(type) {
	case *value.Array:
		return c.Len()
	case *value.Object:
		return len(c.EnumerableKeys())
	case *value.Set:
		return c.Size()
	case *value.Map:
		return c.Size()
	}
	return 0
}

// Index reads element i.
func (h *Handle) Index(i int) any { return h.Get(i) }

// SetIndex writes element i.
func (h *Handle) SetIndex(i int, v any) bool { return h.Set(i, v) }

// DeleteIndex removes element i.
func (h *Handle) DeleteIndex(i int) bool { return h.Delete(i) }

// SetLen writes the array length.
func (h *Handle) SetLen(n int) bool { return h.Set("length", float64(n)) }

// Values reads every element of an array handle.
func (h *Handle) Values() []any {
	out := make([]any, h.Len())
	for i := range out {
		out[i] = h.Index(i)
	}
	return out
}

// Call invokes a built-in method or a function-valued property with the
// handle as receiver. The call is reported as one change when it mutates the
// target; when the validation gate vetoes it the target is restored and
// ErrRejected is returned.
func (h *Handle) Call(method string, args ...any) (any, error) {
	return h.w.call(h, method, args)
}

// Unsubscribe tears observation down when called on the root handle and
// returns the raw target. On any other handle it only returns the target.
func (h *Handle) Unsubscribe() any {
	return h.w.unsubscribe(h)
}

func (h *Handle) String() string {
	return value.Display(h.target)
}
