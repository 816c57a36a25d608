package watch

import (
	"github.com/Viskhan-95/golden-chicken/internal/engine/keypath"
	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
)

// cache memoizes handles, paths and property descriptors per raw target.
// It belongs to exactly one watcher. After unsubscribe every operation is a
// direct pass-through to the target.
type cache struct {
	handles      map[any]*Handle
	paths        map[any]keypath.Path
	descriptors  map[any]map[value.Key]value.Descriptor
	unsubscribed bool
}

func newCache() *cache {
	return &cache{
		handles:     make(map[any]*Handle),
		paths:       make(map[any]keypath.Path),
		descriptors: make(map[any]map[value.Key]value.Descriptor),
	}
}

// handle returns the handle for target, creating it on first use, and records
// p as the most recent route to target.
func (c *cache) handle(w *watcher, target any, p keypath.Path) *Handle {
	c.paths[target] = p
	h, ok := c.handles[target]
	if !ok {
		h = &Handle{w: w, target: target, kind: value.KindOf(target)}
		c.handles[target] = h
	}
	return h
}

func (c *cache) path(target any) (keypath.Path, bool) {
	if c.unsubscribed {
		return keypath.Path{}, false
	}
	p, ok := c.paths[target]
	return p, ok
}

// isDetached reports whether the recorded route to target no longer leads to
// target from root. Targets without a recorded route are not detached.
func (c *cache) isDetached(target, root any) bool {
	if c.unsubscribed {
		return false
	}
	p, ok := c.paths[target]
	if !ok {
		return false
	}
	got, found := p.Resolve(root)
	return !found || got != target
}

func (c *cache) descriptor(target any, k value.Key) (value.Descriptor, bool) {
	if c.unsubscribed {
		return value.DescriptorOf(target, k)
	}
	k = k.Prop()
	if d, ok := c.descriptors[target][k]; ok {
		return d, true
	}
	d, ok := value.DescriptorOf(target, k)
	if !ok {
		return d, false
	}
	if c.descriptors[target] == nil {
		c.descriptors[target] = make(map[value.Key]value.Descriptor)
	}
	c.descriptors[target][k] = d
	return d, true
}

// isGetInvariant reports whether the property can never change, in which case
// reads return it unwrapped.
func (c *cache) isGetInvariant(target any, k value.Key) bool {
	d, ok := c.descriptor(target, k)
	return ok && !d.Configurable && (d.IsAccessor() || !d.Writable)
}

func (c *cache) isSameDescriptor(a value.Descriptor, target any, k value.Key) bool {
	b, ok := c.descriptor(target, k)
	return ok &&
		a.Enumerable == b.Enumerable &&
		a.Configurable == b.Configurable &&
		a.Writable == b.Writable &&
		a.Get == b.Get &&
		a.Set == b.Set &&
		value.SameValue(value.Normalize(a.Value), b.Value)
}

func (c *cache) setProperty(target any, k value.Key, v any) bool {
	if !c.unsubscribed {
		delete(c.descriptors, target)
	}
	return value.SetWith(target, k, v, target)
}

func (c *cache) deleteProperty(target any, k value.Key) bool {
	if !c.unsubscribed {
		delete(c.descriptors, target)
	}
	return value.DeleteKey(target, k)
}

func (c *cache) defineProperty(target any, k value.Key, d value.Descriptor) bool {
	if c.unsubscribed {
		return value.DefineOn(target, k, d)
	}
	delete(c.descriptors, target)
	return value.DefineOn(target, k, d)
}

func (c *cache) unsubscribe() {
	c.handles = make(map[any]*Handle)
	c.paths = make(map[any]keypath.Path)
	c.descriptors = make(map[any]map[value.Key]value.Descriptor)
	c.unsubscribed = true
}
