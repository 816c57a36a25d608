package watch

import (
	"github.com/Viskhan-95/golden-chicken/internal/engine/keypath"
	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
)

// undoEntry is one field-level mutation recorded while a method call is in flight.
// Entries that carry a frame stand for a whole nested call and restore in place.
type undoEntry struct {
	target   any
	key      value.Key
	previous any
	existed  bool
	frame    *cloneFrame
}

// weakEntry is the single key a weak collection call can touch.
type weakEntry struct {
	key   any
	had   bool
	value any
}

type touch struct {
	container any
	key       value.Key
}

// cloneFrame tracks one in-flight method call on an observed collection.
//
// clone is the before-image reported as the previous value. It starts as a
// one-level copy of the receiver and is kept faithful copy-on-write: a nested
// write first copies every container on its way into the image, then puts the
// overwritten value back. restore is captured separately so a veto can put the
// receiver back without losing its identity.
type cloneFrame struct {
	target  any
	kind    value.Kind
	path    keypath.Path
	method  string
	clone   any
	restore *value.Snapshot
	weak    weakEntry
	diff    diffFunc
	dirty   bool
	record  bool
	log     []undoEntry
	copies  map[any]struct{}
	touched map[touch]struct{}
}

func newCloneFrame(target any, kind value.Kind, p keypath.Path, method string, handled bool, args []any, record bool) *cloneFrame {
	f := &cloneFrame{
		target:  target,
		kind:    kind,
		path:    p,
		method:  method,
		record:  record,
		copies:  make(map[any]struct{}),
		touched: make(map[touch]struct{}),
	}
	if handled {
		f.diff = changeCheck(kind, method)
	}
	switch c := target.(type) {
	case *value.WeakSet:
		f.weak.key = firstArg(args)
		f.weak.had = c.Has(f.weak.key)
		f.clone = f.weak.had
	case *value.WeakMap:
		f.weak.key = firstArg(args)
		f.weak.value, f.weak.had = c.Lookup(f.weak.key)
		f.clone = value.Undefined
		if f.weak.had {
			f.clone = f.weak.value
		}
	default:
		f.clone = value.Clone(target)
		f.restore = value.TakeSnapshot(target)
		f.copies[f.clone] = struct{}{}
	}
	return f
}

func firstArg(args []any) any {
	if len(args) == 0 {
		return value.Undefined
	}
	return args[0]
}

// contains reports whether a write under changePath belongs to this call.
func (f *cloneFrame) contains(changePath keypath.Path) bool {
	return changePath.IsSubPath(f.path)
}

func (f *cloneFrame) changed(live any) bool {
	return f.dirty || (f.diff != nil && f.diff(f, live))
}

// update absorbs a write that happened under changePath while the call runs.
func (f *cloneFrame) update(changePath keypath.Path, e undoEntry) {
	f.dirty = true
	if f.record {
		f.log = append(f.log, e)
	}
	if e.key.IsEmpty() || !value.IsContainer(f.clone) {
		return
	}
	cur := f.clone
	changePath.After(f.path).Walk(func(k value.Key) bool {
		next, found := value.Lookup(cur, k)
		if !found || !value.IsContainer(next) {
			cur = nil
			return false
		}
		if _, own := f.copies[next]; !own {
			cp := value.Clone(next)
			value.Store(cur, k, cp)
			f.copies[cp] = struct{}{}
			next = cp
		}
		cur = next
		return true
	})
	if cur == nil {
		return
	}
	t := touch{container: cur, key: e.key}
	if _, seen := f.touched[t]; seen {
		return
	}
	f.touched[t] = struct{}{}
	if e.existed {
		value.Store(cur, e.key, e.previous)
	} else {
		value.Remove(cur, e.key)
	}
}

// undo replays the recorded writes in reverse and puts the receiver back.
func (f *cloneFrame) undo() {
	for i := len(f.log) - 1; i >= 0; i-- {
		e := f.log[i]
		switch {
		case e.frame != nil:
			e.frame.undo()
		case e.existed:
			value.Store(e.target, e.key, e.previous)
		default:
			value.Remove(e.target, e.key)
		}
	}
	switch c := f.target.(type) {
	case *value.WeakSet:
		if f.weak.had {
			_ = c.Add(f.weak.key)
		} else {
			c.Delete(f.weak.key)
		}
	case *value.WeakMap:
		if f.weak.had {
			_ = c.Set(f.weak.key, f.weak.value)
		} else {
			c.Delete(f.weak.key)
		}
	default:
		f.restore.Restore(f.target)
	}
}
