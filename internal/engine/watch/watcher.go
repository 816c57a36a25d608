package watch

import (
	"go.trai.ch/zerr"

	"github.com/Viskhan-95/golden-chicken/internal/engine/keypath"
	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
)

// watcher is the dispatch core behind every handle created by one Observe call.
// It is single-goroutine and reentrant: nested method calls push frames on an
// explicit stack.
type watcher struct {
	root     any
	onChange ChangeFunc
	cfg      config
	cache    *cache
	frames   []*cloneFrame
}

func (w *watcher) cloning() bool {
	return len(w.frames) > 0
}

func (w *watcher) pop(f *cloneFrame) {
	if n := len(w.frames); n > 0 && w.frames[n-1] == f {
		w.frames[n-1] = nil
		w.frames = w.frames[:n-1]
	}
}

// frameFor returns the innermost in-flight call whose subtree contains changePath.
func (w *watcher) frameFor(changePath keypath.Path) *cloneFrame {
	for i := len(w.frames) - 1; i >= 0; i-- {
		if w.frames[i].contains(changePath) {
			return w.frames[i]
		}
	}
	return nil
}

func (w *watcher) detached(target any) bool {
	return w.cfg.ignoreDetached && w.cache.isDetached(target, w.root)
}

// prepare decides whether a value read from target under k is handed out
// wrapped. Cycles resolve to the shortest known route: a value already
// recorded at an ancestor of the computed path keeps its ancestor path.
func (w *watcher) prepare(v, target any, k value.Key, base *keypath.Path) any {
	if w.cache.unsubscribed || !value.IsContainer(v) {
		return v
	}
	if (!k.IsSymbol() && k.String() == "constructor") ||
		w.cfg.shallow ||
		w.cfg.ignored(k) ||
		w.cache.isGetInvariant(target, k) ||
		w.detached(target) {
		return v
	}
	var p keypath.Path
	if base != nil {
		p = *base
	} else {
		var ok bool
		if p, ok = w.cache.path(target); !ok {
			return v
		}
	}
	child := p.Concat(k)
	if existing, ok := w.cache.path(v); ok && child.IsStrictSubPath(existing) {
		return w.cache.handle(w, v, existing)
	}
	return w.cache.handle(w, v, child)
}

// approve consults the validation gate for a property write. The gate is not
// consulted inside a method call; the call is validated once as a whole.
func (w *watcher) approve(target any, k value.Key, v, prev any) bool {
	if w.cloning() || w.cfg.validate == nil || w.cfg.ignored(k) || w.detached(target) {
		return true
	}
	p, ok := w.cache.path(target)
	if !ok {
		return true
	}
	c := Change{Path: p.Concat(k), Name: k.String(), Value: v, Previous: prev}
	if w.cfg.validate(c) {
		return true
	}
	w.cfg.logger.Debug("mutation rejected", "change", c)
	return false
}

// record reports a committed property write, or folds it into the in-flight
// call that owns its path.
func (w *watcher) record(target any, k value.Key, v, prev any, existed bool) {
	if w.cfg.ignored(k) || w.detached(target) {
		return
	}
	p, ok := w.cache.path(target)
	if !ok {
		return
	}
	w.emit(p, undoEntry{target: target, key: k, previous: prev, existed: existed},
		Change{Path: p.Concat(k), Name: k.String(), Value: v, Previous: prev})
}

func (w *watcher) emit(base keypath.Path, e undoEntry, c Change) {
	if f := w.frameFor(base); f != nil {
		f.update(base, e)
		return
	}
	w.cfg.logger.Debug("change", "change", c)
	w.onChange(c)
}

func (w *watcher) get(h *Handle, k value.Key) any {
	if w.cache.unsubscribed {
		return value.GetWith(h.target, k, h.target)
	}
	return w.prepare(value.GetWith(h.target, k, h), h.target, k, nil)
}

func (w *watcher) set(h *Handle, k value.Key, v any) bool {
	target := h.target
	v = value.Normalize(Target(v))
	if w.cache.unsubscribed {
		return value.SetWith(target, k, v, target)
	}
	prev := value.GetWith(target, k, target)
	existed := value.HasKey(target, k)
	if existed && w.cfg.equals(prev, v) {
		return true
	}
	if !w.approve(target, k, v, prev) {
		return false
	}
	if !w.cache.setProperty(target, k, v) {
		return false
	}
	w.record(target, k, value.GetWith(target, k, target), prev, existed)
	return true
}

func (w *watcher) delete(h *Handle, k value.Key) bool {
	target := h.target
	if w.cache.unsubscribed {
		return value.DeleteKey(target, k)
	}
	if !value.HasKey(target, k) {
		return true
	}
	prev := value.GetWith(target, k, target)
	if !w.approve(target, k, value.Undefined, prev) {
		return false
	}
	if !w.cache.deleteProperty(target, k) {
		return false
	}
	w.record(target, k, value.Undefined, prev, true)
	return true
}

func (w *watcher) define(h *Handle, k value.Key, d value.Descriptor) bool {
	target := h.target
	if w.cache.unsubscribed {
		return w.cache.defineProperty(target, k, d)
	}
	if w.cache.isSameDescriptor(d, target, k) {
		return true
	}
	prev := value.GetWith(target, k, target)
	existed := value.HasKey(target, k)
	if !w.approve(target, k, d.Value, prev) {
		return false
	}
	if !w.cache.defineProperty(target, k, d) {
		return false
	}
	w.record(target, k, value.GetWith(target, k, target), prev, existed)
	return true
}

func (w *watcher) call(h *Handle, name string, args []any) (any, error) {
	target := h.target
	args = unwrapAll(args)
	method, err := value.Resolve(target, name)
	if err != nil {
		return nil, err
	}
	if w.cache.unsubscribed {
		return method(target, args)
	}
	p, ok := w.cache.path(target)
	if !ok || w.cfg.ignored(value.NewKey(name)) || w.detached(target) {
		return method(target, args)
	}
	handled := isHandledMethod(h.kind, name)
	if w.cfg.shallow && !handled {
		return method(target, args)
	}
	if detailable(h.kind) && w.cfg.detailed(name) {
		return method(h, args)
	}
	return w.intercept(h, p, name, method, handled, args)
}

// intercept runs a method call as one atomic, aggregate mutation.
func (w *watcher) intercept(h *Handle, p keypath.Path, name string, method value.Method, handled bool, args []any) (any, error) {
	target := h.target
	f := newCloneFrame(target, h.kind, p, name, handled, args, w.cfg.validate != nil)

	var (
		result  any
		err     error
		changed bool
	)
	func() {
		w.frames = append(w.frames, f)
		defer w.pop(f)
		var this any = h
		if handled {
			this = target
		}
		result, err = method(this, args)
		changed = err == nil && f.changed(target)
	}()
	if err != nil {
		f.undo()
		return nil, err
	}

	if handled && value.IsContainer(result) {
		rp := p
		if h.kind == value.KindMap && name == "get" {
			rp = p.Concat(value.MapKey(firstArg(args)))
		}
		result = w.cache.handle(w, result, rp)
	}

	if changed {
		c := Change{Path: p, Name: name, Value: target, Previous: f.clone, Apply: &ApplyData{Name: name, Args: args, Result: result}}
		if w.cloning() {
			w.emit(p.Initial(), undoEntry{key: p.Last(), previous: f.clone, existed: true, frame: f}, c)
		} else if w.cfg.validate != nil && !w.cfg.validate(c) {
			f.undo()
			w.cfg.logger.Debug("call rejected", "change", c)
			return nil, zerr.With(zerr.Wrap(ErrRejected, name), "path", p.String())
		} else {
			w.cfg.logger.Debug("change", "change", c)
			w.onChange(c)
		}
	}

	if it, ok := result.(*value.Iterator); ok && (h.kind == value.KindSet || h.kind == value.KindMap) {
		return w.wrapIterator(h, p, name, it), nil
	}
	return result, nil
}

// wrapIterator routes every value a collection iterator yields back through
// prepare, so iteration hands out observed values.
func (w *watcher) wrapIterator(h *Handle, p keypath.Path, name string, it *value.Iterator) *value.Iterator {
	prep := func(v, key any) any {
		return w.prepare(v, h.target, value.MapKey(key), &p)
	}
	if m, ok := h.target.(*value.Map); ok && name == "values" {
		// Values carry no key, so walk the entries to path each one.
		it.Close()
		return m.Iter().Map(func(v any) any {
			e := v.(value.Entry)
			return prep(e.Value, e.Key)
		})
	}
	return it.Map(func(v any) any {
		if e, isEntry := v.(value.Entry); isEntry {
			if h.kind == value.KindSet {
				pv := prep(e.Value, e.Value)
				return value.Entry{Key: pv, Value: pv}
			}
			return value.Entry{Key: e.Key, Value: prep(e.Value, e.Key)}
		}
		return prep(v, v)
	})
}

func (w *watcher) unsubscribe(h *Handle) any {
	if w.cache.unsubscribed || h.target != w.root {
		return h.target
	}
	if p, ok := w.cache.path(h.target); !ok || !p.IsRoot() {
		return h.target
	}
	w.cache.unsubscribe()
	w.cfg.logger.Debug("unsubscribed")
	return h.target
}

func unwrapAll(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = value.Normalize(Target(a))
	}
	return out
}
