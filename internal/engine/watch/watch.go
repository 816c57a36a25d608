// Package watch observes mutations of a value tree.
//
// Observe wraps a root container in a Handle. Reads through the handle return
// handles for nested containers, and every property write, delete, define or
// mutating method call made through any of them is reported once to the change
// callback with the logical path of the mutation. A validation gate can veto a
// mutation, in which case the tree is left exactly as it was.
package watch

import (
	"fmt"

	"go.trai.ch/zerr"

	"github.com/Viskhan-95/golden-chicken/internal/engine/keypath"
	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
)

// Observe starts observing v. v must be an object, array, date, set, map or
// weak collection (or a handle, whose target is observed afresh).
func Observe(v any, onChange ChangeFunc, opts ...Option) (*Handle, error) {
	target := Target(v)
	if !value.IsContainer(target) {
		return nil, zerr.With(zerr.Wrap(ErrInvalidTarget, "observe"), "type", fmt.Sprintf("%T", target))
	}
	if onChange == nil {
		onChange = func(Change) {}
	}
	w := &watcher{
		root:     target,
		onChange: onChange,
		cfg:      newConfig(opts),
		cache:    newCache(),
	}
	return w.cache.handle(w, target, keypath.Root(w.cfg.segmented)), nil
}

// MustObserve is like Observe but panics when v cannot be observed.
func MustObserve(v any, onChange ChangeFunc, opts ...Option) *Handle {
	h, err := Observe(v, onChange, opts...)
	if err != nil {
		panic(err)
	}
	return h
}

// Target unwraps a handle to its raw target. Other values are returned unchanged.
func Target(v any) any {
	if h, ok := v.(*Handle); ok {
		return h.target
	}
	return v
}

// Unsubscribe tears down the observation rooted at v when v is a live root
// handle, and returns the raw target. Other values are returned unchanged.
func Unsubscribe(v any) any {
	if h, ok := v.(*Handle); ok {
		return h.Unsubscribe()
	}
	return v
}
