package value

import (
	"runtime"
	"sync"
	"weak"
)

// weakRef returns a comparable weak reference identifying v. Only reference values qualify.
func weakRef(v any) (any, bool) {
	switch p := v.(type) {
	case *Object:
		return weak.Make(p), p != nil
	case *Array:
		return weak.Make(p), p != nil
	case *Set:
		return weak.Make(p), p != nil
	case *Map:
		return weak.Make(p), p != nil
	case *Date:
		return weak.Make(p), p != nil
	case *Func:
		return weak.Make(p), p != nil
	case *WeakSet:
		return weak.Make(p), p != nil
	case *WeakMap:
		return weak.Make(p), p != nil
	}
	return nil, false
}

// onCollect runs fn once v becomes unreachable. fn must not reference v.
func onCollect(v any, fn func()) {
	run := func(f func()) { f() }
	switch p := v.(type) {
	case *Object:
		runtime.AddCleanup(p, run, fn)
	case *Array:
		runtime.AddCleanup(p, run, fn)
	case *Set:
		runtime.AddCleanup(p, run, fn)
	case *Map:
		runtime.AddCleanup(p, run, fn)
	case *Date:
		runtime.AddCleanup(p, run, fn)
	case *Func:
		runtime.AddCleanup(p, run, fn)
	case *WeakSet:
		runtime.AddCleanup(p, run, fn)
	case *WeakMap:
		runtime.AddCleanup(p, run, fn)
	}
}

// WeakSet holds references without keeping them alive. It cannot be enumerated.
type WeakSet struct {
	mu   sync.Mutex
	refs map[any]struct{}
}

// NewWeakSet returns an empty weak set.
func NewWeakSet() *WeakSet {
	return &WeakSet{refs: make(map[any]struct{})}
}

// Add inserts v. Non-reference values are rejected with ErrInvalidWeakKey.
func (s *WeakSet) Add(v any) error {
	ref, ok := weakRef(v)
	if !ok {
		return invalidWeakKey(v)
	}
	s.mu.Lock()
	_, exists := s.refs[ref]
	s.refs[ref] = struct{}{}
	s.mu.Unlock()
	if !exists {
		onCollect(v, func() { s.forget(ref) })
	}
	return nil
}

// Has reports membership.
func (s *WeakSet) Has(v any) bool {
	ref, ok := weakRef(v)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, found := s.refs[ref]
	return found
}

// Delete removes v, reporting whether it was present.
func (s *WeakSet) Delete(v any) bool {
	ref, ok := weakRef(v)
	if !ok {
		return false
	}
	return s.forget(ref)
}

func (s *WeakSet) forget(ref any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, found := s.refs[ref]
	delete(s.refs, ref)
	return found
}

func (s *WeakSet) String() string { return "[object WeakSet]" }

// WeakMap associates values with references without keeping the references alive.
type WeakMap struct {
	mu   sync.Mutex
	refs map[any]any
}

// NewWeakMap returns an empty weak map.
func NewWeakMap() *WeakMap {
	return &WeakMap{refs: make(map[any]any)}
}

// Set stores v under k. Non-reference keys are rejected with ErrInvalidWeakKey.
func (m *WeakMap) Set(k, v any) error {
	ref, ok := weakRef(k)
	if !ok {
		return invalidWeakKey(k)
	}
	m.mu.Lock()
	_, exists := m.refs[ref]
	m.refs[ref] = Normalize(v)
	m.mu.Unlock()
	if !exists {
		onCollect(k, func() { m.forget(ref) })
	}
	return nil
}

// Get returns the value under k, or Undefined.
func (m *WeakMap) Get(k any) any {
	v, ok := m.Lookup(k)
	if !ok {
		return Undefined
	}
	return v
}

// Lookup returns the value under k and whether it exists.
func (m *WeakMap) Lookup(k any) (any, bool) {
	ref, ok := weakRef(k)
	if !ok {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, found := m.refs[ref]
	return v, found
}

// Has reports whether k is present.
func (m *WeakMap) Has(k any) bool {
	_, ok := m.Lookup(k)
	return ok
}

// Delete removes k, reporting whether it was present.
func (m *WeakMap) Delete(k any) bool {
	ref, ok := weakRef(k)
	if !ok {
		return false
	}
	return m.forget(ref)
}

func (m *WeakMap) forget(ref any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, found := m.refs[ref]
	delete(m.refs, ref)
	return found
}

func (m *WeakMap) String() string { return "[object WeakMap]" }
