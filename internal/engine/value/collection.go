package value

import (
	"iter"
	"math"
	"runtime"
	"slices"
	"sync/atomic"
)

// Entry is one key/value pair yielded by map iteration.
type Entry struct {
	Key   any
	Value any
}

// Iterator yields values one at a time.
type Iterator struct {
	next func() (any, bool)
	stop func()
}

// NewIterator returns an iterator driven by next.
func NewIterator(next func() (any, bool)) *Iterator {
	return &Iterator{next: next}
}

// Next returns the next value and whether there was one.
func (it *Iterator) Next() (any, bool) {
	return it.next()
}

// Map returns an iterator yielding fn of every value it yields. Closing the
// result closes it.
func (it *Iterator) Map(fn func(any) any) *Iterator {
	return &Iterator{
		next: func() (any, bool) {
			v, ok := it.next()
			if !ok {
				return nil, false
			}
			return fn(v), true
		},
		stop: it.Close,
	}
}

// Close ends the iteration early. Later calls to Next report no value.
func (it *Iterator) Close() {
	if it.stop != nil {
		it.stop()
	}
}

// All adapts the iterator to a range-over-func sequence.
func (it *Iterator) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for {
			v, ok := it.next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Collect drains the iterator.
func (it *Iterator) Collect() []any {
	return slices.Collect(it.All())
}

type nanKey struct{}

// zeroKey normalizes a key for SameValueZero lookup in a Go map.
func zeroKey(v any) any {
	v = Normalize(v)
	if f, ok := v.(float64); ok {
		if math.IsNaN(f) {
			return nanKey{}
		}
		if f == 0 {
			return float64(0)
		}
	}
	return v
}

type slot struct {
	key, val any
	deleted  bool
}

// table is the insertion-ordered storage behind Set and Map. Deleted entries
// leave a tombstone so open iterators keep their position; tombstones are
// compacted away only while no iterator is open.
type table struct {
	slots []slot
	index map[any]int
	live  int
	open  atomic.Int32
}

// iterHold marks one open iterator. It is released once, on exhaustion, on
// Close or when the iterator is garbage collected.
type iterHold struct {
	open *atomic.Int32
	done atomic.Bool
}

func (h *iterHold) release() {
	if h.done.CompareAndSwap(false, true) {
		h.open.Add(-1)
	}
}

func (t *table) init() {
	t.index = make(map[any]int)
}

func (t *table) lookup(k any) (*slot, bool) {
	i, ok := t.index[zeroKey(k)]
	if !ok {
		return nil, false
	}
	return &t.slots[i], true
}

// put stores val under key and reports whether key was new. An existing
// entry keeps its position.
func (t *table) put(key, val any) bool {
	zk := zeroKey(key)
	if i, ok := t.index[zk]; ok {
		t.slots[i].val = val
		return false
	}
	t.compact()
	t.index[zk] = len(t.slots)
	t.slots = append(t.slots, slot{key: key, val: val})
	t.live++
	return true
}

func (t *table) remove(key any) bool {
	zk := zeroKey(key)
	i, ok := t.index[zk]
	if !ok {
		return false
	}
	delete(t.index, zk)
	t.slots[i] = slot{deleted: true}
	t.live--
	t.compact()
	return true
}

func (t *table) clear() {
	clear(t.index)
	t.live = 0
	if t.open.Load() == 0 {
		t.slots = nil
		return
	}
	for i := range t.slots {
		t.slots[i] = slot{deleted: true}
	}
}

// compact drops tombstones once they outnumber live entries.
func (t *table) compact() {
	dead := len(t.slots) - t.live
	if dead < 8 || dead <= t.live || t.open.Load() != 0 {
		return
	}
	kept := t.slots[:0]
	for _, s := range t.slots {
		if s.deleted {
			continue
		}
		t.index[zeroKey(s.key)] = len(kept)
		kept = append(kept, s)
	}
	clear(t.slots[len(kept):])
	t.slots = kept
}

// entries yields the live slots in insertion order.
func (t *table) entries() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, s := range t.slots {
			if !s.deleted && !yield(s.key, s.val) {
				return
			}
		}
	}
}

// iter returns a live iterator projecting every slot it reaches. Entries
// added before it finishes are visited; deleted ones are skipped.
func (t *table) iter(project func(*slot) any) *Iterator {
	hold := &iterHold{open: &t.open}
	t.open.Add(1)
	pos := 0
	it := &Iterator{
		next: func() (any, bool) {
			if hold.done.Load() {
				return nil, false
			}
			for pos < len(t.slots) {
				s := &t.slots[pos]
				pos++
				if !s.deleted {
					return project(s), true
				}
			}
			hold.release()
			return nil, false
		},
		stop: hold.release,
	}
	runtime.AddCleanup(it, (*iterHold).release, hold)
	return it
}

func (t *table) cloneFrom(src *table) {
	t.init()
	for k, v := range src.entries() {
		t.put(k, v)
	}
}

func slotKey(s *slot) any   { return s.key }
func slotValue(s *slot) any { return s.val }
func slotEntry(s *slot) any { return Entry{Key: s.key, Value: s.val} }

// Set is an insertion-ordered collection of unique values.
type Set struct {
	tab table
}

// NewSet returns a set holding items.
func NewSet(items ...any) *Set {
	s := &Set{}
	s.tab.init()
	for _, v := range items {
		s.Add(v)
	}
	return s
}

// Add inserts v if absent.
func (s *Set) Add(v any) *Set {
	v = Normalize(v)
	s.tab.put(v, v)
	return s
}

// Has reports membership.
func (s *Set) Has(v any) bool {
	_, ok := s.tab.lookup(v)
	return ok
}

// Delete removes v, reporting whether it was present.
func (s *Set) Delete(v any) bool {
	return s.tab.remove(v)
}

// Clear removes every value.
func (s *Set) Clear() {
	s.tab.clear()
}

// Size returns the number of values.
func (s *Set) Size() int {
	return s.tab.live
}

// Values returns the values in insertion order.
func (s *Set) Values() []any {
	out := make([]any, 0, s.tab.live)
	for k := range s.tab.entries() {
		out = append(out, k)
	}
	return out
}

// Iter returns a live iterator; values added during iteration are visited
// and values deleted before they are reached are not.
func (s *Set) Iter() *Iterator {
	return s.tab.iter(slotKey)
}

// Get exposes the size pseudo-property.
func (s *Set) Get(key any) any {
	if KeyOf(key).String() == "size" {
		return float64(s.tab.live)
	}
	return Undefined
}

func (s *Set) String() string { return "[object Set]" }

// Map is an insertion-ordered key/value collection with SameValueZero keys.
type Map struct {
	tab table
}

// NewMap returns an empty map.
func NewMap() *Map {
	m := &Map{}
	m.tab.init()
	return m
}

// MapOf builds a map from alternating key, value arguments.
func MapOf(kv ...any) *Map {
	m := NewMap()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i], kv[i+1])
	}
	return m
}

// Set stores v under k.
func (m *Map) Set(k, v any) *Map {
	m.tab.put(Normalize(k), Normalize(v))
	return m
}

// Get returns the value under k, or Undefined.
func (m *Map) Get(k any) any {
	v, ok := m.Lookup(k)
	if !ok {
		return Undefined
	}
	return v
}

// Lookup returns the value under k and whether it exists.
func (m *Map) Lookup(k any) (any, bool) {
	s, ok := m.tab.lookup(k)
	if !ok {
		return nil, false
	}
	return s.val, true
}

// Has reports whether k is present.
func (m *Map) Has(k any) bool {
	_, ok := m.tab.lookup(k)
	return ok
}

// Delete removes k, reporting whether it was present.
func (m *Map) Delete(k any) bool {
	return m.tab.remove(k)
}

// Clear removes every entry.
func (m *Map) Clear() {
	m.tab.clear()
}

// Size returns the number of entries.
func (m *Map) Size() int {
	return m.tab.live
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []any {
	out := make([]any, 0, m.tab.live)
	for k := range m.tab.entries() {
		out = append(out, k)
	}
	return out
}

// Values returns the values in insertion order.
func (m *Map) Values() []any {
	out := make([]any, 0, m.tab.live)
	for _, v := range m.tab.entries() {
		out = append(out, v)
	}
	return out
}

// Entries returns the entries in insertion order.
func (m *Map) Entries() []Entry {
	out := make([]Entry, 0, m.tab.live)
	for k, v := range m.tab.entries() {
		out = append(out, Entry{Key: k, Value: v})
	}
	return out
}

// Iter returns a live iterator over entries.
func (m *Map) Iter() *Iterator {
	return m.tab.iter(slotEntry)
}

// IterKeys returns a live iterator over keys.
func (m *Map) IterKeys() *Iterator {
	return m.tab.iter(slotKey)
}

// IterValues returns a live iterator over values.
func (m *Map) IterValues() *Iterator {
	return m.tab.iter(slotValue)
}

func (m *Map) String() string { return "[object Map]" }
