package value_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want value.Kind
	}{
		{"object", value.NewObject(), value.KindObject},
		{"array", value.ArrayOf(), value.KindArray},
		{"set", value.NewSet(), value.KindSet},
		{"map", value.NewMap(), value.KindMap},
		{"date", value.DateAt(0), value.KindDate},
		{"weak set", value.NewWeakSet(), value.KindWeakSet},
		{"weak map", value.NewWeakMap(), value.KindWeakMap},
		{"number", 1.0, value.KindInvalid},
		{"string", "x", value.KindInvalid},
		{"nil", nil, value.KindInvalid},
		{"typed nil", (*value.Object)(nil), value.KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, value.KindOf(tt.in))
			assert.Equal(t, tt.want != value.KindInvalid, value.IsContainer(tt.in))
		})
	}
}

func TestSameValue(t *testing.T) {
	o := value.NewObject()

	assert.True(t, value.SameValue(math.NaN(), math.NaN()))
	assert.False(t, value.SameValue(0.0, math.Copysign(0, -1)))
	assert.True(t, value.SameValueZero(0.0, math.Copysign(0, -1)))
	assert.True(t, value.SameValue(o, o))
	assert.False(t, value.SameValue(o, value.NewObject()))
	assert.False(t, value.SameValue(1.0, "1"))
	assert.True(t, value.SameValue(nil, nil))
	assert.False(t, value.SameValue(nil, value.Undefined))
}

func TestDisplay(t *testing.T) {
	a := value.ArrayOf(1, "two", nil, value.Undefined, 3.5)
	assert.Equal(t, "1,two,,,3.5", value.Display(a))
	assert.Equal(t, "[object Object]", value.Display(value.NewObject()))
	assert.Equal(t, "NaN", value.Display(math.NaN()))
	assert.Equal(t, "undefined", value.Display(value.Undefined))

	cyclic := value.ArrayOf(1)
	cyclic.SetIndex(1, cyclic)
	assert.Equal(t, "1,", value.Display(cyclic))
}

func TestKeyOf(t *testing.T) {
	idx, ok := value.KeyOf(2).Index()
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = value.KeyOf("02").Index()
	assert.False(t, ok)

	sym := value.NewSymbol("tag")
	k := value.KeyOf(sym)
	assert.True(t, k.IsSymbol())
	assert.Equal(t, "Symbol(tag)", k.String())
	assert.False(t, k.Equal(value.NewKey("Symbol(tag)")))
	assert.True(t, value.NewKey("length").IsLength())
	assert.True(t, value.Key{}.IsEmpty())
}

func TestObject(t *testing.T) {
	t.Run("insertion order", func(t *testing.T) {
		o := value.ObjectOf("b", 1, "a", 2)
		o.Set("c", 3)
		assert.Equal(t, []string{"b", "a", "c"}, keyNames(o.Keys()))
		assert.Equal(t, 2.0, o.Get("a"))
		assert.True(t, value.IsUndefined(o.Get("missing")))
	})

	t.Run("accessor receives receiver", func(t *testing.T) {
		o := value.NewObject()
		var seen any
		o.Define("x", value.Descriptor{
			Get:          value.NewFunc("get", func(this any, _ ...any) any { seen = this; return 42.0 }),
			Enumerable:   true,
			Configurable: true,
		})
		assert.Equal(t, 42.0, o.GetWith(value.NewKey("x"), "receiver"))
		assert.Equal(t, "receiver", seen)
		assert.False(t, o.Set("x", 1), "accessor without setter rejects writes")
	})

	t.Run("non configurable", func(t *testing.T) {
		o := value.NewObject()
		require.True(t, o.Define("id", value.Descriptor{Value: 1, Enumerable: true}))
		assert.False(t, o.Set("id", 2))
		assert.False(t, o.Delete("id"))
		assert.False(t, o.Define("id", value.Descriptor{Value: 2, Enumerable: true}))
		assert.True(t, o.Define("id", value.Descriptor{Value: 1, Enumerable: true}))
	})

	t.Run("freeze", func(t *testing.T) {
		o := value.ObjectOf("a", 1).Freeze()
		assert.True(t, o.IsFrozen())
		assert.False(t, o.Set("a", 2))
		assert.False(t, o.Set("b", 2))
		assert.Equal(t, 1.0, o.Get("a"))
	})
}

func TestArray(t *testing.T) {
	a := value.ArrayOf(1, 2)
	require.True(t, a.SetIndex(4, 5))
	assert.Equal(t, 5, a.Len())
	assert.False(t, a.HasIndex(3))
	assert.True(t, value.IsUndefined(a.Index(3)))

	assert.Equal(t, 5.0, a.Get("length"))
	assert.True(t, a.Set("length", 1.0))
	assert.Equal(t, []any{1.0}, a.Values())

	assert.False(t, a.Set("length", -1.0))
	assert.False(t, a.Set("name", "x"), "arrays only hold indices")

	d, ok := a.Descriptor("length")
	require.True(t, ok)
	assert.True(t, d.Writable)
	assert.False(t, d.Enumerable)
}

func TestSetAndMap(t *testing.T) {
	s := value.NewSet(1, 2, 2, math.NaN())
	assert.Equal(t, 3, s.Size())
	assert.True(t, s.Has(math.NaN()))
	assert.True(t, s.Has(math.Copysign(0, -1)) == s.Has(0.0))
	assert.True(t, s.Delete(1.0))
	assert.False(t, s.Delete(1.0))

	m := value.MapOf("a", 1, "b", 2)
	m.Set("a", 3)
	assert.Equal(t, []any{"a", "b"}, m.Keys())
	assert.Equal(t, []any{3.0, 2.0}, m.Values())
	_, found := m.Lookup("c")
	assert.False(t, found)
}

func TestIteratorIsLive(t *testing.T) {
	s := value.NewSet("a")
	it := s.Iter()
	s.Add("b")
	assert.Equal(t, []any{"a", "b"}, it.Collect())
}

func TestForEachDeletingCurrentVisitsEverything(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		s := value.NewSet("a", "b", "c")
		var visited []any
		_, err := value.Invoke(s, s, "forEach", []any{value.NewFunc("drop", func(_ any, args ...any) any {
			visited = append(visited, args[0])
			s.Delete(args[0])
			return value.Undefined
		})})
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b", "c"}, visited)
		assert.Empty(t, s.Values())
	})

	t.Run("map", func(t *testing.T) {
		m := value.MapOf("a", 1, "b", 2, "c", 3)
		var visited []any
		_, err := value.Invoke(m, m, "forEach", []any{value.NewFunc("drop", func(_ any, args ...any) any {
			visited = append(visited, args[1])
			m.Delete(args[1])
			return value.Undefined
		})})
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b", "c"}, visited)
		assert.Zero(t, m.Size())
	})
}

func TestMapValuesSkipsDeletedUpcomingKey(t *testing.T) {
	m := value.MapOf("x", 1, "y", 2, "z", 3)
	got, err := value.Invoke(m, m, "values", nil)
	require.NoError(t, err)
	it := got.(*value.Iterator)

	first, ok := it.Next()
	require.True(t, ok)
	assert.InDelta(t, 1.0, first, 0)

	m.Delete("y")
	m.Set("w", 4)
	assert.Equal(t, []any{3.0, 4.0}, it.Collect())

	m.Set("v", 5)
	_, ok = it.Next()
	assert.False(t, ok, "a finished iterator stays finished")
}

func TestClearDuringIteration(t *testing.T) {
	s := value.NewSet(1, 2, 3)
	it := s.Iter()
	_, ok := it.Next()
	require.True(t, ok)

	s.Clear()
	s.Add(4)
	assert.Equal(t, []any{4.0}, it.Collect())
	assert.Equal(t, []any{4.0}, s.Values())
}

func TestIteratorClose(t *testing.T) {
	m := value.MapOf("a", 1, "b", 2)
	it := m.IterKeys()
	k, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "a", k)

	it.Close()
	_, ok = it.Next()
	assert.False(t, ok)
}

func TestDeletesDuringIterationCompactLater(t *testing.T) {
	s := value.NewSet()
	for i := range 32 {
		s.Add(i)
	}
	it := s.Iter()
	for i := range 30 {
		s.Delete(i)
	}
	assert.Equal(t, []any{30.0, 31.0}, it.Collect())

	s.Delete(30)
	s.Add("x")
	assert.Equal(t, []any{31.0, "x"}, s.Values())
	assert.True(t, s.Has(31))
	assert.False(t, s.Has(30))
	assert.Equal(t, 2, s.Size())
}

func TestDate(t *testing.T) {
	d := value.DateAt(0)
	assert.Equal(t, "1970-01-01T00:00:00.000Z", d.ISOString())

	got, err := value.Invoke(d, d, "setFullYear", []any{2024.0})
	require.NoError(t, err)
	assert.InDelta(t, 1704067200000.0, got, 0)

	d.SetTime(math.Inf(1))
	assert.False(t, d.Valid())
	assert.Equal(t, "Invalid Date", d.String())
}

func TestWeakCollections(t *testing.T) {
	key := value.NewObject()
	ws := value.NewWeakSet()
	require.NoError(t, ws.Add(key))
	assert.True(t, ws.Has(key))
	assert.ErrorIs(t, ws.Add(1.0), value.ErrInvalidWeakKey)

	wm := value.NewWeakMap()
	require.NoError(t, wm.Set(key, "v"))
	assert.Equal(t, "v", wm.Get(key))
	assert.True(t, wm.Delete(key))
	assert.False(t, wm.Has(key))
}

func TestArrayMethods(t *testing.T) {
	call := func(t *testing.T, a *value.Array, name string, args ...any) any {
		t.Helper()
		out, err := value.Invoke(a, a, name, args)
		require.NoError(t, err)
		return out
	}

	t.Run("splice", func(t *testing.T) {
		a := value.ArrayOf(1, 2, 3, 4)
		removed := call(t, a, "splice", 1.0, 2.0, "x")
		assert.Equal(t, []any{2.0, 3.0}, removed.(*value.Array).Values())
		assert.Equal(t, []any{1.0, "x", 4.0}, a.Values())
	})

	t.Run("sort default is string order", func(t *testing.T) {
		a := value.ArrayOf(10, 9, 1, value.Undefined)
		call(t, a, "sort")
		assert.Equal(t, "1,10,9,", value.Display(a))
	})

	t.Run("sort with comparator", func(t *testing.T) {
		a := value.ArrayOf(3, 1, 2)
		cmpFn := value.NewFunc("cmp", func(_ any, args ...any) any {
			return value.ToNumber(args[0]) - value.ToNumber(args[1])
		})
		call(t, a, "sort", cmpFn)
		assert.Equal(t, []any{1.0, 2.0, 3.0}, a.Values())
	})

	t.Run("copyWithin", func(t *testing.T) {
		a := value.ArrayOf(1, 2, 3, 4, 5)
		call(t, a, "copyWithin", 0.0, 3.0)
		assert.Equal(t, []any{4.0, 5.0, 3.0, 4.0, 5.0}, a.Values())
	})

	t.Run("readers", func(t *testing.T) {
		a := value.ArrayOf(1, 2, math.NaN())
		assert.Equal(t, true, call(t, a, "includes", math.NaN()))
		assert.Equal(t, -1.0, call(t, a, "indexOf", math.NaN()))
		assert.Equal(t, "1-2-NaN", call(t, a, "join", "-"))
		assert.Equal(t, 2.0, call(t, a, "at", -2.0))
	})

	t.Run("push on non array", func(t *testing.T) {
		_, err := value.Invoke(value.ArrayOf(), value.NewObject(), "push", nil)
		assert.ErrorIs(t, err, value.ErrIncompatibleReceiver)
	})
}

func TestResolve(t *testing.T) {
	o := value.ObjectOf("greet", value.NewFunc("greet", func(_ any, args ...any) any {
		return "hi " + value.Display(args[0])
	}))
	m, err := value.Resolve(o, "greet")
	require.NoError(t, err)
	out, err := m(o, []any{"bob"})
	require.NoError(t, err)
	assert.Equal(t, "hi bob", out)

	_, err = value.Resolve(o, "missing")
	assert.ErrorIs(t, err, value.ErrNotCallable)
}

func TestSnapshotRestoresInPlace(t *testing.T) {
	o := value.ObjectOf("a", 1, "b", 2)
	snap := value.TakeSnapshot(o)

	o.Set("a", 10)
	o.Delete("b")
	o.Set("c", 3)
	require.True(t, snap.Restore(o))

	assert.Equal(t, []string{"a", "b"}, keyNames(o.Keys()))
	assert.Equal(t, 1.0, o.Get("a"))

	m := value.MapOf("k", 1)
	msnap := value.TakeSnapshot(m)
	m.Clear()
	require.True(t, msnap.Restore(m))
	assert.True(t, m.Has("k"))

	assert.Nil(t, value.TakeSnapshot(value.NewWeakSet()))
}

func TestCloneIsOneLevel(t *testing.T) {
	inner := value.ArrayOf(1)
	o := value.ObjectOf("inner", inner, "n", 1)
	c := value.Clone(o).(*value.Object)
	assert.NotSame(t, o, c)
	assert.Same(t, inner, c.Get("inner"))
}

func TestFromToGo(t *testing.T) {
	in := map[string]any{
		"b":    []any{1, "x"},
		"a":    map[string]any{"n": 2},
		"tags": []string{"hot"},
	}
	v := value.From(in)
	assert.Equal(t, []string{"a", "b", "tags"}, keyNames(v.(*value.Object).Keys()))

	want := map[string]any{
		"b":    []any{1.0, "x"},
		"a":    map[string]any{"n": 2.0},
		"tags": []any{"hot"},
	}
	if diff := cmp.Diff(want, value.ToGo(v)); diff != "" {
		t.Errorf("ToGo mismatch (-want +got):\n%s", diff)
	}
}

func keyNames(keys []value.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
