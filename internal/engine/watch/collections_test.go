package watch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
	"github.com/Viskhan-95/golden-chicken/internal/engine/watch"
)

func TestSetDelete(t *testing.T) {
	raw := value.NewSet("a", "b")
	h, rec := observe(t, raw)

	got, err := h.Call("delete", "missing")
	require.NoError(t, err)
	assert.Equal(t, false, got)
	assert.Empty(t, rec.changes)

	got, err = h.Call("delete", "a")
	require.NoError(t, err)
	assert.Equal(t, true, got)
	require.Len(t, rec.changes, 1)

	prev := rec.changes[0].Previous.(*value.Set)
	assert.True(t, prev.Has("a"))
	assert.Equal(t, 2, prev.Size())
	assert.False(t, raw.Has("a"))
}

func TestSetAddExistingIsSilent(t *testing.T) {
	h, rec := observe(t, value.NewSet(1))

	got, err := h.Call("add", 1)
	require.NoError(t, err)
	assert.Same(t, h, got, "add returns the receiver handle")
	assert.Empty(t, rec.changes)

	_, err = h.Call("add", 2)
	require.NoError(t, err)
	assert.Len(t, rec.changes, 1)
}

func TestMapDelete(t *testing.T) {
	raw := value.MapOf("k", 1)
	h, rec := observe(t, raw)

	_, err := h.Call("delete", "nope")
	require.NoError(t, err)
	assert.Empty(t, rec.changes)

	_, err = h.Call("delete", "k")
	require.NoError(t, err)
	require.Len(t, rec.changes, 1)
	assert.Equal(t, 1.0, rec.changes[0].Previous.(*value.Map).Get("k"))
	assert.Equal(t, 0, raw.Size())
}

func TestMapSet(t *testing.T) {
	h, rec := observe(t, value.MapOf("k", 1))

	_, err := h.Call("set", "k", 1)
	require.NoError(t, err)
	assert.Empty(t, rec.changes)

	_, err = h.Call("set", "k", 2)
	require.NoError(t, err)
	require.Len(t, rec.changes, 1)
	assert.Equal(t, "set", rec.changes[0].Name)
	assert.Equal(t, []any{"k", 2.0}, rec.changes[0].Apply.Args)
}

func TestMapGetAppendsKey(t *testing.T) {
	item := value.ObjectOf("qty", 1)
	root := value.ObjectOf("orders", value.MapOf("soup", item))
	h, rec := observe(t, root)
	orders := child(t, h, "orders")

	got, err := orders.Call("get", "soup")
	require.NoError(t, err)
	order, ok := got.(*watch.Handle)
	require.True(t, ok)
	assert.Equal(t, "orders.soup", order.Path().String())

	require.True(t, order.Set("qty", 2))
	require.Len(t, rec.changes, 1)
	assert.Equal(t, "orders.soup.qty", rec.changes[0].Path.String())
}

func TestMapIteratorsYieldHandles(t *testing.T) {
	a, b := value.ObjectOf("n", 1), value.ObjectOf("n", 2)
	h, rec := observe(t, value.MapOf("a", a, "b", b))

	got, err := h.Call("values")
	require.NoError(t, err)
	values := got.(*value.Iterator).Collect()
	require.Len(t, values, 2)
	for i, want := range []string{"a", "b"} {
		vh, ok := values[i].(*watch.Handle)
		require.True(t, ok)
		assert.Equal(t, want, vh.Path().String())
	}

	got, err = h.Call("entries")
	require.NoError(t, err)
	entries := got.(*value.Iterator).Collect()
	require.Len(t, entries, 2)
	e := entries[1].(value.Entry)
	assert.Equal(t, "b", e.Key)
	require.True(t, e.Value.(*watch.Handle).Set("n", 3))

	require.Len(t, rec.changes, 1)
	assert.Equal(t, "b.n", rec.changes[0].Path.String())
}

func TestMapValuesSkipDeletedEntries(t *testing.T) {
	x, y, z := value.ObjectOf("n", 1), value.ObjectOf("n", 2), value.ObjectOf("n", 3)
	h, rec := observe(t, value.MapOf("x", x, "y", y, "z", z))

	got, err := h.Call("values")
	require.NoError(t, err)
	it := got.(*value.Iterator)

	first, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "x", first.(*watch.Handle).Path().String())

	_, err = h.Call("delete", "y")
	require.NoError(t, err)

	rest := it.Collect()
	require.Len(t, rest, 1)
	assert.Equal(t, "z", rest[0].(*watch.Handle).Path().String())
	require.Len(t, rec.changes, 1)
}

func TestSetBeforeImageSharesElements(t *testing.T) {
	item := value.ObjectOf("n", 1)
	raw := value.NewSet(item, "x")
	h, rec := observe(t, raw)

	_, err := h.Call("delete", "x")
	require.NoError(t, err)

	require.Len(t, rec.changes, 1)
	prev := rec.changes[0].Previous.(*value.Set)
	assert.NotSame(t, raw, prev)
	assert.Equal(t, 2, prev.Size())
	assert.True(t, prev.Has(item), "elements are shared, not copied")
}

func TestSetForEachGrowingTheSet(t *testing.T) {
	raw := value.NewSet("seed")
	h, rec := observe(t, raw)

	grow := value.NewFunc("grow", func(_ any, args ...any) any {
		if args[0] == "seed" {
			args[2].(*value.Set).Add("extra")
		}
		return value.Undefined
	})
	_, err := h.Call("forEach", grow)
	require.NoError(t, err)

	assert.True(t, raw.Has("extra"))
	require.Len(t, rec.changes, 1)
	assert.Equal(t, "forEach", rec.changes[0].Name)
	assert.Equal(t, 1, rec.changes[0].Previous.(*value.Set).Size())
}

func TestSetForEachReadOnlyIsSilent(t *testing.T) {
	h, rec := observe(t, value.NewSet(1, 2))

	var seen []any
	_, err := h.Call("forEach", value.NewFunc("collect", func(_ any, args ...any) any {
		seen = append(seen, args[0])
		return value.Undefined
	}))
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0}, seen)
	assert.Empty(t, rec.changes)
}

func TestWeakSet(t *testing.T) {
	key := value.NewObject()
	raw := value.NewWeakSet()
	h, rec := observe(t, raw)

	_, err := h.Call("add", key)
	require.NoError(t, err)
	require.Len(t, rec.changes, 1)
	assert.Equal(t, false, rec.changes[0].Previous)

	_, err = h.Call("add", key)
	require.NoError(t, err)
	assert.Len(t, rec.changes, 1)

	_, err = h.Call("add", "primitive")
	assert.ErrorIs(t, err, value.ErrInvalidWeakKey)
	assert.Len(t, rec.changes, 1)
}

func TestWeakMap(t *testing.T) {
	key := value.NewObject()
	raw := value.NewWeakMap()
	h, rec := observe(t, raw)

	_, err := h.Call("set", key, "v1")
	require.NoError(t, err)
	_, err = h.Call("set", key, "v1")
	require.NoError(t, err)
	_, err = h.Call("set", key, "v2")
	require.NoError(t, err)

	require.Len(t, rec.changes, 2)
	assert.True(t, value.IsUndefined(rec.changes[0].Previous))
	assert.Equal(t, "v1", rec.changes[1].Previous)

	_, err = h.Call("delete", value.NewObject())
	require.NoError(t, err)
	assert.Len(t, rec.changes, 2)
}
