package watch_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
	"github.com/Viskhan-95/golden-chicken/internal/engine/watch"
)

// cartLimit vetoes any cart longer than five items.
func cartLimit(calls *[]watch.Change) watch.ValidateFunc {
	return func(c watch.Change) bool {
		*calls = append(*calls, c)
		if c.Path.String() != "cart" {
			return true
		}
		a, ok := value.Raw(c.Value).(*value.Array)
		return !ok || a.Len() <= 5
	}
}

func TestValidateVetoesCompoundCall(t *testing.T) {
	cartArr := value.ArrayOf(1, 2, 3, 4)
	var calls []watch.Change
	h, rec := observe(t, value.ObjectOf("cart", cartArr), watch.WithValidate(cartLimit(&calls)))
	cart := child(t, h, "cart")

	_, err := cart.Call("push", "a", "b")
	require.ErrorIs(t, err, watch.ErrRejected)

	require.Len(t, calls, 1, "the gate sees the call once")
	assert.Equal(t, "push", calls[0].Apply.Name)
	assert.Equal(t, 4, calls[0].Previous.(*value.Array).Len())
	assert.Equal(t, []any{1.0, 2.0, 3.0, 4.0}, cartArr.Values())
	assert.Empty(t, rec.changes)

	_, err = cart.Call("push", "a")
	require.NoError(t, err)
	assert.Equal(t, 5, cartArr.Len())
	assert.Len(t, rec.changes, 1)
}

func TestValidateVetoesAssignment(t *testing.T) {
	original := value.ArrayOf()
	root := value.ObjectOf("cart", original)
	var calls []watch.Change
	h, rec := observe(t, root, watch.WithValidate(cartLimit(&calls)))

	assert.False(t, h.Set("cart", value.ArrayOf(1, 2, 3, 4, 5, 6)))
	assert.Same(t, original, root.Get("cart"))
	assert.Empty(t, rec.changes)

	require.True(t, h.Set("cart", value.ArrayOf(1)))
	assert.Len(t, rec.changes, 1)
}

func TestValidateRollsBackNestedWrites(t *testing.T) {
	items := []*value.Object{value.ObjectOf("qty", 1), value.ObjectOf("qty", 1)}
	root := value.ObjectOf("cart", value.ArrayOf(items[0], items[1]))
	reject := func(c watch.Change) bool { return c.Apply == nil }
	h, rec := observe(t, root, watch.WithValidate(reject))
	cart := child(t, h, "cart")

	double := value.NewFunc("double", func(_ any, args ...any) any {
		item := args[0].(*watch.Handle)
		item.Set("qty", value.ToNumber(item.Get("qty"))*2)
		item.Set("note", "doubled")
		return value.Undefined
	})
	_, err := cart.Call("forEach", double)
	require.ErrorIs(t, err, watch.ErrRejected)

	for _, item := range items {
		assert.Equal(t, 1.0, item.Get("qty"))
		assert.False(t, item.Has("note"))
	}
	assert.Empty(t, rec.changes)
}

func TestValidateDeleteAndDefine(t *testing.T) {
	root := value.ObjectOf("locked", 1)
	deny := func(c watch.Change) bool { return c.Path.String() != "locked" }
	h, rec := observe(t, root, watch.WithValidate(deny))

	assert.False(t, h.Delete("locked"))
	assert.False(t, h.DefineProperty("locked", value.Descriptor{Value: 2, Enumerable: true}))
	assert.True(t, root.Has("locked"))
	assert.Equal(t, 1.0, root.Get("locked"))
	assert.Empty(t, rec.changes)
}

func TestIgnoredKeys(t *testing.T) {
	sym := value.NewSymbol("meta")
	root := value.ObjectOf("_private", value.ObjectOf(), "skip", value.ObjectOf(), "keep", value.ObjectOf())
	root.Set(sym, value.ObjectOf())
	h, rec := observe(t, root,
		watch.WithIgnoreUnderscores(),
		watch.WithIgnoreSymbols(),
		watch.WithIgnoreKeys("skip"),
	)

	for _, k := range []any{"_private", "skip", sym} {
		_, isHandle := h.Get(k).(*watch.Handle)
		assert.False(t, isHandle, "key %v", k)
		require.True(t, h.Set(k, 1))
	}
	assert.Empty(t, rec.changes)

	_, isHandle := h.Get("keep").(*watch.Handle)
	assert.True(t, isHandle)
}

func TestIgnoredMethodPassesThrough(t *testing.T) {
	raw := value.ArrayOf(3, 1, 2)
	h, rec := observe(t, raw, watch.WithIgnoreKeys("sort"))

	_, err := h.Call("sort")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, raw.Values())
	assert.Empty(t, rec.changes)
}

func TestShallow(t *testing.T) {
	root := value.ObjectOf("nested", value.ObjectOf("x", 1), "list", value.ArrayOf())
	h, rec := observe(t, root, watch.WithShallow())

	_, isHandle := h.Get("nested").(*watch.Handle)
	assert.False(t, isHandle)
	require.True(t, h.Set("top", 1))
	assert.Len(t, rec.changes, 1)
}

func TestPathAsSegments(t *testing.T) {
	root := value.ObjectOf("a.b", value.ObjectOf("c", 1))
	h, rec := observe(t, root, watch.WithPathAsSegments())

	require.True(t, child(t, h, "a.b").Set("c", 2))
	require.Len(t, rec.changes, 1)
	p := rec.changes[0].Path
	assert.True(t, p.Segmented())
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, "a.b", p.Keys()[0].String())
}

func TestIgnoreDetached(t *testing.T) {
	old := value.ObjectOf("x", 1)
	root := value.ObjectOf("item", old)
	h, rec := observe(t, root, watch.WithIgnoreDetached())
	item := child(t, h, "item")

	require.True(t, h.Set("item", value.ObjectOf("x", 1)))
	require.Len(t, rec.changes, 1)

	require.True(t, item.Set("x", 2))
	assert.Equal(t, 2.0, old.Get("x"))
	assert.Len(t, rec.changes, 1, "writes to a detached node are not reported")

	require.True(t, child(t, h, "item").Set("x", 3))
	assert.Len(t, rec.changes, 2)
}

func TestDetachedNodesAreTrackedByDefault(t *testing.T) {
	root := value.ObjectOf("item", value.ObjectOf("x", 1))
	h, rec := observe(t, root)
	item := child(t, h, "item")

	require.True(t, h.Set("item", nil))
	require.True(t, item.Set("x", 2))
	assert.Equal(t, []string{"item", "item.x"}, rec.paths())
}

func TestDetails(t *testing.T) {
	t.Run("all methods", func(t *testing.T) {
		h, rec := observe(t, value.ArrayOf(), watch.WithDetails(true))
		_, err := h.Call("push", "a", "b")
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "1"}, rec.paths())
		for _, c := range rec.changes {
			assert.Nil(t, c.Apply)
		}
	})

	t.Run("selected methods", func(t *testing.T) {
		h, rec := observe(t, value.ArrayOf(2, 1), watch.WithDetailsFor("reverse"))
		_, err := h.Call("reverse")
		require.NoError(t, err)
		assert.Equal(t, []string{"0", "1"}, rec.paths())

		_, err = h.Call("push", 3)
		require.NoError(t, err)
		assert.Len(t, rec.changes, 3)
		assert.Equal(t, "push", rec.changes[2].Name)
	})

	t.Run("collections stay aggregate", func(t *testing.T) {
		h, rec := observe(t, value.NewSet(), watch.WithDetails(true))
		_, err := h.Call("add", 1)
		require.NoError(t, err)
		require.Len(t, rec.changes, 1)
		assert.NotNil(t, rec.changes[0].Apply)
	})
}

func TestCustomEquals(t *testing.T) {
	loose := func(a, b any) bool { return value.Display(a) == value.Display(b) }
	h, rec := observe(t, value.ObjectOf("n", 1), watch.WithEquals(loose))

	require.True(t, h.Set("n", "1"))
	assert.Empty(t, rec.changes)
	require.True(t, h.Set("n", "2"))
	assert.Len(t, rec.changes, 1)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h, _ := observe(t, value.ObjectOf("cart", value.ArrayOf()), watch.WithLogger(logger))

	require.True(t, h.Set("total", 10))
	assert.Contains(t, buf.String(), "change.path=total")
	assert.Contains(t, buf.String(), "change.value=10")
}
