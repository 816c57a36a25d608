package storefront

import (
	"go.trai.ch/zerr"

	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
	"github.com/Viskhan-95/golden-chicken/internal/engine/watch"
)

// State keys.
const (
	keyCart          = "cart"
	keyList          = "list"
	keyLoading       = "loading"
	keySearchQuery   = "searchQuery"
	keyCategoryID    = "category_id"
	keyOffset        = "offset"
	keyCountPage     = "countPage"
	keyCountElInPage = "countElInPage"
)

func newAppState() *value.Object {
	return value.ObjectOf(keyCart, value.ArrayOf())
}

func newMainState(pageSize int) *value.Object {
	return value.ObjectOf(
		keyList, value.ArrayOf(),
		keyLoading, false,
		keySearchQuery, value.Undefined,
		keyCategoryID, nil,
		keyOffset, nil,
		keyCountPage, 0.0,
		keyCountElInPage, float64(pageSize),
	)
}

func productObject(p domain.Product) *value.Object {
	return value.ObjectOf(
		"_id", p.ID,
		"name", p.Name,
		"category", float64(p.Category),
		"price", p.Price,
		"image", p.Image(),
		"description", p.Description,
	)
}

// field reads a property of an object or of a handle around one.
func field(v any, name string) any {
	return value.GetWith(value.Raw(v), value.NewKey(name), v)
}

func productID(v any) string {
	id, _ := field(v, "_id").(string)
	return id
}

func productName(v any) string {
	name, _ := field(v, "name").(string)
	return name
}

// items returns the raw elements of an array or of a handle around one.
func items(v any) []any {
	if a, ok := value.Raw(v).(*value.Array); ok {
		return a.Values()
	}
	return nil
}

// cart edits the cart through a view's handle on the app state, so the view
// hears about its own edits.
type cart struct {
	app *watch.Handle
}

func (c cart) items() []any {
	return items(c.app.Get(keyCart))
}

func (c cart) len() int {
	return len(c.items())
}

func (c cart) contains(id string) bool {
	for _, v := range c.items() {
		if productID(v) == id {
			return true
		}
	}
	return false
}

func (c cart) add(obj *value.Object) error {
	id := productID(obj)
	if c.contains(id) {
		return zerr.With(zerr.Wrap(domain.ErrAlreadyInCart, "add"), "product_id", id)
	}
	list, ok := c.app.Get(keyCart).(*watch.Handle)
	if !ok {
		return zerr.Wrap(domain.ErrNotAvailable, "cart is not a list")
	}
	_, err := list.Call("push", obj)
	return err
}

func (c cart) remove(id string) error {
	if !c.contains(id) {
		return zerr.With(zerr.Wrap(domain.ErrNotInCart, "remove"), "product_id", id)
	}
	list, ok := c.app.Get(keyCart).(*watch.Handle)
	if !ok {
		return zerr.Wrap(domain.ErrNotAvailable, "cart is not a list")
	}
	kept, err := list.Call("filter", value.NewFunc("keep", func(_ any, args ...any) any {
		return productID(args[0]) != id
	}))
	if err != nil {
		return err
	}
	c.app.Set(keyCart, kept)
	return nil
}

// toggle adds the product when it is not in the cart and removes it otherwise.
func (c cart) toggle(obj *value.Object) error {
	if c.contains(productID(obj)) {
		return c.remove(productID(obj))
	}
	return c.add(obj)
}
