package storefront

import (
	"go.trai.ch/zerr"

	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/engine/watch"
)

// View is one page of the storefront.
type View interface {
	// Frame returns the most recent rendering.
	Frame() domain.Frame
	// Renders counts how many times the view has rendered.
	Renders() int
	// Visible lists the ids of the products on screen, in display order.
	Visible() []string
	// Add puts a product in the cart.
	Add(id string) error
	// Remove takes a product out of the cart.
	Remove(id string) error
	// Destroy stops observing state. The view must not be used afterwards.
	Destroy()
}

// Searcher is a view with a search box.
type Searcher interface {
	Search(query string) error
}

// CategoryPicker is a view with a category navigation.
type CategoryPicker interface {
	SelectCategory(id int) error
}

// Pager is a view with a paginated card list.
type Pager interface {
	NextPage() error
	PrevPage() error
}

// base carries what the three views have in common: the observed app state,
// the frame and the cart commands.
type base struct {
	shop    *Shop
	app     *watch.Handle
	title   string
	route   domain.Route
	frame   domain.Frame
	renders int
	visible []string
}

func newBase(shop *Shop, title string, route domain.Route) *base {
	return &base{shop: shop, title: title, route: route}
}

// watchApp subscribes to the app state. render runs whenever the cart changes.
func (b *base) watchApp(render func()) error {
	h, err := watch.Observe(b.shop.app, func(c watch.Change) {
		if c.Path.String() == keyCart {
			render()
		}
	}, watch.WithLogger(b.shop.logger))
	if err != nil {
		return zerr.Wrap(err, "failed to observe app state")
	}
	b.app = h
	return nil
}

func (b *base) cart() cart {
	return cart{app: b.app}
}

func (b *base) publish(body string, visible []string) {
	b.renders++
	b.visible = visible
	b.frame = domain.Frame{Title: b.title, Route: b.route.String(), Body: body}
}

func (b *base) Frame() domain.Frame {
	return b.frame
}

func (b *base) Renders() int {
	return b.renders
}

func (b *base) Visible() []string {
	return append([]string(nil), b.visible...)
}

func (b *base) Add(id string) error {
	obj, ok := b.shop.product(id)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrProductNotFound, "add"), "product_id", id)
	}
	return b.cart().add(obj)
}

func (b *base) Remove(id string) error {
	if _, ok := b.shop.product(id); !ok {
		return zerr.With(zerr.Wrap(domain.ErrProductNotFound, "remove"), "product_id", id)
	}
	return b.cart().remove(id)
}

func (b *base) Destroy() {
	watch.Unsubscribe(b.app)
}

func ids(list []any) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = productID(v)
	}
	return out
}
