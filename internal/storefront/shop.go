// Package storefront renders the golden-chicken menu, cart and product pages
// from observed state. Every view subscribes to the shared app state and to its
// own local state with the watch engine and re-renders when a change it cares
// about is reported.
package storefront

import (
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
	"github.com/Viskhan-95/golden-chicken/internal/ui/output"
)

// Shop holds what every view shares: the catalog, the product objects built
// from it and the app state that carries the cart.
type Shop struct {
	catalog  *domain.Catalog
	products map[string]*value.Object
	order    []*value.Object
	app      *value.Object
	theme    Theme
	pageSize int
	currency string
	logger   *slog.Logger
}

// Option configures a Shop.
type Option func(*Shop)

// WithPageSize sets the number of cards on a menu page.
func WithPageSize(n int) Option {
	return func(s *Shop) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithCurrency sets the label printed after prices.
func WithCurrency(c string) Option {
	return func(s *Shop) {
		if c != "" {
			s.currency = c
		}
	}
}

// WithRenderer sets the lipgloss renderer the components style text with.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(s *Shop) {
		if r != nil {
			s.theme = NewTheme(r)
		}
	}
}

// WithLogger sets the logger handed to the watch engine of every view.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shop) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewShop builds the shared state for catalog.
func NewShop(catalog *domain.Catalog, opts ...Option) *Shop {
	s := &Shop{
		catalog:  catalog,
		products: make(map[string]*value.Object, catalog.Len()),
		app:      newAppState(),
		theme:    NewTheme(output.Renderer(os.Stdout, output.ColorProfile)),
		pageSize: domain.DefaultPageSize,
		currency: domain.DefaultCurrency,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, p := range catalog.Products() {
		obj := productObject(p)
		s.products[p.ID] = obj
		s.order = append(s.order, obj)
	}
	return s
}

// Catalog returns the snapshot the shop sells from.
func (s *Shop) Catalog() *domain.Catalog {
	return s.catalog
}

// CartIDs returns the ids of the products in the cart, in the order added.
func (s *Shop) CartIDs() []string {
	cart, _ := s.app.Get("cart").(*value.Array)
	if cart == nil {
		return nil
	}
	ids := make([]string, 0, cart.Len())
	for _, v := range cart.Values() {
		ids = append(ids, productID(v))
	}
	return ids
}

func (s *Shop) product(id string) (*value.Object, bool) {
	obj, ok := s.products[id]
	return obj, ok
}

// all returns every product object in catalog order.
func (s *Shop) all() []any {
	out := make([]any, len(s.order))
	for i, obj := range s.order {
		out[i] = obj
	}
	return out
}

func (s *Shop) categoryName(id int) string {
	if c, ok := s.catalog.Category(id); ok {
		return c.Name
	}
	return ""
}
