package storefront

import (
	"context"

	"go.trai.ch/zerr"

	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/core/ports"
)

// Router maps URL fragments to views. Navigating destroys the current view
// before the next one is built, so at most one view observes the app state.
type Router struct {
	shop    *Shop
	screen  ports.Screen
	tracer  ports.Tracer
	current View
	route   domain.Route
}

// NewRouter creates a router presenting views of shop on screen.
func NewRouter(shop *Shop, screen ports.Screen, tracer ports.Tracer) *Router {
	return &Router{shop: shop, screen: screen, tracer: tracer}
}

// Navigate switches to the view named by fragment and presents it. An unknown
// fragment leaves the current view in place.
func (r *Router) Navigate(ctx context.Context, fragment string) error {
	_, span := r.tracer.Start(ctx, "router.navigate", ports.WithAttribute("fragment", fragment))
	defer span.End()

	route, err := domain.ParseRoute(fragment)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if r.current != nil {
		r.current.Destroy()
		r.current = nil
	}

	view, err := r.build(route)
	if err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to build view")
	}
	r.current = view
	r.route = route
	span.SetAttribute("title", view.Frame().Title)
	span.SetAttribute("renders", view.Renders())

	return r.Present()
}

func (r *Router) build(route domain.Route) (View, error) {
	switch route.Path {
	case domain.RouteCart:
		return NewCartView(r.shop, route)
	case domain.RouteProduct:
		return NewProductView(r.shop, route)
	default:
		return NewMainView(r.shop, route)
	}
}

// Current returns the active view, or nil before the first navigation.
func (r *Router) Current() View {
	return r.current
}

// Route returns the route of the active view.
func (r *Router) Route() domain.Route {
	return r.route
}

// Present hands the latest frame of the active view to the screen.
func (r *Router) Present() error {
	if r.current == nil {
		return nil
	}
	return r.screen.Render(r.current.Frame())
}

// Close destroys the active view.
func (r *Router) Close() {
	if r.current != nil {
		r.current.Destroy()
		r.current = nil
	}
}
