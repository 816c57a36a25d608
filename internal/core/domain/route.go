package domain

import (
	"net/url"
	"strings"

	"go.trai.ch/zerr"
)

// RoutePath names a storefront view.
type RoutePath string

const (
	// RouteMain is the menu with search, categories and paging.
	RouteMain RoutePath = ""
	// RouteCart lists the cart.
	RouteCart RoutePath = "#cart"
	// RouteProduct shows one product, selected by the id query parameter.
	RouteProduct RoutePath = "#product"
)

// Route is a parsed URL fragment.
type Route struct {
	Path  RoutePath
	Query url.Values
}

// ParseRoute parses a URL fragment such as "#product?id=42".
// The leading '#' may be omitted; "" and "#" both name the menu.
func ParseRoute(fragment string) (Route, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment != "" && !strings.HasPrefix(fragment, "#") {
		fragment = "#" + fragment
	}
	if fragment == "#" {
		fragment = ""
	}

	path, rawQuery, _ := strings.Cut(fragment, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Route{}, zerr.With(zerr.Wrap(ErrRouteNotFound, err.Error()), "fragment", fragment)
	}

	switch p := RoutePath(path); p {
	case RouteMain, RouteCart, RouteProduct:
		return Route{Path: p, Query: query}, nil
	default:
		return Route{}, zerr.With(zerr.Wrap(ErrRouteNotFound, "parse route"), "fragment", fragment)
	}
}

// ProductFragment returns the fragment that opens the product view for id.
func ProductFragment(id string) string {
	return string(RouteProduct) + "?" + url.Values{"id": {id}}.Encode()
}

// Param returns the first value of a query parameter.
func (r Route) Param(key string) string {
	return r.Query.Get(key)
}

// String renders the route back into a fragment.
func (r Route) String() string {
	if len(r.Query) == 0 {
		return string(r.Path)
	}
	return string(r.Path) + "?" + r.Query.Encode()
}
