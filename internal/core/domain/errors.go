package domain

import "go.trai.ch/zerr"

var (
	// ErrRouteNotFound is returned when a URL fragment does not name a known view.
	ErrRouteNotFound = zerr.New("route not found")

	// ErrProductNotFound is returned when a product id is not in the catalog.
	ErrProductNotFound = zerr.New("product not found")

	// ErrCategoryNotFound is returned when a category id is not in the catalog.
	ErrCategoryNotFound = zerr.New("category not found")

	// ErrDuplicateProduct is returned when a catalog lists the same product id twice.
	ErrDuplicateProduct = zerr.New("duplicate product")

	// ErrInvalidProduct is returned when a catalog entry lacks an id or a name.
	ErrInvalidProduct = zerr.New("invalid product")

	// ErrInvalidCatalog is returned when a catalog document cannot be decoded.
	ErrInvalidCatalog = zerr.New("invalid catalog")

	// ErrInvalidConfig is returned when the storefront configuration fails validation.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrUnknownCommand is returned when a session line names no known command.
	ErrUnknownCommand = zerr.New("unknown command")

	// ErrMissingArgument is returned when a session command lacks its argument.
	ErrMissingArgument = zerr.New("missing argument")

	// ErrNotAvailable is returned when a command has no meaning on the current view.
	ErrNotAvailable = zerr.New("command not available on this view")

	// ErrAlreadyInCart is returned when adding a product that is already in the cart.
	ErrAlreadyInCart = zerr.New("product already in cart")

	// ErrNotInCart is returned when removing a product that is not in the cart.
	ErrNotInCart = zerr.New("product not in cart")

	// ErrQuit ends an interactive session.
	ErrQuit = zerr.New("quit")
)
