package watch

import (
	"io"
	"log/slog"
	"strings"

	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
)

// EqualFunc decides whether an assignment leaves a property unchanged.
type EqualFunc func(a, b any) bool

// ValidateFunc approves or vetoes a proposed mutation before it is committed.
type ValidateFunc func(c Change) bool

// ChangeFunc receives one record per committed mutation.
type ChangeFunc func(c Change)

type config struct {
	equals            EqualFunc
	shallow           bool
	segmented         bool
	ignoreSymbols     bool
	ignoreUnderscores bool
	ignoreKeys        map[string]struct{}
	ignoreDetached    bool
	details           bool
	detailsFor        map[string]struct{}
	validate          ValidateFunc
	logger            *slog.Logger
}

// Option configures an observation.
type Option func(*config)

func newConfig(opts []Option) config {
	cfg := config{
		equals: value.SameValue,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithEquals replaces the SameValue comparison used to skip no-op assignments.
func WithEquals(fn EqualFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.equals = fn
		}
	}
}

// WithShallow observes only the root; nested values are returned unwrapped.
func WithShallow() Option {
	return func(c *config) { c.shallow = true }
}

// WithPathAsSegments reports paths as key segments instead of dotted strings.
func WithPathAsSegments() Option {
	return func(c *config) { c.segmented = true }
}

// WithIgnoreSymbols stops symbol-keyed properties from being wrapped or reported.
func WithIgnoreSymbols() Option {
	return func(c *config) { c.ignoreSymbols = true }
}

// WithIgnoreUnderscores stops properties whose name starts with an underscore from being wrapped or reported.
func WithIgnoreUnderscores() Option {
	return func(c *config) { c.ignoreUnderscores = true }
}

// WithIgnoreKeys stops the named properties and methods from being wrapped, intercepted or reported.
func WithIgnoreKeys(keys ...string) Option {
	return func(c *config) {
		if c.ignoreKeys == nil {
			c.ignoreKeys = make(map[string]struct{}, len(keys))
		}
		for _, k := range keys {
			c.ignoreKeys[k] = struct{}{}
		}
	}
}

// WithIgnoreDetached treats values that are no longer reachable from the root as inert.
func WithIgnoreDetached() Option {
	return func(c *config) { c.ignoreDetached = true }
}

// WithDetails makes object and array method calls report each element write
// individually instead of one aggregate record per call.
func WithDetails(on bool) Option {
	return func(c *config) { c.details = on }
}

// WithDetailsFor enables per-write reporting for the named methods only.
func WithDetailsFor(methods ...string) Option {
	return func(c *config) {
		if c.detailsFor == nil {
			c.detailsFor = make(map[string]struct{}, len(methods))
		}
		for _, m := range methods {
			c.detailsFor[m] = struct{}{}
		}
	}
}

// WithValidate installs a gate consulted before every mutation.
func WithValidate(fn ValidateFunc) Option {
	return func(c *config) { c.validate = fn }
}

// WithLogger routes engine diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func (c *config) ignored(k value.Key) bool {
	if k.IsSymbol() {
		return c.ignoreSymbols
	}
	name := k.String()
	if c.ignoreUnderscores && strings.HasPrefix(name, "_") {
		return true
	}
	_, skip := c.ignoreKeys[name]
	return skip
}

func (c *config) detailed(method string) bool {
	if c.details {
		return true
	}
	_, ok := c.detailsFor[method]
	return ok
}
