package storefront

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/core/ports"
)

// HelpTitle is the title of the command reference frame.
const HelpTitle = "Помощь"

var helpText = strings.Join([]string{
	"go <fragment>     open a route: #, #cart, #product?id=<id>",
	"menu              open the menu",
	"cart              open the cart",
	"open <n|id>       open a product page",
	"search [text]     filter the menu by name",
	"category <id>     show one category, 0 for all",
	"next, prev        turn the menu page",
	"add [n|id]        put a product in the cart",
	"remove [n|id]     take a product out of the cart",
	"help              show this reference",
	"quit              leave the storefront",
	"",
	"<n> is the number of a card on screen.",
}, "\n")

// Session interprets storefront commands against a router.
type Session struct {
	router *Router
	screen ports.Screen
	tracer ports.Tracer
	start  string
}

// NewSession creates a session that opens start when it begins.
func NewSession(router *Router, screen ports.Screen, tracer ports.Tracer, start string) *Session {
	return &Session{router: router, screen: screen, tracer: tracer, start: start}
}

// Router returns the router the session drives.
func (s *Session) Router() *Router {
	return s.router
}

// Start opens the start route.
func (s *Session) Start(ctx context.Context) error {
	return s.router.Navigate(ctx, s.start)
}

// Close destroys the active view.
func (s *Session) Close() {
	s.router.Close()
}

// Exec runs one command line. Empty lines and lines starting with '#' and a
// space are ignored. ErrQuit is returned for quit.
func (s *Session) Exec(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "# ") {
		return nil
	}
	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	arg = strings.TrimSpace(arg)

	ctx, span := s.tracer.Start(ctx, "session.exec",
		ports.WithAttribute("command", name),
		ports.WithAttribute("arg", arg),
	)
	defer span.End()

	err := s.dispatch(ctx, name, arg)
	if err != nil && !errors.Is(err, domain.ErrQuit) {
		span.RecordError(err)
	}
	return err
}

//nolint:cyclop // one case per command
func (s *Session) dispatch(ctx context.Context, name, arg string) error {
	view := s.router.Current()

	switch name {
	case "go":
		if arg == "" {
			return zerr.Wrap(domain.ErrMissingArgument, "go <fragment>")
		}
		return s.router.Navigate(ctx, arg)
	case "menu":
		return s.router.Navigate(ctx, string(domain.RouteMain))
	case "cart":
		return s.router.Navigate(ctx, string(domain.RouteCart))
	case "open":
		id, err := s.resolve(arg)
		if err != nil {
			return err
		}
		return s.router.Navigate(ctx, domain.ProductFragment(id))
	case "search":
		v, ok := view.(Searcher)
		if !ok {
			return zerr.Wrap(domain.ErrNotAvailable, "search")
		}
		return s.present(v.Search(arg))
	case "category":
		v, ok := view.(CategoryPicker)
		if !ok {
			return zerr.Wrap(domain.ErrNotAvailable, "category")
		}
		if arg == "" {
			return zerr.Wrap(domain.ErrMissingArgument, "category <id>")
		}
		id, err := strconv.Atoi(arg)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrCategoryNotFound, "category"), "category_id", arg)
		}
		return s.present(v.SelectCategory(id))
	case "next", "prev":
		v, ok := view.(Pager)
		if !ok {
			return zerr.Wrap(domain.ErrNotAvailable, name)
		}
		if name == "next" {
			return s.present(v.NextPage())
		}
		return s.present(v.PrevPage())
	case "add", "remove":
		return s.present(s.edit(view, name, arg))
	case "help":
		return s.screen.Render(domain.Frame{Title: HelpTitle, Route: s.router.Route().String(), Body: helpText})
	case "quit", "exit":
		return domain.ErrQuit
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownCommand, "exec"), "command", name)
	}
}

// edit adds or removes a product. Without an argument the product page edits
// the product on display.
func (s *Session) edit(view View, name, arg string) error {
	if view == nil {
		return zerr.Wrap(domain.ErrNotAvailable, name)
	}

	var id string
	if pv, ok := view.(*ProductView); ok && arg == "" {
		if pv.ProductID() == "" {
			return pv.Toggle()
		}
		id = pv.ProductID()
	} else {
		var err error
		if id, err = s.resolve(arg); err != nil {
			return err
		}
	}

	if name == "add" {
		return view.Add(id)
	}
	return view.Remove(id)
}

// resolve turns a card number on screen or a product id into a product id.
func (s *Session) resolve(arg string) (string, error) {
	if arg == "" {
		return "", zerr.Wrap(domain.ErrMissingArgument, "product number or id")
	}
	if n, err := strconv.Atoi(arg); err == nil {
		var visible []string
		if v := s.router.Current(); v != nil {
			visible = v.Visible()
		}
		if n < 1 || n > len(visible) {
			return "", zerr.With(zerr.Wrap(domain.ErrProductNotFound, "no such card on screen"), "card", n)
		}
		return visible[n-1], nil
	}
	return arg, nil
}

// present shows the view again after a command that stayed on it.
func (s *Session) present(err error) error {
	if perr := s.router.Present(); perr != nil && err == nil {
		return perr
	}
	return err
}

// Run starts the session and executes commands read from r line by line until
// r is exhausted or a quit command. A failing command is reported on the
// screen and does not end the run.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	defer s.Close()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.Exec(ctx, scanner.Text())
		if errors.Is(err, domain.ErrQuit) {
			return nil
		}
		if err != nil {
			if nerr := s.screen.Notice(Describe(err)); nerr != nil {
				return nerr
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return zerr.Wrap(err, "failed to read commands")
	}
	return nil
}

// Describe renders err on one line with the metadata of its outermost zerr
// level, e.g. "exec: unknown command (command=bake)".
func Describe(err error) string {
	var zErr *zerr.Error
	if !errors.As(err, &zErr) || len(zErr.Metadata()) == 0 {
		return err.Error()
	}
	meta := zErr.Metadata()
	parts := make([]string, 0, len(meta))
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return err.Error() + " (" + strings.Join(parts, " ") + ")"
}
