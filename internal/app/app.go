// Package app implements the application layer of the storefront.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/zerr"

	"github.com/Viskhan-95/golden-chicken/internal/adapters/detector"
	"github.com/Viskhan-95/golden-chicken/internal/adapters/linear"
	"github.com/Viskhan-95/golden-chicken/internal/adapters/telemetry"
	"github.com/Viskhan-95/golden-chicken/internal/adapters/tui"
	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/core/ports"
	"github.com/Viskhan-95/golden-chicken/internal/storefront"
	"github.com/Viskhan-95/golden-chicken/internal/ui/output"
	"github.com/Viskhan-95/golden-chicken/internal/ui/style"
)

// spanPrefix selects the spans shown in the TUI status line.
const spanPrefix = "session."

// logConfigurer is implemented by loggers that follow the configuration file.
type logConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// slogProvider is implemented by loggers that expose a *slog.Logger for the
// state observers.
type slogProvider interface {
	Slog() *slog.Logger
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	catalog      ports.CatalogSource
	logger       ports.Logger
	tracer       ports.Tracer
	teaOptions   []tea.ProgramOption

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	catalog ports.CatalogSource,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		catalog:      catalog,
		logger:       log,
		tracer:       tracer,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithIO replaces the standard streams. Nil arguments keep the current ones.
func (a *App) WithIO(stdin io.Reader, stdout, stderr io.Writer) *App {
	if stdin != nil {
		a.stdin = stdin
	}
	if stdout != nil {
		a.stdout = stdout
	}
	if stderr != nil {
		a.stderr = stderr
	}
	return a
}

// BrowseOptions configuration for the Browse method.
type BrowseOptions struct {
	// ConfigPath is the configuration file. Empty selects storefront.yaml.
	ConfigPath string
	// OutputMode overrides the configured output mode when set.
	OutputMode string
	// Script is a file of commands to run in linear mode. "-" reads stdin.
	Script string
	// Start is the fragment opened first, e.g. "#cart".
	Start string
	// TracePath receives every finished span as JSON when set.
	TracePath string
}

// Browse opens the storefront, interactively in a terminal or line by line
// from a script.
func (a *App) Browse(ctx context.Context, opts BrowseOptions) error {
	cfg, catalog, err := a.load(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	flag := opts.OutputMode
	if flag == "" {
		flag = cfg.Output
	}
	mode := detector.ResolveMode(detector.DetectEnvironment(), flag)
	if opts.Script != "" {
		mode = detector.ModeLinear
	}

	var traceOpts []telemetry.Option
	if opts.TracePath != "" {
		f, err := os.Create(opts.TracePath)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create trace file"), "path", opts.TracePath)
		}
		defer func() { _ = f.Close() }()
		traceOpts = append(traceOpts, telemetry.WithTraceWriter(f))
	}

	shopOpts := []storefront.Option{
		storefront.WithPageSize(cfg.PageSize),
		storefront.WithCurrency(cfg.Currency),
	}
	if sp, ok := a.logger.(slogProvider); ok {
		shopOpts = append(shopOpts, storefront.WithLogger(sp.Slog()))
	}

	if mode == detector.ModeTUI {
		return a.browseTUI(ctx, catalog, opts, shopOpts, traceOpts)
	}
	return a.browseLinear(ctx, catalog, opts, shopOpts, traceOpts)
}

func (a *App) browseLinear(
	ctx context.Context,
	catalog *domain.Catalog,
	opts BrowseOptions,
	shopOpts []storefront.Option,
	traceOpts []telemetry.Option,
) error {
	shutdown, err := telemetry.Setup(traceOpts...)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()

	input := a.stdin
	if opts.Script != "" && opts.Script != "-" {
		f, err := os.Open(opts.Script)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to open script"), "path", opts.Script)
		}
		defer func() { _ = f.Close() }()
		input = f
	}

	screen := linear.NewScreen(a.stdout, a.stderr)
	shopOpts = append(shopOpts, storefront.WithRenderer(output.Renderer(a.stdout, output.ColorProfileANSI)))
	shop := storefront.NewShop(catalog, shopOpts...)
	session := storefront.NewSession(storefront.NewRouter(shop, screen, a.tracer), screen, a.tracer, opts.Start)

	return session.Run(ctx, input)
}

func (a *App) browseTUI(
	ctx context.Context,
	catalog *domain.Catalog,
	opts BrowseOptions,
	shopOpts []storefront.Option,
	traceOpts []telemetry.Option,
) error {
	model := tui.NewModel(ctx, nil)
	model.SetDescribe(storefront.Describe)

	teaOpts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, a.teaOptions...)
	program := tea.NewProgram(model, teaOpts...)

	// Spans of finished commands reach the status line through the program.
	traceOpts = append(traceOpts, telemetry.WithBridge(telemetry.NewBridge(program, spanPrefix)))
	shutdown, err := telemetry.Setup(traceOpts...)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()

	screen := tui.NewScreen(program)
	shopOpts = append(shopOpts, storefront.WithRenderer(output.Renderer(a.stdout, output.ColorProfile)))
	shop := storefront.NewShop(catalog, shopOpts...)
	// Commands run in program goroutines that may outlive Run, so the session
	// is left to the process rather than closed here.
	session := storefront.NewSession(storefront.NewRouter(shop, screen, a.tracer), screen, a.tracer, opts.Start)
	model.SetExecutor(session)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return zerr.Wrap(err, "storefront terminated")
	}
	return nil
}

// CatalogOptions configuration for the Catalog method.
type CatalogOptions struct {
	ConfigPath string
	// Category limits the listing to one category. 0 lists everything.
	Category int
	// Search keeps products whose name contains the text.
	Search string
}

// Catalog prints the products as a table.
func (a *App) Catalog(ctx context.Context, opts CatalogOptions, w io.Writer) error {
	cfg, catalog, err := a.load(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}
	if _, ok := catalog.Category(opts.Category); !ok {
		return zerr.With(domain.ErrCategoryNotFound, "category_id", opts.Category)
	}

	r := output.Renderer(w, output.ColorProfileANSI)
	header := r.NewStyle().Bold(true).Foreground(style.Gold).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(style.Slate)).
		Headers("ID", "Название", "Категория", "Цена").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	n := 0
	for _, p := range catalog.Filter(opts.Category) {
		if !domain.MatchesQuery(p.Name, opts.Search) {
			continue
		}
		category, _ := catalog.Category(p.Category)
		t.Row(p.ID, p.Name, category.Name, strconv.FormatFloat(p.Price, 'f', -1, 64)+" "+cfg.Currency)
		n++
	}

	if n == 0 {
		_, err = fmt.Fprintln(w, "no products found")
		return err
	}
	_, err = fmt.Fprintln(w, t.String())
	return err
}

// load reads the configuration and the catalog it names.
func (a *App) load(ctx context.Context, configPath string) (domain.Config, *domain.Catalog, error) {
	cfg, err := a.configLoader.Load(configPath)
	if err != nil {
		return domain.Config{}, nil, zerr.Wrap(err, "failed to load configuration")
	}

	if lc, ok := a.logger.(logConfigurer); ok {
		lc.SetJSON(cfg.LogJSON)
		lc.SetVerbose(cfg.LogVerbose)
	}

	catalog, err := a.catalog.Load(ctx, cfg.Catalog)
	if err != nil {
		return domain.Config{}, nil, zerr.Wrap(err, "failed to load catalog")
	}
	return cfg, catalog, nil
}
