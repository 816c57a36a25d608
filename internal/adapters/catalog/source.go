// Package catalog loads the product catalog from YAML documents.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/core/ports"
)

//go:embed default.yaml
var defaultDocument []byte

var _ ports.CatalogSource = (*Source)(nil)

// Source implements ports.CatalogSource over YAML files and the built-in menu.
type Source struct {
	tracer ports.Tracer
}

// NewSource creates a new catalog source.
func NewSource(tracer ports.Tracer) *Source {
	return &Source{tracer: tracer}
}

// Load reads the catalog at path, or the built-in menu when path is empty.
func (s *Source) Load(ctx context.Context, path string) (*domain.Catalog, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.load", ports.WithAttribute("path", path))
	defer span.End()

	data := defaultDocument
	if path != "" {
		var err error
		data, err = os.ReadFile(path) //nolint:gosec // path is provided by user
		if err != nil {
			err = zerr.With(zerr.Wrap(err, "failed to read catalog"), "path", path)
			span.RecordError(err)
			return nil, err
		}
	}

	c, err := Decode(ctx, data)
	if err != nil {
		if path != "" {
			err = zerr.With(err, "path", path)
		}
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("products", c.Len())
	span.SetAttribute("version", Fingerprint(c.Version()))
	return c, nil
}

// document is the top level of a catalog file. Entries stay as nodes so they
// can be decoded concurrently.
type document struct {
	Version    string    `yaml:"version"`
	Categories yaml.Node `yaml:"categories"`
	Products   yaml.Node `yaml:"products"`
}

// Decode parses a catalog document. Product entries are decoded in parallel;
// the snapshot version is the xxhash of the raw document.
func Decode(ctx context.Context, data []byte) (*domain.Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(zerr.Wrap(domain.ErrInvalidCatalog, err.Error()), "failed to parse catalog")
	}
	if doc.Version != SchemaVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidCatalog, "unsupported catalog version"), "version", doc.Version)
	}
	for name, n := range map[string]*yaml.Node{"categories": &doc.Categories, "products": &doc.Products} {
		if n.Kind != 0 && n.Kind != yaml.SequenceNode {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidCatalog, "expected a list"), "field", name)
		}
	}

	products := make([]domain.Product, len(doc.Products.Content))
	categories := make([]domain.Category, len(doc.Categories.Content))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	g.Go(func() error {
		for i, n := range doc.Categories.Content {
			var dto categoryDTO
			if err := n.Decode(&dto); err != nil {
				return entryError(err, "category", i, n)
			}
			categories[i] = domain.Category{ID: dto.ID, Name: dto.Name}
		}
		return nil
	})

	for i, n := range doc.Products.Content {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var dto productDTO
			if err := n.Decode(&dto); err != nil {
				return entryError(err, "product", i, n)
			}
			products[i] = dto.toDomain()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.NewCatalog(products, categories, xxhash.Sum64(data))
}

func entryError(err error, kind string, index int, n *yaml.Node) error {
	err = zerr.Wrap(zerr.Wrap(domain.ErrInvalidCatalog, err.Error()), "failed to decode "+kind)
	err = zerr.With(err, "index", index)
	return zerr.With(err, "line", n.Line)
}

// Fingerprint renders a catalog version as fixed-width hex.
func Fingerprint(version uint64) string {
	return fmt.Sprintf("%016x", version)
}
