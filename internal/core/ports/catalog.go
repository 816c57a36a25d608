package ports

import (
	"context"

	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
)

// CatalogSource defines the interface for loading the product catalog.
//
//go:generate mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type CatalogSource interface {
	// Load reads the catalog at path. An empty path selects the built-in catalog.
	Load(ctx context.Context, path string) (*domain.Catalog, error)
}
