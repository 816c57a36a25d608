package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Catalog is an immutable snapshot of the products and categories on sale.
type Catalog struct {
	products   []Product
	categories []Category
	byID       map[string]int
	catByID    map[int]int
	version    uint64
}

// NewCatalog validates products and categories and freezes them into a snapshot.
// version fingerprints the source the snapshot was built from.
func NewCatalog(products []Product, categories []Category, version uint64) (*Catalog, error) {
	c := &Catalog{
		products:   slices.Clone(products),
		categories: slices.Clone(categories),
		byID:       make(map[string]int, len(products)),
		catByID:    make(map[int]int, len(categories)),
		version:    version,
	}

	for i, cat := range c.categories {
		c.catByID[cat.ID] = i
	}

	for i := range c.products {
		p := &c.products[i]
		if p.ID == "" || p.Name == "" {
			return nil, zerr.With(zerr.Wrap(ErrInvalidProduct, "catalog entry"), "index", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, zerr.With(zerr.Wrap(ErrDuplicateProduct, "catalog entry"), "product_id", p.ID)
		}
		if len(c.catByID) > 0 {
			if _, ok := c.catByID[p.Category]; !ok || p.Category == AllCategories {
				return nil, zerr.With(
					zerr.With(zerr.Wrap(ErrCategoryNotFound, "catalog entry"), "product_id", p.ID),
					"category_id", p.Category,
				)
			}
		}
		p.Images = slices.Clone(p.Images)
		c.byID[p.ID] = i
	}

	return c, nil
}

// Version returns the fingerprint of the catalog source.
func (c *Catalog) Version() uint64 {
	return c.version
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns every product in catalog order.
func (c *Catalog) Products() []Product {
	return slices.Clone(c.products)
}

// Categories returns every category in catalog order.
func (c *Catalog) Categories() []Category {
	return slices.Clone(c.categories)
}

// Product looks a product up by id.
func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Category looks a category up by id.
func (c *Catalog) Category(id int) (Category, bool) {
	i, ok := c.catByID[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Filter returns the products of one category. AllCategories returns everything.
func (c *Catalog) Filter(category int) []Product {
	if category == AllCategories {
		return c.Products()
	}
	var out []Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search returns the products whose name contains query, ignoring case.
func (c *Catalog) Search(query string) []Product {
	var out []Product
	for _, p := range c.products {
		if MatchesQuery(p.Name, query) {
			out = append(out, p)
		}
	}
	return out
}

// MatchesQuery reports whether name contains query, ignoring case.
func MatchesQuery(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}
