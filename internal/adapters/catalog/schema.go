package catalog

import "github.com/Viskhan-95/golden-chicken/internal/core/domain"

// SchemaVersion is the catalog document version this build reads.
const SchemaVersion = "1"

// productDTO represents a product entry of a catalog document.
type productDTO struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Category    int      `yaml:"category"`
	Price       float64  `yaml:"price"`
	Images      []string `yaml:"images"`
	Description string   `yaml:"description"`
}

func (d *productDTO) toDomain() domain.Product {
	return domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Category:    d.Category,
		Description: d.Description,
		Images:      d.Images,
		Price:       d.Price,
	}
}

// categoryDTO represents a category entry of a catalog document.
type categoryDTO struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}
