package domain

// AllCategories is the category id that matches every product.
const AllCategories = 0

// Product is one catalog entry.
type Product struct {
	ID          string
	Name        string
	Category    int
	Description string
	Images      []string
	Price       float64
}

// Image returns the cover image id, or an empty string when there is none.
func (p *Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Category groups products for the menu navigation.
type Category struct {
	ID   int
	Name string
}
