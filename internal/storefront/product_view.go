package storefront

import (
	"go.trai.ch/zerr"

	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
)

// ProductTitle is the title of the product page.
const ProductTitle = "О продукте"

var _ View = (*ProductView)(nil)

// ProductView shows one product picked by the id parameter of the route.
type ProductView struct {
	*base
	product *value.Object
}

// NewProductView builds the product page and renders it. An unknown id
// renders the not-found page.
func NewProductView(shop *Shop, route domain.Route) (*ProductView, error) {
	v := &ProductView{base: newBase(shop, ProductTitle, route)}
	v.product, _ = shop.product(route.Param("id"))
	if err := v.watchApp(v.render); err != nil {
		return nil, err
	}
	v.render()
	return v, nil
}

// ProductID returns the id of the product on display, or "" when none is.
func (v *ProductView) ProductID() string {
	if v.product == nil {
		return ""
	}
	return productID(v.product)
}

// Toggle adds the product on display to the cart or removes it.
func (v *ProductView) Toggle() error {
	if v.product == nil {
		return zerr.With(zerr.Wrap(domain.ErrProductNotFound, "toggle"), "product_id", v.route.Param("id"))
	}
	return v.cart().toggle(v.product)
}

func (v *ProductView) render() {
	header := v.shop.header(v.cart().len())
	if v.product == nil {
		v.publish(joinSections(header, v.shop.notFound()), nil)
		return
	}
	id := productID(v.product)
	v.publish(joinSections(
		header,
		v.shop.cardDetails(v.product, v.cart().contains(id)),
	), []string{id})
}
