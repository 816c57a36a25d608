package storefront

import (
	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
)

// CartTitle is the title of the cart page.
const CartTitle = "Корзина"

var _ View = (*CartView)(nil)

// CartView lists everything in the cart on one page.
type CartView struct {
	*base
}

// NewCartView builds the cart page and renders it.
func NewCartView(shop *Shop, route domain.Route) (*CartView, error) {
	v := &CartView{base: newBase(shop, CartTitle, route)}
	if err := v.watchApp(v.render); err != nil {
		return nil, err
	}
	v.render()
	return v, nil
}

func (v *CartView) render() {
	list := v.cart().items()
	v.publish(joinSections(
		v.shop.header(len(list)),
		v.shop.theme.Title.Render(CartTitle),
		v.shop.cardList(pageView{list: list, empty: emptyCartText}, v.cart()),
	), ids(list))
}
