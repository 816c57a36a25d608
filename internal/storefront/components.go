package storefront

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
	"github.com/Viskhan-95/golden-chicken/internal/ui/style"
)

const (
	searchPlaceholder = "Поиск..."
	preloaderText     = "Приятного аппетита"
	prevPageText      = "Предыдущая страница"
	nextPageText      = "Следующая страница"
	emptyListText     = "Ничего не найдено"
	emptyCartText     = "Корзина пуста"
	notFoundText      = "Продукт не найден"
	addToCartText     = "Добавить в корзину"
	removeCartText    = "Удалить с корзины"
)

func (s *Shop) header(cartLen int) string {
	t := s.theme
	return fmt.Sprintf("%s  %s  %s %s",
		t.Link.Render("Меню"),
		t.Muted.Render("│"),
		t.Link.Render("Корзина"),
		t.Counter.Render(strconv.Itoa(cartLen)),
	)
}

func (s *Shop) search(query any) string {
	q, _ := query.(string)
	if q == "" {
		return s.theme.Muted.Render(searchPlaceholder)
	}
	return s.theme.Muted.Render("Поиск:") + " " + q
}

func (s *Shop) categoryNav(active any) string {
	id := -1
	if active != nil && !value.IsUndefined(active) {
		id = value.ToInteger(active)
	}
	cats := s.catalog.Categories()
	parts := make([]string, 0, len(cats))
	for _, c := range cats {
		label := fmt.Sprintf("%d %s", c.ID, c.Name)
		if c.ID == id {
			parts = append(parts, s.theme.Active.Render(style.Dot+" "+label))
			continue
		}
		parts = append(parts, s.theme.Muted.Render(style.Circle+" "+label))
	}
	return strings.Join(parts, "  ")
}

func (s *Shop) preloader() string {
	return s.theme.Title.Render(preloaderText)
}

func (s *Shop) price(v any) string {
	return s.theme.Price.Render(value.Display(field(v, "price")) + " " + s.currency)
}

// card renders one product line, numbered by its position on the page.
func (s *Shop) card(n int, product any, inCart bool) string {
	marker := s.theme.Muted.Render(style.Cart)
	if inCart {
		marker = s.theme.InCart.Render(style.InCart)
	}
	return fmt.Sprintf("%2d. %s %s  %s\n    %s",
		n, marker, productName(product), s.price(product),
		s.theme.Muted.Render(domain.ProductFragment(productID(product))),
	)
}

// pageView describes which part of a list a card list shows.
type pageView struct {
	list      []any
	offset    int
	countPage int
	size      int
	loading   bool
	paginated bool
	empty     string
}

// visible returns the slice of the list on the current page. A page past the
// end shows the whole list.
func (p pageView) visible() []any {
	if !p.paginated {
		return p.list
	}
	start, end := domain.PageBounds(p.offset, p.size, len(p.list))
	return p.list[start:end]
}

func (s *Shop) cardList(p pageView, c cart) string {
	if p.loading {
		return s.preloader()
	}

	var b strings.Builder
	shown := p.visible()
	if len(shown) == 0 {
		empty := p.empty
		if empty == "" {
			empty = emptyListText
		}
		b.WriteString(s.theme.Notice.Render(empty))
	}
	for i, product := range shown {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.card(i+1, product, c.contains(productID(product))))
	}

	if p.paginated && len(p.list) > 0 {
		var nav []string
		if domain.HasPrevPage(p.offset) {
			nav = append(nav, s.theme.Link.Render(style.Prev+" "+prevPageText))
		}
		if domain.HasNextPage(p.offset, p.countPage) {
			nav = append(nav, s.theme.Link.Render(nextPageText+" "+style.Next))
		}
		if len(nav) > 0 {
			b.WriteString("\n\n")
			b.WriteString(strings.Join(nav, "   "))
		}
	}
	return b.String()
}

func (s *Shop) cardDetails(product *value.Object, inCart bool) string {
	t := s.theme
	button := addToCartText
	if inCart {
		button = removeCartText
	}
	category := s.categoryName(value.ToInteger(field(product, "category")))

	lines := []string{
		t.Title.Render(productName(product)),
		"",
		t.Muted.Render("Название:") + " " + productName(product),
		t.Muted.Render("Категория:") + " " + category,
		t.Muted.Render("Цена:") + " " + s.price(product),
		t.Active.Render("[" + button + "]"),
		"",
		t.Muted.Render("Описание:"),
	}
	if desc, _ := field(product, "description").(string); desc != "" {
		lines = append(lines, desc)
	}
	return strings.Join(lines, "\n")
}

func (s *Shop) notFound() string {
	return s.theme.Title.Render(notFoundText)
}

func joinSections(sections ...string) string {
	return strings.Join(sections, "\n\n") + "\n"
}
