package storefront

import (
	"strings"

	"go.trai.ch/zerr"

	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/engine/value"
	"github.com/Viskhan-95/golden-chicken/internal/engine/watch"
)

// MainTitle is the title of the menu page.
const MainTitle = "Меню"

var (
	_ View           = (*MainView)(nil)
	_ Searcher       = (*MainView)(nil)
	_ CategoryPicker = (*MainView)(nil)
	_ Pager          = (*MainView)(nil)
)

// MainView is the menu: search box, category navigation and a paginated card list.
type MainView struct {
	*base
	state *watch.Handle
}

// NewMainView builds the menu and selects the "all" category, which loads the
// first page.
func NewMainView(shop *Shop, route domain.Route) (*MainView, error) {
	v := &MainView{base: newBase(shop, MainTitle, route)}
	if err := v.watchApp(v.render); err != nil {
		return nil, err
	}

	state, err := watch.Observe(newMainState(shop.pageSize), v.onState, watch.WithLogger(shop.logger))
	if err != nil {
		v.base.Destroy()
		return nil, zerr.Wrap(err, "failed to observe menu state")
	}
	v.state = state

	v.state.Set(keyCategoryID, float64(domain.AllCategories))
	return v, nil
}

func (v *MainView) onState(c watch.Change) {
	switch c.Path.String() {
	case keySearchQuery:
		v.state.Set(keyLoading, true)
		query, _ := v.state.Get(keySearchQuery).(string)
		var list []any
		for _, p := range v.shop.all() {
			if domain.MatchesQuery(productName(p), query) {
				list = append(list, p)
			}
		}
		v.state.Set(keyLoading, false)
		v.state.Set(keyList, value.ArrayOf(list...))
		v.state.Set(keyCountPage, float64(domain.PageCount(len(list), v.pageSize())))
		v.state.Set(keyOffset, 0.0)

	case keyCategoryID:
		v.state.Set(keyLoading, true)
		category := value.ToInteger(v.state.Get(keyCategoryID))
		list := v.shop.all()
		if category != domain.AllCategories {
			var filtered []any
			for _, p := range list {
				if value.ToInteger(field(p, "category")) == category {
					filtered = append(filtered, p)
				}
			}
			list = filtered
		}
		v.state.Set(keyLoading, false)
		v.state.Set(keyOffset, 0.0)
		v.state.Set(keyList, value.ArrayOf(list...))
		v.state.Set(keyCountPage, float64(domain.PageCount(len(list), v.pageSize())))

	case keyList, keyLoading, keyOffset:
		n := len(items(v.state.Get(keyList)))
		v.state.Set(keyCountPage, float64(domain.PageCount(n, v.pageSize())))
		v.render()
	}
}

func (v *MainView) pageSize() int {
	return value.ToInteger(v.state.Get(keyCountElInPage))
}

func (v *MainView) page() pageView {
	return pageView{
		list:      items(v.state.Get(keyList)),
		offset:    value.ToInteger(v.state.Get(keyOffset)),
		countPage: value.ToInteger(v.state.Get(keyCountPage)),
		size:      v.pageSize(),
		loading:   value.Truthy(v.state.Get(keyLoading)),
		paginated: true,
	}
}

func (v *MainView) render() {
	if v.state == nil {
		return
	}
	p := v.page()
	var visible []string
	if !p.loading {
		visible = ids(p.visible())
	}
	v.publish(joinSections(
		v.shop.header(v.cart().len()),
		v.shop.search(v.state.Get(keySearchQuery)),
		v.shop.categoryNav(v.state.Get(keyCategoryID)),
		v.shop.cardList(p, v.cart()),
	), visible)
}

// Search filters the menu by a case-insensitive name match.
func (v *MainView) Search(query string) error {
	v.state.Set(keySearchQuery, strings.ToLower(query))
	return nil
}

// SelectCategory shows the products of one category; 0 selects all.
func (v *MainView) SelectCategory(id int) error {
	if _, ok := v.shop.catalog.Category(id); !ok && id != domain.AllCategories {
		return zerr.With(zerr.Wrap(domain.ErrCategoryNotFound, "category"), "category_id", id)
	}
	v.state.Set(keyCategoryID, float64(id))
	return nil
}

// NextPage moves to the following page.
func (v *MainView) NextPage() error {
	p := v.page()
	if !domain.HasNextPage(p.offset, p.countPage) {
		return zerr.Wrap(domain.ErrNotAvailable, "no next page")
	}
	v.state.Set(keyOffset, float64(p.offset+1))
	return nil
}

// PrevPage moves to the preceding page.
func (v *MainView) PrevPage() error {
	p := v.page()
	if !domain.HasPrevPage(p.offset) {
		return zerr.Wrap(domain.ErrNotAvailable, "no previous page")
	}
	v.state.Set(keyOffset, float64(p.offset-1))
	return nil
}

// Destroy stops observing the app state and the menu state.
func (v *MainView) Destroy() {
	v.base.Destroy()
	watch.Unsubscribe(v.state)
}
