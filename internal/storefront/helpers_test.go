package storefront_test

import (
	"io"
	"sync"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/storefront"
	"github.com/Viskhan-95/golden-chicken/internal/ui/output"
)

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	c, err := domain.NewCatalog(
		[]domain.Product{
			{ID: "b1", Name: "ГОЛДЕН ЧИКЕН", Category: 1, Price: 118},
			{ID: "b2", Name: "ЧИКЕН БУРГЕР", Category: 1, Price: 92},
			{ID: "b3", Name: "ФИШ БУРГЕР", Category: 1, Price: 114},
			{ID: "p1", Name: "МАРГАРИТА", Category: 2, Price: 320, Description: "Томаты, моцарелла, базилик"},
			{ID: "p2", Name: "ПЕППЕРОНИ", Category: 2, Price: 390},
			{ID: "p3", Name: "ЧЕТЫРЕ СЫРА", Category: 2, Price: 420},
			{ID: "p4", Name: "ГАВАЙСКАЯ", Category: 2, Price: 380},
		},
		[]domain.Category{{ID: 0, Name: "Все"}, {ID: 1, Name: "Бургеры"}, {ID: 2, Name: "Пиццы"}},
		1,
	)
	require.NoError(t, err)
	return c
}

func plainRenderer() func() termenv.Profile {
	return func() termenv.Profile { return termenv.Ascii }
}

func testShop(t *testing.T) *storefront.Shop {
	t.Helper()
	return storefront.NewShop(testCatalog(t),
		storefront.WithPageSize(3),
		storefront.WithRenderer(output.Renderer(io.Discard, plainRenderer())),
	)
}

func mustRoute(t *testing.T, fragment string) domain.Route {
	t.Helper()
	r, err := domain.ParseRoute(fragment)
	require.NoError(t, err)
	return r
}

// recordingScreen keeps every frame and notice it is given.
type recordingScreen struct {
	mu      sync.Mutex
	frames  []domain.Frame
	notices []string
}

func (s *recordingScreen) Render(frame domain.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, frame)
	return nil
}

func (s *recordingScreen) Notice(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, msg)
	return nil
}

func (s *recordingScreen) titles() []string {
	out := make([]string, len(s.frames))
	for i, f := range s.frames {
		out[i] = f.Title
	}
	return out
}

func (s *recordingScreen) last() domain.Frame {
	return s.frames[len(s.frames)-1]
}
