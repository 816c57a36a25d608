package domain

// Frame is one rendered storefront screen.
type Frame struct {
	// Title is the window title of the view, e.g. "Меню".
	Title string
	// Route is the fragment the frame was rendered for.
	Route string
	// Body is the rendered text.
	Body string
}
