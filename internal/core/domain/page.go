package domain

// PageCount returns how many pages of size items n items fill.
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// PageBounds returns the [start, end) slice bounds of page offset.
// A page that would be empty selects the whole list instead, so a stale
// offset never shows a blank grid.
func PageBounds(offset, size, n int) (start, end int) {
	if size <= 0 || offset < 0 {
		return 0, n
	}
	start = offset * size
	if start >= n {
		return 0, n
	}
	return start, min(start+size, n)
}

// HasPrevPage reports whether a page precedes offset.
func HasPrevPage(offset int) bool {
	return offset > 0
}

// HasNextPage reports whether a page follows offset.
func HasNextPage(offset, count int) bool {
	return offset < count-1
}
