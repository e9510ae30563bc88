package services

import "jobspy-client/models"

// DefaultPageSize is the number of listings revealed per page.
const DefaultPageSize = 20

// Window tracks how much of the filtered sequence is materialized for display.
// The visible slice is always a prefix of page*size elements.
type Window struct {
	page int
	size int
}

// NewWindow starts at page 1. A non-positive size means DefaultPageSize.
func NewWindow(size int) *Window {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Window{page: 1, size: size}
}

func (w *Window) Page() int { return w.page }

func (w *Window) Size() int { return w.size }

// VisibleCount is the number of elements shown out of total.
func (w *Window) VisibleCount(total int) int {
	n := w.page * w.size
	if n > total {
		return total
	}
	return n
}

// Visible returns the materialized prefix of jobs. Slicing past the end yields
// the whole sequence.
func (w *Window) Visible(jobs []models.JobResult) []models.JobResult {
	n := w.VisibleCount(len(jobs))
	return jobs[:n:n]
}

// HasMore reports whether a "load more" would reveal anything.
func (w *Window) HasMore(total int) bool {
	return w.VisibleCount(total) < total
}

// Remaining is the number of filtered elements not yet visible.
func (w *Window) Remaining(total int) int {
	return total - w.VisibleCount(total)
}

// LoadMore reveals one more page.
func (w *Window) LoadMore() {
	w.page++
}

// Reset goes back to the first page.
func (w *Window) Reset() {
	w.page = 1
}
