package domain

// PageMeta describes one offset-based page of a listing.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// NewPageMeta computes page metadata for a listing of total rows. Page and
// perPage are clamped to at least 1; LastPage is at least 1 even when the
// listing is empty.
func NewPageMeta(page, perPage, total int) PageMeta {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	last := (total + perPage - 1) / perPage
	if last < 1 {
		last = 1
	}
	return PageMeta{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    last,
	}
}

// Offset returns the row offset of the page.
func (m PageMeta) Offset() int {
	return (m.CurrentPage - 1) * m.PerPage
}
