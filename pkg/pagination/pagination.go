package pagination

// The listing endpoints page by number rather than by cursor: the catalog is
// small, rows are ordered by their stable integer id, and the UI needs a
// total page count.

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 5
	// MaxPerPage caps how many rows any listing query can request.
	MaxPerPage = 100
)

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page    int
	PerPage int
}

// Normalize clamps the parameters into a usable range.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset converts the normalized page number into a row offset.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Limit returns the normalized page size.
func (p Params) Limit() int {
	return p.Normalize().PerPage
}

// TotalPages computes how many pages the given row count spans.
func TotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}
	return pages
}

// Meta is the pagination block returned alongside listing payloads.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta assembles the response metadata for a normalized query.
func NewMeta(params Params, total int64) Meta {
	n := params.Normalize()
	return Meta{
		Page:       n.Page,
		PerPage:    n.PerPage,
		Total:      total,
		TotalPages: TotalPages(total, n.PerPage),
	}
}
