package repository

// List windows default to DefaultPageLimit items and never exceed MaxPageLimit.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Page is a limit/offset window over a listing ordered by id. The zero value
// asks for the first DefaultPageLimit items.
type Page struct {
	Limit  int
	Offset int
}

// Normalize fills in a missing limit, caps an oversized one at MaxPageLimit
// and clamps a negative offset to zero. Stores call it on every page they get.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageResult is one window of a listing plus the size of the whole listing.
type PageResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
