package repository

// Page carries the page/limit half of the pagination contract. Zero or
// negative values are placeholders for "use the default"; list endpoints call
// Normalize before querying.
type Page struct {
	Number int
	Size   int
}

// Normalize applies the contract defaults: page numbers start at 1 and a
// non-positive size falls back to the per-resource default. Malformed query
// input therefore degrades to the first default page instead of erroring.
func (p Page) Normalize(defaultSize int) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = defaultSize
	}

	return p
}

// Offset computes the skip for the underlying query.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// PageResult is the other half of the contract: the requested slice plus the
// total count of the full filtered set, so callers can compute total pages.
type PageResult[T any] struct {
	Items      []T
	TotalCount int64
	Page       int
	Size       int
}

// TotalPages is ceil(TotalCount / Size).
func (r PageResult[T]) TotalPages() int64 {
	if r.Size < 1 {
		return 0
	}

	return (r.TotalCount + int64(r.Size) - 1) / int64(r.Size)
}
