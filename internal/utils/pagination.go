package utils

// PageMetadata describes one page of a paginated listing.  TotalPages
// is ceil(TotalCount / PageSize); ItemCount is the number of items on
// this particular page, which may be smaller than PageSize on the last
// page.
type PageMetadata struct {
	ItemCount  int   `json:"itemCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int64 `json:"totalPages"`
	TotalCount int64 `json:"totalCount"`
}

// Page bundles a slice of results with its pagination metadata.
type Page[T any] struct {
	Data     []T          `json:"data"`
	Metadata PageMetadata `json:"metadata"`
}

// NewPage wraps data with computed pagination metadata.
func NewPage[T any](data []T, totalCount int64, page, pageSize int) Page[T] {
	totalPages := totalCount / int64(pageSize)
	if totalCount%int64(pageSize) != 0 {
		totalPages++
	}
	return Page[T]{
		Data: data,
		Metadata: PageMetadata{
			ItemCount:  len(data),
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
			TotalCount: totalCount,
		},
	}
}

// NormalizePaging applies the pagination defaults: page ≥ 1 (default 1)
// and pageSize ≥ 1 (default 10).
func NormalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize
}
