package domain

type PaginationParams struct {
	Page  int `json:"page" query:"page"`
	Limit int `json:"limit" query:"limit"`
}

type PageMeta struct {
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

func NewPage[T any](data []T, params PaginationParams, totalItems int64) Page[T] {
	totalPages := int((totalItems + int64(params.Limit) - 1) / int64(params.Limit))

	if data == nil {
		data = []T{}
	}

	return Page[T]{
		Data: data,
		Meta: PageMeta{
			TotalItems:   totalItems,
			TotalPages:   totalPages,
			CurrentPage:  params.Page,
			ItemsPerPage: params.Limit,
		},
	}
}

// Validate clamps out-of-range values to sane defaults. Both page and limit
// are 1-based; defaultLimit comes from configuration, not a package global.
func (p *PaginationParams) Validate(defaultLimit int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
