package core

import "math"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest holds the `page` & `limit` query params of paginated endpoints.
type PageRequest struct {
	Page  int `json:"page" query:"page" validate:"min=1"`
	Limit int `json:"limit" query:"limit" validate:"min=1,max=100"`
}

// SetDefaults fills in unset params.
func (pr *PageRequest) SetDefaults() {
	if pr.Page == 0 {
		pr.Page = 1
	}
	if pr.Limit == 0 {
		pr.Limit = DefaultPageLimit
	}
}

// Clamp forces params into their valid range instead of rejecting them.
func (pr *PageRequest) Clamp() {
	pr.SetDefaults()
	if pr.Page < 1 {
		pr.Page = 1
	}
	if pr.Limit < 1 {
		pr.Limit = 1
	} else if pr.Limit > MaxPageLimit {
		pr.Limit = MaxPageLimit
	}
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

func NewPagination(pr PageRequest, total int) Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(pr.Limit)))
	return Pagination{
		Page:       pr.Page,
		Limit:      pr.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    pr.Page < totalPages,
	}
}

// Bounds returns the [start, end) slice bounds of the current page.
func (p Pagination) Bounds() (int, int) {
	start := (p.Page - 1) * p.Limit
	if start > p.Total {
		start = p.Total
	}
	end := start + p.Limit
	if end > p.Total {
		end = p.Total
	}
	return start, end
}
