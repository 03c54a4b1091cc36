package service

import (
	"tracker-service/internal/repository"
	"tracker-service/pkg/config"
)

// Pagination is the page metadata returned by list endpoints.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
}

// clampPage bounds client-supplied pagination values: non-positive pages
// become 1, non-positive limits fall back to the configured default, and
// limits above the configured ceiling are cut to it.
func clampPage(page, limit int, cfg config.PageConfig) repository.Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = cfg.DefaultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	return repository.Page{Number: page, Limit: limit}
}

// paginate computes the page metadata for a result set.
func paginate(total int64, page repository.Page) Pagination {
	totalPages := int((total + int64(page.Limit) - 1) / int64(page.Limit))
	return Pagination{
		CurrentPage: page.Number,
		TotalPages:  totalPages,
		Limit:       page.Limit,
		Total:       total,
	}
}
