// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPage    = 1
	defaultPerPage = 20
	maxPerPage     = 100
)

type PaginationParams struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Search  string `json:"search"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir"`
}

// GetPaginationParams reads page, per_page, search, sort_by and sort_dir
// from the query string, clamping to sane bounds.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = defaultPage
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	sortDir := c.DefaultQuery("sort_dir", "desc")
	if sortDir != "asc" && sortDir != "desc" {
		sortDir = "desc"
	}

	return PaginationParams{
		Page:    page,
		PerPage: perPage,
		Search:  c.Query("search"),
		SortBy:  c.DefaultQuery("sort_by", "created_at"),
		SortDir: sortDir,
	}
}

// ApplySort orders the query by params.SortBy if it is in allowedFields,
// falling back to created_at.
func ApplySort(query *gorm.DB, params PaginationParams, allowedFields []string) *gorm.DB {
	sortBy := "created_at"
	for _, field := range allowedFields {
		if params.SortBy == field {
			sortBy = field
			break
		}
	}
	return query.Order(sortBy + " " + params.SortDir)
}

func ApplyPagination(query *gorm.DB, params PaginationParams) *gorm.DB {
	offset := (params.Page - 1) * params.PerPage
	return query.Offset(offset).Limit(params.PerPage)
}

// BuildMeta assembles the pagination block of a list response.
func BuildMeta(params PaginationParams, total int64) *Meta {
	totalPages := int(math.Ceil(float64(total) / float64(params.PerPage)))
	return &Meta{
		Page:       params.Page,
		PerPage:    params.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
