package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/theshahinrg/crm-api/internal/constants"
)

// PaginationParams holds parsed pagination query parameters.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse describes the pagination section of list responses.
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetPaginationParams parses page/limit query parameters with sane bounds.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil || limit < 1 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
