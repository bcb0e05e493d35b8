package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/placemate/placemate/internal/app/models/dto"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 1
)

// ParsePaginationParams extracts 1-based page and page_size from the request.
func ParsePaginationParams(c *gin.Context) (page, size int) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	sizeStr := c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize))
	size, err = strconv.Atoi(sizeStr)
	if err != nil || size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return page, size
}

// CalculateOffsetLimit converts a 1-based page number to a SQL offset and limit.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	if size <= 0 || size > MaxPageSize {
		limit = DefaultPageSize
	} else {
		limit = size
	}
	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * limit)
	return offset, limit
}

// NewPaginationInfo builds the pagination block for list responses. Next and
// previous hold page numbers when the respective page exists.
func NewPaginationInfo(c *gin.Context, totalItems int64, page, size int) *dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	} else if page == 1 {
		totalPages = 1
	}

	currentPage := page
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	info := &dto.PaginationInfo{
		Count:       totalItems,
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		PageSize:    size,
	}

	if currentPage < totalPages {
		info.Next = pageURL(c, currentPage+1, size)
	}
	if currentPage > 1 {
		info.Previous = pageURL(c, currentPage-1, size)
	}

	return info
}

func pageURL(c *gin.Context, page, size int) *string {
	if c == nil || c.Request == nil {
		return nil
	}
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(size))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
