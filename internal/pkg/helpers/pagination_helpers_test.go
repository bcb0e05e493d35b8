package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantPage int
		wantSize int
	}{
		{name: "defaults", url: "/items", wantPage: 1, wantSize: DefaultPageSize},
		{name: "explicit", url: "/items?page=3&page_size=50", wantPage: 3, wantSize: 50},
		{name: "size capped", url: "/items?page_size=500", wantPage: 1, wantSize: MaxPageSize},
		{name: "garbage falls back", url: "/items?page=abc&page_size=-1", wantPage: 1, wantSize: DefaultPageSize},
		{name: "zero page falls back", url: "/items?page=0", wantPage: 1, wantSize: DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := ParsePaginationParams(testContext(t, tt.url))
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 20)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(3, 25)
	assert.Equal(t, uint64(50), offset)
	assert.Equal(t, 25, limit)

	offset, limit = CalculateOffsetLimit(0, 0)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	c := testContext(t, "/items?page=2&page_size=10")

	info := NewPaginationInfo(c, 35, 2, 10)

	assert.Equal(t, int64(35), info.Count)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 4, info.TotalPages)
	assert.Equal(t, 10, info.PageSize)
	require.NotNil(t, info.Next)
	assert.Contains(t, *info.Next, "page=3")
	require.NotNil(t, info.Previous)
	assert.Contains(t, *info.Previous, "page=1")
}

func TestNewPaginationInfoEdges(t *testing.T) {
	c := testContext(t, "/items")

	empty := NewPaginationInfo(c, 0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Nil(t, empty.Next)
	assert.Nil(t, empty.Previous)

	beyond := NewPaginationInfo(c, 15, 9, 10)
	assert.Equal(t, 2, beyond.CurrentPage)
	assert.Nil(t, beyond.Next)
	require.NotNil(t, beyond.Previous)
}
