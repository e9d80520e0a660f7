package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 0, 20, 0, 20},
		{"third page", 2, 20, 40, 20},
		{"negative page", -1, 20, 0, 20},
		{"zero size", 0, 0, 0, DefaultPageSize},
		{"oversized", 1, 500, uint64(DefaultPageSize), DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.size, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	if info.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d, want 2", info.CurrentPage)
	}
	if info.TotalPages != 5 {
		t.Errorf("TotalPages = %d, want 5", info.TotalPages)
	}
	if info.TotalItems != 45 {
		t.Errorf("TotalItems = %d, want 45", info.TotalItems)
	}

	empty := NewPaginationInfo(0, 0, 10)
	if empty.TotalPages != 0 {
		t.Errorf("empty TotalPages = %d, want 0", empty.TotalPages)
	}
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{"defaults", "", 0, DefaultPageSize},
		{"explicit", "page=3&size=25", 3, 25},
		{"garbage", "page=abc&size=xyz", 0, DefaultPageSize},
		{"out of range", "page=-2&size=1000", 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			page, size := ParsePaginationParams(c)
			if page != tt.wantPage || size != tt.wantSize {
				t.Errorf("ParsePaginationParams(%q) = (%d, %d), want (%d, %d)",
					tt.query, page, size, tt.wantPage, tt.wantSize)
			}
		})
	}
}
