package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "/api/bookings/", 1, 20},
		{"explicit", "/api/bookings/?page=3&page_size=50", 3, 50},
		{"garbage page", "/api/bookings/?page=abc", 1, 20},
		{"zero page", "/api/bookings/?page=0", 1, 20},
		{"negative page size", "/api/bookings/?page_size=-5", 1, 20},
		{"oversized page size clamps", "/api/bookings/?page_size=5000", 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := pageParams(newTestContext(t, tt.target))
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}
