package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullServiceMap() map[string]any {
	return map[string]any{
		"id":          "svc-42",
		"name":        "Deep Home Cleaning",
		"description": "Full house deep clean",
		"category":    map[string]any{"id": "cat-1", "name": "Cleaning"},
		"subcategories": []any{
			map[string]any{"id": "sub-1", "name": "Homes"},
		},
		"provider":     map[string]any{"id": "prov-9", "name": "Sparkle Co"},
		"hourly_rate":  25.0,
		"currency":     "USD",
		"location":     "Nairobi",
		"latitude":     -1.28,
		"longitude":    36.82,
		"tags":         []any{"cleaning", "home"},
		"images":       []any{"https://cdn.prbal.app/s1.jpg"},
		"status":       "active",
		"is_featured":  true,
		"rating":       4.8,
		"review_count": 120,
		"created_at":   "2026-06-01T00:00:00Z",
		"updated_at":   "2026-06-15T00:00:00Z",
	}
}

func TestServiceFromMap(t *testing.T) {
	s, err := ServiceFromMap(fullServiceMap())
	require.NoError(t, err)

	assert.Equal(t, "Deep Home Cleaning", s.Name)
	assert.Equal(t, "Cleaning", s.CategoryName())
	assert.Equal(t, "Sparkle Co", s.ProviderName())
	assert.Equal(t, "$25.00/hr", s.FormattedRate())
}

func TestService_roundTrip(t *testing.T) {
	first, err := ServiceFromMap(fullServiceMap())
	require.NoError(t, err)
	second, err := ServiceFromMap(first.ToMap())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestService_looseMapGetters(t *testing.T) {
	s := Service{}
	assert.Equal(t, "", s.CategoryName())
	assert.Equal(t, "", s.ProviderName())

	// Fall back to username when the projection has no name.
	s.Provider = map[string]any{"username": "sparkle_co"}
	assert.Equal(t, "sparkle_co", s.ProviderName())
}

func TestServiceCategory(t *testing.T) {
	c, err := ServiceCategoryFromMap(map[string]any{
		"id":          "cat-1",
		"name":        "Cleaning",
		"description": "Home and office cleaning",
		"icon":        "broom",
		"sort_order":  2,
		"is_active":   true,
		"created_at":  "2026-01-01T00:00:00Z",
		"updated_at":  "2026-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, c.SortOrder)

	again, err := ServiceCategoryFromMap(c.ToMap())
	require.NoError(t, err)
	require.Equal(t, c, again)

	_, err = ServiceCategoryFromMap(map[string]any{"id": "cat-2"})
	require.Error(t, err) // name required
}

func TestServiceRequest(t *testing.T) {
	r, err := ServiceRequestFromMap(map[string]any{
		"id":             "req-1",
		"title":          "Need a plumber",
		"description":    "Leaking sink",
		"category":       map[string]any{"id": "cat-3", "name": "Plumbing"},
		"customer":       map[string]any{"id": "cust-7", "username": "jdoe"},
		"budget_min":     50.0,
		"budget_max":     100.0,
		"currency":       "USD",
		"urgency":        "high",
		"status":         "open",
		"requested_date": "2026-09-01",
		"location":       "Westlands",
		"created_at":     "2026-08-20T00:00:00Z",
		"updated_at":     "2026-08-20T00:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "Plumbing", r.CategoryName())
	assert.Equal(t, "jdoe", r.CustomerName())
	assert.Equal(t, "$50.00 – $100.00", r.BudgetText())

	again, err := ServiceRequestFromMap(r.ToMap())
	require.NoError(t, err)
	require.Equal(t, r, again)
}

func TestServiceListResponse(t *testing.T) {
	resp := ServiceListResponseFromMap(map[string]any{
		"count":    1,
		"next":     nil,
		"previous": "",
		"results":  []any{fullServiceMap()},
	})
	assert.Equal(t, 1, resp.Count)
	assert.Len(t, resp.Results, 1)
	assert.False(t, resp.HasNext())
	assert.False(t, resp.HasPrevious())
}
