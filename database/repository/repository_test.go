package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPageCursors(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		total    int64
		wantNext *string
		wantPrev *string
	}{
		{"single page", 1, 20, 5, nil, nil},
		{"first of many", 1, 20, 45,
			strPtr("/api/bookings/?page=2&page_size=20"), nil},
		{"middle page", 2, 20, 45,
			strPtr("/api/bookings/?page=3&page_size=20"),
			strPtr("/api/bookings/?page=1&page_size=20")},
		{"last page", 3, 20, 45, nil,
			strPtr("/api/bookings/?page=2&page_size=20")},
		{"exact boundary", 2, 20, 40, nil,
			strPtr("/api/bookings/?page=1&page_size=20")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, prev := pageCursors("/api/bookings/", tt.page, tt.pageSize, tt.total)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantPrev, prev)
		})
	}
}

func TestWireMapFlattensDecodedDocuments(t *testing.T) {
	checked := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := bson.M{
		"id":       "p1",
		"category": bson.D{{Key: "name", Value: "Plumbing"}},
		"variants": bson.A{
			bson.D{{Key: "sku", Value: "V1"}},
			bson.M{"sku": "V2"},
		},
		"tags":       bson.A{"home", "repair"},
		"stamped_at": primitive.NewDateTimeFromTime(checked),
	}

	m := wireMap(raw)

	category, ok := m["category"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Plumbing", category["name"])

	variants, ok := m["variants"].([]any)
	require.True(t, ok)
	require.Len(t, variants, 2)
	first, ok := variants[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "V1", first["sku"])

	tags, ok := m["tags"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"home", "repair"}, tags)

	stamped, ok := m["stamped_at"].(time.Time)
	require.True(t, ok)
	assert.True(t, stamped.Equal(checked))
}

func strPtr(s string) *string { return &s }
