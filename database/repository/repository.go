// Package repository persists domain entities in MongoDB.
//
// Entities are stored as their sparse wire maps and rehydrated through the
// models FromMap factories, so documents written by older versions (or by
// hand) degrade the same way a loose server payload would instead of
// failing a struct decode.
package repository

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const queryTimeout = 5 * time.Second

// normalizeValue converts the driver's decoded container types (bson.D,
// bson.M, bson.A, BSON dates) into the plain map and slice shapes the
// model factories expect.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = normalizeValue(val)
		}
		return m
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	case bson.A:
		s := make([]any, 0, len(t))
		for _, item := range t {
			s = append(s, normalizeValue(item))
		}
		return s
	case primitive.DateTime:
		return t.Time().UTC()
	default:
		return v
	}
}

// wireMap flattens a decoded document into a plain wire map.
func wireMap(raw bson.M) map[string]any {
	return normalizeValue(raw).(map[string]any)
}

// pageCursors builds DRF-style next/previous page URLs for a list
// endpoint. A nil cursor means there is no such page.
func pageCursors(path string, page, pageSize int, total int64) (next, previous *string) {
	if int64(page*pageSize) < total {
		n := fmt.Sprintf("%s?page=%d&page_size=%d", path, page+1, pageSize)
		next = &n
	}
	if page > 1 {
		p := fmt.Sprintf("%s?page=%d&page_size=%d", path, page-1, pageSize)
		previous = &p
	}
	return next, previous
}
