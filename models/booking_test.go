package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullBookingMap() map[string]any {
	return map[string]any{
		"id":                  "bk-001",
		"service":             "svc-42",
		"customer":            "cust-7",
		"provider":            "prov-9",
		"booking_date":        "2026-09-15",
		"start_time":          "10:00",
		"end_time":            "11:30",
		"amount":              150.50,
		"address":             "12 Rose St",
		"latitude":            -1.28,
		"longitude":           36.82,
		"requirements":        "bring ladder",
		"notes":               "gate code 4411",
		"status":              "confirmed",
		"reschedule_reason":   "rain",
		"cancellation_reason": "none",
		"bid":                 "bid-3",
		"created_at":          "2026-08-01T09:00:00Z",
		"updated_at":          "2026-08-02T09:00:00Z",
	}
}

func TestBookingFromMap_full(t *testing.T) {
	b, err := BookingFromMap(fullBookingMap())
	require.NoError(t, err)

	assert.Equal(t, "bk-001", b.ID)
	assert.Equal(t, "svc-42", b.Service)
	require.NotNil(t, b.Customer)
	assert.Equal(t, "cust-7", *b.Customer)
	assert.Equal(t, BookingStatusConfirmed, b.Status)
	assert.True(t, b.Amount.Equal(decimal.NewFromFloat(150.50)))
	assert.Equal(t, "2026-08-01T09:00:00Z", formatWireTime(b.CreatedAt))
}

func TestBookingFromMap_missingRequired(t *testing.T) {
	m := fullBookingMap()
	delete(m, "id")
	_, err := BookingFromMap(m)
	require.Error(t, err)

	m = fullBookingMap()
	delete(m, "service")
	_, err = BookingFromMap(m)
	require.Error(t, err)
}

func TestBookingFromMap_minimal(t *testing.T) {
	b, err := BookingFromMap(map[string]any{"id": "bk-min", "service": "svc-1"})
	require.NoError(t, err)

	assert.Nil(t, b.Customer)
	assert.Nil(t, b.Provider)
	assert.Nil(t, b.Notes)
	assert.Nil(t, b.Bid)
	assert.True(t, b.Amount.IsZero())
	assert.Equal(t, BookingStatusPending, b.Status)
	// Missing timestamps fall back to now.
	assert.WithinDuration(t, time.Now(), b.CreatedAt, 5*time.Second)

	// Nil optionals stay off the wire.
	m := b.ToMap()
	_, hasNotes := m["notes"]
	assert.False(t, hasNotes)
	_, hasCustomer := m["customer"]
	assert.False(t, hasCustomer)
}

func TestBooking_roundTrip(t *testing.T) {
	first, err := BookingFromMap(fullBookingMap())
	require.NoError(t, err)

	second, err := BookingFromMap(first.ToMap())
	require.NoError(t, err)
	require.Equal(t, first, second)

	// Serialization is stable.
	require.Equal(t, first.ToMap(), first.ToMap())
}

func TestBooking_numericString(t *testing.T) {
	m := fullBookingMap()
	m["amount"] = "150.50"
	b, err := BookingFromMap(m)
	require.NoError(t, err)
	assert.Equal(t, "150.50", b.Amount.StringFixed(2))

	m["amount"] = "not a number"
	b, err = BookingFromMap(m)
	require.NoError(t, err)
	assert.True(t, b.Amount.IsZero())
}

func TestParseBookingStatus(t *testing.T) {
	tests := []struct {
		input string
		want  BookingStatus
	}{
		{"pending", BookingStatusPending},
		{"confirmed", BookingStatusConfirmed},
		{"in_progress", BookingStatusInProgress},
		{"completed", BookingStatusCompleted},
		{"cancelled", BookingStatusCancelled},
		{"disputed", BookingStatusDisputed},
		{"CONFIRMED", BookingStatusConfirmed},
		{" Completed ", BookingStatusCompleted},
		{"", BookingStatusPending},
		{"garbage", BookingStatusPending},
		{"!@#$%", BookingStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBookingStatus(tt.input))
		})
	}
}

func TestBookingStatus_wireValuesRoundTrip(t *testing.T) {
	all := []BookingStatus{
		BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled, BookingStatusDisputed,
	}
	for _, s := range all {
		assert.Equal(t, s, ParseBookingStatus(s.Value()))
		assert.NotEmpty(t, s.DisplayText())
		assert.NotEmpty(t, s.Color())
	}
}

func TestBooking_isValidBookingTime(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	today := "2026-09-15"

	tests := []struct {
		name  string
		date  string
		start string
		end   string
		want  bool
	}{
		{"end before start", today, "10:00", "09:00", false},
		{"end equals start", today, "10:00", "10:00", false},
		{"end after start", today, "10:00", "11:00", true},
		{"yesterday allowed", "2026-09-14", "10:00", "11:00", true},
		{"two days past", "2026-09-13", "10:00", "11:00", false},
		{"future date", "2026-09-20", "08:00", "09:00", true},
		{"bad date", "15/09/2026", "10:00", "11:00", false},
		{"bad time", today, "10am", "11:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Booking{BookingDate: tt.date, StartTime: tt.start, EndTime: tt.end}
			assert.Equal(t, tt.want, b.IsValidBookingTimeAt(now))
		})
	}
}

func TestBookingListResponse(t *testing.T) {
	next := "https://api.prbal.app/bookings/?page=2"
	resp := BookingListResponseFromMap(map[string]any{
		"count":    3,
		"next":     next,
		"previous": nil,
		"results": []any{
			fullBookingMap(),
			map[string]any{"id": "bk-2", "service": "svc-1", "status": "completed"},
			map[string]any{"service": "orphan"}, // missing id, dropped
		},
	})

	assert.Equal(t, 3, resp.Count)
	assert.Len(t, resp.Results, 2)
	assert.True(t, resp.HasNext())
	assert.False(t, resp.HasPrevious())

	counts := resp.StatusCounts()
	assert.Equal(t, 1, counts[BookingStatusConfirmed])
	assert.Equal(t, 1, counts[BookingStatusCompleted])
}

func TestBookingListResponse_cursorDerivation(t *testing.T) {
	empty := ""
	url := "http://api/bookings?page=2"

	assert.False(t, (&BookingListResponse{}).HasNext())
	assert.False(t, (&BookingListResponse{Next: &empty}).HasNext())
	assert.True(t, (&BookingListResponse{Next: &url}).HasNext())
}

func TestCreateBookingRequest_validate(t *testing.T) {
	req := CreateBookingRequest{
		Service:     "svc-1",
		BookingDate: "2026-09-15",
		StartTime:   "10:00",
		EndTime:     "11:00",
		Amount:      25,
		Address:     "12 Rose St",
	}
	require.NoError(t, ValidateRequest(&req))

	req.BookingDate = "not-a-date"
	require.Error(t, ValidateRequest(&req))

	req.BookingDate = "2026-09-15"
	req.Service = ""
	require.Error(t, ValidateRequest(&req))
}

func TestUpdateBookingRequest_sparse(t *testing.T) {
	notes := "new notes"
	req := UpdateBookingRequest{Notes: &notes}
	m := req.ToMap()
	assert.Equal(t, map[string]any{"notes": "new notes"}, m)
}
