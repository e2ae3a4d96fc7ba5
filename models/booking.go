package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BookingStatus is the wire status of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusDisputed   BookingStatus = "disputed"
)

// ParseBookingStatus maps a wire string to a status. Matching is
// case-insensitive; anything unrecognized degrades to pending with a
// warning so a new backend status never breaks the client.
func ParseBookingStatus(s string) BookingStatus {
	switch BookingStatus(normalizeEnum(s)) {
	case BookingStatusPending:
		return BookingStatusPending
	case BookingStatusConfirmed:
		return BookingStatusConfirmed
	case BookingStatusInProgress:
		return BookingStatusInProgress
	case BookingStatusCompleted:
		return BookingStatusCompleted
	case BookingStatusCancelled:
		return BookingStatusCancelled
	case BookingStatusDisputed:
		return BookingStatusDisputed
	default:
		log.Warn("unknown booking status, defaulting to pending", zap.String("value", s))
		return BookingStatusPending
	}
}

func (s BookingStatus) Value() string { return string(s) }

func (s BookingStatus) DisplayText() string {
	switch s {
	case BookingStatusPending:
		return "Pending"
	case BookingStatusConfirmed:
		return "Confirmed"
	case BookingStatusInProgress:
		return "In Progress"
	case BookingStatusCompleted:
		return "Completed"
	case BookingStatusCancelled:
		return "Cancelled"
	case BookingStatusDisputed:
		return "Disputed"
	default:
		return "Pending"
	}
}

// Color is a cosmetic hex tag for UI badges, never used for logic.
func (s BookingStatus) Color() string {
	switch s {
	case BookingStatusPending:
		return "#FFA500"
	case BookingStatusConfirmed:
		return "#2196F3"
	case BookingStatusInProgress:
		return "#9C27B0"
	case BookingStatusCompleted:
		return "#4CAF50"
	case BookingStatusCancelled:
		return "#9E9E9E"
	case BookingStatusDisputed:
		return "#F44336"
	default:
		return "#FFA500"
	}
}

// Booking is a confirmed or requested service booking.
type Booking struct {
	ID                 string
	Service            string
	Customer           *string
	Provider           *string
	BookingDate        string // "2006-01-02"
	StartTime          string // "15:04"
	EndTime            string // "15:04"
	Amount             decimal.Decimal
	Address            string
	Latitude           *float64
	Longitude          *float64
	Requirements       string
	Notes              *string
	Status             BookingStatus
	RescheduleReason   *string
	CancellationReason *string
	Bid                *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// BookingFromMap parses a booking from a decoded wire payload.
func BookingFromMap(m map[string]any) (*Booking, error) {
	id, err := reqString(m, "id")
	if err != nil {
		return nil, err
	}
	service, err := reqString(m, "service")
	if err != nil {
		return nil, err
	}
	return &Booking{
		ID:                 id,
		Service:            service,
		Customer:           optStringPtr(m, "customer"),
		Provider:           optStringPtr(m, "provider"),
		BookingDate:        optString(m, "booking_date"),
		StartTime:          optString(m, "start_time"),
		EndTime:            optString(m, "end_time"),
		Amount:             optDecimal(m, "amount"),
		Address:            optString(m, "address"),
		Latitude:           optFloatPtr(m, "latitude"),
		Longitude:          optFloatPtr(m, "longitude"),
		Requirements:       optString(m, "requirements"),
		Notes:              optStringPtr(m, "notes"),
		Status:             ParseBookingStatus(optString(m, "status")),
		RescheduleReason:   optStringPtr(m, "reschedule_reason"),
		CancellationReason: optStringPtr(m, "cancellation_reason"),
		Bid:                optStringPtr(m, "bid"),
		CreatedAt:          optTime(m, "created_at"),
		UpdatedAt:          optTime(m, "updated_at"),
	}, nil
}

// ToMap serializes the booking to its sparse wire shape.
func (b *Booking) ToMap() map[string]any {
	m := map[string]any{
		"id":           b.ID,
		"service":      b.Service,
		"booking_date": b.BookingDate,
		"start_time":   b.StartTime,
		"end_time":     b.EndTime,
		"amount":       b.Amount.InexactFloat64(),
		"address":      b.Address,
		"requirements": b.Requirements,
		"status":       b.Status.Value(),
		"created_at":   formatWireTime(b.CreatedAt),
		"updated_at":   formatWireTime(b.UpdatedAt),
	}
	putStringPtr(m, "customer", b.Customer)
	putStringPtr(m, "provider", b.Provider)
	putFloatPtr(m, "latitude", b.Latitude)
	putFloatPtr(m, "longitude", b.Longitude)
	putStringPtr(m, "notes", b.Notes)
	putStringPtr(m, "reschedule_reason", b.RescheduleReason)
	putStringPtr(m, "cancellation_reason", b.CancellationReason)
	putStringPtr(m, "bid", b.Bid)
	return m
}

func (b *Booking) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.ToMap())
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := BookingFromMap(raw)
	if err != nil {
		return err
	}
	*b = *parsed
	return nil
}

// IsValidBookingTime reports whether the booked window is usable: the end
// must be strictly after the start on the same date, and the date must not
// be more than one day in the past.
func (b *Booking) IsValidBookingTime() bool {
	return b.IsValidBookingTimeAt(time.Now())
}

// IsValidBookingTimeAt is IsValidBookingTime anchored at an explicit "now".
func (b *Booking) IsValidBookingTimeAt(now time.Time) bool {
	date, err := time.Parse("2006-01-02", b.BookingDate)
	if err != nil {
		return false
	}
	start, err := time.Parse("15:04", b.StartTime)
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", b.EndTime)
	if err != nil {
		return false
	}
	if !end.After(start) {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !date.Before(today.AddDate(0, 0, -1))
}

// FormattedAmount renders the booking amount with the given currency.
func (b *Booking) FormattedAmount(currency string) string {
	return FormatCurrencyAmount(b.Amount, currency)
}

// ScheduleText renders the window for list rows, e.g. "2026-03-01 10:00–11:00".
func (b *Booking) ScheduleText() string {
	return b.BookingDate + " " + b.StartTime + "–" + b.EndTime
}

// CreateBookingRequest is the payload for creating a booking.
type CreateBookingRequest struct {
	Service      string   `json:"service" validate:"required"`
	BookingDate  string   `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime    string   `json:"start_time" validate:"required,datetime=15:04"`
	EndTime      string   `json:"end_time" validate:"required,datetime=15:04"`
	Amount       float64  `json:"amount" validate:"gte=0"`
	Address      string   `json:"address" validate:"required"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Requirements string   `json:"requirements"`
	Notes        *string  `json:"notes,omitempty"`
	Bid          *string  `json:"bid,omitempty"`
}

func (r *CreateBookingRequest) ToMap() map[string]any {
	m := map[string]any{
		"service":      r.Service,
		"booking_date": r.BookingDate,
		"start_time":   r.StartTime,
		"end_time":     r.EndTime,
		"amount":       r.Amount,
		"address":      r.Address,
		"requirements": r.Requirements,
	}
	putFloatPtr(m, "latitude", r.Latitude)
	putFloatPtr(m, "longitude", r.Longitude)
	putStringPtr(m, "notes", r.Notes)
	putStringPtr(m, "bid", r.Bid)
	return m
}

// UpdateBookingRequest carries only the fields being changed.
type UpdateBookingRequest struct {
	BookingDate        *string  `json:"booking_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime          *string  `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime            *string  `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	Amount             *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Address            *string  `json:"address,omitempty"`
	Requirements       *string  `json:"requirements,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
	Status             *string  `json:"status,omitempty"`
	RescheduleReason   *string  `json:"reschedule_reason,omitempty"`
	CancellationReason *string  `json:"cancellation_reason,omitempty"`
}

func (r *UpdateBookingRequest) ToMap() map[string]any {
	m := map[string]any{}
	putStringPtr(m, "booking_date", r.BookingDate)
	putStringPtr(m, "start_time", r.StartTime)
	putStringPtr(m, "end_time", r.EndTime)
	putFloatPtr(m, "amount", r.Amount)
	putStringPtr(m, "address", r.Address)
	putStringPtr(m, "requirements", r.Requirements)
	putStringPtr(m, "notes", r.Notes)
	putStringPtr(m, "status", r.Status)
	putStringPtr(m, "reschedule_reason", r.RescheduleReason)
	putStringPtr(m, "cancellation_reason", r.CancellationReason)
	return m
}

// BookingListResponse is the standard pagination envelope for bookings.
type BookingListResponse struct {
	Count    int
	Next     *string
	Previous *string
	Results  []Booking
}

// BookingListResponseFromMap parses a paginated booking list. Entries that
// fail required-field parsing are dropped with a warning rather than
// failing the whole page.
func BookingListResponseFromMap(m map[string]any) *BookingListResponse {
	resp := &BookingListResponse{
		Count:    optInt(m, "count", 0),
		Next:     optStringPtr(m, "next"),
		Previous: optStringPtr(m, "previous"),
		Results:  []Booking{},
	}
	for _, item := range optMapSlice(m, "results") {
		b, err := BookingFromMap(item)
		if err != nil {
			log.Warn("skipping malformed booking in list", zap.Error(err))
			continue
		}
		resp.Results = append(resp.Results, *b)
	}
	return resp
}

func (r *BookingListResponse) ToMap() map[string]any {
	results := make([]any, 0, len(r.Results))
	for i := range r.Results {
		results = append(results, r.Results[i].ToMap())
	}
	m := map[string]any{
		"count":   r.Count,
		"results": results,
	}
	putStringPtr(m, "next", r.Next)
	putStringPtr(m, "previous", r.Previous)
	return m
}

func (r *BookingListResponse) HasNext() bool     { return hasCursor(r.Next) }
func (r *BookingListResponse) HasPrevious() bool { return hasCursor(r.Previous) }

// StatusCounts folds the page into per-status totals for dashboards.
func (r *BookingListResponse) StatusCounts() map[BookingStatus]int {
	counts := make(map[BookingStatus]int)
	for i := range r.Results {
		counts[r.Results[i].Status]++
	}
	return counts
}
