package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentStatus is the wire status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusProcessing    PaymentStatus = "processing"
	PaymentStatusCompleted     PaymentStatus = "completed"
	PaymentStatusFailed        PaymentStatus = "failed"
	PaymentStatusCancelled     PaymentStatus = "cancelled"
	PaymentStatusRefunded      PaymentStatus = "refunded"
	PaymentStatusPartialRefund PaymentStatus = "partial_refund"
)

// ParsePaymentStatus maps a wire string to a status; unknown input
// degrades to pending with a warning.
func ParsePaymentStatus(s string) PaymentStatus {
	switch PaymentStatus(normalizeEnum(s)) {
	case PaymentStatusPending:
		return PaymentStatusPending
	case PaymentStatusProcessing:
		return PaymentStatusProcessing
	case PaymentStatusCompleted:
		return PaymentStatusCompleted
	case PaymentStatusFailed:
		return PaymentStatusFailed
	case PaymentStatusCancelled:
		return PaymentStatusCancelled
	case PaymentStatusRefunded:
		return PaymentStatusRefunded
	case PaymentStatusPartialRefund:
		return PaymentStatusPartialRefund
	default:
		log.Warn("unknown payment status, defaulting to pending", zap.String("value", s))
		return PaymentStatusPending
	}
}

func (s PaymentStatus) Value() string { return string(s) }

func (s PaymentStatus) DisplayText() string {
	switch s {
	case PaymentStatusProcessing:
		return "Processing"
	case PaymentStatusCompleted:
		return "Completed"
	case PaymentStatusFailed:
		return "Failed"
	case PaymentStatusCancelled:
		return "Cancelled"
	case PaymentStatusRefunded:
		return "Refunded"
	case PaymentStatusPartialRefund:
		return "Partially Refunded"
	default:
		return "Pending"
	}
}

func (s PaymentStatus) Color() string {
	switch s {
	case PaymentStatusProcessing:
		return "#2196F3"
	case PaymentStatusCompleted:
		return "#4CAF50"
	case PaymentStatusFailed:
		return "#F44336"
	case PaymentStatusCancelled:
		return "#9E9E9E"
	case PaymentStatusRefunded, PaymentStatusPartialRefund:
		return "#795548"
	default:
		return "#FFA500"
	}
}

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodWallet       PaymentMethod = "wallet"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodUPI          PaymentMethod = "upi"
)

// ParsePaymentMethod maps a wire string to a method; unknown input
// degrades to cash with a warning.
func ParsePaymentMethod(s string) PaymentMethod {
	switch PaymentMethod(normalizeEnum(s)) {
	case PaymentMethodCard:
		return PaymentMethodCard
	case PaymentMethodBankTransfer:
		return PaymentMethodBankTransfer
	case PaymentMethodWallet:
		return PaymentMethodWallet
	case PaymentMethodCash:
		return PaymentMethodCash
	case PaymentMethodUPI:
		return PaymentMethodUPI
	default:
		log.Warn("unknown payment method, defaulting to cash", zap.String("value", s))
		return PaymentMethodCash
	}
}

func (m PaymentMethod) Value() string { return string(m) }

func (m PaymentMethod) DisplayText() string {
	switch m {
	case PaymentMethodCard:
		return "Card"
	case PaymentMethodBankTransfer:
		return "Bank Transfer"
	case PaymentMethodWallet:
		return "Wallet"
	case PaymentMethodUPI:
		return "UPI"
	default:
		return "Cash"
	}
}

// Payment is a monetary transaction against a booking.
type Payment struct {
	ID             string
	Booking        string
	Customer       *string
	Provider       *string
	Amount         decimal.Decimal
	RefundedAmount *decimal.Decimal
	Currency       string
	Status         PaymentStatus
	Method         PaymentMethod
	TransactionID  *string
	Metadata       map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
}

// PaymentFromMap parses a payment from a decoded wire payload.
func PaymentFromMap(m map[string]any) (*Payment, error) {
	id, err := reqString(m, "id")
	if err != nil {
		return nil, err
	}
	booking, err := reqString(m, "booking")
	if err != nil {
		return nil, err
	}
	return &Payment{
		ID:             id,
		Booking:        booking,
		Customer:       optStringPtr(m, "customer"),
		Provider:       optStringPtr(m, "provider"),
		Amount:         optDecimal(m, "amount"),
		RefundedAmount: optDecimalPtr(m, "refunded_amount"),
		Currency:       optString(m, "currency"),
		Status:         ParsePaymentStatus(optString(m, "status")),
		Method:         ParsePaymentMethod(optString(m, "payment_method")),
		TransactionID:  optStringPtr(m, "transaction_id"),
		Metadata:       optMap(m, "metadata"),
		CreatedAt:      optTime(m, "created_at"),
		UpdatedAt:      optTime(m, "updated_at"),
		CompletedAt:    optTimePtr(m, "completed_at"),
	}, nil
}

// ToMap serializes the payment to its sparse wire shape.
func (p *Payment) ToMap() map[string]any {
	m := map[string]any{
		"id":             p.ID,
		"booking":        p.Booking,
		"amount":         p.Amount.InexactFloat64(),
		"currency":       p.Currency,
		"status":         p.Status.Value(),
		"payment_method": p.Method.Value(),
		"created_at":     formatWireTime(p.CreatedAt),
		"updated_at":     formatWireTime(p.UpdatedAt),
	}
	putStringPtr(m, "customer", p.Customer)
	putStringPtr(m, "provider", p.Provider)
	putDecimalPtr(m, "refunded_amount", p.RefundedAmount)
	putStringPtr(m, "transaction_id", p.TransactionID)
	putMap(m, "metadata", p.Metadata)
	putTimePtr(m, "completed_at", p.CompletedAt)
	return m
}

func (p *Payment) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

func (p *Payment) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := PaymentFromMap(raw)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

// PendingAmount is the amount not yet refunded.
func (p *Payment) PendingAmount() decimal.Decimal {
	if p.RefundedAmount == nil {
		return p.Amount
	}
	return p.Amount.Sub(*p.RefundedAmount)
}

// CanBeRefunded reports whether a refund may still be issued: the payment
// completed and there is something left to give back.
func (p *Payment) CanBeRefunded() bool {
	return p.Status == PaymentStatusCompleted && p.PendingAmount().IsPositive()
}

// FormattedAmount renders the payment amount in its own currency.
func (p *Payment) FormattedAmount() string {
	return FormatCurrencyAmount(p.Amount, p.Currency)
}

// CreatePaymentRequest is the payload for initiating a payment.
type CreatePaymentRequest struct {
	Booking  string         `json:"booking" validate:"required"`
	Amount   float64        `json:"amount" validate:"required,gt=0"`
	Currency string         `json:"currency" validate:"required,len=3"`
	Method   string         `json:"payment_method" validate:"required,oneof=card bank_transfer wallet cash upi"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (r *CreatePaymentRequest) ToMap() map[string]any {
	m := map[string]any{
		"booking":        r.Booking,
		"amount":         r.Amount,
		"currency":       r.Currency,
		"payment_method": r.Method,
	}
	putMap(m, "metadata", r.Metadata)
	return m
}

// RefundRequest is the payload for a full or partial refund.
type RefundRequest struct {
	Amount *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"` // nil means full refund
	Reason string   `json:"reason" validate:"required"`
}

func (r *RefundRequest) ToMap() map[string]any {
	m := map[string]any{"reason": r.Reason}
	putFloatPtr(m, "amount", r.Amount)
	return m
}

// PaymentListResponse is the standard pagination envelope for payments.
type PaymentListResponse struct {
	Count    int
	Next     *string
	Previous *string
	Results  []Payment
}

func PaymentListResponseFromMap(m map[string]any) *PaymentListResponse {
	resp := &PaymentListResponse{
		Count:    optInt(m, "count", 0),
		Next:     optStringPtr(m, "next"),
		Previous: optStringPtr(m, "previous"),
		Results:  []Payment{},
	}
	for _, item := range optMapSlice(m, "results") {
		p, err := PaymentFromMap(item)
		if err != nil {
			log.Warn("skipping malformed payment in list", zap.Error(err))
			continue
		}
		resp.Results = append(resp.Results, *p)
	}
	return resp
}

func (r *PaymentListResponse) ToMap() map[string]any {
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

func (r *PaymentListResponse) HasNext() bool     { return hasCursor(r.Next) }
func (r *PaymentListResponse) HasPrevious() bool { return hasCursor(r.Previous) }

// PaymentStatistics summarizes a page of payments for the earnings screen.
type PaymentStatistics struct {
	Total         int
	Completed     int
	Failed        int
	Pending       int
	Refunded      int
	TotalAmount   decimal.Decimal
	TotalRefunded decimal.Decimal
	SuccessRate   float64 // completed / total, 0.0 for an empty page
}

// Statistics folds the page into aggregate counts and amounts.
func (r *PaymentListResponse) Statistics() PaymentStatistics {
	stats := PaymentStatistics{Total: len(r.Results)}
	for i := range r.Results {
		p := &r.Results[i]
		stats.TotalAmount = stats.TotalAmount.Add(p.Amount)
		if p.RefundedAmount != nil {
			stats.TotalRefunded = stats.TotalRefunded.Add(*p.RefundedAmount)
		}
		switch p.Status {
		case PaymentStatusCompleted:
			stats.Completed++
		case PaymentStatusFailed:
			stats.Failed++
		case PaymentStatusPending, PaymentStatusProcessing:
			stats.Pending++
		case PaymentStatusRefunded, PaymentStatusPartialRefund:
			stats.Refunded++
		}
	}
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Completed) / float64(stats.Total)
	}
	return stats
}
