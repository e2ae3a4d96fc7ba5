package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullPaymentMap() map[string]any {
	return map[string]any{
		"id":              "pay-001",
		"booking":         "bk-001",
		"customer":        "cust-7",
		"provider":        "prov-9",
		"amount":          100.0,
		"refunded_amount": 30.0,
		"currency":        "USD",
		"status":          "completed",
		"payment_method":  "card",
		"transaction_id":  "txn-abc",
		"metadata":        map[string]any{"gateway": "test"},
		"created_at":      "2026-08-01T09:00:00Z",
		"updated_at":      "2026-08-01T09:05:00Z",
		"completed_at":    "2026-08-01T09:05:00Z",
	}
}

func TestPaymentFromMap_full(t *testing.T) {
	p, err := PaymentFromMap(fullPaymentMap())
	require.NoError(t, err)

	assert.Equal(t, "pay-001", p.ID)
	assert.Equal(t, "bk-001", p.Booking)
	assert.Equal(t, PaymentStatusCompleted, p.Status)
	assert.Equal(t, PaymentMethodCard, p.Method)
	require.NotNil(t, p.RefundedAmount)
	assert.Equal(t, "30.00", p.RefundedAmount.StringFixed(2))
	require.NotNil(t, p.CompletedAt)
}

func TestPaymentFromMap_missingRequired(t *testing.T) {
	m := fullPaymentMap()
	delete(m, "booking")
	_, err := PaymentFromMap(m)
	require.Error(t, err)
}

func TestPayment_roundTrip(t *testing.T) {
	first, err := PaymentFromMap(fullPaymentMap())
	require.NoError(t, err)

	second, err := PaymentFromMap(first.ToMap())
	require.NoError(t, err)
	require.Equal(t, first, second)

	minimal, err := PaymentFromMap(map[string]any{"id": "pay-min", "booking": "bk-1"})
	require.NoError(t, err)
	again, err := PaymentFromMap(minimal.ToMap())
	require.NoError(t, err)
	require.Equal(t, minimal, again)

	m := minimal.ToMap()
	_, hasRefund := m["refunded_amount"]
	assert.False(t, hasRefund)
	_, hasCompleted := m["completed_at"]
	assert.False(t, hasCompleted)
}

func TestPayment_refundArithmetic(t *testing.T) {
	refunded := decimal.NewFromInt(30)
	p := Payment{
		Amount:         decimal.NewFromInt(100),
		RefundedAmount: &refunded,
		Status:         PaymentStatusCompleted,
	}
	assert.Equal(t, "70", p.PendingAmount().String())
	assert.True(t, p.CanBeRefunded())

	full := decimal.NewFromInt(100)
	p.RefundedAmount = &full
	assert.True(t, p.PendingAmount().IsZero())
	assert.False(t, p.CanBeRefunded())

	p.RefundedAmount = nil
	assert.Equal(t, "100", p.PendingAmount().String())
	assert.True(t, p.CanBeRefunded())

	p.Status = PaymentStatusPending
	assert.False(t, p.CanBeRefunded())
}

func TestParsePaymentEnums(t *testing.T) {
	assert.Equal(t, PaymentStatusPartialRefund, ParsePaymentStatus("partial_refund"))
	assert.Equal(t, PaymentStatusProcessing, ParsePaymentStatus("Processing"))
	assert.Equal(t, PaymentStatusPending, ParsePaymentStatus("???"))
	assert.Equal(t, PaymentStatusPending, ParsePaymentStatus(""))

	assert.Equal(t, PaymentMethodUPI, ParsePaymentMethod("upi"))
	assert.Equal(t, PaymentMethodBankTransfer, ParsePaymentMethod("BANK_TRANSFER"))
	assert.Equal(t, PaymentMethodCash, ParsePaymentMethod("bitcoin"))
	assert.Equal(t, PaymentMethodCash, ParsePaymentMethod(""))
}

func TestPayment_formattedAmount(t *testing.T) {
	p := Payment{Amount: decimal.NewFromFloat(9.5), Currency: "USD"}
	assert.Equal(t, "$9.50", p.FormattedAmount())
}

func TestPaymentListResponse_statistics(t *testing.T) {
	refund := 20.0
	mkPayment := func(id string, amount float64, status string) map[string]any {
		return map[string]any{
			"id": id, "booking": "bk-1", "amount": amount, "status": status,
			"currency": "USD", "payment_method": "card",
			"created_at": "2026-08-01T09:00:00Z", "updated_at": "2026-08-01T09:00:00Z",
		}
	}
	completedWithRefund := mkPayment("p4", 50, "partial_refund")
	completedWithRefund["refunded_amount"] = refund

	resp := PaymentListResponseFromMap(map[string]any{
		"count": 4,
		"results": []any{
			mkPayment("p1", 100, "completed"),
			mkPayment("p2", 40, "failed"),
			mkPayment("p3", 60, "pending"),
			completedWithRefund,
		},
	})

	stats := resp.Statistics()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Refunded)
	assert.Equal(t, "250.00", stats.TotalAmount.StringFixed(2))
	assert.Equal(t, "20.00", stats.TotalRefunded.StringFixed(2))
	assert.InDelta(t, 0.25, stats.SuccessRate, 1e-9)
}

func TestPaymentListResponse_statisticsEmpty(t *testing.T) {
	stats := (&PaymentListResponse{Results: []Payment{}}).Statistics()
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.SuccessRate)
	assert.True(t, stats.TotalAmount.IsZero())
}

func TestCreatePaymentRequest_validate(t *testing.T) {
	req := CreatePaymentRequest{Booking: "bk-1", Amount: 10, Currency: "USD", Method: "card"}
	require.NoError(t, ValidateRequest(&req))

	req.Method = "barter"
	require.Error(t, ValidateRequest(&req))

	req.Method = "upi"
	req.Amount = 0
	require.Error(t, ValidateRequest(&req))
}

func TestRefundRequest_fullVsPartial(t *testing.T) {
	full := RefundRequest{Reason: "order cancelled"}
	m := full.ToMap()
	_, hasAmount := m["amount"]
	assert.False(t, hasAmount)

	amt := 25.0
	partial := RefundRequest{Amount: &amt, Reason: "damaged item"}
	assert.Equal(t, 25.0, partial.ToMap()["amount"])
}
