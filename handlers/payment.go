package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"prbal/database/repository"
	"prbal/models"
	"prbal/utils"
)

type PaymentHandler struct {
	Repo repository.PaymentRepository
}

func NewPaymentHandler(repo repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{Repo: repo}
}

// CreatePaymentHandler handles POST /api/payments/.
func (h *PaymentHandler) CreatePaymentHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := models.ValidateRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	m := req.ToMap()
	m["id"] = uuid.New().String()
	m["status"] = models.PaymentStatusPending.Value()
	m["created_at"] = now
	m["updated_at"] = now

	payment, err := models.PaymentFromMap(m)
	if err != nil {
		logger.Error("Failed to build payment", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Repo.Create(c.Request.Context(), payment); err != nil {
		logger.Error("Failed to create payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// GetPaymentHandler handles GET /api/payments/:id.
func (h *PaymentHandler) GetPaymentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	key := "payment:" + id

	if m, err := utils.CachedEntityMap(c.Request.Context(), key); err == nil {
		if payment, err := models.PaymentFromMap(m); err == nil {
			c.JSON(http.StatusOK, payment)
			return
		}
	}

	payment, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error("Payment not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err := utils.CacheEntity(c.Request.Context(), key, payment, utils.EntityCacheTTL); err != nil {
		logger.Warn("Failed to cache payment", zap.String("id", id), zap.Error(err))
	}
	c.JSON(http.StatusOK, payment)
}

// CompletePaymentHandler handles POST /api/payments/:id/complete. It
// records the gateway confirmation for a pending or processing payment.
func (h *PaymentHandler) CompletePaymentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req struct {
		TransactionID string `json:"transaction_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	switch payment.Status {
	case models.PaymentStatusPending, models.PaymentStatusProcessing:
	default:
		c.JSON(http.StatusConflict, gin.H{"error": "payment is not awaiting completion"})
		return
	}

	now := time.Now().UTC()
	payment.Status = models.PaymentStatusCompleted
	payment.TransactionID = &req.TransactionID
	payment.CompletedAt = &now
	payment.UpdatedAt = now
	if err := h.Repo.Update(c.Request.Context(), payment); err != nil {
		logger.Error("Failed to complete payment", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateEntity(c, "payment:"+id)
	c.JSON(http.StatusOK, payment)
}

// RefundPaymentHandler handles POST /api/payments/:id/refund. A payload
// without an amount refunds the full pending balance.
func (h *PaymentHandler) RefundPaymentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req models.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := models.ValidateRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if !payment.CanBeRefunded() {
		c.JSON(http.StatusConflict, gin.H{"error": "payment cannot be refunded"})
		return
	}

	pending := payment.PendingAmount()
	amount := pending
	if req.Amount != nil {
		amount = decimal.NewFromFloat(*req.Amount)
		if amount.GreaterThan(pending) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refund exceeds pending amount"})
			return
		}
	}

	refunded := amount
	if payment.RefundedAmount != nil {
		refunded = payment.RefundedAmount.Add(amount)
	}
	payment.RefundedAmount = &refunded
	if refunded.GreaterThanOrEqual(payment.Amount) {
		payment.Status = models.PaymentStatusRefunded
	} else {
		payment.Status = models.PaymentStatusPartialRefund
	}
	payment.UpdatedAt = time.Now().UTC()

	if err := h.Repo.Update(c.Request.Context(), payment); err != nil {
		logger.Error("Failed to refund payment", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateEntity(c, "payment:"+id)
	c.JSON(http.StatusOK, payment)
}

// ListPaymentsHandler handles GET /api/payments/. Supports ?status= and
// ?booking= filters; pass ?include_statistics=true for the summary block.
func (h *PaymentHandler) ListPaymentsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	page, pageSize := pageParams(c)

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = models.ParsePaymentStatus(status).Value()
	}
	if booking := c.Query("booking"); booking != "" {
		filter["booking"] = booking
	}

	resp, err := h.Repo.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		logger.Error("Failed to list payments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body := resp.ToMap()
	if c.Query("include_statistics") == "true" {
		body["statistics"] = resp.Statistics()
	}
	c.JSON(http.StatusOK, body)
}
