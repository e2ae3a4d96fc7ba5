package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"prbal/database/repository"
	"prbal/models"
	"prbal/utils"
)

type BookingHandler struct {
	Repo repository.BookingRepository
}

func NewBookingHandler(repo repository.BookingRepository) *BookingHandler {
	return &BookingHandler{Repo: repo}
}

// CreateBookingHandler handles POST /api/bookings/.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.CreateBookingRequest
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
	m["status"] = models.BookingStatusPending.Value()
	m["created_at"] = now
	m["updated_at"] = now

	booking, err := models.BookingFromMap(m)
	if err != nil {
		logger.Error("Failed to build booking", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !booking.IsValidBookingTime() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking window is invalid"})
		return
	}

	if err := h.Repo.Create(c.Request.Context(), booking); err != nil {
		logger.Error("Failed to create booking", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBookingHandler handles GET /api/bookings/:id. Reads go through the
// entity cache first.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	key := "booking:" + id

	if m, err := utils.CachedEntityMap(c.Request.Context(), key); err == nil {
		if booking, err := models.BookingFromMap(m); err == nil {
			c.JSON(http.StatusOK, booking)
			return
		}
	}

	booking, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error("Booking not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err := utils.CacheEntity(c.Request.Context(), key, booking, utils.EntityCacheTTL); err != nil {
		logger.Warn("Failed to cache booking", zap.String("id", id), zap.Error(err))
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBookingHandler handles PATCH /api/bookings/:id. Only the fields
// present in the payload change.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := models.ValidateRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	m := existing.ToMap()
	for k, v := range req.ToMap() {
		m[k] = v
	}
	m["updated_at"] = time.Now().UTC()

	booking, err := models.BookingFromMap(m)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Repo.Update(c.Request.Context(), booking); err != nil {
		logger.Error("Failed to update booking", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateEntity(c, "booking:"+id)
	c.JSON(http.StatusOK, booking)
}

// CancelBookingHandler handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req struct {
		Reason string `json:"cancellation_reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	switch booking.Status {
	case models.BookingStatusCompleted, models.BookingStatusCancelled:
		c.JSON(http.StatusConflict, gin.H{"error": "booking can no longer be cancelled"})
		return
	}

	booking.Status = models.BookingStatusCancelled
	booking.CancellationReason = &req.Reason
	booking.UpdatedAt = time.Now().UTC()
	if err := h.Repo.Update(c.Request.Context(), booking); err != nil {
		logger.Error("Failed to cancel booking", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	invalidateEntity(c, "booking:"+id)
	c.JSON(http.StatusOK, booking)
}

// ListBookingsHandler handles GET /api/bookings/. Supports ?status= and
// ?service= filters.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	page, pageSize := pageParams(c)

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = models.ParseBookingStatus(status).Value()
	}
	if service := c.Query("service"); service != "" {
		filter["service"] = service
	}

	resp, err := h.Repo.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		logger.Error("Failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp.ToMap())
}
