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

type NotificationHandler struct {
	Repo repository.NotificationRepository
}

func NewNotificationHandler(repo repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{Repo: repo}
}

// CreateNotificationHandler handles POST /api/notifications/.
func (h *NotificationHandler) CreateNotificationHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		User     string           `json:"user" binding:"required"`
		Type     string           `json:"notification_type"`
		Title    string           `json:"title" binding:"required"`
		Body     string           `json:"body" binding:"required"`
		Priority string           `json:"priority"`
		Channels []string         `json:"channels"`
		Actions  []map[string]any `json:"actions"`
		Data     map[string]any   `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	m := map[string]any{
		"id":                uuid.New().String(),
		"user":              req.User,
		"notification_type": models.ParseNotificationType(req.Type).Value(),
		"title":             req.Title,
		"body":              req.Body,
		"priority":          models.ParseNotificationPriority(req.Priority).Value(),
		"status":            models.NotificationStatusPending.Value(),
		"created_at":        now,
		"updated_at":        now,
	}
	if len(req.Channels) > 0 {
		m["channels"] = toAny(req.Channels)
	}
	if len(req.Actions) > 0 {
		m["actions"] = toAnyMaps(req.Actions)
	}
	if req.Data != nil {
		m["data"] = req.Data
	}

	notification, err := models.AppNotificationFromMap(m)
	if err != nil {
		logger.Error("Failed to build notification", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Repo.Create(c.Request.Context(), notification); err != nil {
		logger.Error("Failed to create notification", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, notification)
}

// GetNotificationHandler handles GET /api/notifications/:id.
func (h *NotificationHandler) GetNotificationHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	notification, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.Error("Notification not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notification)
}

// MarkNotificationReadHandler handles POST /api/notifications/:id/read.
func (h *NotificationHandler) MarkNotificationReadHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	notification, err := h.Repo.MarkRead(c.Request.Context(), id, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to mark notification read", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notification)
}

// ListNotificationsHandler handles GET /api/notifications/. Supports
// ?user=, ?status= and ?unread=true filters.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	page, pageSize := pageParams(c)

	filter := bson.M{}
	if user := c.Query("user"); user != "" {
		filter["user"] = user
	}
	if status := c.Query("status"); status != "" {
		filter["status"] = models.ParseNotificationStatus(status).Value()
	}
	if c.Query("unread") == "true" {
		filter["read_at"] = bson.M{"$exists": false}
	}

	resp, err := h.Repo.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		logger.Error("Failed to list notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	body := resp.ToMap()
	body["unread_count"] = resp.UnreadCount()
	c.JSON(http.StatusOK, body)
}

func toAny(ss []string) []any {
	out := make([]any, 0, len(ss))
	for _, s := range ss {
		out = append(out, s)
	}
	return out
}

func toAnyMaps(ms []map[string]any) []any {
	out := make([]any, 0, len(ms))
	for _, m := range ms {
		out = append(out, m)
	}
	return out
}
