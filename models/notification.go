package models

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// NotificationType classifies what triggered a notification.
type NotificationType string

const (
	NotificationTypeSystem    NotificationType = "system"
	NotificationTypeBooking   NotificationType = "booking"
	NotificationTypePayment   NotificationType = "payment"
	NotificationTypeMessage   NotificationType = "message"
	NotificationTypePromotion NotificationType = "promotion"
	NotificationTypeReminder  NotificationType = "reminder"
)

// ParseNotificationType maps a wire string to a type; unknown input
// degrades to system with a warning.
func ParseNotificationType(s string) NotificationType {
	switch NotificationType(normalizeEnum(s)) {
	case NotificationTypeSystem:
		return NotificationTypeSystem
	case NotificationTypeBooking:
		return NotificationTypeBooking
	case NotificationTypePayment:
		return NotificationTypePayment
	case NotificationTypeMessage:
		return NotificationTypeMessage
	case NotificationTypePromotion:
		return NotificationTypePromotion
	case NotificationTypeReminder:
		return NotificationTypeReminder
	default:
		log.Warn("unknown notification type, defaulting to system", zap.String("value", s))
		return NotificationTypeSystem
	}
}

func (t NotificationType) Value() string { return string(t) }

// NotificationPriority orders notifications for display and delivery.
type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityNormal NotificationPriority = "normal"
	NotificationPriorityHigh   NotificationPriority = "high"
	NotificationPriorityUrgent NotificationPriority = "urgent"
)

// ParseNotificationPriority maps a wire string to a priority; unknown
// input degrades to normal with a warning.
func ParseNotificationPriority(s string) NotificationPriority {
	switch NotificationPriority(normalizeEnum(s)) {
	case NotificationPriorityLow:
		return NotificationPriorityLow
	case NotificationPriorityNormal:
		return NotificationPriorityNormal
	case NotificationPriorityHigh:
		return NotificationPriorityHigh
	case NotificationPriorityUrgent:
		return NotificationPriorityUrgent
	default:
		log.Warn("unknown notification priority, defaulting to normal", zap.String("value", s))
		return NotificationPriorityNormal
	}
}

func (p NotificationPriority) Value() string { return string(p) }

// NotificationStatus tracks the delivery lifecycle.
type NotificationStatus string

const (
	NotificationStatusPending   NotificationStatus = "pending"
	NotificationStatusSent      NotificationStatus = "sent"
	NotificationStatusDelivered NotificationStatus = "delivered"
	NotificationStatusFailed    NotificationStatus = "failed"
	NotificationStatusRead      NotificationStatus = "read"
)

// ParseNotificationStatus maps a wire string to a status; unknown input
// degrades to pending with a warning.
func ParseNotificationStatus(s string) NotificationStatus {
	switch NotificationStatus(normalizeEnum(s)) {
	case NotificationStatusPending:
		return NotificationStatusPending
	case NotificationStatusSent:
		return NotificationStatusSent
	case NotificationStatusDelivered:
		return NotificationStatusDelivered
	case NotificationStatusFailed:
		return NotificationStatusFailed
	case NotificationStatusRead:
		return NotificationStatusRead
	default:
		log.Warn("unknown notification status, defaulting to pending", zap.String("value", s))
		return NotificationStatusPending
	}
}

func (s NotificationStatus) Value() string { return string(s) }

// NotificationChannel is a delivery transport.
type NotificationChannel string

const (
	NotificationChannelPush  NotificationChannel = "push"
	NotificationChannelEmail NotificationChannel = "email"
	NotificationChannelSMS   NotificationChannel = "sms"
	NotificationChannelInApp NotificationChannel = "in_app"
)

// ParseNotificationChannel maps a wire string to a channel; unknown input
// degrades to in_app with a warning.
func ParseNotificationChannel(s string) NotificationChannel {
	switch NotificationChannel(normalizeEnum(s)) {
	case NotificationChannelPush:
		return NotificationChannelPush
	case NotificationChannelEmail:
		return NotificationChannelEmail
	case NotificationChannelSMS:
		return NotificationChannelSMS
	case NotificationChannelInApp:
		return NotificationChannelInApp
	default:
		log.Warn("unknown notification channel, defaulting to in_app", zap.String("value", s))
		return NotificationChannelInApp
	}
}

func (c NotificationChannel) Value() string { return string(c) }

// NotificationAction is a tappable action attached to a notification.
type NotificationAction struct {
	ID     string
	Title  string
	Action string
	Data   map[string]any
}

func notificationActionFromMap(m map[string]any) NotificationAction {
	return NotificationAction{
		ID:     optString(m, "id"),
		Title:  optString(m, "title"),
		Action: optString(m, "action"),
		Data:   optMap(m, "data"),
	}
}

func (a NotificationAction) toMap() map[string]any {
	m := map[string]any{
		"id":     a.ID,
		"title":  a.Title,
		"action": a.Action,
	}
	putMap(m, "data", a.Data)
	return m
}

// AppNotification is a notification delivered to a user.
type AppNotification struct {
	ID        string
	UserID    string
	Title     string
	Body      string
	Type      NotificationType
	Priority  NotificationPriority
	Status    NotificationStatus
	Channels  []NotificationChannel
	Data      map[string]any
	ImageURL  *string
	ActionURL *string
	Actions   []NotificationAction
	CreatedAt time.Time
	UpdatedAt time.Time
	ReadAt    *time.Time
	ExpiresAt *time.Time
}

// AppNotificationFromMap parses a notification from a decoded wire payload.
func AppNotificationFromMap(m map[string]any) (*AppNotification, error) {
	id, err := reqString(m, "id")
	if err != nil {
		return nil, err
	}
	userID, err := reqString(m, "user")
	if err != nil {
		return nil, err
	}
	channels := []NotificationChannel{}
	for _, s := range optStringSlice(m, "channels") {
		channels = append(channels, ParseNotificationChannel(s))
	}
	actions := []NotificationAction{}
	for _, am := range optMapSlice(m, "actions") {
		actions = append(actions, notificationActionFromMap(am))
	}
	return &AppNotification{
		ID:        id,
		UserID:    userID,
		Title:     optString(m, "title"),
		Body:      optString(m, "body"),
		Type:      ParseNotificationType(optString(m, "notification_type")),
		Priority:  ParseNotificationPriority(optString(m, "priority")),
		Status:    ParseNotificationStatus(optString(m, "status")),
		Channels:  channels,
		Data:      optMap(m, "data"),
		ImageURL:  optStringPtr(m, "image_url"),
		ActionURL: optStringPtr(m, "action_url"),
		Actions:   actions,
		CreatedAt: optTime(m, "created_at"),
		UpdatedAt: optTime(m, "updated_at"),
		ReadAt:    optTimePtr(m, "read_at"),
		ExpiresAt: optTimePtr(m, "expires_at"),
	}, nil
}

// ToMap serializes the notification to its sparse wire shape.
func (n *AppNotification) ToMap() map[string]any {
	channels := make([]any, 0, len(n.Channels))
	for _, c := range n.Channels {
		channels = append(channels, c.Value())
	}
	actions := make([]any, 0, len(n.Actions))
	for _, a := range n.Actions {
		actions = append(actions, a.toMap())
	}
	m := map[string]any{
		"id":                n.ID,
		"user":              n.UserID,
		"title":             n.Title,
		"body":              n.Body,
		"notification_type": n.Type.Value(),
		"priority":          n.Priority.Value(),
		"status":            n.Status.Value(),
		"channels":          channels,
		"actions":           actions,
		"created_at":        formatWireTime(n.CreatedAt),
		"updated_at":        formatWireTime(n.UpdatedAt),
	}
	putMap(m, "data", n.Data)
	putStringPtr(m, "image_url", n.ImageURL)
	putStringPtr(m, "action_url", n.ActionURL)
	putTimePtr(m, "read_at", n.ReadAt)
	putTimePtr(m, "expires_at", n.ExpiresAt)
	return m
}

func (n *AppNotification) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.ToMap())
}

func (n *AppNotification) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := AppNotificationFromMap(raw)
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}

// IsRead reports whether the user has opened the notification.
func (n *AppNotification) IsRead() bool {
	return n.ReadAt != nil
}

// IsExpired reports whether the notification is past its expiry.
func (n *AppNotification) IsExpired() bool {
	return n.IsExpiredAt(time.Now())
}

// IsExpiredAt is IsExpired anchored at an explicit "now".
func (n *AppNotification) IsExpiredAt(now time.Time) bool {
	return n.ExpiresAt != nil && now.After(*n.ExpiresAt)
}

// IsUnread reports whether the notification should still count toward the
// unread badge: not yet read and not expired.
func (n *AppNotification) IsUnread() bool {
	return !n.IsRead() && !n.IsExpired()
}

// MarkedRead returns a copy with the read timestamp set. Entities are
// immutable values; the store layer replaces the old instance.
func (n *AppNotification) MarkedRead(at time.Time) *AppNotification {
	out := *n
	out.ReadAt = &at
	out.Status = NotificationStatusRead
	out.UpdatedAt = at
	return &out
}

// NotificationPreferences are a user's delivery settings.
type NotificationPreferences struct {
	UserID          string
	PushEnabled     bool
	EmailEnabled    bool
	SMSEnabled      bool
	InAppEnabled    bool
	QuietHoursStart *string // "15:04"
	QuietHoursEnd   *string
	UpdatedAt       time.Time
}

func NotificationPreferencesFromMap(m map[string]any) (*NotificationPreferences, error) {
	userID, err := reqString(m, "user")
	if err != nil {
		return nil, err
	}
	return &NotificationPreferences{
		UserID:          userID,
		PushEnabled:     optBool(m, "push_enabled", true),
		EmailEnabled:    optBool(m, "email_enabled", true),
		SMSEnabled:      optBool(m, "sms_enabled", false),
		InAppEnabled:    optBool(m, "in_app_enabled", true),
		QuietHoursStart: optStringPtr(m, "quiet_hours_start"),
		QuietHoursEnd:   optStringPtr(m, "quiet_hours_end"),
		UpdatedAt:       optTime(m, "updated_at"),
	}, nil
}

func (p *NotificationPreferences) ToMap() map[string]any {
	m := map[string]any{
		"user":           p.UserID,
		"push_enabled":   p.PushEnabled,
		"email_enabled":  p.EmailEnabled,
		"sms_enabled":    p.SMSEnabled,
		"in_app_enabled": p.InAppEnabled,
		"updated_at":     formatWireTime(p.UpdatedAt),
	}
	putStringPtr(m, "quiet_hours_start", p.QuietHoursStart)
	putStringPtr(m, "quiet_hours_end", p.QuietHoursEnd)
	return m
}

// ChannelEnabled reports whether the user accepts a delivery channel.
func (p *NotificationPreferences) ChannelEnabled(c NotificationChannel) bool {
	switch c {
	case NotificationChannelPush:
		return p.PushEnabled
	case NotificationChannelEmail:
		return p.EmailEnabled
	case NotificationChannelSMS:
		return p.SMSEnabled
	case NotificationChannelInApp:
		return p.InAppEnabled
	default:
		return false
	}
}

// DeviceToken registers a device for push delivery.
type DeviceToken struct {
	ID         string
	UserID     string
	Token      string
	Platform   string // "android" | "ios" | "web"
	IsActive   bool
	CreatedAt  time.Time
	LastUsedAt *time.Time
}

func DeviceTokenFromMap(m map[string]any) (*DeviceToken, error) {
	id, err := reqString(m, "id")
	if err != nil {
		return nil, err
	}
	token, err := reqString(m, "token")
	if err != nil {
		return nil, err
	}
	return &DeviceToken{
		ID:         id,
		UserID:     optString(m, "user"),
		Token:      token,
		Platform:   optString(m, "platform"),
		IsActive:   optBool(m, "is_active", true),
		CreatedAt:  optTime(m, "created_at"),
		LastUsedAt: optTimePtr(m, "last_used_at"),
	}, nil
}

func (d *DeviceToken) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"user":       d.UserID,
		"token":      d.Token,
		"platform":   d.Platform,
		"is_active":  d.IsActive,
		"created_at": formatWireTime(d.CreatedAt),
	}
	putTimePtr(m, "last_used_at", d.LastUsedAt)
	return m
}

// NotificationListResponse is the standard pagination envelope for
// notifications.
type NotificationListResponse struct {
	Count    int
	Next     *string
	Previous *string
	Results  []AppNotification
}

func NotificationListResponseFromMap(m map[string]any) *NotificationListResponse {
	resp := &NotificationListResponse{
		Count:    optInt(m, "count", 0),
		Next:     optStringPtr(m, "next"),
		Previous: optStringPtr(m, "previous"),
		Results:  []AppNotification{},
	}
	for _, item := range optMapSlice(m, "results") {
		n, err := AppNotificationFromMap(item)
		if err != nil {
			log.Warn("skipping malformed notification in list", zap.Error(err))
			continue
		}
		resp.Results = append(resp.Results, *n)
	}
	return resp
}

func (r *NotificationListResponse) ToMap() map[string]any {
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

func (r *NotificationListResponse) HasNext() bool     { return hasCursor(r.Next) }
func (r *NotificationListResponse) HasPrevious() bool { return hasCursor(r.Previous) }

// UnreadCount counts notifications still eligible for the badge.
func (r *NotificationListResponse) UnreadCount() int {
	var count int
	for i := range r.Results {
		if r.Results[i].IsUnread() {
			count++
		}
	}
	return count
}
