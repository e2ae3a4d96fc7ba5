package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullNotificationMap() map[string]any {
	return map[string]any{
		"id":                "ntf-001",
		"user":              "cust-7",
		"title":             "Booking confirmed",
		"body":              "Your booking for Sep 15 is confirmed.",
		"notification_type": "booking",
		"priority":          "high",
		"status":            "delivered",
		"channels":          []any{"push", "in_app"},
		"data":              map[string]any{"booking_id": "bk-001"},
		"image_url":         "https://cdn.prbal.app/n1.png",
		"action_url":        "prbal://bookings/bk-001",
		"actions": []any{
			map[string]any{"id": "view", "title": "View", "action": "open_booking"},
			map[string]any{"id": "dismiss", "title": "Dismiss", "action": "dismiss"},
		},
		"created_at": "2026-08-01T09:00:00Z",
		"updated_at": "2026-08-01T09:00:00Z",
		"expires_at": "2026-09-01T00:00:00Z",
	}
}

func TestAppNotificationFromMap_full(t *testing.T) {
	n, err := AppNotificationFromMap(fullNotificationMap())
	require.NoError(t, err)

	assert.Equal(t, NotificationTypeBooking, n.Type)
	assert.Equal(t, NotificationPriorityHigh, n.Priority)
	assert.Equal(t, NotificationStatusDelivered, n.Status)
	assert.Equal(t, []NotificationChannel{NotificationChannelPush, NotificationChannelInApp}, n.Channels)
	require.Len(t, n.Actions, 2)
	assert.Equal(t, "open_booking", n.Actions[0].Action)
}

func TestAppNotification_roundTrip(t *testing.T) {
	first, err := AppNotificationFromMap(fullNotificationMap())
	require.NoError(t, err)
	second, err := AppNotificationFromMap(first.ToMap())
	require.NoError(t, err)
	require.Equal(t, first, second)

	minimal, err := AppNotificationFromMap(map[string]any{"id": "ntf-min", "user": "u1"})
	require.NoError(t, err)
	again, err := AppNotificationFromMap(minimal.ToMap())
	require.NoError(t, err)
	require.Equal(t, minimal, again)

	m := minimal.ToMap()
	for _, key := range []string{"read_at", "expires_at", "image_url", "action_url", "data"} {
		_, present := m[key]
		assert.False(t, present, key)
	}
}

func TestAppNotification_lifecycle(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	n := AppNotification{ID: "n1"}
	assert.False(t, n.IsRead())
	assert.False(t, n.IsExpiredAt(now))
	assert.True(t, n.IsUnread())

	n.ExpiresAt = &past
	assert.True(t, n.IsExpiredAt(now))

	n.ExpiresAt = &future
	assert.False(t, n.IsExpiredAt(now))

	read := n.MarkedRead(now)
	assert.True(t, read.IsRead())
	assert.False(t, read.IsUnread())
	assert.Equal(t, NotificationStatusRead, read.Status)
	// Original is untouched.
	assert.False(t, n.IsRead())
}

func TestParseNotificationEnums(t *testing.T) {
	assert.Equal(t, NotificationTypePayment, ParseNotificationType("payment"))
	assert.Equal(t, NotificationTypeSystem, ParseNotificationType("carrier_pigeon"))
	assert.Equal(t, NotificationPriorityUrgent, ParseNotificationPriority("URGENT"))
	assert.Equal(t, NotificationPriorityNormal, ParseNotificationPriority(""))
	assert.Equal(t, NotificationStatusRead, ParseNotificationStatus("read"))
	assert.Equal(t, NotificationStatusPending, ParseNotificationStatus("teleported"))
	assert.Equal(t, NotificationChannelSMS, ParseNotificationChannel("sms"))
	assert.Equal(t, NotificationChannelInApp, ParseNotificationChannel("fax"))
}

func TestNotificationPreferences(t *testing.T) {
	p, err := NotificationPreferencesFromMap(map[string]any{
		"user":              "u1",
		"push_enabled":      true,
		"email_enabled":     false,
		"sms_enabled":       true,
		"in_app_enabled":    true,
		"quiet_hours_start": "22:00",
		"quiet_hours_end":   "07:00",
		"updated_at":        "2026-08-01T09:00:00Z",
	})
	require.NoError(t, err)

	assert.True(t, p.ChannelEnabled(NotificationChannelPush))
	assert.False(t, p.ChannelEnabled(NotificationChannelEmail))
	assert.True(t, p.ChannelEnabled(NotificationChannelSMS))

	again, err := NotificationPreferencesFromMap(p.ToMap())
	require.NoError(t, err)
	require.Equal(t, p, again)
}

func TestDeviceToken(t *testing.T) {
	d, err := DeviceTokenFromMap(map[string]any{
		"id":         "dev-1",
		"user":       "u1",
		"token":      "fcm-token-xyz",
		"platform":   "android",
		"is_active":  true,
		"created_at": "2026-08-01T09:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "android", d.Platform)
	assert.Nil(t, d.LastUsedAt)

	_, err = DeviceTokenFromMap(map[string]any{"id": "dev-2", "user": "u1"})
	require.Error(t, err) // token is required

	again, err := DeviceTokenFromMap(d.ToMap())
	require.NoError(t, err)
	require.Equal(t, d, again)
}

func TestNotificationListResponse_unreadCount(t *testing.T) {
	readAt := time.Now().Add(-time.Hour)
	expired := time.Now().Add(-time.Minute)

	resp := NotificationListResponse{
		Results: []AppNotification{
			{ID: "n1"},                     // unread
			{ID: "n2", ReadAt: &readAt},    // read
			{ID: "n3", ExpiresAt: &expired}, // expired
			{ID: "n4"},                     // unread
		},
	}
	assert.Equal(t, 2, resp.UnreadCount())
}
