package models

import (
	"encoding/json"
	"time"
)

// HealthStatus classifies a component's health into three values.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
	HealthStatusUnknown   HealthStatus = "unknown"
)

// ParseHealthStatus classifies a wire status string. The backend uses a
// few synonyms; anything unrecognized is unknown, never an error.
func ParseHealthStatus(s string) HealthStatus {
	switch normalizeEnum(s) {
	case "healthy", "ok", "pass", "up":
		return HealthStatusHealthy
	case "unhealthy", "error", "fail", "down":
		return HealthStatusUnhealthy
	default:
		return HealthStatusUnknown
	}
}

func (s HealthStatus) Value() string { return string(s) }

func (s HealthStatus) DisplayText() string {
	switch s {
	case HealthStatusHealthy:
		return "Healthy"
	case HealthStatusUnhealthy:
		return "Unhealthy"
	default:
		return "Unknown"
	}
}

func (s HealthStatus) Color() string {
	switch s {
	case HealthStatusHealthy:
		return "#4CAF50"
	case HealthStatusUnhealthy:
		return "#F44336"
	default:
		return "#9E9E9E"
	}
}

// ConnectivityStatus is the device's view of the network.
type ConnectivityStatus string

const (
	ConnectivityOnline  ConnectivityStatus = "online"
	ConnectivityOffline ConnectivityStatus = "offline"
	ConnectivityUnknown ConnectivityStatus = "unknown"
)

func ParseConnectivityStatus(s string) ConnectivityStatus {
	switch normalizeEnum(s) {
	case "online":
		return ConnectivityOnline
	case "offline":
		return ConnectivityOffline
	default:
		return ConnectivityUnknown
	}
}

func (s ConnectivityStatus) Value() string { return string(s) }

// SystemHealth is the backend's overall self-report.
type SystemHealth struct {
	Status    HealthStatus
	Version   string
	CheckedAt time.Time
}

func SystemHealthFromMap(m map[string]any) *SystemHealth {
	return &SystemHealth{
		Status:    ParseHealthStatus(optString(m, "status")),
		Version:   optString(m, "version"),
		CheckedAt: optTime(m, "checked_at"),
	}
}

func (h *SystemHealth) ToMap() map[string]any {
	return map[string]any{
		"status":     h.Status.Value(),
		"version":    h.Version,
		"checked_at": formatWireTime(h.CheckedAt),
	}
}

// DatabaseHealth is the backend's datastore self-report.
type DatabaseHealth struct {
	Status    HealthStatus
	Database  string
	CheckedAt time.Time
}

func DatabaseHealthFromMap(m map[string]any) *DatabaseHealth {
	return &DatabaseHealth{
		Status:    ParseHealthStatus(optString(m, "status")),
		Database:  optString(m, "database"),
		CheckedAt: optTime(m, "checked_at"),
	}
}

func (h *DatabaseHealth) ToMap() map[string]any {
	return map[string]any{
		"status":     h.Status.Value(),
		"database":   h.Database,
		"checked_at": formatWireTime(h.CheckedAt),
	}
}

// CombineHealth is the overall-status precedence rule. It is a pure
// classification; no state is kept anywhere:
//
//	offline connectivity        -> unknown (nothing trustworthy to report)
//	either component unhealthy  -> unhealthy
//	either component unknown    -> unknown
//	otherwise                   -> healthy
func CombineHealth(system, database HealthStatus, connectivity ConnectivityStatus) HealthStatus {
	if connectivity == ConnectivityOffline {
		return HealthStatusUnknown
	}
	if system == HealthStatusUnhealthy || database == HealthStatusUnhealthy {
		return HealthStatusUnhealthy
	}
	if system == HealthStatusUnknown || database == HealthStatusUnknown {
		return HealthStatusUnknown
	}
	return HealthStatusHealthy
}

// ApplicationHealth aggregates the component reports with connectivity.
// It is normally built with FromComponents, not parsed off the wire;
// ApplicationHealthFromMap exists for cache restore and tests.
type ApplicationHealth struct {
	System       SystemHealth
	Database     DatabaseHealth
	Connectivity ConnectivityStatus
	CheckedAt    time.Time
}

// ApplicationHealthFromComponents builds the aggregate from fresh
// component reports.
func ApplicationHealthFromComponents(system SystemHealth, database DatabaseHealth, connectivity ConnectivityStatus) *ApplicationHealth {
	return &ApplicationHealth{
		System:       system,
		Database:     database,
		Connectivity: connectivity,
		CheckedAt:    time.Now().UTC(),
	}
}

// CopyWithConnectivity returns a copy re-evaluated under new connectivity,
// keeping the component reports as-is.
func (h *ApplicationHealth) CopyWithConnectivity(connectivity ConnectivityStatus) *ApplicationHealth {
	out := *h
	out.Connectivity = connectivity
	out.CheckedAt = time.Now().UTC()
	return &out
}

// OverallStatus applies the precedence rule to the current components.
func (h *ApplicationHealth) OverallStatus() HealthStatus {
	return CombineHealth(h.System.Status, h.Database.Status, h.Connectivity)
}

// IsHealthy is the single-glance answer for the status indicator.
func (h *ApplicationHealth) IsHealthy() bool {
	return h.OverallStatus() == HealthStatusHealthy
}

func ApplicationHealthFromMap(m map[string]any) *ApplicationHealth {
	out := &ApplicationHealth{
		Connectivity: ParseConnectivityStatus(optString(m, "connectivity")),
		CheckedAt:    optTime(m, "checked_at"),
	}
	if sys := optMap(m, "system"); sys != nil {
		out.System = *SystemHealthFromMap(sys)
	} else {
		out.System = SystemHealth{Status: HealthStatusUnknown}
	}
	if db := optMap(m, "database"); db != nil {
		out.Database = *DatabaseHealthFromMap(db)
	} else {
		out.Database = DatabaseHealth{Status: HealthStatusUnknown}
	}
	return out
}

func (h *ApplicationHealth) ToMap() map[string]any {
	return map[string]any{
		"system":       h.System.ToMap(),
		"database":     h.Database.ToMap(),
		"connectivity": h.Connectivity.Value(),
		"status":       h.OverallStatus().Value(),
		"checked_at":   formatWireTime(h.CheckedAt),
	}
}

func (h *ApplicationHealth) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.ToMap())
}
