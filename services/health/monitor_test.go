package health

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"prbal/models"
)

func TestNewMonitorStartsUnknown(t *testing.T) {
	m := NewMonitor(nil, nil)

	snapshot := m.Snapshot()
	assert.Equal(t, models.HealthStatusUnknown, snapshot.System.Status)
	assert.Equal(t, models.HealthStatusUnknown, snapshot.Database.Status)
	assert.Equal(t, models.ConnectivityUnknown, snapshot.Connectivity)
	assert.Equal(t, models.HealthStatusUnknown, snapshot.OverallStatus())
	assert.False(t, snapshot.IsHealthy())
}
