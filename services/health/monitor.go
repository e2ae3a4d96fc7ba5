// Package health runs periodic probes against the datastore and cache and
// keeps an aggregate snapshot for the health endpoint.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"prbal/config"
	"prbal/models"
	"prbal/utils"
)

const probeTimeout = 5 * time.Second

// Monitor probes Mongo and Redis on an interval and serves the latest
// aggregate. Until the first probe completes the snapshot reports unknown.
type Monitor struct {
	mongoClient *mongo.Client
	redisClient *redis.Client

	mu      sync.RWMutex
	current *models.ApplicationHealth
}

func NewMonitor(mongoClient *mongo.Client, redisClient *redis.Client) *Monitor {
	system := models.SystemHealth{
		Status:    models.HealthStatusUnknown,
		Version:   config.AppConfig.AppVersion,
		CheckedAt: time.Now().UTC(),
	}
	database := models.DatabaseHealth{
		Status:    models.HealthStatusUnknown,
		Database:  config.AppConfig.DatabaseName,
		CheckedAt: time.Now().UTC(),
	}
	return &Monitor{
		mongoClient: mongoClient,
		redisClient: redisClient,
		current:     models.ApplicationHealthFromComponents(system, database, models.ConnectivityUnknown),
	}
}

// Start launches the probe loop. It probes once immediately so the
// endpoint does not report unknown for a full interval after boot.
func (m *Monitor) Start(ctx context.Context) {
	go func() {
		m.probe(ctx)
		ticker := time.NewTicker(config.HealthCheckInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.probe(ctx)
			}
		}
	}()
}

// Snapshot returns the latest aggregate.
func (m *Monitor) Snapshot() *models.ApplicationHealth {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Monitor) probe(ctx context.Context) {
	logger := utils.GetLogger()
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	now := time.Now().UTC()

	dbStatus := models.HealthStatusHealthy
	if err := m.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		logger.Warn("Mongo health probe failed", zap.Error(err))
		dbStatus = models.HealthStatusUnhealthy
	}

	connectivity := models.ConnectivityOnline
	if err := m.redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis health probe failed", zap.Error(err))
		connectivity = models.ConnectivityOffline
	}

	system := models.SystemHealth{
		Status:    models.HealthStatusHealthy,
		Version:   config.AppConfig.AppVersion,
		CheckedAt: now,
	}
	database := models.DatabaseHealth{
		Status:    dbStatus,
		Database:  config.AppConfig.DatabaseName,
		CheckedAt: now,
	}

	m.mu.Lock()
	m.current = models.ApplicationHealthFromComponents(system, database, connectivity)
	m.mu.Unlock()
}
