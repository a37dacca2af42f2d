// Package health provides health checking functionality for the portal API.
package health

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/caresync/portal-api/interfaces"
)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	store     interfaces.DocumentStore
	analytics interfaces.AnalyticsStore
	generator interfaces.TextGenerator
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(store interfaces.DocumentStore, analytics interfaces.AnalyticsStore, generator interfaces.TextGenerator) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		store:     store,
		analytics: analytics,
		generator: generator,
	}
}

// HealthCheck returns HTTP-specific health data for the /health endpoint.
// Store reachability dominates: a failed ping is unhealthy regardless of
// snapshot age. An unconfigured AI provider never degrades health because
// every AI feature has a deterministic fallback.
func (h *HealthCheckerImpl) HealthCheck(ctx context.Context) (status string, data map[string]any, httpStatus int) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	pingErr := h.store.Ping(pingCtx)

	lastUpdate := h.analytics.GetLastUpdated()
	isUpdating := h.analytics.IsUpdating()
	snapshotAge := time.Since(lastUpdate)

	switch {
	case pingErr != nil:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case snapshotAge > 48*time.Hour:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case snapshotAge > 24*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	case isUpdating && snapshotAge > 13*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"database_ok":        pingErr == nil,
		"last_refresh":       lastUpdate.Format(time.RFC3339),
		"snapshot_age_hours": math.Round(snapshotAge.Hours()*10) / 10,
		"is_updating":        isUpdating,
		"ai_configured":      h.generator.Configured(),
	}
	if uptime := time.Since(h.analytics.GetServerStartTime()); !h.analytics.GetServerStartTime().IsZero() {
		data["uptime_seconds"] = math.Round(uptime.Seconds())
	}

	return status, data, httpStatus
}

// NextRefresh returns the next scheduled analytics refresh time
func (h *HealthCheckerImpl) NextRefresh() time.Time {
	now := time.Now()

	sixAM := time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, now.Location())
	sixPM := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, now.Location())

	if now.Before(sixAM) {
		return sixAM
	}

	if now.Before(sixPM) {
		return sixPM
	}

	return sixAM.AddDate(0, 0, 1)
}
