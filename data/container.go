// Package data provides thread-safe storage for the portal's analytics
// snapshot. The AnalyticsContainer uses atomic operations for zero-downtime
// refreshes so request handlers never block on a scheduler update.
package data

import (
	"sync/atomic"
	"time"

	"github.com/caresync/portal-api/interfaces"
	"github.com/caresync/portal-api/logging"
)

// Compile-time check to ensure AnalyticsContainer implements AnalyticsStore
var _ interfaces.AnalyticsStore = (*AnalyticsContainer)(nil)

// AnalyticsContainer holds the latest analytics snapshot with atomic
// pointers for zero-downtime updates
type AnalyticsContainer struct {
	snapshot        atomic.Value // interfaces.AnalyticsSnapshot
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewAnalyticsContainer creates a new AnalyticsContainer with an empty snapshot
func NewAnalyticsContainer() *AnalyticsContainer {
	ac := &AnalyticsContainer{}
	ac.snapshot.Store(interfaces.AnalyticsSnapshot{
		AppointmentsByStatus: make(map[string]int),
	})
	ac.lastUpdated.Store(time.Time{})
	ac.serverStartTime.Store(time.Time{})
	return ac
}

// GetSnapshot returns the latest analytics snapshot
func (ac *AnalyticsContainer) GetSnapshot() interfaces.AnalyticsSnapshot {
	if v := ac.snapshot.Load(); v != nil {
		if snapshot, ok := v.(interfaces.AnalyticsSnapshot); ok {
			return snapshot
		}
	}

	logging.Warn("Analytics snapshot is empty or invalid")
	return interfaces.AnalyticsSnapshot{AppointmentsByStatus: make(map[string]int)}
}

// UpdateSnapshot atomically replaces the analytics snapshot
func (ac *AnalyticsContainer) UpdateSnapshot(snapshot interfaces.AnalyticsSnapshot) {
	// Atomic swap (zero downtime replacement)
	ac.snapshot.Store(snapshot)
	ac.lastUpdated.Store(time.Now())
}

// GetLastUpdated returns the timestamp of the last snapshot refresh
func (ac *AnalyticsContainer) GetLastUpdated() time.Time {
	if v := ac.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a snapshot refresh is currently in progress
func (ac *AnalyticsContainer) IsUpdating() bool {
	return ac.updating.Load()
}

// BeginUpdate marks the start of a snapshot refresh
// Returns true if the refresh can proceed, false if another is in progress
func (ac *AnalyticsContainer) BeginUpdate() bool {
	return ac.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a snapshot refresh
func (ac *AnalyticsContainer) EndUpdate() {
	ac.updating.Store(false)
}

// SetServerStartTime sets the server start time
func (ac *AnalyticsContainer) SetServerStartTime(startTime time.Time) {
	ac.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (ac *AnalyticsContainer) GetServerStartTime() time.Time {
	if v := ac.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}
