// Package scheduler provides the automated analytics refresh for the portal
// API. It handles cron-based snapshot rebuilds, staleness monitoring, and
// coordinates refreshes with the analytics container using dependency injection.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/caresync/portal-api/interfaces"
	"github.com/caresync/portal-api/logging"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

const refreshTimeout = 30 * time.Second

// Scheduler handles analytics refreshes and staleness monitoring using
// dependency injection
type Scheduler struct {
	analytics interfaces.AnalyticsStore
	documents interfaces.DocumentStore
	scheduler *gocron.Scheduler
	stopCh    chan struct{}
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(analytics interfaces.AnalyticsStore, documents interfaces.DocumentStore) *Scheduler {
	return &Scheduler{
		analytics: analytics,
		documents: documents,
		scheduler: gocron.NewScheduler(time.Local),
		stopCh:    make(chan struct{}),
	}
}

// Start performs the initial snapshot load and schedules periodic refreshes
func (s *Scheduler) Start() error {
	// Initial load
	if err := s.refreshAnalytics(); err != nil {
		logging.Error("Failed to perform initial analytics load", "error", err)
		return fmt.Errorf("initial analytics load failed: %w", err)
	}

	// Schedule refreshes at 06:00 and 18:00 daily
	_, err := s.scheduler.Every(1).Days().At("06:00;18:00").Do(func() {
		if err := s.refreshAnalytics(); err != nil {
			logging.Error("Failed to refresh analytics", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule analytics refreshes", "error", err)
		return fmt.Errorf("failed to schedule analytics refreshes: %w", err)
	}

	s.scheduler.StartAsync()

	// Start staleness monitoring
	s.startStalenessMonitoring()

	return nil
}

// Stop stops the scheduler and the staleness monitor
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	close(s.stopCh)
}

// refreshAnalytics rebuilds the analytics snapshot from the document store
func (s *Scheduler) refreshAnalytics() error {
	// Prevent concurrent refreshes
	if !s.analytics.BeginUpdate() {
		logging.Info("Analytics refresh already in progress, skipping...")
		return nil
	}
	defer s.analytics.EndUpdate()

	logging.Info(fmt.Sprintf("Starting analytics refresh at: %s", time.Now().Format(time.RFC3339)))
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	snapshot, err := s.documents.AggregateAnalytics(ctx)
	if err != nil {
		logging.Error("Failed to aggregate analytics", "error", err)
		return fmt.Errorf("failed to aggregate analytics: %w", err)
	}

	// Atomic swap so readers never see a partial snapshot
	s.analytics.UpdateSnapshot(*snapshot)

	elapsed := time.Since(start)
	logging.Info("Analytics refresh completed",
		"duration", elapsed.String(),
		"patients", snapshot.Patients,
		"prescriptions", snapshot.Prescriptions,
	)

	return nil
}

// startStalenessMonitoring warns when the snapshot misses its refresh window
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				lastUpdate := s.analytics.GetLastUpdated()
				if time.Since(lastUpdate) > 13*time.Hour {
					logging.Warn("Analytics snapshot hasn't been refreshed in over 13 hours")
				}
			}
		}
	}()
}
