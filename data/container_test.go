package data

import (
	"sync"
	"testing"
	"time"

	"github.com/caresync/portal-api/interfaces"
)

func TestNewAnalyticsContainer(t *testing.T) {
	ac := NewAnalyticsContainer()

	if ac == nil {
		t.Fatal("NewAnalyticsContainer returned nil")
	}

	// Test initial state
	if ac.IsUpdating() {
		t.Error("NewAnalyticsContainer should not be updating")
	}

	if !ac.GetLastUpdated().IsZero() {
		t.Error("NewAnalyticsContainer should have zero lastUpdated time")
	}

	snapshot := ac.GetSnapshot()
	if len(snapshot.AppointmentsByStatus) != 0 {
		t.Error("NewAnalyticsContainer should have an empty status map")
	}
	if snapshot.Patients != 0 {
		t.Errorf("Expected 0 patients, got %d", snapshot.Patients)
	}
}

func TestUpdateSnapshot(t *testing.T) {
	ac := NewAnalyticsContainer()

	snapshot := interfaces.AnalyticsSnapshot{
		AppointmentsByStatus: map[string]int{"scheduled": 3, "completed": 7},
		Patients:             12,
		Prescriptions:        20,
		MedicalRecords:       35,
		GeneratedAt:          time.Now(),
	}

	ac.UpdateSnapshot(snapshot)

	retrieved := ac.GetSnapshot()
	if retrieved.Patients != 12 {
		t.Errorf("Expected 12 patients, got %d", retrieved.Patients)
	}
	if retrieved.AppointmentsByStatus["scheduled"] != 3 {
		t.Errorf("Expected 3 scheduled appointments, got %d", retrieved.AppointmentsByStatus["scheduled"])
	}
	if ac.GetLastUpdated().IsZero() {
		t.Error("Expected lastUpdated to be set after UpdateSnapshot")
	}
}

func TestBeginEndUpdate(t *testing.T) {
	ac := NewAnalyticsContainer()

	if !ac.BeginUpdate() {
		t.Fatal("First BeginUpdate should succeed")
	}
	if !ac.IsUpdating() {
		t.Error("IsUpdating should be true after BeginUpdate")
	}
	if ac.BeginUpdate() {
		t.Error("Second BeginUpdate should fail while an update is in progress")
	}

	ac.EndUpdate()
	if ac.IsUpdating() {
		t.Error("IsUpdating should be false after EndUpdate")
	}
	if !ac.BeginUpdate() {
		t.Error("BeginUpdate should succeed again after EndUpdate")
	}
	ac.EndUpdate()
}

func TestServerStartTime(t *testing.T) {
	ac := NewAnalyticsContainer()

	if !ac.GetServerStartTime().IsZero() {
		t.Error("Expected zero server start time initially")
	}

	start := time.Now()
	ac.SetServerStartTime(start)

	if !ac.GetServerStartTime().Equal(start) {
		t.Errorf("Expected server start time %v, got %v", start, ac.GetServerStartTime())
	}
}

func TestConcurrentSnapshotAccess(t *testing.T) {
	ac := NewAnalyticsContainer()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			ac.UpdateSnapshot(interfaces.AnalyticsSnapshot{
				AppointmentsByStatus: map[string]int{"scheduled": n},
				Patients:             n,
				GeneratedAt:          time.Now(),
			})
		}(i)
		go func() {
			defer wg.Done()
			snapshot := ac.GetSnapshot()
			if snapshot.Patients < 0 {
				t.Error("Snapshot should never be negative")
			}
		}()
	}
	wg.Wait()

	if ac.GetSnapshot().AppointmentsByStatus == nil {
		t.Error("Status map should never be nil after concurrent updates")
	}
}
