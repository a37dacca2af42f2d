package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/caresync/portal-api/data"
	"github.com/caresync/portal-api/entities"
	"github.com/caresync/portal-api/interfaces"
)

// mockDocumentStore for testing the scheduler refresh path
type mockDocumentStore struct {
	aggregateCount int
	shouldFail     bool
}

func (m *mockDocumentStore) GetAppointment(ctx context.Context, id string) (*entities.Appointment, error) {
	return nil, interfaces.ErrNotFound
}

func (m *mockDocumentStore) ListAppointmentsByPatient(ctx context.Context, patientID string) ([]entities.Appointment, error) {
	return nil, nil
}

func (m *mockDocumentStore) CreateAppointment(ctx context.Context, appt *entities.Appointment) error {
	return nil
}

func (m *mockDocumentStore) ListRecentRecords(ctx context.Context, patientID string, limit int64) ([]entities.MedicalRecord, error) {
	return nil, nil
}

func (m *mockDocumentStore) CreateMedicalRecord(ctx context.Context, rec *entities.MedicalRecord) error {
	return nil
}

func (m *mockDocumentStore) ListActivePrescriptions(ctx context.Context, patientID string) ([]entities.Prescription, error) {
	return nil, nil
}

func (m *mockDocumentStore) CreatePrescription(ctx context.Context, p *entities.Prescription) error {
	return nil
}

func (m *mockDocumentStore) GetPatientProfile(ctx context.Context, patientID string) (*entities.PatientProfile, error) {
	return nil, interfaces.ErrNotFound
}

func (m *mockDocumentStore) UpsertPatientProfile(ctx context.Context, profile *entities.PatientProfile) error {
	return nil
}

func (m *mockDocumentStore) AggregateAnalytics(ctx context.Context) (*interfaces.AnalyticsSnapshot, error) {
	m.aggregateCount++
	if m.shouldFail {
		return nil, errors.New("aggregation failed")
	}
	return &interfaces.AnalyticsSnapshot{
		AppointmentsByStatus: map[string]int{"scheduled": 4},
		Patients:             10,
		Prescriptions:        25,
		MedicalRecords:       40,
		GeneratedAt:          time.Now(),
	}, nil
}

func (m *mockDocumentStore) Ping(ctx context.Context) error {
	return nil
}

func (m *mockDocumentStore) Disconnect(ctx context.Context) error {
	return nil
}

func TestRefreshAnalytics(t *testing.T) {
	container := data.NewAnalyticsContainer()
	store := &mockDocumentStore{}
	s := NewScheduler(container, store)

	if err := s.refreshAnalytics(); err != nil {
		t.Fatalf("Expected refresh to succeed, got %v", err)
	}

	if store.aggregateCount != 1 {
		t.Errorf("Expected 1 aggregation, got %d", store.aggregateCount)
	}

	snapshot := container.GetSnapshot()
	if snapshot.Patients != 10 {
		t.Errorf("Expected 10 patients in snapshot, got %d", snapshot.Patients)
	}
	if snapshot.AppointmentsByStatus["scheduled"] != 4 {
		t.Errorf("Expected 4 scheduled appointments, got %d", snapshot.AppointmentsByStatus["scheduled"])
	}
	if container.GetLastUpdated().IsZero() {
		t.Error("Expected lastUpdated to be set after refresh")
	}
}

func TestRefreshAnalyticsFailure(t *testing.T) {
	container := data.NewAnalyticsContainer()
	store := &mockDocumentStore{shouldFail: true}
	s := NewScheduler(container, store)

	if err := s.refreshAnalytics(); err == nil {
		t.Fatal("Expected refresh to fail, got nil")
	}

	// The snapshot must stay at its previous state on failure
	if container.GetSnapshot().Patients != 0 {
		t.Error("Expected snapshot to remain empty after a failed refresh")
	}
	if container.IsUpdating() {
		t.Error("Expected updating flag to be cleared after a failed refresh")
	}
}

func TestRefreshSkipsWhenUpdateInProgress(t *testing.T) {
	container := data.NewAnalyticsContainer()
	store := &mockDocumentStore{}
	s := NewScheduler(container, store)

	if !container.BeginUpdate() {
		t.Fatal("BeginUpdate should succeed")
	}
	defer container.EndUpdate()

	if err := s.refreshAnalytics(); err != nil {
		t.Fatalf("Expected skip to return nil, got %v", err)
	}
	if store.aggregateCount != 0 {
		t.Errorf("Expected no aggregation while another update is in progress, got %d", store.aggregateCount)
	}
}

func TestStartFailsWhenInitialLoadFails(t *testing.T) {
	container := data.NewAnalyticsContainer()
	store := &mockDocumentStore{shouldFail: true}
	s := NewScheduler(container, store)

	if err := s.Start(); err == nil {
		t.Fatal("Expected Start to fail when the initial load fails")
	}
}

func TestStartAndStop(t *testing.T) {
	container := data.NewAnalyticsContainer()
	store := &mockDocumentStore{}
	s := NewScheduler(container, store)

	if err := s.Start(); err != nil {
		t.Fatalf("Expected Start to succeed, got %v", err)
	}
	defer s.Stop()

	if store.aggregateCount != 1 {
		t.Errorf("Expected one initial aggregation, got %d", store.aggregateCount)
	}
}
