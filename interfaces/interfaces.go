// Package interfaces defines the core abstractions of the portal API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/caresync/portal-api/entities"
)

// ErrNotFound is returned by DocumentStore lookups when no document matches.
var ErrNotFound = errors.New("document not found")

// AnalyticsSnapshot summarizes portal activity at one point in time.
// Refreshed by the scheduler and served lock-free from the data container.
type AnalyticsSnapshot struct {
	AppointmentsByStatus map[string]int `json:"appointments_by_status"`
	Patients             int            `json:"patients"`
	Prescriptions        int            `json:"prescriptions"`
	MedicalRecords       int            `json:"medical_records"`
	GeneratedAt          time.Time      `json:"generated_at"`
}

// DocumentStore defines the contract for the portal's document database.
// All operations take a context and return explicit errors; lookups that
// match nothing return ErrNotFound.
type DocumentStore interface {
	GetAppointment(ctx context.Context, id string) (*entities.Appointment, error)
	ListAppointmentsByPatient(ctx context.Context, patientID string) ([]entities.Appointment, error)
	CreateAppointment(ctx context.Context, appt *entities.Appointment) error

	ListRecentRecords(ctx context.Context, patientID string, limit int64) ([]entities.MedicalRecord, error)
	CreateMedicalRecord(ctx context.Context, rec *entities.MedicalRecord) error

	ListActivePrescriptions(ctx context.Context, patientID string) ([]entities.Prescription, error)
	CreatePrescription(ctx context.Context, p *entities.Prescription) error

	GetPatientProfile(ctx context.Context, patientID string) (*entities.PatientProfile, error)
	UpsertPatientProfile(ctx context.Context, profile *entities.PatientProfile) error

	AggregateAnalytics(ctx context.Context) (*AnalyticsSnapshot, error)

	Ping(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

// AnalyticsStore provides thread-safe access to the latest analytics
// snapshot with atomic operations for zero-downtime refreshes.
type AnalyticsStore interface {
	GetSnapshot() AnalyticsSnapshot
	UpdateSnapshot(snapshot AnalyticsSnapshot)
	GetLastUpdated() time.Time
	IsUpdating() bool
	BeginUpdate() bool
	EndUpdate()
	GetServerStartTime() time.Time
	SetServerStartTime(startTime time.Time)
}

// TextGenerator is the contract for the external generative text service.
// Generate is single-shot: one request, no internal retries.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)

	// Configured reports whether credentials are present. Callers use this
	// to skip the network round trip and go straight to the fallback.
	Configured() bool
}

// ClinicalAssistant produces the AI-enhanced variants of the two rule
// engines. Implementations must never propagate external-service failures:
// any failure degrades to the deterministic result.
type ClinicalAssistant interface {
	AnalyzeMedications(ctx context.Context, medications []entities.Medication, allergies []string) string
	GeneratePrepPack(ctx context.Context, appt entities.Appointment, records []entities.MedicalRecord,
		prescriptions []entities.Prescription, profile *entities.PatientProfile) entities.AppointmentPrepPack
}

// Scheduler defines the contract for background job scheduling.
type Scheduler interface {
	Start() error
	Stop()
}

// RequestValidator validates user-supplied request payloads at the HTTP
// boundary. The pure rule engines themselves are total and never validate.
type RequestValidator interface {
	ValidateMedications(medications []entities.Medication) error
	ValidateID(field, input string) error
	ValidateFreeText(field, input string, maxLen int) error
}

// HealthChecker reports system health for the /health endpoint.
type HealthChecker interface {
	HealthCheck(ctx context.Context) (status string, data map[string]any, httpStatus int)
	NextRefresh() time.Time
}
