// Package handlers provides HTTP request handlers for the portal API endpoints.
// This file implements the route handlers with dependency injection.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/caresync/portal-api/entities"
	"github.com/caresync/portal-api/interfaces"
	"github.com/caresync/portal-api/logging"
	"github.com/caresync/portal-api/medsafety"
	"github.com/caresync/portal-api/metrics"
	"github.com/go-chi/chi/v5"
)

const recentRecordsLimit = 5

// HTTPHandlerImpl carries the injected dependencies for all route handlers
type HTTPHandlerImpl struct {
	store     interfaces.DocumentStore
	analytics interfaces.AnalyticsStore
	assistant interfaces.ClinicalAssistant
	validator interfaces.RequestValidator
	health    interfaces.HealthChecker
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(
	store interfaces.DocumentStore,
	analytics interfaces.AnalyticsStore,
	assistant interfaces.ClinicalAssistant,
	validator interfaces.RequestValidator,
	health interfaces.HealthChecker,
) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		store:     store,
		analytics: analytics,
		assistant: assistant,
		validator: validator,
		health:    health,
	}
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		logging.Error("Failed to write JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]interface{}{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// medicationCheckRequest is the POST /medication-check payload
type medicationCheckRequest struct {
	Medications      []entities.Medication `json:"medications"`
	PatientAllergies []string              `json:"patientAllergies,omitempty"`
	UseAI            bool                  `json:"useAI,omitempty"`
}

// medicationCheckResponse wraps the deterministic result with the optional
// AI narrative
type medicationCheckResponse struct {
	Data       entities.MedicationCheckResult `json:"data"`
	AIAnalysis string                         `json:"aiAnalysis,omitempty"`
}

// MedicationCheck runs the medication safety analyzer over the submitted
// medication list. When useAI is set, the response also carries a narrative
// analysis, which itself degrades to the deterministic fallback text.
func (h *HTTPHandlerImpl) MedicationCheck(w http.ResponseWriter, r *http.Request) {
	var req medicationCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.ValidateMedications(req.Medications); err != nil {
		logging.Warn("Rejected medication check payload", "error", err)
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, allergy := range req.PatientAllergies {
		if err := h.validator.ValidateFreeText("patientAllergies", allergy, 100); err != nil {
			h.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	result := medsafety.AnalyzeMedications(req.Medications)
	metrics.MedicationChecksTotal.WithLabelValues(string(result.OverallRisk)).Inc()

	response := medicationCheckResponse{Data: result}
	if req.UseAI {
		response.AIAnalysis = h.assistant.AnalyzeMedications(r.Context(), req.Medications, req.PatientAllergies)
	}

	h.RespondWithJSON(w, http.StatusOK, response)
}

// appointmentPrepRequest is the POST /appointment-prep payload
type appointmentPrepRequest struct {
	AppointmentID string `json:"appointmentId"`
	PatientID     string `json:"patientId"`
}

// AppointmentPrep resolves the appointment context and generates a
// preparation pack. Record, prescription, and profile lookups degrade to
// empty context so a partial chart still produces a pack.
func (h *HTTPHandlerImpl) AppointmentPrep(w http.ResponseWriter, r *http.Request) {
	var req appointmentPrepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.ValidateID("appointmentId", req.AppointmentID); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.ValidateID("patientId", req.PatientID); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	appointment, err := h.store.GetAppointment(ctx, req.AppointmentID)
	if errors.Is(err, interfaces.ErrNotFound) {
		h.RespondWithError(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		logging.Error("Failed to load appointment", "appointmentId", req.AppointmentID, "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to load appointment")
		return
	}
	if appointment.PatientID != req.PatientID {
		h.RespondWithError(w, http.StatusNotFound, "Appointment not found")
		return
	}

	records, err := h.store.ListRecentRecords(ctx, req.PatientID, recentRecordsLimit)
	if err != nil {
		logging.Warn("Failed to load medical records, continuing without them", "patientId", req.PatientID, "error", err)
		records = nil
	}

	prescriptions, err := h.store.ListActivePrescriptions(ctx, req.PatientID)
	if err != nil {
		logging.Warn("Failed to load prescriptions, continuing without them", "patientId", req.PatientID, "error", err)
		prescriptions = nil
	}

	profile, err := h.store.GetPatientProfile(ctx, req.PatientID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			logging.Warn("Failed to load patient profile, continuing without it", "patientId", req.PatientID, "error", err)
		}
		profile = nil
	}

	pack := h.assistant.GeneratePrepPack(ctx, *appointment, records, prescriptions, profile)

	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"data": pack})
}

// ListPatientAppointments returns a patient's appointments, soonest first
func (h *HTTPHandlerImpl) ListPatientAppointments(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientId")
	if err := h.validator.ValidateID("patientId", patientID); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	appointments, err := h.store.ListAppointmentsByPatient(r.Context(), patientID)
	if err != nil {
		logging.Error("Failed to list appointments", "patientId", patientID, "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to list appointments")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, appointments)
}

// CreateAppointment schedules a new appointment
func (h *HTTPHandlerImpl) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var appt entities.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appt); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.ValidateID("patientId", appt.PatientID); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.ValidateFreeText("reason", appt.Reason, 200); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.ValidateFreeText("notes", appt.Notes, 1000); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if appt.ScheduledAt.IsZero() {
		h.RespondWithError(w, http.StatusBadRequest, "scheduledAt is required")
		return
	}
	if appt.ScheduledAt.Before(time.Now()) {
		h.RespondWithError(w, http.StatusBadRequest, "scheduledAt must be in the future")
		return
	}

	if err := h.store.CreateAppointment(r.Context(), &appt); err != nil {
		logging.Error("Failed to create appointment", "patientId", appt.PatientID, "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	h.RespondWithJSON(w, http.StatusCreated, appt)
}

// ListPatientRecords returns a patient's most recent medical records
func (h *HTTPHandlerImpl) ListPatientRecords(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientId")
	if err := h.validator.ValidateID("patientId", patientID); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.store.ListRecentRecords(r.Context(), patientID, recentRecordsLimit)
	if err != nil {
		logging.Error("Failed to list medical records", "patientId", patientID, "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to list medical records")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, records)
}

// ListPatientPrescriptions returns a patient's active prescriptions
func (h *HTTPHandlerImpl) ListPatientPrescriptions(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientId")
	if err := h.validator.ValidateID("patientId", patientID); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	prescriptions, err := h.store.ListActivePrescriptions(r.Context(), patientID)
	if err != nil {
		logging.Error("Failed to list prescriptions", "patientId", patientID, "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to list prescriptions")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, prescriptions)
}

// CreatePrescription records a new prescription
func (h *HTTPHandlerImpl) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	var prescription entities.Prescription
	if err := json.NewDecoder(r.Body).Decode(&prescription); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.ValidateID("patientId", prescription.PatientID); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validator.ValidateMedications([]entities.Medication{prescription.Medication}); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.CreatePrescription(r.Context(), &prescription); err != nil {
		logging.Error("Failed to create prescription", "patientId", prescription.PatientID, "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to create prescription")
		return
	}

	h.RespondWithJSON(w, http.StatusCreated, prescription)
}

// GetPatientProfile returns a patient's clinical profile
func (h *HTTPHandlerImpl) GetPatientProfile(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientId")
	if err := h.validator.ValidateID("patientId", patientID); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.store.GetPatientProfile(r.Context(), patientID)
	if errors.Is(err, interfaces.ErrNotFound) {
		h.RespondWithError(w, http.StatusNotFound, "Patient profile not found")
		return
	}
	if err != nil {
		logging.Error("Failed to load patient profile", "patientId", patientID, "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to load patient profile")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, profile)
}

// UpsertPatientProfile creates or updates a patient's clinical profile
func (h *HTTPHandlerImpl) UpsertPatientProfile(w http.ResponseWriter, r *http.Request) {
	var profile entities.PatientProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if profile.ID != "" {
		if err := h.validator.ValidateID("id", profile.ID); err != nil {
			h.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := h.validator.ValidateFreeText("name", profile.Name, 100); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, allergy := range profile.Allergies {
		if err := h.validator.ValidateFreeText("allergies", allergy, 100); err != nil {
			h.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	for _, entry := range profile.MedicalHistory {
		if err := h.validator.ValidateFreeText("medicalHistory", entry, 200); err != nil {
			h.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := h.store.UpsertPatientProfile(r.Context(), &profile); err != nil {
		logging.Error("Failed to upsert patient profile", "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "Failed to save patient profile")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, profile)
}

// Analytics serves the latest analytics snapshot from the container
func (h *HTTPHandlerImpl) Analytics(w http.ResponseWriter, r *http.Request) {
	snapshot := h.analytics.GetSnapshot()
	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"data":         snapshot,
		"last_updated": h.analytics.GetLastUpdated(),
		"updating":     h.analytics.IsUpdating(),
	})
}

// HealthCheck serves the /health endpoint
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, data, httpStatus := h.health.HealthCheck(r.Context())
	h.RespondWithJSON(w, httpStatus, map[string]interface{}{
		"status":       status,
		"next_refresh": h.health.NextRefresh().Format(time.RFC3339),
		"data":         data,
	})
}
