package entities

import "time"

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment is a scheduled visit between a patient and a doctor.
type Appointment struct {
	ID          string            `json:"id" bson:"_id"`
	PatientID   string            `json:"patientId" bson:"patientId"`
	DoctorID    string            `json:"doctorId" bson:"doctorId"`
	Reason      string            `json:"reason" bson:"reason"`
	Notes       string            `json:"notes,omitempty" bson:"notes,omitempty"`
	Status      AppointmentStatus `json:"status" bson:"status"`
	ScheduledAt time.Time         `json:"scheduledAt" bson:"scheduledAt"`
	CreatedAt   time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// MedicalRecord is one diagnosis entry in a patient's chart.
type MedicalRecord struct {
	ID         string    `json:"id" bson:"_id"`
	PatientID  string    `json:"patientId" bson:"patientId"`
	Diagnosis  string    `json:"diagnosis" bson:"diagnosis"`
	Notes      string    `json:"notes,omitempty" bson:"notes,omitempty"`
	RecordedAt time.Time `json:"recordedAt" bson:"recordedAt"`
}

// PrescriptionStatus represents the lifecycle state of a prescription.
type PrescriptionStatus string

const (
	PrescriptionActive    PrescriptionStatus = "active"
	PrescriptionCompleted PrescriptionStatus = "completed"
	PrescriptionCancelled PrescriptionStatus = "cancelled"
)

// Prescription links a patient to a prescribed medication.
type Prescription struct {
	ID         string             `json:"id" bson:"_id"`
	PatientID  string             `json:"patientId" bson:"patientId"`
	DoctorID   string             `json:"doctorId" bson:"doctorId"`
	Medication Medication         `json:"medication" bson:"medication"`
	Status     PrescriptionStatus `json:"status" bson:"status"`
	IssuedAt   time.Time          `json:"issuedAt" bson:"issuedAt"`
}
