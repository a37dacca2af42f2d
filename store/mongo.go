// Package store implements the DocumentStore contract on MongoDB.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caresync/portal-api/config"
	"github.com/caresync/portal-api/entities"
	"github.com/caresync/portal-api/interfaces"
	"github.com/caresync/portal-api/logging"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Compile-time check to ensure MongoStore implements DocumentStore
var _ interfaces.DocumentStore = (*MongoStore)(nil)

const (
	collAppointments   = "appointments"
	collRecords        = "medical_records"
	collPrescriptions  = "prescriptions"
	collPatients       = "patients"
	defaultConnTimeout = 10 * time.Second
)

// MongoStore is the MongoDB-backed document store for the portal.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes the MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, cfg *config.Config) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logging.Info("Connected to MongoDB", "database", cfg.MongoDB)
	return &MongoStore{
		client: client,
		db:     client.Database(cfg.MongoDB),
	}, nil
}

// Ping verifies the connection is still alive.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Disconnect closes the underlying connection pool.
func (s *MongoStore) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// GetAppointment looks up one appointment by ID.
func (s *MongoStore) GetAppointment(ctx context.Context, id string) (*entities.Appointment, error) {
	var appt entities.Appointment
	err := s.db.Collection(collAppointments).FindOne(ctx, bson.M{"_id": id}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment %s: %w", id, err)
	}
	return &appt, nil
}

// ListAppointmentsByPatient returns a patient's appointments, soonest first.
func (s *MongoStore) ListAppointmentsByPatient(ctx context.Context, patientID string) ([]entities.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	cursor, err := s.db.Collection(collAppointments).Find(ctx, bson.M{"patientId": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for patient %s: %w", patientID, err)
	}

	appointments := []entities.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

// CreateAppointment inserts a new appointment, assigning an ID and
// timestamps when missing.
func (s *MongoStore) CreateAppointment(ctx context.Context, appt *entities.Appointment) error {
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = now
	}
	appt.UpdatedAt = now
	if appt.Status == "" {
		appt.Status = entities.AppointmentScheduled
	}

	if _, err := s.db.Collection(collAppointments).InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// ListRecentRecords returns the patient's newest medical records, most
// recent first, capped at limit.
func (s *MongoStore) ListRecentRecords(ctx context.Context, patientID string, limit int64) ([]entities.MedicalRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recordedAt", Value: -1}}).SetLimit(limit)
	cursor, err := s.db.Collection(collRecords).Find(ctx, bson.M{"patientId": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list records for patient %s: %w", patientID, err)
	}

	records := []entities.MedicalRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode medical records: %w", err)
	}
	return records, nil
}

// CreateMedicalRecord inserts a new medical record.
func (s *MongoStore) CreateMedicalRecord(ctx context.Context, rec *entities.MedicalRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	if _, err := s.db.Collection(collRecords).InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}
	return nil
}

// ListActivePrescriptions returns the patient's active prescriptions,
// newest first.
func (s *MongoStore) ListActivePrescriptions(ctx context.Context, patientID string) ([]entities.Prescription, error) {
	filter := bson.M{"patientId": patientID, "status": entities.PrescriptionActive}
	opts := options.Find().SetSort(bson.D{{Key: "issuedAt", Value: -1}})
	cursor, err := s.db.Collection(collPrescriptions).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions for patient %s: %w", patientID, err)
	}

	prescriptions := []entities.Prescription{}
	if err := cursor.All(ctx, &prescriptions); err != nil {
		return nil, fmt.Errorf("failed to decode prescriptions: %w", err)
	}
	return prescriptions, nil
}

// CreatePrescription inserts a new prescription.
func (s *MongoStore) CreatePrescription(ctx context.Context, p *entities.Prescription) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.IssuedAt.IsZero() {
		p.IssuedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = entities.PrescriptionActive
	}

	if _, err := s.db.Collection(collPrescriptions).InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

// GetPatientProfile looks up a patient profile by patient ID.
func (s *MongoStore) GetPatientProfile(ctx context.Context, patientID string) (*entities.PatientProfile, error) {
	var profile entities.PatientProfile
	err := s.db.Collection(collPatients).FindOne(ctx, bson.M{"_id": patientID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient profile %s: %w", patientID, err)
	}
	return &profile, nil
}

// UpsertPatientProfile creates or replaces a patient profile.
func (s *MongoStore) UpsertPatientProfile(ctx context.Context, profile *entities.PatientProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	profile.UpdatedAt = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{
		"name":           profile.Name,
		"allergies":      profile.Allergies,
		"medicalHistory": profile.MedicalHistory,
		"updatedAt":      profile.UpdatedAt,
	}}

	err := s.db.Collection(collPatients).
		FindOneAndUpdate(ctx, bson.M{"_id": profile.ID}, update, opts).
		Decode(profile)
	if err != nil {
		return fmt.Errorf("failed to upsert patient profile %s: %w", profile.ID, err)
	}
	return nil
}

// AggregateAnalytics builds the portal activity snapshot served by the
// analytics endpoint. Appointment counts are grouped by status server-side.
func (s *MongoStore) AggregateAnalytics(ctx context.Context) (*interfaces.AnalyticsSnapshot, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := s.db.Collection(collAppointments).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate appointments: %w", err)
	}

	var grouped []struct {
		Status string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cursor.All(ctx, &grouped); err != nil {
		return nil, fmt.Errorf("failed to decode appointment aggregation: %w", err)
	}

	byStatus := make(map[string]int, len(grouped))
	for _, group := range grouped {
		byStatus[group.Status] = group.Count
	}

	patients, err := s.db.Collection(collPatients).CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	prescriptions, err := s.db.Collection(collPrescriptions).CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count prescriptions: %w", err)
	}
	records, err := s.db.Collection(collRecords).CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count medical records: %w", err)
	}

	return &interfaces.AnalyticsSnapshot{
		AppointmentsByStatus: byStatus,
		Patients:             int(patients),
		Prescriptions:        int(prescriptions),
		MedicalRecords:       int(records),
		GeneratedAt:          time.Now().UTC(),
	}, nil
}
