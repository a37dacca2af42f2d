package entities

import "time"

// PatientProfile holds the clinical profile the prep generator and the AI
// prompts draw from. Stored in the patients collection, upserted on edit.
type PatientProfile struct {
	ID             string    `json:"id" bson:"_id"`
	Name           string    `json:"name" bson:"name"`
	Allergies      []string  `json:"allergies" bson:"allergies"`
	MedicalHistory []string  `json:"medicalHistory" bson:"medicalHistory"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}
