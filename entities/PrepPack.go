package entities

import "time"

// ChecklistCategory groups checklist items for display in the portal UI.
type ChecklistCategory string

const (
	CategoryDocuments   ChecklistCategory = "documents"
	CategorySymptoms    ChecklistCategory = "symptoms"
	CategoryQuestions   ChecklistCategory = "questions"
	CategoryLifestyle   ChecklistCategory = "lifestyle"
	CategoryMedications ChecklistCategory = "medications"
)

// PrepChecklistItem is a single actionable item in a prep pack checklist.
// Completed always initializes to false; the client toggles its own copy.
type PrepChecklistItem struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	Completed bool              `json:"completed"`
	Category  ChecklistCategory `json:"category"`
}

// AppointmentPrepPack is the bundle of preparation guidance generated for
// one upcoming appointment.
type AppointmentPrepPack struct {
	AppointmentID     string              `json:"appointmentId"`
	AppointmentReason string              `json:"appointmentReason"`
	AppointmentDate   time.Time           `json:"appointmentDate"`
	Checklist         []PrepChecklistItem `json:"checklist"`
	QuestionsToAsk    []string            `json:"questionsToAsk"`
	ThingsToMention   []string            `json:"thingsToMention"`
	DocumentsNeeded   []string            `json:"documentsNeeded"`
	Summary           string              `json:"summary"`
}
