package entities

// Severity classifies how dangerous a drug-drug interaction is.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// RiskLevel is the aggregate risk computed over all findings of one check.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Medication is a single medication as entered by a patient or prescriber.
// Name is free text; matching against the knowledge tables is done on a
// normalized form, so "Lisinopril 10mg" still matches the "lisinopril" key.
type Medication struct {
	Name      string `json:"name" bson:"name"`
	Dosage    string `json:"dosage,omitempty" bson:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty" bson:"frequency,omitempty"`
	Duration  string `json:"duration,omitempty" bson:"duration,omitempty"`
}

// MedicationInteraction is one detected drug-drug interaction.
type MedicationInteraction struct {
	ID             string   `json:"id"`
	Medication1    string   `json:"medication1"`
	Medication2    string   `json:"medication2"`
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
}

// DuplicateTherapy flags two or more medications from the same therapeutic class.
type DuplicateTherapy struct {
	ID               string   `json:"id"`
	Medications      []string `json:"medications"`
	TherapeuticClass string   `json:"therapeuticClass"`
	Description      string   `json:"description"`
	Recommendation   string   `json:"recommendation"`
}

// MedicationCheckResult is the full outcome of one medication safety check.
// OverallRisk and ContactProvider are derived only from the findings present.
type MedicationCheckResult struct {
	Interactions    []MedicationInteraction `json:"interactions"`
	Duplicates      []DuplicateTherapy      `json:"duplicates"`
	OverallRisk     RiskLevel               `json:"overallRisk"`
	ContactProvider bool                    `json:"contactProvider"`
	Summary         string                  `json:"summary"`
}
