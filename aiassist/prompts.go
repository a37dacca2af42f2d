package aiassist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/caresync/portal-api/entities"
)

func medicationPrompt(medications []entities.Medication, allergies []string) string {
	var b strings.Builder

	b.WriteString("You are a clinical pharmacist assistant. Review the following medication list ")
	b.WriteString("and describe potential interactions, duplicate therapies, and practical safety ")
	b.WriteString("advice in plain language a patient can understand. Keep the answer under 300 words ")
	b.WriteString("and always recommend consulting the prescribing doctor or a pharmacist.\n\nMedications:\n")

	for _, med := range medications {
		b.WriteString("- ")
		b.WriteString(med.Name)
		if med.Dosage != "" {
			b.WriteString(" ")
			b.WriteString(med.Dosage)
		}
		if med.Frequency != "" {
			b.WriteString(", ")
			b.WriteString(med.Frequency)
		}
		b.WriteString("\n")
	}

	if len(allergies) > 0 {
		b.WriteString("\nKnown allergies: ")
		b.WriteString(strings.Join(allergies, ", "))
		b.WriteString("\n")
	}

	return b.String()
}

func prepPackPrompt(appointment entities.Appointment, records []entities.MedicalRecord, prescriptions []entities.Prescription, profile *entities.PatientProfile) string {
	var b strings.Builder

	b.WriteString("You are a medical appointment preparation assistant. Based on the patient context ")
	b.WriteString("below, produce a personalized preparation guide for the upcoming appointment.\n\n")

	fmt.Fprintf(&b, "Appointment: %s on %s\n",
		appointment.Reason, appointment.ScheduledAt.Format("January 2, 2006"))

	if len(records) > 0 {
		b.WriteString("\nRecent medical records:\n")
		for _, record := range records {
			fmt.Fprintf(&b, "- %s (%s)\n", record.Diagnosis, record.RecordedAt.Format("Jan 2006"))
		}
	}

	if len(prescriptions) > 0 {
		b.WriteString("\nActive prescriptions:\n")
		for _, prescription := range prescriptions {
			fmt.Fprintf(&b, "- %s %s\n", prescription.Medication.Name, prescription.Medication.Dosage)
		}
	}

	if profile != nil {
		if len(profile.Allergies) > 0 {
			fmt.Fprintf(&b, "\nAllergies: %s\n", strings.Join(profile.Allergies, ", "))
		}
		if len(profile.MedicalHistory) > 0 {
			fmt.Fprintf(&b, "Medical history: %s\n", strings.Join(profile.MedicalHistory, ", "))
		}
	}

	b.WriteString("\nRespond with ONLY a JSON object, no markdown fences and no commentary, in this shape:\n")
	b.WriteString(`{"checklist":[{"text":"...","category":"documents|symptoms|questions|lifestyle|medications"}],`)
	b.WriteString(`"questionsToAsk":["..."],"thingsToMention":["..."],"documentsNeeded":["..."],"summary":"..."}`)
	b.WriteString("\nInclude 5-7 checklist items and 4-6 questions tailored to this patient.")

	return b.String()
}

// aiChecklistItem tolerates providers that return checklist entries either as
// plain strings or as {text, category} objects.
type aiChecklistItem struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func (item *aiChecklistItem) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		item.Text = asString
		return nil
	}

	type plain aiChecklistItem
	var asObject plain
	if err := json.Unmarshal(data, &asObject); err != nil {
		return err
	}
	*item = aiChecklistItem(asObject)
	return nil
}

type aiPrepResponse struct {
	Checklist       []aiChecklistItem `json:"checklist"`
	QuestionsToAsk  []string          `json:"questionsToAsk"`
	ThingsToMention []string          `json:"thingsToMention"`
	DocumentsNeeded []string          `json:"documentsNeeded"`
	Summary         string            `json:"summary"`
}

// parsePrepResponse extracts the prep pack JSON from a completion. Providers
// sometimes wrap the object in prose or markdown fences, so when a direct
// parse fails we retry on the substring between the first '{' and last '}'.
func parsePrepResponse(raw string) (*aiPrepResponse, error) {
	var parsed aiPrepResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return &parsed, nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found in AI response")
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse AI prep response: %w", err)
	}
	return &parsed, nil
}
