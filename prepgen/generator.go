// Package prepgen implements the deterministic appointment preparation
// generator: a rule-driven checklist, suggested questions, things to
// mention, and required documents for an upcoming appointment.
package prepgen

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/caresync/portal-api/entities"
)

// ruleItem is one checklist fragment contributed by a keyword rule.
type ruleItem struct {
	Text     string
	Category entities.ChecklistCategory
}

// checklistRule appends its items when any keyword appears in the
// lowercased appointment reason. Rules are independent and non-exclusive.
type checklistRule struct {
	Keywords []string
	Items    []ruleItem
}

// questionRule works the same way for suggested questions.
type questionRule struct {
	Keywords  []string
	Questions []string
}

var baseChecklist = []ruleItem{
	{Text: "Bring a photo ID and your insurance card", Category: entities.CategoryDocuments},
	{Text: "Write down all current medications with dosage and frequency", Category: entities.CategoryMedications},
	{Text: "Note any changes in your symptoms since your last visit", Category: entities.CategorySymptoms},
}

var checklistRules = []checklistRule{
	{
		Keywords: []string{"follow", "check"},
		Items: []ruleItem{
			{Text: "Bring notes on how your current treatment has been working", Category: entities.CategorySymptoms},
			{Text: "Review the goals set at your previous visit", Category: entities.CategoryLifestyle},
		},
	},
	{
		Keywords: []string{"blood", "lab", "test"},
		Items: []ruleItem{
			{Text: "Fast for 8-12 hours before your test if instructed", Category: entities.CategoryLifestyle},
			{Text: "Drink plenty of water beforehand unless told otherwise", Category: entities.CategoryLifestyle},
		},
	},
	{
		Keywords: []string{"pain", "chronic"},
		Items: []ruleItem{
			{Text: "Keep a pain diary for the days leading up to the appointment", Category: entities.CategorySymptoms},
			{Text: "Rate your pain from 1 to 10 at different times of day", Category: entities.CategorySymptoms},
		},
	},
	{
		Keywords: []string{"surgery", "procedure"},
		Items: []ruleItem{
			{Text: "Arrange transportation home after the procedure", Category: entities.CategoryLifestyle},
			{Text: "Confirm pre-procedure instructions about eating and medications", Category: entities.CategoryMedications},
		},
	},
	{
		Keywords: []string{"mental", "anxiety", "depression"},
		Items: []ruleItem{
			{Text: "Track your mood daily in the week before the visit", Category: entities.CategorySymptoms},
			{Text: "Note any changes in sleep or appetite", Category: entities.CategorySymptoms},
		},
	},
}

var baseQuestions = []string{
	"What are the next steps after this appointment?",
	"What warning signs should I watch for?",
}

var medicationQuestions = []string{
	"Are any changes needed to my current medications?",
	"What side effects should I watch for with my prescriptions?",
}

var questionRules = []questionRule{
	{
		Keywords: []string{"new", "first", "initial"},
		Questions: []string{
			"What should I expect at this first visit?",
			"What information should I bring to future visits?",
			"How do I reach the office if I have questions afterwards?",
		},
	},
	{
		Keywords: []string{"follow", "check"},
		Questions: []string{
			"Has my condition improved since the last visit?",
			"Should we adjust the current treatment plan?",
		},
	},
	{
		Keywords: []string{"test", "result"},
		Questions: []string{
			"When and how will I receive my results?",
			"What would the possible results mean for my treatment?",
		},
	},
	{
		Keywords: []string{"pain", "symptom"},
		Questions: []string{
			"What could be causing my symptoms?",
			"What can I do at home to manage the discomfort?",
		},
	},
	{
		Keywords: []string{"medication", "prescription"},
		Questions: []string{
			"Why am I taking each of my medications?",
			"Can any of my medications be stopped or reduced?",
		},
	},
}

// Generate builds the complete prep pack for an appointment. Deterministic
// apart from checklist item IDs, which are unique within one call.
func Generate(appt entities.Appointment, records []entities.MedicalRecord, prescriptions []entities.Prescription) entities.AppointmentPrepPack {
	reason := strings.ToLower(appt.Reason)

	return entities.AppointmentPrepPack{
		AppointmentID:     appt.ID,
		AppointmentReason: appt.Reason,
		AppointmentDate:   appt.ScheduledAt,
		Checklist:         buildChecklist(reason),
		QuestionsToAsk:    buildQuestions(reason, prescriptions),
		ThingsToMention:   buildThingsToMention(records, prescriptions),
		DocumentsNeeded:   buildDocumentsNeeded(reason, records),
		Summary: fmt.Sprintf("Preparation guide for your %q appointment on %s.",
			appt.Reason, appt.ScheduledAt.Format("Monday, January 2, 2006")),
	}
}

func matchesAny(reason string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(reason, kw) {
			return true
		}
	}
	return false
}

func buildChecklist(reason string) []entities.PrepChecklistItem {
	items := make([]ruleItem, 0, len(baseChecklist)+4)
	items = append(items, baseChecklist...)

	for _, rule := range checklistRules {
		if matchesAny(reason, rule.Keywords) {
			items = append(items, rule.Items...)
		}
	}

	now := time.Now().UnixMilli()
	checklist := make([]entities.PrepChecklistItem, len(items))
	for i, item := range items {
		checklist[i] = entities.PrepChecklistItem{
			ID:        fmt.Sprintf("prep-%d-%d", now, i),
			Text:      item.Text,
			Completed: false,
			Category:  item.Category,
		}
	}
	return checklist
}

func buildQuestions(reason string, prescriptions []entities.Prescription) []string {
	questions := make([]string, 0, len(baseQuestions)+6)
	questions = append(questions, baseQuestions...)

	if len(prescriptions) > 0 {
		questions = append(questions, medicationQuestions...)
	}

	for _, rule := range questionRules {
		if matchesAny(reason, rule.Keywords) {
			questions = append(questions, rule.Questions...)
		}
	}
	return questions
}

func buildThingsToMention(records []entities.MedicalRecord, prescriptions []entities.Prescription) []string {
	mentions := []string{}

	// Most recent records first, capped at 3
	sorted := make([]entities.MedicalRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.After(sorted[j].RecordedAt)
	})
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}
	for _, rec := range sorted {
		mentions = append(mentions, fmt.Sprintf("Recent diagnosis: %s (%s)",
			rec.Diagnosis, rec.RecordedAt.Format("Jan 2, 2006")))
	}

	if len(prescriptions) > 0 {
		mentions = append(mentions, fmt.Sprintf("You currently have %d active prescription(s) on file", len(prescriptions)))
	}
	return mentions
}

func buildDocumentsNeeded(reason string, records []entities.MedicalRecord) []string {
	documents := []string{"Insurance card", "Photo ID"}

	if len(records) > 0 {
		documents = append(documents, "Previous medical records")
	}
	if matchesAny(reason, []string{"referral", "specialist"}) {
		documents = append(documents, "Referral letter")
	}
	if matchesAny(reason, []string{"test", "lab"}) {
		documents = append(documents, "Previous test results")
	}
	if matchesAny(reason, []string{"imaging", "scan", "x-ray", "xray"}) {
		documents = append(documents, "Previous imaging")
	}
	return documents
}
