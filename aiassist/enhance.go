package aiassist

import (
	"context"
	"fmt"
	"time"

	"github.com/caresync/portal-api/entities"
	"github.com/caresync/portal-api/interfaces"
	"github.com/caresync/portal-api/logging"
	"github.com/caresync/portal-api/medsafety"
	"github.com/caresync/portal-api/metrics"
	"github.com/caresync/portal-api/prepgen"
)

// Compile-time check to ensure Enhancer implements ClinicalAssistant
var _ interfaces.ClinicalAssistant = (*Enhancer)(nil)

// Enhancer layers generative text on top of the deterministic rule engines.
// Every failure path returns the deterministic result, so callers always get
// a usable answer regardless of provider availability.
type Enhancer struct {
	generator interfaces.TextGenerator
}

// NewEnhancer creates a clinical assistant backed by the given text generator.
func NewEnhancer(generator interfaces.TextGenerator) *Enhancer {
	return &Enhancer{generator: generator}
}

// AnalyzeMedications returns a narrative safety analysis for the medication
// list. When the generator is unconfigured or fails, the deterministic
// fallback text is returned instead.
func (e *Enhancer) AnalyzeMedications(ctx context.Context, medications []entities.Medication, allergies []string) string {
	if !e.generator.Configured() {
		metrics.AIRequestsTotal.WithLabelValues("skipped").Inc()
		return medsafety.FallbackAnalysis(medications, allergies)
	}

	analysis, err := e.generator.Generate(ctx, medicationPrompt(medications, allergies))
	if err != nil {
		logging.Warn("AI medication analysis failed, using fallback", "error", err)
		metrics.AIRequestsTotal.WithLabelValues("fallback").Inc()
		return medsafety.FallbackAnalysis(medications, allergies)
	}
	if analysis == "" {
		metrics.AIRequestsTotal.WithLabelValues("fallback").Inc()
		return medsafety.FallbackAnalysis(medications, allergies)
	}

	metrics.AIRequestsTotal.WithLabelValues("success").Inc()
	return analysis
}

// GeneratePrepPack returns an AI-personalized preparation pack, falling back
// to the rule-generated pack when the provider fails or returns a response
// that cannot be parsed into a usable pack.
func (e *Enhancer) GeneratePrepPack(ctx context.Context, appointment entities.Appointment, records []entities.MedicalRecord, prescriptions []entities.Prescription, profile *entities.PatientProfile) entities.AppointmentPrepPack {
	fallbackPack := func() entities.AppointmentPrepPack {
		metrics.PrepPacksTotal.WithLabelValues("rules").Inc()
		return prepgen.Generate(appointment, records, prescriptions)
	}

	if !e.generator.Configured() {
		metrics.AIRequestsTotal.WithLabelValues("skipped").Inc()
		return fallbackPack()
	}

	raw, err := e.generator.Generate(ctx, prepPackPrompt(appointment, records, prescriptions, profile))
	if err != nil {
		logging.Warn("AI prep pack generation failed, using rule engine", "error", err)
		metrics.AIRequestsTotal.WithLabelValues("fallback").Inc()
		return fallbackPack()
	}

	parsed, err := parsePrepResponse(raw)
	if err != nil {
		logging.Warn("AI prep pack response unusable, using rule engine", "error", err)
		metrics.AIRequestsTotal.WithLabelValues("fallback").Inc()
		return fallbackPack()
	}

	pack, ok := buildPack(appointment, parsed)
	if !ok {
		logging.Warn("AI prep pack response incomplete, using rule engine")
		metrics.AIRequestsTotal.WithLabelValues("fallback").Inc()
		return fallbackPack()
	}

	metrics.AIRequestsTotal.WithLabelValues("success").Inc()
	metrics.PrepPacksTotal.WithLabelValues("ai").Inc()
	return pack
}

// buildPack converts a parsed AI response into a prep pack. A response with
// an empty checklist or no questions is rejected so a degenerate completion
// never replaces the rule-generated pack.
func buildPack(appointment entities.Appointment, parsed *aiPrepResponse) (entities.AppointmentPrepPack, bool) {
	if len(parsed.Checklist) == 0 || len(parsed.QuestionsToAsk) == 0 {
		return entities.AppointmentPrepPack{}, false
	}

	now := time.Now().UnixMilli()
	checklist := make([]entities.PrepChecklistItem, 0, len(parsed.Checklist))
	for i, item := range parsed.Checklist {
		if item.Text == "" {
			continue
		}
		checklist = append(checklist, entities.PrepChecklistItem{
			ID:        fmt.Sprintf("prep-%d-%d", now, i),
			Text:      item.Text,
			Completed: false,
			Category:  checklistCategory(item.Category),
		})
	}
	if len(checklist) == 0 {
		return entities.AppointmentPrepPack{}, false
	}

	summary := parsed.Summary
	if summary == "" {
		summary = fmt.Sprintf("Preparation guide for your %q appointment on %s.",
			appointment.Reason, appointment.ScheduledAt.Format("Monday, January 2, 2006"))
	}

	return entities.AppointmentPrepPack{
		AppointmentID:     appointment.ID,
		AppointmentReason: appointment.Reason,
		AppointmentDate:   appointment.ScheduledAt,
		Checklist:         checklist,
		QuestionsToAsk:    parsed.QuestionsToAsk,
		ThingsToMention:   parsed.ThingsToMention,
		DocumentsNeeded:   parsed.DocumentsNeeded,
		Summary:           summary,
	}, true
}

func checklistCategory(category string) entities.ChecklistCategory {
	switch entities.ChecklistCategory(category) {
	case entities.CategoryDocuments, entities.CategorySymptoms, entities.CategoryQuestions,
		entities.CategoryLifestyle, entities.CategoryMedications:
		return entities.ChecklistCategory(category)
	default:
		return entities.CategoryQuestions
	}
}
