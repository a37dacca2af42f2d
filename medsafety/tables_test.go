package medsafety

import (
	"testing"

	"github.com/caresync/portal-api/entities"
)

func TestInteractionTableWellFormed(t *testing.T) {
	validSeverities := map[entities.Severity]bool{
		entities.SeverityMinor:    true,
		entities.SeverityModerate: true,
		entities.SeverityMajor:    true,
		entities.SeverityCritical: true,
	}

	for i, rule := range interactionTable {
		if rule.Trigger == "" {
			t.Errorf("Rule %d has an empty trigger", i)
		}
		if rule.Trigger != NormalizeName(rule.Trigger) {
			t.Errorf("Rule %d trigger %q is not normalized", i, rule.Trigger)
		}
		if len(rule.InteractsWith) == 0 {
			t.Errorf("Rule %d (%s) has no interacting drugs", i, rule.Trigger)
		}
		for _, drug := range rule.InteractsWith {
			if drug != NormalizeName(drug) {
				t.Errorf("Rule %d (%s) interacting drug %q is not normalized", i, rule.Trigger, drug)
			}
		}
		if !validSeverities[rule.Severity] {
			t.Errorf("Rule %d (%s) has invalid severity %q", i, rule.Trigger, rule.Severity)
		}
		if rule.Description == "" {
			t.Errorf("Rule %d (%s) has no description", i, rule.Trigger)
		}
	}
}

func TestTherapeuticClassesWellFormed(t *testing.T) {
	expectedClasses := []string{
		"ACE Inhibitors", "Beta Blockers", "Statins",
		"NSAIDs", "Proton Pump Inhibitors", "SSRIs",
	}

	if len(therapeuticClasses) != len(expectedClasses) {
		t.Fatalf("Expected %d therapeutic classes, got %d", len(expectedClasses), len(therapeuticClasses))
	}

	for i, class := range therapeuticClasses {
		if class.Name != expectedClasses[i] {
			t.Errorf("Class %d: expected %q, got %q", i, expectedClasses[i], class.Name)
		}
		if len(class.Drugs) < 3 || len(class.Drugs) > 4 {
			t.Errorf("Class %s: expected 3-4 representative drugs, got %d", class.Name, len(class.Drugs))
		}
		for _, drug := range class.Drugs {
			if drug != NormalizeName(drug) {
				t.Errorf("Class %s drug %q is not normalized", class.Name, drug)
			}
		}
	}
}

func TestEveryTablePairSurfaces(t *testing.T) {
	// Every (trigger, interacting) pair in the table must be detected at
	// least once when exactly those two drugs are analyzed.
	for _, rule := range interactionTable {
		for _, other := range rule.InteractsWith {
			result := AnalyzeMedications([]entities.Medication{
				{Name: rule.Trigger}, {Name: other},
			})
			if len(result.Interactions) == 0 {
				t.Errorf("Pair (%s, %s) produced no interaction", rule.Trigger, other)
				continue
			}
			if result.Interactions[0].Severity != rule.Severity {
				t.Errorf("Pair (%s, %s): expected severity %s, got %s",
					rule.Trigger, other, rule.Severity, result.Interactions[0].Severity)
			}
		}
	}
}

func TestRecommendationsPerSeverity(t *testing.T) {
	severities := []entities.Severity{
		entities.SeverityMinor, entities.SeverityModerate,
		entities.SeverityMajor, entities.SeverityCritical,
	}

	texts := make(map[string]bool)
	for _, s := range severities {
		rec := recommendationFor(s)
		if rec == "" {
			t.Errorf("Severity %s has no recommendation", s)
		}
		if texts[rec] {
			t.Errorf("Severity %s shares a recommendation with another severity", s)
		}
		texts[rec] = true
	}
}
