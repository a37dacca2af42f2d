package medsafety

import (
	"fmt"
	"strings"
	"time"

	"github.com/caresync/portal-api/entities"
)

// AnalyzeMedications checks a medication list for known drug-drug
// interactions and duplicate therapies and computes the aggregate risk.
// It is a total function: any input, including an empty list, yields a
// usable result and it never returns an error.
func AnalyzeMedications(medications []entities.Medication) entities.MedicationCheckResult {
	normalized := make([]string, len(medications))
	for i, med := range medications {
		normalized[i] = NormalizeName(med.Name)
	}

	interactions := detectInteractions(medications, normalized)
	duplicates := detectDuplicates(medications, normalized)
	risk, contact := aggregateRisk(interactions, duplicates)

	return entities.MedicationCheckResult{
		Interactions:    interactions,
		Duplicates:      duplicates,
		OverallRisk:     risk,
		ContactProvider: contact,
		Summary:         buildSummary(len(interactions), len(duplicates)),
	}
}

// detectInteractions scans every ordered medication pair against the
// interaction table. The scan is directional (a pair can match through
// either drug's trigger rule), so results are deduplicated by unordered
// pair: the first rule to match a pair wins.
func detectInteractions(medications []entities.Medication, normalized []string) []entities.MedicationInteraction {
	interactions := []entities.MedicationInteraction{}
	seen := make(map[[2]int]bool)
	now := time.Now().UnixMilli()

	for i, name := range normalized {
		if name == "" {
			continue
		}
		for _, rule := range interactionTable {
			if !strings.Contains(name, rule.Trigger) {
				continue
			}
			for _, other := range rule.InteractsWith {
				for j, otherName := range normalized {
					if j == i || !strings.Contains(otherName, other) {
						continue
					}

					pair := [2]int{i, j}
					if j < i {
						pair = [2]int{j, i}
					}
					if seen[pair] {
						continue
					}
					seen[pair] = true

					interactions = append(interactions, entities.MedicationInteraction{
						ID:             fmt.Sprintf("interaction-%d-%d", now, len(interactions)),
						Medication1:    medications[i].Name,
						Medication2:    medications[j].Name,
						Severity:       rule.Severity,
						Description:    rule.Description,
						Recommendation: recommendationFor(rule.Severity),
					})
				}
			}
		}
	}

	return interactions
}

// detectDuplicates flags every therapeutic class matched by two or more
// distinct input medications.
func detectDuplicates(medications []entities.Medication, normalized []string) []entities.DuplicateTherapy {
	duplicates := []entities.DuplicateTherapy{}
	now := time.Now().UnixMilli()

	for _, class := range therapeuticClasses {
		var matched []string
		for i, name := range normalized {
			if name == "" {
				continue
			}
			for _, drug := range class.Drugs {
				if strings.Contains(name, drug) {
					matched = append(matched, medications[i].Name)
					break
				}
			}
		}

		if len(matched) >= 2 {
			duplicates = append(duplicates, entities.DuplicateTherapy{
				ID:               fmt.Sprintf("duplicate-%d-%d", now, len(duplicates)),
				Medications:      matched,
				TherapeuticClass: class.Name,
				Description:      fmt.Sprintf("You are taking %d medications from the same class (%s). This may be unintentional duplicate therapy.", len(matched), class.Name),
				Recommendation:   duplicateTherapyRecommendation,
			})
		}
	}

	return duplicates
}

// aggregateRisk derives the overall risk level and whether the patient
// should contact their provider. Evaluated in priority order, first match
// wins; a single critical interaction dominates everything else.
func aggregateRisk(interactions []entities.MedicationInteraction, duplicates []entities.DuplicateTherapy) (entities.RiskLevel, bool) {
	var hasCritical, hasMajor, hasModerate bool
	for _, in := range interactions {
		switch in.Severity {
		case entities.SeverityCritical:
			hasCritical = true
		case entities.SeverityMajor:
			hasMajor = true
		case entities.SeverityModerate:
			hasModerate = true
		case entities.SeverityMinor:
			// minor interactions alone never raise the risk level
		}
	}

	switch {
	case hasCritical:
		return entities.RiskCritical, true
	case hasMajor || len(duplicates) > 0:
		return entities.RiskHigh, true
	case hasModerate:
		return entities.RiskModerate, true
	default:
		return entities.RiskLow, false
	}
}

// buildSummary composes the human-readable digest from finding counts.
func buildSummary(interactionCount, duplicateCount int) string {
	if interactionCount == 0 && duplicateCount == 0 {
		return "No known interactions or duplicate therapies were found among your medications."
	}

	var parts []string
	if interactionCount > 0 {
		parts = append(parts, fmt.Sprintf("Found %d potential interaction(s).", interactionCount))
	}
	if duplicateCount > 0 {
		parts = append(parts, fmt.Sprintf("Found %d duplicate therapy concern(s).", duplicateCount))
	}
	parts = append(parts, "Review the recommendations below with your healthcare provider.")

	return strings.Join(parts, " ")
}

// FallbackAnalysis builds a deterministic free-text safety review from the
// analyzer output. It is the local substitute for the AI-generated analysis
// and always returns a non-empty string.
func FallbackAnalysis(medications []entities.Medication, allergies []string) string {
	var b strings.Builder
	b.WriteString("Medication safety review:\n\n")

	if len(medications) == 0 {
		b.WriteString("No medications were provided, so there is nothing to review.")
		return b.String()
	}

	result := AnalyzeMedications(medications)
	fmt.Fprintf(&b, "Overall risk level: %s.\n", result.OverallRisk)

	if len(result.Interactions) > 0 {
		b.WriteString("\nPotential interactions:\n")
		for _, in := range result.Interactions {
			fmt.Fprintf(&b, "- %s + %s (%s): %s %s\n", in.Medication1, in.Medication2, in.Severity, in.Description, in.Recommendation)
		}
	}

	if len(result.Duplicates) > 0 {
		b.WriteString("\nDuplicate therapy concerns:\n")
		for _, dup := range result.Duplicates {
			fmt.Fprintf(&b, "- %s: %s %s\n", dup.TherapeuticClass, strings.Join(dup.Medications, ", "), dup.Recommendation)
		}
	}

	if len(allergies) > 0 {
		fmt.Fprintf(&b, "\nAllergy reminder: you have reported allergies to %s. Confirm each medication against this list with your pharmacist.\n", strings.Join(allergies, ", "))
	}

	b.WriteString("\n")
	b.WriteString(result.Summary)
	return b.String()
}
