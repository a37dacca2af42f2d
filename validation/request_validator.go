// Package validation provides request payload validation for the portal API.
package validation

import (
	"fmt"
	"strings"

	"github.com/caresync/portal-api/entities"
	"github.com/caresync/portal-api/interfaces"
)

const (
	maxMedications      = 50
	maxMedicationName   = 200
	maxMedicationDetail = 100
	maxIDLength         = 64
)

// Dangerous patterns as strings (faster than regex for simple substring matching)
// strings.Contains is 5-10x faster than regex for these patterns
var dangerousPatterns = []string{
	"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
	"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
	"eval(", "expression(", "url(", "import ", "@import", "binding(", "behavior(",
	// SQL injection patterns
	"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
	"update set", "--", "/*", "*/", "xp_", "sp_", "exec(", "execute(",
	// Command injection patterns
	"; ", "| ", "& ", "`", "$(", "${",
	// Path traversal patterns
	"../", "..\\", "%2e%2e", "file://",
	// NoSQL injection patterns
	"{$ne:", "{$gt:", "{$where:", "{$or:", "{$regex:", "{$expr:",
}

// RequestValidatorImpl implements the interfaces.RequestValidator interface
type RequestValidatorImpl struct{}

// NewRequestValidator creates a new request validator
func NewRequestValidator() interfaces.RequestValidator {
	return &RequestValidatorImpl{}
}

// ValidateMedications checks a user-submitted medication list. The list must
// be non-empty, each entry must carry a name, and every field must be free of
// injection payloads.
func (v *RequestValidatorImpl) ValidateMedications(medications []entities.Medication) error {
	if len(medications) == 0 {
		return fmt.Errorf("medications list is empty")
	}
	if len(medications) > maxMedications {
		return fmt.Errorf("too many medications: %d (maximum %d)", len(medications), maxMedications)
	}

	for i, med := range medications {
		if strings.TrimSpace(med.Name) == "" {
			return fmt.Errorf("medication %d has an empty name", i)
		}
		if len(med.Name) > maxMedicationName {
			return fmt.Errorf("medication %d name too long: %d characters", i, len(med.Name))
		}
		if err := checkDangerousContent(med.Name); err != nil {
			return fmt.Errorf("medication %d name: %w", i, err)
		}

		for _, detail := range []string{med.Dosage, med.Frequency, med.Duration} {
			if len(detail) > maxMedicationDetail {
				return fmt.Errorf("medication %d detail too long: %d characters", i, len(detail))
			}
			if err := checkDangerousContent(detail); err != nil {
				return fmt.Errorf("medication %d: %w", i, err)
			}
		}
	}

	return nil
}

// ValidateID checks a path or payload identifier.
func (v *RequestValidatorImpl) ValidateID(field, input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(input) > maxIDLength {
		return fmt.Errorf("%s too long: %d characters (maximum %d)", field, len(input), maxIDLength)
	}

	for _, r := range input {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isAlnum && r != '-' && r != '_' {
			return fmt.Errorf("%s contains invalid character: %q", field, r)
		}
	}

	return nil
}

// ValidateFreeText checks a free-form text field for length and
// injection payloads. Empty input is allowed.
func (v *RequestValidatorImpl) ValidateFreeText(field, input string, maxLen int) error {
	if len(input) > maxLen {
		return fmt.Errorf("%s too long: %d characters (maximum %d)", field, len(input), maxLen)
	}
	if strings.ContainsRune(input, 0) {
		return fmt.Errorf("%s contains null bytes", field)
	}
	if err := checkDangerousContent(input); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

func checkDangerousContent(input string) error {
	lower := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}
	return nil
}
