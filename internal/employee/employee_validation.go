package employee

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	minNameLength     = 2
	maxNameLength     = 50
	maxPositionLength = 100
	minSalary         = 20000.00
	maxSalary         = 500000.00
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?1?[-.\s]?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})$`)
)

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validateDraft runs every domain rule over an assembled draft and returns
// the full list of violations, not just the first one. Request-shape checks
// (missing fields, malformed JSON) happen earlier at the binding layer.
func validateDraft(empl *Employee) []FieldViolation {
	var violations []FieldViolation

	violations = append(violations, validateName("first_name", empl.FirstName)...)
	violations = append(violations, validateName("last_name", empl.LastName)...)

	if !emailPattern.MatchString(empl.Email) {
		violations = append(violations, FieldViolation{
			Field:   "email",
			Message: "must be a valid email address",
		})
	}

	if phone := strings.TrimSpace(empl.PhoneNumber); phone != "" && !phonePattern.MatchString(phone) {
		violations = append(violations, FieldViolation{
			Field:   "phone_number",
			Message: "must be a valid phone number",
		})
	}

	if !empl.Department.Valid() {
		violations = append(violations, FieldViolation{
			Field:   "department",
			Message: "must be one of the known departments",
		})
	}

	if strings.TrimSpace(empl.Position) == "" {
		violations = append(violations, FieldViolation{
			Field:   "position",
			Message: "is required",
		})
	} else if len(empl.Position) > maxPositionLength {
		violations = append(violations, FieldViolation{
			Field:   "position",
			Message: fmt.Sprintf("cannot exceed %d characters", maxPositionLength),
		})
	}

	if empl.Salary < minSalary || empl.Salary > maxSalary {
		violations = append(violations, FieldViolation{
			Field:   "salary",
			Message: fmt.Sprintf("must be between %.0f and %.0f", minSalary, maxSalary),
		})
	}

	if empl.HireDate.IsZero() {
		violations = append(violations, FieldViolation{
			Field:   "hire_date",
			Message: "is required",
		})
	} else if empl.HireDate.After(endOfToday()) {
		violations = append(violations, FieldViolation{
			Field:   "hire_date",
			Message: "cannot be in the future",
		})
	}

	if !empl.Status.Valid() {
		violations = append(violations, FieldViolation{
			Field:   "status",
			Message: "must be one of the known statuses",
		})
	}

	return violations
}

func validateName(field, value string) []FieldViolation {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return []FieldViolation{{Field: field, Message: "is required"}}
	}
	if len(trimmed) < minNameLength || len(trimmed) > maxNameLength {
		return []FieldViolation{{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d characters", minNameLength, maxNameLength),
		}}
	}
	return nil
}

// endOfToday keeps a hire date of "today" valid regardless of the hour the
// request arrives.
func endOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
}
