package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validDraft() *Employee {
	return &Employee{
		FirstName:   "John",
		LastName:    "Smith",
		Email:       "john.smith@company.com",
		PhoneNumber: "+1-555-010-1234",
		Department:  DepartmentIT,
		Position:    "Senior Software Engineer",
		Salary:      95000,
		HireDate:    time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:      StatusActive,
	}
}

func violationFields(violations []FieldViolation) []string {
	fields := make([]string, len(violations))
	for i, v := range violations {
		fields[i] = v.Field
	}
	return fields
}

func TestValidateDraft(t *testing.T) {
	t.Run("valid draft has no violations", func(t *testing.T) {
		assert.Empty(t, validateDraft(validDraft()))
	})

	t.Run("blank phone number is allowed", func(t *testing.T) {
		d := validDraft()
		d.PhoneNumber = ""
		assert.Empty(t, validateDraft(d))
	})

	t.Run("accepted phone formats", func(t *testing.T) {
		for _, phone := range []string{
			"+1-555-010-1234",
			"(555) 010-1234",
			"555.010.1234",
			"5550101234",
		} {
			d := validDraft()
			d.PhoneNumber = phone
			assert.Empty(t, validateDraft(d), phone)
		}
	})

	t.Run("malformed phone is rejected", func(t *testing.T) {
		d := validDraft()
		d.PhoneNumber = "call-me"
		assert.Contains(t, violationFields(validateDraft(d)), "phone_number")
	})

	t.Run("single character name is too short", func(t *testing.T) {
		d := validDraft()
		d.FirstName = "J"
		assert.Contains(t, violationFields(validateDraft(d)), "first_name")
	})

	t.Run("salary bounds are inclusive", func(t *testing.T) {
		for _, salary := range []float64{20000, 500000} {
			d := validDraft()
			d.Salary = salary
			assert.Empty(t, validateDraft(d))
		}
		for _, salary := range []float64{19999.99, 500000.01, 0} {
			d := validDraft()
			d.Salary = salary
			assert.Contains(t, violationFields(validateDraft(d)), "salary")
		}
	})

	t.Run("hire date today is valid", func(t *testing.T) {
		d := validDraft()
		d.HireDate = time.Now()
		assert.Empty(t, validateDraft(d))
	})

	t.Run("hire date tomorrow is rejected", func(t *testing.T) {
		d := validDraft()
		d.HireDate = time.Now().AddDate(0, 0, 1)
		assert.Contains(t, violationFields(validateDraft(d)), "hire_date")
	})

	t.Run("unknown department and status", func(t *testing.T) {
		d := validDraft()
		d.Department = "LEGAL"
		d.Status = "RETIRED"
		fields := violationFields(validateDraft(d))
		assert.Contains(t, fields, "department")
		assert.Contains(t, fields, "status")
	})

	t.Run("all violations are reported, not just the first", func(t *testing.T) {
		d := &Employee{}
		fields := violationFields(validateDraft(d))
		assert.Contains(t, fields, "first_name")
		assert.Contains(t, fields, "last_name")
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "salary")
		assert.Contains(t, fields, "hire_date")
	})
}
