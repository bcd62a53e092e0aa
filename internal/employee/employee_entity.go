package employee

import (
	"time"
)

// Department is a closed enumeration. Order of Departments() follows
// declaration order and is relied on by the statistics output.
type Department string

const (
	DepartmentIT         Department = "IT"
	DepartmentHR         Department = "HR"
	DepartmentFinance    Department = "FINANCE"
	DepartmentMarketing  Department = "MARKETING"
	DepartmentOperations Department = "OPERATIONS"
	DepartmentSales      Department = "SALES"
)

func Departments() []Department {
	return []Department{
		DepartmentIT,
		DepartmentHR,
		DepartmentFinance,
		DepartmentMarketing,
		DepartmentOperations,
		DepartmentSales,
	}
}

func (d Department) Valid() bool {
	switch d {
	case DepartmentIT, DepartmentHR, DepartmentFinance,
		DepartmentMarketing, DepartmentOperations, DepartmentSales:
		return true
	}
	return false
}

func (d Department) Label() string {
	switch d {
	case DepartmentIT:
		return "Information Technology"
	case DepartmentHR:
		return "Human Resources"
	case DepartmentFinance:
		return "Finance"
	case DepartmentMarketing:
		return "Marketing"
	case DepartmentOperations:
		return "Operations"
	case DepartmentSales:
		return "Sales"
	}
	return string(d)
}

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusOnLeave    Status = "ON_LEAVE"
	StatusTerminated Status = "TERMINATED"
)

func Statuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusOnLeave, StatusTerminated}
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave, StatusTerminated:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusInactive:
		return "Inactive"
	case StatusOnLeave:
		return "On Leave"
	case StatusTerminated:
		return "Terminated"
	}
	return string(s)
}

// Employee rows are never physically removed; deletion flips IsActive and
// Status. CreatedAt/UpdatedAt are assigned explicitly in the service layer,
// not through gorm hooks.
type Employee struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement"`
	FirstName   string     `gorm:"column:first_name;size:50;not null"`
	LastName    string     `gorm:"column:last_name;size:50;not null"`
	Email       string     `gorm:"uniqueIndex:uq_employee_email;size:255;not null"`
	PhoneNumber string     `gorm:"column:phone_number;size:20"`
	Department  Department `gorm:"size:20;index;not null"`
	Position    string     `gorm:"size:100;not null"`
	Salary      float64    `gorm:"type:numeric(10,2);not null"`
	HireDate    time.Time  `gorm:"column:hire_date;type:date;index;not null"`
	Status      Status     `gorm:"size:20;index;not null"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;not null"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// TenureInYears is the number of full calendar years since the hire date.
func (e *Employee) TenureInYears() int {
	return tenureMonths(e.HireDate, time.Now()) / 12
}

// TenureInMonths is the number of full calendar months since the hire date.
// A partial month never rounds up.
func (e *Employee) TenureInMonths() int {
	return tenureMonths(e.HireDate, time.Now())
}

func tenureMonths(hire, now time.Time) int {
	if hire.IsZero() || now.Before(hire) {
		return 0
	}

	months := (now.Year()-hire.Year())*12 + int(now.Month()) - int(hire.Month())
	if now.Day() < hire.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
