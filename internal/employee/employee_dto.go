package employee

type CreateEmployeeRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	PhoneNumber string  `json:"phone_number"`
	Department  string  `json:"department" binding:"required"`
	Position    string  `json:"position" binding:"required"`
	Salary      float64 `json:"salary" binding:"required"`
	HireDate    string  `json:"hire_date" binding:"required"`
	Status      string  `json:"status"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateEmployeeRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	PhoneNumber string  `json:"phone_number"`
	Department  string  `json:"department" binding:"required"`
	Position    string  `json:"position" binding:"required"`
	Salary      float64 `json:"salary" binding:"required"`
	HireDate    string  `json:"hire_date" binding:"required"`
	Status      string  `json:"status" binding:"required"`
	IsActive    *bool   `json:"is_active" binding:"required"`
}

type EmployeeResponse struct {
	ID              uint64  `json:"id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	FullName        string  `json:"full_name"`
	Email           string  `json:"email"`
	PhoneNumber     string  `json:"phone_number,omitempty"`
	Department      string  `json:"department"`
	DepartmentLabel string  `json:"department_label"`
	Position        string  `json:"position"`
	Salary          float64 `json:"salary"`
	HireDate        string  `json:"hire_date"`
	Status          string  `json:"status"`
	StatusLabel     string  `json:"status_label"`
	IsActive        bool    `json:"is_active"`
	TenureYears     int     `json:"tenure_years"`
	TenureMonths    int     `json:"tenure_months"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type EmployeeOptionResponse struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type DepartmentStatsResponse struct {
	Count int64 `json:"count"`
	// AvgSalary is null when the department has no active employees.
	AvgSalary *float64 `json:"avgSalary"`
}

type StatisticsResponse struct {
	Total         int64                              `json:"total"`
	Active        int64                              `json:"active"`
	Inactive      int64                              `json:"inactive"`
	PerDepartment map[string]DepartmentStatsResponse `json:"perDepartment"`
}
