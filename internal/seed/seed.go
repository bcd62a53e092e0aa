package seed

import (
	"context"
	"time"

	"go-ems/internal/employee"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Employees loads the sample roster when the table is empty. Existing data
// is never touched, so it is safe to run on every startup behind SEED_DATA.
func Employees(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	l := logger.Named("seed")

	var count int64
	if err := db.WithContext(ctx).Model(&employee.Employee{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		l.Info("employees table already populated, skipping seed", zap.Int64("count", count))
		return nil
	}

	roster := sampleEmployees()
	if err := db.WithContext(ctx).CreateInBatches(roster, 50).Error; err != nil {
		return err
	}

	l.Info("seeded sample employees", zap.Int("count", len(roster)))
	return nil
}

func sampleEmployees() []employee.Employee {
	return []employee.Employee{
		// IT
		sample("John", "Smith", "john.smith@company.com", "+1-555-010-1234", employee.DepartmentIT, "Senior Software Engineer", 95000, date(2020, 3, 15), employee.StatusActive),
		sample("Sarah", "Johnson", "sarah.johnson@company.com", "+1-555-010-2345", employee.DepartmentIT, "Software Engineer", 75000, date(2021, 6, 20), employee.StatusActive),
		sample("Michael", "Brown", "michael.brown@company.com", "+1-555-010-3456", employee.DepartmentIT, "DevOps Engineer", 85000, date(2019, 11, 8), employee.StatusActive),
		sample("Emily", "Davis", "emily.davis@company.com", "+1-555-010-4567", employee.DepartmentIT, "QA Engineer", 70000, date(2022, 1, 10), employee.StatusActive),
		sample("David", "Wilson", "david.wilson@company.com", "+1-555-010-5678", employee.DepartmentIT, "System Administrator", 80000, date(2018, 9, 12), employee.StatusOnLeave),
		sample("Thomas", "Scott", "thomas.scott@company.com", "+1-555-010-6789", employee.DepartmentIT, "Frontend Developer", 75000, date(2022, 5, 15), employee.StatusActive),
		sample("Maria", "Green", "maria.green@company.com", "+1-555-010-7890", employee.DepartmentIT, "Backend Developer", 80000, date(2021, 11, 3), employee.StatusActive),
		sample("James", "Adams", "james.adams@company.com", "+1-555-010-8901", employee.DepartmentIT, "Mobile Developer", 78000, date(2022, 2, 20), employee.StatusActive),
		sample("Patricia", "Baker", "patricia.baker@company.com", "+1-555-010-9012", employee.DepartmentIT, "UI/UX Designer", 72000, date(2021, 8, 14), employee.StatusActive),
		sample("Richard", "Carter", "richard.carter@company.com", "+1-555-010-0123", employee.DepartmentIT, "Data Scientist", 90000, date(2020, 4, 7), employee.StatusActive),

		// HR
		sample("Lisa", "Anderson", "lisa.anderson@company.com", "+1-555-020-1234", employee.DepartmentHR, "HR Manager", 75000, date(2019, 4, 5), employee.StatusActive),
		sample("Robert", "Taylor", "robert.taylor@company.com", "+1-555-020-2345", employee.DepartmentHR, "HR Specialist", 60000, date(2021, 2, 18), employee.StatusActive),
		sample("Jennifer", "Martinez", "jennifer.martinez@company.com", "+1-555-020-3456", employee.DepartmentHR, "Recruiter", 55000, date(2022, 7, 25), employee.StatusActive),
		sample("Susan", "Turner", "susan.turner@company.com", "+1-555-020-4567", employee.DepartmentHR, "HR Assistant", 50000, date(2021, 6, 1), employee.StatusTerminated),

		// Finance
		sample("William", "Garcia", "william.garcia@company.com", "+1-555-030-1234", employee.DepartmentFinance, "Finance Manager", 90000, date(2018, 12, 3), employee.StatusActive),
		sample("Amanda", "Rodriguez", "amanda.rodriguez@company.com", "+1-555-030-2345", employee.DepartmentFinance, "Financial Analyst", 65000, date(2020, 8, 14), employee.StatusActive),
		sample("Christopher", "Lee", "christopher.lee@company.com", "+1-555-030-3456", employee.DepartmentFinance, "Accountant", 60000, date(2021, 3, 22), employee.StatusActive),

		// Marketing
		sample("Jessica", "White", "jessica.white@company.com", "+1-555-040-1234", employee.DepartmentMarketing, "Marketing Director", 95000, date(2019, 1, 15), employee.StatusActive),
		sample("Daniel", "Clark", "daniel.clark@company.com", "+1-555-040-2345", employee.DepartmentMarketing, "Marketing Specialist", 65000, date(2020, 5, 30), employee.StatusActive),
		sample("Ashley", "Lewis", "ashley.lewis@company.com", "+1-555-040-3456", employee.DepartmentMarketing, "Content Creator", 55000, date(2022, 3, 8), employee.StatusActive),

		// Operations
		sample("Matthew", "Hall", "matthew.hall@company.com", "+1-555-050-1234", employee.DepartmentOperations, "Operations Manager", 85000, date(2018, 6, 10), employee.StatusActive),
		sample("Nicole", "Young", "nicole.young@company.com", "+1-555-050-2345", employee.DepartmentOperations, "Operations Coordinator", 55000, date(2021, 9, 5), employee.StatusActive),
		sample("Kevin", "King", "kevin.king@company.com", "+1-555-050-3456", employee.DepartmentOperations, "Process Analyst", 70000, date(2020, 12, 18), employee.StatusActive),

		// Sales
		sample("Stephanie", "Wright", "stephanie.wright@company.com", "+1-555-060-1234", employee.DepartmentSales, "Sales Manager", 85000, date(2019, 7, 22), employee.StatusActive),
		sample("Andrew", "Lopez", "andrew.lopez@company.com", "+1-555-060-2345", employee.DepartmentSales, "Sales Representative", 60000, date(2021, 4, 12), employee.StatusActive),
		sample("Rachel", "Hill", "rachel.hill@company.com", "+1-555-060-3456", employee.DepartmentSales, "Account Executive", 65000, date(2020, 10, 28), employee.StatusActive),
		sample("Mark", "Phillips", "mark.phillips@company.com", "+1-555-060-4567", employee.DepartmentSales, "Sales Associate", 55000, date(2020, 3, 15), employee.StatusTerminated),
	}
}

func sample(
	first, last, email, phone string,
	dept employee.Department,
	position string,
	salary float64,
	hireDate time.Time,
	status employee.Status,
) employee.Employee {
	now := time.Now().UTC()
	return employee.Employee{
		FirstName:   first,
		LastName:    last,
		Email:       email,
		PhoneNumber: phone,
		Department:  dept,
		Position:    position,
		Salary:      salary,
		HireDate:    hireDate,
		Status:      status,
		IsActive:    status != employee.StatusTerminated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
