package employee

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// DepartmentStat is one row of the grouped aggregate query. AvgSalary is
// only meaningful when Count > 0.
type DepartmentStat struct {
	Department Department
	Count      int64
	AvgSalary  float64
}

type DepartmentCount struct {
	Department Department
	Count      int64
}

type DepartmentSalaryTotal struct {
	Department Department
	Total      float64
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	Save(ctx context.Context, empl *Employee) error
	FindByID(ctx context.Context, id uint64) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailExcluding(ctx context.Context, email string, id uint64) (bool, error)
	FindPage(ctx context.Context, q *Query) ([]Employee, int64, error)
	Search(ctx context.Context, keyword string) ([]Employee, error)
	FindByDepartment(ctx context.Context, dept Department) ([]Employee, error)
	FindByStatus(ctx context.Context, status Status) ([]Employee, error)
	FindByActive(ctx context.Context, active bool) ([]Employee, error)
	FindActiveBySalaryRange(ctx context.Context, minSalary, maxSalary float64) ([]Employee, error)
	FindActiveByHireDateRange(ctx context.Context, start, end time.Time) ([]Employee, error)
	FindTopPaid(ctx context.Context, limit int) ([]Employee, error)
	Count(ctx context.Context) (int64, error)
	CountByActive(ctx context.Context, active bool) (int64, error)
	CountByDepartment(ctx context.Context) ([]DepartmentCount, error)
	DepartmentStatistics(ctx context.Context) ([]DepartmentStat, error)
	SalaryTotalsByDepartment(ctx context.Context) ([]DepartmentSalaryTotal, error)
	FindOptions(ctx context.Context) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn binds the gorm session to the caller's transaction when one is
// present, so entity writes and outbox writes commit together.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}

	session := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
	session.Statement.ConnPool = r.tx
	return session
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) Save(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Save(empl).Error
}

func (r *repository) FindByID(ctx context.Context, id uint64) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).First(&empl, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&Employee{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsByEmailExcluding(ctx context.Context, email string, id uint64) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&Employee{}).
		Where("email = ?", email).
		Where("id <> ?", id).
		Count(&count).Error
	return count > 0, err
}

// FindPage runs the count and the fetch over the same specification
// predicate. A window past the end of the result set yields an empty slice
// with the correct total.
func (r *repository) FindPage(ctx context.Context, q *Query) ([]Employee, int64, error) {
	var total int64
	if err := r.conn(ctx).Model(&Employee{}).
		Scopes(q.Scope()).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []Employee
	err := r.conn(ctx).
		Scopes(q.Scope()).
		Order(q.OrderClause()).
		Offset(q.Offset()).
		Limit(q.Limit()).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Search matches active and inactive employees alike; history stays
// findable by name.
func (r *repository) Search(ctx context.Context, keyword string) ([]Employee, error) {
	var items []Employee
	err := r.conn(ctx).
		Scopes(keywordScope(keyword)).
		Order("first_name ASC, last_name ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindByDepartment(ctx context.Context, dept Department) ([]Employee, error) {
	var items []Employee
	err := r.conn(ctx).
		Where("department = ?", dept).
		Order("first_name ASC, last_name ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindByStatus(ctx context.Context, status Status) ([]Employee, error) {
	var items []Employee
	err := r.conn(ctx).
		Where("status = ?", status).
		Order("first_name ASC, last_name ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindByActive(ctx context.Context, active bool) ([]Employee, error) {
	var items []Employee
	err := r.conn(ctx).
		Where("is_active = ?", active).
		Order("first_name ASC, last_name ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindActiveBySalaryRange(ctx context.Context, minSalary, maxSalary float64) ([]Employee, error) {
	var items []Employee
	err := r.conn(ctx).
		Where("is_active = ?", true).
		Where("salary >= ? AND salary <= ?", minSalary, maxSalary).
		Order("salary DESC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindActiveByHireDateRange(ctx context.Context, start, end time.Time) ([]Employee, error) {
	var items []Employee
	err := r.conn(ctx).
		Where("is_active = ?", true).
		Where("hire_date >= ? AND hire_date <= ?", start, end).
		Order("hire_date ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindTopPaid(ctx context.Context, limit int) ([]Employee, error) {
	var items []Employee
	err := r.conn(ctx).
		Order("salary DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&Employee{}).Count(&count).Error
	return count, err
}

func (r *repository) CountByActive(ctx context.Context, active bool) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&Employee{}).
		Where("is_active = ?", active).
		Count(&count).Error
	return count, err
}

// CountByDepartment groups the whole table, terminated rows included.
func (r *repository) CountByDepartment(ctx context.Context) ([]DepartmentCount, error) {
	var counts []DepartmentCount
	err := r.conn(ctx).Model(&Employee{}).
		Select("department, COUNT(*) AS count").
		Group("department").
		Scan(&counts).Error
	return counts, err
}

// DepartmentStatistics covers active employees only. Departments with no
// active employees are absent from the result; the service layer fills
// those in from the closed enumeration.
func (r *repository) DepartmentStatistics(ctx context.Context) ([]DepartmentStat, error) {
	var stats []DepartmentStat
	err := r.conn(ctx).Model(&Employee{}).
		Select("department, COUNT(*) AS count, AVG(salary) AS avg_salary").
		Where("is_active = ?", true).
		Group("department").
		Scan(&stats).Error
	return stats, err
}

func (r *repository) SalaryTotalsByDepartment(ctx context.Context) ([]DepartmentSalaryTotal, error) {
	var totals []DepartmentSalaryTotal
	err := r.conn(ctx).Model(&Employee{}).
		Select("department, SUM(salary) AS total").
		Where("is_active = ?", true).
		Group("department").
		Scan(&totals).Error
	return totals, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var items []Employee
	err := r.conn(ctx).
		Select("id", "first_name", "last_name", "email").
		Where("is_active = ?", true).
		Order("first_name ASC, last_name ASC").
		Find(&items).Error
	return items, err
}
