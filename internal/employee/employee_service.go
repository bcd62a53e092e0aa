package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsCacheKey = "employees:options:v1"
	optionsCacheTTL         = time.Hour
	topPaidWindow           = 10
	hireDateLayout          = "2006-01-02"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, id uint64, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (EmployeeResponse, error)
	GetByEmail(ctx context.Context, email string) (*EmployeeResponse, error)
	Search(ctx context.Context, keyword string) ([]EmployeeResponse, error)
	SearchPage(ctx context.Context, keyword string, page Page) ([]EmployeeResponse, int64, error)
	List(ctx context.Context, filter Filter, sorts []Sort, page Page) ([]EmployeeResponse, int64, error)
	ListActive(ctx context.Context) ([]EmployeeResponse, error)
	ListByDepartment(ctx context.Context, dept Department) ([]EmployeeResponse, error)
	ListByStatus(ctx context.Context, status Status) ([]EmployeeResponse, error)
	ListBySalaryRange(ctx context.Context, minSalary, maxSalary float64) ([]EmployeeResponse, error)
	ListByHireDateRange(ctx context.Context, start, end time.Time) ([]EmployeeResponse, error)
	TopPaid(ctx context.Context, limit int) ([]EmployeeResponse, error)
	Statistics(ctx context.Context) (StatisticsResponse, error)
	CountByDepartment(ctx context.Context) (map[string]int64, error)
	SalaryTotalsByDepartment(ctx context.Context) (map[string]float64, error)
	EmailIsUnique(ctx context.Context, email string, excludeID *uint64) (bool, error)
	GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department", req.Department),
	)

	empl, err := draftFromCreate(req)
	if err != nil {
		s.logger.Warn("create employee invalid draft", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if violations := validateDraft(empl); len(violations) > 0 {
		s.logger.Warn("create employee validation failed",
			zap.String("request_id", rid),
			zap.Int("violations", len(violations)),
		)
		return EmployeeResponse{}, employeeerrors.ErrValidationFailed.WithDetails(violations)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Pre-check keeps the common case friendly; the unique constraint on
	// commit is the real guarantee and maps to the same error.
	exists, err := qtx.ExistsByEmail(ctx, empl.Email)
	if err != nil {
		s.logger.Error("create employee email check failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if exists {
		return EmployeeResponse{}, employeeerrors.ErrDuplicateEmail
	}

	now := time.Now().UTC()
	empl.CreatedAt = now
	empl.UpdatedAt = now

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  events.TypeEmployeeCreated,
			RequestID:  rid,
			EmployeeID: empl.ID,
			Email:      empl.Email,
			Department: string(empl.Department),
			OccurredAt: now,
		}
		if err := s.enqueueOutbox(ctx, tx, empl.ID, event.EventType, rid, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.Uint64("employee_id", empl.ID),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint64("employee_id", empl.ID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id uint64, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.Uint64("employee_id", id),
	)

	draft, err := draftFromUpdate(req)
	if err != nil {
		s.logger.Warn("update employee invalid draft", zap.Uint64("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if violations := validateDraft(draft); len(violations) > 0 {
		s.logger.Warn("update employee validation failed",
			zap.Uint64("employee_id", id),
			zap.Int("violations", len(violations)),
		)
		return EmployeeResponse{}, employeeerrors.ErrValidationFailed.WithDetails(violations)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.Uint64("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// Re-submitting the unchanged email is never a conflict; only a change
	// that collides with a different employee is.
	if draft.Email != empl.Email {
		taken, err := qtx.ExistsByEmailExcluding(ctx, draft.Email, id)
		if err != nil {
			s.logger.Error("update employee email check failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		if taken {
			return EmployeeResponse{}, employeeerrors.ErrDuplicateEmail
		}
	}

	empl.FirstName = draft.FirstName
	empl.LastName = draft.LastName
	empl.Email = draft.Email
	empl.PhoneNumber = draft.PhoneNumber
	empl.Department = draft.Department
	empl.Position = draft.Position
	empl.Salary = draft.Salary
	empl.HireDate = draft.HireDate
	empl.Status = draft.Status
	empl.IsActive = draft.IsActive
	empl.UpdatedAt = time.Now().UTC()

	if err := qtx.Save(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("update employee success", zap.Uint64("employee_id", id))

	return mapToResponse(*empl), nil
}

// Delete is a soft delete: the row stays queryable for history and
// statistics over inactive employees. Deleting an already terminated
// employee is a state no-op that still succeeds.
func (s *service) Delete(ctx context.Context, id uint64) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.Uint64("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("delete employee fetch failed", zap.Uint64("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	empl.IsActive = false
	empl.Status = StatusTerminated
	empl.UpdatedAt = time.Now().UTC()

	if err := qtx.Save(ctx, empl); err != nil {
		s.logger.Error("delete employee persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeTerminatedEvent{
			EventType:  events.TypeEmployeeTerminated,
			RequestID:  rid,
			EmployeeID: empl.ID,
			OccurredAt: empl.UpdatedAt,
		}
		if err := s.enqueueOutbox(ctx, tx, empl.ID, event.EventType, rid, event); err != nil {
			s.logger.Error("delete employee outbox persist failed",
				zap.Uint64("employee_id", empl.ID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("delete employee success", zap.Uint64("employee_id", id))
	return nil
}

func (s *service) GetByID(ctx context.Context, id uint64) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.Uint64("employee_id", id))

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

// GetByEmail returns nil without error when no employee has the email.
func (s *service) GetByEmail(ctx context.Context, email string) (*EmployeeResponse, error) {
	s.logger.Debug("get employee by email requested", zap.String("email", email))

	empl, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, employeeerrors.ErrEmployeeNotFound) {
			return nil, nil
		}
		return nil, mapped
	}

	resp := mapToResponse(*empl)
	return &resp, nil
}

func (s *service) Search(ctx context.Context, keyword string) ([]EmployeeResponse, error) {
	keyword = strings.TrimSpace(keyword)
	s.logger.Debug("search employees requested", zap.String("keyword", keyword))

	// Blank keyword means "no filter", which for the flat search endpoint
	// is the active roster.
	if keyword == "" {
		items, err := s.repo.FindByActive(ctx, true)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		return mapToListResponse(items), nil
	}

	items, err := s.repo.Search(ctx, keyword)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(items), nil
}

func (s *service) SearchPage(ctx context.Context, keyword string, page Page) ([]EmployeeResponse, int64, error) {
	s.logger.Debug("paginated search requested",
		zap.String("keyword", keyword),
		zap.Int("page", page.Index),
		zap.Int("size", page.Size),
	)

	return s.List(ctx, Filter{Keyword: keyword}, nil, page)
}

func (s *service) List(ctx context.Context, filter Filter, sorts []Sort, page Page) ([]EmployeeResponse, int64, error) {
	s.logger.Debug("list employees requested",
		zap.Int("page", page.Index),
		zap.Int("size", page.Size),
	)

	q, err := BuildQuery(filter, sorts, page)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.repo.FindPage(ctx, q)
	if err != nil {
		return nil, 0, mapRepositoryError(err)
	}

	return mapToListResponse(items), total, nil
}

func (s *service) ListActive(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("list active employees requested")

	items, err := s.repo.FindByActive(ctx, true)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(items), nil
}

func (s *service) ListByDepartment(ctx context.Context, dept Department) ([]EmployeeResponse, error) {
	s.logger.Debug("list by department requested", zap.String("department", string(dept)))

	if !dept.Valid() {
		return nil, employeeerrors.ErrInvalidDepartment
	}

	items, err := s.repo.FindByDepartment(ctx, dept)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(items), nil
}

func (s *service) ListByStatus(ctx context.Context, status Status) ([]EmployeeResponse, error) {
	s.logger.Debug("list by status requested", zap.String("status", string(status)))

	if !status.Valid() {
		return nil, employeeerrors.ErrInvalidStatus
	}

	items, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(items), nil
}

func (s *service) ListBySalaryRange(ctx context.Context, minSalary, maxSalary float64) ([]EmployeeResponse, error) {
	s.logger.Debug("list by salary range requested",
		zap.Float64("min", minSalary),
		zap.Float64("max", maxSalary),
	)

	if minSalary > maxSalary {
		return nil, employeeerrors.ErrInvalidSalaryRange
	}

	items, err := s.repo.FindActiveBySalaryRange(ctx, minSalary, maxSalary)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(items), nil
}

func (s *service) ListByHireDateRange(ctx context.Context, start, end time.Time) ([]EmployeeResponse, error) {
	s.logger.Debug("list by hire date range requested",
		zap.Time("start", start),
		zap.Time("end", end),
	)

	if start.After(end) {
		return nil, employeeerrors.ErrInvalidHireDateRange
	}

	items, err := s.repo.FindActiveByHireDateRange(ctx, start, end)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(items), nil
}

// TopPaid honors limits within the window and clamps larger ones to it.
// Asking for zero or fewer rows yields an empty list, not the full window.
func (s *service) TopPaid(ctx context.Context, limit int) ([]EmployeeResponse, error) {
	s.logger.Debug("top paid requested", zap.Int("limit", limit))

	if limit <= 0 {
		return []EmployeeResponse{}, nil
	}
	if limit > topPaidWindow {
		limit = topPaidWindow
	}

	items, err := s.repo.FindTopPaid(ctx, limit)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(items), nil
}

// Statistics is recomputed from storage on every call; no aggregate state
// is kept in process. Departments with no active employees appear with a
// zero count and a null average rather than being dropped.
func (s *service) Statistics(ctx context.Context) (StatisticsResponse, error) {
	s.logger.Debug("statistics requested")

	total, err := s.repo.Count(ctx)
	if err != nil {
		return StatisticsResponse{}, mapRepositoryError(err)
	}

	active, err := s.repo.CountByActive(ctx, true)
	if err != nil {
		return StatisticsResponse{}, mapRepositoryError(err)
	}

	inactive, err := s.repo.CountByActive(ctx, false)
	if err != nil {
		return StatisticsResponse{}, mapRepositoryError(err)
	}

	deptStats, err := s.repo.DepartmentStatistics(ctx)
	if err != nil {
		return StatisticsResponse{}, mapRepositoryError(err)
	}

	perDepartment := make(map[string]DepartmentStatsResponse, len(Departments()))
	for _, dept := range Departments() {
		perDepartment[string(dept)] = DepartmentStatsResponse{}
	}
	for _, row := range deptStats {
		avg := row.AvgSalary
		perDepartment[string(row.Department)] = DepartmentStatsResponse{
			Count:     row.Count,
			AvgSalary: &avg,
		}
	}

	return StatisticsResponse{
		Total:         total,
		Active:        active,
		Inactive:      inactive,
		PerDepartment: perDepartment,
	}, nil
}

// CountByDepartment counts every employee per department, terminated
// included; the statistics endpoint is the active-only view.
func (s *service) CountByDepartment(ctx context.Context) (map[string]int64, error) {
	s.logger.Debug("count by department requested")

	rows, err := s.repo.CountByDepartment(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	counts := make(map[string]int64, len(Departments()))
	for _, dept := range Departments() {
		counts[string(dept)] = 0
	}
	for _, row := range rows {
		counts[string(row.Department)] = row.Count
	}

	return counts, nil
}

// SalaryTotalsByDepartment sums active salaries per department. Departments
// with no active employees report a zero total.
func (s *service) SalaryTotalsByDepartment(ctx context.Context) (map[string]float64, error) {
	s.logger.Debug("salary totals by department requested")

	rows, err := s.repo.SalaryTotalsByDepartment(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	totals := make(map[string]float64, len(Departments()))
	for _, dept := range Departments() {
		totals[string(dept)] = 0
	}
	for _, row := range rows {
		totals[string(row.Department)] = row.Total
	}

	return totals, nil
}

func (s *service) EmailIsUnique(ctx context.Context, email string, excludeID *uint64) (bool, error) {
	s.logger.Debug("email uniqueness check requested", zap.String("email", email))

	if excludeID == nil {
		exists, err := s.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return false, mapRepositoryError(err)
		}
		return !exists, nil
	}

	exists, err := s.repo.ExistsByEmailExcluding(ctx, email, *excludeID)
	if err != nil {
		return false, mapRepositoryError(err)
	}
	return !exists, nil
}

// GetOptions serves the dropdown roster through redis with a singleflight
// guard so a cold cache triggers a single rebuild under load. Mutations
// invalidate the key.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeOptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsCacheKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsCacheKey, func() (interface{}, error) {
		items, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(items))
		for i, empl := range items {
			resp[i] = EmployeeOptionResponse{
				ID:       empl.ID,
				FullName: empl.FullName(),
				Email:    empl.Email,
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsCacheKey, jsonData, optionsCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) enqueueOutbox(
	ctx context.Context,
	tx *sql.Tx,
	employeeID uint64,
	eventType events.Type,
	rid string,
	payload any,
) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Enqueue(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   formatID(employeeID),
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       data,
		Status:        kafka.OutboxPending,
	})
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsCacheKey),
		)
	}
}

func draftFromCreate(req CreateEmployeeRequest) (*Employee, error) {
	hireDate, err := time.Parse(hireDateLayout, req.HireDate)
	if err != nil {
		return nil, employeeerrors.ErrInvalidHireDate
	}

	status := StatusActive
	if req.Status != "" {
		status = Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &Employee{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Department:  Department(strings.ToUpper(strings.TrimSpace(req.Department))),
		Position:    strings.TrimSpace(req.Position),
		Salary:      req.Salary,
		HireDate:    hireDate,
		Status:      status,
		IsActive:    isActive,
	}, nil
}

func draftFromUpdate(req UpdateEmployeeRequest) (*Employee, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return draftFromCreate(CreateEmployeeRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Department:  req.Department,
		Position:    req.Position,
		Salary:      req.Salary,
		HireDate:    req.HireDate,
		Status:      req.Status,
		IsActive:    &isActive,
	})
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              empl.ID,
		FirstName:       empl.FirstName,
		LastName:        empl.LastName,
		FullName:        empl.FullName(),
		Email:           empl.Email,
		PhoneNumber:     empl.PhoneNumber,
		Department:      string(empl.Department),
		DepartmentLabel: empl.Department.Label(),
		Position:        empl.Position,
		Salary:          empl.Salary,
		HireDate:        empl.HireDate.Format(hireDateLayout),
		Status:          string(empl.Status),
		StatusLabel:     empl.Status.Label(),
		IsActive:        empl.IsActive,
		TenureYears:     empl.TenureInYears(),
		TenureMonths:    empl.TenureInMonths(),
		CreatedAt:       empl.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       empl.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(items []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(items))
	for i, empl := range items {
		res[i] = mapToResponse(empl)
	}
	return res
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
