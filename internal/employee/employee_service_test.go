package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-ems/internal/employee"
	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"

	employeeMock "go-ems/internal/employee/mock"
	kafkaMock "go-ems/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	redisMock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	rdb, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := employee.NewServiceWithOutbox(db, repo, outboxRepo, rdb)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		outbox:    outboxRepo,
		redisMock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FirstName:   "John",
		LastName:    "Smith",
		Email:       "john.smith@company.com",
		PhoneNumber: "+1-555-010-1234",
		Department:  "IT",
		Position:    "Senior Software Engineer",
		Salary:      95000,
		HireDate:    "2020-03-15",
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success - persists employee and outbox event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			ExistsByEmail(ctx, req.Email).
			Return(false, nil)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "John", e.FirstName)
				assert.Equal(t, employee.DepartmentIT, e.Department)
				assert.Equal(t, employee.StatusActive, e.Status)
				assert.True(t, e.IsActive)
				e.ID = 42
				return nil
			})

		deps.outbox.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.outbox)

		deps.outbox.EXPECT().
			Enqueue(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, events.TypeEmployeeCreated, event.EventType)
				assert.Equal(t, "42", event.AggregateID)
				assert.Equal(t, events.EmployeeLifecycleTopic, event.Topic)
				assert.Equal(t, kafka.OutboxPending, event.Status)

				var payload events.EmployeeCreatedEvent
				assert.NoError(t, json.Unmarshal(event.Payload, &payload))
				assert.Equal(t, uint64(42), payload.EmployeeID)
				return nil
			}).
			Times(1)

		deps.redisMock.ExpectDel(employee.EmployeeOptionsCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, uint64(42), resp.ID)
		assert.Equal(t, "John Smith", resp.FullName)
		assert.Equal(t, "ACTIVE", resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate email -> conflict before insert", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			ExistsByEmail(ctx, req.Email).
			Return(true, nil)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrDuplicateEmail)
	})

	t.Run("duplicate email -> constraint violation on insert", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmail(ctx, req.Email).Return(false, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"})

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrDuplicateEmail)
	})

	t.Run("salary outside bounds -> validation failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()
		req.Salary = 1000

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrValidationFailed)
	})

	t.Run("malformed phone -> validation failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()
		req.PhoneNumber = "call-me-maybe"

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrValidationFailed)
	})

	t.Run("future hire date -> validation failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()
		req.HireDate = time.Now().AddDate(0, 0, 2).Format("2006-01-02")

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrValidationFailed)
	})

	t.Run("unparseable hire date -> invalid input", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()
		req.HireDate = "15-03-2020"

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})

	t.Run("repo error -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByEmail(ctx, req.Email).Return(false, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(errors.New("db error"))

		_, err := deps.service.Create(ctx, req)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	active := true
	updateReq := employee.UpdateEmployeeRequest{
		FirstName:   "John",
		LastName:    "Smith",
		Email:       "john.smith@company.com",
		PhoneNumber: "+1-555-010-1234",
		Department:  "FINANCE",
		Position:    "Finance Manager",
		Salary:      90000,
		HireDate:    "2020-03-15",
		Status:      "ACTIVE",
		IsActive:    &active,
	}

	existing := func() *employee.Employee {
		return &employee.Employee{
			ID:         7,
			FirstName:  "John",
			LastName:   "Smith",
			Email:      "john.smith@company.com",
			Department: employee.DepartmentIT,
			Position:   "Senior Software Engineer",
			Salary:     95000,
			HireDate:   time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
			Status:     employee.StatusActive,
			IsActive:   true,
		}
	}

	t.Run("success - unchanged email is not a conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint64(7)).Return(existing(), nil)
		deps.repo.EXPECT().
			Save(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, employee.DepartmentFinance, e.Department)
				assert.Equal(t, "Finance Manager", e.Position)
				return nil
			})

		deps.redisMock.ExpectDel(employee.EmployeeOptionsCacheKey).SetVal(1)

		resp, err := deps.service.Update(ctx, 7, updateReq)

		assert.NoError(t, err)
		assert.Equal(t, "FINANCE", resp.Department)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("changed email colliding with another employee -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := updateReq
		req.Email = "taken@company.com"

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint64(7)).Return(existing(), nil)
		deps.repo.EXPECT().
			ExistsByEmailExcluding(ctx, "taken@company.com", uint64(7)).
			Return(true, nil)

		_, err := deps.service.Update(ctx, 7, req)

		assert.ErrorIs(t, err, employeeerrors.ErrDuplicateEmail)
	})

	t.Run("unknown id -> not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, uint64(999)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, 999, updateReq)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success - soft delete flips status and active flag", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, uint64(7)).
			Return(&employee.Employee{ID: 7, Status: employee.StatusActive, IsActive: true}, nil)
		deps.repo.EXPECT().
			Save(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.False(t, e.IsActive)
				assert.Equal(t, employee.StatusTerminated, e.Status)
				return nil
			})

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Enqueue(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, events.TypeEmployeeTerminated, event.EventType)
				return nil
			})

		deps.redisMock.ExpectDel(employee.EmployeeOptionsCacheKey).SetVal(1)

		err := deps.service.Delete(ctx, 7)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("already terminated -> still succeeds", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, uint64(7)).
			Return(&employee.Employee{ID: 7, Status: employee.StatusTerminated, IsActive: false}, nil)
		deps.repo.EXPECT().Save(ctx, gomock.Any()).Return(nil)

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)

		deps.redisMock.ExpectDel(employee.EmployeeOptionsCacheKey).SetVal(1)

		err := deps.service.Delete(ctx, 7)

		assert.NoError(t, err)
	})

	t.Run("unknown id -> not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, uint64(404)).
			Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, 404)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("absent email returns nil without error", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByEmail(ctx, "ghost@company.com").
			Return(nil, gorm.ErrRecordNotFound)

		resp, err := deps.service.GetByEmail(ctx, "ghost@company.com")

		assert.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("present email returns the record", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByEmail(ctx, "john.smith@company.com").
			Return(&employee.Employee{ID: 1, FirstName: "John", LastName: "Smith", Email: "john.smith@company.com"}, nil)

		resp, err := deps.service.GetByEmail(ctx, "john.smith@company.com")

		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Equal(t, uint64(1), resp.ID)
	})
}

func TestEmployeeService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("blank keyword falls back to the active roster", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByActive(ctx, true).
			Return([]employee.Employee{{ID: 1, FirstName: "Alice"}}, nil)

		resp, err := deps.service.Search(ctx, "   ")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("keyword delegates to repository search", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			Search(ctx, "smith").
			Return([]employee.Employee{{ID: 1, LastName: "Smith"}}, nil)

		resp, err := deps.service.Search(ctx, " smith ")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})
}

func TestEmployeeService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported sort field is rejected before the repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.List(ctx, employee.Filter{},
			[]employee.Sort{{Field: "salary; DROP TABLE employees"}},
			employee.Page{Index: 0, Size: 10},
		)

		assert.ErrorIs(t, err, employeeerrors.ErrUnsupportedSortField)
	})

	t.Run("page past the end still reports the real total", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindPage(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, q *employee.Query) ([]employee.Employee, int64, error) {
				assert.Equal(t, 50, q.Offset())
				return []employee.Employee{}, 12, nil
			})

		items, total, err := deps.service.List(ctx, employee.Filter{}, nil, employee.Page{Index: 5, Size: 10})

		assert.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, int64(12), total)
	})
}

func TestEmployeeService_Ranges(t *testing.T) {
	ctx := context.Background()

	t.Run("inverted salary range -> invalid range", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ListBySalaryRange(ctx, 90000, 50000)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidSalaryRange)
	})

	t.Run("inverted hire date range -> invalid range", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

		_, err := deps.service.ListByHireDateRange(ctx, start, end)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDateRange)
	})

	t.Run("equal bounds are a valid range", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindActiveBySalaryRange(ctx, 60000.0, 60000.0).
			Return([]employee.Employee{}, nil)

		_, err := deps.service.ListBySalaryRange(ctx, 60000, 60000)

		assert.NoError(t, err)
	})
}

func TestEmployeeService_TopPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("limit above the window is clamped to ten", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindTopPaid(ctx, 10).
			Return([]employee.Employee{}, nil)

		_, err := deps.service.TopPaid(ctx, 50)

		assert.NoError(t, err)
	})

	t.Run("limit within the window is honored", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindTopPaid(ctx, 3).
			Return([]employee.Employee{}, nil)

		_, err := deps.service.TopPaid(ctx, 3)

		assert.NoError(t, err)
	})

	t.Run("zero limit returns an empty list without touching storage", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		items, err := deps.service.TopPaid(ctx, 0)

		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("negative limit returns an empty list", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		items, err := deps.service.TopPaid(ctx, -5)

		assert.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestEmployeeService_ListActive(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	deps.repo.EXPECT().
		FindByActive(ctx, true).
		Return([]employee.Employee{{ID: 1, FirstName: "Alice"}, {ID: 2, FirstName: "Bob"}}, nil)

	items, err := deps.service.ListActive(ctx)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestEmployeeService_CountByDepartment(t *testing.T) {
	ctx := context.Background()

	t.Run("counts cover everyone and absent departments are zero", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			CountByDepartment(ctx).
			Return([]employee.DepartmentCount{
				{Department: employee.DepartmentIT, Count: 9},
				{Department: employee.DepartmentSales, Count: 6},
			}, nil)

		counts, err := deps.service.CountByDepartment(ctx)

		assert.NoError(t, err)
		assert.Len(t, counts, len(employee.Departments()))
		assert.Equal(t, int64(9), counts["IT"])
		assert.Equal(t, int64(6), counts["SALES"])
		assert.Equal(t, int64(0), counts["HR"])
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			CountByDepartment(ctx).
			Return(nil, errors.New("db down"))

		_, err := deps.service.CountByDepartment(ctx)

		assert.Error(t, err)
	})
}

func TestEmployeeService_SalaryTotalsByDepartment(t *testing.T) {
	ctx := context.Background()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	deps.repo.EXPECT().
		SalaryTotalsByDepartment(ctx).
		Return([]employee.DepartmentSalaryTotal{
			{Department: employee.DepartmentIT, Total: 800000},
			{Department: employee.DepartmentFinance, Total: 310000},
		}, nil)

	totals, err := deps.service.SalaryTotalsByDepartment(ctx)

	assert.NoError(t, err)
	assert.Len(t, totals, len(employee.Departments()))
	assert.InDelta(t, 800000, totals["IT"], 0.001)
	assert.InDelta(t, 310000, totals["FINANCE"], 0.001)
	assert.Zero(t, totals["MARKETING"])
}

func TestEmployeeService_Statistics(t *testing.T) {
	ctx := context.Background()

	t.Run("departments without active employees are zero-filled", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().Count(ctx).Return(int64(30), nil)
		deps.repo.EXPECT().CountByActive(ctx, true).Return(int64(25), nil)
		deps.repo.EXPECT().CountByActive(ctx, false).Return(int64(5), nil)
		deps.repo.EXPECT().
			DepartmentStatistics(ctx).
			Return([]employee.DepartmentStat{
				{Department: employee.DepartmentIT, Count: 10, AvgSalary: 80000},
				{Department: employee.DepartmentSales, Count: 4, AvgSalary: 66250},
			}, nil)

		stats, err := deps.service.Statistics(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(30), stats.Total)
		assert.Equal(t, int64(25), stats.Active)
		assert.Equal(t, int64(5), stats.Inactive)
		assert.Len(t, stats.PerDepartment, len(employee.Departments()))

		it := stats.PerDepartment["IT"]
		assert.Equal(t, int64(10), it.Count)
		if assert.NotNil(t, it.AvgSalary) {
			assert.InDelta(t, 80000, *it.AvgSalary, 0.001)
		}

		hr := stats.PerDepartment["HR"]
		assert.Equal(t, int64(0), hr.Count)
		assert.Nil(t, hr.AvgSalary)
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().Count(ctx).Return(int64(0), errors.New("db down"))

		_, err := deps.service.Statistics(ctx)

		assert.Error(t, err)
	})
}

func TestEmployeeService_EmailIsUnique(t *testing.T) {
	ctx := context.Background()

	t.Run("without exclusion", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			ExistsByEmail(ctx, "new@company.com").
			Return(false, nil)

		unique, err := deps.service.EmailIsUnique(ctx, "new@company.com", nil)

		assert.NoError(t, err)
		assert.True(t, unique)
	})

	t.Run("excluding the record itself", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uint64(7)
		deps.repo.EXPECT().
			ExistsByEmailExcluding(ctx, "john.smith@company.com", id).
			Return(false, nil)

		unique, err := deps.service.EmailIsUnique(ctx, "john.smith@company.com", &id)

		assert.NoError(t, err)
		assert.True(t, unique)
	})

	t.Run("repository failure is translated like other read paths", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			ExistsByEmail(ctx, "new@company.com").
			Return(false, gorm.ErrRecordNotFound)

		_, err := deps.service.EmailIsUnique(ctx, "new@company.com", nil)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached := []employee.EmployeeOptionResponse{
			{ID: 1, FullName: "Alice Smith", Email: "alice@company.com"},
		}
		data, _ := json.Marshal(cached)

		deps.redisMock.ExpectGet(employee.EmployeeOptionsCacheKey).SetVal(string(data))

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Alice Smith", resp[0].FullName)
	})

	t.Run("cache miss rebuilds from the repository and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expected := []employee.EmployeeOptionResponse{
			{ID: 2, FullName: "Bob Wilson", Email: "bob@company.com"},
		}
		data, _ := json.Marshal(expected)

		deps.redisMock.ExpectGet(employee.EmployeeOptionsCacheKey).RedisNil()
		deps.repo.EXPECT().
			FindOptions(gomock.Any()).
			Return([]employee.Employee{
				{ID: 2, FirstName: "Bob", LastName: "Wilson", Email: "bob@company.com"},
			}, nil).
			Times(1)
		deps.redisMock.ExpectSet(employee.EmployeeOptionsCacheKey, data, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Bob Wilson", resp[0].FullName)
	})

	t.Run("repository error surfaces", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redisMock.ExpectGet(employee.EmployeeOptionsCacheKey).RedisNil()
		deps.repo.EXPECT().
			FindOptions(gomock.Any()).
			Return(nil, errors.New("database connection lost")).
			Times(1)

		resp, err := deps.service.GetOptions(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}
