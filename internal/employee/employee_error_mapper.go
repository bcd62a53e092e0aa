package employee

import (
	"errors"
	"strings"

	employeeerrors "go-ems/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates storage-level failures into domain
// sentinels. The unique-constraint branch makes a commit-time 23505
// equivalent to the service's own pre-check failing; the pre-check-then-
// write pattern is racy and the database is the final arbiter.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employee_email" {
			return employeeerrors.ErrDuplicateEmail
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_email") {
		return employeeerrors.ErrDuplicateEmail
	}

	return err
}
