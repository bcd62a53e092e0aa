package employee

import (
	"strings"

	employeeerrors "go-ems/internal/employee/errors"

	"gorm.io/gorm"
)

const defaultPageSize = 10

// Filter holds the optional list criteria. Nil/blank fields match
// everything; provided fields are ANDed together.
type Filter struct {
	Department *Department
	Status     *Status
	Keyword    string
}

type Sort struct {
	Field     string
	Direction string
}

// Page is a zero-based window over the ordered result set.
type Page struct {
	Index int
	Size  int
}

// sortColumns is the closed set of sortable fields. Anything outside it is
// rejected instead of silently falling back, and the mapping doubles as the
// injection barrier for the ORDER BY clause.
var sortColumns = map[string]string{
	"id":         "id",
	"firstName":  "first_name",
	"first_name": "first_name",
	"lastName":   "last_name",
	"last_name":  "last_name",
	"email":      "email",
	"position":   "position",
	"salary":     "salary",
	"hireDate":   "hire_date",
	"hire_date":  "hire_date",
	"department": "department",
	"status":     "status",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
}

// Query is an opaque, reusable specification: predicate + order + window.
// The same predicate feeds both the page fetch and the total count, so the
// reported total can never drift from the matching set.
type Query struct {
	filter Filter
	order  []string
	page   Page
}

func BuildQuery(filter Filter, sorts []Sort, page Page) (*Query, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)

	order := make([]string, 0, len(sorts))
	for _, s := range sorts {
		column, ok := sortColumns[s.Field]
		if !ok {
			return nil, employeeerrors.ErrUnsupportedSortField
		}

		dir := "ASC"
		if strings.EqualFold(s.Direction, "desc") {
			dir = "DESC"
		}
		order = append(order, column+" "+dir)
	}
	if len(order) == 0 {
		order = []string{"first_name ASC", "last_name ASC"}
	}

	if page.Index < 0 {
		page.Index = 0
	}
	if page.Size < 1 {
		page.Size = defaultPageSize
	}

	return &Query{filter: filter, order: order, page: page}, nil
}

// Scope returns the combined filter predicate as a gorm scope. Each omitted
// criterion contributes the identity.
func (q *Query) Scope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.filter.Department != nil {
			db = db.Where("department = ?", *q.filter.Department)
		}
		if q.filter.Status != nil {
			db = db.Where("status = ?", *q.filter.Status)
		}
		if q.filter.Keyword != "" {
			db = db.Scopes(keywordScope(q.filter.Keyword))
		}
		return db
	}
}

func (q *Query) OrderClause() string {
	return strings.Join(q.order, ", ")
}

func (q *Query) Offset() int {
	return q.page.Index * q.page.Size
}

func (q *Query) Limit() int {
	return q.page.Size
}

func (q *Query) PageIndex() int {
	return q.page.Index
}

func (q *Query) PageSize() int {
	return q.page.Size
}

// keywordScope matches a case-insensitive substring across name, email and
// position.
func keywordScope(keyword string) func(db *gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(keyword) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(position) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
}
