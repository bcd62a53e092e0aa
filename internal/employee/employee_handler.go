package employee

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindingError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee binding failed", zap.Error(err))
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employee binding failed", zap.Error(err))
		h.writeBindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// List serves both the plain listing and the filtered one; absent filter
// params contribute nothing to the predicate.
func (h *Handler) List(c *gin.Context) {
	filter := Filter{Keyword: c.Query("keyword")}

	if raw := strings.TrimSpace(c.Query("department")); raw != "" {
		dept := Department(strings.ToUpper(raw))
		if !dept.Valid() {
			h.writeServiceError(c, employeeerrors.ErrInvalidDepartment)
			return
		}
		filter.Department = &dept
	}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := Status(strings.ToUpper(raw))
		if !status.Valid() {
			h.writeServiceError(c, employeeerrors.ErrInvalidStatus)
			return
		}
		filter.Status = &status
	}

	sorts := []Sort{{
		Field:     c.DefaultQuery("sort_by", "firstName"),
		Direction: c.DefaultQuery("sort_dir", "asc"),
	}}

	page := h.queryPage(c)

	items, total, err := h.service.List(c.Request.Context(), filter, sorts, page)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page.Index, page.Size)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) Search(c *gin.Context) {
	items, err := h.service.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) SearchPaginated(c *gin.Context) {
	page := h.queryPage(c)

	items, total, err := h.service.SearchPage(c.Request.Context(), c.Query("keyword"), page)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page.Index, page.Size)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) ListActive(c *gin.Context) {
	items, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) ListByDepartment(c *gin.Context) {
	dept := Department(strings.ToUpper(c.Param("dept")))

	items, err := h.service.ListByDepartment(c.Request.Context(), dept)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) ListByStatus(c *gin.Context) {
	status := Status(strings.ToUpper(c.Param("status")))

	items, err := h.service.ListByStatus(c.Request.Context(), status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) ListBySalaryRange(c *gin.Context) {
	minSalary, err := strconv.ParseFloat(c.Query("min"), 64)
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("Min"))
		return
	}
	maxSalary, err := strconv.ParseFloat(c.Query("max"), 64)
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("Max"))
		return
	}

	items, err := h.service.ListBySalaryRange(c.Request.Context(), minSalary, maxSalary)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) ListByHireDateRange(c *gin.Context) {
	start, err := time.Parse(hireDateLayout, c.Query("start"))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("Start"))
		return
	}
	end, err := time.Parse(hireDateLayout, c.Query("end"))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("End"))
		return
	}

	items, err := h.service.ListByHireDateRange(c.Request.Context(), start, end)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) TopPaid(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	items, err := h.service.TopPaid(c.Request.Context(), limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats, nil)
}

func (h *Handler) DepartmentCounts(c *gin.Context) {
	counts, err := h.service.CountByDepartment(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, counts, nil)
}

func (h *Handler) DepartmentSalaryTotals(c *gin.Context) {
	totals, err := h.service.SalaryTotalsByDepartment(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, totals, nil)
}

func (h *Handler) EmailIsUnique(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		h.writeServiceError(c, apperror.RequiredField("Email"))
		return
	}

	var excludeID *uint64
	if raw := c.Query("exclude_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.writeServiceError(c, employeeerrors.ErrInvalidEmployeeID)
			return
		}
		excludeID = &id
	}

	unique, err := h.service.EmailIsUnique(c.Request.Context(), email, excludeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unique": unique}, nil)
}

func (h *Handler) GetOptions(c *gin.Context) {
	items, err := h.service.GetOptions(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) paramID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.writeServiceError(c, employeeerrors.ErrInvalidEmployeeID)
		return 0, false
	}
	return id, true
}

func (h *Handler) queryPage(c *gin.Context) Page {
	index, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if index < 0 {
		index = 0
	}
	if size < 1 {
		size = defaultPageSize
	}
	return Page{Index: index, Size: size}
}
