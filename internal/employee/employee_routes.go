package employee

import (
	"go-ems/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.List)
		employees.GET("/filter", handler.List)
		employees.GET("/active", handler.ListActive)
		employees.GET("/search", handler.Search)
		employees.GET("/search/paginated", handler.SearchPaginated)
		employees.GET("/options", handler.GetOptions)
		employees.GET("/statistics", handler.Statistics)
		employees.GET("/department-count", handler.DepartmentCounts)
		employees.GET("/salary-by-department", handler.DepartmentSalaryTotals)
		employees.GET("/top-paid", handler.TopPaid)
		employees.GET("/salary-range", handler.ListBySalaryRange)
		employees.GET("/hire-date-range", handler.ListByHireDateRange)
		employees.GET("/email-unique", handler.EmailIsUnique)
		employees.GET("/department/:dept", handler.ListByDepartment)
		employees.GET("/status/:status", handler.ListByStatus)
		employees.GET("/:id", handler.GetByID)

		employees.POST("",
			middleware.RateLimitByIP(1, 5),
			handler.Create,
		)
		employees.PUT("/:id",
			middleware.RateLimitByIP(1, 5),
			handler.Update,
		)
		employees.DELETE("/:id",
			middleware.RateLimitByIP(0.2, 2),
			handler.Delete,
		)
	}
}
