package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	reportapp "github.com/courierlog/backend/internal/application/report"
	"github.com/courierlog/backend/internal/domain/shared"
	"github.com/courierlog/backend/internal/infrastructure/excel"
	"github.com/courierlog/backend/internal/interfaces/http/dto"
	"github.com/courierlog/backend/internal/interfaces/http/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles payroll export endpoints
type ReportHandler struct {
	BaseHandler
	payrollService *reportapp.PayrollService
	exporter       *excel.PayrollExporter
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(payrollService *reportapp.PayrollService, exporter *excel.PayrollExporter) *ReportHandler {
	return &ReportHandler{
		payrollService: payrollService,
		exporter:       exporter,
	}
}

// WeeklyPayrollQuery selects the exported week. An absent weekStart means
// the default week for the current date.
type WeeklyPayrollQuery struct {
	WeekStart string `form:"weekStart" binding:"omitempty,dateonly"`
}

// WeeklyPayroll streams the week's payroll workbook. The consumer is a
// spreadsheet download, so errors are plaintext rather than JSON.
func (h *ReportHandler) WeeklyPayroll(c *gin.Context) {
	var q WeeklyPayrollQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.String(http.StatusBadRequest, middleware.BindingErrorMessage(err, "Invalid weekStart"))
		return
	}

	rep, err := h.payrollService.WeeklyPayroll(c.Request.Context(), q.WeekStart)
	if err != nil {
		h.plaintextError(c, err)
		return
	}

	if rep.Empty() {
		c.String(http.StatusOK, "No deliveries found for week starting %s", shared.FormatDate(rep.Week.Start))
		return
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+h.exporter.Filename(rep)+`"`)
	if err := h.exporter.Write(rep, c.Writer); err != nil {
		// Headers are already out; all we can do is drop the connection.
		c.Abort()
	}
}

func (h *ReportHandler) plaintextError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.String(dto.GetHTTPStatus(domainErr.Code), domainErr.Message)
		return
	}
	c.String(http.StatusInternalServerError, "An unexpected error occurred")
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/payroll/weekly", h.WeeklyPayroll)
	}
}
