package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/sanduq/backend/internal/application/report"
)

// ReportHandler handles daily collection report endpoints
type ReportHandler struct {
	BaseHandler
	dailyTotalService *reportapp.DailyTotalService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(dailyTotalService *reportapp.DailyTotalService) *ReportHandler {
	return &ReportHandler{dailyTotalService: dailyTotalService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/daily-sales", h.DailySales)
		reports.GET("/daily-sales/range", h.SalesRange)
		reports.GET("/workers/:id/daily-sales", h.WorkerDailySales)
		reports.GET("/branches/:id/daily-sales", h.BranchDailySales)
	}
}

// DailySales returns the company roll-up and branch breakdown for a date
func (h *ReportHandler) DailySales(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		h.BadRequest(c, "Invalid date; expected YYYY-MM-DD")
		return
	}

	summary, err := h.dailyTotalService.GetDailySales(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// SalesRange returns company daily totals over an inclusive date range
func (h *ReportHandler) SalesRange(c *gin.Context) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		h.BadRequest(c, "Invalid from date; expected YYYY-MM-DD")
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		h.BadRequest(c, "Invalid to date; expected YYYY-MM-DD")
		return
	}
	if to.Before(from) {
		h.BadRequest(c, "Range end precedes range start")
		return
	}

	totals, err := h.dailyTotalService.GetSalesRange(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, totals)
}

// WorkerDailySales returns one worker's collections for a date
func (h *ReportHandler) WorkerDailySales(c *gin.Context) {
	workerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid worker ID")
		return
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		h.BadRequest(c, "Invalid date; expected YYYY-MM-DD")
		return
	}

	total, err := h.dailyTotalService.GetWorkerDailySales(c.Request.Context(), workerID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, total)
}

// BranchDailySales returns a branch roll-up with its worker breakdown
func (h *ReportHandler) BranchDailySales(c *gin.Context) {
	branchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch ID")
		return
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		h.BadRequest(c, "Invalid date; expected YYYY-MM-DD")
		return
	}

	branchTotal, workerTotals, err := h.dailyTotalService.GetBranchDailySales(c.Request.Context(), branchID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"branch":  branchTotal,
		"workers": workerTotals,
	})
}
