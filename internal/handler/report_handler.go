package handler

import (
	"net/http"
	"strconv"
	"time"

	"company-finance-backend/internal/service"
	"company-finance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Overview returns headline income/expense/net totals
func (h *ReportHandler) Overview(c *gin.Context) {
	overview, err := h.reportService.Overview()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, overview)
}

// Monthly returns the monthly income/expense rollup
func (h *ReportHandler) Monthly(c *gin.Context) {
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = parsed
	}

	rows, err := h.reportService.MonthlyRollup(from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, rows)
}

// Yearly returns the yearly income/expense rollup
func (h *ReportHandler) Yearly(c *gin.Context) {
	rows, err := h.reportService.YearlyRollup()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, rows)
}

// ExpenseBreakdown returns expense totals per category
func (h *ReportHandler) ExpenseBreakdown(c *gin.Context) {
	rows, err := h.reportService.ExpenseBreakdown()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, rows)
}

// TopSpending returns the top five spending categories
func (h *ReportHandler) TopSpending(c *gin.Context) {
	rows, err := h.reportService.TopSpendingCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, rows)
}

// BudgetUtilization returns spend vs budget per category with alert levels
func (h *ReportHandler) BudgetUtilization(c *gin.Context) {
	rows, err := h.reportService.BudgetUtilization()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, rows)
}

// Trend returns percent change of the last 30 days vs the 30 before
func (h *ReportHandler) Trend(c *gin.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid days parameter")
			return
		}
		days = parsed
	}

	trend, err := h.reportService.Trend(time.Now().UTC(), time.Duration(days)*24*time.Hour)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, trend)
}

// Recent returns the newest transactions for the dashboard
func (h *ReportHandler) Recent(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	txns, err := h.reportService.RecentTransactions(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, txns)
}
