package handler

import (
	"net/http"
	"strconv"
	"time"

	"company-finance-backend/internal/service"
	"company-finance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PayrollHandler struct {
	payrollService *service.PayrollService
}

func NewPayrollHandler(payrollService *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{
		payrollService: payrollService,
	}
}

type CreatePayrollRequest struct {
	EmployeeID   uint    `json:"employee_id" binding:"required"`
	SalaryAmount float64 `json:"salary_amount" binding:"required,gt=0"`
	PaymentDate  string  `json:"payment_date" binding:"required"`
	Notes        string  `json:"notes"`
}

// List returns all payroll records
func (h *PayrollHandler) List(c *gin.Context) {
	records, err := h.payrollService.List(actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"payroll": records,
		"count":   len(records),
	})
}

// Create records a payroll entry
func (h *PayrollHandler) Create(c *gin.Context) {
	var req CreatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid payment date, expected YYYY-MM-DD")
		return
	}

	record, err := h.payrollService.Create(actorID(c), c.ClientIP(), service.CreatePayrollInput{
		EmployeeID:   req.EmployeeID,
		SalaryAmount: req.SalaryAmount,
		PaymentDate:  paymentDate,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, record)
}

// MarkPaid moves a pending payroll record to paid
func (h *PayrollHandler) MarkPaid(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid payroll ID")
		return
	}

	if err := h.payrollService.MarkPaid(actorID(c), uint(id), c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Payroll record marked as paid")
}

// Delete removes a payroll record
func (h *PayrollHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid payroll ID")
		return
	}

	if err := h.payrollService.Delete(actorID(c), uint(id), c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Payroll record deleted successfully")
}
