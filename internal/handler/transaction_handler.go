package handler

import (
	"net/http"
	"strconv"
	"time"

	"company-finance-backend/internal/repository"
	"company-finance-backend/internal/service"
	"company-finance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	transactionService *service.TransactionService
}

func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

type CreateTransactionRequest struct {
	Type         string  `json:"type" binding:"required,oneof=income expense"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Description  string  `json:"description"`
	Category     string  `json:"category" binding:"required"`
	Date         string  `json:"date"`
	DepartmentID *uint   `json:"department_id"`
}

type UpdateTransactionRequest struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
}

// Create records a new transaction and returns it with the budget
// advisory when applicable
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	txn, advisory, err := h.transactionService.Create(actorID(c), c.ClientIP(), service.CreateTransactionInput{
		Type:         req.Type,
		Amount:       req.Amount,
		Description:  req.Description,
		Category:     req.Category,
		Date:         date,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"transaction":     txn,
		"budget_advisory": advisory,
	})
}

// List returns transactions visible to the actor
func (h *TransactionHandler) List(c *gin.Context) {
	filter := repository.TransactionFilter{
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		Category: c.Query("category"),
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}

	txns, err := h.transactionService.List(actorID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"transactions": txns,
		"count":        len(txns),
	})
}

// Approve transitions a pending transaction to approved
func (h *TransactionHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	txn, err := h.transactionService.Approve(actorID(c), uint(id), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, txn)
}

// Reject transitions a pending transaction to rejected
func (h *TransactionHandler) Reject(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	txn, err := h.transactionService.Reject(actorID(c), uint(id), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, txn)
}

// Update edits a pending transaction
func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	in := service.UpdateTransactionInput{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		in.Date = &parsed
	}

	txn, err := h.transactionService.Update(actorID(c), uint(id), c.ClientIP(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, txn)
}

// Delete removes a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	if err := h.transactionService.Delete(actorID(c), uint(id), c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Transaction deleted successfully")
}
