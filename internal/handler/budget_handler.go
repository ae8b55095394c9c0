package handler

import (
	"company-finance-backend/internal/service"
	"company-finance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
}

func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

type BudgetRequest struct {
	Category     string  `json:"category" binding:"required"`
	BudgetAmount float64 `json:"budget_amount" binding:"gte=0"`
}

type UpdateBudgetRequest struct {
	BudgetAmount float64 `json:"budget_amount" binding:"gte=0"`
}

// List returns all budgets
func (h *BudgetHandler) List(c *gin.Context) {
	budgets, err := h.budgetService.List(actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"budgets": budgets,
		"count":   len(budgets),
	})
}

// Create adds a budget for a new category
func (h *BudgetHandler) Create(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	budget, err := h.budgetService.Create(actorID(c), c.ClientIP(), req.Category, req.BudgetAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, budget)
}

// Update changes the amount of an existing budget
func (h *BudgetHandler) Update(c *gin.Context) {
	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	budget, err := h.budgetService.Update(actorID(c), c.ClientIP(), c.Param("category"), req.BudgetAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, budget)
}

// Delete removes a budget category
func (h *BudgetHandler) Delete(c *gin.Context) {
	if err := h.budgetService.Delete(actorID(c), c.ClientIP(), c.Param("category")); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Budget deleted successfully")
}
