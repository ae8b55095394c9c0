package handler

import (
	"net/http"
	"strconv"

	"company-finance-backend/internal/service"
	"company-finance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	departmentService *service.DepartmentService
}

func NewDepartmentHandler(departmentService *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{
		departmentService: departmentService,
	}
}

type CreateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	BudgetLimit float64 `json:"budget_limit" binding:"gte=0"`
	ManagerID   *uint   `json:"manager_id"`
}

type UpdateDepartmentRequest struct {
	BudgetLimit *float64 `json:"budget_limit" binding:"omitempty,gte=0"`
	ManagerID   *uint    `json:"manager_id"`
}

// List returns all departments
func (h *DepartmentHandler) List(c *gin.Context) {
	departments, err := h.departmentService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"departments": departments,
		"count":       len(departments),
	})
}

// Get returns one department
func (h *DepartmentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid department ID")
		return
	}

	department, err := h.departmentService.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, department)
}

// Create adds a department
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	department, err := h.departmentService.Create(actorID(c), c.ClientIP(), req.Name, req.BudgetLimit, req.ManagerID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, department)
}

// Update edits a department
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid department ID")
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	department, err := h.departmentService.Update(actorID(c), uint(id), c.ClientIP(), req.BudgetLimit, req.ManagerID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, department)
}
