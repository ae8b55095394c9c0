package handler

import (
	"net/http"
	"strconv"

	"company-finance-backend/internal/service"
	"company-finance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

type CreateUserRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=50"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	Role         string `json:"role" binding:"required,oneof=admin finance hr accountant employee manager"`
	DepartmentID *uint  `json:"department_id"`
}

type UpdateUserRequest struct {
	Email        *string `json:"email" binding:"omitempty,email"`
	Role         *string `json:"role" binding:"omitempty,oneof=admin finance hr accountant employee manager"`
	DepartmentID *uint   `json:"department_id"`
	IsActive     *bool   `json:"is_active"`
}

// List returns all user accounts
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"users": users,
		"count": len(users),
	})
}

// Create adds a user account
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.Create(actorID(c), c.ClientIP(), service.CreateUserInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, user)
}

// Update edits a user account
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.Update(actorID(c), uint(id), c.ClientIP(), service.UpdateUserInput{
		Email:        req.Email,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// Delete removes a user account
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(actorID(c), uint(id), c.ClientIP()); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "User deleted successfully")
}
