package handler

import (
	"strconv"

	"company-finance-backend/internal/service"
	"company-finance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService *service.AuditService
}

func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// List returns recent audit entries, optionally filtered by resource type
func (h *AuditHandler) List(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	entries, err := h.auditService.List(actorID(c), c.Query("resource_type"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"audit_logs": entries,
		"count":      len(entries),
	})
}
