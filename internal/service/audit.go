package service

import (
	"encoding/json"

	"company-finance-backend/internal/models"
)

// newAudit builds an audit entry with a JSON details payload. The
// resource id is stamped by the repository once the row exists.
func newAudit(userID *uint, action, resourceType, ip string, details interface{}) *models.AuditLog {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte(`{}`)
	}
	return &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		Details:      string(payload),
		IPAddress:    ip,
	}
}

// errorAction derives the audit action code for a failed operation.
func errorAction(action string) string {
	return action + "_ERROR"
}
