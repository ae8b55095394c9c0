package service

import (
	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"
	"company-finance-backend/internal/policy"
)

// defaultAuditPageSize caps audit listings when the caller gives no
// limit or an unreasonable one.
const defaultAuditPageSize = 50

const maxAuditPageSize = 500

// AuditService exposes the append-only audit trail for compliance
// review. There is deliberately no mutation path.
type AuditService struct {
	audits AuditStore
	users  UserStore
}

func NewAuditService(audits AuditStore, users UserStore) *AuditService {
	return &AuditService{
		audits: audits,
		users:  users,
	}
}

// List returns recent audit entries, newest first, optionally filtered
// by resource type.
func (s *AuditService) List(actorID uint, resourceType string, limit int) ([]models.AuditLog, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if !policy.Allows(actor.Role, policy.ManageUsers) {
		return nil, apperr.Forbidden("role %s cannot review audit logs", actor.Role)
	}

	if limit <= 0 || limit > maxAuditPageSize {
		limit = defaultAuditPageSize
	}
	if resourceType != "" {
		return s.audits.ListByResource(resourceType, limit)
	}
	return s.audits.List(limit)
}
