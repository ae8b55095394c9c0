package repository

import (
	"company-finance-backend/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append writes a standalone audit entry outside any unit of work.
// Used for events with no accompanying row mutation (logins, failures)
// and for best-effort *_ERROR entries after a rollback.
func (r *AuditRepository) Append(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

// List returns audit entries newest first, capped at limit.
func (r *AuditRepository) List(limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// ListByResource returns audit entries for one resource type, newest first.
func (r *AuditRepository) ListByResource(resourceType string, limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.Where("resource_type = ?", resourceType).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
