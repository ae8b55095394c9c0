package repository

import (
	"errors"
	"time"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// TransactionFilter narrows List results. Zero values mean "no filter".
type TransactionFilter struct {
	Status       string
	Type         string
	Category     string
	DepartmentID *uint
	CreatedBy    *uint
	From         time.Time
	To           time.Time
	Limit        int
}

// FindByID finds a transaction by primary key
func (r *TransactionRepository) FindByID(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.First(&txn, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("transaction")
		}
		return nil, err
	}
	return &txn, nil
}

// List returns transactions matching the filter, newest first
func (r *TransactionRepository) List(f TransactionFilter) ([]models.Transaction, error) {
	q := r.db.Order("date DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.DepartmentID != nil {
		q = q.Where("department_id = ?", *f.DepartmentID)
	}
	if f.CreatedBy != nil {
		q = q.Where("created_by = ?", *f.CreatedBy)
	}
	if !f.From.IsZero() {
		q = q.Where("date >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("date < ?", f.To)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var txns []models.Transaction
	err := q.Find(&txns).Error
	return txns, err
}

// Create inserts the transaction and its audit entry in one transaction
func (r *TransactionRepository) Create(txn *models.Transaction, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
		audit.ResourceID = &txn.ID
		return tx.Create(audit).Error
	})
}

// Update saves the transaction and its audit entry in one transaction
func (r *TransactionRepository) Update(txn *models.Transaction, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(txn).Error; err != nil {
			return err
		}
		audit.ResourceID = &txn.ID
		return tx.Create(audit).Error
	})
}

// Delete removes the transaction and writes its audit entry in one transaction
func (r *TransactionRepository) Delete(id uint, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Transaction{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("transaction")
		}
		audit.ResourceID = &id
		return tx.Create(audit).Error
	})
}

// Transition moves a pending transaction to a terminal status. The
// check-then-write happens as one conditional UPDATE inside the database
// transaction, so two concurrent approvers cannot both succeed: the
// second sees zero rows affected and gets a state conflict.
func (r *TransactionRepository) Transition(id uint, newStatus string, approverID uint, at time.Time, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", id, models.StatusPending).
			Updates(map[string]interface{}{
				"status":        newStatus,
				"approver_id":   approverID,
				"approval_date": at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.StateConflict("transaction %d is not pending", id)
		}
		audit.ResourceID = &id
		return tx.Create(audit).Error
	})
}

// SpentForCategoryBetween sums expense amounts for one category in
// [from, to). Rejected transactions are excluded.
func (r *TransactionRepository) SpentForCategoryBetween(category string, from, to time.Time) (float64, error) {
	var spent float64
	err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ? AND category = ? AND status <> ? AND date >= ? AND date < ?",
			models.TypeExpense, category, models.StatusRejected, from, to).
		Scan(&spent).Error
	return spent, err
}
