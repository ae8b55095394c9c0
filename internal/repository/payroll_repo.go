package repository

import (
	"errors"
	"time"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"

	"gorm.io/gorm"
)

type PayrollRepository struct {
	db *gorm.DB
}

func NewPayrollRepo(db *gorm.DB) *PayrollRepository {
	return &PayrollRepository{db: db}
}

// FindByID finds a payroll record by primary key
func (r *PayrollRepository) FindByID(id uint) (*models.Payroll, error) {
	var record models.Payroll
	err := r.db.First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("payroll record")
		}
		return nil, err
	}
	return &record, nil
}

// List returns payroll records ordered by payment date descending
func (r *PayrollRepository) List() ([]models.Payroll, error) {
	var records []models.Payroll
	err := r.db.Order("payment_date DESC").Find(&records).Error
	return records, err
}

// ListByEmployee returns one employee's payroll history
func (r *PayrollRepository) ListByEmployee(employeeID uint) ([]models.Payroll, error) {
	var records []models.Payroll
	err := r.db.Where("employee_id = ?", employeeID).
		Order("payment_date DESC").
		Find(&records).Error
	return records, err
}

// ExistsForEmployeeBetween reports whether the employee already has a
// payroll record with payment_date in [from, to).
func (r *PayrollRepository) ExistsForEmployeeBetween(employeeID uint, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Payroll{}).
		Where("employee_id = ? AND payment_date >= ? AND payment_date < ?", employeeID, from, to).
		Count(&count).Error
	return count > 0, err
}

// Create inserts the payroll record and its audit entry in one transaction
func (r *PayrollRepository) Create(record *models.Payroll, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		audit.ResourceID = &record.ID
		return tx.Create(audit).Error
	})
}

// Update saves the payroll record and its audit entry in one transaction
func (r *PayrollRepository) Update(record *models.Payroll, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(record).Error; err != nil {
			return err
		}
		audit.ResourceID = &record.ID
		return tx.Create(audit).Error
	})
}

// MarkPaid moves a pending payroll record to paid. Same conditional
// update pattern as transaction approval: zero rows means the record was
// not pending.
func (r *PayrollRepository) MarkPaid(id uint, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Payroll{}).
			Where("id = ? AND status = ?", id, models.PayrollPending).
			Update("status", models.PayrollPaid)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.StateConflict("payroll record %d is not pending", id)
		}
		audit.ResourceID = &id
		return tx.Create(audit).Error
	})
}

// Delete removes the payroll record and writes its audit entry in one transaction
func (r *PayrollRepository) Delete(id uint, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Payroll{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("payroll record")
		}
		audit.ResourceID = &id
		return tx.Create(audit).Error
	})
}
