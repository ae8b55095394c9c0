package repository

import (
	"errors"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"

	"gorm.io/gorm"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepo(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// FindByCategory finds a budget by its category (the primary key)
func (r *BudgetRepository) FindByCategory(category string) (*models.Budget, error) {
	var budget models.Budget
	err := r.db.Where("category = ?", category).First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("budget")
		}
		return nil, err
	}
	return &budget, nil
}

// List returns all budgets ordered by category
func (r *BudgetRepository) List() ([]models.Budget, error) {
	var budgets []models.Budget
	err := r.db.Order("category ASC").Find(&budgets).Error
	return budgets, err
}

// Create inserts the budget and its audit entry in one transaction
func (r *BudgetRepository) Create(budget *models.Budget, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(budget).Error; err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}

// Update saves the budget and its audit entry in one transaction
func (r *BudgetRepository) Update(budget *models.Budget, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(budget).Error; err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}

// Delete removes the budget and writes its audit entry in one transaction
func (r *BudgetRepository) Delete(category string, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("category = ?", category).Delete(&models.Budget{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("budget")
		}
		return tx.Create(audit).Error
	})
}
