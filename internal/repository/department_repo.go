package repository

import (
	"errors"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"

	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepo(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List returns all departments ordered by name
func (r *DepartmentRepository) List() ([]models.Department, error) {
	var departments []models.Department
	err := r.db.Order("name ASC").Find(&departments).Error
	return departments, err
}

// FindByID finds a department by primary key
func (r *DepartmentRepository) FindByID(id uint) (*models.Department, error) {
	var department models.Department
	err := r.db.First(&department, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("department")
		}
		return nil, err
	}
	return &department, nil
}

// FindByName finds a department by its unique name
func (r *DepartmentRepository) FindByName(name string) (*models.Department, error) {
	var department models.Department
	err := r.db.Where("name = ?", name).First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("department")
		}
		return nil, err
	}
	return &department, nil
}

// Create inserts the department and its audit entry in one transaction
func (r *DepartmentRepository) Create(department *models.Department, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(department).Error; err != nil {
			return err
		}
		audit.ResourceID = &department.ID
		return tx.Create(audit).Error
	})
}

// Update saves the department and its audit entry in one transaction
func (r *DepartmentRepository) Update(department *models.Department, audit *models.AuditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(department).Error; err != nil {
			return err
		}
		audit.ResourceID = &department.ID
		return tx.Create(audit).Error
	})
}
