package service

import (
	"errors"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"
	"company-finance-backend/internal/policy"
)

type DepartmentService struct {
	departments DepartmentStore
	users       UserStore
	audits      AuditStore
}

func NewDepartmentService(departments DepartmentStore, users UserStore, audits AuditStore) *DepartmentService {
	return &DepartmentService{
		departments: departments,
		users:       users,
		audits:      audits,
	}
}

// List returns all departments. Any authenticated user may look.
func (s *DepartmentService) List() ([]models.Department, error) {
	return s.departments.List()
}

// Get returns one department by id.
func (s *DepartmentService) Get(id uint) (*models.Department, error) {
	return s.departments.FindByID(id)
}

// Create adds a department (user-management capability required).
func (s *DepartmentService) Create(actorID uint, ip, name string, budgetLimit float64, managerID *uint) (*models.Department, error) {
	actor, err := s.manager(actorID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperr.Validation("department name is required")
	}
	if budgetLimit < 0 {
		return nil, apperr.Validation("budget limit must not be negative")
	}

	if _, err := s.departments.FindByName(name); err == nil {
		return nil, apperr.Duplicate("department %q already exists", name)
	} else {
		var nf *apperr.NotFoundError
		if !errors.As(err, &nf) {
			return nil, apperr.Persistence("department lookup", err)
		}
	}

	department := &models.Department{
		Name:        name,
		BudgetLimit: budgetLimit,
		ManagerID:   managerID,
	}
	audit := newAudit(&actor.ID, models.ActionCreate, "department", ip, map[string]interface{}{
		"name":         name,
		"budget_limit": budgetLimit,
	})
	if err := s.departments.Create(department, audit); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, errorAction(models.ActionCreate), "department", ip, map[string]interface{}{
			"name":  name,
			"error": err.Error(),
		}))
		return nil, apperr.Persistence("create department", err)
	}
	return department, nil
}

// Update edits a department's budget limit and manager.
func (s *DepartmentService) Update(actorID, departmentID uint, ip string, budgetLimit *float64, managerID *uint) (*models.Department, error) {
	actor, err := s.manager(actorID)
	if err != nil {
		return nil, err
	}

	department, err := s.departments.FindByID(departmentID)
	if err != nil {
		return nil, err
	}

	if budgetLimit != nil {
		if *budgetLimit < 0 {
			return nil, apperr.Validation("budget limit must not be negative")
		}
		department.BudgetLimit = *budgetLimit
	}
	if managerID != nil {
		if _, err := s.users.FindByID(*managerID); err != nil {
			return nil, err
		}
		department.ManagerID = managerID
	}

	audit := newAudit(&actor.ID, models.ActionUpdate, "department", ip, map[string]interface{}{
		"name":         department.Name,
		"budget_limit": department.BudgetLimit,
	})
	if err := s.departments.Update(department, audit); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, errorAction(models.ActionUpdate), "department", ip, map[string]interface{}{
			"department_id": departmentID,
			"error":         err.Error(),
		}))
		return nil, apperr.Persistence("update department", err)
	}
	return department, nil
}

func (s *DepartmentService) manager(actorID uint) (*models.User, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if !policy.Allows(actor.Role, policy.ManageUsers) {
		return nil, apperr.Forbidden("role %s cannot manage departments", actor.Role)
	}
	return actor, nil
}
