package service

import (
	"errors"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"
	"company-finance-backend/internal/policy"
)

type BudgetService struct {
	budgets BudgetStore
	users   UserStore
	audits  AuditStore
}

func NewBudgetService(budgets BudgetStore, users UserStore, audits AuditStore) *BudgetService {
	return &BudgetService{
		budgets: budgets,
		users:   users,
		audits:  audits,
	}
}

// Create adds a budget for a new category.
func (s *BudgetService) Create(actorID uint, ip, category string, amount float64) (*models.Budget, error) {
	actor, err := s.editor(actorID)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return nil, apperr.Validation("category is required")
	}
	if amount < 0 {
		return nil, apperr.Validation("budget amount must not be negative")
	}

	if _, err := s.budgets.FindByCategory(category); err == nil {
		return nil, apperr.Duplicate("budget for category %q already exists", category)
	} else {
		var nf *apperr.NotFoundError
		if !errors.As(err, &nf) {
			return nil, apperr.Persistence("budget lookup", err)
		}
	}

	budget := &models.Budget{Category: category, BudgetAmount: amount}
	audit := newAudit(&actor.ID, models.ActionCreate, "budget", ip, map[string]interface{}{
		"category":      category,
		"budget_amount": amount,
	})
	if err := s.budgets.Create(budget, audit); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, errorAction(models.ActionCreate), "budget", ip, map[string]interface{}{
			"category": category,
			"error":    err.Error(),
		}))
		return nil, apperr.Persistence("create budget", err)
	}
	return budget, nil
}

// Update changes the amount of an existing budget.
func (s *BudgetService) Update(actorID uint, ip, category string, amount float64) (*models.Budget, error) {
	actor, err := s.editor(actorID)
	if err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, apperr.Validation("budget amount must not be negative")
	}

	budget, err := s.budgets.FindByCategory(category)
	if err != nil {
		return nil, err
	}

	previous := budget.BudgetAmount
	budget.BudgetAmount = amount
	audit := newAudit(&actor.ID, models.ActionUpdate, "budget", ip, map[string]interface{}{
		"category":        category,
		"budget_amount":   amount,
		"previous_amount": previous,
	})
	if err := s.budgets.Update(budget, audit); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, errorAction(models.ActionUpdate), "budget", ip, map[string]interface{}{
			"category": category,
			"error":    err.Error(),
		}))
		return nil, apperr.Persistence("update budget", err)
	}
	return budget, nil
}

// Delete removes a budget category.
func (s *BudgetService) Delete(actorID uint, ip, category string) error {
	actor, err := s.editor(actorID)
	if err != nil {
		return err
	}

	budget, err := s.budgets.FindByCategory(category)
	if err != nil {
		return err
	}

	audit := newAudit(&actor.ID, models.ActionDelete, "budget", ip, map[string]interface{}{
		"category":      budget.Category,
		"budget_amount": budget.BudgetAmount,
	})
	if err := s.budgets.Delete(category, audit); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, errorAction(models.ActionDelete), "budget", ip, map[string]interface{}{
			"category": category,
			"error":    err.Error(),
		}))
		return apperr.Persistence("delete budget", err)
	}
	return nil
}

// List returns all budgets for a viewer.
func (s *BudgetService) List(actorID uint) ([]models.Budget, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if !policy.Allows(actor.Role, policy.ViewBudgets) {
		return nil, apperr.Forbidden("role %s cannot view budgets", actor.Role)
	}
	return s.budgets.List()
}

func (s *BudgetService) editor(actorID uint) (*models.User, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if !policy.Allows(actor.Role, policy.EditBudgets) {
		return nil, apperr.Forbidden("role %s cannot edit budgets", actor.Role)
	}
	return actor, nil
}
