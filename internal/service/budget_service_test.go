package service

import (
	"testing"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func budgetFixture() (*BudgetService, *stubBudgetStore, *stubAuditStore) {
	audits := &stubAuditStore{}
	users := newStubUserStore(audits,
		&models.User{ID: 1, Username: "fin", Role: models.RoleFinance, IsActive: true},
		&models.User{ID: 2, Username: "emp", Role: models.RoleEmployee, IsActive: true},
	)
	budgets := newStubBudgetStore(audits, &models.Budget{Category: "Food", BudgetAmount: 500})
	return NewBudgetService(budgets, users, audits), budgets, audits
}

func TestCreateBudget(t *testing.T) {
	svc, budgets, audits := budgetFixture()

	budget, err := svc.Create(1, "10.0.0.1", "Travel", 1500)
	require.NoError(t, err)
	assert.Equal(t, "Travel", budget.Category)
	assert.Equal(t, 1500.0, budget.BudgetAmount)

	stored, err := budgets.FindByCategory("Travel")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, stored.BudgetAmount)

	last := audits.last()
	require.NotNil(t, last)
	assert.Equal(t, models.ActionCreate, last.Action)
	assert.Equal(t, "budget", last.ResourceType)
}

func TestCreateBudgetDuplicateCategory(t *testing.T) {
	svc, _, _ := budgetFixture()

	_, err := svc.Create(1, "", "Food", 700)
	var dup *apperr.DuplicateError
	assert.ErrorAs(t, err, &dup)
}

func TestCreateBudgetValidation(t *testing.T) {
	svc, _, _ := budgetFixture()
	var validation *apperr.ValidationError

	_, err := svc.Create(1, "", "", 100)
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Create(1, "", "Travel", -1)
	assert.ErrorAs(t, err, &validation)
}

func TestBudgetEditRequiresCapability(t *testing.T) {
	svc, _, _ := budgetFixture()
	var forbidden *apperr.AuthorizationError

	_, err := svc.Create(2, "", "Travel", 100)
	assert.ErrorAs(t, err, &forbidden)

	_, err = svc.Update(2, "", "Food", 100)
	assert.ErrorAs(t, err, &forbidden)

	err = svc.Delete(2, "", "Food")
	assert.ErrorAs(t, err, &forbidden)

	_, err = svc.List(2)
	assert.ErrorAs(t, err, &forbidden)
}

func TestUpdateBudgetAmount(t *testing.T) {
	svc, _, audits := budgetFixture()

	budget, err := svc.Update(1, "", "Food", 800)
	require.NoError(t, err)
	assert.Equal(t, 800.0, budget.BudgetAmount)

	last := audits.last()
	require.NotNil(t, last)
	assert.Equal(t, models.ActionUpdate, last.Action)
}

func TestUpdateMissingBudget(t *testing.T) {
	svc, _, _ := budgetFixture()

	_, err := svc.Update(1, "", "Housing", 800)
	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeleteBudget(t *testing.T) {
	svc, budgets, _ := budgetFixture()

	require.NoError(t, svc.Delete(1, "", "Food"))

	_, err := budgets.FindByCategory("Food")
	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
