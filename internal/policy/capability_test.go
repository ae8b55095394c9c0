package policy

import (
	"testing"

	"company-finance-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

var allCapabilities = []Capability{
	ManageTransactions,
	EditTransactions,
	ApproveTransactions,
	ViewTransactions,
	ViewBudgets,
	EditBudgets,
	ViewPayroll,
	ManagePayroll,
	ApprovePayroll,
	ManageUsers,
}

func TestAllowsMatchesRoleTable(t *testing.T) {
	expected := map[string][]Capability{
		models.RoleAdmin: {
			ManageTransactions, EditTransactions, ApproveTransactions, ViewTransactions,
			ViewBudgets, EditBudgets,
			ViewPayroll, ManagePayroll, ApprovePayroll,
			ManageUsers,
		},
		models.RoleFinance: {
			ManageTransactions, EditTransactions, ApproveTransactions, ViewTransactions,
			ViewBudgets, EditBudgets,
			ViewPayroll, ManagePayroll, ApprovePayroll,
		},
		models.RoleHR:         {ViewTransactions, ViewPayroll},
		models.RoleAccountant: {ViewTransactions, ViewPayroll},
		models.RoleEmployee:   {ViewTransactions},
		models.RoleManager:    {ViewTransactions, ApproveTransactions},
	}

	for role, caps := range expected {
		granted := make(map[Capability]bool, len(caps))
		for _, c := range caps {
			granted[c] = true
		}
		for _, c := range allCapabilities {
			assert.Equal(t, granted[c], Allows(role, c),
				"role %s capability %s", role, c)
		}
	}
}

func TestAllowsUnknownRole(t *testing.T) {
	for _, c := range allCapabilities {
		assert.False(t, Allows("intern", c))
		assert.False(t, Allows("", c))
	}
}

func TestCanApproveForDepartment(t *testing.T) {
	dept1 := uint(1)
	dept2 := uint(2)

	tests := []struct {
		name     string
		role     string
		userDept *uint
		txDept   *uint
		want     bool
	}{
		{"admin any department", models.RoleAdmin, nil, &dept1, true},
		{"finance any department", models.RoleFinance, &dept1, &dept2, true},
		{"manager own department", models.RoleManager, &dept1, &dept1, true},
		{"manager other department", models.RoleManager, &dept1, &dept2, false},
		{"manager without department", models.RoleManager, nil, &dept1, false},
		{"manager transaction without department", models.RoleManager, &dept1, nil, false},
		{"employee never", models.RoleEmployee, &dept1, &dept1, false},
		{"hr never", models.RoleHR, &dept1, &dept1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanApproveForDepartment(tt.role, tt.userDept, tt.txDept))
		})
	}
}

func TestCapabilitiesReturnsCopy(t *testing.T) {
	caps := Capabilities(models.RoleEmployee)
	assert.True(t, caps[ViewTransactions])

	caps[ManageUsers] = true
	assert.False(t, Allows(models.RoleEmployee, ManageUsers))
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{
		models.RoleAdmin, models.RoleFinance, models.RoleHR,
		models.RoleAccountant, models.RoleEmployee, models.RoleManager,
	} {
		assert.True(t, ValidRole(role), role)
	}
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}
