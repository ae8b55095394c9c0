package policy

import "company-finance-backend/internal/models"

// Capability is a named permission checked before a mutating or
// sensitive read operation.
type Capability string

const (
	ManageTransactions  Capability = "manage_transactions"
	EditTransactions    Capability = "edit_transactions"
	ApproveTransactions Capability = "approve_transactions"
	ViewTransactions    Capability = "view_transactions"
	ViewBudgets         Capability = "view_budgets"
	EditBudgets         Capability = "edit_budgets"
	ViewPayroll         Capability = "view_payroll"
	ManagePayroll       Capability = "manage_payroll"
	ApprovePayroll      Capability = "approve_payroll"
	ManageUsers         Capability = "manage_users"
)

// roleCapabilities is the single source of truth for role permissions.
// A flat table, not inheritance: a role has exactly the capabilities
// listed here and nothing else.
var roleCapabilities = map[string]map[Capability]bool{
	models.RoleAdmin: {
		ManageTransactions:  true,
		EditTransactions:    true,
		ApproveTransactions: true,
		ViewTransactions:    true,
		ViewBudgets:         true,
		EditBudgets:         true,
		ViewPayroll:         true,
		ManagePayroll:       true,
		ApprovePayroll:      true,
		ManageUsers:         true,
	},
	models.RoleFinance: {
		ManageTransactions:  true,
		EditTransactions:    true,
		ApproveTransactions: true,
		ViewTransactions:    true,
		ViewBudgets:         true,
		EditBudgets:         true,
		ViewPayroll:         true,
		ManagePayroll:       true,
		ApprovePayroll:      true,
	},
	models.RoleHR: {
		ViewTransactions: true,
		ViewPayroll:      true,
	},
	models.RoleAccountant: {
		ViewTransactions: true,
		ViewPayroll:      true,
	},
	models.RoleEmployee: {
		ViewTransactions: true,
	},
	models.RoleManager: {
		ViewTransactions:    true,
		ApproveTransactions: true,
	},
}

// Allows reports whether the role holds the capability.
// Unknown roles hold nothing.
func Allows(role string, cap Capability) bool {
	return roleCapabilities[role][cap]
}

// CanApproveForDepartment reports whether a user with the given role and
// department may approve or reject a transaction belonging to txDept.
// Managers are scoped to their own department; admin and finance approve
// across departments. A manager without a department assignment, or a
// transaction without one, never matches.
func CanApproveForDepartment(role string, userDept, txDept *uint) bool {
	if !Allows(role, ApproveTransactions) {
		return false
	}
	if role != models.RoleManager {
		return true
	}
	if userDept == nil || txDept == nil {
		return false
	}
	return *userDept == *txDept
}

// Capabilities returns the capability set of a role, for introspection
// endpoints. The returned map is a copy.
func Capabilities(role string) map[Capability]bool {
	out := make(map[Capability]bool, len(roleCapabilities[role]))
	for c, ok := range roleCapabilities[role] {
		if ok {
			out[c] = true
		}
	}
	return out
}

// ValidRole reports whether the role name is one of the known roles.
func ValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}
