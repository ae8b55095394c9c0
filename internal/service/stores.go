package service

import (
	"time"

	"company-finance-backend/internal/models"
	"company-finance-backend/internal/repository"
)

// Store interfaces consumed by the services. The GORM repositories in
// internal/repository satisfy them; tests substitute in-memory stubs.

type UserStore interface {
	FindByUsername(username string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	List() ([]models.User, error)
	Create(user *models.User, audit *models.AuditLog) error
	Update(user *models.User, audit *models.AuditLog) error
	Delete(id uint, audit *models.AuditLog) error
	CreateRefreshToken(token *models.RefreshToken) error
	FindRefreshTokenByHash(hash string) (*models.RefreshToken, error)
	RevokeRefreshTokenByHash(hash string) error
}

type AuditStore interface {
	Append(entry *models.AuditLog) error
	List(limit int) ([]models.AuditLog, error)
	ListByResource(resourceType string, limit int) ([]models.AuditLog, error)
}

type TransactionStore interface {
	FindByID(id uint) (*models.Transaction, error)
	List(f repository.TransactionFilter) ([]models.Transaction, error)
	Create(txn *models.Transaction, audit *models.AuditLog) error
	Update(txn *models.Transaction, audit *models.AuditLog) error
	Delete(id uint, audit *models.AuditLog) error
	Transition(id uint, newStatus string, approverID uint, at time.Time, audit *models.AuditLog) error
	SpentForCategoryBetween(category string, from, to time.Time) (float64, error)
}

type BudgetStore interface {
	FindByCategory(category string) (*models.Budget, error)
	List() ([]models.Budget, error)
	Create(budget *models.Budget, audit *models.AuditLog) error
	Update(budget *models.Budget, audit *models.AuditLog) error
	Delete(category string, audit *models.AuditLog) error
}

type PayrollStore interface {
	FindByID(id uint) (*models.Payroll, error)
	List() ([]models.Payroll, error)
	ListByEmployee(employeeID uint) ([]models.Payroll, error)
	ExistsForEmployeeBetween(employeeID uint, from, to time.Time) (bool, error)
	Create(record *models.Payroll, audit *models.AuditLog) error
	Update(record *models.Payroll, audit *models.AuditLog) error
	MarkPaid(id uint, audit *models.AuditLog) error
	Delete(id uint, audit *models.AuditLog) error
}

type DepartmentStore interface {
	List() ([]models.Department, error)
	FindByID(id uint) (*models.Department, error)
	FindByName(name string) (*models.Department, error)
	Create(department *models.Department, audit *models.AuditLog) error
	Update(department *models.Department, audit *models.AuditLog) error
}

type ReportStore interface {
	MonthlyTotals(from, to time.Time) ([]repository.MonthlyRow, error)
	YearlyTotals() ([]repository.YearlyRow, error)
	ExpenseTotalsByCategory() ([]repository.CategoryTotal, error)
	SumByType(txType string, from, to time.Time) (float64, error)
	RecentTransactions(limit int) ([]models.Transaction, error)
}
