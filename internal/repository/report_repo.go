package repository

import (
	"time"

	"company-finance-backend/internal/models"

	"gorm.io/gorm"
)

// ReportRepository runs the read-only aggregation queries that feed the
// dashboard and report endpoints. Rejected transactions never count
// toward totals.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// MonthlyRow is one month's income/expense totals, month as "YYYY-MM".
type MonthlyRow struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// YearlyRow is one calendar year's income/expense totals.
type YearlyRow struct {
	Year    int     `json:"year"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// CategoryTotal is a (category, summed amount) pair.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

func (r *ReportRepository) base(from, to time.Time) *gorm.DB {
	q := r.db.Model(&models.Transaction{}).Where("status <> ?", models.StatusRejected)
	if !from.IsZero() {
		q = q.Where("date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("date < ?", to)
	}
	return q
}

// MonthlyTotals returns per-month income and expense sums in ascending
// month order. Months with no transactions are absent; the service layer
// zero-fills the gaps.
func (r *ReportRepository) MonthlyTotals(from, to time.Time) ([]MonthlyRow, error) {
	var rows []MonthlyRow
	err := r.base(from, to).
		Select(`DATE_FORMAT(date, '%Y-%m') AS month,
			SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END) AS income,
			SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END) AS expense`).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}

// YearlyTotals returns per-year income and expense sums ascending.
func (r *ReportRepository) YearlyTotals() ([]YearlyRow, error) {
	var rows []YearlyRow
	err := r.base(time.Time{}, time.Time{}).
		Select(`YEAR(date) AS year,
			SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END) AS income,
			SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END) AS expense`).
		Group("year").
		Order("year ASC").
		Scan(&rows).Error
	return rows, err
}

// ExpenseTotalsByCategory sums expense amounts per category.
func (r *ReportRepository) ExpenseTotalsByCategory() ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := r.base(time.Time{}, time.Time{}).
		Select("category, SUM(amount) AS total").
		Where("type = ?", models.TypeExpense).
		Group("category").
		Scan(&rows).Error
	return rows, err
}

// SumByType sums transaction amounts of one type in [from, to).
func (r *ReportRepository) SumByType(txType string, from, to time.Time) (float64, error) {
	var total float64
	err := r.base(from, to).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ?", txType).
		Scan(&total).Error
	return total, err
}

// RecentTransactions returns the newest transactions by date.
func (r *ReportRepository) RecentTransactions(limit int) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.Order("date DESC").Limit(limit).Find(&txns).Error
	return txns, err
}
