package service

import (
	"sort"
	"time"

	"company-finance-backend/internal/models"
	"company-finance-backend/internal/repository"
)

// Utilization levels for budget reporting.
const (
	UtilizationOK      = "ok"
	UtilizationWarning = "warning"
	UtilizationDanger  = "danger"
)

// Alert cutoffs: warning from 80% spend, danger from 90%.
const (
	warningPct = 80.0
	dangerPct  = 90.0
)

// topCategories caps the top-spending-categories report.
const topCategories = 5

// Recent-transactions paging bounds.
const (
	defaultRecentLimit = 10
	maxRecentLimit     = 100
)

type ReportService struct {
	reports ReportStore
	budgets BudgetStore
}

func NewReportService(reports ReportStore, budgets BudgetStore) *ReportService {
	return &ReportService{
		reports: reports,
		budgets: budgets,
	}
}

// Overview summarises all-time totals.
type Overview struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	NetProfit    float64 `json:"net_profit"`
}

// Overview returns the headline income/expense/net figures.
func (s *ReportService) Overview() (*Overview, error) {
	income, err := s.reports.SumByType(models.TypeIncome, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	expense, err := s.reports.SumByType(models.TypeExpense, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	return &Overview{
		TotalIncome:  income,
		TotalExpense: expense,
		NetProfit:    income - expense,
	}, nil
}

// MonthlyRollup returns per-month income/expense totals in ascending
// month order, zero-filling months without transactions between the
// first and last populated month.
func (s *ReportService) MonthlyRollup(from, to time.Time) ([]repository.MonthlyRow, error) {
	rows, err := s.reports.MonthlyTotals(from, to)
	if err != nil {
		return nil, err
	}
	return fillMonths(rows), nil
}

// YearlyRollup returns per-year totals ascending, zero-filled between
// the first and last populated year.
func (s *ReportService) YearlyRollup() ([]repository.YearlyRow, error) {
	rows, err := s.reports.YearlyTotals()
	if err != nil {
		return nil, err
	}
	return fillYears(rows), nil
}

// ExpenseBreakdown returns the (category, total) expense pairs.
func (s *ReportService) ExpenseBreakdown() ([]repository.CategoryTotal, error) {
	return s.reports.ExpenseTotalsByCategory()
}

// TopSpendingCategories returns at most five categories sorted by total
// descending, ties broken by category name ascending.
func (s *ReportService) TopSpendingCategories() ([]repository.CategoryTotal, error) {
	rows, err := s.reports.ExpenseTotalsByCategory()
	if err != nil {
		return nil, err
	}
	return topSpending(rows, topCategories), nil
}

// BudgetUtilization reports spend against each budget.
type BudgetUtilization struct {
	Category   string  `json:"category"`
	Budget     float64 `json:"budget"`
	Spent      float64 `json:"spent"`
	Percentage float64 `json:"percentage"`
	Level      string  `json:"level"`
}

// BudgetUtilization returns per-category spend as a percentage of the
// budget, flagged warning from 80% and danger from 90%.
func (s *ReportService) BudgetUtilization() ([]BudgetUtilization, error) {
	budgets, err := s.budgets.List()
	if err != nil {
		return nil, err
	}
	spentRows, err := s.reports.ExpenseTotalsByCategory()
	if err != nil {
		return nil, err
	}

	spent := make(map[string]float64, len(spentRows))
	for _, row := range spentRows {
		spent[row.Category] = row.Total
	}

	out := make([]BudgetUtilization, 0, len(budgets))
	for _, b := range budgets {
		u := BudgetUtilization{
			Category: b.Category,
			Budget:   b.BudgetAmount,
			Spent:    spent[b.Category],
			Level:    UtilizationOK,
		}
		if b.BudgetAmount > 0 {
			u.Percentage = u.Spent / b.BudgetAmount * 100
		}
		switch {
		case u.Percentage >= dangerPct:
			u.Level = UtilizationDanger
		case u.Percentage >= warningPct:
			u.Level = UtilizationWarning
		}
		out = append(out, u)
	}
	return out, nil
}

// Trend compares the period ending at `now` against the immediately
// preceding period of equal length.
type Trend struct {
	Income           float64 `json:"income"`
	Expense          float64 `json:"expense"`
	PreviousIncome   float64 `json:"previous_income"`
	PreviousExpense  float64 `json:"previous_expense"`
	IncomeChangePct  float64 `json:"income_change_pct"`
	ExpenseChangePct float64 `json:"expense_change_pct"`
}

// Trend computes percent change of the current period vs the previous
// one. A zero previous total yields a 0% change, never a division error.
func (s *ReportService) Trend(now time.Time, period time.Duration) (*Trend, error) {
	currentStart := now.Add(-period)
	previousStart := currentStart.Add(-period)

	income, err := s.reports.SumByType(models.TypeIncome, currentStart, now)
	if err != nil {
		return nil, err
	}
	expense, err := s.reports.SumByType(models.TypeExpense, currentStart, now)
	if err != nil {
		return nil, err
	}
	prevIncome, err := s.reports.SumByType(models.TypeIncome, previousStart, currentStart)
	if err != nil {
		return nil, err
	}
	prevExpense, err := s.reports.SumByType(models.TypeExpense, previousStart, currentStart)
	if err != nil {
		return nil, err
	}

	return &Trend{
		Income:           income,
		Expense:          expense,
		PreviousIncome:   prevIncome,
		PreviousExpense:  prevExpense,
		IncomeChangePct:  percentChange(income, prevIncome),
		ExpenseChangePct: percentChange(expense, prevExpense),
	}, nil
}

// RecentTransactions returns the latest transactions for the dashboard.
// The limit is clamped to a sane window regardless of what the caller
// requests.
func (s *ReportService) RecentTransactions(limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return s.reports.RecentTransactions(limit)
}

// --- pure helpers ---

func percentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

const monthLayout = "2006-01"

// fillMonths inserts zero rows for months between the first and last
// populated month. Input is assumed sorted ascending by month.
func fillMonths(rows []repository.MonthlyRow) []repository.MonthlyRow {
	if len(rows) == 0 {
		return rows
	}

	byMonth := make(map[string]repository.MonthlyRow, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}

	first, errF := time.Parse(monthLayout, rows[0].Month)
	last, errL := time.Parse(monthLayout, rows[len(rows)-1].Month)
	if errF != nil || errL != nil {
		return rows
	}

	var out []repository.MonthlyRow
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		key := m.Format(monthLayout)
		if row, ok := byMonth[key]; ok {
			out = append(out, row)
		} else {
			out = append(out, repository.MonthlyRow{Month: key})
		}
	}
	return out
}

// fillYears inserts zero rows for years between the first and last
// populated year. Input is assumed sorted ascending by year.
func fillYears(rows []repository.YearlyRow) []repository.YearlyRow {
	if len(rows) == 0 {
		return rows
	}

	byYear := make(map[int]repository.YearlyRow, len(rows))
	for _, r := range rows {
		byYear[r.Year] = r
	}

	var out []repository.YearlyRow
	for y := rows[0].Year; y <= rows[len(rows)-1].Year; y++ {
		if row, ok := byYear[y]; ok {
			out = append(out, row)
		} else {
			out = append(out, repository.YearlyRow{Year: y})
		}
	}
	return out
}

// topSpending sorts by total descending with a category-name tie-break
// and truncates to n, making the output deterministic.
func topSpending(rows []repository.CategoryTotal, n int) []repository.CategoryTotal {
	out := make([]repository.CategoryTotal, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
