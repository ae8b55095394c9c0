package service

import (
	"time"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"
	"company-finance-backend/internal/repository"
)

// In-memory stand-ins for the store interfaces. Mutations append their
// audit entries to a shared stubAuditStore so tests can assert the
// trail the same way they would against the real repositories.

type stubAuditStore struct {
	entries []*models.AuditLog
}

func (s *stubAuditStore) Append(entry *models.AuditLog) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubAuditStore) List(limit int) ([]models.AuditLog, error) {
	out := make([]models.AuditLog, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, *e)
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *stubAuditStore) ListByResource(resourceType string, limit int) ([]models.AuditLog, error) {
	var out []models.AuditLog
	for _, e := range s.entries {
		if e.ResourceType == resourceType {
			out = append(out, *e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *stubAuditStore) last() *models.AuditLog {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

func (s *stubAuditStore) actions() []string {
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Action)
	}
	return out
}

type stubUserStore struct {
	audits *stubAuditStore
	users  map[uint]*models.User
	tokens map[string]*models.RefreshToken
	nextID uint
}

func newStubUserStore(audits *stubAuditStore, users ...*models.User) *stubUserStore {
	s := &stubUserStore{
		audits: audits,
		users:  make(map[uint]*models.User),
		tokens: make(map[string]*models.RefreshToken),
	}
	for _, u := range users {
		if u.ID == 0 {
			s.nextID++
			u.ID = s.nextID
		} else if u.ID > s.nextID {
			s.nextID = u.ID
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUserStore) FindByUsername(username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (s *stubUserStore) FindByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (s *stubUserStore) FindByID(id uint) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("user")
}

func (s *stubUserStore) List() ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUserStore) Create(user *models.User, audit *models.AuditLog) error {
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user
	audit.ResourceID = &user.ID
	return s.audits.Append(audit)
}

func (s *stubUserStore) Update(user *models.User, audit *models.AuditLog) error {
	s.users[user.ID] = user
	audit.ResourceID = &user.ID
	return s.audits.Append(audit)
}

func (s *stubUserStore) Delete(id uint, audit *models.AuditLog) error {
	if _, ok := s.users[id]; !ok {
		return apperr.NotFound("user")
	}
	delete(s.users, id)
	audit.ResourceID = &id
	return s.audits.Append(audit)
}

func (s *stubUserStore) CreateRefreshToken(token *models.RefreshToken) error {
	s.tokens[token.TokenHash] = token
	return nil
}

func (s *stubUserStore) FindRefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	token, ok := s.tokens[hash]
	if !ok || token.Revoked {
		return nil, apperr.NotFound("refresh token")
	}
	if u, ok := s.users[token.UserID]; ok {
		token.User = *u
	}
	return token, nil
}

func (s *stubUserStore) RevokeRefreshTokenByHash(hash string) error {
	token, ok := s.tokens[hash]
	if !ok || token.Revoked {
		return apperr.NotFound("refresh token")
	}
	token.Revoked = true
	return nil
}

type stubTransactionStore struct {
	audits     *stubAuditStore
	txns       map[uint]*models.Transaction
	nextID     uint
	lastFilter repository.TransactionFilter
}

func newStubTransactionStore(audits *stubAuditStore, txns ...*models.Transaction) *stubTransactionStore {
	s := &stubTransactionStore{
		audits: audits,
		txns:   make(map[uint]*models.Transaction),
	}
	for _, txn := range txns {
		if txn.ID == 0 {
			s.nextID++
			txn.ID = s.nextID
		} else if txn.ID > s.nextID {
			s.nextID = txn.ID
		}
		s.txns[txn.ID] = txn
	}
	return s
}

func (s *stubTransactionStore) FindByID(id uint) (*models.Transaction, error) {
	if txn, ok := s.txns[id]; ok {
		copied := *txn
		return &copied, nil
	}
	return nil, apperr.NotFound("transaction")
}

func (s *stubTransactionStore) List(f repository.TransactionFilter) ([]models.Transaction, error) {
	s.lastFilter = f
	out := make([]models.Transaction, 0, len(s.txns))
	for _, txn := range s.txns {
		if f.CreatedBy != nil && txn.CreatedBy != *f.CreatedBy {
			continue
		}
		if f.DepartmentID != nil && (txn.DepartmentID == nil || *txn.DepartmentID != *f.DepartmentID) {
			continue
		}
		out = append(out, *txn)
	}
	return out, nil
}

func (s *stubTransactionStore) Create(txn *models.Transaction, audit *models.AuditLog) error {
	s.nextID++
	txn.ID = s.nextID
	copied := *txn
	s.txns[txn.ID] = &copied
	audit.ResourceID = &txn.ID
	return s.audits.Append(audit)
}

func (s *stubTransactionStore) Update(txn *models.Transaction, audit *models.AuditLog) error {
	copied := *txn
	s.txns[txn.ID] = &copied
	audit.ResourceID = &txn.ID
	return s.audits.Append(audit)
}

func (s *stubTransactionStore) Delete(id uint, audit *models.AuditLog) error {
	if _, ok := s.txns[id]; !ok {
		return apperr.NotFound("transaction")
	}
	delete(s.txns, id)
	audit.ResourceID = &id
	return s.audits.Append(audit)
}

func (s *stubTransactionStore) Transition(id uint, newStatus string, approverID uint, at time.Time, audit *models.AuditLog) error {
	txn, ok := s.txns[id]
	if !ok {
		return apperr.NotFound("transaction")
	}
	if txn.Status != models.StatusPending {
		return apperr.StateConflict("transaction %d is already %s", id, txn.Status)
	}
	txn.Status = newStatus
	txn.ApproverID = &approverID
	txn.ApprovalDate = &at
	audit.ResourceID = &id
	return s.audits.Append(audit)
}

func (s *stubTransactionStore) SpentForCategoryBetween(category string, from, to time.Time) (float64, error) {
	var total float64
	for _, txn := range s.txns {
		if txn.Type != models.TypeExpense || txn.Category != category {
			continue
		}
		if txn.Status == models.StatusRejected {
			continue
		}
		if txn.Date.Before(from) || !txn.Date.Before(to) {
			continue
		}
		total += txn.Amount
	}
	return total, nil
}

type stubBudgetStore struct {
	audits  *stubAuditStore
	budgets map[string]*models.Budget
}

func newStubBudgetStore(audits *stubAuditStore, budgets ...*models.Budget) *stubBudgetStore {
	s := &stubBudgetStore{
		audits:  audits,
		budgets: make(map[string]*models.Budget),
	}
	for _, b := range budgets {
		s.budgets[b.Category] = b
	}
	return s
}

func (s *stubBudgetStore) FindByCategory(category string) (*models.Budget, error) {
	if b, ok := s.budgets[category]; ok {
		return b, nil
	}
	return nil, apperr.NotFound("budget")
}

func (s *stubBudgetStore) List() ([]models.Budget, error) {
	out := make([]models.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		out = append(out, *b)
	}
	return out, nil
}

func (s *stubBudgetStore) Create(budget *models.Budget, audit *models.AuditLog) error {
	s.budgets[budget.Category] = budget
	return s.audits.Append(audit)
}

func (s *stubBudgetStore) Update(budget *models.Budget, audit *models.AuditLog) error {
	s.budgets[budget.Category] = budget
	return s.audits.Append(audit)
}

func (s *stubBudgetStore) Delete(category string, audit *models.AuditLog) error {
	if _, ok := s.budgets[category]; !ok {
		return apperr.NotFound("budget")
	}
	delete(s.budgets, category)
	return s.audits.Append(audit)
}

type stubPayrollStore struct {
	audits  *stubAuditStore
	records map[uint]*models.Payroll
	nextID  uint
}

func newStubPayrollStore(audits *stubAuditStore, records ...*models.Payroll) *stubPayrollStore {
	s := &stubPayrollStore{
		audits:  audits,
		records: make(map[uint]*models.Payroll),
	}
	for _, r := range records {
		if r.ID == 0 {
			s.nextID++
			r.ID = s.nextID
		} else if r.ID > s.nextID {
			s.nextID = r.ID
		}
		s.records[r.ID] = r
	}
	return s
}

func (s *stubPayrollStore) FindByID(id uint) (*models.Payroll, error) {
	if r, ok := s.records[id]; ok {
		return r, nil
	}
	return nil, apperr.NotFound("payroll record")
}

func (s *stubPayrollStore) List() ([]models.Payroll, error) {
	out := make([]models.Payroll, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, *r)
	}
	return out, nil
}

func (s *stubPayrollStore) ListByEmployee(employeeID uint) ([]models.Payroll, error) {
	var out []models.Payroll
	for _, r := range s.records {
		if r.EmployeeID == employeeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubPayrollStore) ExistsForEmployeeBetween(employeeID uint, from, to time.Time) (bool, error) {
	for _, r := range s.records {
		if r.EmployeeID != employeeID {
			continue
		}
		if r.PaymentDate.Before(from) || !r.PaymentDate.Before(to) {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (s *stubPayrollStore) Create(record *models.Payroll, audit *models.AuditLog) error {
	s.nextID++
	record.ID = s.nextID
	s.records[record.ID] = record
	audit.ResourceID = &record.ID
	return s.audits.Append(audit)
}

func (s *stubPayrollStore) Update(record *models.Payroll, audit *models.AuditLog) error {
	s.records[record.ID] = record
	audit.ResourceID = &record.ID
	return s.audits.Append(audit)
}

func (s *stubPayrollStore) MarkPaid(id uint, audit *models.AuditLog) error {
	record, ok := s.records[id]
	if !ok {
		return apperr.NotFound("payroll record")
	}
	if record.Status != models.PayrollPending {
		return apperr.StateConflict("payroll record %d is already %s", id, record.Status)
	}
	record.Status = models.PayrollPaid
	audit.ResourceID = &id
	return s.audits.Append(audit)
}

func (s *stubPayrollStore) Delete(id uint, audit *models.AuditLog) error {
	if _, ok := s.records[id]; !ok {
		return apperr.NotFound("payroll record")
	}
	delete(s.records, id)
	audit.ResourceID = &id
	return s.audits.Append(audit)
}

type stubReportStore struct {
	monthly    []repository.MonthlyRow
	yearly     []repository.YearlyRow
	byCategory []repository.CategoryTotal
	sumByType  func(txType string, from, to time.Time) (float64, error)
	recent     []models.Transaction
	lastLimit  int
}

func (s *stubReportStore) MonthlyTotals(from, to time.Time) ([]repository.MonthlyRow, error) {
	return s.monthly, nil
}

func (s *stubReportStore) YearlyTotals() ([]repository.YearlyRow, error) {
	return s.yearly, nil
}

func (s *stubReportStore) ExpenseTotalsByCategory() ([]repository.CategoryTotal, error) {
	return s.byCategory, nil
}

func (s *stubReportStore) SumByType(txType string, from, to time.Time) (float64, error) {
	if s.sumByType == nil {
		return 0, nil
	}
	return s.sumByType(txType, from, to)
}

func (s *stubReportStore) RecentTransactions(limit int) ([]models.Transaction, error) {
	s.lastLimit = limit
	return s.recent, nil
}
