package service

import (
	"errors"
	"time"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"
	"company-finance-backend/internal/policy"
	"company-finance-backend/internal/repository"
)

// Advisory levels for budget spend at transaction creation. Advisory
// only: an overrun never blocks the write.
const (
	AdvisoryOK        = "ok"
	AdvisoryThreshold = "threshold"
	AdvisoryOverrun   = "overrun"
)

// thresholdPct is the spend percentage at which a threshold advisory is
// raised on expense creation.
const thresholdPct = 80.0

// maxTransactionPageSize caps list queries no matter what limit the
// caller asks for.
const maxTransactionPageSize = 500

// BudgetAdvisory reports how the category's monthly spend relates to its
// budget after a new expense was written.
type BudgetAdvisory struct {
	Category    string  `json:"category"`
	Budget      float64 `json:"budget"`
	Spent       float64 `json:"spent"`
	Utilization float64 `json:"utilization"`
	Level       string  `json:"level"`
}

type TransactionService struct {
	txns    TransactionStore
	budgets BudgetStore
	users   UserStore
	audits  AuditStore
}

func NewTransactionService(txns TransactionStore, budgets BudgetStore, users UserStore, audits AuditStore) *TransactionService {
	return &TransactionService{
		txns:    txns,
		budgets: budgets,
		users:   users,
		audits:  audits,
	}
}

// CreateTransactionInput is the payload for transaction creation.
type CreateTransactionInput struct {
	Type         string
	Amount       float64
	Description  string
	Category     string
	Date         time.Time
	DepartmentID *uint
}

// Create records a new transaction. Status defaults to pending; a
// creator holding the approve capability gets the transaction approved
// immediately, with approver and approval date stamped. For expenses the
// returned advisory reflects the category's monthly spend against its
// budget, including the new row.
func (s *TransactionService) Create(actorID uint, ip string, in CreateTransactionInput) (*models.Transaction, *BudgetAdvisory, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, nil, err
	}
	if !policy.Allows(actor.Role, policy.ManageTransactions) {
		return nil, nil, apperr.Forbidden("role %s cannot create transactions", actor.Role)
	}

	if in.Type != models.TypeIncome && in.Type != models.TypeExpense {
		return nil, nil, apperr.Validation("type must be income or expense")
	}
	if in.Amount <= 0 {
		return nil, nil, apperr.Validation("amount must be positive")
	}
	if in.Category == "" {
		return nil, nil, apperr.Validation("category is required")
	}
	if in.Date.IsZero() {
		in.Date = time.Now().UTC()
	}

	departmentID := in.DepartmentID
	if departmentID == nil {
		departmentID = actor.DepartmentID
	}

	txn := &models.Transaction{
		Type:         in.Type,
		Amount:       in.Amount,
		Description:  in.Description,
		Category:     in.Category,
		Date:         in.Date,
		Status:       models.StatusPending,
		CreatedBy:    actor.ID,
		DepartmentID: departmentID,
	}
	if policy.Allows(actor.Role, policy.ApproveTransactions) {
		now := time.Now().UTC()
		txn.Status = models.StatusApproved
		txn.ApproverID = &actor.ID
		txn.ApprovalDate = &now
	}

	audit := newAudit(&actor.ID, models.ActionCreate, "transaction", ip, map[string]interface{}{
		"type":     txn.Type,
		"amount":   txn.Amount,
		"category": txn.Category,
		"status":   txn.Status,
	})
	if err := s.txns.Create(txn, audit); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, errorAction(models.ActionCreate), "transaction", ip, map[string]interface{}{
			"error": err.Error(),
		}))
		return nil, nil, apperr.Persistence("create transaction", err)
	}

	advisory := s.advisoryFor(txn)
	return txn, advisory, nil
}

// advisoryFor computes the budget advisory for an expense that was just
// written. Nil when the transaction is income or no budget covers the
// category.
func (s *TransactionService) advisoryFor(txn *models.Transaction) *BudgetAdvisory {
	if txn.Type != models.TypeExpense {
		return nil
	}
	budget, err := s.budgets.FindByCategory(txn.Category)
	if err != nil {
		return nil
	}

	monthStart := time.Date(txn.Date.Year(), txn.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)
	spent, err := s.txns.SpentForCategoryBetween(txn.Category, monthStart, nextMonth)
	if err != nil {
		return nil
	}

	advisory := &BudgetAdvisory{
		Category: txn.Category,
		Budget:   budget.BudgetAmount,
		Spent:    spent,
		Level:    AdvisoryOK,
	}
	if budget.BudgetAmount > 0 {
		advisory.Utilization = spent / budget.BudgetAmount * 100
	}
	switch {
	case advisory.Utilization >= 100:
		advisory.Level = AdvisoryOverrun
	case advisory.Utilization >= thresholdPct:
		advisory.Level = AdvisoryThreshold
	}
	return advisory
}

// Approve moves a pending transaction to approved.
func (s *TransactionService) Approve(actorID, txnID uint, ip string) (*models.Transaction, error) {
	return s.transition(actorID, txnID, models.StatusApproved, ip)
}

// Reject moves a pending transaction to rejected.
func (s *TransactionService) Reject(actorID, txnID uint, ip string) (*models.Transaction, error) {
	return s.transition(actorID, txnID, models.StatusRejected, ip)
}

func (s *TransactionService) transition(actorID, txnID uint, newStatus, ip string) (*models.Transaction, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, err
	}

	txn, err := s.txns.FindByID(txnID)
	if err != nil {
		return nil, err
	}

	if !policy.CanApproveForDepartment(actor.Role, actor.DepartmentID, txn.DepartmentID) {
		return nil, apperr.Forbidden("role %s cannot approve this transaction", actor.Role)
	}
	if txn.Status != models.StatusPending {
		return nil, apperr.StateConflict("transaction %d is already %s", txnID, txn.Status)
	}

	now := time.Now().UTC()
	audit := newAudit(&actor.ID, models.ActionUpdate, "transaction", ip, map[string]interface{}{
		"status":   newStatus,
		"amount":   txn.Amount,
		"category": txn.Category,
	})
	if err := s.txns.Transition(txnID, newStatus, actor.ID, now, audit); err != nil {
		var conflict *apperr.StateConflictError
		if errors.As(err, &conflict) {
			return nil, err
		}
		_ = s.audits.Append(newAudit(&actor.ID, errorAction(models.ActionUpdate), "transaction", ip, map[string]interface{}{
			"transaction_id": txnID,
			"error":          err.Error(),
		}))
		return nil, apperr.Persistence("transition transaction", err)
	}

	txn.Status = newStatus
	txn.ApproverID = &actor.ID
	txn.ApprovalDate = &now
	return txn, nil
}

// UpdateTransactionInput carries optional field updates. Nil fields are
// left unchanged.
type UpdateTransactionInput struct {
	Amount      *float64
	Description *string
	Category    *string
	Date        *time.Time
}

// Update edits a pending transaction. Approved and rejected transactions
// are immutable.
func (s *TransactionService) Update(actorID, txnID uint, ip string, in UpdateTransactionInput) (*models.Transaction, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if !policy.Allows(actor.Role, policy.EditTransactions) {
		return nil, apperr.Forbidden("role %s cannot edit transactions", actor.Role)
	}

	txn, err := s.txns.FindByID(txnID)
	if err != nil {
		return nil, err
	}
	if txn.Status != models.StatusPending {
		return nil, apperr.StateConflict("transaction %d is already %s", txnID, txn.Status)
	}

	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, apperr.Validation("amount must be positive")
		}
		txn.Amount = *in.Amount
	}
	if in.Description != nil {
		txn.Description = *in.Description
	}
	if in.Category != nil {
		if *in.Category == "" {
			return nil, apperr.Validation("category is required")
		}
		txn.Category = *in.Category
	}
	if in.Date != nil {
		txn.Date = *in.Date
	}

	audit := newAudit(&actor.ID, models.ActionUpdate, "transaction", ip, map[string]interface{}{
		"amount":      txn.Amount,
		"category":    txn.Category,
		"description": txn.Description,
	})
	if err := s.txns.Update(txn, audit); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, errorAction(models.ActionUpdate), "transaction", ip, map[string]interface{}{
			"transaction_id": txnID,
			"error":          err.Error(),
		}))
		return nil, apperr.Persistence("update transaction", err)
	}
	return txn, nil
}

// Delete removes a transaction.
func (s *TransactionService) Delete(actorID, txnID uint, ip string) error {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return err
	}
	if !policy.Allows(actor.Role, policy.ManageTransactions) {
		return apperr.Forbidden("role %s cannot delete transactions", actor.Role)
	}

	txn, err := s.txns.FindByID(txnID)
	if err != nil {
		return err
	}

	audit := newAudit(&actor.ID, models.ActionDelete, "transaction", ip, map[string]interface{}{
		"type":     txn.Type,
		"amount":   txn.Amount,
		"category": txn.Category,
		"status":   txn.Status,
	})
	if err := s.txns.Delete(txnID, audit); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, errorAction(models.ActionDelete), "transaction", ip, map[string]interface{}{
			"transaction_id": txnID,
			"error":          err.Error(),
		}))
		return apperr.Persistence("delete transaction", err)
	}
	return nil
}

// List returns transactions visible to the actor: employees see their
// own, managers see their department, every other viewing role sees all.
func (s *TransactionService) List(actorID uint, f repository.TransactionFilter) ([]models.Transaction, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if !policy.Allows(actor.Role, policy.ViewTransactions) {
		return nil, apperr.Forbidden("role %s cannot view transactions", actor.Role)
	}

	switch actor.Role {
	case models.RoleEmployee:
		f.CreatedBy = &actor.ID
	case models.RoleManager:
		f.DepartmentID = actor.DepartmentID
	}
	if f.Limit < 0 || f.Limit > maxTransactionPageSize {
		f.Limit = maxTransactionPageSize
	}
	return s.txns.List(f)
}
