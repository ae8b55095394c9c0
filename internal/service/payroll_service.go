package service

import (
	"time"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"
	"company-finance-backend/internal/policy"
)

type PayrollService struct {
	payroll PayrollStore
	users   UserStore
	audits  AuditStore
}

func NewPayrollService(payroll PayrollStore, users UserStore, audits AuditStore) *PayrollService {
	return &PayrollService{
		payroll: payroll,
		users:   users,
		audits:  audits,
	}
}

// CreatePayrollInput is the payload for payroll creation.
type CreatePayrollInput struct {
	EmployeeID   uint
	SalaryAmount float64
	PaymentDate  time.Time
	Notes        string
}

// Create records a payroll entry. At most one record per employee per
// calendar month; a second insert for the same month is a duplicate.
func (s *PayrollService) Create(actorID uint, ip string, in CreatePayrollInput) (*models.Payroll, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if !policy.Allows(actor.Role, policy.ManagePayroll) {
		return nil, apperr.Forbidden("role %s cannot manage payroll", actor.Role)
	}

	if in.SalaryAmount <= 0 {
		return nil, apperr.Validation("salary amount must be positive")
	}
	if in.PaymentDate.IsZero() {
		return nil, apperr.Validation("payment date is required")
	}
	if _, err := s.users.FindByID(in.EmployeeID); err != nil {
		return nil, err
	}

	monthStart := time.Date(in.PaymentDate.Year(), in.PaymentDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)
	exists, err := s.payroll.ExistsForEmployeeBetween(in.EmployeeID, monthStart, nextMonth)
	if err != nil {
		return nil, apperr.Persistence("payroll lookup", err)
	}
	if exists {
		return nil, apperr.Duplicate("payroll record already exists for employee %d in %s",
			in.EmployeeID, monthStart.Format("2006-01"))
	}

	record := &models.Payroll{
		EmployeeID:   in.EmployeeID,
		SalaryAmount: in.SalaryAmount,
		PaymentDate:  in.PaymentDate,
		Status:       models.PayrollPending,
		Notes:        in.Notes,
	}
	audit := newAudit(&actor.ID, models.ActionCreate, "payroll", ip, map[string]interface{}{
		"employee_id":   in.EmployeeID,
		"salary_amount": in.SalaryAmount,
		"payment_date":  in.PaymentDate.Format("2006-01-02"),
	})
	if err := s.payroll.Create(record, audit); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, errorAction(models.ActionCreate), "payroll", ip, map[string]interface{}{
			"employee_id": in.EmployeeID,
			"error":       err.Error(),
		}))
		return nil, apperr.Persistence("create payroll", err)
	}
	return record, nil
}

// MarkPaid moves a pending payroll record to paid.
func (s *PayrollService) MarkPaid(actorID, recordID uint, ip string) error {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return err
	}
	if !policy.Allows(actor.Role, policy.ApprovePayroll) {
		return apperr.Forbidden("role %s cannot approve payroll", actor.Role)
	}

	record, err := s.payroll.FindByID(recordID)
	if err != nil {
		return err
	}
	if record.Status != models.PayrollPending {
		return apperr.StateConflict("payroll record %d is already %s", recordID, record.Status)
	}

	audit := newAudit(&actor.ID, models.ActionUpdate, "payroll", ip, map[string]interface{}{
		"employee_id":   record.EmployeeID,
		"salary_amount": record.SalaryAmount,
		"status":        models.PayrollPaid,
	})
	if err := s.payroll.MarkPaid(recordID, audit); err != nil {
		return err
	}
	return nil
}

// Delete removes a payroll record.
func (s *PayrollService) Delete(actorID, recordID uint, ip string) error {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return err
	}
	if !policy.Allows(actor.Role, policy.ManagePayroll) {
		return apperr.Forbidden("role %s cannot manage payroll", actor.Role)
	}

	record, err := s.payroll.FindByID(recordID)
	if err != nil {
		return err
	}

	audit := newAudit(&actor.ID, models.ActionDelete, "payroll", ip, map[string]interface{}{
		"employee_id":   record.EmployeeID,
		"salary_amount": record.SalaryAmount,
		"payment_date":  record.PaymentDate.Format("2006-01-02"),
	})
	if err := s.payroll.Delete(recordID, audit); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, errorAction(models.ActionDelete), "payroll", ip, map[string]interface{}{
			"payroll_id": recordID,
			"error":      err.Error(),
		}))
		return apperr.Persistence("delete payroll", err)
	}
	return nil
}

// List returns all payroll records for a viewer.
func (s *PayrollService) List(actorID uint) ([]models.Payroll, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if !policy.Allows(actor.Role, policy.ViewPayroll) {
		return nil, apperr.Forbidden("role %s cannot view payroll", actor.Role)
	}
	return s.payroll.List()
}
