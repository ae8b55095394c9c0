package models

import "time"

// Transaction type values.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction status values. Pending is the only non-terminal state.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Transaction represents the transactions table
type Transaction struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Type         string     `gorm:"type:enum('income','expense');not null" json:"type"`
	Amount       float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description  string     `gorm:"size:255" json:"description"`
	Category     string     `gorm:"size:100;index" json:"category"`
	Date         time.Time  `gorm:"not null;index" json:"date"`
	Status       string     `gorm:"type:enum('pending','approved','rejected');default:'pending';index" json:"status"`
	CreatedBy    uint       `gorm:"not null;index" json:"created_by"`
	ApproverID   *uint      `gorm:"index" json:"approver_id"`
	DepartmentID *uint      `gorm:"index" json:"department_id"`
	ApprovalDate *time.Time `json:"approval_date"`
	CreatedAt    time.Time  `json:"created_at"`

	Creator    *User       `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Approver   *User       `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName specifies the table name for Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
