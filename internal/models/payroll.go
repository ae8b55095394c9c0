package models

import "time"

// Payroll status values.
const (
	PayrollPending = "pending"
	PayrollPaid    = "paid"
)

// Payroll represents the payroll table. At most one record per employee
// per calendar month; the service layer enforces the uniqueness.
type Payroll struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeID   uint      `gorm:"not null;index" json:"employee_id"`
	SalaryAmount float64   `gorm:"type:decimal(12,2);not null" json:"salary_amount"`
	PaymentDate  time.Time `gorm:"not null;index" json:"payment_date"`
	Status       string    `gorm:"type:enum('pending','paid');default:'pending'" json:"status"`
	Notes        string    `gorm:"size:255" json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	Employee *User `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// TableName specifies the table name for Payroll model
func (Payroll) TableName() string {
	return "payroll"
}
