package models

import "time"

// Department represents a company department. A department owns its users
// and the transactions booked against it.
type Department struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	BudgetLimit float64   `gorm:"type:decimal(12,2);default:0" json:"budget_limit"`
	ManagerID   *uint     `gorm:"index" json:"manager_id"`
	CreatedAt   time.Time `json:"created_at"`

	Manager *User `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

// TableName specifies the table name for Department model
func (Department) TableName() string {
	return "departments"
}
