package models

import "time"

// Budget represents the budgets table. One row per spending category;
// transactions reference it by category name.
type Budget struct {
	Category     string    `gorm:"primaryKey;size:100" json:"category"`
	BudgetAmount float64   `gorm:"type:decimal(12,2);not null" json:"budget_amount"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for Budget model
func (Budget) TableName() string {
	return "budgets"
}
