package models

import "time"

// Audit action codes. Mutations use the generic CRUD verbs together with
// a resource type; authentication and failure events get dedicated codes
// so security review can separate them without scanning server logs.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"

	ActionLoginSuccess = "LOGIN_SUCCESS"
	ActionLoginFailed  = "LOGIN_FAILED"
	ActionLogout       = "LOGOUT"

	ActionUserCreated       = "USER_CREATED"
	ActionUserUpdated       = "USER_UPDATED"
	ActionUserDeleted       = "USER_DELETED"
	ActionUserCreationError = "USER_CREATION_ERROR"
)

// AuditLog represents the audit_logs table.
// Rows are append-only: no repository exposes an update or delete path.
// UserID is nullable so entries survive user deletion and anonymous
// failures (e.g. login with an unknown username) can still be recorded.
type AuditLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       *uint     `gorm:"index" json:"user_id"`
	Action       string    `gorm:"size:100;not null;index" json:"action"`
	ResourceType string    `gorm:"size:50;index" json:"resource_type"`
	ResourceID   *uint     `json:"resource_id"`
	Details      string    `gorm:"type:text" json:"details"`
	IPAddress    string    `gorm:"size:45" json:"ip_address"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
