package service

import (
	"testing"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auditServiceFixture() (*AuditService, *stubAuditStore) {
	audits := &stubAuditStore{}
	users := newStubUserStore(audits,
		&models.User{ID: 1, Username: "root", Role: models.RoleAdmin, IsActive: true},
		&models.User{ID: 2, Username: "emp", Role: models.RoleEmployee, IsActive: true},
	)
	_ = audits.Append(newAudit(nil, models.ActionLoginFailed, "login", "10.0.0.9", nil))
	_ = audits.Append(newAudit(nil, models.ActionCreate, "transaction", "10.0.0.9", nil))
	_ = audits.Append(newAudit(nil, models.ActionCreate, "budget", "10.0.0.9", nil))
	return NewAuditService(audits, users), audits
}

func TestAuditListRequiresUserManagement(t *testing.T) {
	svc, _ := auditServiceFixture()

	_, err := svc.List(2, "", 0)
	var forbidden *apperr.AuthorizationError
	assert.ErrorAs(t, err, &forbidden)
}

func TestAuditList(t *testing.T) {
	svc, _ := auditServiceFixture()

	entries, err := svc.List(1, "", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestAuditListByResourceType(t *testing.T) {
	svc, _ := auditServiceFixture()

	entries, err := svc.List(1, "login", 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionLoginFailed, entries[0].Action)
}
