package service

import (
	"testing"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userServiceFixture() (*UserService, *stubUserStore, *stubAuditStore) {
	audits := &stubAuditStore{}
	users := newStubUserStore(audits,
		&models.User{ID: 1, Username: "root", Email: "root@corp.test", Role: models.RoleAdmin, IsActive: true},
		&models.User{ID: 2, Username: "emp", Email: "emp@corp.test", Role: models.RoleEmployee, IsActive: true},
	)
	return NewUserService(users, audits), users, audits
}

func TestUserManagementRequiresCapability(t *testing.T) {
	svc, _, _ := userServiceFixture()
	var forbidden *apperr.AuthorizationError

	_, err := svc.List(2)
	assert.ErrorAs(t, err, &forbidden)

	_, err = svc.Create(2, "", CreateUserInput{
		Username: "x", Email: "x@corp.test", Password: "Str0ng!pass", Role: models.RoleEmployee,
	})
	assert.ErrorAs(t, err, &forbidden)

	err = svc.Delete(2, 1, "")
	assert.ErrorAs(t, err, &forbidden)
}

func TestAdminCreatesUser(t *testing.T) {
	svc, users, audits := userServiceFixture()

	user, err := svc.Create(1, "10.0.0.1", CreateUserInput{
		Username: "carol",
		Email:    "carol@corp.test",
		Password: "Str0ng!pass",
		Role:     models.RoleAccountant,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAccountant, user.Role)
	assert.True(t, user.IsActive)

	stored, err := users.FindByUsername("carol")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ng!pass", stored.PasswordHash)

	last := audits.last()
	require.NotNil(t, last)
	assert.Equal(t, models.ActionUserCreated, last.Action)
	require.NotNil(t, last.UserID)
	assert.Equal(t, uint(1), *last.UserID)
}

func TestAdminCreateUserRejectsWeakPassword(t *testing.T) {
	svc, _, audits := userServiceFixture()

	_, err := svc.Create(1, "", CreateUserInput{
		Username: "carol",
		Email:    "carol@corp.test",
		Password: "short",
		Role:     models.RoleEmployee,
	})
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, models.ActionUserCreationError, audits.last().Action)
}

func TestAdminCreateUserRejectsUnknownRole(t *testing.T) {
	svc, _, _ := userServiceFixture()

	_, err := svc.Create(1, "", CreateUserInput{
		Username: "carol",
		Email:    "carol@corp.test",
		Password: "Str0ng!pass",
		Role:     "wizard",
	})
	var validation *apperr.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestUpdateUserRoleAndStatus(t *testing.T) {
	svc, _, audits := userServiceFixture()

	role := models.RoleManager
	inactive := false
	user, err := svc.Update(1, 2, "", UpdateUserInput{Role: &role, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, user.Role)
	assert.False(t, user.IsActive)
	assert.Equal(t, models.ActionUserUpdated, audits.last().Action)
}

func TestDeleteUser(t *testing.T) {
	svc, users, audits := userServiceFixture()

	require.NoError(t, svc.Delete(1, 2, ""))

	_, err := users.FindByID(2)
	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, models.ActionUserDeleted, audits.last().Action)
}

func TestDeleteOwnAccountBlocked(t *testing.T) {
	svc, users, _ := userServiceFixture()

	err := svc.Delete(1, 1, "")
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = users.FindByID(1)
	assert.NoError(t, err)
}
