package service

import (
	"testing"
	"time"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"
	"company-finance-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "Str0ng!pass"

func authFixture(t *testing.T) (*AuthService, *stubUserStore, *stubAuditStore) {
	t.Helper()

	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)

	audits := &stubAuditStore{}
	users := newStubUserStore(audits,
		&models.User{ID: 1, Username: "alice", Email: "alice@corp.test", PasswordHash: hash, Role: models.RoleFinance, IsActive: true},
		&models.User{ID: 2, Username: "bob", Email: "bob@corp.test", PasswordHash: hash, Role: models.RoleEmployee, IsActive: false},
	)
	tokens := utils.NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthService(users, audits, tokens), users, audits
}

func TestLoginSuccess(t *testing.T) {
	svc, users, audits := authFixture(t)

	resp, err := svc.Login("alice", testPassword, "10.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, models.RoleFinance, resp.User.Role)

	// Refresh token stored hashed, never verbatim.
	assert.Len(t, users.tokens, 1)
	_, stored := users.tokens[resp.RefreshToken]
	assert.False(t, stored)

	last := audits.last()
	require.NotNil(t, last)
	assert.Equal(t, models.ActionLoginSuccess, last.Action)
	require.NotNil(t, last.UserID)
	assert.Equal(t, uint(1), *last.UserID)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, users, audits := authFixture(t)

	_, err := svc.Login("mallory", testPassword, "10.0.0.1")
	var authErr *apperr.AuthenticationError
	require.ErrorAs(t, err, &authErr)

	last := audits.last()
	require.NotNil(t, last)
	assert.Equal(t, models.ActionLoginFailed, last.Action)
	assert.Nil(t, last.UserID)
	assert.Empty(t, users.tokens)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users, audits := authFixture(t)

	_, err := svc.Login("alice", "wrong-password", "10.0.0.1")
	var authErr *apperr.AuthenticationError
	require.ErrorAs(t, err, &authErr)

	last := audits.last()
	require.NotNil(t, last)
	assert.Equal(t, models.ActionLoginFailed, last.Action)
	require.NotNil(t, last.UserID)
	assert.Equal(t, uint(1), *last.UserID)
	assert.Empty(t, users.tokens)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, _, audits := authFixture(t)

	_, err := svc.Login("bob", testPassword, "10.0.0.1")
	var authErr *apperr.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, err.Error(), "inactive")

	last := audits.last()
	require.NotNil(t, last)
	assert.Equal(t, models.ActionLoginFailed, last.Action)
}

func TestRefreshAndLogout(t *testing.T) {
	svc, _, audits := authFixture(t)

	resp, err := svc.Login("alice", testPassword, "")
	require.NoError(t, err)

	accessToken, err := svc.RefreshAccessToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	require.NoError(t, svc.Logout(resp.RefreshToken, ""))
	assert.Equal(t, models.ActionLogout, audits.last().Action)

	// A revoked token no longer refreshes.
	_, err = svc.RefreshAccessToken(resp.RefreshToken)
	assert.Error(t, err)
}

func TestLogoutUnknownTokenNotAudited(t *testing.T) {
	svc, users, audits := authFixture(t)

	before := len(audits.entries)
	require.NoError(t, svc.Logout("never-issued-token", "10.0.0.3"))
	assert.Len(t, audits.entries, before, "a token that was never issued must not produce a LOGOUT entry")
	assert.Empty(t, users.tokens)
}

func TestLogoutTwiceAuditsOnce(t *testing.T) {
	svc, _, audits := authFixture(t)

	resp, err := svc.Login("alice", testPassword, "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(resp.RefreshToken, ""))
	require.NoError(t, svc.Logout(resp.RefreshToken, ""))

	logouts := 0
	for _, action := range audits.actions() {
		if action == models.ActionLogout {
			logouts++
		}
	}
	assert.Equal(t, 1, logouts)
}

func TestRegisterDefaultsToEmployee(t *testing.T) {
	svc, users, audits := authFixture(t)

	resp, err := svc.Register(RegisterInput{
		Username: "carol",
		Email:    "carol@corp.test",
		Password: testPassword,
	}, "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)

	created, err := users.FindByUsername("carol")
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.NotEqual(t, testPassword, created.PasswordHash)

	found := false
	for _, action := range audits.actions() {
		if action == models.ActionUserCreated {
			found = true
		}
	}
	assert.True(t, found, "expected a USER_CREATED audit entry")
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _, audits := authFixture(t)

	_, err := svc.Register(RegisterInput{
		Username: "carol",
		Email:    "carol@corp.test",
		Password: "weakpass1!",
	}, "")
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, err.Error(), "uppercase")

	last := audits.last()
	require.NotNil(t, last)
	assert.Equal(t, models.ActionUserCreationError, last.Action)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := authFixture(t)

	_, err := svc.Register(RegisterInput{
		Username: "alice",
		Email:    "other@corp.test",
		Password: testPassword,
	}, "")
	var dup *apperr.DuplicateError
	assert.ErrorAs(t, err, &dup)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := authFixture(t)

	_, err := svc.Register(RegisterInput{
		Username: "alice2",
		Email:    "alice@corp.test",
		Password: testPassword,
	}, "")
	var dup *apperr.DuplicateError
	assert.ErrorAs(t, err, &dup)
}

func TestRegisterCannotSelfAssignRole(t *testing.T) {
	svc, users, _ := authFixture(t)

	// A request carrying a privileged role must not create the account,
	// let alone hand out tokens for it.
	for _, role := range []string{models.RoleAdmin, models.RoleFinance, "superuser"} {
		resp, err := svc.Register(RegisterInput{
			Username: "mallory",
			Email:    "mallory@corp.test",
			Password: testPassword,
			Role:     role,
		}, "10.0.0.9")
		var forbidden *apperr.AuthorizationError
		require.ErrorAs(t, err, &forbidden, "role %q", role)
		assert.Nil(t, resp)

		_, err = users.FindByUsername("mallory")
		assert.Error(t, err)
	}

	// Spelling out the only permitted role is still just an employee.
	resp, err := svc.Register(RegisterInput{
		Username: "dave",
		Email:    "dave@corp.test",
		Password: testPassword,
		Role:     models.RoleEmployee,
	}, "10.0.0.9")
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, resp.User.Role)
}
