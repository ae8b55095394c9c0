package service

import (
	"errors"
	"fmt"
	"time"

	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"
	"company-finance-backend/internal/policy"
	"company-finance-backend/pkg/utils"
)

type AuthService struct {
	users  UserStore
	audits AuditStore
	tokens *utils.TokenManager
}

func NewAuthService(users UserStore, audits AuditStore, tokens *utils.TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		audits: audits,
		tokens: tokens,
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	DepartmentID *uint  `json:"department_id"`
}

func userResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
	}
}

// Login authenticates a user and returns tokens. Every failed attempt
// writes a LOGIN_FAILED audit entry; the caller only ever sees the
// uniform invalid-credentials error, except for inactive accounts.
func (s *AuthService) Login(username, password, ip string) (*LoginResponse, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			_ = s.audits.Append(newAudit(nil, models.ActionLoginFailed, "login", ip, map[string]interface{}{
				"reason":             "user not found",
				"attempted_username": username,
			}))
			return nil, apperr.InvalidCredentials()
		}
		return nil, apperr.Persistence("login lookup", err)
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		_ = s.audits.Append(newAudit(&user.ID, models.ActionLoginFailed, "login", ip, map[string]interface{}{
			"reason":   "invalid password",
			"username": user.Username,
		}))
		return nil, apperr.InvalidCredentials()
	}

	if !user.IsActive {
		_ = s.audits.Append(newAudit(&user.ID, models.ActionLoginFailed, "login", ip, map[string]interface{}{
			"reason":   "account inactive",
			"username": user.Username,
		}))
		return nil, apperr.InactiveAccount()
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenHash := s.tokens.HashRefreshToken(refreshToken)
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.tokens.RefreshTokenExpiry()),
	}
	if err := s.users.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, apperr.Persistence("store refresh token", err)
	}

	_ = s.audits.Append(newAudit(&user.ID, models.ActionLoginSuccess, "login", ip, map[string]interface{}{
		"username": user.Username,
		"role":     user.Role,
	}))

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         userResponse(user),
	}, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	tokenHash := s.tokens.HashRefreshToken(refreshToken)

	token, err := s.users.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return "", errors.New("invalid or revoked refresh token")
	}

	if time.Now().After(token.ExpiresAt) {
		return "", errors.New("refresh token expired")
	}

	accessToken, err := s.tokens.GenerateAccessToken(token.User.ID, token.User.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token and records the logout. A token that
// was never issued (or is already revoked) is a silent no-op: nothing
// to revoke, nothing to audit.
func (s *AuthService) Logout(refreshToken, ip string) error {
	tokenHash := s.tokens.HashRefreshToken(refreshToken)

	var userID *uint
	if token, err := s.users.FindRefreshTokenByHash(tokenHash); err == nil {
		userID = &token.UserID
	}

	if err := s.users.RevokeRefreshTokenByHash(tokenHash); err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	_ = s.audits.Append(newAudit(userID, models.ActionLogout, "login", ip, map[string]interface{}{}))
	return nil
}

// RegisterInput is the payload for account self-registration.
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	Role         string
	DepartmentID *uint
}

// Register creates a new user account. The password must satisfy the
// complexity policy; the specific failing rule is surfaced to the
// caller. Self-registration always produces an employee account; any
// other role must be granted through user management afterwards.
func (s *AuthService) Register(in RegisterInput, ip string) (*LoginResponse, error) {
	if in.Role != "" && in.Role != models.RoleEmployee {
		return nil, apperr.Forbidden("role %s cannot be self-assigned", in.Role)
	}
	in.Role = models.RoleEmployee

	if err := policy.ValidatePassword(in.Password); err != nil {
		_ = s.audits.Append(newAudit(nil, models.ActionUserCreationError, "users", ip, map[string]interface{}{
			"reason":   err.Error(),
			"username": in.Username,
		}))
		return nil, apperr.Validation("%s", err.Error())
	}

	if existing, err := s.users.FindByUsername(in.Username); err == nil && existing != nil {
		return nil, apperr.Duplicate("username %q already exists", in.Username)
	}
	if existing, err := s.users.FindByEmail(in.Email); err == nil && existing != nil {
		return nil, apperr.Duplicate("email %q already registered", in.Email)
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Role:         in.Role,
		DepartmentID: in.DepartmentID,
		IsActive:     true,
	}

	audit := newAudit(nil, models.ActionUserCreated, "users", ip, map[string]interface{}{
		"username": in.Username,
		"email":    in.Email,
		"role":     in.Role,
	})
	if err := s.users.Create(user, audit); err != nil {
		_ = s.audits.Append(newAudit(nil, models.ActionUserCreationError, "users", ip, map[string]interface{}{
			"username": in.Username,
			"error":    err.Error(),
		}))
		return nil, apperr.Persistence("create user", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenHash := s.tokens.HashRefreshToken(refreshToken)
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.tokens.RefreshTokenExpiry()),
	}
	if err := s.users.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, apperr.Persistence("store refresh token", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         userResponse(user),
	}, nil
}
