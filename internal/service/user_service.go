package service

import (
	"company-finance-backend/internal/apperr"
	"company-finance-backend/internal/models"
	"company-finance-backend/internal/policy"
	"company-finance-backend/pkg/utils"
)

// UserService covers administrative user management. Self-registration
// lives in AuthService.
type UserService struct {
	users  UserStore
	audits AuditStore
}

func NewUserService(users UserStore, audits AuditStore) *UserService {
	return &UserService{
		users:  users,
		audits: audits,
	}
}

// List returns all user accounts.
func (s *UserService) List(actorID uint) ([]models.User, error) {
	if _, err := s.manager(actorID); err != nil {
		return nil, err
	}
	return s.users.List()
}

// CreateUserInput is the payload for admin user creation.
type CreateUserInput struct {
	Username     string
	Email        string
	Password     string
	Role         string
	DepartmentID *uint
}

// Create adds a user account on behalf of an administrator.
func (s *UserService) Create(actorID uint, ip string, in CreateUserInput) (*models.User, error) {
	actor, err := s.manager(actorID)
	if err != nil {
		return nil, err
	}
	if !policy.ValidRole(in.Role) {
		return nil, apperr.Validation("unknown role %q", in.Role)
	}
	if err := policy.ValidatePassword(in.Password); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, models.ActionUserCreationError, "users", ip, map[string]interface{}{
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
		return nil, apperr.Persistence("hash password", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Role:         in.Role,
		DepartmentID: in.DepartmentID,
		IsActive:     true,
	}
	audit := newAudit(&actor.ID, models.ActionUserCreated, "users", ip, map[string]interface{}{
		"username": in.Username,
		"email":    in.Email,
		"role":     in.Role,
	})
	if err := s.users.Create(user, audit); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, models.ActionUserCreationError, "users", ip, map[string]interface{}{
			"username": in.Username,
			"error":    err.Error(),
		}))
		return nil, apperr.Persistence("create user", err)
	}
	return user, nil
}

// UpdateUserInput carries optional account updates. Nil fields are left
// unchanged.
type UpdateUserInput struct {
	Email        *string
	Role         *string
	DepartmentID *uint
	IsActive     *bool
}

// Update edits a user account.
func (s *UserService) Update(actorID, userID uint, ip string, in UpdateUserInput) (*models.User, error) {
	actor, err := s.manager(actorID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil {
		if !policy.ValidRole(*in.Role) {
			return nil, apperr.Validation("unknown role %q", *in.Role)
		}
		user.Role = *in.Role
	}
	if in.DepartmentID != nil {
		user.DepartmentID = in.DepartmentID
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	audit := newAudit(&actor.ID, models.ActionUserUpdated, "users", ip, map[string]interface{}{
		"username":  user.Username,
		"role":      user.Role,
		"is_active": user.IsActive,
	})
	if err := s.users.Update(user, audit); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, errorAction(models.ActionUserUpdated), "users", ip, map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		}))
		return nil, apperr.Persistence("update user", err)
	}
	return user, nil
}

// Delete removes a user account. Audit entries referencing the account
// survive with a null user reference. Administrators cannot delete their
// own account.
func (s *UserService) Delete(actorID, userID uint, ip string) error {
	actor, err := s.manager(actorID)
	if err != nil {
		return err
	}
	if actorID == userID {
		return apperr.Validation("cannot delete your own account")
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}

	audit := newAudit(&actor.ID, models.ActionUserDeleted, "users", ip, map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
	if err := s.users.Delete(userID, audit); err != nil {
		_ = s.audits.Append(newAudit(&actor.ID, errorAction(models.ActionUserDeleted), "users", ip, map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		}))
		return apperr.Persistence("delete user", err)
	}
	return nil
}

func (s *UserService) manager(actorID uint) (*models.User, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if !policy.Allows(actor.Role, policy.ManageUsers) {
		return nil, apperr.Forbidden("role %s cannot manage users", actor.Role)
	}
	return actor, nil
}
