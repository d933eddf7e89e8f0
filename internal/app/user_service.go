package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/domain/auth"
	"jobboard/internal/domain/user"
	"jobboard/internal/security"
)

// UserService covers the self-service profile surface and the admin
// user-management surface. Admin operations may assign any role; the
// self-service path never touches role or is_active except to deactivate.
type UserService struct {
	users         user.Repository
	refreshTokens auth.RefreshTokenRepository
	logger        Logger
}

func NewUserService(users user.Repository, refreshTokens auth.RefreshTokenRepository, logger Logger) *UserService {
	return &UserService{users: users, refreshTokens: refreshTokens, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfileInput carries partial updates; nil fields are left unchanged.
type UpdateProfileInput struct {
	Email     *string
	FirstName *string
	LastName  *string
}

func (s *UserService) UpdateProfile(ctx context.Context, id common.UUID, in UpdateProfileInput) (*user.User, error) {
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, common.NewValidationError("invalid profile", map[string]string{"email": "email is invalid"})
		}
		account.Email = email
	}
	if in.FirstName != nil {
		account.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		account.LastName = strings.TrimSpace(*in.LastName)
	}
	return s.users.Update(ctx, *account)
}

// Deactivate soft-deletes the caller's own account and revokes every
// outstanding refresh token. The row stays for audit and foreign keys.
func (s *UserService) Deactivate(ctx context.Context, id common.UUID) error {
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	account.IsActive = false
	if _, err := s.users.Update(ctx, *account); err != nil {
		return err
	}
	if err := s.refreshTokens.RevokeAll(ctx, id, time.Now().UTC().Unix()); err != nil {
		return err
	}
	s.logInfo(fmt.Sprintf("account deactivated user_id=%s", id))
	return nil
}

func (s *UserService) List(ctx context.Context, actor authz.Actor, filter user.ListFilter) ([]user.User, error) {
	if !authz.Evaluate(actor, authz.IsAdmin) {
		return nil, common.NewError(common.CodeForbidden, "admin access required", nil)
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	return s.users.List(ctx, filter)
}

type AdminCreateUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      user.Role
}

func (s *UserService) AdminCreate(ctx context.Context, actor authz.Actor, in AdminCreateUserInput) (*user.User, error) {
	if !authz.Evaluate(actor, authz.IsAdmin) {
		return nil, common.NewError(common.CodeForbidden, "admin access required", nil)
	}
	role := user.Role(strings.ToUpper(strings.TrimSpace(string(in.Role))))
	if role == "" {
		role = user.RoleJobSeeker
	}
	if !user.ValidRole(role) {
		return nil, common.NewValidationError("invalid user", map[string]string{"role": "role must be ADMIN, EMPLOYER, or JOB_SEEKER"})
	}
	reg := RegisterInput{Username: in.Username, Email: in.Email, Password: in.Password, FirstName: in.FirstName, LastName: in.LastName}
	if err := reg.validate(); err != nil {
		return nil, err
	}
	hash, err := security.HashPassword(reg.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account, err := s.users.Create(ctx, user.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("user created by admin user_id=%s role=%s", account.ID, role))
	return account, nil
}

type AdminUpdateUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *user.Role
	IsActive  *bool
}

func (s *UserService) AdminUpdate(ctx context.Context, actor authz.Actor, id common.UUID, in AdminUpdateUserInput) (*user.User, error) {
	if !authz.Evaluate(actor, authz.IsAdmin) {
		return nil, common.NewError(common.CodeForbidden, "admin access required", nil)
	}
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, common.NewValidationError("invalid user", map[string]string{"email": "email is invalid"})
		}
		account.Email = email
	}
	if in.FirstName != nil {
		account.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		account.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Role != nil {
		role := user.Role(strings.ToUpper(strings.TrimSpace(string(*in.Role))))
		if !user.ValidRole(role) {
			return nil, common.NewValidationError("invalid user", map[string]string{"role": "role must be ADMIN, EMPLOYER, or JOB_SEEKER"})
		}
		account.Role = role
	}
	if in.IsActive != nil {
		account.IsActive = *in.IsActive
	}
	updated, err := s.users.Update(ctx, *account)
	if err != nil {
		return nil, err
	}
	if in.IsActive != nil && !*in.IsActive {
		if err := s.refreshTokens.RevokeAll(ctx, id, time.Now().UTC().Unix()); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func (s *UserService) AdminDelete(ctx context.Context, actor authz.Actor, id common.UUID) error {
	if !authz.Evaluate(actor, authz.IsAdmin) {
		return common.NewError(common.CodeForbidden, "admin access required", nil)
	}
	if actor.ID == id {
		return common.NewValidationError("invalid delete", map[string]string{"id": "admins cannot delete their own account"})
	}
	if err := s.refreshTokens.RevokeAll(ctx, id, time.Now().UTC().Unix()); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logInfo(fmt.Sprintf("user deleted by admin user_id=%s", id))
	return nil
}

func (s *UserService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
