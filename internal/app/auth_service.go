package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/auth"
	"jobboard/internal/domain/event"
	"jobboard/internal/domain/user"
	"jobboard/internal/security"
)

type Logger interface {
	Info(msg string)
	Error(msg string)
}

// AuthService owns registration, credential login and the refresh-token
// lifecycle. Public registration always produces a job seeker account;
// privileged roles exist only through the admin user-management path.
type AuthService struct {
	users         user.Repository
	refreshTokens auth.RefreshTokenRepository
	events        event.Publisher
	jwtProvider   *security.JWTProvider
	logger        Logger
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(users user.Repository, refreshTokens auth.RefreshTokenRepository, events event.Publisher, jwtProvider *security.JWTProvider, logger Logger, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		refreshTokens: refreshTokens,
		events:        events,
		jwtProvider:   jwtProvider,
		logger:        logger,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (in *RegisterInput) validate() error {
	fields := map[string]string{}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Username == "" {
		fields["username"] = "username is required"
	}
	if in.Email == "" {
		fields["email"] = "email is required"
	} else if !strings.Contains(in.Email, "@") {
		fields["email"] = "email is invalid"
	}
	if in.Password == "" {
		fields["password"] = "password is required"
	} else if security.PasswordTooShort(in.Password) {
		fields["password"] = "password must be at least 8 characters"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid registration", fields)
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account, err := s.users.Create(ctx, user.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         user.RoleJobSeeker,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}
	s.logInfo(fmt.Sprintf("user registered user_id=%s", account.ID))
	s.publish(event.Event{
		SubjectType: event.SubjectAccount,
		SubjectID:   account.ID,
		Name:        event.NameCreated,
		Payload:     map[string]string{"email": account.Email, "username": account.Username},
	})
	return account, nil
}

func (s *AuthService) Login(ctx context.Context, login, password string) (*auth.TokenPair, *user.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, nil, common.NewValidationError("invalid credentials payload", map[string]string{"login": "login and password are required"})
	}
	account, err := s.lookupAccount(ctx, login)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, nil, err
	}
	if !security.VerifyPassword(password, account.PasswordHash) {
		s.logInfo(fmt.Sprintf("login failed user_id=%s", account.ID))
		return nil, nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	if !account.IsActive {
		return nil, nil, common.NewError(common.CodeUnauthorized, "account is deactivated", nil)
	}
	now := time.Now().UTC()
	account.LastLogin = &now
	if account, err = s.users.Update(ctx, *account); err != nil {
		return nil, nil, err
	}
	pair, err := s.issueTokens(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	s.logInfo(fmt.Sprintf("user logged in user_id=%s", account.ID))
	return pair, account, nil
}

func (s *AuthService) lookupAccount(ctx context.Context, login string) (*user.User, error) {
	if strings.Contains(login, "@") {
		return s.users.GetByEmail(ctx, strings.ToLower(login))
	}
	return s.users.GetByUsername(ctx, login)
}

// Refresh rotates the token pair: the presented refresh token is revoked and
// a fresh pair is issued, so a replayed token always fails.
func (s *AuthService) Refresh(ctx context.Context, token string) (*auth.TokenPair, *user.User, error) {
	stored, err := s.refreshTokens.GetByToken(ctx, token)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "invalid refresh token", nil)
		}
		return nil, nil, err
	}
	if stored.RevokedAt != nil {
		return nil, nil, common.NewError(common.CodeUnauthorized, "refresh token revoked", nil)
	}
	if stored.ExpiresAt.Before(time.Now().UTC()) {
		return nil, nil, common.NewError(common.CodeUnauthorized, "refresh token expired", nil)
	}
	account, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, nil, err
	}
	if !account.IsActive {
		return nil, nil, common.NewError(common.CodeUnauthorized, "account is deactivated", nil)
	}
	if err := s.refreshTokens.Revoke(ctx, token, time.Now().UTC().Unix()); err != nil {
		return nil, nil, err
	}
	pair, err := s.issueTokens(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	return pair, account, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	err := s.refreshTokens.Revoke(ctx, token, time.Now().UTC().Unix())
	if common.Is(err, common.CodeNotFound) {
		return common.NewError(common.CodeUnauthorized, "invalid refresh token", nil)
	}
	if err == nil {
		s.logInfo("user logged out")
	}
	return err
}

// ChangePassword verifies the current password before accepting the new one
// and revokes every outstanding refresh token for the account.
func (s *AuthService) ChangePassword(ctx context.Context, userID common.UUID, current, next string) error {
	if security.PasswordTooShort(next) {
		return common.NewValidationError("invalid password", map[string]string{"new_password": "password must be at least 8 characters"})
	}
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !security.VerifyPassword(current, account.PasswordHash) {
		return common.NewError(common.CodeUnauthorized, "current password is incorrect", nil)
	}
	hash, err := security.HashPassword(next)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account.PasswordHash = hash
	if _, err := s.users.Update(ctx, *account); err != nil {
		return err
	}
	if err := s.refreshTokens.RevokeAll(ctx, userID, time.Now().UTC().Unix()); err != nil {
		return err
	}
	s.logInfo(fmt.Sprintf("password changed user_id=%s", userID))
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, account *user.User) (*auth.TokenPair, error) {
	accessToken, expiresAt, err := s.jwtProvider.Generate(account.ID, string(account.Role), s.accessTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate access token", err)
	}
	refreshValue, err := generateRefreshToken()
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate refresh token", err)
	}
	refresh := auth.RefreshToken{
		ID:        common.NewUUID(),
		UserID:    account.ID,
		Token:     refreshValue,
		ExpiresAt: time.Now().UTC().Add(s.refreshTTL),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.refreshTokens.Store(ctx, refresh); err != nil {
		return nil, err
	}
	return &auth.TokenPair{AccessToken: accessToken, RefreshToken: refreshValue, ExpiresAt: expiresAt}, nil
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", b), nil
}

func (s *AuthService) publish(e event.Event) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(e)
}

func (s *AuthService) logInfo(msg string) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg)
}
