package app

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/event"
	"jobboard/internal/domain/user"
	"jobboard/internal/security"
)

func newAuthService(users *fakeUserRepo, tokens *fakeRefreshTokenRepo, publisher *capturePublisher) *AuthService {
	return NewAuthService(users, tokens, publisher, security.NewJWTProvider("secret"), nil, time.Minute, time.Hour)
}

func register(t *testing.T, service *AuthService, username, email string) *user.User {
	t.Helper()
	account, err := service.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    email,
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}
	return account
}

func TestAuthServiceRegister_AssignsJobSeekerRole(t *testing.T) {
	publisher := &capturePublisher{}
	service := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), publisher)

	account := register(t, service, "alice", "alice@example.com")

	if account.Role != user.RoleJobSeeker {
		t.Fatalf("expected role %s, got %s", user.RoleJobSeeker, account.Role)
	}
	if !account.IsActive {
		t.Fatal("expected new account to be active")
	}
	if account.PasswordHash == "correct-horse" {
		t.Fatal("expected password to be hashed")
	}
	last, ok := publisher.last()
	if !ok {
		t.Fatal("expected a welcome event to be published")
	}
	if last.SubjectType != event.SubjectAccount || last.Name != event.NameCreated {
		t.Fatalf("unexpected event %s/%s", last.SubjectType, last.Name)
	}
}

func TestAuthServiceRegister_RejectsShortPassword(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), &capturePublisher{})

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "short",
	})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthServiceRegister_DuplicateUsernameConflicts(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), &capturePublisher{})
	register(t, service, "carol", "carol@example.com")

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "carol",
		Email:    "other@example.com",
		Password: "correct-horse",
	})
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthServiceLogin_IssuesTokensAndStampsLastLogin(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users, newFakeRefreshTokenRepo(), &capturePublisher{})
	account := register(t, service, "dave", "dave@example.com")

	pair, loggedIn, err := service.Login(context.Background(), "dave", "correct-horse")
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if loggedIn.LastLogin == nil {
		t.Fatal("expected last_login to be stamped")
	}
	stored, err := users.GetByID(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("expected user to exist, got %v", err)
	}
	if stored.LastLogin == nil {
		t.Fatal("expected stamped last_login to be persisted")
	}
}

func TestAuthServiceLogin_ByEmail(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), &capturePublisher{})
	register(t, service, "erin", "erin@example.com")

	if _, _, err := service.Login(context.Background(), "erin@example.com", "correct-horse"); err != nil {
		t.Fatalf("expected email login to succeed, got %v", err)
	}
}

func TestAuthServiceLogin_WrongPasswordIsUnauthorized(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), &capturePublisher{})
	register(t, service, "frank", "frank@example.com")

	_, _, err := service.Login(context.Background(), "frank", "wrong-password")
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAuthServiceLogin_UnknownUserIsUnauthorized(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), &capturePublisher{})

	_, _, err := service.Login(context.Background(), "ghost", "correct-horse")
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
}

func TestAuthServiceLogin_DeactivatedAccountIsUnauthorized(t *testing.T) {
	users := newFakeUserRepo()
	service := newAuthService(users, newFakeRefreshTokenRepo(), &capturePublisher{})
	account := register(t, service, "grace", "grace@example.com")

	account.IsActive = false
	if _, err := users.Update(context.Background(), *account); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}

	_, _, err := service.Login(context.Background(), "grace", "correct-horse")
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAuthServiceRefresh_RotatesToken(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), &capturePublisher{})
	register(t, service, "heidi", "heidi@example.com")
	pair, _, err := service.Login(context.Background(), "heidi", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	next, _, err := service.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("expected refresh to succeed, got %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("expected a new refresh token")
	}

	// the old token was revoked by the rotation
	_, _, err = service.Refresh(context.Background(), pair.RefreshToken)
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected replayed token to be unauthorized, got %v", err)
	}
}

func TestAuthServiceLogout_RevokesToken(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), &capturePublisher{})
	register(t, service, "ivan", "ivan@example.com")
	pair, _, err := service.Login(context.Background(), "ivan", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := service.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("expected logout to succeed, got %v", err)
	}
	_, _, err = service.Refresh(context.Background(), pair.RefreshToken)
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected revoked token to be unauthorized, got %v", err)
	}
}

func TestAuthServiceChangePassword_RevokesAllSessions(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), &capturePublisher{})
	account := register(t, service, "judy", "judy@example.com")
	pair, _, err := service.Login(context.Background(), "judy", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := service.ChangePassword(context.Background(), account.ID, "correct-horse", "battery-staple"); err != nil {
		t.Fatalf("expected password change to succeed, got %v", err)
	}
	if _, _, err := service.Refresh(context.Background(), pair.RefreshToken); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected old session to be revoked, got %v", err)
	}
	if _, _, err := service.Login(context.Background(), "judy", "battery-staple"); err != nil {
		t.Fatalf("expected login with new password to succeed, got %v", err)
	}
}

func TestAuthServiceChangePassword_WrongCurrentIsUnauthorized(t *testing.T) {
	service := newAuthService(newFakeUserRepo(), newFakeRefreshTokenRepo(), &capturePublisher{})
	account := register(t, service, "karl", "karl@example.com")

	err := service.ChangePassword(context.Background(), account.ID, "not-the-password", "battery-staple")
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
