package app

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/auth"
	"jobboard/internal/domain/user"
)

func seedAccount(t *testing.T, users *fakeUserRepo, role user.Role) *user.User {
	t.Helper()
	account, err := users.Create(context.Background(), user.User{
		Username: "user-" + common.NewUUID().String(),
		Email:    common.NewUUID().String() + "@example.com",
		Role:     role,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
	return account
}

func TestUserServiceDeactivate_RevokesSessions(t *testing.T) {
	users := newFakeUserRepo()
	tokens := newFakeRefreshTokenRepo()
	service := NewUserService(users, tokens, nil)
	account := seedAccount(t, users, user.RoleJobSeeker)
	if err := tokens.Store(context.Background(), auth.RefreshToken{
		ID:        common.NewUUID(),
		UserID:    account.ID,
		Token:     "session-token",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}

	if err := service.Deactivate(context.Background(), account.ID); err != nil {
		t.Fatalf("expected deactivate to succeed, got %v", err)
	}
	stored, err := users.GetByID(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("expected account row to survive, got %v", err)
	}
	if stored.IsActive {
		t.Fatal("expected account to be inactive")
	}
	token, err := tokens.GetByToken(context.Background(), "session-token")
	if err != nil {
		t.Fatalf("token lookup failed: %v", err)
	}
	if token.RevokedAt == nil {
		t.Fatal("expected session to be revoked")
	}
}

func TestUserServiceAdminCreate_AllowsAnyRole(t *testing.T) {
	users := newFakeUserRepo()
	service := NewUserService(users, newFakeRefreshTokenRepo(), nil)

	account, err := service.AdminCreate(context.Background(), admin(), AdminCreateUserInput{
		Username: "recruiter",
		Email:    "recruiter@example.com",
		Password: "correct-horse",
		Role:     user.RoleEmployer,
	})
	if err != nil {
		t.Fatalf("expected admin create to succeed, got %v", err)
	}
	if account.Role != user.RoleEmployer {
		t.Fatalf("expected EMPLOYER, got %s", account.Role)
	}
}

func TestUserServiceAdminCreate_RejectsUnknownRole(t *testing.T) {
	service := NewUserService(newFakeUserRepo(), newFakeRefreshTokenRepo(), nil)

	_, err := service.AdminCreate(context.Background(), admin(), AdminCreateUserInput{
		Username: "x",
		Email:    "x@example.com",
		Password: "correct-horse",
		Role:     "SUPERUSER",
	})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserServiceAdminCreate_NonAdminForbidden(t *testing.T) {
	service := NewUserService(newFakeUserRepo(), newFakeRefreshTokenRepo(), nil)

	_, err := service.AdminCreate(context.Background(), employer(), AdminCreateUserInput{
		Username: "x",
		Email:    "x@example.com",
		Password: "correct-horse",
	})
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUserServiceAdminUpdate_DeactivationRevokesSessions(t *testing.T) {
	users := newFakeUserRepo()
	tokens := newFakeRefreshTokenRepo()
	service := NewUserService(users, tokens, nil)
	account := seedAccount(t, users, user.RoleEmployer)
	if err := tokens.Store(context.Background(), auth.RefreshToken{
		ID:        common.NewUUID(),
		UserID:    account.ID,
		Token:     "employer-session",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}

	inactive := false
	updated, err := service.AdminUpdate(context.Background(), admin(), account.ID, AdminUpdateUserInput{IsActive: &inactive})
	if err != nil {
		t.Fatalf("expected admin update to succeed, got %v", err)
	}
	if updated.IsActive {
		t.Fatal("expected account to be inactive")
	}
	token, err := tokens.GetByToken(context.Background(), "employer-session")
	if err != nil {
		t.Fatalf("token lookup failed: %v", err)
	}
	if token.RevokedAt == nil {
		t.Fatal("expected session to be revoked")
	}
}

func TestUserServiceAdminDelete_SelfDeleteRejected(t *testing.T) {
	users := newFakeUserRepo()
	service := NewUserService(users, newFakeRefreshTokenRepo(), nil)
	actor := admin()

	err := service.AdminDelete(context.Background(), actor, actor.ID)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserServiceList_AdminOnlyWithFilters(t *testing.T) {
	users := newFakeUserRepo()
	service := NewUserService(users, newFakeRefreshTokenRepo(), nil)
	seedAccount(t, users, user.RoleJobSeeker)
	seedAccount(t, users, user.RoleEmployer)

	if _, err := service.List(context.Background(), employer(), user.ListFilter{}); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for employer, got %v", err)
	}
	items, err := service.List(context.Background(), admin(), user.ListFilter{Role: user.RoleEmployer})
	if err != nil {
		t.Fatalf("expected admin list to succeed, got %v", err)
	}
	if len(items) != 1 || items[0].Role != user.RoleEmployer {
		t.Fatalf("expected 1 employer, got %d items", len(items))
	}
}
