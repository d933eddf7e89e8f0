package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"jobboard/internal/common"
)

func TestJWTProviderRoundTrip(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	userID := common.NewUUID()

	token, expiresAt, err := provider.Generate(userID, "EMPLOYER", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if remaining := time.Until(expiresAt); remaining < 55*time.Minute {
		t.Fatalf("expected roughly an hour of validity, got %s", remaining)
	}

	claims, err := provider.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "EMPLOYER" {
		t.Fatalf("expected role EMPLOYER, got %s", claims.Role)
	}
}

func TestJWTProviderRejectsWrongSecret(t *testing.T) {
	userID := common.NewUUID()
	token, _, err := NewJWTProvider("secret-a").Generate(userID, "ADMIN", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := NewJWTProvider("secret-b").Parse(token); err == nil {
		t.Fatal("expected a signature error")
	}
}

func TestJWTProviderRejectsExpiredToken(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	token, _, err := provider.Generate(common.NewUUID(), "JOB_SEEKER", -time.Minute)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := provider.Parse(token); err == nil {
		t.Fatal("expected an expiry error")
	}
}

func TestJWTProviderFallsBackToSubject(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	userID := common.NewUUID()

	// token minted without the user_id claim, the way an older issuer would
	now := time.Now().UTC()
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	token, err := raw.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	claims, err := provider.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != userID.String() {
		t.Fatalf("expected subject fallback to %s, got %q", userID, claims.UserID)
	}
}
