package auth

import (
	"testing"
	"time"

	"github.com/spec-kit/incident-response/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("unit-secret", 30)

	token, expiresAt, err := tm.GenerateToken("user-1", domain.ActorKindUser, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatal("expected future expiry")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.SubjectID != "user-1" {
		t.Errorf("expected subject user-1, got %q", claims.SubjectID)
	}
	if claims.Kind != domain.ActorKindUser {
		t.Errorf("expected kind USER, got %q", claims.Kind)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("expected role ADMIN, got %q", claims.Role)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 30)
	other := NewTokenManager("secret-b", 30)

	token, _, err := tm.GenerateToken("RESP001A", domain.ActorKindResponder, domain.RoleResponderTier1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := other.ParseToken(token); err == nil {
		t.Fatal("expected verification failure with different secret")
	}
}

func TestGenerateWithTTLControlsExpiry(t *testing.T) {
	tm := NewTokenManager("unit-secret", 30)

	_, shortExpiry, err := tm.GenerateToken("AGNT001A", domain.ActorKindAgent, domain.RoleAgent)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	_, longExpiry, err := tm.GenerateWithTTL("AGNT001A", domain.ActorKindAgent, domain.RoleAgent, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateWithTTL: %v", err)
	}
	if !longExpiry.After(shortExpiry.Add(24 * time.Hour)) {
		t.Fatalf("expected long-lived token to outlast session token: %v vs %v", longExpiry, shortExpiry)
	}
}
