package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/incident-response/internal/auth"
	"github.com/spec-kit/incident-response/internal/domain"
)

func newUserFixture(t *testing.T) (UserService, *fakeUserRepo) {
	t.Helper()
	repo := &fakeUserRepo{}
	svc := NewUserService(UserDependencies{
		Users:      repo,
		Tokens:     auth.NewTokenManager("test-secret", 15),
		BcryptCost: 4,
		Logger:     zap.NewNop(),
	})
	return svc, repo
}

func registerAdmin(t *testing.T, svc UserService) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), UserRegisterInput{
		FirstName: "Dana",
		LastName:  "Cole",
		Email:     "Dana@iRes.co",
		Password:  "strong-password",
		Role:      domain.RoleResponderAdmin,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newUserFixture(t)
	user := registerAdmin(t, svc)
	if user.Email != "dana@ires.co" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}
	if user.Status != domain.UserStatusActive {
		t.Errorf("expected ACTIVE, got %s", user.Status)
	}
}

func TestRegisterRejectsSuperAdmin(t *testing.T) {
	svc, _ := newUserFixture(t)
	_, err := svc.Register(context.Background(), UserRegisterInput{
		FirstName: "Root",
		Email:     "root@ires.co",
		Password:  "strong-password",
		Role:      domain.RoleSuperAdmin,
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture(t)
	registerAdmin(t, svc)
	_, err := svc.Register(context.Background(), UserRegisterInput{
		FirstName: "Other",
		Email:     "dana@ires.co",
		Password:  "strong-password",
		Role:      domain.RoleAdmin,
	})
	assertDomainCode(t, err, "CONFLICT")
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _ := newUserFixture(t)
	_, err := svc.Register(context.Background(), UserRegisterInput{
		FirstName: "Dana",
		Email:     "dana@ires.co",
		Password:  "short",
		Role:      domain.RoleAdmin,
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newUserFixture(t)
	registerAdmin(t, svc)

	result, err := svc.Login(context.Background(), "dana@ires.co", "strong-password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a session token")
	}
	if result.User.Role != domain.RoleResponderAdmin {
		t.Errorf("unexpected role %s", result.User.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newUserFixture(t)
	registerAdmin(t, svc)

	_, err := svc.Login(context.Background(), "dana@ires.co", "wrong-password")
	assertDomainCode(t, err, "UNAUTHORIZED")
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newUserFixture(t)
	_, err := svc.Login(context.Background(), "nobody@ires.co", "whatever")
	assertDomainCode(t, err, "UNAUTHORIZED")
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, _ := newUserFixture(t)
	user := registerAdmin(t, svc)
	if _, err := svc.SetStatus(context.Background(), user.ID, domain.UserStatusInactive); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	_, err := svc.Login(context.Background(), "dana@ires.co", "strong-password")
	assertDomainCode(t, err, "FORBIDDEN")
}

func TestSetStatusUnknownUser(t *testing.T) {
	svc, _ := newUserFixture(t)
	_, err := svc.SetStatus(context.Background(), "missing", domain.UserStatusInactive)
	assertDomainCode(t, err, "NOT_FOUND")
}
