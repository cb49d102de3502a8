package service

import (
	"context"
	"regexp"
	"testing"

	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

func TestGenerateAccountIDFormat(t *testing.T) {
	never := func(ctx context.Context, id string) (bool, error) { return false, nil }

	pattern := regexp.MustCompile(`^AGNT\d{3}[A-Z]$`)
	for i := 0; i < 50; i++ {
		id, err := GenerateAccountID(context.Background(), "AGNT", never)
		if err != nil {
			t.Fatalf("GenerateAccountID: %v", err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("id %q does not match expected format", id)
		}
	}
}

func TestGenerateAccountIDRetriesOnCollision(t *testing.T) {
	collisions := 3
	taken := func(ctx context.Context, id string) (bool, error) {
		if collisions > 0 {
			collisions--
			return true, nil
		}
		return false, nil
	}

	id, err := GenerateAccountID(context.Background(), "RESP", taken)
	if err != nil {
		t.Fatalf("GenerateAccountID: %v", err)
	}
	if id == "" {
		t.Fatal("expected an id after retries")
	}
	if collisions != 0 {
		t.Fatalf("expected all collisions consumed, %d left", collisions)
	}
}

func TestGenerateAccountIDExhaustion(t *testing.T) {
	always := func(ctx context.Context, id string) (bool, error) { return true, nil }

	_, err := GenerateAccountID(context.Background(), "AGNT", always)
	if err == nil {
		t.Fatal("expected error when id space is exhausted")
	}
	if apperrors.ToDomainError(err).Code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}
