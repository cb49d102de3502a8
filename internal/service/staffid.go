package service

import (
	"context"
	"crypto/rand"
	"fmt"

	apperrors "github.com/spec-kit/incident-response/pkg/util"
)

const (
	accountIDAttempts = 25
	letterAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateAccountID produces a short operator-friendly id: prefix, three
// digits, one letter (e.g. AGNT042X). The space is small, so uniqueness
// is enforced by retrying against the store rather than by entropy.
func GenerateAccountID(ctx context.Context, prefix string, taken func(ctx context.Context, id string) (bool, error)) (string, error) {
	for attempt := 0; attempt < accountIDAttempts; attempt++ {
		id, err := randomAccountID(prefix)
		if err != nil {
			return "", err
		}
		exists, err := taken(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", apperrors.NewConflict("account id space exhausted", map[string]any{"prefix": prefix})
}

func randomAccountID(prefix string) (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	digits := (int(buf[0])<<16 | int(buf[1])<<8 | int(buf[2])) % 1000
	letter := letterAlphabet[int(buf[3])%len(letterAlphabet)]
	return fmt.Sprintf("%s%03d%c", prefix, digits, letter), nil
}
