package service

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateTicketID produces a sortable, human-legible ticket id:
// prefix, base36 millisecond timestamp, random base36 suffix. The suffix
// entropy is large enough that no uniqueness round trip is needed; the
// small-space agent and responder ids deliberately take the opposite
// approach and retry against the store.
func GenerateTicketID() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("iRS-%s-%s", timestamp, randomBase36(12))
}

func randomBase36(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}
	return string(out)
}
