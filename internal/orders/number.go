package orders

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	orderNumberPrefix = "ORD"
	numberSuffixLen   = 9
	numberAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewOrderNumber returns a reference like ORD-1710500000000-7K2M9QX4A.
// The millisecond timestamp plus a random suffix keeps collisions rare;
// the unique constraint on order_number catches the rest.
func NewOrderNumber() (string, error) {
	suffix, err := randomSuffix(numberSuffixLen)
	if err != nil {
		return "", fmt.Errorf("order number suffix: %w", err)
	}
	return fmt.Sprintf("%s-%d-%s", orderNumberPrefix, time.Now().UnixMilli(), suffix), nil
}

func randomSuffix(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}
	return string(out), nil
}
