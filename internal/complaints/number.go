package complaints

import (
	"crypto/rand"
	"fmt"
	"time"
)

const (
	complaintNumberPrefix = "COMP"
	numberSuffixLen       = 9
	numberAlphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewComplaintNumber returns a reference like COMP-1710500000000-7K2M9QX4A.
func NewComplaintNumber() (string, error) {
	buf := make([]byte, numberSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("complaint number suffix: %w", err)
	}
	suffix := make([]byte, numberSuffixLen)
	for i, b := range buf {
		suffix[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}
	return fmt.Sprintf("%s-%d-%s", complaintNumberPrefix, time.Now().UnixMilli(), suffix), nil
}
