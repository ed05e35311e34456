package orders

import (
	"regexp"
	"testing"
)

func TestNewOrderNumberFormat(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^ORD-\d+-[A-Z0-9]{9}$`)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		number, err := NewOrderNumber()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !pattern.MatchString(number) {
			t.Fatalf("unexpected format %q", number)
		}
		if seen[number] {
			t.Fatalf("duplicate number %q", number)
		}
		seen[number] = true
	}
}
