package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusPending, OrderStatusInProduction, false},
		{OrderStatusConfirmed, OrderStatusInProduction, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusCompleted, false},
		{OrderStatusInProduction, OrderStatusCompleted, true},
		{OrderStatusInProduction, OrderStatusCancelled, true},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	t.Parallel()

	if !OrderStatusCompleted.IsTerminal() {
		t.Error("completed should be terminal")
	}
	if !OrderStatusCancelled.IsTerminal() {
		t.Error("cancelled should be terminal")
	}
	if OrderStatusPending.IsTerminal() {
		t.Error("pending should not be terminal")
	}
}

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	if _, err := ParseOrderStatus("in_production"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
