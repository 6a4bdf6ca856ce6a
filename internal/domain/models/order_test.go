package models

import "testing"

func TestOrderStatusHappyPath(t *testing.T) {
	ladder := []OrderStatus{OrderPending, OrderPreparing, OrderDonePreparing, OrderOnWay, OrderDelivered}
	for i := 0; i < len(ladder)-1; i++ {
		if !ladder[i].CanTransitionTo(ladder[i+1]) {
			t.Fatalf("%s -> %s should be allowed", ladder[i], ladder[i+1])
		}
	}
}

func TestOrderStatusCancellableUntilDispatchEnds(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderPreparing, OrderDonePreparing, OrderOnWay} {
		if !s.CanTransitionTo(OrderCancelled) {
			t.Fatalf("%s should be cancellable", s)
		}
	}
}

func TestOrderStatusTerminalStatesAreFrozen(t *testing.T) {
	all := []OrderStatus{OrderPending, OrderPreparing, OrderDonePreparing, OrderOnWay, OrderDelivered, OrderCancelled}
	for _, terminal := range []OrderStatus{OrderDelivered, OrderCancelled} {
		if !terminal.Terminal() {
			t.Fatalf("%s should be terminal", terminal)
		}
		for _, next := range all {
			if terminal.CanTransitionTo(next) {
				t.Fatalf("%s -> %s should be rejected", terminal, next)
			}
		}
	}
}

func TestOrderStatusNoSkipping(t *testing.T) {
	if OrderPending.CanTransitionTo(OrderOnWay) {
		t.Fatalf("pending must not jump straight to on_way")
	}
	if OrderPreparing.CanTransitionTo(OrderDelivered) {
		t.Fatalf("preparing must not jump straight to delivered")
	}
	if OrderOnWay.CanTransitionTo(OrderPreparing) {
		t.Fatalf("backward moves must be rejected")
	}
}
