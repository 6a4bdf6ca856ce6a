package services

import (
	"testing"

	"foodadmin/internal/domain"
)

func TestAcceptAllPaymentsAllowsFullyDiscountedOrder(t *testing.T) {
	v := AcceptAllPayments{}

	// a 100% promo with free delivery is a legitimate zero-total order
	if err := v.ValidatePayment("cash", 0); err != nil {
		t.Fatalf("zero total should be accepted, got %v", err)
	}
	if err := v.ValidatePayment("card", 9600); err != nil {
		t.Fatalf("positive total should be accepted, got %v", err)
	}
	if err := v.ValidatePayment("cash", -1); !domain.IsValidation(err) {
		t.Fatalf("negative total should be rejected, got %v", err)
	}
}
