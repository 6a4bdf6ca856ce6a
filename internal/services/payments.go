package services

import "foodadmin/internal/domain"

// PaymentValidator approves the computed order total before the order row is
// written. The production gateway implements this; orders fail closed when it
// rejects.
type PaymentValidator interface {
	ValidatePayment(kind string, amount int64) error
}

// AcceptAllPayments is the default collaborator: it only guards against a
// negative total slipping through the arithmetic. A zero total is a valid
// fully-discounted order.
type AcceptAllPayments struct{}

func (AcceptAllPayments) ValidatePayment(kind string, amount int64) error {
	if amount < 0 {
		return domain.ValidationError{Field: "total", Msg: "order total must not be negative"}
	}
	return nil
}
