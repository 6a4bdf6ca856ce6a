package models

import "time"

type PromoType string

const (
	PromoPercentage PromoType = "percentage"
	PromoFixed      PromoType = "fixed"
)

func (t PromoType) Valid() bool {
	return t == PromoPercentage || t == PromoFixed
}

// PromoCode. CityID nil means country-wide.
type PromoCode struct {
	ID              int64     `json:"id"`
	CountryID       int64     `json:"countryId"`
	CityID          *int64    `json:"cityId"`
	Code            string    `json:"code"`
	Type            PromoType `json:"type"`
	DiscountAmount  int64     `json:"discountAmount"`
	MaximumDiscount *int64    `json:"maximumDiscount"`
	StartsAt        string    `json:"startsAt"`
	EndsAt          string    `json:"endsAt"`
	MaxUses         *int64    `json:"maxUses"`
	UsedCount       int64     `json:"usedCount"`
	IsActive        bool      `json:"isActive"`
}

// ActiveAt reports whether the code may be redeemed at the given instant:
// enabled, inside the date window, and under its usage cap. A window that
// does not parse reads as not redeemable.
func (p PromoCode) ActiveAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	start, err := time.Parse("2006-01-02", p.StartsAt)
	if err != nil || now.Before(start) {
		return false
	}
	end, err := time.Parse("2006-01-02", p.EndsAt)
	if err != nil || now.After(end.Add(24*time.Hour-time.Second)) {
		return false
	}
	if p.MaxUses != nil && p.UsedCount >= *p.MaxUses {
		return false
	}
	return true
}

// Discount computes the amount taken off the subtotal. Percentage discounts
// are clamped to MaximumDiscount when configured; fixed discounts never
// exceed the subtotal.
func (p PromoCode) Discount(subtotal int64) int64 {
	var d int64
	switch p.Type {
	case PromoPercentage:
		d = subtotal * p.DiscountAmount / 100
		if p.MaximumDiscount != nil && d > *p.MaximumDiscount {
			d = *p.MaximumDiscount
		}
	case PromoFixed:
		d = p.DiscountAmount
	}
	if d > subtotal {
		d = subtotal
	}
	if d < 0 {
		d = 0
	}
	return d
}
