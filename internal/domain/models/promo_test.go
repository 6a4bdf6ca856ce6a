package models

import (
	"testing"
	"time"
)

func i64(v int64) *int64 { return &v }

func TestPromoDiscountPercentageClampedToMaximum(t *testing.T) {
	p := PromoCode{Type: PromoPercentage, DiscountAmount: 20, MaximumDiscount: i64(1000)}

	// 20% of 10000 is 2000, capped at 1000
	if got := p.Discount(10000); got != 1000 {
		t.Fatalf("discount = %d, want 1000", got)
	}
	// 20% of 2000 is 400, under the cap
	if got := p.Discount(2000); got != 400 {
		t.Fatalf("discount = %d, want 400", got)
	}
}

func TestPromoDiscountPercentageWithoutCap(t *testing.T) {
	p := PromoCode{Type: PromoPercentage, DiscountAmount: 25}
	if got := p.Discount(8000); got != 2000 {
		t.Fatalf("discount = %d, want 2000", got)
	}
}

func TestPromoDiscountFixedNeverExceedsSubtotal(t *testing.T) {
	p := PromoCode{Type: PromoFixed, DiscountAmount: 5000}
	if got := p.Discount(3000); got != 3000 {
		t.Fatalf("discount = %d, want clamp to subtotal 3000", got)
	}
	if got := p.Discount(9000); got != 5000 {
		t.Fatalf("discount = %d, want 5000", got)
	}
}

func TestPromoActiveAt(t *testing.T) {
	base := PromoCode{
		IsActive: true,
		StartsAt: "2026-01-01",
		EndsAt:   "2026-01-31",
	}
	inside := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	lastDay := time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)
	before := time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC)
	after := time.Date(2026, 2, 1, 0, 30, 0, 0, time.UTC)

	if !base.ActiveAt(inside) {
		t.Fatalf("should be active inside the window")
	}
	if !base.ActiveAt(lastDay) {
		t.Fatalf("the end date is inclusive through its last second")
	}
	if base.ActiveAt(before) {
		t.Fatalf("should not be active before the window")
	}
	if base.ActiveAt(after) {
		t.Fatalf("should not be active after the window")
	}

	disabled := base
	disabled.IsActive = false
	if disabled.ActiveAt(inside) {
		t.Fatalf("disabled code should never be active")
	}

	exhausted := base
	exhausted.MaxUses = i64(10)
	exhausted.UsedCount = 10
	if exhausted.ActiveAt(inside) {
		t.Fatalf("code at its usage cap should not be redeemable")
	}
}

func TestPromoActiveAtMalformedWindowFailsClosed(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	badStart := PromoCode{IsActive: true, StartsAt: "not-a-date", EndsAt: "2026-01-31"}
	if badStart.ActiveAt(now) {
		t.Fatalf("unparsable start date must not make the code active")
	}

	badEnd := PromoCode{IsActive: true, StartsAt: "2026-01-01", EndsAt: ""}
	if badEnd.ActiveAt(now) {
		t.Fatalf("unparsable end date must not make the code active")
	}
}
