package promo

import (
	"errors"
)

var (
	ErrUnknownDiscountKind = errors.New("unknown discount kind")
	ErrNegativeDiscount    = errors.New("discount value cannot be negative")
	ErrPercentOutOfRange   = errors.New("percentage discount must be between 0 and 100")
)

type DiscountKind string

const (
	KindPercentage DiscountKind = "percentage"
	KindFixed      DiscountKind = "fixed"
)

// Discount is a value object describing how much a promo code takes off a
// pre-discount total. It is recomputed from the code on every evaluation and
// never persisted.
type Discount struct {
	kind  DiscountKind
	value int64
}

func NewPercentageDiscount(percent int64) (Discount, error) {
	if percent < 0 || percent > 100 {
		return Discount{}, ErrPercentOutOfRange
	}
	return Discount{kind: KindPercentage, value: percent}, nil
}

func NewFixedDiscount(amount int64) (Discount, error) {
	if amount < 0 {
		return Discount{}, ErrNegativeDiscount
	}
	return Discount{kind: KindFixed, value: amount}, nil
}

func NewDiscount(kind DiscountKind, value int64) (Discount, error) {
	switch kind {
	case KindPercentage:
		return NewPercentageDiscount(value)
	case KindFixed:
		return NewFixedDiscount(value)
	default:
		return Discount{}, ErrUnknownDiscountKind
	}
}

func (d Discount) Kind() DiscountKind { return d.kind }
func (d Discount) Value() int64       { return d.value }

func (d Discount) IsPercentage() bool {
	return d.kind == KindPercentage
}

// AmountOff returns how much this discount removes from the given total,
// truncated to the smallest currency unit. Percentage discounts are taken off
// the tax-inclusive total.
func (d Discount) AmountOff(total int64) int64 {
	if total < 0 {
		return 0
	}
	if d.kind == KindPercentage {
		return total * d.value / 100
	}
	return d.value
}
