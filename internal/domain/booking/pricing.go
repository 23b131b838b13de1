package booking

import (
	"bookit/internal/domain/promo"
)

// TaxPerBooking is a flat fee charged once per booking, not per spot.
const TaxPerBooking int64 = 59

// Quote is the server-side price breakdown for a prospective booking.
type Quote struct {
	Subtotal       int64
	Tax            int64
	DiscountAmount int64
	Total          int64
}

// NewQuote derives the price of quantity spots at unitPrice with an optional
// discount. Discounts apply to the tax-inclusive total and can never push it
// below zero. All arithmetic truncates to the smallest currency unit.
func NewQuote(unitPrice int64, quantity int, discount *promo.Discount) Quote {
	subtotal := unitPrice * int64(quantity)
	total := subtotal + TaxPerBooking

	var off int64
	if discount != nil {
		off = discount.AmountOff(total)
		if off > total {
			off = total
		}
	}

	return Quote{
		Subtotal:       subtotal,
		Tax:            TaxPerBooking,
		DiscountAmount: off,
		Total:          total - off,
	}
}
