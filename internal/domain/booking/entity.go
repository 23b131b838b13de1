package booking

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidSlotID = errors.New("slot id must be a positive integer")

// Booking is an immutable record of a successful reservation. The id and
// createdAt are assigned by the store on insert; a zero id marks an entity
// that has not been persisted yet.
type Booking struct {
	id         int64
	slotID     int64
	guestName  GuestName
	guestEmail GuestEmail
	quantity   Quantity
	finalPrice Money
	promoCode  *string
	createdAt  time.Time
}

func NewBooking(
	slotID int64,
	guestName, guestEmail string,
	quantity int,
	finalPrice int64,
	promoCode *string,
) (*Booking, error) {
	if slotID <= 0 {
		return nil, ErrInvalidSlotID
	}

	name, err := NewGuestName(guestName)
	if err != nil {
		return nil, err
	}

	email, err := NewGuestEmail(guestEmail)
	if err != nil {
		return nil, err
	}

	qty, err := NewQuantity(quantity)
	if err != nil {
		return nil, err
	}

	if finalPrice <= 0 {
		return nil, ErrNonPositivePrice
	}
	price, err := NewMoney(finalPrice)
	if err != nil {
		return nil, err
	}

	var code *string
	if promoCode != nil {
		trimmed := strings.TrimSpace(*promoCode)
		if trimmed != "" {
			code = &trimmed
		}
	}

	return &Booking{
		slotID:     slotID,
		guestName:  name,
		guestEmail: email,
		quantity:   qty,
		finalPrice: price,
		promoCode:  code,
	}, nil
}

func (b *Booking) ID() int64             { return b.id }
func (b *Booking) SlotID() int64         { return b.slotID }
func (b *Booking) GuestName() GuestName  { return b.guestName }
func (b *Booking) GuestEmail() GuestEmail { return b.guestEmail }
func (b *Booking) Quantity() Quantity    { return b.quantity }
func (b *Booking) FinalPrice() Money     { return b.finalPrice }
func (b *Booking) PromoCode() *string    { return b.promoCode }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
