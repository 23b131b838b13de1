package booking

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrEmptyGuestName   = errors.New("guest name cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrNonPositivePrice = errors.New("final price must be positive")
	ErrNegativeMoney    = errors.New("money cannot be negative")
)

// Money is an amount in the currency's smallest unit.
type Money struct {
	amount int64
}

func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{amount: amount}, nil
}

func (m Money) Amount() int64 { return m.amount }

// Quantity is the number of spots a booking claims.
type Quantity struct {
	value int
}

func NewQuantity(value int) (Quantity, error) {
	if value < 1 {
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{value: value}, nil
}

func (q Quantity) Value() int { return q.value }

type GuestName struct {
	value string
}

func NewGuestName(value string) (GuestName, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return GuestName{}, ErrEmptyGuestName
	}
	return GuestName{value: trimmed}, nil
}

func (n GuestName) String() string { return n.value }

type GuestEmail struct {
	value string
}

func NewGuestEmail(value string) (GuestEmail, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return GuestEmail{}, ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return GuestEmail{}, ErrInvalidEmail
	}
	return GuestEmail{value: trimmed}, nil
}

func (e GuestEmail) String() string { return e.value }
