package promo

import (
	"errors"
	"strings"
)

var ErrEmptyCode = errors.New("promo code cannot be empty")

// Promo binds a code string to its discount. Codes are compared
// case-sensitively against the registry.
type Promo struct {
	code     string
	discount Discount
}

func NewPromo(code string, kind DiscountKind, value int64) (*Promo, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrEmptyCode
	}

	discount, err := NewDiscount(kind, value)
	if err != nil {
		return nil, err
	}

	return &Promo{
		code:     code,
		discount: discount,
	}, nil
}

func (p *Promo) Code() string       { return p.code }
func (p *Promo) Discount() Discount { return p.discount }
