package response

import (
	"bookit/internal/domain/promo"
)

type PromoDiscount struct {
	Type  string `json:"type"`
	Value int64  `json:"value"`
}

// ValidatePromoResponse mirrors the public validation contract: a matched
// code carries its discount, a miss carries a message. Never an error status.
type ValidatePromoResponse struct {
	Valid    bool           `json:"valid"`
	Discount *PromoDiscount `json:"discount,omitempty"`
	Message  string         `json:"message,omitempty"`
}

func FromDiscount(d promo.Discount) *ValidatePromoResponse {
	return &ValidatePromoResponse{
		Valid: true,
		Discount: &PromoDiscount{
			Type:  string(d.Kind()),
			Value: d.Value(),
		},
	}
}

func InvalidPromo() *ValidatePromoResponse {
	return &ValidatePromoResponse{
		Valid:   false,
		Message: "Invalid promo code",
	}
}
