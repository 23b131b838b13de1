package request

import (
	"strings"

	"bookit/internal/usecase/commands"
)

type CreateBookingRequest struct {
	SlotID     int64   `json:"slotId" binding:"required,gt=0"`
	UserName   string  `json:"userName" binding:"required"`
	UserEmail  string  `json:"userEmail" binding:"required,email"`
	Quantity   int     `json:"quantity" binding:"required,min=1"`
	FinalPrice int64   `json:"finalPrice" binding:"required,gt=0"`
	PromoCode  *string `json:"promoCode,omitempty"`
}

func (r CreateBookingRequest) GetPromoCode() *string {
	if r.PromoCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.PromoCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		SlotID:     r.SlotID,
		GuestName:  r.UserName,
		GuestEmail: r.UserEmail,
		Quantity:   r.Quantity,
		FinalPrice: r.FinalPrice,
		PromoCode:  r.GetPromoCode(),
	}
}
