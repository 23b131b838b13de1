package response

import (
	"time"

	"bookit/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID              int64     `json:"id"`
	SlotID          int64     `json:"slotId"`
	ExperienceID    int64     `json:"experienceId"`
	ExperienceTitle string    `json:"experienceTitle"`
	GuestName       string    `json:"userName"`
	GuestEmail      string    `json:"userEmail"`
	Quantity        int32     `json:"quantity"`
	FinalPrice      int64     `json:"finalPrice"`
	PromoCode       *string   `json:"promoCode,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}
