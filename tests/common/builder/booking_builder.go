//go:build unit || e2e

package builder

import (
	"time"

	dombooking "bookit/internal/domain/booking"
	reqdto "bookit/internal/handler/dto/request"
	"bookit/internal/usecase/commands"
	"bookit/internal/usecase/queries"
	"bookit/internal/usecase/shared"
)

type BookingBuilder struct {
	SlotID          int64
	ExperienceID    int64
	ExperienceTitle string
	UserName        string
	UserEmail       string
	Quantity        int
	UnitPrice       int64
	FinalPrice      int64
	PromoCode       *string
	CreatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		SlotID:          1,
		ExperienceID:    1,
		ExperienceTitle: "Kayaking",
		UserName:        "Asha Rao",
		UserEmail:       "asha@example.com",
		Quantity:        2,
		UnitPrice:       999,
		FinalPrice:      2057, // 2*999 + 59 tax, no discount
		CreatedAt:       time.Now(),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	return dombooking.NewBooking(b.SlotID, b.UserName, b.UserEmail, b.Quantity, b.FinalPrice, b.PromoCode)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		SlotID:     b.SlotID,
		UserName:   b.UserName,
		UserEmail:  b.UserEmail,
		Quantity:   b.Quantity,
		FinalPrice: b.FinalPrice,
		PromoCode:  b.PromoCode,
	}
}

func (b *BookingBuilder) BuildInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		SlotID:     b.SlotID,
		GuestName:  b.UserName,
		GuestEmail: b.UserEmail,
		Quantity:   b.Quantity,
		FinalPrice: b.FinalPrice,
		PromoCode:  b.PromoCode,
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	return &queries.BookingView{
		ID:              1,
		SlotID:          b.SlotID,
		ExperienceID:    b.ExperienceID,
		ExperienceTitle: b.ExperienceTitle,
		GuestName:       b.UserName,
		GuestEmail:      b.UserEmail,
		Quantity:        int32(b.Quantity),
		FinalPrice:      b.FinalPrice,
		PromoCode:       b.PromoCode,
		CreatedAt:       b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildSlotSnapshot(spotsAvailable int32) *shared.SlotSnapshot {
	start := b.CreatedAt.Truncate(time.Hour).Add(24 * time.Hour)
	return &shared.SlotSnapshot{
		ID:              b.SlotID,
		ExperienceID:    b.ExperienceID,
		ExperienceTitle: b.ExperienceTitle,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		TotalSpots:      10,
		SpotsAvailable:  spotsAvailable,
		UnitPrice:       b.UnitPrice,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithSlotID(id int64) *BookingBuilder {
	b.SlotID = id
	return b
}

func (b *BookingBuilder) WithUserName(name string) *BookingBuilder {
	b.UserName = name
	return b
}

func (b *BookingBuilder) WithUserEmail(email string) *BookingBuilder {
	b.UserEmail = email
	return b
}

func (b *BookingBuilder) WithQuantity(quantity int) *BookingBuilder {
	b.Quantity = quantity
	return b
}

func (b *BookingBuilder) WithFinalPrice(price int64) *BookingBuilder {
	b.FinalPrice = price
	return b
}

func (b *BookingBuilder) WithPromoCode(code string) *BookingBuilder {
	b.PromoCode = &code
	return b
}
