package queries

import (
	"time"
)

// Read models returned to the handler layer.

type ExperienceView struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PricePerUnit int64     `json:"price"`
	Location     string    `json:"location"`
	ImageURL     string    `json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SlotView struct {
	ID             int64     `json:"id"`
	ExperienceID   int64     `json:"experienceId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	TotalSpots     int32     `json:"totalSpots"`
	SpotsAvailable int32     `json:"spotsAvailable"`
}

type ExperienceDetailView struct {
	ExperienceView
	Slots []SlotView `json:"slots"`
}

type BookingView struct {
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
