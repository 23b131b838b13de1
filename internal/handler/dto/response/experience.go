package response

import (
	"time"

	"bookit/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ExperienceResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SlotResponse struct {
	ID             int64     `json:"id"`
	ExperienceID   int64     `json:"experienceId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	TotalSpots     int32     `json:"totalSpots"`
	SpotsAvailable int32     `json:"spotsAvailable"`
}

type ExperienceDetailResponse struct {
	ExperienceResponse
	Slots []SlotResponse `json:"slots"`
}

func FromExperienceView(view *queries.ExperienceView) *ExperienceResponse {
	return &ExperienceResponse{
		ID:          view.ID,
		Title:       view.Title,
		Description: view.Description,
		Price:       view.PricePerUnit,
		Location:    view.Location,
		ImageURL:    view.ImageURL,
		CreatedAt:   view.CreatedAt,
	}
}

func FromExperienceDetailView(view *queries.ExperienceDetailView) *ExperienceDetailResponse {
	resp := &ExperienceDetailResponse{
		ExperienceResponse: *FromExperienceView(&view.ExperienceView),
		Slots:              make([]SlotResponse, len(view.Slots)),
	}
	_ = copier.Copy(&resp.Slots, view.Slots)
	return resp
}
