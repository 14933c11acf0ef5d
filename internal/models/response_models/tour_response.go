package response_models

import (
	"hibiscus/internal/models/db_models"
	"hibiscus/pkg/utils"
)

type TourResponse struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Location    string                   `json:"location"`
	Days        int                      `json:"days"`
	Price       float64                  `json:"price"`
	Image       string                   `json:"image"`
	Description string                   `json:"description"`
	Category    string                   `json:"category"`
	PackageType string                   `json:"packageType,omitempty"`
	Featured    bool                     `json:"featured"`
	ShowInPopup bool                     `json:"showInPopup"`
	Highlights  []string                 `json:"highlights"`
	Itinerary   []db_models.ItineraryDay `json:"itinerary"`
	Inclusions  []string                 `json:"inclusions,omitempty"`
	CreatedAt   string                   `json:"createdAt,omitempty"`
	UpdatedAt   string                   `json:"updatedAt,omitempty"`
}

// NewTourResponse exposes the custom id when there is one, otherwise the
// native id, under "id".
func NewTourResponse(t db_models.Tour) TourResponse {
	highlights := t.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	itinerary := t.Itinerary
	if itinerary == nil {
		itinerary = []db_models.ItineraryDay{}
	}
	return TourResponse{
		ID:          t.PublicID(),
		Title:       t.Title,
		Location:    t.Location,
		Days:        t.Days,
		Price:       t.Price,
		Image:       t.Image,
		Description: t.Description,
		Category:    t.Category,
		PackageType: t.PackageType,
		Featured:    t.Featured,
		ShowInPopup: t.ShowInPopup,
		Highlights:  highlights,
		Itinerary:   itinerary,
		Inclusions:  t.Inclusions,
		CreatedAt:   utils.FormatISO(t.CreatedAt),
		UpdatedAt:   utils.FormatISO(t.UpdatedAt),
	}
}

func NewTourResponses(tours []db_models.Tour) []TourResponse {
	out := make([]TourResponse, 0, len(tours))
	for _, t := range tours {
		out = append(out, NewTourResponse(t))
	}
	return out
}
