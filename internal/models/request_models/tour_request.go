package request_models

import "hibiscus/internal/models/db_models"

type ItineraryDay struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CreateTourRequest struct {
	ID          string         `json:"id"`
	Title       string         `json:"title" binding:"required"`
	Location    string         `json:"location"`
	Days        int            `json:"days" binding:"gte=0"`
	Price       float64        `json:"price" binding:"gte=0"`
	Image       string         `json:"image"`
	Description string         `json:"description"`
	Category    string         `json:"category" binding:"omitempty,oneof=Culture Nature Adventure Spiritual Relaxation"`
	PackageType string         `json:"packageType" binding:"omitempty,oneof=domestic international trending group-departures jungle-safaris cruise"`
	Featured    bool           `json:"featured"`
	ShowInPopup bool           `json:"showInPopup"`
	Highlights  []string       `json:"highlights"`
	Itinerary   []ItineraryDay `json:"itinerary"`
	Inclusions  []string       `json:"inclusions"`
}

func (r CreateTourRequest) ToModel() db_models.Tour {
	return db_models.Tour{
		CustomID:    r.ID,
		Title:       r.Title,
		Location:    r.Location,
		Days:        r.Days,
		Price:       r.Price,
		Image:       r.Image,
		Description: r.Description,
		Category:    r.Category,
		PackageType: r.PackageType,
		Featured:    r.Featured,
		ShowInPopup: r.ShowInPopup,
		Highlights:  append([]string{}, r.Highlights...),
		Itinerary:   toItinerary(r.Itinerary),
		Inclusions:  append([]string{}, r.Inclusions...),
	}
}

// PatchTourRequest fields left out of the body stay nil and are not touched.
type PatchTourRequest struct {
	Title       *string         `json:"title" binding:"omitempty,min=1"`
	Location    *string         `json:"location"`
	Days        *int            `json:"days" binding:"omitempty,gte=0"`
	Price       *float64        `json:"price" binding:"omitempty,gte=0"`
	Image       *string         `json:"image"`
	Description *string         `json:"description"`
	Category    *string         `json:"category" binding:"omitempty,oneof=Culture Nature Adventure Spiritual Relaxation"`
	PackageType *string         `json:"packageType" binding:"omitempty,oneof=domestic international trending group-departures jungle-safaris cruise"`
	Featured    *bool           `json:"featured"`
	ShowInPopup *bool           `json:"showInPopup"`
	Highlights  *[]string       `json:"highlights"`
	Itinerary   *[]ItineraryDay `json:"itinerary"`
	Inclusions  *[]string       `json:"inclusions"`
}

func (r PatchTourRequest) ToPatch() db_models.TourPatch {
	patch := db_models.TourPatch{
		Title:       r.Title,
		Location:    r.Location,
		Days:        r.Days,
		Price:       r.Price,
		Image:       r.Image,
		Description: r.Description,
		Category:    r.Category,
		PackageType: r.PackageType,
		Featured:    r.Featured,
		ShowInPopup: r.ShowInPopup,
		Highlights:  r.Highlights,
		Inclusions:  r.Inclusions,
	}
	if r.Itinerary != nil {
		itinerary := toItinerary(*r.Itinerary)
		patch.Itinerary = &itinerary
	}
	return patch
}

func toItinerary(days []ItineraryDay) []db_models.ItineraryDay {
	out := make([]db_models.ItineraryDay, 0, len(days))
	for _, d := range days {
		out = append(out, db_models.ItineraryDay{Day: d.Day, Title: d.Title, Description: d.Description})
	}
	return out
}
