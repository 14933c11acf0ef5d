// Package catalog holds the tour packages a fresh installation starts with.
package catalog

import (
	_ "embed"
	"encoding/json"

	"hibiscus/internal/models/db_models"
)

//go:embed default_tours.json
var defaultToursJSON []byte

type seedTour struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Location    string                   `json:"location"`
	Days        int                      `json:"days"`
	Price       float64                  `json:"price"`
	Category    string                   `json:"category"`
	PackageType string                   `json:"packageType"`
	Featured    bool                     `json:"featured"`
	ShowInPopup bool                     `json:"showInPopup"`
	Image       string                   `json:"image"`
	Description string                   `json:"description"`
	Highlights  []string                 `json:"highlights"`
	Itinerary   []db_models.ItineraryDay `json:"itinerary"`
	Inclusions  []string                 `json:"inclusions"`
}

var seeds = func() []seedTour {
	var out []seedTour
	if err := json.Unmarshal(defaultToursJSON, &out); err != nil {
		panic("catalog: invalid default_tours.json: " + err.Error())
	}
	return out
}()

// DefaultTours returns a fresh copy of the default catalog on every call.
func DefaultTours() []db_models.Tour {
	tours := make([]db_models.Tour, 0, len(seeds))
	for _, s := range seeds {
		tours = append(tours, db_models.Tour{
			CustomID:    s.ID,
			Title:       s.Title,
			Location:    s.Location,
			Days:        s.Days,
			Price:       s.Price,
			Image:       s.Image,
			Description: s.Description,
			Category:    s.Category,
			PackageType: s.PackageType,
			Featured:    s.Featured,
			ShowInPopup: s.ShowInPopup,
			Highlights:  append([]string(nil), s.Highlights...),
			Itinerary:   append([]db_models.ItineraryDay(nil), s.Itinerary...),
			Inclusions:  append([]string(nil), s.Inclusions...),
		})
	}
	return tours
}
