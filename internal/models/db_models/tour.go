package db_models

import "time"

const (
	CategoryCulture    = "Culture"
	CategoryNature     = "Nature"
	CategoryAdventure  = "Adventure"
	CategorySpiritual  = "Spiritual"
	CategoryRelaxation = "Relaxation"
)

const (
	PackageDomestic        = "domestic"
	PackageInternational   = "international"
	PackageTrending        = "trending"
	PackageGroupDepartures = "group-departures"
	PackageJungleSafaris   = "jungle-safaris"
	PackageCruise          = "cruise"
)

// Tour is a catalog entry as held by any store. CustomID is the
// application-chosen id; NativeID is the id the store generated and is empty
// until the tour has been persisted.
type Tour struct {
	NativeID    string
	CustomID    string
	Title       string
	Location    string
	Days        int
	Price       float64
	Image       string
	Description string
	Category    string
	PackageType string
	Featured    bool
	ShowInPopup bool
	Highlights  []string
	Itinerary   []ItineraryDay
	Inclusions  []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ItineraryDay struct {
	Day         int    `json:"day" bson:"day"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
}

// PublicID is the key exposed to API callers.
func (t *Tour) PublicID() string {
	if t.CustomID != "" {
		return t.CustomID
	}
	return t.NativeID
}

// TourPatch carries the fields of a partial update; nil means unchanged.
type TourPatch struct {
	Title       *string
	Location    *string
	Days        *int
	Price       *float64
	Image       *string
	Description *string
	Category    *string
	PackageType *string
	Featured    *bool
	ShowInPopup *bool
	Highlights  *[]string
	Itinerary   *[]ItineraryDay
	Inclusions  *[]string
	UpdatedAt   time.Time
}

// Apply merges the patch into t.
func (p TourPatch) Apply(t *Tour) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
	if p.Days != nil {
		t.Days = *p.Days
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.Image != nil {
		t.Image = *p.Image
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.PackageType != nil {
		t.PackageType = *p.PackageType
	}
	if p.Featured != nil {
		t.Featured = *p.Featured
	}
	if p.ShowInPopup != nil {
		t.ShowInPopup = *p.ShowInPopup
	}
	if p.Highlights != nil {
		t.Highlights = append([]string(nil), (*p.Highlights)...)
	}
	if p.Itinerary != nil {
		t.Itinerary = append([]ItineraryDay(nil), (*p.Itinerary)...)
	}
	if p.Inclusions != nil {
		t.Inclusions = append([]string(nil), (*p.Inclusions)...)
	}
	if !p.UpdatedAt.IsZero() {
		t.UpdatedAt = p.UpdatedAt
	}
}

// Clone returns a copy that shares no slices with t.
func (t Tour) Clone() Tour {
	t.Highlights = append([]string(nil), t.Highlights...)
	t.Itinerary = append([]ItineraryDay(nil), t.Itinerary...)
	t.Inclusions = append([]string(nil), t.Inclusions...)
	return t
}
