package repositories

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"hibiscus/internal/models/db_models"
)

func TestTourPatchColumnsOnlyPresentFields(t *testing.T) {
	packageType := db_models.PackageCruise
	popup := true
	itinerary := []db_models.ItineraryDay{{Day: 1, Title: "Board"}}
	inclusions := []string(nil)
	at := time.Date(2025, 4, 5, 6, 7, 8, 0, time.UTC)

	cols, err := tourPatchColumns(db_models.TourPatch{
		PackageType: &packageType,
		ShowInPopup: &popup,
		Itinerary:   &itinerary,
		Inclusions:  &inclusions,
		UpdatedAt:   at,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"updated_at":    at,
		"package_type":  "cruise",
		"show_in_popup": true,
		"itinerary":     datatypes.JSON(`[{"day":1,"title":"Board","description":""}]`),
		"inclusions":    pq.StringArray{},
	}, cols)
}

func TestTourPatchColumnsStampsMissingTime(t *testing.T) {
	before := time.Now()
	cols, err := tourPatchColumns(db_models.TourPatch{})
	require.NoError(t, err)

	require.Len(t, cols, 1)
	stamp, ok := cols["updated_at"].(time.Time)
	require.True(t, ok)
	assert.False(t, stamp.Before(before))
}

func TestTourRowRoundTrip(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	row, err := newTourRow(&db_models.Tour{Title: "Untitled", CreatedAt: created})
	require.NoError(t, err)
	assert.Nil(t, row.CustomID, "empty custom id must stay NULL for the unique index")
	assert.Nil(t, row.UpdatedAt)
	assert.Equal(t, datatypes.JSON("[]"), row.Itinerary)
	assert.Equal(t, pq.StringArray{}, row.Highlights)

	row, err = newTourRow(&db_models.Tour{
		CustomID:  "goa-package-3n4d",
		Title:     "Goa",
		Itinerary: []db_models.ItineraryDay{{Day: 1, Title: "Arrive", Description: "Check in"}},
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	})
	require.NoError(t, err)
	row.ID = uuid.New()

	tour := row.toModel()
	assert.Equal(t, row.ID.String(), tour.NativeID)
	assert.Equal(t, "goa-package-3n4d", tour.CustomID)
	assert.Equal(t, []db_models.ItineraryDay{{Day: 1, Title: "Arrive", Description: "Check in"}}, tour.Itinerary)
	assert.Equal(t, created.Add(time.Hour), tour.UpdatedAt)
}

func TestParseNativeID(t *testing.T) {
	id := uuid.New()
	parsed, err := parseNativeID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	for _, key := range []string{"", "goa-package-3n4d", "65a1b2c3d4e5f60718293a4b"} {
		_, err = parseNativeID(key)
		assert.ErrorIs(t, err, ErrMalformedID, key)
	}
}
