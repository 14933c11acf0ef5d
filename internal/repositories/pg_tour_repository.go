package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hibiscus/internal/models/db_models"
)

type pgTourRepository struct {
	db *gorm.DB
}

func NewPostgresTourRepository(db *gorm.DB) TourRepository {
	return &pgTourRepository{db: db}
}

func newTourRow(t *db_models.Tour) (tourRow, error) {
	itinerary, err := json.Marshal(nonNilItinerary(t.Itinerary))
	if err != nil {
		return tourRow{}, errors.Wrap(err, "encode itinerary")
	}
	row := tourRow{
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
		Highlights:  pq.StringArray(nonNilStrings(t.Highlights)),
		Itinerary:   datatypes.JSON(itinerary),
		Inclusions:  pq.StringArray(nonNilStrings(t.Inclusions)),
		CreatedAt:   t.CreatedAt,
	}
	if t.CustomID != "" {
		id := t.CustomID
		row.CustomID = &id
	}
	if !t.UpdatedAt.IsZero() {
		updated := t.UpdatedAt
		row.UpdatedAt = &updated
	}
	return row, nil
}

func (r tourRow) toModel() db_models.Tour {
	var itinerary []db_models.ItineraryDay
	if len(r.Itinerary) > 0 {
		_ = json.Unmarshal(r.Itinerary, &itinerary)
	}
	tour := db_models.Tour{
		NativeID:    r.ID.String(),
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
		Highlights:  []string(r.Highlights),
		Itinerary:   itinerary,
		Inclusions:  []string(r.Inclusions),
		CreatedAt:   r.CreatedAt,
	}
	if r.CustomID != nil {
		tour.CustomID = *r.CustomID
	}
	if r.UpdatedAt != nil {
		tour.UpdatedAt = *r.UpdatedAt
	}
	return tour
}

func (r *pgTourRepository) scoped(ctx context.Context, kind KeyKind, key string) (*gorm.DB, error) {
	if kind == ByCustomID {
		return r.db.WithContext(ctx).Where("custom_id = ?", key), nil
	}
	id, err := parseNativeID(key)
	if err != nil {
		return nil, err
	}
	return r.db.WithContext(ctx).Where("id = ?", id), nil
}

func (r *pgTourRepository) FindAll(ctx context.Context) ([]db_models.Tour, error) {
	var rows []tourRow
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "find tours")
	}

	tours := make([]db_models.Tour, 0, len(rows))
	for _, row := range rows {
		tours = append(tours, row.toModel())
	}
	return tours, nil
}

func (r *pgTourRepository) FindOne(ctx context.Context, kind KeyKind, key string) (*db_models.Tour, error) {
	q, err := r.scoped(ctx, kind, key)
	if err != nil {
		return nil, err
	}

	var row tourRow
	if err := q.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find tour")
	}

	tour := row.toModel()
	return &tour, nil
}

func (r *pgTourRepository) Insert(ctx context.Context, tour *db_models.Tour) error {
	row, err := newTourRow(tour)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return errors.Wrap(err, "insert tour")
	}
	tour.NativeID = row.ID.String()
	return nil
}

func (r *pgTourRepository) InsertMany(ctx context.Context, tours []db_models.Tour) error {
	if len(tours) == 0 {
		return nil
	}
	rows := make([]tourRow, 0, len(tours))
	for i := range tours {
		row, err := newTourRow(&tours[i])
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	return errors.Wrap(err, "insert tours")
}

func (r *pgTourRepository) Update(ctx context.Context, kind KeyKind, key string, patch db_models.TourPatch) (bool, error) {
	q, err := r.scoped(ctx, kind, key)
	if err != nil {
		return false, err
	}

	updates, err := tourPatchColumns(patch)
	if err != nil {
		return false, err
	}

	result := q.Model(&tourRow{}).Updates(updates)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "update tour")
	}
	return result.RowsAffected > 0, nil
}

func (r *pgTourRepository) Delete(ctx context.Context, kind KeyKind, key string) (bool, error) {
	q, err := r.scoped(ctx, kind, key)
	if err != nil {
		return false, err
	}

	result := q.Delete(&tourRow{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "delete tour")
	}
	return result.RowsAffected > 0, nil
}

func tourPatchColumns(p db_models.TourPatch) (map[string]interface{}, error) {
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	cols := map[string]interface{}{"updated_at": updatedAt}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Location != nil {
		cols["location"] = *p.Location
	}
	if p.Days != nil {
		cols["days"] = *p.Days
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.Image != nil {
		cols["image"] = *p.Image
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Category != nil {
		cols["category"] = *p.Category
	}
	if p.PackageType != nil {
		cols["package_type"] = *p.PackageType
	}
	if p.Featured != nil {
		cols["featured"] = *p.Featured
	}
	if p.ShowInPopup != nil {
		cols["show_in_popup"] = *p.ShowInPopup
	}
	if p.Highlights != nil {
		cols["highlights"] = pq.StringArray(nonNilStrings(*p.Highlights))
	}
	if p.Itinerary != nil {
		encoded, err := json.Marshal(nonNilItinerary(*p.Itinerary))
		if err != nil {
			return nil, errors.Wrap(err, "encode itinerary")
		}
		cols["itinerary"] = datatypes.JSON(encoded)
	}
	if p.Inclusions != nil {
		cols["inclusions"] = pq.StringArray(nonNilStrings(*p.Inclusions))
	}
	return cols, nil
}
