package repositories

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hibiscus/internal/models/db_models"
	"hibiscus/pkg/utils"
)

const toursCollection = "tours"

type tourDocument struct {
	ID          primitive.ObjectID       `bson:"_id,omitempty"`
	CustomID    string                   `bson:"id,omitempty"`
	Title       string                   `bson:"title"`
	Location    string                   `bson:"location"`
	Days        int                      `bson:"days"`
	Price       float64                  `bson:"price"`
	Image       string                   `bson:"image"`
	Description string                   `bson:"description"`
	Category    string                   `bson:"category"`
	PackageType string                   `bson:"packageType,omitempty"`
	Featured    bool                     `bson:"featured"`
	ShowInPopup bool                     `bson:"showInPopup"`
	Highlights  []string                 `bson:"highlights"`
	Itinerary   []db_models.ItineraryDay `bson:"itinerary"`
	Inclusions  []string                 `bson:"inclusions,omitempty"`
	CreatedAt   string                   `bson:"createdAt,omitempty"`
	UpdatedAt   string                   `bson:"updatedAt,omitempty"`
}

func newTourDocument(t *db_models.Tour) tourDocument {
	return tourDocument{
		CustomID:    t.CustomID,
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
		Highlights:  nonNilStrings(t.Highlights),
		Itinerary:   nonNilItinerary(t.Itinerary),
		Inclusions:  t.Inclusions,
		CreatedAt:   utils.FormatISO(t.CreatedAt),
		UpdatedAt:   utils.FormatISO(t.UpdatedAt),
	}
}

func (d tourDocument) toModel() db_models.Tour {
	return db_models.Tour{
		NativeID:    d.ID.Hex(),
		CustomID:    d.CustomID,
		Title:       d.Title,
		Location:    d.Location,
		Days:        d.Days,
		Price:       d.Price,
		Image:       d.Image,
		Description: d.Description,
		Category:    d.Category,
		PackageType: d.PackageType,
		Featured:    d.Featured,
		ShowInPopup: d.ShowInPopup,
		Highlights:  d.Highlights,
		Itinerary:   d.Itinerary,
		Inclusions:  d.Inclusions,
		CreatedAt:   utils.ParseISO(d.CreatedAt),
		UpdatedAt:   utils.ParseISO(d.UpdatedAt),
	}
}

type mongoTourRepository struct {
	collection *mongo.Collection
}

func NewMongoTourRepository(db *mongo.Database) TourRepository {
	return &mongoTourRepository{collection: db.Collection(toursCollection)}
}

// EnsureTourIndexes makes custom ids unique. Legacy tours without an "id"
// field are left out of the index.
func EnsureTourIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(toursCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}},
		Options: options.Index().
			SetName("uniq_custom_id").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"id": bson.M{"$type": "string"}}),
	})
	return errors.Wrap(err, "create tours index")
}

func tourFilter(kind KeyKind, key string) (bson.M, error) {
	if kind == ByCustomID {
		return bson.M{"id": key}, nil
	}
	oid, err := primitive.ObjectIDFromHex(key)
	if err != nil {
		return nil, ErrMalformedID
	}
	return bson.M{"_id": oid}, nil
}

func (r *mongoTourRepository) FindAll(ctx context.Context) ([]db_models.Tour, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "find tours")
	}
	defer cursor.Close(ctx)

	var docs []tourDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode tours")
	}

	tours := make([]db_models.Tour, 0, len(docs))
	for _, d := range docs {
		tours = append(tours, d.toModel())
	}
	return tours, nil
}

func (r *mongoTourRepository) FindOne(ctx context.Context, kind KeyKind, key string) (*db_models.Tour, error) {
	filter, err := tourFilter(kind, key)
	if err != nil {
		return nil, err
	}

	var doc tourDocument
	err = r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find tour")
	}

	tour := doc.toModel()
	return &tour, nil
}

func (r *mongoTourRepository) Insert(ctx context.Context, tour *db_models.Tour) error {
	result, err := r.collection.InsertOne(ctx, newTourDocument(tour))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return errors.Wrap(err, "insert tour")
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		tour.NativeID = oid.Hex()
	}
	return nil
}

func (r *mongoTourRepository) InsertMany(ctx context.Context, tours []db_models.Tour) error {
	if len(tours) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(tours))
	for i := range tours {
		docs = append(docs, newTourDocument(&tours[i]))
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return errors.Wrap(err, "insert tours")
	}
	return nil
}

func (r *mongoTourRepository) Update(ctx context.Context, kind KeyKind, key string, patch db_models.TourPatch) (bool, error) {
	filter, err := tourFilter(kind, key)
	if err != nil {
		return false, err
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": tourPatchSet(patch)})
	if err != nil {
		return false, errors.Wrap(err, "update tour")
	}
	return result.MatchedCount > 0, nil
}

func (r *mongoTourRepository) Delete(ctx context.Context, kind KeyKind, key string) (bool, error) {
	filter, err := tourFilter(kind, key)
	if err != nil {
		return false, err
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, errors.Wrap(err, "delete tour")
	}
	return result.DeletedCount > 0, nil
}

func tourPatchSet(p db_models.TourPatch) bson.M {
	set := bson.M{"updatedAt": utils.FormatISO(p.UpdatedAt)}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.Days != nil {
		set["days"] = *p.Days
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.PackageType != nil {
		set["packageType"] = *p.PackageType
	}
	if p.Featured != nil {
		set["featured"] = *p.Featured
	}
	if p.ShowInPopup != nil {
		set["showInPopup"] = *p.ShowInPopup
	}
	if p.Highlights != nil {
		set["highlights"] = nonNilStrings(*p.Highlights)
	}
	if p.Itinerary != nil {
		set["itinerary"] = nonNilItinerary(*p.Itinerary)
	}
	if p.Inclusions != nil {
		set["inclusions"] = nonNilStrings(*p.Inclusions)
	}
	return set
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilItinerary(s []db_models.ItineraryDay) []db_models.ItineraryDay {
	if s == nil {
		return []db_models.ItineraryDay{}
	}
	return s
}
