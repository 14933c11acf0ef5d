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

const inquiriesCollection = "inquiries"

type inquiryDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone"`
	TripLocation string             `bson:"tripLocation"`
	Message      string             `bson:"message"`
	Date         string             `bson:"date"`
	Status       string             `bson:"status"`
}

type mongoInquiryRepository struct {
	collection *mongo.Collection
}

func NewMongoInquiryRepository(db *mongo.Database) InquiryRepository {
	return &mongoInquiryRepository{collection: db.Collection(inquiriesCollection)}
}

func (r *mongoInquiryRepository) FindAll(ctx context.Context) ([]db_models.Inquiry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find inquiries")
	}
	defer cursor.Close(ctx)

	var docs []inquiryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode inquiries")
	}

	inquiries := make([]db_models.Inquiry, 0, len(docs))
	for _, d := range docs {
		inquiries = append(inquiries, db_models.Inquiry{
			NativeID:     d.ID.Hex(),
			Name:         d.Name,
			Email:        d.Email,
			Phone:        d.Phone,
			TripLocation: d.TripLocation,
			Message:      d.Message,
			Date:         utils.ParseISO(d.Date),
			Status:       d.Status,
		})
	}
	return inquiries, nil
}

func (r *mongoInquiryRepository) Insert(ctx context.Context, inquiry *db_models.Inquiry) error {
	result, err := r.collection.InsertOne(ctx, inquiryDocument{
		Name:         inquiry.Name,
		Email:        inquiry.Email,
		Phone:        inquiry.Phone,
		TripLocation: inquiry.TripLocation,
		Message:      inquiry.Message,
		Date:         utils.FormatISO(inquiry.Date),
		Status:       inquiry.Status,
	})
	if err != nil {
		return errors.Wrap(err, "insert inquiry")
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		inquiry.NativeID = oid.Hex()
	}
	return nil
}

func (r *mongoInquiryRepository) SetStatus(ctx context.Context, id string, status string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrMalformedID
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return false, errors.Wrap(err, "update inquiry status")
	}
	return result.MatchedCount > 0, nil
}

func (r *mongoInquiryRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrMalformedID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, errors.Wrap(err, "delete inquiry")
	}
	return result.DeletedCount > 0, nil
}
