package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hibiscus/internal/models/db_models"
	"hibiscus/pkg/utils"
)

const imagesCollection = "images"

type imageDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Filename         string             `bson:"filename"`
	OriginalFilename string             `bson:"originalFilename"`
	Mimetype         string             `bson:"mimetype"`
	Data             string             `bson:"data,omitempty"`
	Size             float64            `bson:"size"`
	UploadedAt       string             `bson:"uploadedAt"`
}

func (d imageDocument) toModel() db_models.Image {
	return db_models.Image{
		NativeID:         d.ID.Hex(),
		Filename:         d.Filename,
		OriginalFilename: d.OriginalFilename,
		Mimetype:         d.Mimetype,
		Data:             d.Data,
		Size:             int64(d.Size),
		UploadedAt:       utils.ParseISO(d.UploadedAt),
	}
}

type mongoImageRepository struct {
	collection *mongo.Collection
}

func NewMongoImageRepository(db *mongo.Database) ImageRepository {
	return &mongoImageRepository{collection: db.Collection(imagesCollection)}
}

func (r *mongoImageRepository) Insert(ctx context.Context, image *db_models.Image) error {
	result, err := r.collection.InsertOne(ctx, imageDocument{
		Filename:         image.Filename,
		OriginalFilename: image.OriginalFilename,
		Mimetype:         image.Mimetype,
		Data:             image.Data,
		Size:             float64(image.Size),
		UploadedAt:       utils.FormatISO(image.UploadedAt),
	})
	if err != nil {
		return errors.Wrap(err, "insert image")
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		image.NativeID = oid.Hex()
	}
	return nil
}

func (r *mongoImageRepository) FindByID(ctx context.Context, id string) (*db_models.Image, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrMalformedID
	}

	var doc imageDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find image")
	}

	image := doc.toModel()
	return &image, nil
}

func (r *mongoImageRepository) FindUploadedBefore(ctx context.Context, cutoff time.Time) ([]db_models.Image, error) {
	// ISO strings in one layout sort the same way as the instants they encode.
	filter := bson.M{"uploadedAt": bson.M{"$lt": utils.FormatISO(cutoff)}}
	opts := options.Find().SetProjection(bson.M{"data": 0})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find images")
	}
	defer cursor.Close(ctx)

	var docs []imageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode images")
	}

	images := make([]db_models.Image, 0, len(docs))
	for _, d := range docs {
		images = append(images, d.toModel())
	}
	return images, nil
}

func (r *mongoImageRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrMalformedID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, errors.Wrap(err, "delete image")
	}
	return result.DeletedCount > 0, nil
}
