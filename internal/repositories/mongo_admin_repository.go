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

const adminCollection = "admin"

type adminDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Username        string             `bson:"username"`
	Password        string             `bson:"password"`
	PasswordVersion int                `bson:"passwordVersion,omitempty"`
	CreatedAt       string             `bson:"createdAt,omitempty"`
	UpdatedAt       string             `bson:"updatedAt,omitempty"`
}

func (d adminDocument) toModel() *db_models.AdminCredential {
	return &db_models.AdminCredential{
		NativeID:        d.ID.Hex(),
		Username:        d.Username,
		Password:        d.Password,
		PasswordVersion: d.PasswordVersion,
		CreatedAt:       utils.ParseISO(d.CreatedAt),
		UpdatedAt:       utils.ParseISO(d.UpdatedAt),
	}
}

type mongoAdminRepository struct {
	collection *mongo.Collection
}

func NewMongoAdminRepository(db *mongo.Database) AdminRepository {
	return &mongoAdminRepository{collection: db.Collection(adminCollection)}
}

func (r *mongoAdminRepository) Get(ctx context.Context) (*db_models.AdminCredential, error) {
	var doc adminDocument
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find admin")
	}
	return doc.toModel(), nil
}

func (r *mongoAdminRepository) Create(ctx context.Context, admin *db_models.AdminCredential) error {
	result, err := r.collection.InsertOne(ctx, adminDocument{
		Username:        admin.Username,
		Password:        admin.Password,
		PasswordVersion: admin.PasswordVersion,
		CreatedAt:       utils.FormatISO(admin.CreatedAt),
	})
	if err != nil {
		return errors.Wrap(err, "insert admin")
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		admin.NativeID = oid.Hex()
	}
	return nil
}

func (r *mongoAdminRepository) SetPasswordVersion(ctx context.Context, id string, version int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrMalformedID
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"passwordVersion": version}})
	return errors.Wrap(err, "set admin password version")
}

func (r *mongoAdminRepository) ResetCredentials(ctx context.Context, username, password string, at time.Time) (int, error) {
	stamp := utils.FormatISO(at)
	update := bson.M{
		"$set": bson.M{
			"username":  username,
			"password":  password,
			"updatedAt": stamp,
		},
		"$inc":         bson.M{"passwordVersion": 1},
		"$setOnInsert": bson.M{"createdAt": stamp},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc adminDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{}, update, opts).Decode(&doc); err != nil {
		return 0, errors.Wrap(err, "reset admin")
	}

	// Keep the collection a singleton.
	if _, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$ne": doc.ID}}); err != nil {
		return 0, errors.Wrap(err, "remove stale admin records")
	}
	return doc.PasswordVersion, nil
}
