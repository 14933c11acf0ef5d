package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hibiscus/internal/models/db_models"
)

type pgImageRepository struct {
	db *gorm.DB
}

func NewPostgresImageRepository(db *gorm.DB) ImageRepository {
	return &pgImageRepository{db: db}
}

func (r imageRow) toModel() db_models.Image {
	return db_models.Image{
		NativeID:         r.ID.String(),
		Filename:         r.Filename,
		OriginalFilename: r.OriginalFilename,
		Mimetype:         r.Mimetype,
		Data:             r.Data,
		Size:             r.Size,
		UploadedAt:       r.UploadedAt,
	}
}

func (r *pgImageRepository) Insert(ctx context.Context, image *db_models.Image) error {
	row := imageRow{
		Filename:         image.Filename,
		OriginalFilename: image.OriginalFilename,
		Mimetype:         image.Mimetype,
		Data:             image.Data,
		Size:             image.Size,
		UploadedAt:       image.UploadedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errors.Wrap(err, "insert image")
	}
	image.NativeID = row.ID.String()
	return nil
}

func (r *pgImageRepository) FindByID(ctx context.Context, id string) (*db_models.Image, error) {
	uid, err := parseNativeID(id)
	if err != nil {
		return nil, err
	}

	var row imageRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find image")
	}

	image := row.toModel()
	return &image, nil
}

func (r *pgImageRepository) FindUploadedBefore(ctx context.Context, cutoff time.Time) ([]db_models.Image, error) {
	var rows []imageRow
	err := r.db.WithContext(ctx).
		Omit("data").
		Where("uploaded_at < ?", cutoff).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "find images")
	}

	images := make([]db_models.Image, 0, len(rows))
	for _, row := range rows {
		images = append(images, row.toModel())
	}
	return images, nil
}

func (r *pgImageRepository) Delete(ctx context.Context, id string) (bool, error) {
	uid, err := parseNativeID(id)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Where("id = ?", uid).Delete(&imageRow{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "delete image")
	}
	return result.RowsAffected > 0, nil
}
