package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hibiscus/internal/models/db_models"
)

type pgInquiryRepository struct {
	db *gorm.DB
}

func NewPostgresInquiryRepository(db *gorm.DB) InquiryRepository {
	return &pgInquiryRepository{db: db}
}

func (r *pgInquiryRepository) FindAll(ctx context.Context) ([]db_models.Inquiry, error) {
	var rows []inquiryRow
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "find inquiries")
	}

	inquiries := make([]db_models.Inquiry, 0, len(rows))
	for _, row := range rows {
		inquiries = append(inquiries, db_models.Inquiry{
			NativeID:     row.ID.String(),
			Name:         row.Name,
			Email:        row.Email,
			Phone:        row.Phone,
			TripLocation: row.TripLocation,
			Message:      row.Message,
			Date:         row.Date,
			Status:       row.Status,
		})
	}
	return inquiries, nil
}

func (r *pgInquiryRepository) Insert(ctx context.Context, inquiry *db_models.Inquiry) error {
	row := inquiryRow{
		Name:         inquiry.Name,
		Email:        inquiry.Email,
		Phone:        inquiry.Phone,
		TripLocation: inquiry.TripLocation,
		Message:      inquiry.Message,
		Date:         inquiry.Date,
		Status:       inquiry.Status,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errors.Wrap(err, "insert inquiry")
	}
	inquiry.NativeID = row.ID.String()
	return nil
}

func (r *pgInquiryRepository) SetStatus(ctx context.Context, id string, status string) (bool, error) {
	uid, err := parseNativeID(id)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Model(&inquiryRow{}).Where("id = ?", uid).Update("status", status)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "update inquiry status")
	}
	return result.RowsAffected > 0, nil
}

func (r *pgInquiryRepository) Delete(ctx context.Context, id string) (bool, error) {
	uid, err := parseNativeID(id)
	if err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).Where("id = ?", uid).Delete(&inquiryRow{})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "delete inquiry")
	}
	return result.RowsAffected > 0, nil
}
