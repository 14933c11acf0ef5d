package repositories

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hibiscus/internal/models/db_models"
)

type pgAdminRepository struct {
	db *gorm.DB
}

func NewPostgresAdminRepository(db *gorm.DB) AdminRepository {
	return &pgAdminRepository{db: db}
}

func (r *pgAdminRepository) Get(ctx context.Context) (*db_models.AdminCredential, error) {
	var row adminRow
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find admin")
	}
	return &db_models.AdminCredential{
		NativeID:        row.ID.String(),
		Username:        row.Username,
		Password:        row.Password,
		PasswordVersion: row.PasswordVersion,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

func (r *pgAdminRepository) Create(ctx context.Context, admin *db_models.AdminCredential) error {
	row := adminRow{
		Username:        admin.Username,
		Password:        admin.Password,
		PasswordVersion: admin.PasswordVersion,
		CreatedAt:       admin.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errors.Wrap(err, "insert admin")
	}
	admin.NativeID = row.ID.String()
	return nil
}

func (r *pgAdminRepository) SetPasswordVersion(ctx context.Context, id string, version int) error {
	uid, err := parseNativeID(id)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Model(&adminRow{}).Where("id = ?", uid).Update("password_version", version).Error
	return errors.Wrap(err, "set admin password version")
}

func (r *pgAdminRepository) ResetCredentials(ctx context.Context, username, password string, at time.Time) (int, error) {
	var version int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row adminRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Order("created_at ASC").First(&row).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = adminRow{Username: username, Password: password, PasswordVersion: 1, CreatedAt: at, UpdatedAt: at}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		} else {
			row.Username = username
			row.Password = password
			row.PasswordVersion++
			row.UpdatedAt = at
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("id <> ?", row.ID).Delete(&adminRow{}).Error; err != nil {
			return err
		}
		version = row.PasswordVersion
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "reset admin")
	}
	return version, nil
}
