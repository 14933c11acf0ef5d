package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// pgBase gives every row a UUID primary key generated on the client.
type pgBase struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (b *pgBase) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type tourRow struct {
	pgBase
	CustomID    *string        `gorm:"uniqueIndex"`
	Title       string         `gorm:"not null"`
	Location    string
	Days        int
	Price       float64
	Image       string         `gorm:"type:text"`
	Description string         `gorm:"type:text"`
	Category    string         `gorm:"index"`
	PackageType string         `gorm:"index"`
	Featured    bool
	ShowInPopup bool
	Highlights  pq.StringArray `gorm:"type:text[]"`
	Itinerary   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Inclusions  pq.StringArray `gorm:"type:text[]"`
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (tourRow) TableName() string { return "tours" }

type inquiryRow struct {
	pgBase
	Name         string
	Email        string
	Phone        string
	TripLocation string
	Message      string    `gorm:"type:text"`
	Date         time.Time `gorm:"index"`
	Status       string    `gorm:"default:'new'"`
}

func (inquiryRow) TableName() string { return "inquiries" }

type adminRow struct {
	pgBase
	Username        string
	Password        string
	PasswordVersion int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (adminRow) TableName() string { return "admin" }

type imageRow struct {
	pgBase
	Filename         string
	OriginalFilename string
	Mimetype         string
	Data             string `gorm:"type:text"`
	Size             int64
	UploadedAt       time.Time `gorm:"index"`
}

func (imageRow) TableName() string { return "images" }

// MigratePostgres creates or updates the four tables.
func MigratePostgres(db *gorm.DB) error {
	return db.AutoMigrate(&tourRow{}, &inquiryRow{}, &adminRow{}, &imageRow{})
}

func parseNativeID(key string) (uuid.UUID, error) {
	id, err := uuid.Parse(key)
	if err != nil {
		return uuid.Nil, ErrMalformedID
	}
	return id, nil
}
