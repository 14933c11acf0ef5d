package repositories

import (
	"context"
	"errors"
	"time"

	"hibiscus/internal/models/db_models"
)

var (
	// ErrMalformedID is returned when a key cannot be a native id of the
	// backing store.
	ErrMalformedID = errors.New("malformed native id")
	// ErrDuplicateKey is returned when a custom tour id is already taken.
	ErrDuplicateKey = errors.New("duplicate key")
)

// KeyKind selects which identifier a tour lookup matches against.
type KeyKind int

const (
	ByCustomID KeyKind = iota
	ByNativeID
)

func (k KeyKind) String() string {
	if k == ByNativeID {
		return "native"
	}
	return "custom"
}

// TourRepository lookups return (nil, nil) on a miss. ByNativeID calls return
// ErrMalformedID when the key is not a valid native id.
type TourRepository interface {
	FindAll(ctx context.Context) ([]db_models.Tour, error)
	FindOne(ctx context.Context, kind KeyKind, key string) (*db_models.Tour, error)
	Insert(ctx context.Context, tour *db_models.Tour) error
	// InsertMany skips tours whose custom id already exists.
	InsertMany(ctx context.Context, tours []db_models.Tour) error
	Update(ctx context.Context, kind KeyKind, key string, patch db_models.TourPatch) (bool, error)
	Delete(ctx context.Context, kind KeyKind, key string) (bool, error)
}

type InquiryRepository interface {
	// FindAll returns inquiries newest first.
	FindAll(ctx context.Context) ([]db_models.Inquiry, error)
	Insert(ctx context.Context, inquiry *db_models.Inquiry) error
	SetStatus(ctx context.Context, id string, status string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type AdminRepository interface {
	Get(ctx context.Context) (*db_models.AdminCredential, error)
	Create(ctx context.Context, admin *db_models.AdminCredential) error
	SetPasswordVersion(ctx context.Context, id string, version int) error
	// ResetCredentials overwrites the singleton (creating it when missing),
	// increments passwordVersion by one and returns the new version.
	ResetCredentials(ctx context.Context, username, password string, at time.Time) (int, error)
}

type ImageRepository interface {
	Insert(ctx context.Context, image *db_models.Image) error
	FindByID(ctx context.Context, id string) (*db_models.Image, error)
	// FindUploadedBefore returns image metadata without payloads.
	FindUploadedBefore(ctx context.Context, cutoff time.Time) ([]db_models.Image, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Store bundles the repositories of one backend.
type Store struct {
	Tours     TourRepository
	Inquiries InquiryRepository
	Admin     AdminRepository
	Images    ImageRepository
	Close     func(ctx context.Context) error
}
