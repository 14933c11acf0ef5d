package services

import (
	"context"
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"hibiscus/internal/models/db_models"
	"hibiscus/internal/models/request_models"
	"hibiscus/internal/repositories"
	mem "hibiscus/pkg/memcache"
	"hibiscus/pkg/utils"
)

// MaxImageBytes is the largest accepted decoded upload, inclusive.
const MaxImageBytes = 10 << 20

const (
	imageDataURLPrefix  = "data:image/"
	defaultImageType    = "image/jpeg"
	defaultImageExt     = "jpg"
	imagePathPrefix     = "/api/images/"
	ImageCacheDirective = "public, max-age=31536000, immutable"
)

type ImageServiceInterface interface {
	StoreImage(ctx context.Context, request request_models.UploadImageRequest) (*db_models.Image, error)
	RetrieveImage(ctx context.Context, id string) (*ImagePayload, error)
}

type ImagePayload struct {
	Data        []byte
	ContentType string
}

type ImageService struct {
	imageRepo repositories.ImageRepository
	cache     mem.ImageCache
	cacheTTL  time.Duration
	clock     *utils.MillisClock
	logger    *zap.Logger
	now       func() time.Time
}

func NewImageService(
	imageRepo repositories.ImageRepository,
	cache mem.ImageCache,
	cacheTTL time.Duration,
	clock *utils.MillisClock,
	logger *zap.Logger,
) ImageServiceInterface {
	return &ImageService{
		imageRepo: imageRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		clock:     clock,
		logger:    logger.Named("images"),
		now:       time.Now,
	}
}

// ImagePath is the public retrieval path for a stored image.
func ImagePath(id string) string {
	return imagePathPrefix + id
}

// imageIDFromPath extracts the image id from a reference such as
// "/api/images/<id>" or "https://host/api/images/<id>".
func imageIDFromPath(ref string) (string, bool) {
	i := strings.LastIndex(ref, imagePathPrefix)
	if i < 0 {
		return "", false
	}
	id := ref[i+len(imagePathPrefix):]
	if j := strings.IndexAny(id, "?#/"); j >= 0 {
		id = id[:j]
	}
	return id, id != ""
}

func (s *ImageService) StoreImage(ctx context.Context, request request_models.UploadImageRequest) (*db_models.Image, error) {
	if request.ImageData == "" {
		return nil, utils.ErrMissingImageData
	}
	if !strings.HasPrefix(request.ImageData, imageDataURLPrefix) {
		return nil, utils.ErrInvalidImageFormat
	}
	comma := strings.IndexByte(request.ImageData, ',')
	if comma < 0 {
		return nil, utils.ErrInvalidImageFormat
	}
	header := request.ImageData[len("data:"):comma]
	payload := request.ImageData[comma+1:]

	// Reject obviously oversized payloads before decoding them.
	if base64.StdEncoding.DecodedLen(len(payload))-2 > MaxImageBytes {
		return nil, utils.ErrImageTooLarge
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, utils.ErrInvalidImageFormat
	}
	if len(decoded) > MaxImageBytes {
		return nil, utils.ErrImageTooLarge
	}
	if !strings.HasPrefix(mimetype.Detect(decoded).String(), "image/") {
		return nil, utils.ErrInvalidImageFormat
	}

	mediaType := strings.SplitN(header, ";", 2)[0]
	contentType := firstNonEmpty(request.Mimetype, mediaType, defaultImageType)

	filename := s.clock.NewImageFilename(imageExtension(request.Filename, contentType))
	image := &db_models.Image{
		Filename:         filename,
		OriginalFilename: firstNonEmpty(request.Filename, filename),
		Mimetype:         contentType,
		Data:             request.ImageData,
		Size:             int64(len(decoded)),
		UploadedAt:       s.now(),
	}
	if err := s.imageRepo.Insert(ctx, image); err != nil {
		s.logger.Error("store image", zap.String("filename", image.Filename), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	s.logger.Info("image stored",
		zap.String("id", image.NativeID),
		zap.String("filename", image.Filename),
		zap.Int64("size", image.Size))
	return image, nil
}

func (s *ImageService) RetrieveImage(ctx context.Context, id string) (*ImagePayload, error) {
	if data, contentType, ok := s.cache.Get(id); ok {
		return &ImagePayload{Data: data, ContentType: contentType}, nil
	}

	image, err := s.imageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMalformedID) {
			return nil, utils.ErrInvalidImageID
		}
		s.logger.Error("retrieve image", zap.String("id", id), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if image == nil {
		return nil, utils.ErrImageNotFound
	}

	data, err := decodeStoredImage(image.Data)
	if err != nil {
		s.logger.Error("stored image is not valid base64", zap.String("id", id), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	contentType := image.Mimetype
	if contentType == "" {
		if detected := mimetype.Detect(data).String(); strings.HasPrefix(detected, "image/") {
			contentType = detected
		} else {
			contentType = defaultImageType
		}
	}

	s.cache.Set(id, data, contentType, s.cacheTTL)
	return &ImagePayload{Data: data, ContentType: contentType}, nil
}

// decodeStoredImage accepts a data URL or bare base64.
func decodeStoredImage(stored string) ([]byte, error) {
	payload := stored
	if strings.HasPrefix(stored, "data:") {
		if comma := strings.IndexByte(stored, ','); comma >= 0 {
			payload = stored[comma+1:]
		}
	}
	return base64.StdEncoding.DecodeString(payload)
}

func imageExtension(filename, contentType string) string {
	if ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext != "" {
		return strings.ToLower(ext)
	}
	if _, sub, ok := strings.Cut(contentType, "/"); ok && sub != "" {
		sub, _, _ = strings.Cut(sub, "+")
		if sub == "jpeg" {
			return defaultImageExt
		}
		return sub
	}
	return defaultImageExt
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
