package utils

import "errors"

var (
	ErrTourNotFound       = errors.New("tour not found")
	ErrDuplicateTourID    = errors.New("tour id already exists")
	ErrInquiryNotFound    = errors.New("inquiry not found")
	ErrInvalidInquiryID   = errors.New("invalid inquiry id")
	ErrInvalidStatus      = errors.New("invalid inquiry status")
	ErrImageNotFound      = errors.New("image not found")
	ErrInvalidImageID     = errors.New("invalid image id")
	ErrMissingImageData   = errors.New("no image data provided")
	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrImageTooLarge      = errors.New("image too large")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("no admin found")
	ErrSessionExpired     = errors.New("session expired")
	ErrRateLimited        = errors.New("too many requests")
	ErrDatabaseError      = errors.New("database error")
)
