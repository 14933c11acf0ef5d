package db_models

import "time"

type Image struct {
	NativeID         string
	Filename         string
	OriginalFilename string
	Mimetype         string
	Data             string
	Size             int64
	UploadedAt       time.Time
}
