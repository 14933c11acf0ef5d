package db_models

import "time"

const (
	InquiryStatusNew  = "new"
	InquiryStatusRead = "read"
)

type Inquiry struct {
	NativeID     string
	Name         string
	Email        string
	Phone        string
	TripLocation string
	Message      string
	Date         time.Time
	Status       string
}
