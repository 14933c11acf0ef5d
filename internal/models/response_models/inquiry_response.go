package response_models

import (
	"hibiscus/internal/models/db_models"
	"hibiscus/pkg/utils"
)

type InquiryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	TripLocation string `json:"tripLocation"`
	Message      string `json:"message"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

func NewInquiryResponse(i db_models.Inquiry) InquiryResponse {
	return InquiryResponse{
		ID:           i.NativeID,
		Name:         i.Name,
		Email:        i.Email,
		Phone:        i.Phone,
		TripLocation: i.TripLocation,
		Message:      i.Message,
		Date:         utils.FormatISO(i.Date),
		Status:       i.Status,
	}
}

func NewInquiryResponses(inquiries []db_models.Inquiry) []InquiryResponse {
	out := make([]InquiryResponse, 0, len(inquiries))
	for _, i := range inquiries {
		out = append(out, NewInquiryResponse(i))
	}
	return out
}
