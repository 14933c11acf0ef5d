package request_models

// CreateInquiryRequest is accepted as submitted; contact details are not
// validated.
type CreateInquiryRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	TripLocation string `json:"tripLocation"`
	Message      string `json:"message"`
}

type UpdateInquiryStatusRequest struct {
	Status string `json:"status"`
}
