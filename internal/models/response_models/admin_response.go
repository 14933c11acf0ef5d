package response_models

type LoginResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	PasswordVersion int    `json:"passwordVersion,omitempty"`
	Token           string `json:"token,omitempty"`
}

type VerifyResponse struct {
	Valid           bool   `json:"valid"`
	PasswordVersion int    `json:"passwordVersion,omitempty"`
	Message         string `json:"message,omitempty"`
}

type ResetResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	PasswordVersion int    `json:"passwordVersion"`
}

type AdminCheckResponse struct {
	Exists bool `json:"exists"`
}
