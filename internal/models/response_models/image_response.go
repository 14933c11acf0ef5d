package response_models

type UploadImageResponse struct {
	Success   bool   `json:"success"`
	ImagePath string `json:"imagePath"`
	Filename  string `json:"filename"`
	ID        string `json:"id"`
}

type UploadErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
