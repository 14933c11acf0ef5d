package request_models

type UploadImageRequest struct {
	ImageData string `json:"imageData"`
	Filename  string `json:"filename"`
	Mimetype  string `json:"mimetype"`
}
