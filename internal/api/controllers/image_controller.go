package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hibiscus/internal/models/request_models"
	"hibiscus/internal/models/response_models"
	"hibiscus/internal/services"
	"hibiscus/pkg/utils"
)

type ImageController struct {
	imageService services.ImageServiceInterface
}

func NewImageController(imageService services.ImageServiceInterface) *ImageController {
	return &ImageController{
		imageService: imageService,
	}
}

// UploadImage godoc
// @Summary Upload an image
// @Description Accepts a base64 data URL of at most 10MB decoded.
// @Tags Images
// @Accept json
// @Produce json
// @Param request body request_models.UploadImageRequest true "Image payload"
// @Success 200 {object} response_models.UploadImageResponse
// @Failure 400 {object} response_models.UploadErrorResponse
// @Failure 500 {object} response_models.UploadErrorResponse
// @Router /api/upload/image [post]
func (i *ImageController) UploadImage(c *gin.Context) {
	var req request_models.UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		uploadError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	image, err := i.imageService.StoreImage(c.Request.Context(), req)
	switch {
	case errors.Is(err, utils.ErrMissingImageData):
		uploadError(c, http.StatusBadRequest, "No image data provided")
		return
	case errors.Is(err, utils.ErrInvalidImageFormat):
		uploadError(c, http.StatusBadRequest, "Invalid image format")
		return
	case errors.Is(err, utils.ErrImageTooLarge):
		uploadError(c, http.StatusBadRequest, "File too large. Maximum size is 10MB.")
		return
	case err != nil:
		uploadError(c, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	c.JSON(http.StatusOK, response_models.UploadImageResponse{
		Success:   true,
		ImagePath: services.ImagePath(image.NativeID),
		Filename:  image.Filename,
		ID:        image.NativeID,
	})
}

func uploadError(c *gin.Context, code int, message string) {
	c.JSON(code, response_models.UploadErrorResponse{Success: false, Error: message})
}

// GetImage godoc
// @Summary Fetch an uploaded image
// @Description Returns the raw image bytes with a long-lived immutable cache header.
// @Tags Images
// @Produce octet-stream
// @Param id path string true "Image id"
// @Success 200 {file} binary
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/images/{id} [get]
func (i *ImageController) GetImage(c *gin.Context) {
	payload, err := i.imageService.RetrieveImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, utils.ErrDatabaseError) {
			utils.RespondError(c, http.StatusInternalServerError, "Failed to retrieve image")
			return
		}
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Cache-Control", services.ImageCacheDirective)
	c.Data(http.StatusOK, payload.ContentType, payload.Data)
}
