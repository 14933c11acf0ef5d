package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"hibiscus/internal/models/db_models"
	"hibiscus/internal/models/request_models"
	"hibiscus/internal/models/response_models"
	"hibiscus/internal/services"
	"hibiscus/pkg/utils"
)

type InquiryController struct {
	inquiryService services.InquiryServiceInterface
}

func NewInquiryController(inquiryService services.InquiryServiceInterface) *InquiryController {
	return &InquiryController{
		inquiryService: inquiryService,
	}
}

// ListInquiries godoc
// @Summary List inquiries
// @Description Newest first.
// @Tags Inquiries
// @Produce json
// @Success 200 {array} response_models.InquiryResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/inquiries [get]
func (i *InquiryController) ListInquiries(c *gin.Context) {
	inquiries, err := i.inquiryService.ListInquiries(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response_models.NewInquiryResponses(inquiries))
}

// CreateInquiry godoc
// @Summary Submit an inquiry
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param request body request_models.CreateInquiryRequest true "Contact form"
// @Success 201 {object} response_models.InquiryResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Router /api/inquiries [post]
func (i *InquiryController) CreateInquiry(c *gin.Context) {
	var req request_models.CreateInquiryRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	inquiry, err := i.inquiryService.CreateInquiry(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response_models.NewInquiryResponse(*inquiry))
}

// UpdateInquiryStatus godoc
// @Summary Mark an inquiry read
// @Description Status may only move to "read". An empty body also marks the inquiry read.
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param id path string true "Inquiry id"
// @Param request body request_models.UpdateInquiryStatusRequest false "New status"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/inquiries/{id} [patch]
func (i *InquiryController) UpdateInquiryStatus(c *gin.Context) {
	var req request_models.UpdateInquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Status != "" && req.Status != db_models.InquiryStatusRead {
		utils.HandleServiceError(c, utils.ErrInvalidStatus)
		return
	}

	if err := i.inquiryService.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, nil)
}

// DeleteInquiry godoc
// @Summary Delete an inquiry
// @Tags Inquiries
// @Produce json
// @Param id path string true "Inquiry id"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/inquiries/{id} [delete]
func (i *InquiryController) DeleteInquiry(c *gin.Context) {
	if err := i.inquiryService.DeleteInquiry(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, nil)
}
