package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hibiscus/internal/models/request_models"
	"hibiscus/internal/models/response_models"
	"hibiscus/internal/services"
	"hibiscus/pkg/utils"
)

type TourController struct {
	tourService services.TourServiceInterface
}

func NewTourController(tourService services.TourServiceInterface) *TourController {
	return &TourController{
		tourService: tourService,
	}
}

// ListTours godoc
// @Summary List tours
// @Description Returns every tour. An empty catalog is seeded with the default tours first.
// @Tags Tours
// @Produce json
// @Success 200 {array} response_models.TourResponse
// @Router /api/tours [get]
func (t *TourController) ListTours(c *gin.Context) {
	tours := t.tourService.ListTours(c.Request.Context())
	c.JSON(http.StatusOK, response_models.NewTourResponses(tours))
}

// CreateTour godoc
// @Summary Create a tour
// @Description Creates a tour. When id is omitted one is generated as tour-<unix millis>.
// @Tags Tours
// @Accept json
// @Produce json
// @Param request body request_models.CreateTourRequest true "Tour payload"
// @Success 201 {object} response_models.TourResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/tours [post]
func (t *TourController) CreateTour(c *gin.Context) {
	var req request_models.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	tour, err := t.tourService.CreateTour(c.Request.Context(), req.ToModel())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response_models.NewTourResponse(*tour))
}

// GetTour godoc
// @Summary Get a tour
// @Description Looks the tour up by its custom id, then by its database id.
// @Tags Tours
// @Produce json
// @Param id path string true "Tour id"
// @Success 200 {object} response_models.TourResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/tours/{id} [get]
func (t *TourController) GetTour(c *gin.Context) {
	tour, err := t.tourService.GetTour(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response_models.NewTourResponse(*tour))
}

// UpdateTour godoc
// @Summary Update a tour
// @Description Merges the given fields into the tour. Fields left out are unchanged.
// @Tags Tours
// @Accept json
// @Produce json
// @Param id path string true "Tour id"
// @Param request body request_models.PatchTourRequest true "Fields to change"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/tours/{id} [patch]
func (t *TourController) UpdateTour(c *gin.Context) {
	var req request_models.PatchTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := t.tourService.UpdateTour(c.Request.Context(), c.Param("id"), req.ToPatch()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, nil)
}

// DeleteTour godoc
// @Summary Delete a tour
// @Tags Tours
// @Produce json
// @Param id path string true "Tour id"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/tours/{id} [delete]
func (t *TourController) DeleteTour(c *gin.Context) {
	if err := t.tourService.DeleteTour(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, nil)
}
