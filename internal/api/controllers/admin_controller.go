package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"hibiscus/internal/models/request_models"
	"hibiscus/internal/models/response_models"
	"hibiscus/internal/services"
	"hibiscus/pkg/utils"
)

type AdminController struct {
	adminService services.AdminServiceInterface
}

func NewAdminController(adminService services.AdminServiceInterface) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// Login godoc
// @Summary Admin login
// @Description Checks the admin credentials and returns the current passwordVersion.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Credentials"
// @Success 200 {object} response_models.LoginResponse
// @Failure 401 {object} response_models.LoginResponse
// @Failure 500 {object} response_models.LoginResponse
// @Router /api/admin/login [post]
func (a *AdminController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, response_models.LoginResponse{Message: "Invalid request format"})
		return
	}

	result, err := a.adminService.Login(c.Request.Context(), req)
	switch {
	case errors.Is(err, utils.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, response_models.LoginResponse{Message: "Invalid credentials"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, response_models.LoginResponse{Message: "Login failed"})
		return
	}

	c.JSON(http.StatusOK, response_models.LoginResponse{
		Success:         true,
		Message:         "Login successful",
		PasswordVersion: result.PasswordVersion,
		Token:           result.Token,
	})
}

// Verify godoc
// @Summary Verify an admin session
// @Description Valid only while the submitted passwordVersion equals the stored one.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.VerifyRequest true "Session version"
// @Success 200 {object} response_models.VerifyResponse
// @Failure 401 {object} response_models.VerifyResponse
// @Failure 500 {object} response_models.VerifyResponse
// @Router /api/admin/verify [post]
func (a *AdminController) Verify(c *gin.Context) {
	var req request_models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, response_models.VerifyResponse{Message: "Invalid request format"})
		return
	}

	version, err := a.adminService.Verify(c.Request.Context(), int(req.PasswordVersion))
	switch {
	case errors.Is(err, utils.ErrAdminNotFound):
		c.JSON(http.StatusUnauthorized, response_models.VerifyResponse{Message: "No admin found"})
		return
	case errors.Is(err, utils.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, response_models.VerifyResponse{Message: "Session expired - password was changed"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, response_models.VerifyResponse{Message: "Verification failed"})
		return
	}

	c.JSON(http.StatusOK, response_models.VerifyResponse{Valid: true, PasswordVersion: version})
}

// Reset godoc
// @Summary Reset admin credentials
// @Description Restores the default credentials and bumps passwordVersion, invalidating every session.
// @Tags Admin
// @Produce json
// @Success 200 {object} response_models.ResetResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/admin/reset [post]
func (a *AdminController) Reset(c *gin.Context) {
	version, err := a.adminService.Reset(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to reset admin")
		return
	}

	c.JSON(http.StatusOK, response_models.ResetResponse{
		Success:         true,
		Message:         "Admin credentials reset to default. All sessions invalidated.",
		PasswordVersion: version,
	})
}

// Check godoc
// @Summary Check for an admin record
// @Tags Admin
// @Produce json
// @Success 200 {object} response_models.AdminCheckResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/admin/check [get]
func (a *AdminController) Check(c *gin.Context) {
	exists, err := a.adminService.Exists(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response_models.AdminCheckResponse{Exists: exists})
}
