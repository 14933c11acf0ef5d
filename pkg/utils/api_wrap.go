package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondSuccess writes {"success": true} merged with fields.
func RespondSuccess(c *gin.Context, code int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(code, body)
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		Error:   message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service sentinel errors to HTTP responses. Anything
// unrecognised is logged and reported as a bare 500.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTourNotFound):
		RespondError(c, http.StatusNotFound, "Tour not found")
	case errors.Is(err, ErrDuplicateTourID):
		RespondError(c, http.StatusConflict, "A tour with this id already exists")
	case errors.Is(err, ErrInquiryNotFound):
		RespondError(c, http.StatusNotFound, "Inquiry not found")
	case errors.Is(err, ErrInvalidInquiryID):
		RespondError(c, http.StatusBadRequest, "Invalid inquiry ID")
	case errors.Is(err, ErrInvalidStatus):
		RespondError(c, http.StatusBadRequest, "Status can only be set to read")
	case errors.Is(err, ErrImageNotFound):
		RespondError(c, http.StatusNotFound, "Image not found")
	case errors.Is(err, ErrInvalidImageID):
		RespondError(c, http.StatusBadRequest, "Invalid image ID")
	case errors.Is(err, ErrRateLimited):
		RespondError(c, http.StatusTooManyRequests, "Too many requests, please try again later")
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unhandled service error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
