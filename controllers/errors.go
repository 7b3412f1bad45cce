package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"real-estate-api/services"
	"real-estate-api/utils"
)

// respondError translates a service error into the response envelope with a
// stable error code. Every sentinel kind keeps its own code; nothing is
// collapsed into a generic failure.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"

	var uploadErr *utils.FileUploadError
	switch {
	case errors.Is(err, services.ErrOracleUnavailable):
		status, code = http.StatusServiceUnavailable, "IDENTITY_PROVIDER_UNAVAILABLE"
	case errors.Is(err, services.ErrInvalidToken):
		status, code = http.StatusUnauthorized, "INVALID_TOKEN"
	case errors.Is(err, services.ErrAlreadyRegistered):
		status, code = http.StatusConflict, "ALREADY_REGISTERED"
	case errors.Is(err, services.ErrNotRegistered):
		status, code = http.StatusUnauthorized, "NOT_REGISTERED"
	case errors.Is(err, services.ErrAccountNotActive):
		status, code = http.StatusForbidden, "ACCOUNT_NOT_ACTIVE"
	case errors.Is(err, services.ErrUserNotFound):
		status, code = http.StatusNotFound, "USER_NOT_FOUND"
	case errors.Is(err, services.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, services.ErrInvalidSchedule):
		status, code = http.StatusBadRequest, "INVALID_SCHEDULE"
	case errors.Is(err, services.ErrInvalidTransition):
		status, code = http.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, services.ErrValidation):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.As(err, &uploadErr):
		status, code = http.StatusBadRequest, uploadErr.Code
	}

	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": err.Error(),
		},
	})
}

// respondValidation reports a request-binding failure
func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}
