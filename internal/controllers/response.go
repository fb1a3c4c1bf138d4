package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/piggybank/backend/internal/auth"
	"github.com/piggybank/backend/internal/models"
)

// Response is the envelope every API endpoint answers with. The mobile
// client switches on the success flag and shows the message to the
// user.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondData(c *gin.Context, code int, message string, data any) {
	c.JSON(code, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError maps the error to its HTTP status and writes the failure
// envelope.
func respondError(c *gin.Context, err error) {
	c.JSON(status(err), Response{
		Success: false,
		Message: err.Error(),
	})
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrKidHasTransactions):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// guardianID returns the authenticated guardian's ID or answers with
// 401 if the middleware did not run.
func guardianID(c *gin.Context) (uuid.UUID, bool) {
	guardian, ok := auth.GuardianID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{
			Success: false,
			Message: auth.ErrMissingToken.Error(),
		})
		return uuid.Nil, false
	}

	return guardian, true
}
