package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/piggybank/backend/internal/httputil"
)

// parseKidID parses the kid ID from the URL parameters.
func parseKidID(c *gin.Context) (uuid.UUID, error) {
	parsed, err := uuid.Parse(c.Param("kidId"))
	if err != nil {
		return uuid.Nil, httputil.ErrInvalidUUID
	}

	return parsed, nil
}
