// Package handlers contains HTTP request handlers for the Gharwa backend.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/satishydv/gharwa-backend/internal/service"
	"github.com/sirupsen/logrus"
)

// respondError writes the uniform error body.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondServiceError maps service errors onto HTTP statuses. Unexpected
// errors are logged server-side and answered with the generic message only.
func respondServiceError(c *gin.Context, log *logrus.Logger, err error, notFoundMsg, genericMsg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, service.ErrUserExists):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		log.WithError(err).Error(genericMsg)
		respondError(c, http.StatusInternalServerError, genericMsg)
	}
}
