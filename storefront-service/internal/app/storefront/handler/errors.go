package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hamperhouse/pkg/metrics"
	apiclient "hamperhouse/storefront-service/internal/app/storefront/infrastructure/http"
	"hamperhouse/storefront-service/internal/app/storefront/service"
)

// respondError переводит ошибки сервисов в HTTP ответы
func respondError(c *gin.Context, err error, fallback string) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Unprocessable Entity",
			"fields": verr.Fields,
		})
	case service.IsNotFound(err), apiclient.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrSubcategoryMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Unprocessable Entity",
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrConfirmationRequired):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "Deletion must be confirmed with confirm=true",
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Invalid username or password",
		})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Bad Gateway",
			"message": fallback,
		})
	}
}

// respondPageError - то же для страниц, с учетом метрики not found
func respondPageError(c *gin.Context, page string, err error) {
	if service.IsNotFound(err) {
		metrics.NotFoundPages.WithLabelValues(page).Inc()
	}
	respondError(c, err, "Failed to load page")
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Bad Request",
		"message": message,
	})
}
