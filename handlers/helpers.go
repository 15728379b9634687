package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookly/services/booking"
)

// writeServiceError maps a booking.ServiceError onto the HTTP response
// the booking form and admin console expect.
func writeServiceError(c *gin.Context, err error) {
	var svcErr *booking.ServiceError
	if !errors.As(err, &svcErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	switch svcErr.Code {
	case booking.CodeValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": svcErr.Message, "fields": svcErr.Fields})
	case booking.CodeConflict:
		c.JSON(http.StatusConflict, gin.H{"error": svcErr.Message})
	case booking.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": svcErr.Message})
	case booking.CodeBlocked:
		c.JSON(http.StatusForbidden, gin.H{"error": svcErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": svcErr.Message})
	}
}
