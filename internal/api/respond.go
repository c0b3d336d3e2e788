package api

import (
	"net/http" // HTTP status codes

	"hbnb/internal/domain"     // Error taxonomy
	"hbnb/internal/facade"     // Actor type
	"hbnb/internal/middleware" // Caller identity

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// statusFor maps a domain error kind to its HTTP status
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error. Server-side failures are logged
// and reported with the generic fallback message instead of the cause.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"route":  c.FullPath(),
			"error":  err.Error(),
		}).Error(fallback)
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// requireActor returns the caller or writes 401 and reports false
func requireActor(c *gin.Context) (actor facade.Actor, ok bool) {
	actor, ok = middleware.CurrentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return actor, ok
}
