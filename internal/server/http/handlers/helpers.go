package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storeadmin/internal/domain/errors"
	"github.com/polkiloo/storeadmin/internal/domain/model"
	"github.com/polkiloo/storeadmin/internal/server/http/dto"
	"github.com/polkiloo/storeadmin/internal/server/http/middleware"
)

// CurrentAdmin extracts the authenticated admin subject from context.
func CurrentAdmin(c *gin.Context) string {
	val, ok := c.Get(middleware.AdminContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrLocationConflict),
		errors.Is(err, domainErrors.ErrLocationsExhausted):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidInput),
		errors.Is(err, domainErrors.ErrInvalidLocationCode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError maps domain errors to HTTP statuses. Internal errors are
// recorded on the context for the request logger and hidden from the client.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// queryInt reads an optional positive integer query parameter.
func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func toWarnings(warnings []model.Warning) []dto.Warning {
	result := make([]dto.Warning, 0, len(warnings))
	for _, w := range warnings {
		result = append(result, dto.Warning{Effect: w.Effect, Message: w.Err.Error()})
	}
	return result
}
