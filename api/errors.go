package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voyago/tripengine/internal/booking"
	"github.com/voyago/tripengine/internal/pricing"
	"github.com/voyago/tripengine/internal/remote"
	"github.com/voyago/tripengine/internal/trips"
)

// writeError maps the engine's error taxonomy onto responses: validation
// failures become 400s shown inline next to the field, remote rejections
// become a 502 retry banner, and anything else is treated as a network
// failure with local state untouched.
func writeError(c *gin.Context, err error) {
	var statusErr *remote.StatusError

	switch {
	case errors.Is(err, trips.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrInvalidInput),
		errors.Is(err, trips.ErrNoActivities),
		errors.Is(err, trips.ErrUnknownActivity),
		errors.Is(err, trips.ErrNotCancelled):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrNoActiveSession),
		errors.Is(err, booking.ErrDateUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &statusErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "the trip service rejected the request, please retry", "detail": statusErr.Message})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not reach the trip service, please retry"})
	}
}
