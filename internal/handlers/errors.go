package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pandeptwidyaop/agents-rest/internal/services"
)

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrTargetNotFound),
		errors.Is(err, services.ErrAgentNotFound),
		errors.Is(err, services.ErrMissionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrOutOfBounds),
		errors.Is(err, services.ErrInvalidDirection),
		errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrTargetEliminated),
		errors.Is(err, services.ErrAgentOnMission),
		errors.Is(err, services.ErrMissionNotProposed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseID reads the :id path parameter. Ids are positive integers.
func parseID(c *gin.Context, entity string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + entity + " id"})
		return 0, false
	}
	return id, true
}

// locationRequest is the body of a pin request. Both coordinates must be
// present; a zero value is a valid coordinate.
type locationRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}
