// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoroute/internal/maps"
	"ecoroute/internal/modules/coach"
	"ecoroute/internal/modules/planner"
	"ecoroute/internal/modules/preference"
	"ecoroute/internal/modules/trip"
	"ecoroute/internal/modules/weather"
)

type errorResponse struct {
	Error    string                `json:"error"`
	Kind     string                `json:"kind"`
	Details  []string              `json:"details,omitempty"`
	Failures []planner.ModeFailure `json:"failures,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, kind, msg string) {
	writeJSON(c, status, errorResponse{Error: msg, Kind: kind})
}

// Unavailable answers 503 for a feature whose backing service is not configured.
func Unavailable(feature string) gin.HandlerFunc {
	return func(c *gin.Context) {
		writeError(c, http.StatusServiceUnavailable, "Unavailable", feature+" is not configured")
	}
}

func writeInternal(c *gin.Context, err error) {
	_ = c.Error(err)
	writeError(c, http.StatusInternalServerError, "InternalError", "internal error")
}

func writePlanError(c *gin.Context, err error) {
	var perr *planner.PlanError
	if !errors.As(err, &perr) {
		writeInternal(c, err)
		return
	}
	_ = c.Error(err)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, planner.ErrValidation), errors.Is(err, planner.ErrNoValidModes):
		status = http.StatusBadRequest
	case errors.Is(err, planner.ErrNoRoutesFound):
		status = http.StatusNotFound
	case errors.Is(err, planner.ErrProviderUnavailable):
		status = http.StatusBadGateway
	}
	writeJSON(c, status, errorResponse{
		Error:    perr.Message,
		Kind:     planner.KindName(err),
		Failures: perr.Failures,
	})
}

func writeTripError(c *gin.Context, err error) {
	var verr *trip.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(c, http.StatusBadRequest, errorResponse{
			Error:   "Validation failed",
			Kind:    "ValidationError",
			Details: verr.Details,
		})
	case errors.Is(err, trip.ErrNotFound):
		writeError(c, http.StatusNotFound, "NotFound", err.Error())
	default:
		writeInternal(c, err)
	}
}

func writePreferenceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, preference.ErrInvalid):
		writeError(c, http.StatusBadRequest, "ValidationError", err.Error())
	default:
		writeInternal(c, err)
	}
}

func writeWeatherError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, weather.ErrBadRequest):
		writeError(c, http.StatusBadRequest, "ValidationError", err.Error())
	case errors.Is(err, weather.ErrUpstream):
		_ = c.Error(err)
		writeError(c, http.StatusBadGateway, "UpstreamError", "Failed to fetch weather data")
	default:
		writeInternal(c, err)
	}
}

func writeGeocodeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, maps.ErrEmptyQuery):
		writeError(c, http.StatusBadRequest, "ValidationError", err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusBadGateway, "UpstreamError", "Failed to geocode location")
	}
}

func writeCoachError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, coach.ErrInsufficientTokens):
		writeError(c, http.StatusTooManyRequests, "QuotaExceeded", err.Error())
	default:
		writeInternal(c, err)
	}
}
