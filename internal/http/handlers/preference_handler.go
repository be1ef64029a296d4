package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoroute/internal/http/middleware"
	"ecoroute/internal/modules/preference"
)

type preferenceService interface {
	Get(ctx context.Context, uid string) (preference.Preferences, error)
	Update(ctx context.Context, uid string, p preference.Preferences) (preference.Preferences, error)
}

type PreferenceHandler struct {
	prefs preferenceService
}

func NewPreferenceHandler(svc preferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefs: svc}
}

// Get handles GET /api/preferences.
func (h *PreferenceHandler) Get(c *gin.Context) {
	p, err := h.prefs.Get(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writePreferenceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

// Update handles POST /api/preferences.
func (h *PreferenceHandler) Update(c *gin.Context) {
	var in preference.Preferences
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "ValidationError", "invalid json")
		return
	}
	p, err := h.prefs.Update(c.Request.Context(), middleware.CallerUID(c), in)
	if err != nil {
		writePreferenceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}
