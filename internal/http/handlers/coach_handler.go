// README: Eco coach handler (token-guarded Gemini tips).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ecoroute/internal/http/middleware"
	"ecoroute/internal/modules/coach"
)

type coachService interface {
	Tip(ctx context.Context, uid string) (*coach.Tip, error)
}

type CoachHandler struct {
	coach coachService
}

func NewCoachHandler(svc coachService) *CoachHandler {
	return &CoachHandler{coach: svc}
}

// Tip handles POST /api/coach/tip.
func (h *CoachHandler) Tip(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	tip, err := h.coach.Tip(ctx, middleware.CallerUID(c))
	if err != nil {
		writeCoachError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, tip)
}
