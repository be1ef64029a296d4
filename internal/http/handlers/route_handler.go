// README: Route planning handler.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"ecoroute/internal/http/middleware"
	"ecoroute/internal/modules/planner"
)

type routePlanner interface {
	Plan(ctx context.Context, uid string, req planner.PlanRequest) (*planner.Plan, error)
}

type RouteHandler struct {
	planner routePlanner
}

func NewRouteHandler(p routePlanner) *RouteHandler {
	return &RouteHandler{planner: p}
}

// HeaderRouteFailures lists the modes that produced no candidates on a
// successful plan, comma separated.
const HeaderRouteFailures = "X-Route-Failures"

// Plan handles POST /api/route. The body is the ranked candidate array.
func (h *RouteHandler) Plan(c *gin.Context) {
	var req planner.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "ValidationError", "invalid json")
		return
	}

	plan, err := h.planner.Plan(c.Request.Context(), middleware.CallerUID(c), req)
	if err != nil {
		writePlanError(c, err)
		return
	}

	if len(plan.Failures) > 0 {
		modes := lo.Map(plan.Failures, func(f planner.ModeFailure, _ int) string { return string(f.Mode) })
		c.Header(HeaderRouteFailures, strings.Join(lo.Uniq(modes), ","))
	}
	writeJSON(c, http.StatusOK, plan.Routes)
}
