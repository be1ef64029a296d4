// README: Trip history handlers (list/save/clear).
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoroute/internal/http/middleware"
	"ecoroute/internal/modules/trip"
)

type tripService interface {
	Save(ctx context.Context, uid string, cmd trip.SaveCommand) (trip.Trip, error)
	List(ctx context.Context, uid string) ([]trip.Trip, error)
	Clear(ctx context.Context, uid string) error
	Stats(ctx context.Context, uid string) (trip.Stats, error)
	Weights(ctx context.Context, uid string) (trip.Weights, error)
}

type HistoryHandler struct {
	trips tripService
}

func NewHistoryHandler(svc tripService) *HistoryHandler {
	return &HistoryHandler{trips: svc}
}

// List handles GET /api/history.
func (h *HistoryHandler) List(c *gin.Context) {
	trips, err := h.trips.List(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, trips)
}

// Save handles POST /api/history.
func (h *HistoryHandler) Save(c *gin.Context) {
	var cmd trip.SaveCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		writeError(c, http.StatusBadRequest, "ValidationError", "Invalid data format provided")
		return
	}
	uid := middleware.CallerUID(c)
	saved, err := h.trips.Save(c.Request.Context(), uid, cmd)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"message": "Trip saved successfully", "trip": saved})
}

// Clear handles DELETE /api/history.
func (h *HistoryHandler) Clear(c *gin.Context) {
	if err := h.trips.Clear(c.Request.Context(), middleware.CallerUID(c)); err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"message": "Trip history cleared successfully"})
}

// Stats handles GET /api/stats.
func (h *HistoryHandler) Stats(c *gin.Context) {
	stats, err := h.trips.Stats(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stats)
}

// Weights handles GET /api/stats/weights.
func (h *HistoryHandler) Weights(c *gin.Context) {
	w, err := h.trips.Weights(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, w)
}
