// README: Weather and geocoding lookup handlers.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ecoroute/internal/maps"
	"ecoroute/internal/modules/weather"
	"ecoroute/internal/types"
)

type weatherService interface {
	Current(ctx context.Context, lat, lon float64) (*weather.Report, error)
}

type placeSearcher interface {
	Search(ctx context.Context, query string, proximity *types.Coordinate) ([]maps.Place, error)
}

type WeatherHandler struct {
	weather weatherService
}

func NewWeatherHandler(svc weatherService) *WeatherHandler {
	return &WeatherHandler{weather: svc}
}

type GeocodeHandler struct {
	places placeSearcher
}

func NewGeocodeHandler(p placeSearcher) *GeocodeHandler {
	return &GeocodeHandler{places: p}
}

// Current handles GET /api/weather?lat=..&lon=..
func (h *WeatherHandler) Current(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeError(c, http.StatusBadRequest, "ValidationError", "Latitude and longitude are required")
		return
	}
	report, err := h.weather.Current(c.Request.Context(), lat, lon)
	if err != nil {
		writeWeatherError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, report)
}

// Search handles GET /api/geocode?q=..[&proximity=lng,lat]
func (h *GeocodeHandler) Search(c *gin.Context) {
	var proximity *types.Coordinate
	if raw := c.Query("proximity"); raw != "" {
		p, ok := parseLngLat(raw)
		if !ok {
			writeError(c, http.StatusBadRequest, "ValidationError", "proximity must be lng,lat")
			return
		}
		proximity = &p
	}
	places, err := h.places.Search(c.Request.Context(), c.Query("q"), proximity)
	if err != nil {
		writeGeocodeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"places": places})
}

func parseLngLat(raw string) (types.Coordinate, bool) {
	lngStr, latStr, ok := strings.Cut(raw, ",")
	if !ok {
		return types.Coordinate{}, false
	}
	lng, err1 := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	lat, err2 := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	c := types.Coordinate{Lng: lng, Lat: lat}
	return c, err1 == nil && err2 == nil && c.Valid()
}
