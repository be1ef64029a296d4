package maps

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	gmaps "googlemaps.github.io/maps"
)

type googleDirectionsClient interface {
	Directions(ctx context.Context, r *gmaps.DirectionsRequest) ([]gmaps.Route, []gmaps.GeocodedWaypoint, error)
}

// GoogleDirections serves the same contract as MapboxDirections over the Google Directions API.
type GoogleDirections struct {
	client googleDirectionsClient
}

// NewGoogleDirections creates a GoogleDirections with the given API Key.
func NewGoogleDirections(apiKey string) (*GoogleDirections, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleDirections{client: client}, nil
}

func (g *GoogleDirections) Directions(ctx context.Context, req DirectionsRequest) (*DirectionsResponse, error) {
	r := &gmaps.DirectionsRequest{
		Origin:       latLngString(req.Origin.Lat, req.Origin.Lng),
		Destination:  latLngString(req.Destination.Lat, req.Destination.Lng),
		Mode:         googleMode(req.Profile),
		Alternatives: req.Alternatives,
	}
	if req.Profile == ProfileDrivingTraffic {
		r.DepartureTime = "now"
	}

	routes, _, err := g.client.Directions(ctx, r)
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return nil, fmt.Errorf("google: %w", ErrNoRoute)
		}
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("google: %w", ErrNoRoute)
	}

	out := &DirectionsResponse{Code: "Ok", Routes: make([]Route, 0, len(routes))}
	for _, gr := range routes {
		out.Routes = append(out.Routes, convertGoogleRoute(gr))
	}
	return out, nil
}

func convertGoogleRoute(gr gmaps.Route) Route {
	var rt Route
	rt.Geometry = Geometry{Type: "LineString"}
	if pts, err := gr.OverviewPolyline.Decode(); err == nil {
		for _, p := range pts {
			rt.Geometry.Coordinates = append(rt.Geometry.Coordinates, [2]float64{p.Lng, p.Lat})
		}
	}
	for _, gl := range gr.Legs {
		if gl == nil {
			continue
		}
		rt.Distance += float64(gl.Distance.Meters)
		rt.Duration += gl.Duration.Seconds()
		leg := Leg{Steps: make([]Step, 0, len(gl.Steps))}
		for _, gs := range gl.Steps {
			if gs == nil {
				continue
			}
			leg.Steps = append(leg.Steps, Step{
				Maneuver: Maneuver{Instruction: stripHTML(gs.HTMLInstructions)},
				Distance: float64(gs.Distance.Meters),
				Duration: gs.Duration.Seconds(),
			})
		}
		rt.Legs = append(rt.Legs, leg)
	}
	return rt
}

func googleMode(profile string) gmaps.Mode {
	switch profile {
	case ProfileWalking:
		return gmaps.TravelModeWalking
	case ProfileCycling:
		return gmaps.TravelModeBicycling
	default:
		return gmaps.TravelModeDriving
	}
}

func latLngString(lat, lng float64) string {
	return fmt.Sprintf("%f,%f", lat, lng)
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	return strings.TrimSpace(htmlTag.ReplaceAllString(s, ""))
}
