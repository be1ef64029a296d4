package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gmaps "googlemaps.github.io/maps"

	"ecoroute/internal/types"
)

var ErrEmptyQuery = errors.New("empty geocoding query")

const maxPlaces = 5

type geocodingClient interface {
	Geocode(ctx context.Context, r *gmaps.GeocodingRequest) ([]gmaps.GeocodingResult, error)
}

// Place is a geocoded candidate for origin or destination input.
type Place struct {
	Name       string           `json:"name"`
	Address    string           `json:"address"`
	PlaceID    string           `json:"placeId"`
	Coordinate types.Coordinate `json:"coordinate"`
	DistanceKm *float64         `json:"distanceKm,omitempty"`
}

func (p Place) Waypoint() types.Waypoint {
	return types.Waypoint{Name: p.Name, Coordinate: p.Coordinate}
}

// Geocoder resolves free-text locations through the Google Geocoding API.
type Geocoder struct {
	client geocodingClient
}

// NewGeocoder creates a Geocoder with the given API Key.
func NewGeocoder(apiKey string) (*Geocoder, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Geocoder{client: client}, nil
}

// Search returns up to five places for query. When proximity is set, results
// are ordered by distance from it.
func (g *Geocoder) Search(ctx context.Context, query string, proximity *types.Coordinate) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	resp, err := g.client.Geocode(ctx, &gmaps.GeocodingRequest{Address: query})
	if err != nil {
		return nil, fmt.Errorf("geocoding api error: %w", err)
	}

	seen := make(map[string]struct{}, len(resp))
	places := make([]Place, 0, len(resp))
	for _, r := range resp {
		if _, dup := seen[r.PlaceID]; dup && r.PlaceID != "" {
			continue
		}
		seen[r.PlaceID] = struct{}{}

		p := Place{
			Name:       placeName(r),
			Address:    r.FormattedAddress,
			PlaceID:    r.PlaceID,
			Coordinate: types.Coordinate{Lng: r.Geometry.Location.Lng, Lat: r.Geometry.Location.Lat},
		}
		if proximity != nil {
			d := HaversineKm(*proximity, p.Coordinate)
			p.DistanceKm = &d
		}
		places = append(places, p)
	}

	if proximity != nil {
		sortByDistance(places, func(p Place) float64 { return *p.DistanceKm })
	}
	if len(places) > maxPlaces {
		places = places[:maxPlaces]
	}
	return places, nil
}

func placeName(r gmaps.GeocodingResult) string {
	if len(r.AddressComponents) > 0 && r.AddressComponents[0].LongName != "" {
		return r.AddressComponents[0].LongName
	}
	name, _, _ := strings.Cut(r.FormattedAddress, ",")
	return strings.TrimSpace(name)
}
