package maps

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmaps "googlemaps.github.io/maps"

	"ecoroute/internal/types"
)

type stubGeocodingClient struct {
	results []gmaps.GeocodingResult
}

func (s *stubGeocodingClient) Geocode(_ context.Context, _ *gmaps.GeocodingRequest) ([]gmaps.GeocodingResult, error) {
	return s.results, nil
}

func geocodingResult(id, addr string, lat, lng float64) gmaps.GeocodingResult {
	var r gmaps.GeocodingResult
	r.PlaceID = id
	r.FormattedAddress = addr
	r.Geometry.Location = gmaps.LatLng{Lat: lat, Lng: lng}
	return r
}

func TestGeocoder_SortsByProximity(t *testing.T) {
	g := &Geocoder{client: &stubGeocodingClient{results: []gmaps.GeocodingResult{
		geocodingResult("far", "Central Park, Far City", 29.0, 77.0),
		geocodingResult("near", "Central Park, Near Town", 28.01, 77.0),
		geocodingResult("near", "Central Park, Near Town", 28.01, 77.0),
	}}}

	places, err := g.Search(context.Background(), "central park", &types.Coordinate{Lng: 77.0, Lat: 28.0})
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "near", places[0].PlaceID)
	assert.Equal(t, "Central Park", places[0].Name)
	require.NotNil(t, places[0].DistanceKm)
	assert.Less(t, *places[0].DistanceKm, *places[1].DistanceKm)
}

func TestGeocoder_EmptyQuery(t *testing.T) {
	g := &Geocoder{client: &stubGeocodingClient{}}
	_, err := g.Search(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name      string
		a, b      types.Coordinate
		wantKm    float64
		tolerance float64
	}{
		{"same point", types.Coordinate{Lng: 121.565, Lat: 25.033}, types.Coordinate{Lng: 121.565, Lat: 25.033}, 0, 0.001},
		{"0.1 degree east at 28N", types.Coordinate{Lng: 77.0, Lat: 28.0}, types.Coordinate{Lng: 77.1, Lat: 28.0}, 9.82, 0.1},
		{"New York to Los Angeles", types.Coordinate{Lng: -74.0060, Lat: 40.7128}, types.Coordinate{Lng: -118.2437, Lat: 34.0522}, 3944, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
			if back := HaversineKm(tt.b, tt.a); math.Abs(back-got) > 1e-9 {
				t.Errorf("not symmetric: %f vs %f", got, back)
			}
		})
	}
}
