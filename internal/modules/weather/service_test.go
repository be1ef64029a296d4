package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "name": "Lisbon",
  "weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}],
  "main": {"temp": 21.5, "feels_like": 21.1, "temp_min": 19, "temp_max": 23, "humidity": 60, "pressure": 1015},
  "wind": {"speed": 3.6, "deg": 320},
  "clouds": {"all": 0},
  "visibility": 10000,
  "dt": 1760000000
}`

func TestClient_Current(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{"lat": q.Get("lat"), "lon": q.Get("lon"), "appid": q.Get("appid"), "units": q.Get("units")}
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()

	r, err := NewClient(srv.URL+"/", "key123").Current(context.Background(), 38.72, -9.14)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"lat": "38.72", "lon": "-9.14", "appid": "key123", "units": "metric"}, gotQuery)
	assert.Equal(t, "Lisbon", r.Name)
	assert.Equal(t, 21.5, r.Main.Temp)
	require.Len(t, r.Weather, 1)
	assert.Equal(t, "clear sky", r.Weather[0].Description)
}

func TestClient_UpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") == "bad" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "bad").Current(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = NewClient(srv.URL, "ok").Current(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrUpstream)
}

type countingSource struct{ calls int }

func (c *countingSource) Current(context.Context, float64, float64) (*Report, error) {
	c.calls++
	return &Report{Name: "x"}, nil
}

func TestService_RejectsOutOfRange(t *testing.T) {
	src := &countingSource{}
	svc := NewService(src, nil, 0, nil)
	_, err := svc.Current(context.Background(), 91, 0)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Zero(t, src.calls)

	r, err := svc.Current(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.Equal(t, "x", r.Name)
	assert.Equal(t, 1, src.calls)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "weather:38.72,-9.14", cacheKey(38.7223, -9.1393))
}
