// README: Current weather proxy (OpenWeatherMap) with a Redis cache.
package weather

import "errors"

var (
	ErrBadRequest = errors.New("lat and lon are required")
	ErrUpstream   = errors.New("weather provider unavailable")
)

// Report mirrors the subset of the OpenWeatherMap current-weather payload the
// client renders, keeping its field names.
type Report struct {
	Name    string      `json:"name"`
	Weather []Condition `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility int   `json:"visibility"`
	Dt         int64 `json:"dt"`
}

type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
