package weather

import (
	"strings"

	"github.com/i474232898/weather-premium/internal/common"
)

// DateLayout is the calendar date format used by the provider (yyyy-MM-dd).
const DateLayout = "2006-01-02"

// Category represents a normalized high-level weather condition.
type Category string

const (
	CategoryUnknown Category = "unknown"
	CategoryClear   Category = "clear"
	CategoryCloudy  Category = "cloudy"
	CategoryRain    Category = "rain"
	CategorySnow    Category = "snow"
	CategoryStorm   Category = "storm"
	CategoryMist    Category = "mist"
)

// Location identifies the place a reading pertains to.
type Location struct {
	Name           string  `json:"name"`
	Region         string  `json:"region,omitempty"`
	Country        string  `json:"country,omitempty"`
	Lat            float64 `json:"lat,omitempty"`
	Lon            float64 `json:"lon,omitempty"`
	TzID           string  `json:"tz_id,omitempty"`
	LocaltimeEpoch int64   `json:"localtime_epoch,omitempty"`
	Localtime      string  `json:"localtime,omitempty"`
}

// Condition is the provider's textual and coded description of the sky.
type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon,omitempty"`
	Code int    `json:"code"`
}

// Category maps the free-form condition text onto a Category.
func (c Condition) Category() Category {
	text := strings.TrimSpace(c.Text)
	switch {
	case text == "":
		return CategoryUnknown
	case common.HasAny(text, "thunder", "storm"):
		return CategoryStorm
	case common.HasAny(text, "snow", "sleet", "blizzard", "ice pellets"):
		return CategorySnow
	case common.HasAny(text, "rain", "shower", "drizzle"):
		return CategoryRain
	case common.HasAny(text, "mist", "fog"):
		return CategoryMist
	case common.HasAny(text, "cloud", "overcast"):
		return CategoryCloudy
	case common.HasAny(text, "sunny", "clear"):
		return CategoryClear
	default:
		return CategoryUnknown
	}
}

// AirQuality is the pollutant block embedded in current conditions.
type AirQuality struct {
	CO           float64 `json:"co"`
	NO2          float64 `json:"no2"`
	O3           float64 `json:"o3"`
	SO2          float64 `json:"so2"`
	PM25         float64 `json:"pm2_5"`
	PM10         float64 `json:"pm10"`
	USEPAIndex   int     `json:"us-epa-index"`
	GBDEFRAIndex int     `json:"gb-defra-index"`
}

// WeatherData holds current conditions as reported by the provider.
type WeatherData struct {
	LastUpdatedEpoch int64      `json:"last_updated_epoch"`
	LastUpdated      string     `json:"last_updated"`
	TempC            float64    `json:"temp_c"`
	TempF            float64    `json:"temp_f"`
	IsDay            int        `json:"is_day"`
	Condition        Condition  `json:"condition"`
	WindMph          float64    `json:"wind_mph"`
	WindKph          float64    `json:"wind_kph"`
	WindDegree       int        `json:"wind_degree"`
	WindDir          string     `json:"wind_dir"`
	PressureMb       float64    `json:"pressure_mb"`
	PressureIn       float64    `json:"pressure_in"`
	PrecipMm         float64    `json:"precip_mm"`
	PrecipIn         float64    `json:"precip_in"`
	Humidity         int        `json:"humidity"`
	Cloud            int        `json:"cloud"`
	FeelsLikeC       float64    `json:"feelslike_c"`
	FeelsLikeF       float64    `json:"feelslike_f"`
	VisKm            float64    `json:"vis_km"`
	VisMiles         float64    `json:"vis_miles"`
	UV               float64    `json:"uv"`
	GustMph          float64    `json:"gust_mph"`
	GustKph          float64    `json:"gust_kph"`
	AirQuality       AirQuality `json:"air_quality"`
}

// Day is the per-day aggregate of a forecast or history entry.
type Day struct {
	MaxTempC  float64   `json:"maxtemp_c"`
	MinTempC  float64   `json:"mintemp_c"`
	AvgTempC  float64   `json:"avgtemp_c"`
	Condition Condition `json:"condition"`
}

// ForecastDay pairs a calendar date (yyyy-MM-dd) with its Day.
type ForecastDay struct {
	Date string `json:"date"`
	Day  Day    `json:"day"`
}

// Forecast is an ordered sequence of days, in provider order.
type Forecast struct {
	Days []ForecastDay `json:"forecastday"`
}

// CurrentWeather is the result of a current conditions lookup.
type CurrentWeather struct {
	Location Location    `json:"location"`
	Current  WeatherData `json:"current"`
}

// HistoricalWeather is the result of a single-day history lookup. Its
// Forecast normally holds exactly one day matching the requested date.
type HistoricalWeather struct {
	Location Location `json:"location"`
	Forecast Forecast `json:"forecast"`
}

// Day returns the first forecast day, if any.
func (h *HistoricalWeather) Day() (ForecastDay, bool) {
	if h == nil || len(h.Forecast.Days) == 0 {
		return ForecastDay{}, false
	}
	return h.Forecast.Days[0], true
}

// ForecastWeather is the result of a forward-looking forecast lookup.
type ForecastWeather struct {
	Location Location    `json:"location"`
	Current  WeatherData `json:"current"`
	Forecast Forecast    `json:"forecast"`
}
