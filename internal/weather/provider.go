package weather

import (
	"context"
	"time"
)

// Provider abstracts the external weather API.
//
// Every lookup returns a nil result with a nil error when the provider has no
// usable data for the query (non-success status, empty or malformed body).
// A non-nil error is only returned when ctx is done.
type Provider interface {
	Current(ctx context.Context, city string) (*CurrentWeather, error)
	Historical(ctx context.Context, city string, date time.Time) (*HistoricalWeather, error)
	Forecast(ctx context.Context, city string) (*ForecastWeather, error)
}
