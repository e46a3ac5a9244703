package home

import (
	"context"
	"log"

	"github.com/i474232898/weather-premium/internal/account"
	"github.com/i474232898/weather-premium/internal/common"
	"github.com/i474232898/weather-premium/internal/weather"
)

// WeatherSource is the subset of weather.Service the home view reads from.
type WeatherSource interface {
	Current(ctx context.Context, city string) (*weather.CurrentWeather, error)
	PastWeek(ctx context.Context, city string) ([]*weather.HistoricalWeather, error)
}

// View is the home page payload. Fields for data the provider could not
// supply are nil.
type View struct {
	CurrentLocation        string                  `json:"currentLocation"`
	CurrentLocationWeather *weather.CurrentWeather `json:"currentLocationWeather"`
	Premium                bool                    `json:"premium"`

	City     string                       `json:"city,omitempty"`
	Weather  *weather.CurrentWeather      `json:"weather,omitempty"`
	PastWeek []*weather.HistoricalWeather `json:"pastWeek,omitempty"`
	Summary  *weather.WeekSummary         `json:"summary,omitempty"`
}

// Service builds the home view.
type Service struct {
	weather  WeatherSource
	gate     *account.Gate
	homeCity string
}

// NewService creates a home Service that always reports homeCity as the
// caller's current location.
func NewService(source WeatherSource, gate *account.Gate, homeCity string) *Service {
	return &Service{
		weather:  source,
		gate:     gate,
		homeCity: common.NormalizeCity(homeCity),
	}
}

// HomeCity returns the configured current location.
func (s *Service) HomeCity() string {
	return s.homeCity
}

// View returns the home view for the caller. The current location is always
// looked up. city is optional; when set, its current weather is added and,
// for premium callers only, the past week with a summary.
func (s *Service) View(ctx context.Context, id account.Identity, city string) (View, error) {
	view := View{
		CurrentLocation: s.homeCity,
		Premium:         s.gate.IsPremium(ctx, id),
	}

	if s.homeCity != "" {
		cw, err := s.weather.Current(ctx, s.homeCity)
		if err != nil {
			return View{}, err
		}
		if cw == nil {
			log.Printf("INFO: home: no current weather for %s", s.homeCity)
		}
		view.CurrentLocationWeather = cw
	}

	city = common.NormalizeCity(city)
	if city == "" {
		return view, nil
	}
	view.City = city

	cw, err := s.weather.Current(ctx, city)
	if err != nil {
		return View{}, err
	}
	view.Weather = cw

	if !view.Premium {
		return view, nil
	}

	week, err := s.weather.PastWeek(ctx, city)
	if err != nil {
		return View{}, err
	}
	summary := weather.SummarizeWeek(city, week)
	if summary.Missing > 0 {
		log.Printf("DEBUG: home: %d of %d history days missing for %s", summary.Missing, len(week), city)
	}
	view.PastWeek = week
	view.Summary = &summary

	return view, nil
}
