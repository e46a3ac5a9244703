package weather

import (
	"context"
	"time"
)

// PastWeekDays is the number of days covered by PastWeek.
const PastWeekDays = 7

// Service is the capability surface shared by the home and favorites flows.
type Service struct {
	provider Provider
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used to compute "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new Service.
func NewService(provider Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns current conditions for city, or nil if unavailable.
func (s *Service) Current(ctx context.Context, city string) (*CurrentWeather, error) {
	return s.provider.Current(ctx, city)
}

// Forecast returns the forecast for city, or nil if unavailable.
func (s *Service) Forecast(ctx context.Context, city string) (*ForecastWeather, error) {
	return s.provider.Forecast(ctx, city)
}

// PastWeek fetches history for yesterday through seven days ago (UTC), one
// day at a time. The result always has PastWeekDays entries ordered most
// recent first; a day the provider could not serve is a nil entry.
//
// If ctx is cancelled the loop stops and the context error is returned
// without a partial result.
func (s *Service) PastWeek(ctx context.Context, city string) ([]*HistoricalWeather, error) {
	today := s.today()

	week := make([]*HistoricalWeather, 0, PastWeekDays)
	for i := 1; i <= PastWeekDays; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		h, err := s.provider.Historical(ctx, city, today.AddDate(0, 0, -i))
		if err != nil {
			return nil, err
		}
		week = append(week, h)
	}

	return week, nil
}

// PastWeekDates returns the dates PastWeek requests, in the same order.
func (s *Service) PastWeekDates() []string {
	today := s.today()
	dates := make([]string, 0, PastWeekDays)
	for i := 1; i <= PastWeekDays; i++ {
		dates = append(dates, today.AddDate(0, 0, -i).Format(DateLayout))
	}
	return dates
}

func (s *Service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
