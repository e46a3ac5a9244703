package home

import (
	"context"
	"errors"
	"testing"

	"github.com/i474232898/weather-premium/internal/account"
	"github.com/i474232898/weather-premium/internal/store"
	"github.com/i474232898/weather-premium/internal/weather"
)

type stubWeather struct {
	current   map[string]*weather.CurrentWeather
	week      []*weather.HistoricalWeather
	currentAt []string
	weekCalls int
	err       error
}

func (s *stubWeather) Current(ctx context.Context, city string) (*weather.CurrentWeather, error) {
	s.currentAt = append(s.currentAt, city)
	if s.err != nil {
		return nil, s.err
	}
	return s.current[city], nil
}

func (s *stubWeather) PastWeek(ctx context.Context, city string) ([]*weather.HistoricalWeather, error) {
	s.weekCalls++
	return s.week, nil
}

func currentAt(city string, tempC float64) *weather.CurrentWeather {
	return &weather.CurrentWeather{
		Location: weather.Location{Name: city},
		Current:  weather.WeatherData{TempC: tempC},
	}
}

func historyDay(date string, avg float64, condition string) *weather.HistoricalWeather {
	return &weather.HistoricalWeather{
		Forecast: weather.Forecast{Days: []weather.ForecastDay{{
			Date: date,
			Day:  weather.Day{AvgTempC: avg, MaxTempC: avg + 2, MinTempC: avg - 2, Condition: weather.Condition{Text: condition}},
		}}},
	}
}

func newHomeService(t *testing.T, src WeatherSource) *Service {
	t.Helper()
	s := store.NewMemoryStore()
	ctx := context.Background()
	for _, acc := range []account.Account{{ID: "free"}, {ID: "paid", Premium: true}} {
		if _, err := s.CreateAccount(ctx, acc); err != nil {
			t.Fatal(err)
		}
	}
	return NewService(src, account.NewGate(s), "Liberec")
}

func TestViewPopulatesCurrentLocation(t *testing.T) {
	src := &stubWeather{current: map[string]*weather.CurrentWeather{
		"Liberec": currentAt("Liberec", 10),
	}}
	svc := newHomeService(t, src)

	view, err := svc.View(context.Background(), account.Identity{AccountID: "paid"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.CurrentLocation != "Liberec" {
		t.Errorf("current location = %q, want Liberec", view.CurrentLocation)
	}
	if view.CurrentLocationWeather == nil || view.CurrentLocationWeather.Current.TempC != 10 {
		t.Fatalf("unexpected current location weather %+v", view.CurrentLocationWeather)
	}
	if !view.Premium {
		t.Error("expected premium view")
	}
	if view.City != "" || view.Weather != nil || view.PastWeek != nil {
		t.Errorf("no city requested, got %+v", view)
	}
	if len(src.currentAt) != 1 || src.weekCalls != 0 {
		t.Errorf("expected a single lookup, got current=%v week=%d", src.currentAt, src.weekCalls)
	}
}

func TestViewForPremiumCallerIncludesWeek(t *testing.T) {
	src := &stubWeather{
		current: map[string]*weather.CurrentWeather{
			"Liberec": currentAt("Liberec", 10),
			"Paris":   currentAt("Paris", 18),
		},
		week: []*weather.HistoricalWeather{
			historyDay("2024-05-19", 16, "Light rain"),
			nil,
			historyDay("2024-05-17", 14, "Sunny"),
			historyDay("2024-05-16", 12, "Moderate rain"),
			nil,
			nil,
			nil,
		},
	}
	svc := newHomeService(t, src)

	view, err := svc.View(context.Background(), account.Identity{AccountID: "paid"}, " Paris ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.City != "Paris" || view.Weather == nil || view.Weather.Current.TempC != 18 {
		t.Fatalf("unexpected requested city weather: %q %+v", view.City, view.Weather)
	}
	if len(view.PastWeek) != weather.PastWeekDays {
		t.Fatalf("expected %d week entries, got %d", weather.PastWeekDays, len(view.PastWeek))
	}
	if view.Summary == nil {
		t.Fatal("expected a week summary")
	}
	if view.Summary.Days != 3 || view.Summary.Missing != 4 || view.Summary.AvgTempC != 14 {
		t.Errorf("unexpected summary %+v", view.Summary)
	}
	if view.Summary.Condition != weather.CategoryRain {
		t.Errorf("condition = %s, want rain", view.Summary.Condition)
	}
}

func TestViewForFreeCallerSkipsHistory(t *testing.T) {
	for _, id := range []account.Identity{account.Anonymous, {AccountID: "free"}} {
		src := &stubWeather{current: map[string]*weather.CurrentWeather{
			"Paris": currentAt("Paris", 18),
		}}
		svc := newHomeService(t, src)

		view, err := svc.View(context.Background(), id, "Paris")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.Premium {
			t.Errorf("%+v: expected non-premium view", id)
		}
		if view.Weather == nil {
			t.Errorf("%+v: current weather must be shown to everyone", id)
		}
		if view.PastWeek != nil || view.Summary != nil {
			t.Errorf("%+v: history leaked to a free caller", id)
		}
		if src.weekCalls != 0 {
			t.Errorf("%+v: expected no history lookups, got %d", id, src.weekCalls)
		}
		// Home city has no data here; the view is still served.
		if view.CurrentLocationWeather != nil {
			t.Errorf("%+v: expected no current location weather", id)
		}
	}
}

func TestViewPropagatesContextErrors(t *testing.T) {
	src := &stubWeather{err: context.Canceled}
	svc := newHomeService(t, src)

	if _, err := svc.View(context.Background(), account.Anonymous, "Paris"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
