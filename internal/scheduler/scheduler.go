package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-premium/internal/weather"
)

const probeTimeout = 30 * time.Second

// CurrentSource answers current-weather lookups; nil means no data.
type CurrentSource interface {
	Current(ctx context.Context, city string) (*weather.CurrentWeather, error)
}

// ProbeResult records whether the provider served a city on one probe run.
type ProbeResult struct {
	City      string
	Available bool
}

// Scheduler periodically checks that the weather provider answers for a set
// of cities. Nothing is stored; the outcome is logged.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    CurrentSource
	cities    []string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(cities []string, interval time.Duration, source CurrentSource) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		source:    source,
		cities:    cities,
		interval:  interval,
	}
}

// Start schedules the probe job and starts the underlying scheduler. A zero
// interval or an empty city list disables the job.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		log.Println("scheduler: no probe cities configured; nothing to schedule")
		return nil
	}
	if s.interval <= 0 {
		log.Println("scheduler: probe interval is 0; provider probe disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		s.Probe(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Probe looks up current weather for every configured city concurrently and
// returns the outcome in configuration order.
func (s *Scheduler) Probe(ctx context.Context) []ProbeResult {
	log.Println("scheduler: running provider probe")

	results := make([]ProbeResult, len(s.cities))
	var wg sync.WaitGroup
	for i, city := range s.cities {
		i, city := i, city
		wg.Add(1)
		go func() {
			defer wg.Done()

			cw, err := s.source.Current(ctx, city)
			results[i] = ProbeResult{City: city, Available: err == nil && cw != nil}
			switch {
			case err != nil:
				log.Printf("scheduler: probe for %s aborted: %v", city, err)
			case cw == nil:
				log.Printf("scheduler: provider has no current weather for %s", city)
			}
		}()
	}
	wg.Wait()

	available := 0
	for _, r := range results {
		if r.Available {
			available++
		}
	}
	log.Printf("scheduler: completed provider probe (%d/%d cities available)", available, len(results))
	return results
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
