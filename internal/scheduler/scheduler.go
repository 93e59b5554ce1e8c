package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const refreshTimeout = 30 * time.Second

// Refresher is the subset of weather.Service the scheduler drives.
type Refresher interface {
	GetCurrentWeather(ctx context.Context, city string, unit weather.Unit) (weather.CurrentWeather, error)
	GetForecast(ctx context.Context, city string, unit weather.Unit) (weather.ForecastBundle, error)
}

// Scheduler periodically refreshes weather for the favorite cities so the
// dashboard reads from a warm cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	prefs     store.Store
	interval  time.Duration
}

// New creates a new Scheduler.
func New(prefs store.Store, interval time.Duration, service Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		prefs:     prefs,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// A non-positive interval disables polling.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("INFO: scheduler: polling disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes current weather and forecast for every favorite city
// in the stored unit. Failures are logged and do not stop other cities.
func (s *Scheduler) RunOnce(ctx context.Context) {
	favs, err := s.prefs.Favorites()
	if err != nil {
		log.Printf("ERROR: scheduler: cannot read favorites: %v", err)
		return
	}
	if len(favs) == 0 {
		log.Println("INFO: scheduler: no favorite cities; nothing to refresh")
		return
	}
	unit, err := s.prefs.Unit()
	if err != nil {
		log.Printf("WARN: scheduler: cannot read unit, using metric: %v", err)
		unit = weather.Metric
	}

	log.Printf("INFO: scheduler: refreshing %d cities (%s)", len(favs), unit)

	var wg sync.WaitGroup
	for _, f := range favs {
		f := f
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
			defer cancel()

			if _, err := s.service.GetCurrentWeather(ctx, f.Name, unit); err != nil {
				log.Printf("ERROR: scheduler: current weather failed for %s: %v", f.Name, err)
			}
			if _, err := s.service.GetForecast(ctx, f.Name, unit); err != nil {
				log.Printf("ERROR: scheduler: forecast failed for %s: %v", f.Name, err)
			}
		}()
	}
	wg.Wait()
	log.Println("INFO: scheduler: refresh completed")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
