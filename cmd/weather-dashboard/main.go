package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/cache"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "weather-dashboard",
		Short:        "Weather dashboard backend",
		Long:         "Serves current weather, forecasts and city search from WeatherAPI.com behind a short-lived cache",
		SilenceUsage: true,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cfg)
		},
	}

	currentCmd := &cobra.Command{
		Use:   "current [city]",
		Short: "Show current weather for a city",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, unit, output, err := cliSetup(cmd)
			if err != nil {
				return err
			}
			cw, err := service.GetCurrentWeather(cmd.Context(), args[0], unit)
			if err != nil {
				return err
			}
			return printCurrent(cmd.OutOrStdout(), cw, output)
		},
	}

	forecastCmd := &cobra.Command{
		Use:   "forecast [city]",
		Short: "Show the daily forecast for a city",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, unit, output, err := cliSetup(cmd)
			if err != nil {
				return err
			}
			bundle, err := service.GetForecast(cmd.Context(), args[0], unit)
			if err != nil {
				return err
			}
			return printForecast(cmd.OutOrStdout(), bundle, output)
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search cities by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, output, err := cliSetup(cmd)
			if err != nil {
				return err
			}
			results, err := service.SearchCities(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printSearch(cmd.OutOrStdout(), results, output)
		},
	}

	for _, c := range []*cobra.Command{currentCmd, forecastCmd} {
		c.Flags().StringP("unit", "u", "", "Unit system (metric, imperial); defaults to DEFAULT_UNIT")
	}
	for _, c := range []*cobra.Command{currentCmd, forecastCmd, searchCmd} {
		c.Flags().StringP("output", "o", "text", "Output format (text, json)")
	}

	rootCmd.AddCommand(serveCmd, currentCmd, forecastCmd, searchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cliSetup builds a service for a one-shot command and reads its flags.
func cliSetup(cmd *cobra.Command) (*weather.Service, weather.Unit, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to load config: %w", err)
	}

	unit := cfg.DefaultUnit
	if cmd.Flags().Lookup("unit") != nil {
		raw, _ := cmd.Flags().GetString("unit")
		if raw != "" {
			if unit, err = weather.ParseUnit(raw); err != nil {
				return nil, "", "", err
			}
		}
	}

	output, _ := cmd.Flags().GetString("output")
	if output != "text" && output != "json" {
		return nil, "", "", fmt.Errorf("unknown output format %q", output)
	}

	return newService(cfg), unit, output, nil
}

func newService(cfg *config.AppConfig) *weather.Service {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}
	client := providers.NewWeatherAPIClient(httpClient, cfg.WeatherAPIKey, cfg.WeatherAPIBaseURL, cfg.UpstreamMaxRetries)
	return weather.NewService(client, cache.New[any](cfg.CacheTTL), weather.WithFetchTimeout(cfg.FetchTimeout()))
}

func openStore(cfg *config.AppConfig) (store.Store, error) {
	if cfg.PrefsDBPath == "" {
		log.Println("INFO: PREFS_DB_PATH not set; preferences kept in memory")
		return store.NewMemoryStore(cfg.DefaultUnit), nil
	}
	return store.NewSQLite(cfg.PrefsDBPath, cfg.DefaultUnit)
}

func serve(cfg *config.AppConfig) error {
	service := newService(cfg)

	prefs, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}
	defer prefs.Close()

	// Keeps the favorites warm in the cache.
	sched := scheduler.New(prefs, cfg.PollInterval, service)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, prefs)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	return nil
}
