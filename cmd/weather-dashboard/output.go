package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var title = cases.Title(language.English)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCurrent(w io.Writer, cw weather.CurrentWeather, output string) error {
	if output == "json" {
		return writeJSON(w, cw)
	}

	t, s := cw.Unit.TempSymbol(), cw.Unit.SpeedSymbol()
	fmt.Fprintf(w, "%s, %s\n", cw.Name, cw.Country)
	fmt.Fprintf(w, "  %s\n", title.String(cw.Condition.Description))
	fmt.Fprintf(w, "  Temperature: %.1f%s (feels like %.1f%s)\n", cw.Temp, t, cw.FeelsLike, t)
	fmt.Fprintf(w, "  Range:       %.1f%s .. %.1f%s\n", cw.TempMin, t, cw.TempMax, t)
	fmt.Fprintf(w, "  Humidity:    %d%%\n", cw.Humidity)
	fmt.Fprintf(w, "  Wind:        %.1f %s, %d°\n", cw.Wind.Speed, s, cw.Wind.Deg)
	fmt.Fprintf(w, "  Sunrise:     %s\n", clock(cw.Sunrise.Unix, cw.TimeZone))
	_, err := fmt.Fprintf(w, "  Sunset:      %s\n", clock(cw.Sunset.Unix, cw.TimeZone))
	return err
}

func printForecast(w io.Writer, b weather.ForecastBundle, output string) error {
	if output == "json" {
		return writeJSON(w, b)
	}

	t := b.Unit.TempSymbol()
	fmt.Fprintf(w, "%s, %s\n", b.City.Name, b.City.Country)
	for _, d := range weather.Daily(b) {
		if _, err := fmt.Fprintf(w, "  %s  %5.1f%s / %5.1f%s  %s\n",
			d.Date, d.High, t, d.Low, t, title.String(d.Condition.Description)); err != nil {
			return err
		}
	}
	return nil
}

func printSearch(w io.Writer, results []weather.CitySearchResult, output string) error {
	if output == "json" {
		return writeJSON(w, results)
	}

	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No cities found")
		return err
	}
	for _, r := range results {
		place := r.Name
		if r.State != "" {
			place += ", " + r.State
		}
		if _, err := fmt.Fprintf(w, "%s, %s (%.2f, %.2f)\n", place, r.Country, r.Lat, r.Lon); err != nil {
			return err
		}
	}
	return nil
}

// clock formats unix as wall time in the named zone, or the host zone
// when tz is empty or unknown.
func clock(unix int64, tz string) string {
	loc := time.Local
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	return time.Unix(unix, 0).In(loc).Format("15:04")
}
