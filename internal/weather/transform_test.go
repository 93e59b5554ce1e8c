package weather

import (
	"encoding/json"
	"os"
	"testing"
	"time"
	_ "time/tzdata"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func loadFixture(t *testing.T, name string) *RawForecast {
	t.Helper()

	b, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	var raw RawForecast
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return &raw
}

func ptr[T any](v T) *T {
	return &v
}

// syntheticForecast builds a payload with the given number of days of
// 24 hourly rows each, starting at midnight UTC of testNow.
func syntheticForecast(days int) *RawForecast {
	start := time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC)

	raw := &RawForecast{
		Location: &RawLocation{Name: "Paris", Country: "France", Lat: 48.87, Lon: 2.33, TzID: "UTC"},
		Current: &RawCurrent{
			RawReading: RawReading{
				TempC:      20,
				TempF:      68,
				IsDay:      1,
				Condition:  RawCondition{Text: "Sunny", Code: 1000},
				WindKph:    36,
				WindMph:    22.4,
				WindDegree: 90,
				GustKph:    72,
				GustMph:    44.7,
				PressureMb: 1012,
				Humidity:   40,
				Cloud:      0,
				FeelslikeC: 19,
				FeelslikeF: 66.2,
			},
			VisKm: 10,
		},
		Forecast: &RawForecastSection{},
	}

	for d := 0; d < days; d++ {
		day := RawForecastDay{
			Date:  start.AddDate(0, 0, d).Format("2006-01-02"),
			Astro: &RawAstro{Sunrise: "07:00 AM", Sunset: "06:30 PM"},
		}
		for h := 0; h < 24; h++ {
			ts := start.AddDate(0, 0, d).Add(time.Duration(h) * time.Hour)
			isDay := 0
			if h >= 7 && h < 19 {
				isDay = 1
			}
			day.Hour = append(day.Hour, RawHour{
				TimeEpoch: ts.Unix(),
				RawReading: RawReading{
					TempC:     float64(10 + h%12),
					TempF:     float64(50 + 2*(h%12)),
					IsDay:     isDay,
					Condition: RawCondition{Text: "Clear", Code: 1000},
					Humidity:  50 + h,
					PrecipMm:  ptr(0.5),
					PrecipIn:  ptr(0.02),
				},
			})
		}
		raw.Forecast.Forecastday = append(raw.Forecast.Forecastday, day)
	}
	return raw
}

func TestTransformCurrentFromFixture(t *testing.T) {
	raw := loadFixture(t, "forecast_paris.json")

	got := TransformCurrent(raw, Metric, testNow)

	if got.Name != "Paris" || got.Country != "France" {
		t.Fatalf("unexpected identity: %s, %s", got.Name, got.Country)
	}
	if got.Lat != 48.87 || got.Lon != 2.33 {
		t.Errorf("unexpected coords: %v,%v", got.Lat, got.Lon)
	}
	if got.Temp != 18 || got.FeelsLike != 17.2 {
		t.Errorf("unexpected temps: %v feels %v", got.Temp, got.FeelsLike)
	}
	// Provider daily aggregates win over synthesized values.
	if got.TempMin != 11.2 || got.TempMax != 20.4 {
		t.Errorf("expected provider min/max 11.2/20.4, got %v/%v", got.TempMin, got.TempMax)
	}
	if got.Visibility != 10000 {
		t.Errorf("expected visibility in meters, got %v", got.Visibility)
	}
	if got.PressureHPa != 1016 || got.Humidity != 63 || got.Clouds != 50 {
		t.Errorf("unexpected pressure/humidity/clouds: %v %v %v", got.PressureHPa, got.Humidity, got.Clouds)
	}

	wantCond := Condition{Code: 1003, Text: "Partly Cloudy", Description: "partly cloudy", Icon: "02d", Category: CategoryCloudy}
	if got.Condition != wantCond {
		t.Errorf("condition = %+v, want %+v", got.Condition, wantCond)
	}

	if got.Details == nil || got.Details.UV == nil || *got.Details.UV != 3 {
		t.Fatalf("expected details with uv 3, got %+v", got.Details)
	}
	if got.Details.DewpointF == nil || *got.Details.DewpointF != 51.4 {
		t.Errorf("expected dewpoint in both units")
	}
	if got.Details.ChanceOfRain != nil {
		t.Errorf("current weather carries no chance of rain")
	}

	// Sunrise 08:12 local Paris time (UTC+2 in October).
	wantRise := time.Date(2026, 10, 15, 6, 12, 0, 0, time.UTC).Unix()
	if got.Sunrise.Fallback || got.Sunrise.Unix != wantRise {
		t.Errorf("sunrise = %+v, want %d", got.Sunrise, wantRise)
	}
	wantSet := time.Date(2026, 10, 15, 16, 58, 0, 0, time.UTC).Unix()
	if got.Sunset.Fallback || got.Sunset.Unix != wantSet {
		t.Errorf("sunset = %+v, want %d", got.Sunset, wantSet)
	}
}

func TestTransformCurrentWind(t *testing.T) {
	raw := syntheticForecast(1)

	metric := TransformCurrent(raw, Metric, testNow)
	if metric.Wind.Speed != 10 || metric.Wind.Gust != 20 || metric.Wind.Deg != 90 {
		t.Errorf("metric wind = %+v, want 10 m/s gust 20", metric.Wind)
	}

	imperial := TransformCurrent(raw, Imperial, testNow)
	if imperial.Wind.Speed != 22.4 || imperial.Wind.Gust != 44.7 {
		t.Errorf("imperial wind = %+v, want provider mph", imperial.Wind)
	}
	if imperial.Temp != 68 || imperial.Unit != Imperial {
		t.Errorf("imperial temp = %v unit %q", imperial.Temp, imperial.Unit)
	}
}

func TestTransformCurrentSynthesizesRange(t *testing.T) {
	raw := syntheticForecast(1)

	metric := TransformCurrent(raw, Metric, testNow)
	if metric.TempMin != 18 || metric.TempMax != 22 {
		t.Errorf("metric range = %v..%v, want 18..22", metric.TempMin, metric.TempMax)
	}

	imperial := TransformCurrent(raw, Imperial, testNow)
	if imperial.TempMin != 64 || imperial.TempMax != 72 {
		t.Errorf("imperial range = %v..%v, want 64..72", imperial.TempMin, imperial.TempMax)
	}
}

func TestTransformCurrentSunFallback(t *testing.T) {
	raw := syntheticForecast(1)
	raw.Forecast.Forecastday[0].Astro = &RawAstro{Sunrise: "No sunrise", Sunset: ""}

	got := TransformCurrent(raw, Metric, testNow)
	if !got.Sunrise.Fallback || got.Sunrise.Unix != testNow.Unix() {
		t.Errorf("sunrise = %+v, want fallback to now", got.Sunrise)
	}
	if !got.Sunset.Fallback || got.Sunset.Unix != testNow.Unix() {
		t.Errorf("sunset = %+v, want fallback to now", got.Sunset)
	}
}

func TestTransformCurrentMissingSections(t *testing.T) {
	got := TransformCurrent(&RawForecast{}, Metric, testNow)

	if got.Name != "" || got.Temp != 0 {
		t.Errorf("expected zero-valued fields, got %+v", got)
	}
	if got.Details != nil {
		t.Errorf("expected no details")
	}
	if !got.Sunrise.Fallback {
		t.Errorf("expected sunrise fallback without astro data")
	}

	if got := TransformCurrent(nil, Imperial, testNow); got.Unit != Imperial {
		t.Errorf("nil payload should still carry the unit")
	}
}

func TestTransformCurrentDailyRangeWithoutCurrent(t *testing.T) {
	raw := &RawForecast{
		Forecast: &RawForecastSection{Forecastday: []RawForecastDay{{
			Day: &RawDay{MintempC: ptr(4.5), MaxtempC: ptr(12.0), MintempF: ptr(40.1), MaxtempF: ptr(53.6)},
		}}},
	}

	got := TransformCurrent(raw, Imperial, testNow)
	if got.TempMin != 40.1 || got.TempMax != 53.6 {
		t.Fatalf("expected provider min/max 40.1/53.6, got %v/%v", got.TempMin, got.TempMax)
	}
}

func TestTransformCurrentCarriesTimeZone(t *testing.T) {
	got := TransformCurrent(loadFixture(t, "forecast_paris.json"), Metric, testNow)
	if got.TimeZone != "Europe/Paris" {
		t.Fatalf("time zone = %q, want Europe/Paris", got.TimeZone)
	}
}

func TestParseSunTime(t *testing.T) {
	ref := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		in       string
		want     time.Time
		fallback bool
	}{
		{in: "06:30 AM", want: time.Date(2026, 3, 2, 6, 30, 0, 0, time.UTC)},
		{in: "07:05 PM", want: time.Date(2026, 3, 2, 19, 5, 0, 0, time.UTC)},
		{in: "12:10 AM", want: time.Date(2026, 3, 2, 0, 10, 0, 0, time.UTC)},
		{in: "12:10 PM", want: time.Date(2026, 3, 2, 12, 10, 0, 0, time.UTC)},
		{in: "No moonrise", want: ref, fallback: true},
		{in: "", want: ref, fallback: true},
	}

	for _, tt := range tests {
		got := parseSunTime(tt.in, ref)
		if got.Fallback != tt.fallback || got.Unix != tt.want.Unix() {
			t.Errorf("parseSunTime(%q) = %+v, want %d fallback=%v", tt.in, got, tt.want.Unix(), tt.fallback)
		}
	}
}

func TestTransformForecastFlattens(t *testing.T) {
	raw := syntheticForecast(3)

	got := TransformForecast(raw, Metric)
	if len(got.Entries) != 72 {
		t.Fatalf("expected 72 entries, got %d", len(got.Entries))
	}
	for i := 1; i < len(got.Entries); i++ {
		if got.Entries[i].Time < got.Entries[i-1].Time {
			t.Fatalf("entries out of order at %d", i)
		}
	}
	if got.City.Name != "Paris" || got.City.Country != "France" {
		t.Errorf("unexpected city %+v", got.City)
	}

	first := got.Entries[0]
	if first.TempMin != first.Temp-1 || first.TempMax != first.Temp+1 {
		t.Errorf("metric hourly range = %v..%v around %v", first.TempMin, first.TempMax, first.Temp)
	}
	if first.Condition.Icon != "01n" {
		t.Errorf("midnight entry should use night icon, got %q", first.Condition.Icon)
	}

	imperial := TransformForecast(raw, Imperial)
	e := imperial.Entries[5]
	if e.TempMin != e.Temp-2 || e.TempMax != e.Temp+2 {
		t.Errorf("imperial hourly range = %v..%v around %v", e.TempMin, e.TempMax, e.Temp)
	}
}

func TestTransformForecastFixtureDetails(t *testing.T) {
	raw := loadFixture(t, "forecast_paris.json")

	got := TransformForecast(raw, Metric)
	if len(got.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got.Entries))
	}

	e := got.Entries[1]
	if e.Details == nil || e.Details.ChanceOfRain == nil || *e.Details.ChanceOfRain != 64 {
		t.Fatalf("expected chance of rain 64, got %+v", e.Details)
	}
	if e.Details.VisKm == nil || *e.Details.VisKm != 9 || *e.Details.VisMiles != 5 {
		t.Errorf("expected hourly visibility in km and miles")
	}
	if e.Details.WindchillC != nil {
		t.Errorf("windchill was not supplied and must be omitted")
	}
	if e.Condition.Description != "patchy rain nearby" || e.Condition.Icon != "09d" {
		t.Errorf("unexpected condition %+v", e.Condition)
	}
	if got.City.TimeZone != "Europe/Paris" {
		t.Errorf("expected time zone to be carried, got %q", got.City.TimeZone)
	}
}

func TestTransformForecastEmpty(t *testing.T) {
	got := TransformForecast(&RawForecast{Location: &RawLocation{Name: "Nowhere"}}, Metric)
	if got.Entries == nil || len(got.Entries) != 0 {
		t.Fatalf("expected empty non-nil entries, got %v", got.Entries)
	}
}

func TestTransformSearch(t *testing.T) {
	raw := []RawCity{
		{ID: 1, Name: "London", Region: "City of London, Greater London", Country: "United Kingdom", Lat: 51.52, Lon: -0.11},
		{ID: 2, Name: "London", Region: "Ontario", Country: "Canada", Lat: 42.98, Lon: -81.25},
	}

	got := TransformSearch(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Country != "United Kingdom" || got[1].State != "Ontario" {
		t.Errorf("order or region mapping lost: %+v", got)
	}

	if empty := TransformSearch(nil); empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}
}
