package weather

import (
	"strings"
	"time"
)

// sunTimeLayout matches the provider's astro strings, e.g. "06:30 AM".
const sunTimeLayout = "3:04 PM"

// TransformCurrent reshapes a forecast payload into CurrentWeather. It never
// fails: missing sections leave the corresponding fields at their zero value
// and unparsable sunrise/sunset fall back to now.
func TransformCurrent(raw *RawForecast, unit Unit, now time.Time) CurrentWeather {
	out := CurrentWeather{Unit: unit}
	if raw == nil {
		out.Sunrise = SunTime{Unix: now.Unix(), Fallback: true}
		out.Sunset = out.Sunrise
		return out
	}

	if l := raw.Location; l != nil {
		out.Name = l.Name
		out.Country = l.Country
		out.Lat = l.Lat
		out.Lon = l.Lon
		out.TimeZone = l.TzID
	}

	day := firstDay(raw)

	if c := raw.Current; c != nil {
		out.Temp = unit.Temp(c.TempC, c.TempF)
		out.FeelsLike = unit.Temp(c.FeelslikeC, c.FeelslikeF)
		out.Humidity = c.Humidity
		out.PressureHPa = c.PressureMb
		out.Wind = windFor(c.RawReading, unit)
		out.Visibility = c.VisKm * 1000
		out.Clouds = c.Cloud
		out.Condition = conditionFor(c.Condition, c.IsDay)
		out.Details = detailsFor(c.RawReading, Details{})

		out.TempMin, out.TempMax = dailyRange(out.Temp, unit)
	}

	// Provider daily aggregates win over the synthesized range.
	if day != nil && day.Day != nil {
		d := day.Day
		if v := pick(unit, d.MintempC, d.MintempF); v != nil {
			out.TempMin = *v
		}
		if v := pick(unit, d.MaxtempC, d.MaxtempF); v != nil {
			out.TempMax = *v
		}
	}

	ref := now.In(zoneFor(out.TimeZone, now.Location()))
	var sunrise, sunset string
	if day != nil && day.Astro != nil {
		sunrise, sunset = day.Astro.Sunrise, day.Astro.Sunset
	}
	out.Sunrise = parseSunTime(sunrise, ref)
	out.Sunset = parseSunTime(sunset, ref)

	return out
}

// TransformForecast flattens every hour of every forecast day into one
// chronological list, keeping provider order.
func TransformForecast(raw *RawForecast, unit Unit) ForecastBundle {
	out := ForecastBundle{Unit: unit, Entries: []ForecastEntry{}}
	if raw == nil {
		return out
	}
	if l := raw.Location; l != nil {
		out.City = City{Name: l.Name, Country: l.Country, TimeZone: l.TzID}
	}
	if raw.Forecast == nil {
		return out
	}

	n := 0
	for _, d := range raw.Forecast.Forecastday {
		n += len(d.Hour)
	}
	out.Entries = make([]ForecastEntry, 0, n)

	for _, d := range raw.Forecast.Forecastday {
		for _, h := range d.Hour {
			temp := unit.Temp(h.TempC, h.TempF)
			lo, hi := hourlyRange(temp, unit)
			out.Entries = append(out.Entries, ForecastEntry{
				Time:        h.TimeEpoch,
				Temp:        temp,
				FeelsLike:   unit.Temp(h.FeelslikeC, h.FeelslikeF),
				TempMin:     lo,
				TempMax:     hi,
				Humidity:    h.Humidity,
				PressureHPa: h.PressureMb,
				Condition:   conditionFor(h.Condition, h.IsDay),
				Wind:        windFor(h.RawReading, unit),
				Clouds:      h.Cloud,
				Details: detailsFor(h.RawReading, Details{
					ChanceOfRain: h.ChanceOfRain,
					ChanceOfSnow: h.ChanceOfSnow,
					VisKm:        h.VisKm,
					VisMiles:     h.VisMiles,
				}),
			})
		}
	}
	return out
}

// TransformSearch maps provider city matches, preserving their order.
func TransformSearch(raw []RawCity) []CitySearchResult {
	out := make([]CitySearchResult, 0, len(raw))
	for _, c := range raw {
		out = append(out, CitySearchResult{
			Name:    c.Name,
			Country: c.Country,
			Lat:     c.Lat,
			Lon:     c.Lon,
			State:   c.Region,
		})
	}
	return out
}

// parseSunTime reads a local "HH:MM AM" string as a time on ref's calendar
// date in ref's zone.
func parseSunTime(text string, ref time.Time) SunTime {
	t, err := time.Parse(sunTimeLayout, strings.TrimSpace(text))
	if err != nil {
		return SunTime{Unix: ref.Unix(), Fallback: true}
	}
	y, m, d := ref.Date()
	at := time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, ref.Location())
	return SunTime{Unix: at.Unix()}
}

// zoneFor loads the provider's IANA zone, falling back to def.
func zoneFor(tz string, def *time.Location) *time.Location {
	if tz == "" {
		return def
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return def
	}
	return loc
}

func firstDay(raw *RawForecast) *RawForecastDay {
	if raw.Forecast == nil || len(raw.Forecast.Forecastday) == 0 {
		return nil
	}
	return &raw.Forecast.Forecastday[0]
}

func pick(unit Unit, c, f *float64) *float64 {
	if unit == Imperial {
		return f
	}
	return c
}

func windFor(r RawReading, unit Unit) Wind {
	return Wind{
		Speed: unit.Speed(r.WindKph, r.WindMph),
		Deg:   r.WindDegree,
		Gust:  unit.Speed(r.GustKph, r.GustMph),
	}
}

// detailsFor fills the extended readings shared by current and hourly data
// on top of extra. It returns nil when nothing was supplied.
func detailsFor(r RawReading, extra Details) *Details {
	d := extra
	d.UV = r.UV
	d.DewpointC = r.DewpointC
	d.DewpointF = r.DewpointF
	d.PrecipMM = r.PrecipMm
	d.PrecipIn = r.PrecipIn
	d.WindchillC = r.WindchillC
	d.WindchillF = r.WindchillF
	d.HeatindexC = r.HeatindexC
	d.HeatindexF = r.HeatindexF
	if d.empty() {
		return nil
	}
	return &d
}
