package weather

import (
	"math"
	"time"
)

// DailySummary condenses one calendar day of hourly forecast entries.
type DailySummary struct {
	Date        string    `json:"date"` // YYYY-MM-DD in the city's zone
	High        float64   `json:"high"`
	Low         float64   `json:"low"`
	Humidity    int       `json:"humidity"`
	AvgHumidity float64   `json:"avgHumidity"`
	Precip      float64   `json:"precip"` // mm for metric, inches for imperial
	Condition   Condition `json:"condition"`
	Dominant    Category  `json:"dominant"`
	Hours       int       `json:"hours"`
}

// Daily groups forecast entries by calendar date in the city's time zone
// (UTC when unknown). Days keep the order in which they first appear.
// High and Low are the extremes of the hourly max/min; Condition and
// Humidity come from the day's first entry; Dominant is the most frequent
// category, ties going to the one seen first.
func Daily(b ForecastBundle) []DailySummary {
	loc := zoneFor(b.City.TimeZone, time.UTC)

	type acc struct {
		summary     DailySummary
		sumHumidity float64
		counts      map[Category]int
		order       []Category
	}

	var (
		keys []string
		days = make(map[string]*acc)
	)

	for _, e := range b.Entries {
		k := time.Unix(e.Time, 0).In(loc).Format("2006-01-02")

		a, ok := days[k]
		if !ok {
			a = &acc{
				summary: DailySummary{
					Date:      k,
					High:      math.Inf(-1),
					Low:       math.Inf(1),
					Humidity:  e.Humidity,
					Condition: e.Condition,
				},
				counts: make(map[Category]int),
			}
			days[k] = a
			keys = append(keys, k)
		}

		s := &a.summary
		s.High = math.Max(s.High, e.TempMax)
		s.Low = math.Min(s.Low, e.TempMin)
		s.Hours++
		a.sumHumidity += float64(e.Humidity)
		s.Precip += precipFor(e.Details, b.Unit)

		if _, seen := a.counts[e.Condition.Category]; !seen {
			a.order = append(a.order, e.Condition.Category)
		}
		a.counts[e.Condition.Category]++
	}

	out := make([]DailySummary, 0, len(keys))
	for _, k := range keys {
		a := days[k]
		s := a.summary
		s.AvgHumidity = a.sumHumidity / float64(s.Hours)

		best, bestCount := CategoryUnknown, 0
		for _, c := range a.order {
			if a.counts[c] > bestCount {
				best, bestCount = c, a.counts[c]
			}
		}
		s.Dominant = best

		out = append(out, s)
	}
	return out
}

func precipFor(d *Details, unit Unit) float64 {
	if d == nil {
		return 0
	}
	v := d.PrecipMM
	if unit == Imperial {
		v = d.PrecipIn
	}
	if v == nil {
		return 0
	}
	return *v
}
