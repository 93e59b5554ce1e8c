package weather

// Category represents a normalized high-level weather condition.
type Category string

const (
	CategoryUnknown Category = "unknown"
	CategoryClear   Category = "clear"
	CategoryCloudy  Category = "cloudy"
	CategoryRain    Category = "rain"
	CategorySnow    Category = "snow"
	CategoryStorm   Category = "storm"
	CategoryMist    Category = "mist"
)

// Condition describes the sky state reported by the provider.
type Condition struct {
	Code        int      `json:"code"`
	Text        string   `json:"text"`
	Description string   `json:"description"` // lowercased Text
	Icon        string   `json:"icon"`
	Category    Category `json:"category"`
}

// Wind speeds are m/s for metric and mph for imperial.
type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
	Gust  float64 `json:"gust"`
}

// SunTime is a sunrise or sunset instant in unix seconds. Fallback is set
// when the provider text could not be parsed and Unix holds the time of
// the transformation instead.
type SunTime struct {
	Unix     int64 `json:"unix"`
	Fallback bool  `json:"fallback,omitempty"`
}

// Details carries extended readings. Each field is nil when the provider
// did not supply it.
type Details struct {
	UV           *float64 `json:"uv,omitempty"`
	DewpointC    *float64 `json:"dewpointC,omitempty"`
	DewpointF    *float64 `json:"dewpointF,omitempty"`
	PrecipMM     *float64 `json:"precipMm,omitempty"`
	PrecipIn     *float64 `json:"precipIn,omitempty"`
	WindchillC   *float64 `json:"windchillC,omitempty"`
	WindchillF   *float64 `json:"windchillF,omitempty"`
	HeatindexC   *float64 `json:"heatindexC,omitempty"`
	HeatindexF   *float64 `json:"heatindexF,omitempty"`
	ChanceOfRain *int     `json:"chanceOfRain,omitempty"`
	ChanceOfSnow *int     `json:"chanceOfSnow,omitempty"`
	VisKm        *float64 `json:"visKm,omitempty"`
	VisMiles     *float64 `json:"visMiles,omitempty"`
}

func (d Details) empty() bool {
	return d == Details{}
}

// CurrentWeather is the normalized view of a city's present conditions.
// Temperatures follow Unit. Visibility is always in meters.
type CurrentWeather struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Unit    Unit    `json:"unit"`

	// TimeZone is the IANA zone of the location, used to display Sunrise/Sunset.
	TimeZone string `json:"timeZone,omitempty"`

	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feelsLike"`
	TempMin     float64 `json:"tempMin"`
	TempMax     float64 `json:"tempMax"`
	Humidity    int     `json:"humidity"`
	PressureHPa float64 `json:"pressureHpa"`

	Wind       Wind      `json:"wind"`
	Visibility float64   `json:"visibility"`
	Clouds     int       `json:"clouds"`
	Condition  Condition `json:"condition"`

	Sunrise SunTime `json:"sunrise"`
	Sunset  SunTime `json:"sunset"`

	Details *Details `json:"details,omitempty"`
}

// ForecastEntry is one hourly forecast point.
type ForecastEntry struct {
	Time        int64     `json:"dt"`
	Temp        float64   `json:"temp"`
	FeelsLike   float64   `json:"feelsLike"`
	TempMin     float64   `json:"tempMin"`
	TempMax     float64   `json:"tempMax"`
	Humidity    int       `json:"humidity"`
	PressureHPa float64   `json:"pressureHpa"`
	Condition   Condition `json:"condition"`
	Wind        Wind      `json:"wind"`
	Clouds      int       `json:"clouds"`
	Details     *Details  `json:"details,omitempty"`
}

// City identifies the place a forecast belongs to.
type City struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	TimeZone string `json:"timeZone,omitempty"`
}

// ForecastBundle holds every hourly entry of the requested days in
// chronological order.
type ForecastBundle struct {
	City    City            `json:"city"`
	Unit    Unit            `json:"unit"`
	Entries []ForecastEntry `json:"entries"`
}

// CitySearchResult is a single match returned by a city search.
type CitySearchResult struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	State   string  `json:"state,omitempty"`
}
