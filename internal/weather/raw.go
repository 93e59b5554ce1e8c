package weather

// RawForecast mirrors the provider's forecast.json payload. Sections the
// provider may omit are pointers.
type RawForecast struct {
	Location *RawLocation        `json:"location"`
	Current  *RawCurrent         `json:"current"`
	Forecast *RawForecastSection `json:"forecast"`
}

type RawLocation struct {
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	Country        string  `json:"country"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	TzID           string  `json:"tz_id"`
	LocaltimeEpoch int64   `json:"localtime_epoch"`
}

type RawCondition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

// RawReading holds the fields shared by the current block and hourly rows.
type RawReading struct {
	TempC      float64      `json:"temp_c"`
	TempF      float64      `json:"temp_f"`
	IsDay      int          `json:"is_day"`
	Condition  RawCondition `json:"condition"`
	WindMph    float64      `json:"wind_mph"`
	WindKph    float64      `json:"wind_kph"`
	WindDegree int          `json:"wind_degree"`
	WindDir    string       `json:"wind_dir"`
	PressureMb float64      `json:"pressure_mb"`
	PressureIn float64      `json:"pressure_in"`
	Humidity   int          `json:"humidity"`
	Cloud      int          `json:"cloud"`
	FeelslikeC float64      `json:"feelslike_c"`
	FeelslikeF float64      `json:"feelslike_f"`
	GustMph    float64      `json:"gust_mph"`
	GustKph    float64      `json:"gust_kph"`

	PrecipMm   *float64 `json:"precip_mm"`
	PrecipIn   *float64 `json:"precip_in"`
	WindchillC *float64 `json:"windchill_c"`
	WindchillF *float64 `json:"windchill_f"`
	HeatindexC *float64 `json:"heatindex_c"`
	HeatindexF *float64 `json:"heatindex_f"`
	DewpointC  *float64 `json:"dewpoint_c"`
	DewpointF  *float64 `json:"dewpoint_f"`
	UV         *float64 `json:"uv"`
}

type RawCurrent struct {
	RawReading
	LastUpdatedEpoch int64   `json:"last_updated_epoch"`
	VisKm            float64 `json:"vis_km"`
	VisMiles         float64 `json:"vis_miles"`
}

type RawHour struct {
	RawReading
	TimeEpoch    int64    `json:"time_epoch"`
	Time         string   `json:"time"`
	ChanceOfRain *int     `json:"chance_of_rain"`
	ChanceOfSnow *int     `json:"chance_of_snow"`
	VisKm        *float64 `json:"vis_km"`
	VisMiles     *float64 `json:"vis_miles"`
}

type RawDay struct {
	MaxtempC    *float64     `json:"maxtemp_c"`
	MaxtempF    *float64     `json:"maxtemp_f"`
	MintempC    *float64     `json:"mintemp_c"`
	MintempF    *float64     `json:"mintemp_f"`
	Avghumidity float64      `json:"avghumidity"`
	Condition   RawCondition `json:"condition"`
}

type RawAstro struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

type RawForecastDay struct {
	Date      string    `json:"date"`
	DateEpoch int64     `json:"date_epoch"`
	Day       *RawDay   `json:"day"`
	Astro     *RawAstro `json:"astro"`
	Hour      []RawHour `json:"hour"`
}

type RawForecastSection struct {
	Forecastday []RawForecastDay `json:"forecastday"`
}

// RawCity is one row of the provider's search.json response.
type RawCity struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	URL     string  `json:"url"`
}
