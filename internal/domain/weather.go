package domain

// GeoResult is one city match from the geocoding search.
type GeoResult struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CountryCode string  `json:"country_code"`
	Admin1      string  `json:"admin1,omitempty"`
	Timezone    string  `json:"timezone"`
}

// ForecastDay is one day of the weather forecast.
type ForecastDay struct {
	Date          string  `json:"date"`
	TempMax       float64 `json:"temp_max"`
	TempMin       float64 `json:"temp_min"`
	Precipitation float64 `json:"precipitation"`
	WeatherCode   int     `json:"weather_code"`
	Label         string  `json:"label"`
}

// ForecastHour is one hourly forecast point.
type ForecastHour struct {
	Time          string  `json:"time"`
	Temp          float64 `json:"temp"`
	Precipitation float64 `json:"precipitation"`
}

// WeatherForecast is the forecast for one location.
type WeatherForecast struct {
	Location string         `json:"location"`
	Timezone string         `json:"timezone"`
	Daily    []ForecastDay  `json:"daily"`
	Hourly   []ForecastHour `json:"hourly"`
}

var weatherLabels = map[int]string{
	0:  "Céu limpo",
	1:  "Principalmente limpo",
	2:  "Parcialmente nublado",
	3:  "Nublado",
	45: "Neblina",
	48: "Neblina",
	51: "Garoa",
	53: "Garoa",
	55: "Garoa",
	61: "Chuva leve",
	63: "Chuva",
	65: "Chuva forte",
	80: "Pancadas de chuva",
	81: "Pancadas de chuva",
	82: "Pancadas fortes",
	95: "Temporal",
	96: "Temporal com granizo",
	99: "Temporal forte com granizo",
}

// WeatherCodeLabel translates an Open-Meteo weather code to a display label.
func WeatherCodeLabel(code int) string {
	if label, ok := weatherLabels[code]; ok {
		return label
	}
	return "Variável"
}
