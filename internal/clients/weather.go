package clients

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/paineldocafe/panel/internal/domain"
)

// Open-Meteo needs no API key: https://open-meteo.com/en/docs
const (
	forecastURL  = "https://api.open-meteo.com/v1/forecast"
	geocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
)

// Location identifies the forecast target.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
	Timezone  string
}

// DefaultLocation is the coffee belt default used when no city is configured.
var DefaultLocation = Location{
	Name:      "Vitória, ES",
	Latitude:  -20.3,
	Longitude: -40.3,
	Timezone:  "America/Sao_Paulo",
}

// WeatherClient fetches forecasts and city lookups from Open-Meteo.
type WeatherClient struct {
	client *resty.Client
}

// NewWeatherClient creates an Open-Meteo client.
func NewWeatherClient() *WeatherClient {
	return &WeatherClient{
		client: resty.New().SetTimeout(15 * time.Second),
	}
}

type forecastResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WeatherCode      []int     `json:"weather_code"`
	} `json:"daily"`
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature   []float64 `json:"temperature_2m"`
		Precipitation []float64 `json:"precipitation"`
	} `json:"hourly"`
}

// Forecast fetches a daily+hourly forecast for the location.
func (c *WeatherClient) Forecast(ctx context.Context, loc Location, days int) (domain.WeatherForecast, error) {
	if days <= 0 {
		days = 5
	}

	var payload forecastResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":      strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
			"longitude":     strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
			"timezone":      loc.Timezone,
			"forecast_days": strconv.Itoa(days),
			"daily":         "temperature_2m_max,temperature_2m_min,precipitation_sum,weather_code",
			"hourly":        "temperature_2m,precipitation",
		}).
		SetResult(&payload).
		Get(forecastURL)
	if err != nil {
		return domain.WeatherForecast{}, errors.Wrap(err, "fetch weather forecast")
	}
	if resp.IsError() {
		return domain.WeatherForecast{}, errors.Errorf("weather API returned %s", resp.Status())
	}

	forecast := domain.WeatherForecast{
		Location: loc.Name,
		Timezone: loc.Timezone,
		Daily:    make([]domain.ForecastDay, 0, len(payload.Daily.Time)),
		Hourly:   make([]domain.ForecastHour, 0, len(payload.Hourly.Time)),
	}

	for i, date := range payload.Daily.Time {
		day := domain.ForecastDay{Date: date}
		if i < len(payload.Daily.TemperatureMax) {
			day.TempMax = payload.Daily.TemperatureMax[i]
		}
		if i < len(payload.Daily.TemperatureMin) {
			day.TempMin = payload.Daily.TemperatureMin[i]
		}
		if i < len(payload.Daily.PrecipitationSum) {
			day.Precipitation = payload.Daily.PrecipitationSum[i]
		}
		if i < len(payload.Daily.WeatherCode) {
			day.WeatherCode = payload.Daily.WeatherCode[i]
		}
		day.Label = domain.WeatherCodeLabel(day.WeatherCode)
		forecast.Daily = append(forecast.Daily, day)
	}

	for i, hour := range payload.Hourly.Time {
		point := domain.ForecastHour{Time: hour}
		if i < len(payload.Hourly.Temperature) {
			point.Temp = payload.Hourly.Temperature[i]
		}
		if i < len(payload.Hourly.Precipitation) {
			point.Precipitation = payload.Hourly.Precipitation[i]
		}
		forecast.Hourly = append(forecast.Hourly, point)
	}

	return forecast, nil
}

// SearchCities looks up candidate cities for a query. A blank query returns
// no results without hitting the API.
func (c *WeatherClient) SearchCities(ctx context.Context, query string) ([]domain.GeoResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	var payload struct {
		Results []domain.GeoResult `json:"results"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"name":     query,
			"count":    "10",
			"language": "pt",
		}).
		SetResult(&payload).
		Get(geocodingURL)
	if err != nil {
		return nil, errors.Wrap(err, "search cities")
	}
	if resp.IsError() {
		return nil, errors.Errorf("geocoding API returned %s", resp.Status())
	}
	return payload.Results, nil
}
