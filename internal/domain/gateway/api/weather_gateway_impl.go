package api

import (
	"context"
	"fmt"
	"strconv"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/model/external"
	"cep-api/pkg/http"
)

const forecastTimezone = "America/Sao_Paulo"

// weatherGatewayImpl implements the WeatherGateway interface over the Open-Meteo forecast API
type weatherGatewayImpl struct {
	httpClient *http.Client
}

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client
func NewWeatherGateway(baseUrl string, clientOptions http.ClientOptions) WeatherGateway {
	if clientOptions.Logger == nil {
		clientOptions.Logger = http.NewZapHTTPLogger(string(ServiceWeather))
	}
	httpClient := http.NewHttpClient(baseUrl, withDefaultBackoff(clientOptions, DefaultWeatherBackoff))

	return &weatherGatewayImpl{
		httpClient: httpClient,
	}
}

// FetchForecast gets current conditions plus the daily min/max forecast
func (w *weatherGatewayImpl) FetchForecast(ctx context.Context, latitude, longitude float64, city, uf string) (*entity.WeatherData, error) {
	successResp, errResp, _, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithQueryParams(map[string]string{
			"latitude":      strconv.FormatFloat(latitude, 'f', -1, 64),
			"longitude":     strconv.FormatFloat(longitude, 'f', -1, 64),
			"current":       "temperature_2m,apparent_temperature,relative_humidity_2m",
			"daily":         "temperature_2m_max,temperature_2m_min",
			"timezone":      forecastTimezone,
			"forecast_days": strconv.Itoa(ForecastDays),
		}).
		WithSuccessResp(&external.OpenMeteoForecastResponse{}).
		WithErrorResp(&external.OpenMeteoErrorResponse{}).
		Execute()

	if err != nil {
		if errResp != nil {
			if apiErr := errResp.(*external.OpenMeteoErrorResponse); apiErr.Reason != "" {
				err = fmt.Errorf("%s: %w", apiErr.Reason, err)
			}
		}
		return nil, &ServiceError{Service: ServiceWeather, Err: err}
	}

	data, err := mapForecastResponse(successResp.(*external.OpenMeteoForecastResponse), city, uf)
	if err != nil {
		return nil, &ServiceError{Service: ServiceWeather, Err: err}
	}
	return data, nil
}

// mapForecastResponse zips the daily arrays by index; arrays of different lengths are rejected
func mapForecastResponse(resp *external.OpenMeteoForecastResponse, city, uf string) (*entity.WeatherData, error) {
	if resp.Current == nil || resp.Daily == nil {
		return nil, fmt.Errorf("%w: missing current or daily block", ErrMalformedForecast)
	}

	daily := resp.Daily
	if len(daily.Temperature2mMax) != len(daily.Time) || len(daily.Temperature2mMin) != len(daily.Time) {
		return nil, fmt.Errorf("%w: time=%d max=%d min=%d", ErrMalformedForecast,
			len(daily.Time), len(daily.Temperature2mMax), len(daily.Temperature2mMin))
	}

	days := make([]entity.WeatherDaily, len(daily.Time))
	for i, date := range daily.Time {
		days[i] = entity.WeatherDaily{
			Date:           date,
			TemperatureMin: daily.Temperature2mMin[i],
			TemperatureMax: daily.Temperature2mMax[i],
		}
	}

	return &entity.WeatherData{
		Current: entity.WeatherCurrent{
			Temperature:         resp.Current.Temperature2m,
			ApparentTemperature: resp.Current.ApparentTemperature,
			Humidity:            resp.Current.RelativeHumidity2m,
			Time:                resp.Current.Time,
		},
		Daily: days,
		Location: entity.WeatherLocation{
			Cidade:    city,
			Uf:        uf,
			Latitude:  resp.Latitude,
			Longitude: resp.Longitude,
		},
	}, nil
}
