package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

const forecastBody = `{
	"latitude": -23.5,
	"longitude": -46.625,
	"current": {"time": "2024-05-10T14:00", "temperature_2m": 22.4, "apparent_temperature": 21.9, "relative_humidity_2m": 61},
	"daily": {
		"time": ["2024-05-10", "2024-05-11", "2024-05-12"],
		"temperature_2m_max": [25.1, 26.3, 24.0],
		"temperature_2m_min": [15.2, 16.0, 14.8]
	}
}`

func TestFetchForecastMapsAndPreservesOrder(t *testing.T) {
	srv, _, last := jsonServer(t, http.StatusOK, forecastBody)
	data, err := NewWeatherGateway(srv.URL, fastOptions(2)).FetchForecast(context.Background(), -23.561414, -46.656147, "São Paulo", "SP")
	if err != nil {
		t.Fatalf("FetchForecast() error = %v", err)
	}

	requested := last.Load().(string)
	for _, part := range []string{
		"latitude=-23.561414",
		"longitude=-46.656147",
		"current=temperature_2m%2Capparent_temperature%2Crelative_humidity_2m",
		"daily=temperature_2m_max%2Ctemperature_2m_min",
		"timezone=America%2FSao_Paulo",
		"forecast_days=16",
	} {
		if !strings.Contains(requested, part) {
			t.Errorf("query %q lacks %q", requested, part)
		}
	}

	if data.Current.Temperature != 22.4 || data.Current.ApparentTemperature != 21.9 ||
		data.Current.Humidity != 61 || data.Current.Time != "2024-05-10T14:00" {
		t.Fatalf("current = %+v", data.Current)
	}
	wantDates := []string{"2024-05-10", "2024-05-11", "2024-05-12"}
	wantMax := []float64{25.1, 26.3, 24.0}
	wantMin := []float64{15.2, 16.0, 14.8}
	if len(data.Daily) != 3 {
		t.Fatalf("daily = %+v", data.Daily)
	}
	for i, day := range data.Daily {
		if day.Date != wantDates[i] || day.TemperatureMax != wantMax[i] || day.TemperatureMin != wantMin[i] {
			t.Errorf("daily[%d] = %+v", i, day)
		}
	}
	if data.Location.Cidade != "São Paulo" || data.Location.Uf != "SP" ||
		data.Location.Latitude != -23.5 || data.Location.Longitude != -46.625 {
		t.Fatalf("location = %+v", data.Location)
	}
}

func TestFetchForecastRejectsMismatchedDailyArrays(t *testing.T) {
	srv, _, _ := jsonServer(t, http.StatusOK, `{
		"latitude": 0, "longitude": 0,
		"current": {"time": "t", "temperature_2m": 1, "apparent_temperature": 1, "relative_humidity_2m": 1},
		"daily": {"time": ["a", "b"], "temperature_2m_max": [1], "temperature_2m_min": [1, 2]}
	}`)
	_, err := NewWeatherGateway(srv.URL, fastOptions(1)).FetchForecast(context.Background(), 0, 0, "X", "XX")
	if !errors.Is(err, ErrMalformedForecast) {
		t.Fatalf("expected ErrMalformedForecast, got %v", err)
	}
}

func TestFetchForecastMissingBlocks(t *testing.T) {
	srv, _, _ := jsonServer(t, http.StatusOK, `{"latitude": 0, "longitude": 0}`)
	_, err := NewWeatherGateway(srv.URL, fastOptions(1)).FetchForecast(context.Background(), 0, 0, "X", "XX")
	if !errors.Is(err, ErrMalformedForecast) {
		t.Fatalf("expected ErrMalformedForecast, got %v", err)
	}
}

func TestFetchForecastHTTPFailure(t *testing.T) {
	srv, _, _ := jsonServer(t, http.StatusBadRequest, `{"error": true, "reason": "Latitude must be in range of -90 to 90°."}`)
	_, err := NewWeatherGateway(srv.URL, fastOptions(2)).FetchForecast(context.Background(), 91, 0, "X", "XX")

	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) || serviceErr.Service != ServiceWeather {
		t.Fatalf("expected weather *ServiceError, got %v", err)
	}
	if err.Error() != "Erro ao consultar dados climáticos" {
		t.Fatalf("message = %q", err.Error())
	}
	if !strings.Contains(serviceErr.Err.Error(), "Latitude must be in range") {
		t.Fatalf("reason lost: %v", serviceErr.Err)
	}
}
