package forecast

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/gateway/api"
	"cep-api/internal/domain/gateway/cache"
	"cep-api/internal/domain/model"
)

type fakeGeocoding struct {
	calls  int32
	city   string
	uf     string
	result *entity.Coordinates
	err    error
}

func (f *fakeGeocoding) Geocode(_ context.Context, city, uf string) (*entity.Coordinates, error) {
	atomic.AddInt32(&f.calls, 1)
	f.city, f.uf = city, uf
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeWeather struct {
	calls   int32
	lat     float64
	lon     float64
	err     error
	release chan struct{}
}

func (f *fakeWeather) FetchForecast(ctx context.Context, lat, lon float64, city, uf string) (*entity.WeatherData, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.lat, f.lon = lat, lon
	if f.err != nil {
		return nil, f.err
	}
	daily := make([]entity.WeatherDaily, api.ForecastDays)
	for i := range daily {
		daily[i] = entity.WeatherDaily{Date: fmt.Sprintf("2026-10-%02d", i+1), TemperatureMin: float64(i), TemperatureMax: float64(i + 10)}
	}
	return &entity.WeatherData{
		Current:  entity.WeatherCurrent{Temperature: 25.3, ApparentTemperature: 26, Humidity: 60, Time: "2026-10-01T12:00"},
		Daily:    daily,
		Location: entity.WeatherLocation{Cidade: city, Uf: uf, Latitude: lat, Longitude: lon},
	}, nil
}

func paulista() *entity.CepData {
	return &entity.CepData{
		Cep: "01310100", Cidade: "São Paulo", Uf: "SP",
		Coordenadas: &entity.Coordinates{Latitude: -23.561414, Longitude: -46.656147},
		Provedor:    entity.ProviderBrasilAPI,
	}
}

func withoutCoordinates() *entity.CepData {
	data := paulista()
	data.Coordenadas = nil
	data.Provedor = entity.ProviderViaCEP
	return data
}

func TestCoordinatesFromCepSkipGeocoding(t *testing.T) {
	geocoding := &fakeGeocoding{}
	weather := &fakeWeather{}
	useCase := NewForecastUseCase(geocoding, weather, cache.NewMemoryMemoCache(), Options{})

	result, err := useCase.Forecast(context.Background(), paulista(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if geocoding.calls != 0 {
		t.Fatal("geocoding must not be called")
	}
	if weather.lat != -23.561414 || weather.lon != -46.656147 {
		t.Fatalf("weather called with %v,%v", weather.lat, weather.lon)
	}
	if result.Status != model.ForecastReady || result.Source != model.SourceCep || result.Days != 7 {
		t.Fatalf("result = %+v", result)
	}
	if len(result.Weather.Daily) != 7 || result.Weather.Daily[0].Date != "2026-10-01" || result.Weather.Daily[6].Date != "2026-10-07" {
		t.Fatalf("daily = %+v", result.Weather.Daily)
	}
}

func TestGeocodingWhenCepHasNoCoordinates(t *testing.T) {
	geocoding := &fakeGeocoding{result: &entity.Coordinates{Latitude: -23.5475, Longitude: -46.63611}}
	weather := &fakeWeather{}
	useCase := NewForecastUseCase(geocoding, weather, nil, Options{})

	result, err := useCase.Forecast(context.Background(), withoutCoordinates(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if geocoding.city != "São Paulo" || geocoding.uf != "SP" {
		t.Fatalf("geocoded %s/%s", geocoding.city, geocoding.uf)
	}
	if weather.lat != -23.5475 || weather.lon != -46.63611 {
		t.Fatalf("weather called with %v,%v", weather.lat, weather.lon)
	}
	if result.Source != model.SourceGeocoding || len(result.Weather.Daily) != 3 {
		t.Fatalf("result = %+v", result)
	}
	if result.Weather.Location.Cidade != "São Paulo" || result.Weather.Location.Uf != "SP" {
		t.Fatalf("location = %+v", result.Weather.Location)
	}
}

func TestNotReadyWithoutLocation(t *testing.T) {
	geocoding := &fakeGeocoding{}
	weather := &fakeWeather{}
	useCase := NewForecastUseCase(geocoding, weather, nil, Options{})

	data := withoutCoordinates()
	data.Cidade = ""
	result, err := useCase.Forecast(context.Background(), data, 7)
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != model.ForecastNotReady || result.Weather != nil {
		t.Fatalf("result = %+v", result)
	}
	if geocoding.calls != 0 || weather.calls != 0 {
		t.Fatal("nothing must be fetched")
	}
}

func TestInvalidDays(t *testing.T) {
	useCase := NewForecastUseCase(&fakeGeocoding{}, &fakeWeather{}, nil, Options{})
	for _, days := range []int{0, -1, 17} {
		_, err := useCase.Forecast(context.Background(), paulista(), days)
		var invalid *InvalidDaysError
		if !errors.As(err, &invalid) || invalid.Days != days {
			t.Fatalf("Forecast(days=%d) error = %v", days, err)
		}
	}
	_, err := useCase.Forecast(context.Background(), paulista(), 17)
	if err.Error() != "Quantidade de dias inválida: 17. Use um valor entre 1 e 16" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestGeocodeFailureSkipsWeather(t *testing.T) {
	geocoding := &fakeGeocoding{err: &api.ServiceError{Service: api.ServiceGeocoding, Err: api.ErrLocationNotFound}}
	weather := &fakeWeather{}
	useCase := NewForecastUseCase(geocoding, weather, nil, Options{})

	_, err := useCase.Forecast(context.Background(), withoutCoordinates(), 7)
	var geocodeErr *GeocodeError
	if !errors.As(err, &geocodeErr) {
		t.Fatalf("expected GeocodeError, got %v", err)
	}
	if err.Error() != "Localização não encontrada" {
		t.Fatalf("message = %q", err.Error())
	}
	if weather.calls != 0 {
		t.Fatal("weather must not be called")
	}

	geocoding.err = &api.ServiceError{Service: api.ServiceGeocoding, Err: errors.New("timeout")}
	_, err = useCase.Forecast(context.Background(), withoutCoordinates(), 7)
	if err.Error() != "Erro ao geocodificar localização" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestWeatherFailure(t *testing.T) {
	cause := &api.ServiceError{Service: api.ServiceWeather, Err: api.ErrMalformedForecast}
	useCase := NewForecastUseCase(&fakeGeocoding{}, &fakeWeather{err: cause}, nil, Options{})

	_, err := useCase.Forecast(context.Background(), paulista(), 7)
	var weatherErr *WeatherError
	if !errors.As(err, &weatherErr) || !errors.Is(err, api.ErrMalformedForecast) {
		t.Fatalf("expected WeatherError, got %v", err)
	}
	if err.Error() != "Erro ao consultar dados climáticos" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestResultsAreMemoized(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	memo := cache.NewMemoryMemoCacheWithClock(func() time.Time { return now })
	geocoding := &fakeGeocoding{result: &entity.Coordinates{Latitude: -23.5475, Longitude: -46.63611}}
	weather := &fakeWeather{}
	useCase := NewForecastUseCase(geocoding, weather, memo, Options{})
	ctx := context.Background()

	first, _ := useCase.Forecast(ctx, withoutCoordinates(), 7)
	second, err := useCase.Forecast(ctx, withoutCoordinates(), 16)
	if err != nil {
		t.Fatal(err)
	}
	if geocoding.calls != 1 || weather.calls != 1 {
		t.Fatalf("calls geocoding=%d weather=%d, want 1 each", geocoding.calls, weather.calls)
	}
	if len(first.Weather.Daily) != 7 || len(second.Weather.Daily) != 16 {
		t.Fatalf("daily lengths %d %d", len(first.Weather.Daily), len(second.Weather.Daily))
	}

	now = now.Add(DefaultCacheTTL)
	if _, err := useCase.Forecast(ctx, withoutCoordinates(), 7); err != nil {
		t.Fatal(err)
	}
	if geocoding.calls != 2 || weather.calls != 2 {
		t.Fatalf("stale entries must be refetched, calls geocoding=%d weather=%d", geocoding.calls, weather.calls)
	}
}

func TestConcurrentRequestsAreCoalesced(t *testing.T) {
	weather := &fakeWeather{release: make(chan struct{})}
	useCase := NewForecastUseCase(&fakeGeocoding{}, weather, cache.NewMemoryMemoCache(), Options{})

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := useCase.Forecast(context.Background(), paulista(), 7)
			errs <- err
		}()
	}

	// let the goroutines pile up on the in-flight fetch
	time.Sleep(50 * time.Millisecond)
	close(weather.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}
	if calls := atomic.LoadInt32(&weather.calls); calls != 1 {
		t.Fatalf("weather calls = %d, want 1", calls)
	}
}

func TestCancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	weather := &fakeWeather{release: make(chan struct{})}
	useCase := NewForecastUseCase(&fakeGeocoding{}, weather, cache.NewMemoryMemoCache(), Options{})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := useCase.Forecast(firstCtx, paulista(), 7)
		first <- err
	}()
	for atomic.LoadInt32(&weather.calls) == 0 {
		time.Sleep(time.Millisecond)
	}

	second := make(chan error, 1)
	go func() {
		_, err := useCase.Forecast(context.Background(), paulista(), 3)
		second <- err
	}()
	// let the second caller join the in-flight fetch
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-first:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("first caller error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting on the shared fetch")
	}

	close(weather.release)
	select {
	case err := <-second:
		if err != nil {
			t.Fatalf("second caller failed: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("second caller never received the shared result")
	}
	if calls := atomic.LoadInt32(&weather.calls); calls != 1 {
		t.Fatalf("weather calls = %d, want 1", calls)
	}
}

func TestCacheKeys(t *testing.T) {
	if got := geocodeKey(" São Paulo ", "sp"); got != "geocode:são paulo:sp" {
		t.Fatalf("geocodeKey() = %q", got)
	}
	if got := weatherKey(entity.Coordinates{Latitude: -23.561414, Longitude: -46.656147}); got != "weather:-23.561414:-46.656147" {
		t.Fatalf("weatherKey() = %q", got)
	}
}
