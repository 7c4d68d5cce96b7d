package api

import (
	"context"
	"strings"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/model/external"
	"cep-api/pkg/http"
)

// geocodingGatewayImpl implements GeocodingGateway over the Open-Meteo geocoding search
type geocodingGatewayImpl struct {
	httpClient *http.Client
}

// NewGeocodingGateway creates a geocoding gateway; a nil clientOptions.Backoff falls back to DefaultWeatherBackoff
func NewGeocodingGateway(baseUrl string, clientOptions http.ClientOptions) GeocodingGateway {
	if clientOptions.Logger == nil {
		clientOptions.Logger = http.NewZapHTTPLogger(string(ServiceGeocoding))
	}
	httpClient := http.NewHttpClient(baseUrl, withDefaultBackoff(clientOptions, DefaultWeatherBackoff))

	return &geocodingGatewayImpl{
		httpClient: httpClient,
	}
}

// Geocode searches by city name and prefers the candidate whose admin1 mentions the uf
func (g *geocodingGatewayImpl) Geocode(ctx context.Context, city, uf string) (*entity.Coordinates, error) {
	successResp, _, _, err := g.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithQueryParams(map[string]string{
			"name":     city,
			"count":    "5",
			"language": "pt",
			"format":   "json",
		}).
		WithSuccessResp(&external.GeocodingResponse{}).
		Execute()

	if err != nil {
		return nil, &ServiceError{Service: ServiceGeocoding, Err: err}
	}

	coords, ok := selectCandidate(successResp.(*external.GeocodingResponse).Results, uf)
	if !ok {
		return nil, &ServiceError{Service: ServiceGeocoding, Err: ErrLocationNotFound}
	}
	return coords, nil
}

// selectCandidate drops candidates with unusable coordinates, then returns the first one whose
// admin1 contains uf (case-insensitive) or else the first one left
func selectCandidate(results []external.GeocodingResult, uf string) (*entity.Coordinates, bool) {
	usable := make([]entity.Coordinates, 0, len(results))
	admins := make([]string, 0, len(results))
	for _, r := range results {
		c := entity.Coordinates{Latitude: r.Latitude, Longitude: r.Longitude}
		if !c.Valid() {
			continue
		}
		usable = append(usable, c)
		admins = append(admins, r.Admin1)
	}
	if len(usable) == 0 {
		return nil, false
	}

	needle := strings.ToLower(uf)
	for i, admin := range admins {
		if admin != "" && strings.Contains(strings.ToLower(admin), needle) {
			return &usable[i], true
		}
	}
	return &usable[0], true
}
