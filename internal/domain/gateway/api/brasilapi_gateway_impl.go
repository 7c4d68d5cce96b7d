package api

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/model/external"
	"cep-api/pkg/http"
)

// brasilAPIGatewayImpl implements CepGateway over BrasilAPI CEP v2
type brasilAPIGatewayImpl struct {
	httpClient *http.Client
}

// NewBrasilAPIGateway creates a BrasilAPI gateway; a nil clientOptions.Backoff falls back to DefaultCepBackoff
func NewBrasilAPIGateway(baseUrl string, clientOptions http.ClientOptions) CepGateway {
	if clientOptions.Logger == nil {
		clientOptions.Logger = http.NewZapHTTPLogger(string(entity.ProviderBrasilAPI))
	}
	httpClient := http.NewHttpClient(baseUrl, withDefaultBackoff(clientOptions, DefaultCepBackoff))

	return &brasilAPIGatewayImpl{
		httpClient: httpClient,
	}
}

func (b *brasilAPIGatewayImpl) Provider() entity.Provider {
	return entity.ProviderBrasilAPI
}

// Lookup fetches {base}/{cep}
func (b *brasilAPIGatewayImpl) Lookup(ctx context.Context, cep string) (*entity.CepData, error) {
	successResp, errResp, status, err := b.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/" + url.PathEscape(cep)).
		WithSuccessResp(&external.BrasilAPICepResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		if status == nethttp.StatusNotFound {
			err = fmt.Errorf("%w: %w", ErrCepNotFound, err)
		} else if errResp != nil {
			if apiErr := errResp.(*external.APIErrorResponse); apiErr.Message != "" {
				err = fmt.Errorf("%s: %w", apiErr.Message, err)
			}
		}
		return nil, b.fail(err)
	}

	data, err := mapBrasilAPIResponse(successResp.(*external.BrasilAPICepResponse), cep)
	if err != nil {
		return nil, b.fail(err)
	}
	return data, nil
}

func (b *brasilAPIGatewayImpl) fail(err error) error {
	return &ProviderError{Provider: entity.ProviderBrasilAPI, Err: err}
}

// mapBrasilAPIResponse converts the provider shape; coordinates are kept only when both parse into a valid pair
func mapBrasilAPIResponse(resp *external.BrasilAPICepResponse, requested string) (*entity.CepData, error) {
	if resp.City == "" || !isUf(resp.State) {
		return nil, fmt.Errorf("%w: city=%q state=%q", ErrUnexpectedPayload, resp.City, resp.State)
	}

	data := &entity.CepData{
		Cep:        firstNonEmpty(resp.Cep, requested),
		Logradouro: resp.Street,
		Bairro:     resp.Neighborhood,
		Cidade:     resp.City,
		Uf:         resp.State,
		Provedor:   entity.ProviderBrasilAPI,
	}

	if resp.Location != nil && resp.Location.Coordinates != nil {
		lat, latOk := resp.Location.Coordinates.Latitude.Float64()
		lon, lonOk := resp.Location.Coordinates.Longitude.Float64()
		coords := entity.Coordinates{Latitude: lat, Longitude: lon}
		if latOk && lonOk && coords.Valid() {
			data.Coordenadas = &coords
		}
	}

	return data, nil
}
