package api

import (
	"context"
	"fmt"
	"net/url"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/model/external"
	"cep-api/pkg/http"
)

// viaCepGatewayImpl implements CepGateway over ViaCEP
type viaCepGatewayImpl struct {
	httpClient *http.Client
}

// NewViaCepGateway creates a ViaCEP gateway; a nil clientOptions.Backoff falls back to DefaultCepBackoff
func NewViaCepGateway(baseUrl string, clientOptions http.ClientOptions) CepGateway {
	if clientOptions.Logger == nil {
		clientOptions.Logger = http.NewZapHTTPLogger(string(entity.ProviderViaCEP))
	}
	httpClient := http.NewHttpClient(baseUrl, withDefaultBackoff(clientOptions, DefaultCepBackoff))

	return &viaCepGatewayImpl{
		httpClient: httpClient,
	}
}

func (v *viaCepGatewayImpl) Provider() entity.Provider {
	return entity.ProviderViaCEP
}

// Lookup fetches {base}/{cep}/json/
func (v *viaCepGatewayImpl) Lookup(ctx context.Context, cep string) (*entity.CepData, error) {
	successResp, _, _, err := v.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(fmt.Sprintf("/%s/json/", url.PathEscape(cep))).
		WithSuccessResp(&external.ViaCepResponse{}).
		Execute()

	if err != nil {
		return nil, v.fail(err)
	}

	data, err := mapViaCepResponse(successResp.(*external.ViaCepResponse), cep)
	if err != nil {
		return nil, v.fail(err)
	}
	return data, nil
}

func (v *viaCepGatewayImpl) fail(err error) error {
	return &ProviderError{Provider: entity.ProviderViaCEP, Err: err}
}

// mapViaCepResponse converts the provider shape; ViaCEP never carries coordinates
func mapViaCepResponse(resp *external.ViaCepResponse, requested string) (*entity.CepData, error) {
	if resp.Erro {
		return nil, ErrCepNotFound
	}
	if resp.Localidade == "" || !isUf(resp.Uf) {
		return nil, fmt.Errorf("%w: localidade=%q uf=%q", ErrUnexpectedPayload, resp.Localidade, resp.Uf)
	}

	return &entity.CepData{
		Cep:        firstNonEmpty(resp.Cep, requested),
		Logradouro: resp.Logradouro,
		Bairro:     resp.Bairro,
		Cidade:     resp.Localidade,
		Uf:         resp.Uf,
		Ibge:       resp.Ibge,
		Provedor:   entity.ProviderViaCEP,
	}, nil
}
