package cep

import (
	"context"
	"errors"
	"testing"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/gateway/api"
	"cep-api/internal/domain/gateway/db"
	"cep-api/internal/domain/model"
	"cep-api/internal/domain/usecase/history"
)

type fakeProvider struct {
	provider entity.Provider
	data     *entity.CepData
	err      error
	calls    []string
	log      *[]entity.Provider
}

func (f *fakeProvider) Provider() entity.Provider { return f.provider }

func (f *fakeProvider) Lookup(_ context.Context, cep string) (*entity.CepData, error) {
	f.calls = append(f.calls, cep)
	if f.log != nil {
		*f.log = append(*f.log, f.provider)
	}
	if f.err != nil {
		return nil, &api.ProviderError{Provider: f.provider, Err: f.err}
	}
	return f.data, nil
}

type fakeEvents struct {
	events []model.LookupEvent
	err    error
}

func (f *fakeEvents) Publish(_ context.Context, event model.LookupEvent) error {
	f.events = append(f.events, event)
	return f.err
}

func (f *fakeEvents) Health() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: model.StatusUp}
}

type failingHistory struct{ history.UseCase }

func (failingHistory) Add(context.Context, *entity.CepData) (*entity.ConsultaHistorico, error) {
	return nil, errors.New("disk full")
}

func brasilAPIData() *entity.CepData {
	return &entity.CepData{
		Cep: "01310100", Logradouro: "Avenida Paulista", Bairro: "Bela Vista",
		Cidade: "São Paulo", Uf: "SP",
		Coordenadas: &entity.Coordinates{Latitude: -23.561414, Longitude: -46.656147},
		Provedor:    entity.ProviderBrasilAPI,
	}
}

func viaCepData() *entity.CepData {
	return &entity.CepData{
		Cep: "01310-100", Logradouro: "Avenida Paulista", Bairro: "Bela Vista",
		Cidade: "São Paulo", Uf: "SP", Ibge: "3550308", Provedor: entity.ProviderViaCEP,
	}
}

func TestInvalidCepMakesNoCalls(t *testing.T) {
	primary := &fakeProvider{provider: entity.ProviderBrasilAPI, data: brasilAPIData()}
	fallback := &fakeProvider{provider: entity.ProviderViaCEP, data: viaCepData()}
	useCase := NewCepUseCase([]api.CepGateway{primary, fallback}, nil, nil)

	for _, raw := range []string{"", "1234567", "123456789", "abcdefgh", "0131-010"} {
		_, err := useCase.FetchCepData(context.Background(), raw)
		var invalid *InvalidCepError
		if !errors.As(err, &invalid) {
			t.Fatalf("FetchCepData(%q) error = %v, want InvalidCepError", raw, err)
		}
		if err.Error() != "CEP inválido" {
			t.Fatalf("message = %q", err.Error())
		}
	}
	if len(primary.calls)+len(fallback.calls) != 0 {
		t.Fatal("providers must not be called for invalid input")
	}
}

func TestInputIsCleanedBeforeLookup(t *testing.T) {
	for _, raw := range []string{"01310-100", "01310100", "01.310.100", " 01310 100 "} {
		primary := &fakeProvider{provider: entity.ProviderBrasilAPI, data: brasilAPIData()}
		if _, err := NewCepUseCase([]api.CepGateway{primary}, nil, nil).FetchCepData(context.Background(), raw); err != nil {
			t.Fatal(err)
		}
		if len(primary.calls) != 1 || primary.calls[0] != "01310100" {
			t.Fatalf("FetchCepData(%q) called with %v", raw, primary.calls)
		}
	}
}

func TestPrimarySuccessSkipsFallback(t *testing.T) {
	primary := &fakeProvider{provider: entity.ProviderBrasilAPI, data: brasilAPIData()}
	fallback := &fakeProvider{provider: entity.ProviderViaCEP, data: viaCepData()}

	data, err := NewCepUseCase([]api.CepGateway{primary, fallback}, nil, nil).FetchCepData(context.Background(), "01310-100")
	if err != nil {
		t.Fatal(err)
	}
	if data != primary.data {
		t.Fatal("primary result must be returned unchanged")
	}
	if len(fallback.calls) != 0 {
		t.Fatal("fallback must not be called")
	}
}

func TestFallbackAfterPrimaryFailure(t *testing.T) {
	var order []entity.Provider
	primary := &fakeProvider{provider: entity.ProviderBrasilAPI, err: errors.New("timeout"), log: &order}
	fallback := &fakeProvider{provider: entity.ProviderViaCEP, data: viaCepData(), log: &order}

	data, err := NewCepUseCase([]api.CepGateway{primary, fallback}, nil, nil).FetchCepData(context.Background(), "01310100")
	if err != nil {
		t.Fatal(err)
	}
	if data.Provedor != entity.ProviderViaCEP {
		t.Fatalf("provider = %s", data.Provedor)
	}
	if len(order) != 2 || order[0] != entity.ProviderBrasilAPI || order[1] != entity.ProviderViaCEP {
		t.Fatalf("call order = %v", order)
	}
}

func TestBothProvidersFail(t *testing.T) {
	primary := &fakeProvider{provider: entity.ProviderBrasilAPI, err: errors.New("503")}
	fallback := &fakeProvider{provider: entity.ProviderViaCEP, err: api.ErrCepNotFound}

	_, err := NewCepUseCase([]api.CepGateway{primary, fallback}, nil, nil).FetchCepData(context.Background(), "99999999")

	var lookupErr *LookupFailedError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected LookupFailedError, got %v", err)
	}
	if err.Error() != "CEP não encontrado ou erro de conectividade. Tente novamente." {
		t.Fatalf("message = %q", err.Error())
	}
	if lookupErr.Provider() != "Ambos" || len(lookupErr.Errors) != 2 {
		t.Fatalf("lookup error = %+v", lookupErr)
	}
	if !errors.Is(err, api.ErrCepNotFound) {
		t.Fatal("the not-found cause must stay reachable")
	}

	var providerErr *api.ProviderError
	if !errors.As(lookupErr.Errors[0], &providerErr) || providerErr.Provider != entity.ProviderBrasilAPI {
		t.Fatalf("first error = %v", lookupErr.Errors[0])
	}
	details := lookupErr.Details()
	if details[0] != "Erro ao consultar BrasilAPI" || details[1] != "Erro ao consultar ViaCEP" {
		t.Fatalf("details = %v", details)
	}
}

func TestSuccessIsRecordedAndPublished(t *testing.T) {
	ctx := context.Background()
	historyUseCase := history.NewHistoryUseCase(db.NewMemoryHistoryGateway(), history.Options{})
	events := &fakeEvents{}
	primary := &fakeProvider{provider: entity.ProviderBrasilAPI, data: brasilAPIData()}

	if _, err := NewCepUseCase([]api.CepGateway{primary}, historyUseCase, events).FetchCepData(ctx, "01310100"); err != nil {
		t.Fatal(err)
	}

	entries, _ := historyUseCase.List(ctx)
	if len(entries) != 1 || entries[0].Cep != "01310100" {
		t.Fatalf("history = %+v", entries)
	}
	if len(events.events) != 1 || events.events[0].Provider != entity.ProviderBrasilAPI || events.events[0].LookedUpAt == 0 {
		t.Fatalf("events = %+v", events.events)
	}
}

func TestSideEffectFailuresDoNotFailLookup(t *testing.T) {
	events := &fakeEvents{err: errors.New("queue down")}
	primary := &fakeProvider{provider: entity.ProviderBrasilAPI, data: brasilAPIData()}

	data, err := NewCepUseCase([]api.CepGateway{primary}, failingHistory{}, events).FetchCepData(context.Background(), "01310100")
	if err != nil || data == nil {
		t.Fatalf("FetchCepData() = %v, %v", data, err)
	}
}

func TestFailedLookupIsNotRecorded(t *testing.T) {
	ctx := context.Background()
	historyUseCase := history.NewHistoryUseCase(db.NewMemoryHistoryGateway(), history.Options{})
	primary := &fakeProvider{provider: entity.ProviderBrasilAPI, err: errors.New("down")}

	_, _ = NewCepUseCase([]api.CepGateway{primary}, historyUseCase, nil).FetchCepData(ctx, "01310100")
	entries, _ := historyUseCase.List(ctx)
	if len(entries) != 0 {
		t.Fatalf("history = %+v", entries)
	}
}
