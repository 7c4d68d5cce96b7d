package cep

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/gateway/api"
	"cep-api/internal/domain/gateway/queue"
	"cep-api/internal/domain/model"
	"cep-api/internal/domain/usecase/history"
	"cep-api/pkg/log"
	"cep-api/pkg/msg"
	"cep-api/pkg/util/ceputils"
)

const tracerName = "cep-api/usecase/cep"

type cepUseCase struct {
	providers []api.CepGateway
	history   history.UseCase
	events    queue.LookupEventGateway
	now       func() time.Time
}

// NewCepUseCase builds the lookup over providers, tried in the given order.
// history and events are optional.
func NewCepUseCase(providers []api.CepGateway, historyUseCase history.UseCase, events queue.LookupEventGateway) UseCase {
	return &cepUseCase{
		providers: providers,
		history:   historyUseCase,
		events:    events,
		now:       time.Now,
	}
}

func (useCase *cepUseCase) FetchCepData(ctx context.Context, raw string) (*entity.CepData, error) {
	cep := ceputils.Clean(raw)
	if len(cep) != ceputils.Length {
		return nil, &InvalidCepError{Input: raw}
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "FetchCepData")
	defer span.End()
	span.SetAttributes(attribute.String("cep", cep))

	failures := make([]error, 0, len(useCase.providers))
	for _, provider := range useCase.providers {
		data, err := provider.Lookup(ctx, cep)
		if err == nil {
			span.SetAttributes(attribute.String("cep.provider", string(data.Provedor)))
			useCase.afterLookup(ctx, data)
			return data, nil
		}

		log.Warn("CEP provider failed",
			zap.String("cep", cep),
			zap.String("provider", string(provider.Provider())),
			zap.Error(unwrapProvider(err)))
		failures = append(failures, err)
	}

	lookupErr := &LookupFailedError{Errors: failures}
	span.RecordError(lookupErr)
	span.SetStatus(codes.Error, lookupErr.Error())
	return nil, lookupErr
}

// afterLookup records the lookup and publishes it; neither may fail the lookup itself
func (useCase *cepUseCase) afterLookup(ctx context.Context, data *entity.CepData) {
	if useCase.history != nil {
		if _, err := useCase.history.Add(ctx, data); err != nil {
			log.Warn(msg.GetMessage("app.history-failed", data.Cep, err))
		}
	}

	if useCase.events != nil {
		event := model.LookupEvent{
			Cep:        data.Cep,
			Provider:   data.Provedor,
			Cidade:     data.Cidade,
			Uf:         data.Uf,
			LookedUpAt: useCase.now().UnixMilli(),
		}
		if err := useCase.events.Publish(ctx, event); err != nil {
			log.Warn(msg.GetMessage("app.event-failed", data.Cep, err))
		}
	}
}

// unwrapProvider exposes the cause of a provider error for logging
func unwrapProvider(err error) error {
	var providerErr *api.ProviderError
	if errors.As(err, &providerErr) && providerErr.Err != nil {
		return providerErr.Err
	}
	return err
}
