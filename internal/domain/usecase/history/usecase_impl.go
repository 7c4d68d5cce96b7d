package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/gateway/db"
	"cep-api/pkg/log"
	"cep-api/pkg/msg"
	"cep-api/pkg/util/ceputils"
)

// DefaultLimit is how many lookups are kept
const DefaultLimit = 10

// NotFoundError is returned by FindByCep when no entry matches
type NotFoundError struct {
	Cep string
}

func (e *NotFoundError) Error() string {
	return msg.GetMessage("history.not-found", e.Cep)
}

type Options struct {
	Limit int
	Now   func() time.Time
}

type historyUseCase struct {
	gateway db.HistoryGateway
	limit   int
	now     func() time.Time

	// serializes the load-modify-save cycle
	mutex sync.Mutex
}

func NewHistoryUseCase(gateway db.HistoryGateway, opts Options) UseCase {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &historyUseCase{
		gateway: gateway,
		limit:   opts.Limit,
		now:     opts.Now,
	}
}

func (useCase *historyUseCase) List(ctx context.Context) ([]entity.ConsultaHistorico, error) {
	return useCase.load(ctx)
}

func (useCase *historyUseCase) Add(ctx context.Context, cepData *entity.CepData) (*entity.ConsultaHistorico, error) {
	if cepData == nil {
		return nil, errors.New("cep data is required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate history id: %w", err)
	}

	entry := entity.ConsultaHistorico{
		ID:        id.String(),
		Cep:       cepData.Cep,
		Cidade:    cepData.Cidade,
		Uf:        cepData.Uf,
		Timestamp: useCase.now().UnixMilli(),
		CepData:   *cepData,
	}

	useCase.mutex.Lock()
	defer useCase.mutex.Unlock()

	current, err := useCase.load(ctx)
	if err != nil {
		return nil, err
	}

	updated := make([]entity.ConsultaHistorico, 0, useCase.limit)
	updated = append(updated, entry)
	for _, existing := range current {
		if len(updated) == useCase.limit {
			break
		}
		if ceputils.Equal(existing.Cep, entry.Cep) {
			continue
		}
		updated = append(updated, existing)
	}

	if err := useCase.gateway.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save history: %w", err)
	}
	return &entry, nil
}

func (useCase *historyUseCase) FindByCep(ctx context.Context, cep string) (*entity.ConsultaHistorico, error) {
	entries, err := useCase.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if ceputils.Equal(entries[i].Cep, cep) {
			return &entries[i], nil
		}
	}
	return nil, &NotFoundError{Cep: ceputils.Format(cep)}
}

func (useCase *historyUseCase) Clear(ctx context.Context) error {
	useCase.mutex.Lock()
	defer useCase.mutex.Unlock()

	if err := useCase.gateway.Delete(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// load treats an unreadable record as an empty history
func (useCase *historyUseCase) load(ctx context.Context) ([]entity.ConsultaHistorico, error) {
	entries, err := useCase.gateway.Load(ctx)
	if errors.Is(err, db.ErrCorruptHistory) {
		log.Warn("Discarding unreadable history", zap.Error(err))
		return []entity.ConsultaHistorico{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}
