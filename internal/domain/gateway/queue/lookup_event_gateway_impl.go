package queue

import (
	"context"
	"strconv"
	"sync"

	"cep-api/internal/domain/model"
)

// LookupEventGatewayImpl sends events through a Sender and tracks the outcome for health reporting.
// A nil sender disables publishing.
type LookupEventGatewayImpl struct {
	sender Sender
	queue  string

	mutex     sync.RWMutex
	sent      int
	failed    int
	lastError string
}

var _ LookupEventGateway = (*LookupEventGatewayImpl)(nil)

func NewLookupEventGateway(sender Sender, queue string) *LookupEventGatewayImpl {
	return &LookupEventGatewayImpl{sender: sender, queue: queue}
}

func (gateway *LookupEventGatewayImpl) Publish(ctx context.Context, event model.LookupEvent) error {
	if gateway.sender == nil {
		return nil
	}

	_, err := gateway.sender.SendMessage(ctx, gateway.queue, event, map[string]string{
		"provider": string(event.Provider),
		"uf":       event.Uf,
	})

	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	if err != nil {
		gateway.failed++
		gateway.lastError = err.Error()
		return err
	}
	gateway.sent++
	gateway.lastError = ""
	return nil
}

func (gateway *LookupEventGatewayImpl) Health() model.ComponentHealthStatus {
	if gateway.sender == nil {
		return model.ComponentHealthStatus{
			Status:  model.StatusUnknown,
			Details: map[string]string{"message": "Lookup events disabled"},
		}
	}

	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()

	details := map[string]string{
		"queue":  gateway.queue,
		"sent":   strconv.Itoa(gateway.sent),
		"failed": strconv.Itoa(gateway.failed),
	}
	if gateway.lastError != "" {
		details["last_error"] = gateway.lastError
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}
	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}
