package queue

import (
	"context"
	"errors"
	"testing"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/model"
)

type recordingSender struct {
	queue      string
	body       any
	attributes map[string]string
	err        error
}

func (s *recordingSender) SendMessage(_ context.Context, queue string, body any, attributes map[string]string) (string, error) {
	s.queue, s.body, s.attributes = queue, body, attributes
	return "id", s.err
}

func TestPublishSendsEvent(t *testing.T) {
	sender := &recordingSender{}
	gateway := NewLookupEventGateway(sender, "cep-lookups")
	event := model.LookupEvent{Cep: "01310100", Provider: entity.ProviderBrasilAPI, Uf: "SP"}

	if err := gateway.Publish(context.Background(), event); err != nil {
		t.Fatal(err)
	}
	if sender.queue != "cep-lookups" || sender.body.(model.LookupEvent).Cep != "01310100" {
		t.Fatalf("sent %s %+v", sender.queue, sender.body)
	}
	if sender.attributes["provider"] != "BrasilAPI" || sender.attributes["uf"] != "SP" {
		t.Fatalf("attributes = %v", sender.attributes)
	}
	if health := gateway.Health(); health.Status != model.StatusUp || health.Details["sent"] != "1" {
		t.Fatalf("Health() = %+v", health)
	}
}

func TestPublishFailureMarksDown(t *testing.T) {
	gateway := NewLookupEventGateway(&recordingSender{err: errors.New("throttled")}, "q")
	if err := gateway.Publish(context.Background(), model.LookupEvent{}); err == nil {
		t.Fatal("expected an error")
	}
	health := gateway.Health()
	if health.Status != model.StatusDown || health.Details["last_error"] != "throttled" {
		t.Fatalf("Health() = %+v", health)
	}
}

func TestDisabledGateway(t *testing.T) {
	gateway := NewLookupEventGateway(nil, "")
	if err := gateway.Publish(context.Background(), model.LookupEvent{}); err != nil {
		t.Fatal(err)
	}
	if health := gateway.Health(); health.Status != model.StatusUnknown {
		t.Fatalf("Health() = %+v", health)
	}
}
