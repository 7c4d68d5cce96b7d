package db

import (
	"context"

	"cep-api/internal/domain/model"
)

type HealthDBGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}

func downStatus(err error, details map[string]string) model.ComponentHealthStatus {
	if details == nil {
		details = map[string]string{}
	}
	details["message"] = err.Error()
	return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
}

func upStatus(details map[string]string) model.ComponentHealthStatus {
	if details == nil {
		details = map[string]string{}
	}
	details["message"] = string(model.StatusUp)
	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}
