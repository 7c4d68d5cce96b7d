package cep

import (
	"cep-api/pkg/msg"
)

// CombinedProvider tags a failure every provider contributed to
const CombinedProvider = "Ambos"

// InvalidCepError is returned before any provider is called
type InvalidCepError struct {
	Input string
}

func (e *InvalidCepError) Error() string {
	return msg.GetMessage("cep.invalid")
}

// LookupFailedError carries the failure of each provider, in call order
type LookupFailedError struct {
	Errors []error
}

func (e *LookupFailedError) Error() string {
	return msg.GetMessage("cep.lookup-failed")
}

func (e *LookupFailedError) Unwrap() []error {
	return e.Errors
}

func (e *LookupFailedError) Provider() string {
	return CombinedProvider
}

// Details lists the per-provider messages
func (e *LookupFailedError) Details() []string {
	details := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		details = append(details, err.Error())
	}
	return details
}
