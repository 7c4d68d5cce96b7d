package queue

import "context"

type Sender interface {
	// SendMessage publishes body as JSON and returns the broker message id
	SendMessage(ctx context.Context, queue string, body any, attributes map[string]string) (string, error)
}
