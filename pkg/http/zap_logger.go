package http

import (
	"go.uber.org/zap"

	"cep-api/pkg/log"
)

// maxLoggedBody caps how much of a response body ends up in the logs.
const maxLoggedBody = 512

// ZapHTTPLogger writes client traffic through pkg/log.
type ZapHTTPLogger struct {
	name string
}

// NewZapHTTPLogger returns a logger tagging every entry with the client name.
func NewZapHTTPLogger(name string) *ZapHTTPLogger {
	return &ZapHTTPLogger{name: name}
}

func (l *ZapHTTPLogger) LogRequest(method, url string, _ map[string]string, _ string) {
	log.Debug("http request",
		zap.String("client", l.name),
		zap.String("method", method),
		zap.String("url", url))
}

func (l *ZapHTTPLogger) LogResponseSuccess(method, url string, _ map[string]string, _ string, httpStatus int, _ string, latency int64) {
	log.Debug("http response",
		zap.String("client", l.name),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
}

func (l *ZapHTTPLogger) LogResponseError(method, url string, _ map[string]string, _ string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warn("http response error",
		zap.String("client", l.name),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.String("response", truncate(responseBody)),
		zap.Int64("latency_ms", latency),
		zap.Error(err))
}

func (l *ZapHTTPLogger) LogRequestRetry(method, url string, _ map[string]string, _ string, _ int, _ string, latency int64, err error, retryCount, maxRetries int) {
	log.Warn("http request retry",
		zap.String("client", l.name),
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("retry", retryCount),
		zap.Int("max_retries", maxRetries),
		zap.Int64("latency_ms", latency),
		zap.Error(err))
}

func truncate(body string) string {
	if len(body) <= maxLoggedBody {
		return body
	}
	return body[:maxLoggedBody] + "..."
}
