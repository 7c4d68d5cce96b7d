package redis

import (
	"context"
	"strconv"
	"time"
)

// HealthCheck pings Redis and reports latency and pool usage
func HealthCheck(ctx context.Context, client *Client) (map[string]string, error) {
	start := time.Now()
	if err := client.Ping(ctx); err != nil {
		return map[string]string{"message": err.Error()}, err
	}

	stats := client.Stats()
	return map[string]string{
		"message":     "UP",
		"addr":        client.config.Addr,
		"latency_ms":  strconv.FormatInt(time.Since(start).Milliseconds(), 10),
		"total_conns": strconv.FormatUint(uint64(stats.TotalConns), 10),
		"idle_conns":  strconv.FormatUint(uint64(stats.IdleConns), 10),
		"timeouts":    strconv.FormatUint(uint64(stats.Timeouts), 10),
	}, nil
}
