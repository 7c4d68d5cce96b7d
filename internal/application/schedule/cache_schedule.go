package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"cep-api/internal/domain/gateway/cache"
	"cep-api/pkg/log"
	"cep-api/pkg/msg"
)

// CacheScheduler periodically drops expired memo cache entries
type CacheScheduler struct {
	cron           *cron.Cron
	cache          cache.MemoCache
	cronExpression string
}

func NewCacheScheduler(memo cache.MemoCache, cronExpression string) *CacheScheduler {
	return &CacheScheduler{cron: cron.New(), cache: memo, cronExpression: cronExpression}
}

// InitCacheScheduleTasks registers the janitor and starts the cron
func (scheduler *CacheScheduler) InitCacheScheduleTasks() error {
	if _, err := scheduler.cron.AddFunc(scheduler.cronExpression, scheduler.PurgeExpiredEntries); err != nil {
		return fmt.Errorf("invalid cache janitor cron %q: %w", scheduler.cronExpression, err)
	}

	scheduler.cron.Start()
	log.Infof("Memo cache janitor started with cron expression: %s", scheduler.cronExpression)
	return nil
}

// PurgeExpiredEntries runs one janitor pass
func (scheduler *CacheScheduler) PurgeExpiredEntries() {
	requestID := uuid.New().String()

	removed, err := scheduler.cache.Purge(context.Background())
	if err != nil {
		log.Error("Memo cache janitor failed", zap.String("request_id", requestID), zap.Error(err))
		return
	}

	if removed > 0 {
		log.Info(msg.GetMessage("app.cache-purged", removed), zap.String("request_id", requestID))
	}
}

// Stop waits for a running pass to finish
func (scheduler *CacheScheduler) Stop() {
	ctx := scheduler.cron.Stop()
	<-ctx.Done()
}
