package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/model"
)

// KeyedRecord is a value stored under a unique key
type KeyedRecord struct {
	Key       string `gorm:"column:record_key;primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (KeyedRecord) TableName() string {
	return "keyed_records"
}

// GormHistoryGateway stores the list through Gorm (Postgres in production)
type GormHistoryGateway struct {
	DB  *gorm.DB
	key string
}

var _ HistoryGateway = (*GormHistoryGateway)(nil)

func NewGormHistoryGateway(db *gorm.DB, key string) *GormHistoryGateway {
	if key == "" {
		key = DefaultHistoryKey
	}
	return &GormHistoryGateway{DB: db, key: key}
}

func (gateway *GormHistoryGateway) Load(ctx context.Context) ([]entity.ConsultaHistorico, error) {
	var record KeyedRecord
	err := gateway.DB.WithContext(ctx).Where("record_key = ?", gateway.key).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []entity.ConsultaHistorico{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return decodeHistory([]byte(record.Value))
}

func (gateway *GormHistoryGateway) Save(ctx context.Context, entries []entity.ConsultaHistorico) error {
	data, err := encodeHistory(entries)
	if err != nil {
		return err
	}
	record := KeyedRecord{Key: gateway.key, Value: string(data), UpdatedAt: time.Now()}
	err = gateway.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

func (gateway *GormHistoryGateway) Delete(ctx context.Context) error {
	err := gateway.DB.WithContext(ctx).Where("record_key = ?", gateway.key).Delete(&KeyedRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}
	return nil
}

func (gateway *GormHistoryGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	details := map[string]string{"storage": "postgres"}

	sqlDB, err := gateway.DB.DB()
	if err != nil {
		return downStatus(err, details)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return downStatus(err, details)
	}

	stats := sqlDB.Stats()
	details["open_connections"] = strconv.Itoa(stats.OpenConnections)
	details["in_use"] = strconv.Itoa(stats.InUse)
	return upStatus(details)
}
