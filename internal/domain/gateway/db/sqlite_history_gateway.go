package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cep-api/internal/domain/entity"
	"cep-api/internal/domain/model"
)

// SQLiteHistoryGateway stores the list as a row of the keyed_records table
type SQLiteHistoryGateway struct {
	DB  *sql.DB
	key string
}

var _ HistoryGateway = (*SQLiteHistoryGateway)(nil)

// NewSQLiteHistoryGateway expects a database opened by infra/database/sqlite
func NewSQLiteHistoryGateway(db *sql.DB, key string) *SQLiteHistoryGateway {
	if key == "" {
		key = DefaultHistoryKey
	}
	return &SQLiteHistoryGateway{DB: db, key: key}
}

func (gateway *SQLiteHistoryGateway) Load(ctx context.Context) ([]entity.ConsultaHistorico, error) {
	var value string
	err := gateway.DB.QueryRowContext(ctx,
		`SELECT value FROM keyed_records WHERE record_key = ?`, gateway.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []entity.ConsultaHistorico{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return decodeHistory([]byte(value))
}

func (gateway *SQLiteHistoryGateway) Save(ctx context.Context, entries []entity.ConsultaHistorico) error {
	data, err := encodeHistory(entries)
	if err != nil {
		return err
	}
	_, err = gateway.DB.ExecContext(ctx,
		`INSERT INTO keyed_records(record_key, value, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(record_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		gateway.key, string(data), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

func (gateway *SQLiteHistoryGateway) Delete(ctx context.Context) error {
	if _, err := gateway.DB.ExecContext(ctx, `DELETE FROM keyed_records WHERE record_key = ?`, gateway.key); err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}
	return nil
}

func (gateway *SQLiteHistoryGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	details := map[string]string{"storage": "sqlite"}
	if err := gateway.DB.PingContext(ctx); err != nil {
		return downStatus(err, details)
	}
	return upStatus(details)
}
