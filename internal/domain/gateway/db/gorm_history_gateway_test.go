package db_test

import (
	"context"
	"os"
	"testing"

	"cep-api/internal/domain/gateway/db"
	"cep-api/internal/domain/model"
	gormdb "cep-api/internal/infra/database/gorm"
)

func TestGormHistoryGateway(t *testing.T) {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		t.Skip("DATABASE_DSN not set")
	}

	conn, err := gormdb.Open(gormdb.Config{DSN: dsn})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	gateway := db.NewGormHistoryGateway(conn, "cep-history-test")
	if err := gateway.Delete(context.Background()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	t.Cleanup(func() { _ = gateway.Delete(context.Background()) })

	exerciseGateway(t, gateway)

	if health := gateway.Health(context.Background()); health.Status != model.StatusUp {
		t.Fatalf("Health() = %+v, want UP", health)
	}
}
