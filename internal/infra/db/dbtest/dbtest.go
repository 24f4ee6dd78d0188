// Package dbtest поднимает пул к тестовой базе PostgreSQL.
// Тесты пропускаются, если FURNITURE_TEST_DSN не задан.
package dbtest

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/furniture-db/internal/infra/db"
)

const EnvDSN = "FURNITURE_TEST_DSN"

// DSN возвращает строку подключения или пропускает тест.
func DSN(t testing.TB) string {
	t.Helper()
	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s not set, skipping store-backed test", EnvDSN)
	}
	return dsn
}

// Open применяет миграции, очищает таблицы и возвращает пул.
// Пул закрывается по завершении теста.
func Open(t testing.TB) *pgxpool.Pool {
	t.Helper()
	dsn := DSN(t)
	ctx := context.Background()

	if err := db.Migrate(ctx, dsn, "up"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	conn, err := db.Connect(ctx, dsn, db.Options{MaxConns: 4})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if conn.Fallback {
		conn.Close()
		t.Fatalf("test database %q is not available", conn.Target)
	}
	t.Cleanup(conn.Close)

	Truncate(t, conn.Pool)
	return conn.Pool
}

func Truncate(t testing.TB, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		TRUNCATE product_workshops, products, workshops, product_types, material_types
		RESTART IDENTITY CASCADE
	`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}
