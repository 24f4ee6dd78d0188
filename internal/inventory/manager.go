// Package inventory: единая точка доступа к базе мебельного производства:
// списки, поиск, изменения продукции и отчёты. Ошибки хранилища
// логируются здесь и возвращаются как *dberr.Error.
package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/furniture-db/internal/dberr"
	"github.com/Spok95/furniture-db/internal/domain/catalog"
	"github.com/Spok95/furniture-db/internal/domain/materials"
	"github.com/Spok95/furniture-db/internal/domain/production"
	"github.com/Spok95/furniture-db/internal/domain/products"
	"github.com/Spok95/furniture-db/internal/domain/reports"
	"github.com/Spok95/furniture-db/internal/infra/db"
	"github.com/Spok95/furniture-db/internal/infra/metrics"
)

type Manager struct {
	pool    *pgxpool.Pool
	close   func()
	log     *slog.Logger
	metrics *metrics.Metrics

	catalog    *catalog.Repo
	materials  *materials.Repo
	products   *products.Repo
	production *production.Repo
	reports    *reports.Repo
}

type Options struct {
	MaxConns int32
	// Bootstrap: создать базу, если её ещё нет.
	Bootstrap bool
	Log       *slog.Logger
	Metrics   *metrics.Metrics
}

// New оборачивает уже открытый пул. Закрывать пул должен вызывающий.
func New(pool *pgxpool.Pool, log *slog.Logger, m *metrics.Metrics) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		pool:       pool,
		close:      func() {},
		log:        log,
		metrics:    m,
		catalog:    catalog.NewRepo(pool),
		materials:  materials.NewRepo(pool),
		products:   products.NewRepo(pool),
		production: production.NewRepo(pool),
		reports:    reports.NewRepo(pool),
	}
}

// Open подключается к базе и владеет пулом до Close.
func Open(ctx context.Context, dsn string, opts Options) (*Manager, error) {
	dbOpts := db.Options{MaxConns: opts.MaxConns, Log: opts.Log}

	var (
		conn *db.Conn
		err  error
	)
	if opts.Bootstrap {
		conn, err = db.Bootstrap(ctx, dsn, dbOpts)
	} else {
		conn, err = db.Connect(ctx, dsn, dbOpts)
	}
	if err != nil {
		return nil, err
	}
	if conn.Fallback {
		conn.Close()
		return nil, dberr.New("inventory.open", dberr.KindConnection, "database %q does not exist", conn.Target)
	}

	m := New(conn.Pool, opts.Log, opts.Metrics)
	m.close = conn.Close
	return m, nil
}

func (m *Manager) Close() {
	if m.close != nil {
		m.close()
		m.close = nil
	}
}

// Ping проверяет доступность базы.
func (m *Manager) Ping(ctx context.Context) error {
	return run(m, ctx, "ping", func(ctx context.Context) error { return m.pool.Ping(ctx) })
}

func run(m *Manager, ctx context.Context, op string, fn func(context.Context) error) error {
	_, err := call(m, ctx, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// call выполняет операцию, логирует отказ и учитывает метрики.
func call[T any](m *Manager, ctx context.Context, op string, fn func(context.Context) (T, error)) (T, error) {
	started := time.Now()
	out, err := fn(ctx)
	if err == nil {
		m.metrics.ObserveStore(op, "ok", started)
		return out, nil
	}

	err = dberr.Wrap(op, err)
	kind := dberr.KindOf(err)
	m.metrics.ObserveStore(op, string(kind), started)

	switch kind {
	case dberr.KindConnection, dberr.KindInternal:
		m.log.Error("store operation failed", "op", op, "kind", kind, "err", err)
	default:
		m.log.Warn("store operation rejected", "op", op, "kind", kind, "err", err)
	}
	var zero T
	return zero, err
}
