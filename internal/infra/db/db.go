package db

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/furniture-db/internal/dberr"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DefaultDatabase: служебная база, к которой подключаемся, если целевой ещё нет.
const DefaultDatabase = "postgres"

type Options struct {
	MaxConns int32
	Log      *slog.Logger
}

type Conn struct {
	Pool *pgxpool.Pool
	// Database: база, к которой реально подключились.
	Database string
	// Fallback=true, если целевая база недоступна и пул открыт к DefaultDatabase.
	Fallback bool
	Target   string
}

func (c *Conn) Close() {
	if c != nil && c.Pool != nil {
		c.Pool.Close()
	}
}

// Connect открывает пул к базе из dsn. При неудаче один раз пробует
// подключиться к DefaultDatabase, чтобы вызывающий мог создать схему.
func Connect(ctx context.Context, dsn string, opts Options) (*Conn, error) {
	const op = "db.connect"
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, &dberr.Error{Op: op, Kind: dberr.KindConnection, Err: err}
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	cfg.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	target := cfg.ConnConfig.Database

	pool, err := open(ctx, cfg)
	if err == nil {
		return &Conn{Pool: pool, Database: target, Target: target}, nil
	}
	if target == DefaultDatabase {
		return nil, &dberr.Error{Op: op, Kind: dberr.KindConnection, Err: err}
	}
	log.Warn("db connect failed, retrying without database", "database", target, "err", err)

	fb := cfg.Copy()
	fb.ConnConfig.Database = DefaultDatabase
	pool, fbErr := open(ctx, fb)
	if fbErr != nil {
		return nil, &dberr.Error{Op: op, Kind: dberr.KindConnection, Err: fmt.Errorf("%w; fallback: %v", err, fbErr)}
	}
	return &Conn{Pool: pool, Database: DefaultDatabase, Fallback: true, Target: target}, nil
}

func open(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Bootstrap подключается к базе и, если её нет, создаёт её через
// резервное подключение и переподключается.
func Bootstrap(ctx context.Context, dsn string, opts Options) (*Conn, error) {
	conn, err := Connect(ctx, dsn, opts)
	if err != nil {
		return nil, err
	}
	if !conn.Fallback {
		return conn, nil
	}

	_, err = conn.Pool.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{conn.Target}.Sanitize())
	conn.Close()
	if err != nil {
		return nil, dberr.Wrap("db.bootstrap", err)
	}
	if opts.Log != nil {
		opts.Log.Info("database created", "database", conn.Target)
	}

	conn, err = Connect(ctx, dsn, opts)
	if err != nil {
		return nil, err
	}
	if conn.Fallback {
		conn.Close()
		return nil, dberr.New("db.bootstrap", dberr.KindConnection, "database %q still unavailable", conn.Target)
	}
	return conn, nil
}
