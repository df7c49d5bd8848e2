package postgres

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/corray333/backend-labs/pricing/internal/service/models/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"
)

// Conn is the subset of pgxpool.Pool the repositories and the schema
// initializer depend on. Keeping it narrow lets tests substitute a mock
// pool for the real one.
type Conn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Acquirer hands out the shared connection pool. Client implements it;
// tests substitute their own.
type Acquirer interface {
	Acquire(ctx context.Context) (Conn, error)
}

// Client owns the single process-wide connection pool. The pool is
// established lazily on first Acquire and reused by every caller after
// that; a failed handshake leaves the client uninitialized so the next
// Acquire retries from scratch.
type Client struct {
	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewClient creates a new Postgres client without connecting.
func NewClient() *Client {
	return &Client{}
}

// Acquire returns the shared pool, performing the initial handshake on
// first use.
func (c *Client) Acquire(ctx context.Context) (Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pool != nil {
		return c.pool, nil
	}

	config, err := pgxpool.ParseConfig(ConnString())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConnection, "failed to parse database configuration", err)
	}

	config.MaxConns = int32(intSetting("postgres.pool.max_conns", 10))
	config.MinConns = int32(intSetting("postgres.pool.min_conns", 0))
	config.MaxConnIdleTime = time.Duration(intSetting("postgres.pool.idle_timeout_seconds", 30)) * time.Second
	config.ConnConfig.ConnectTimeout = time.Duration(intSetting("postgres.connect_timeout_seconds", 5)) * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConnection, "failed to create connection pool", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, apperrors.Wrap(apperrors.ErrConnection, "failed to connect to database", err)
	}

	c.pool = pool

	return c.pool, nil
}

// Close closes the pool for graceful shutdown. No-op when the pool was
// never established.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
	}
}

// ConnString builds the DSN from the environment with development
// fallbacks. Transport encryption and timeouts come from the config file.
func ConnString() string {
	sslmode := viper.GetString("postgres.sslmode")
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("PRICING_PG_HOST", "localhost"),
		envOr("PRICING_PG_PORT", "5432"),
		envOr("PRICING_PG_USER", "postgres"),
		envOr("PRICING_PG_PASSWORD", "postgres"),
		envOr("PRICING_PG_DB", "orderdb"),
		sslmode,
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func intSetting(key string, fallback int) int {
	if v := viper.GetInt(key); v != 0 {
		return v
	}

	return fallback
}
