package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"math/rand/v2"
	"time"

	// Registers the "pgx" driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/calebm/taskman-api/internal/config"
	"github.com/calebm/taskman-api/internal/platform/logger"
	"github.com/calebm/taskman-api/internal/store"
)

// maxConnAttempts is the fixed number of acquisition attempts before the
// provider gives up with store.ErrConnectionFailed. This count is part of
// the operational contract.
const maxConnAttempts = 3

// connRetryBaseDelay is the base for the jittered backoff between attempts.
const connRetryBaseDelay = 100 * time.Millisecond

// ConnProvider hands out database connections from the underlying pool,
// retrying transient failures a bounded number of times. Callers own the
// returned connection and must release it with Close on every exit path.
type ConnProvider struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewConnProvider creates a ConnProvider over an opened pool.
// If logger is nil, the default logger is used.
func NewConnProvider(db *sql.DB, log *slog.Logger) *ConnProvider {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ConnProvider{
		db:     db,
		logger: log.With(slog.String("component", "conn_provider")),
	}
}

// Acquire checks out a connection and verifies it with a ping, making up to
// maxConnAttempts attempts with jittered backoff in between. Every failed
// attempt is logged with its attempt number; after the final failure it
// returns store.ErrConnectionFailed.
func (p *ConnProvider) Acquire(ctx context.Context) (*sql.Conn, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	for attempt := 1; attempt <= maxConnAttempts; attempt++ {
		conn, err := p.db.Conn(ctx)
		if err == nil {
			if pingErr := conn.PingContext(ctx); pingErr == nil {
				log.Debug("database connection established",
					slog.Int("attempt", attempt))
				return conn, nil
			} else {
				err = pingErr
				if closeErr := conn.Close(); closeErr != nil {
					log.Error("failed to release unhealthy connection",
						slog.String("error", closeErr.Error()))
				}
			}
		}

		log.Error("failed to acquire database connection",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", maxConnAttempts),
			slog.String("error", err.Error()))

		if attempt < maxConnAttempts {
			backoff := connRetryBaseDelay*time.Duration(attempt) +
				time.Duration(rand.Int64N(int64(connRetryBaseDelay)))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, store.ErrConnectionFailed
}

// Connect opens the connection pool for the given settings and verifies
// connectivity through the provider's retry contract. Returns the pool and
// a provider over it, or an error after the attempts are exhausted.
func Connect(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*sql.DB, *ConnProvider, error) {
	db, err := sql.Open("pgx", cfg.URL())
	if err != nil {
		return nil, nil, err
	}

	// Reasonable pool defaults for a small request-driven service
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	provider := NewConnProvider(db, log)

	conn, err := provider.Acquire(ctx)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close pool after connect failure",
				slog.String("error", closeErr.Error()))
		}
		return nil, nil, err
	}
	if err := conn.Close(); err != nil {
		log.Error("failed to release connection", slog.String("error", err.Error()))
	}

	log.Info("database connection established",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Name))
	return db, provider, nil
}
