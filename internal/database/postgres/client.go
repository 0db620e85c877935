package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/learnhub/learnhub-api/pkg/metrics"
)

// Client wraps a pgx connection pool with observability
type Client struct {
	pool *pgxpool.Pool
}

// NewClient creates a postgres client backed by an existing pool
func NewClient(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool}
}

// Ping verifies database connectivity (used by the health endpoint)
func (c *Client) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

// recordMetrics records a database operation's duration and outcome
func recordMetrics(operation, status string, duration float64) {
	metrics.DBOperationDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBOperationTotal.WithLabelValues(operation, status).Inc()
}

// nilIfEmpty converts an empty string to nil for nullable columns
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
