package db

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// RunMigrations ensures the snapshot table exists. This keeps the service
// self-contained without an external migration step.
func RunMigrations(ctx context.Context, conn clickhouse.Conn) error {
	err := conn.Exec(ctx, `
CREATE TABLE IF NOT EXISTS report_snapshots
(
	id            UUID,
	captured_at   DateTime('UTC'),
	range_start   Date,
	range_end     Date,
	group_key     String,
	platform      String,
	spend         Float64,
	leads         Int64,
	clicks        Int64,
	impressions   Int64
)
ENGINE = MergeTree
PARTITION BY toYYYYMM(captured_at)
ORDER BY (captured_at, group_key)
SETTINGS index_granularity = 8192;
`)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
