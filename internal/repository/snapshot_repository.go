package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"ads-report-service/internal/model"
)

// SnapshotRepository persists and reads back archived report rows. The
// archive is write-mostly: one insert path fed by the batch worker, one read
// path for the history endpoint.
type SnapshotRepository interface {
	InsertSnapshots(ctx context.Context, snapshots []model.ReportSnapshot) error
	RecentSnapshots(ctx context.Context, limit int) ([]model.ReportSnapshot, error)
}

type snapshotRepository struct {
	conn clickhouse.Conn
}

// NewSnapshotRepository creates a SnapshotRepository backed by ClickHouse.
func NewSnapshotRepository(conn clickhouse.Conn) SnapshotRepository {
	return &snapshotRepository{conn: conn}
}

const insertSnapshotQuery = `
	INSERT INTO report_snapshots (id, captured_at, range_start, range_end, group_key, platform, spend, leads, clicks, impressions)
`

func (r *snapshotRepository) InsertSnapshots(ctx context.Context, snapshots []model.ReportSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertSnapshotQuery)
	if err != nil {
		return fmt.Errorf("prepare snapshot batch: %w", err)
	}

	for _, s := range snapshots {
		if err := batch.Append(
			s.ID,
			s.CapturedAt,
			s.RangeStart,
			s.RangeEnd,
			s.GroupKey,
			s.Platform,
			s.Spend,
			s.Leads,
			s.Clicks,
			s.Impressions,
		); err != nil {
			return fmt.Errorf("append snapshot: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send snapshot batch: %w", err)
	}
	return nil
}

type snapshotRow struct {
	ID          string    `ch:"id"`
	CapturedAt  time.Time `ch:"captured_at"`
	RangeStart  time.Time `ch:"range_start"`
	RangeEnd    time.Time `ch:"range_end"`
	GroupKey    string    `ch:"group_key"`
	Platform    string    `ch:"platform"`
	Spend       float64   `ch:"spend"`
	Leads       int64     `ch:"leads"`
	Clicks      int64     `ch:"clicks"`
	Impressions int64     `ch:"impressions"`
}

const recentSnapshotsQuery = `
	SELECT id, captured_at, range_start, range_end, group_key, platform, spend, leads, clicks, impressions
	FROM report_snapshots
	ORDER BY captured_at DESC, group_key ASC
	LIMIT $1
`

func (r *snapshotRepository) RecentSnapshots(ctx context.Context, limit int) ([]model.ReportSnapshot, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []snapshotRow
	if err := r.conn.Select(ctx, &rows, recentSnapshotsQuery, limit); err != nil {
		return nil, fmt.Errorf("select snapshots: %w", err)
	}

	out := make([]model.ReportSnapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.ReportSnapshot{
			ID:          row.ID,
			CapturedAt:  row.CapturedAt,
			RangeStart:  row.RangeStart,
			RangeEnd:    row.RangeEnd,
			GroupKey:    row.GroupKey,
			Platform:    row.Platform,
			Spend:       row.Spend,
			Leads:       row.Leads,
			Clicks:      row.Clicks,
			Impressions: row.Impressions,
		})
	}
	return out, nil
}
