package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ads-report-service/internal/aggregate"
	"ads-report-service/internal/cache"
	"ads-report-service/internal/demo"
	"ads-report-service/internal/model"
	"ads-report-service/internal/normalize"
	"ads-report-service/internal/observability"
	"ads-report-service/internal/source"
)

var errNotConfigured = errors.New("source not configured")

// ValidationError represents user input issues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ReportService is the single entry point for report consumers. The only
// caller-visible outcomes are a real report or a demo-flagged one; source
// failures never escape as errors.
type ReportService interface {
	GetReport(ctx context.Context, dateRange model.DateRange, demoMode bool) (model.Report, error)
	Refresh(ctx context.Context, dateRange model.DateRange) (model.Report, error)
}

type reportService struct {
	leadSource   source.LeadSource
	statsSources []source.StatsSource
	columnMap    model.ColumnMapping
	cache        *cache.ReportCache
	generator    *demo.Generator
	demoSeed     int64
	worker       SnapshotWorker
	metrics      *observability.Metrics
	log          *zap.Logger
	now          func() time.Time
}

// NewReportService wires the facade. leadSource may be nil when the
// spreadsheet is not configured; every live request then degrades to the
// synthetic path.
func NewReportService(
	leadSource source.LeadSource,
	statsSources []source.StatsSource,
	columnMap model.ColumnMapping,
	reportCache *cache.ReportCache,
	generator *demo.Generator,
	demoSeed int64,
	worker SnapshotWorker,
	metrics *observability.Metrics,
	log *zap.Logger,
) ReportService {
	return &reportService{
		leadSource:   leadSource,
		statsSources: statsSources,
		columnMap:    columnMap,
		cache:        reportCache,
		generator:    generator,
		demoSeed:     demoSeed,
		worker:       worker,
		metrics:      metrics,
		log:          log,
		now:          time.Now,
	}
}

// GetReport returns the report for the range. Demo mode bypasses the cache
// and the live sources entirely: synthetic output is already cheap and
// deterministic.
func (s *reportService) GetReport(ctx context.Context, dateRange model.DateRange, demoMode bool) (model.Report, error) {
	if err := validateRange(dateRange); err != nil {
		return model.Report{}, err
	}

	if demoMode {
		return s.generator.Report(dateRange, s.demoSeed), nil
	}

	report, hit, err := s.cache.GetOrCompute(s.liveKey(dateRange), func() (model.Report, error) {
		return s.computeLive(ctx, dateRange), nil
	})
	if err != nil {
		return model.Report{}, err
	}
	if hit {
		s.metrics.CacheHits.Inc()
	} else {
		s.metrics.CacheMisses.Inc()
	}
	return report, nil
}

// Refresh drops the cached entry for the range and recomputes. Entries for
// other ranges stay cached.
func (s *reportService) Refresh(ctx context.Context, dateRange model.DateRange) (model.Report, error) {
	if err := validateRange(dateRange); err != nil {
		return model.Report{}, err
	}
	s.cache.Invalidate(s.liveKey(dateRange))
	return s.GetReport(ctx, dateRange, false)
}

// computeLive fetches and normalizes every source, aggregates, and archives
// the result. Any whole-source failure degrades the entire report to
// synthetic data: a half-real report would be misleading.
func (s *reportService) computeLive(ctx context.Context, dateRange model.DateRange) model.Report {
	var tally model.Tally

	leads, leadTally, err := s.fetchLeads(ctx, dateRange)
	if err != nil {
		return s.fallback(dateRange, "leads", err)
	}
	tally.Add(leadTally)

	var stats []model.CampaignStat
	for _, src := range s.statsSources {
		raw, err := src.FetchStats(ctx, dateRange)
		if err != nil {
			return s.fallback(dateRange, string(src.Platform()), err)
		}
		normalized, statTally, err := normalize.CampaignStats(raw, src.Platform())
		if err != nil {
			return s.fallback(dateRange, string(src.Platform()), err)
		}
		tally.Add(statTally)
		stats = append(stats, normalized...)
	}

	report := aggregate.Aggregate(leads, stats, dateRange)
	report.Tally = tally
	report.GeneratedAt = s.now().UTC()
	s.metrics.RowsDropped.Add(float64(tally.RowsDropped))

	s.worker.Enqueue(snapshotRows(report))
	return report
}

func (s *reportService) fetchLeads(ctx context.Context, dateRange model.DateRange) ([]model.LeadRecord, model.Tally, error) {
	if s.leadSource == nil {
		return nil, model.Tally{}, &source.FetchError{Source: "leads", Err: errNotConfigured}
	}
	rows, err := s.leadSource.FetchLeads(ctx, dateRange)
	if err != nil {
		return nil, model.Tally{}, err
	}
	return normalize.Leads(rows, s.columnMap)
}

// fallback swaps in a synthetic report after a whole-source failure. The
// result is demo-flagged so the dashboard can disclose degraded mode.
func (s *reportService) fallback(dateRange model.DateRange, sourceName string, err error) model.Report {
	s.log.Warn("live source failed, serving synthetic report",
		zap.String("source", sourceName),
		zap.Error(err))
	s.metrics.SourceFailures.WithLabelValues(sourceName).Inc()
	s.metrics.DemoFallbacks.Inc()
	return s.generator.Report(dateRange, s.demoSeed)
}

func (s *reportService) liveKey(dateRange model.DateRange) cache.Key {
	names := make([]string, 0, len(s.statsSources)+1)
	if s.leadSource != nil {
		names = append(names, "sheets")
	}
	for _, src := range s.statsSources {
		names = append(names, string(src.Platform()))
	}
	sort.Strings(names)
	return cache.Key{Sources: strings.Join(names, "+"), Range: dateRange, Demo: false}
}

// snapshotRows flattens a live report's campaign rows for the archive.
func snapshotRows(report model.Report) []model.ReportSnapshot {
	snapshots := make([]model.ReportSnapshot, 0, len(report.ByCampaign))
	for _, row := range report.ByCampaign {
		snapshots = append(snapshots, model.ReportSnapshot{
			ID:          uuid.NewString(),
			CapturedAt:  report.GeneratedAt,
			RangeStart:  model.Day(report.DateRange.Start),
			RangeEnd:    model.Day(report.DateRange.End),
			GroupKey:    row.GroupKey,
			Platform:    string(row.Platform),
			Spend:       row.Spend,
			Leads:       row.LeadCount,
			Clicks:      row.ClickCount,
			Impressions: row.ImpressionCount,
		})
	}
	return snapshots
}

func validateRange(dateRange model.DateRange) error {
	if dateRange.Start.IsZero() || dateRange.End.IsZero() {
		return &ValidationError{Message: "start and end are required"}
	}
	if model.Day(dateRange.Start).After(model.Day(dateRange.End)) {
		return &ValidationError{Message: "start must not be after end"}
	}
	return nil
}
