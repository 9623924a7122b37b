package cache

import (
	"fmt"
	"sync"
	"time"

	"ads-report-service/internal/model"
)

// Key identifies one cached report: which sources fed it, for which range,
// and whether it was demo data.
type Key struct {
	Sources string
	Range   model.DateRange
	Demo    bool
}

func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%s|%t",
		k.Sources,
		model.Day(k.Range.Start).Format("2006-01-02"),
		model.Day(k.Range.End).Format("2006-01-02"),
		k.Demo)
}

type entry struct {
	report   model.Report
	cachedAt time.Time
}

// ReportCache memoizes computed reports behind a TTL. It is the sole
// mechanism bounding call volume to the advertising platforms, so the whole
// read-decide-compute-write sequence runs under one lock: two racing
// requests for the same expired key must not both hit the platforms.
type ReportCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty cache with the given TTL.
func New(ttl time.Duration) *ReportCache {
	return &ReportCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// GetOrCompute returns the cached report for key if it is younger than the
// TTL, otherwise invokes compute, stores the result and returns it. The
// second return reports whether this was a cache hit. A compute error is
// returned as-is and nothing is stored.
func (c *ReportCache) GetOrCompute(key Key, compute func() (model.Report, error)) (model.Report, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key.String()
	if e, ok := c.entries[k]; ok && c.now().Sub(e.cachedAt) <= c.ttl {
		return e.report, true, nil
	}

	report, err := compute()
	if err != nil {
		return model.Report{}, false, err
	}
	c.entries[k] = entry{report: report, cachedAt: c.now()}
	return report, false, nil
}

// Invalidate drops the entry for key. Entries for other keys, including
// other date ranges, are untouched.
func (c *ReportCache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key.String())
}
