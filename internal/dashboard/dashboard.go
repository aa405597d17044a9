// Package dashboard derives presentation-ready views from the store:
// period totals, budget progress, chart datasets and table rows. Results
// are memoized per store revision, so any mutation naturally invalidates
// them.
package dashboard

import (
	"fmt"
	"time"

	"bilancio/internal/cache"
	"bilancio/internal/core"
	"bilancio/internal/log"
	"bilancio/internal/store"
)

const (
	defaultCacheSize = 64
	defaultCacheTTL  = 5 * time.Minute
)

type (
	// Overview is the dashboard header for one month: scoped totals plus
	// budget usage.
	Overview struct {
		Profile string
		Year    int
		Month   int
		Totals  core.Totals
		Budget  core.Progress
	}

	// Options tune the dashboard. The zero value is usable.
	Options struct {
		Logger *log.Logger
		// Mode selects the category chart behavior; the default fixed
		// axis keeps chart legends stable across renders.
		Mode      core.BreakdownMode
		CacheSize int
		CacheTTL  time.Duration
	}

	Dashboard struct {
		store     *store.Store
		logger    *log.Logger
		mode      core.BreakdownMode
		overviews *cache.LRU[Overview]
		charts    *cache.LRU[[]core.CategoryAmount]
		trends    *cache.LRU[[]core.TrendPoint]
	}
)

func New(s *store.Store, opts Options) *Dashboard {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Dashboard{
		store:     s,
		logger:    logger.WithComponent(log.ComponentDashboard),
		mode:      opts.Mode,
		overviews: cache.New[Overview](size, ttl),
		charts:    cache.New[[]core.CategoryAmount](size, ttl),
		trends:    cache.New[[]core.TrendPoint](size, ttl),
	}
}

// Overview returns the month-scoped totals and budget progress for the
// active profile.
func (d *Dashboard) Overview(year, month int) Overview {
	snap := d.store.Snapshot()
	key := fmt.Sprintf("%s#%d#%04d-%02d", snap.Profile, snap.Revision, year, month)
	if ov, ok := d.overviews.Get(key); ok {
		return ov
	}

	totals := core.Sum(snap.Transactions, core.InMonth(year, month))
	ov := Overview{
		Profile: snap.Profile,
		Year:    year,
		Month:   month,
		Totals:  totals,
		Budget:  core.BudgetProgress(totals.Expense, snap.Budget),
	}
	d.overviews.Put(key, ov)
	d.logger.Debug("overview computed",
		log.FieldProfile, snap.Profile,
		log.FieldRevision, snap.Revision)
	return ov
}

// CurrentOverview is Overview for the calendar month of now.
func (d *Dashboard) CurrentOverview(now time.Time) Overview {
	return d.Overview(now.Year(), int(now.Month()))
}

// Totals returns the all-time income/expense/balance cards.
func (d *Dashboard) Totals() core.Totals {
	return core.Sum(d.store.Transactions(), nil)
}

// CategoryChart returns the expense-by-category dataset. In fixed-axis
// mode the axis is the profile's category set.
func (d *Dashboard) CategoryChart() []core.CategoryAmount {
	snap := d.store.Snapshot()
	key := fmt.Sprintf("%s#%d#cat#%d", snap.Profile, snap.Revision, d.mode)
	if ds, ok := d.charts.Get(key); ok {
		return ds
	}

	var axis []string
	if d.mode == core.BreakdownFixedAxis {
		axis = snap.Categories
	}
	ds := core.CategoryBreakdown(snap.Transactions, core.Expense, d.mode, axis)
	d.charts.Put(key, ds)
	return ds
}

// TrendChart returns the all-time month-by-month dataset, ascending.
func (d *Dashboard) TrendChart() []core.TrendPoint {
	snap := d.store.Snapshot()
	key := fmt.Sprintf("%s#%d#trend", snap.Profile, snap.Revision)
	if ds, ok := d.trends.Get(key); ok {
		return ds
	}

	ds := core.MonthYearBreakdown(snap.Transactions)
	d.trends.Put(key, ds)
	return ds
}

// YearChart returns the 12-month dataset for a single year.
func (d *Dashboard) YearChart(year int) [12]core.MonthTotals {
	return core.MonthlyBreakdown(d.store.Transactions(), year)
}

// Table returns filtered, sorted rows for the transactions table. Filter
// combinations vary too much to be worth caching.
func (d *Dashboard) Table(f core.TableFilter) []core.Transaction {
	return core.FilterSort(d.store.Transactions(), f)
}
