// Package collector syncs the full exchange listing (KOSPI + KOSDAQ) into
// the assets_master table.
package collector

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wondex/internal/logger"
	"wondex/internal/models"
	"wondex/internal/provider"
)

const (
	// lookbackBusinessDays pads the query window so the run survives
	// source lag around holidays; only the latest business date is kept.
	lookbackBusinessDays = 30

	// upsertBatchSize is the number of rows per upsert transaction. A
	// failure mid-run leaves earlier batches committed; there is no
	// run-level rollback.
	upsertBatchSize = 500
)

// etfKeywords are the Korean ETF-issuer brand tokens used to classify rows
// the listing service mixes in with stocks. The match is a substring
// heuristic and known to be imperfect; ambiguous names are accepted as-is.
var etfKeywords = []string{
	"KODEX", "TIGER", "KBSTAR", "HANARO", "RISE", "SOL",
	"TIMEFOLIO", "FOCUS", "SMART", "ACE", "KOSEF", "파워",
}

// marketTypeMap folds the source's market-segment enum into the stored
// categories. KONEX is carried under KOSDAQ.
var marketTypeMap = map[string]string{
	"KOSPI":  "KOSPI",
	"KOSDAQ": "KOSDAQ",
	"KONEX":  "KOSDAQ",
}

// ListingsSource is the paginated full-market listing feed.
type ListingsSource interface {
	FetchPage(ctx context.Context, pageNo int, beginDt, endDt string) ([]provider.ListingRow, int, error)
}

// RunResult summarizes one collector run.
type RunResult struct {
	LatestDate string
	Collected  int
	Upserted   int
	ByMarket   map[string]int64
	Duration   time.Duration
}

// Collector pages through the listing service and upserts the latest
// snapshot into assets_master.
type Collector struct {
	listings ListingsSource
	db       *gorm.DB
	limiter  *rate.Limiter
	log      *zap.SugaredLogger
}

// New creates a collector. Pages are fetched strictly sequentially at most
// once per second; the throttle respects the open-data portal quota and is
// not a tunable.
func New(listings ListingsSource, db *gorm.DB) *Collector {
	return &Collector{
		listings: listings,
		db:       db,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
		log:      logger.Named("collector"),
	}
}

// Run executes one full sync. Any page failure aborts the run; batches
// already committed stay committed. Zero collected rows is an error and the
// store is left untouched.
func (c *Collector) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()

	endDt := recentTradingDate(start)
	beginDt := prevBusinessDate(endDt, lookbackBusinessDays)
	beginStr, endStr := beginDt.Format("20060102"), endDt.Format("20060102")
	c.log.Infow("starting full-market sync", "begin", beginStr, "end", endStr)

	var rows []provider.ListingRow
	totalCount := 0
	for pageNo := 1; ; pageNo++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		items, total, err := c.listings.FetchPage(ctx, pageNo, beginStr, endStr)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", pageNo, err)
		}
		if pageNo == 1 {
			totalCount = total
			c.log.Infow("first page received", "total_count", totalCount)
		}

		rows = append(rows, items...)
		c.log.Infow("page collected", "page", pageNo, "accumulated", len(rows))

		if len(rows) >= totalCount || len(items) < provider.ListingsPageSize {
			break
		}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no listing rows collected; check credential and network")
	}

	// The window spans many days; keep only the latest snapshot.
	latest := ""
	for _, row := range rows {
		if row.BasDt > latest {
			latest = row.BasDt
		}
	}
	snapshot := rows[:0]
	for _, row := range rows {
		if row.BasDt == latest {
			snapshot = append(snapshot, row)
		}
	}
	c.log.Infow("snapshot selected", "bas_dt", latest, "instruments", len(snapshot))

	upserted, err := c.upsert(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	byMarket, err := c.countByMarket(ctx)
	if err != nil {
		return nil, err
	}

	return &RunResult{
		LatestDate: latest,
		Collected:  len(rows),
		Upserted:   upserted,
		ByMarket:   byMarket,
		Duration:   time.Since(start),
	}, nil
}

// upsert writes the snapshot keyed by ticker in fixed-size transactions.
// Conflicts update name, market type, and the timestamp; ticker and the
// user-managed category column are never overwritten.
func (c *Collector) upsert(ctx context.Context, rows []provider.ListingRow) (int, error) {
	now := time.Now()
	upserted := 0

	for i := 0; i < len(rows); i += upsertBatchSize {
		batch := rows[i:min(i+upsertBatchSize, len(rows))]

		records := make([]models.AssetMaster, len(batch))
		for j, row := range batch {
			records[j] = models.AssetMaster{
				Ticker:      row.SrtnCd,
				Name:        row.ItmsNm,
				MarketType:  classify(row),
				LastUpdated: now,
			}
		}

		err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "ticker"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "market_type", "last_updated"}),
			}).Create(&records).Error
		})
		if err != nil {
			return upserted, fmt.Errorf("upserting batch at offset %d: %w", i, err)
		}
		upserted += len(batch)
	}

	return upserted, nil
}

// countByMarket returns the per-market-type row counts of the whole table.
func (c *Collector) countByMarket(ctx context.Context) (map[string]int64, error) {
	type group struct {
		MarketType string
		N          int64
	}
	var groups []group
	err := c.db.WithContext(ctx).
		Model(&models.AssetMaster{}).
		Select("market_type, count(*) as n").
		Group("market_type").
		Order("market_type").
		Scan(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("counting by market type: %w", err)
	}

	out := make(map[string]int64, len(groups))
	for _, g := range groups {
		out[g.MarketType] = g.N
	}
	return out, nil
}

// classify maps a listing row to its stored market type. ETF brand tokens in
// the name win over the source's own market segment, because the listing
// service files ETFs under their venue.
func classify(row provider.ListingRow) string {
	upper := strings.ToUpper(row.ItmsNm)
	for _, kw := range etfKeywords {
		if strings.Contains(upper, kw) {
			return "ETF"
		}
	}
	if mapped, ok := marketTypeMap[row.MrktCtg]; ok {
		return mapped
	}
	return row.MrktCtg
}

// recentTradingDate steps a timestamp back to the most recent weekday.
// Exchange holidays are not modeled; the wide query window absorbs them.
func recentTradingDate(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Sunday:
		return t.AddDate(0, 0, -2)
	case time.Saturday:
		return t.AddDate(0, 0, -1)
	default:
		return t
	}
}

// prevBusinessDate walks back n weekdays from a date.
func prevBusinessDate(from time.Time, n int) time.Time {
	d := from
	for skipped := 0; skipped < n; {
		d = d.AddDate(0, 0, -1)
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			skipped++
		}
	}
	return d
}

// SortedMarkets returns the summary keys in display order.
func (r *RunResult) SortedMarkets() []string {
	keys := make([]string, 0, len(r.ByMarket))
	for k := range r.ByMarket {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
