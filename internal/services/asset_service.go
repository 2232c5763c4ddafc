package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"wondex/internal/cache"
	apperrors "wondex/internal/errors"
	"wondex/internal/mockdata"
	"wondex/internal/models"
	"wondex/internal/normalize"
	"wondex/internal/provider"
	"wondex/internal/registry"
)

const searchLimit = 10

// assetService orchestrates the quote feed, the dividend sources, and the
// mock dataset behind the asset endpoints. Upstream failure degrades the
// payload instead of surfacing as an error.
type assetService struct {
	db        *gorm.DB
	quotes    QuoteSource
	scraper   ScrapeSource
	dividends DividendResolver
	listCache *cache.TTL[AssetList]
}

// NewAssetService creates a new AssetServicer. cacheTTL bounds how long the
// full asset list is served without a refresh.
func NewAssetService(db *gorm.DB, quotes QuoteSource, scraper ScrapeSource, dividends DividendResolver, cacheTTL time.Duration) AssetServicer {
	return &assetService{
		db:        db,
		quotes:    quotes,
		scraper:   scraper,
		dividends: dividends,
		listCache: cache.NewTTL[AssetList](cacheTTL),
	}
}

// ListAssets returns the dashboard list, filtered by kind ("ETF", "STOCK",
// or "ALL"). The unfiltered list is cached; the filter applies on the way
// out so every kind shares one refresh.
func (s *assetService) ListAssets(ctx context.Context, kind string) (*AssetList, error) {
	full, ok := s.listCache.Get(time.Now())
	if !ok {
		full = s.refreshAssets(ctx)
		s.listCache.Set(full, time.Now())
	}

	if kind == "" || kind == "ALL" {
		out := full
		return &out, nil
	}

	filtered := make([]models.Asset, 0, len(full.Assets))
	for _, a := range full.Assets {
		if string(a.AssetKind()) == kind {
			filtered = append(filtered, a)
		}
	}
	return &AssetList{Assets: filtered, Degraded: full.Degraded}, nil
}

// refreshAssets rebuilds the full list from live quotes, substituting the
// mock record for any ticker whose quote or normalization failed. Degraded
// is set only when nothing live survived.
func (s *assetService) refreshAssets(ctx context.Context) AssetList {
	tickers := registry.AllTickers()
	raws := s.quotes.FetchMany(ctx, tickers)

	assets := make([]models.Asset, 0, len(tickers))
	live := 0
	for _, ticker := range tickers {
		if asset := normalize.Asset(raws[ticker], ticker, nil); asset != nil {
			assets = append(assets, asset)
			if raws[ticker] != nil {
				live++
			}
			continue
		}
		if mock := mockdata.Find(ticker); mock != nil {
			assets = append(assets, mock)
		}
	}

	return AssetList{Assets: assets, Degraded: live == 0}
}

// GetAssetDetail returns one asset with its extended detail block. The quote
// and the scraped dividend are fetched concurrently; a dead quote feed falls
// back to the mock dataset.
func (s *assetService) GetAssetDetail(ctx context.Context, ticker string) (*AssetWithDetail, error) {
	if !registry.Known(ticker) {
		return nil, apperrors.ErrUnknownTicker
	}

	var (
		wg   sync.WaitGroup
		raw  *provider.RawQuote
		info provider.DividendInfo
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		raw, _ = s.quotes.FetchOne(ctx, ticker)
	}()
	go func() {
		defer wg.Done()
		info = s.scraper.ScrapeDividend(ctx, ticker)
	}()
	wg.Wait()

	asset := normalize.Asset(raw, ticker, &info)
	if raw == nil || asset == nil {
		mock := mockdata.Find(ticker)
		detail := mockdata.AssetDetail(ticker)
		if mock == nil || detail == nil {
			return nil, apperrors.ErrUnknownTicker
		}
		return &AssetWithDetail{Asset: mock, Detail: detail, Degraded: true}, nil
	}

	return &AssetWithDetail{
		Asset:  asset,
		Detail: normalize.Detail(raw, ticker, &info),
	}, nil
}

// GetPriceHistory returns daily closes for the requested window, serving the
// deterministic mock series when the chart feed yields nothing.
func (s *assetService) GetPriceHistory(ctx context.Context, ticker string, days int) (*PriceHistory, error) {
	if !registry.Known(ticker) {
		return nil, apperrors.ErrUnknownTicker
	}
	if days <= 0 {
		days = 30
	}

	raws, err := s.quotes.FetchHistory(ctx, ticker, days)
	if err != nil || len(raws) == 0 {
		return &PriceHistory{Points: mockdata.PriceHistory(ticker), Degraded: true}, nil
	}
	return &PriceHistory{Points: normalize.PriceHistory(raws)}, nil
}

// GetHoldings returns the constituent breakdown for an ETF. The breakdown
// is served from the curated dataset.
func (s *assetService) GetHoldings(ctx context.Context, ticker string) ([]models.Holding, error) {
	if !registry.Known(ticker) {
		return nil, apperrors.ErrUnknownTicker
	}
	return mockdata.Holdings(ticker), nil
}

// GetDividend resolves dividend info through the two-tier source chain.
func (s *assetService) GetDividend(ctx context.Context, ticker string) (provider.DividendInfo, error) {
	if !registry.Known(ticker) {
		return provider.DividendInfo{}, apperrors.ErrUnknownTicker
	}
	kind := models.KindStock
	if registry.IsETF(ticker) {
		kind = models.KindETF
	}
	return s.dividends.Resolve(ctx, ticker, kind), nil
}

// Search matches ticker or name against the master table, case-insensitively.
// A dead or empty table degrades to a substring scan of the mock dataset.
func (s *assetService) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &SearchResult{Hits: []SearchHit{}}, nil
	}

	var rows []models.AssetMaster
	pattern := "%" + query + "%"
	err := s.db.WithContext(ctx).
		Where("lower(ticker) LIKE lower(?) OR lower(name) LIKE lower(?)", pattern, pattern).
		Order("ticker ASC").
		Limit(searchLimit).
		Find(&rows).Error

	if err == nil && len(rows) > 0 {
		hits := make([]SearchHit, len(rows))
		for i, row := range rows {
			hits[i] = SearchHit{Ticker: row.Ticker, Name: row.Name, MarketType: row.MarketType}
		}
		return &SearchResult{Hits: hits}, nil
	}

	hits := make([]SearchHit, 0, searchLimit)
	for _, a := range mockdata.Search(query, searchLimit) {
		marketType := "KOSPI"
		if a.AssetKind() == models.KindETF {
			marketType = "ETF"
		}
		base := a.Base()
		hits = append(hits, SearchHit{Ticker: base.Ticker, Name: base.Name, MarketType: marketType})
	}
	return &SearchResult{Hits: hits, Degraded: true}, nil
}
