package services

import (
	"context"

	"wondex/internal/models"
	"wondex/internal/provider"
)

// QuoteSource is the realtime quote and chart feed consumed by the asset
// service. *provider.QuoteClient satisfies it.
type QuoteSource interface {
	FetchOne(ctx context.Context, ticker string) (*provider.RawQuote, error)
	FetchMany(ctx context.Context, tickers []string) map[string]*provider.RawQuote
	FetchHistory(ctx context.Context, ticker string, days int) ([]provider.RawQuote, error)
}

// ScrapeSource is the HTML dividend fallback. *provider.Scraper satisfies it.
type ScrapeSource interface {
	ScrapeDividend(ctx context.Context, ticker string) provider.DividendInfo
}

// DividendResolver chooses between the structured dividend API and the
// scraper. *dividend.Resolver satisfies it.
type DividendResolver interface {
	Resolve(ctx context.Context, ticker string, kind models.AssetKind) provider.DividendInfo
}

// AssetList is the list endpoint payload plus its provenance.
type AssetList struct {
	Assets   []models.Asset
	Degraded bool
}

// AssetWithDetail is the detail endpoint payload plus its provenance.
type AssetWithDetail struct {
	Asset    models.Asset
	Detail   models.AssetDetail
	Degraded bool
}

// PriceHistory is the history endpoint payload plus its provenance.
type PriceHistory struct {
	Points   []models.PricePoint
	Degraded bool
}

// SearchHit is one row of a master-table search.
type SearchHit struct {
	Ticker     string `json:"ticker"`
	Name       string `json:"name"`
	MarketType string `json:"marketType"`
}

// SearchResult carries search hits plus which source produced them.
type SearchResult struct {
	Hits     []SearchHit
	Degraded bool
}

// AssetServicer defines the contract for asset-related business logic.
type AssetServicer interface {
	ListAssets(ctx context.Context, kind string) (*AssetList, error)
	GetAssetDetail(ctx context.Context, ticker string) (*AssetWithDetail, error)
	GetPriceHistory(ctx context.Context, ticker string, days int) (*PriceHistory, error)
	GetHoldings(ctx context.Context, ticker string) ([]models.Holding, error)
	GetDividend(ctx context.Context, ticker string) (provider.DividendInfo, error)
	Search(ctx context.Context, query string) (*SearchResult, error)
}
