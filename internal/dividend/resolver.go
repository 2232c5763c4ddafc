// Package dividend resolves per-ticker dividend info from two tiers: the
// structured data.go.kr history service and the Naver Finance page scraper.
package dividend

import (
	"context"

	"wondex/internal/models"
	"wondex/internal/provider"
)

// StockSource is the structured dividend-history tier.
type StockSource interface {
	FetchStockDividend(ctx context.Context, ticker string) provider.DividendInfo
}

// ScrapeSource is the HTML-scraping tier.
type ScrapeSource interface {
	ScrapeDividend(ctx context.Context, ticker string) provider.DividendInfo
}

// Resolver combines the two tiers. ETFs go straight to the scraper — the
// structured service's coverage excludes them — while stocks prefer the
// structured tier and fall back to the scraper.
type Resolver struct {
	stocks  StockSource
	scraper ScrapeSource
}

// NewResolver creates a dividend resolver over the two sources.
func NewResolver(stocks StockSource, scraper ScrapeSource) *Resolver {
	return &Resolver{stocks: stocks, scraper: scraper}
}

// Resolve returns dividend info for a ticker. It always returns a value;
// when every tier fails the result is provider.NoDividend(). Note that the
// cycle reported here is a best effort — for ETFs the registry's cycle always
// wins during normalization.
func (r *Resolver) Resolve(ctx context.Context, ticker string, kind models.AssetKind) provider.DividendInfo {
	if kind == models.KindETF {
		return r.scraper.ScrapeDividend(ctx, ticker)
	}

	info := r.stocks.FetchStockDividend(ctx, ticker)
	if info.IsZero() {
		return r.scraper.ScrapeDividend(ctx, ticker)
	}
	return info
}
