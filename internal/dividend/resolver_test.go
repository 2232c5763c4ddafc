package dividend

import (
	"context"
	"testing"

	"wondex/internal/models"
	"wondex/internal/provider"
)

type stubStocks struct {
	info   provider.DividendInfo
	called bool
}

func (s *stubStocks) FetchStockDividend(ctx context.Context, ticker string) provider.DividendInfo {
	s.called = true
	return s.info
}

type stubScraper struct {
	info   provider.DividendInfo
	called bool
}

func (s *stubScraper) ScrapeDividend(ctx context.Context, ticker string) provider.DividendInfo {
	s.called = true
	return s.info
}

func TestResolver_ETFGoesStraightToScraper(t *testing.T) {
	stocks := &stubStocks{info: provider.DividendInfo{DividendYield: 9.9}}
	scraper := &stubScraper{info: provider.DividendInfo{DividendYield: 6.79, DividendCycle: models.CycleAnnual, LastDividendAmount: 1160}}
	r := NewResolver(stocks, scraper)

	info := r.Resolve(context.Background(), "441640", models.KindETF)
	if stocks.called {
		t.Error("the structured tier must not be queried for ETFs")
	}
	if !scraper.called {
		t.Error("expected the scraper to be queried")
	}
	if info.DividendYield != 6.79 {
		t.Errorf("expected scraped yield, got %v", info.DividendYield)
	}
}

func TestResolver_StockPrefersStructuredTier(t *testing.T) {
	stocks := &stubStocks{info: provider.DividendInfo{DividendYield: 1.82, DividendCycle: models.CycleQuarterly, LastDividendAmount: 361}}
	scraper := &stubScraper{info: provider.DividendInfo{DividendYield: 9.9}}
	r := NewResolver(stocks, scraper)

	info := r.Resolve(context.Background(), "005930", models.KindStock)
	if scraper.called {
		t.Error("the scraper must not run when the structured tier answers")
	}
	if info.DividendYield != 1.82 {
		t.Errorf("expected structured yield, got %v", info.DividendYield)
	}
}

func TestResolver_StockFallsBackToScraper(t *testing.T) {
	stocks := &stubStocks{info: provider.NoDividend()}
	scraper := &stubScraper{info: provider.DividendInfo{DividendYield: 2.5, DividendCycle: models.CycleAnnual, LastDividendAmount: 500}}
	r := NewResolver(stocks, scraper)

	info := r.Resolve(context.Background(), "005930", models.KindStock)
	if !stocks.called || !scraper.called {
		t.Error("expected both tiers to be tried in order")
	}
	if info.DividendYield != 2.5 {
		t.Errorf("expected scraped fallback yield, got %v", info.DividendYield)
	}
}

func TestResolver_AllTiersFailing(t *testing.T) {
	r := NewResolver(&stubStocks{info: provider.NoDividend()}, &stubScraper{info: provider.NoDividend()})
	info := r.Resolve(context.Background(), "005930", models.KindStock)
	if !info.IsZero() {
		t.Errorf("expected NoDividend, got %+v", info)
	}
	if info.DividendCycle != models.CycleNone {
		t.Errorf("expected cycle %s, got %s", models.CycleNone, info.DividendCycle)
	}
}
