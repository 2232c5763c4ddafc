package normalize

import (
	"math"
	"testing"

	"wondex/internal/mockdata"
	"wondex/internal/models"
	"wondex/internal/provider"
)

func quote(ticker, close string) *provider.RawQuote {
	return &provider.RawQuote{
		Ticker:     ticker,
		Name:       "",
		ClosePrice: close,
		ChangeRate: "0.43",
		Volume:     "4521033",
		MarketCap:  "0",
	}
}

func TestAsset_UnknownTickerIsNil(t *testing.T) {
	if a := Asset(quote("999999", "10000"), "999999", nil); a != nil {
		t.Errorf("expected nil for unregistered ticker, got %+v", a)
	}
}

func TestAsset_NilQuoteIsNil(t *testing.T) {
	if a := Asset(nil, "069500", nil); a != nil {
		t.Errorf("expected nil for missing quote, got %+v", a)
	}
}

func TestAsset_ETFWithScrapedDividend(t *testing.T) {
	info := provider.DividendInfo{DividendYield: 2.1, DividendCycle: models.CycleAnnual, LastDividendAmount: 170}
	a := Asset(quote("069500", "35150"), "069500", &info)

	etfAsset, ok := a.(models.ETFAsset)
	if !ok {
		t.Fatalf("expected ETFAsset, got %T", a)
	}
	if etfAsset.DividendYield != 2.1 {
		t.Errorf("scraped yield should win, got %v", etfAsset.DividendYield)
	}
	if etfAsset.LastDividendAmount != 170 {
		t.Errorf("scraped amount should win, got %d", etfAsset.LastDividendAmount)
	}
	// 069500 pays quarterly per the registry, whatever the scraper said.
	if etfAsset.DividendCycle != models.CycleQuarterly {
		t.Errorf("registry cycle should win, got %s", etfAsset.DividendCycle)
	}
	if etfAsset.CurrentPrice != 35150 {
		t.Errorf("expected price 35150, got %d", etfAsset.CurrentPrice)
	}
}

func TestAsset_ETFYieldEstimation(t *testing.T) {
	// No dividend data fetched: 069500 annualizes 160 won quarterly
	// against the current price.
	a := Asset(quote("069500", "35000"), "069500", nil)
	etfAsset := a.(models.ETFAsset)

	want := float64(160*4) / 35000 * 100
	if math.Abs(etfAsset.DividendYield-want) > 1e-9 {
		t.Errorf("expected estimated yield %v, got %v", want, etfAsset.DividendYield)
	}
}

func TestAsset_NonPayingETFStaysNonPaying(t *testing.T) {
	// 371460 is a 미지급 ETF; even a scraped yield must not revive it.
	info := provider.DividendInfo{DividendYield: 5.0, DividendCycle: models.CycleAnnual, LastDividendAmount: 100}
	a := Asset(quote("371460", "8000"), "371460", &info)
	etfAsset := a.(models.ETFAsset)

	if etfAsset.DividendYield != 0 || etfAsset.LastDividendAmount != 0 {
		t.Errorf("expected zeroed dividend fields, got yield=%v amount=%d",
			etfAsset.DividendYield, etfAsset.LastDividendAmount)
	}
	if etfAsset.DividendCycle != models.CycleNone {
		t.Errorf("expected cycle %s, got %s", models.CycleNone, etfAsset.DividendCycle)
	}
}

func TestAsset_ZeroYieldForcesNoneCycle(t *testing.T) {
	// A zero price kills the estimate; the cycle must follow the yield down.
	a := Asset(quote("069500", "0"), "069500", nil)
	etfAsset := a.(models.ETFAsset)

	if etfAsset.DividendYield != 0 {
		t.Fatalf("expected zero yield, got %v", etfAsset.DividendYield)
	}
	if etfAsset.DividendCycle != models.CycleNone {
		t.Errorf("zero yield must report cycle %s, got %s", models.CycleNone, etfAsset.DividendCycle)
	}
}

func TestAsset_MarketCapFallback(t *testing.T) {
	a := Asset(quote("069500", "35150"), "069500", nil)
	if got, want := a.Base().MarketCap, mockdata.MarketCap("069500"); got != want {
		t.Errorf("expected last-known market cap %d, got %d", want, got)
	}

	withCap := quote("069500", "35150")
	withCap.MarketCap = "6120000000000"
	a = Asset(withCap, "069500", nil)
	if a.Base().MarketCap != 6120000000000 {
		t.Errorf("a reported market cap must pass through, got %d", a.Base().MarketCap)
	}
}

func TestAsset_NameFallbackChain(t *testing.T) {
	named := quote("069500", "35150")
	named.Name = "KODEX 200"
	if got := Asset(named, "069500", nil).Base().Name; got != "KODEX 200" {
		t.Errorf("upstream name must win, got %q", got)
	}

	if got := Asset(quote("069500", "35150"), "069500", nil).Base().Name; got != mockdata.Name("069500") {
		t.Errorf("expected mock name fallback, got %q", got)
	}
}

func TestAsset_Stock(t *testing.T) {
	info := provider.DividendInfo{DividendYield: 1.82, DividendCycle: models.CycleAnnual, LastDividendAmount: 361}
	a := Asset(quote("005930", "79500"), "005930", &info)

	stockAsset, ok := a.(models.StockAsset)
	if !ok {
		t.Fatalf("expected StockAsset, got %T", a)
	}
	if stockAsset.DividendYield != 1.82 {
		t.Errorf("expected yield 1.82, got %v", stockAsset.DividendYield)
	}
	// 005930 pays quarterly per the registry; the resolver cannot tell.
	if stockAsset.DividendCycle != models.CycleQuarterly {
		t.Errorf("registry cycle should win, got %s", stockAsset.DividendCycle)
	}
	if stockAsset.Sector != "반도체" {
		t.Errorf("expected sector from registry, got %s", stockAsset.Sector)
	}
	if stockAsset.ID != "stock-005930" {
		t.Errorf("expected id stock-005930, got %s", stockAsset.ID)
	}
}

func TestDetail(t *testing.T) {
	d := Detail(quote("069500", "35150"), "069500", nil)
	etfDetail, ok := d.(models.ETFAssetDetail)
	if !ok {
		t.Fatalf("expected ETFAssetDetail, got %T", d)
	}
	if etfDetail.Benchmark != "KOSPI 200" {
		t.Errorf("expected benchmark KOSPI 200, got %s", etfDetail.Benchmark)
	}

	d = Detail(quote("005930", "79500"), "005930", nil)
	stockDetail, ok := d.(models.StockAssetDetail)
	if !ok {
		t.Fatalf("expected StockAssetDetail, got %T", d)
	}
	if stockDetail.Employees == 0 || stockDetail.Description == "" {
		t.Errorf("expected financial fields from registry, got %+v", stockDetail)
	}
}

func TestPriceHistory(t *testing.T) {
	raws := []provider.RawQuote{
		{ClosePrice: "100"},
		{ClosePrice: "105"},
		{ClosePrice: "103"},
	}
	points := PriceHistory(raws)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[2].Price != 103 {
		t.Errorf("expected newest close 103, got %d", points[2].Price)
	}
	for _, p := range points {
		if p.Date == "" {
			t.Errorf("expected reconstructed date, got empty string")
		}
	}
}
