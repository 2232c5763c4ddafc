package services

import (
	"context"
	"testing"
	"time"

	"wondex/internal/models"
	"wondex/internal/provider"
	"wondex/internal/registry"
	"wondex/internal/testutil"
)

// stubQuotes serves canned quotes and counts batch fetches.
type stubQuotes struct {
	quotes     map[string]*provider.RawQuote
	history    []provider.RawQuote
	manyCalls  int
	historyErr error
}

func (s *stubQuotes) FetchOne(ctx context.Context, ticker string) (*provider.RawQuote, error) {
	if q, ok := s.quotes[ticker]; ok {
		return q, nil
	}
	return nil, context.DeadlineExceeded
}

func (s *stubQuotes) FetchMany(ctx context.Context, tickers []string) map[string]*provider.RawQuote {
	s.manyCalls++
	result := make(map[string]*provider.RawQuote, len(tickers))
	for _, t := range tickers {
		if q, ok := s.quotes[t]; ok {
			result[t] = q
		}
	}
	return result
}

func (s *stubQuotes) FetchHistory(ctx context.Context, ticker string, days int) ([]provider.RawQuote, error) {
	return s.history, s.historyErr
}

type stubScraper struct {
	info provider.DividendInfo
}

func (s *stubScraper) ScrapeDividend(ctx context.Context, ticker string) provider.DividendInfo {
	return s.info
}

type stubResolver struct {
	info     provider.DividendInfo
	lastKind models.AssetKind
}

func (s *stubResolver) Resolve(ctx context.Context, ticker string, kind models.AssetKind) provider.DividendInfo {
	s.lastKind = kind
	return s.info
}

// allQuotes returns a live quote for every registered ticker.
func allQuotes() map[string]*provider.RawQuote {
	quotes := make(map[string]*provider.RawQuote)
	for _, ticker := range registry.AllTickers() {
		quotes[ticker] = testutil.SampleQuote(ticker)
	}
	return quotes
}

func newTestService(t *testing.T, quotes *stubQuotes, scraper *stubScraper, resolver *stubResolver) AssetServicer {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return NewAssetService(db, quotes, scraper, resolver, 5*time.Minute)
}

func TestListAssets(t *testing.T) {
	quotes := &stubQuotes{quotes: allQuotes()}
	s := newTestService(t, quotes, &stubScraper{}, &stubResolver{})

	list, err := s.ListAssets(context.Background(), "ALL")
	testutil.AssertNoError(t, err)

	if len(list.Assets) != len(registry.AllTickers()) {
		t.Fatalf("expected %d assets, got %d", len(registry.AllTickers()), len(list.Assets))
	}
	if list.Degraded {
		t.Error("a fully live refresh must not be degraded")
	}

	etfs, err := s.ListAssets(context.Background(), "ETF")
	testutil.AssertNoError(t, err)
	for _, a := range etfs.Assets {
		if a.AssetKind() != models.KindETF {
			t.Errorf("ETF filter leaked a %s", a.AssetKind())
		}
	}

	stocks, err := s.ListAssets(context.Background(), "STOCK")
	testutil.AssertNoError(t, err)
	if len(etfs.Assets)+len(stocks.Assets) != len(list.Assets) {
		t.Errorf("filters must partition the list: %d + %d != %d",
			len(etfs.Assets), len(stocks.Assets), len(list.Assets))
	}
}

func TestListAssets_CachesAcrossCalls(t *testing.T) {
	quotes := &stubQuotes{quotes: allQuotes()}
	s := newTestService(t, quotes, &stubScraper{}, &stubResolver{})

	if _, err := s.ListAssets(context.Background(), "ALL"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ListAssets(context.Background(), "ETF"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ListAssets(context.Background(), "STOCK"); err != nil {
		t.Fatal(err)
	}

	if quotes.manyCalls != 1 {
		t.Errorf("expected a single upstream refresh, got %d", quotes.manyCalls)
	}
}

func TestListAssets_TotalOutageServesMock(t *testing.T) {
	quotes := &stubQuotes{quotes: nil} // every fetch fails
	s := newTestService(t, quotes, &stubScraper{}, &stubResolver{})

	list, err := s.ListAssets(context.Background(), "ALL")
	testutil.AssertNoError(t, err)

	if !list.Degraded {
		t.Error("a refresh with zero live quotes must be degraded")
	}
	if len(list.Assets) != len(registry.AllTickers()) {
		t.Errorf("the mock dataset should cover every ticker, got %d", len(list.Assets))
	}
}

func TestGetAssetDetail(t *testing.T) {
	quotes := &stubQuotes{quotes: allQuotes()}
	scraper := &stubScraper{info: provider.DividendInfo{DividendYield: 2.1, DividendCycle: models.CycleAnnual, LastDividendAmount: 170}}
	s := newTestService(t, quotes, scraper, &stubResolver{})

	detail, err := s.GetAssetDetail(context.Background(), "069500")
	testutil.AssertNoError(t, err)

	if detail.Degraded {
		t.Error("live quote must not be degraded")
	}
	etfDetail, ok := detail.Detail.(models.ETFAssetDetail)
	if !ok {
		t.Fatalf("expected ETFAssetDetail, got %T", detail.Detail)
	}
	if etfDetail.DividendYield != 2.1 {
		t.Errorf("expected the scraped yield on the detail record, got %v", etfDetail.DividendYield)
	}
}

func TestGetAssetDetail_UnknownTicker(t *testing.T) {
	s := newTestService(t, &stubQuotes{}, &stubScraper{}, &stubResolver{})
	_, err := s.GetAssetDetail(context.Background(), "999999")
	testutil.AssertAppError(t, err, "UNKNOWN_TICKER")
}

func TestGetAssetDetail_QuoteOutageServesMock(t *testing.T) {
	s := newTestService(t, &stubQuotes{}, &stubScraper{}, &stubResolver{})

	detail, err := s.GetAssetDetail(context.Background(), "069500")
	testutil.AssertNoError(t, err)

	if !detail.Degraded {
		t.Error("mock-backed detail must be degraded")
	}
	if detail.Asset.Base().Ticker != "069500" {
		t.Errorf("expected mock asset for 069500, got %s", detail.Asset.Base().Ticker)
	}
}

func TestGetPriceHistory(t *testing.T) {
	quotes := &stubQuotes{
		quotes:  allQuotes(),
		history: []provider.RawQuote{{ClosePrice: "100"}, {ClosePrice: "105"}},
	}
	s := newTestService(t, quotes, &stubScraper{}, &stubResolver{})

	history, err := s.GetPriceHistory(context.Background(), "069500", 30)
	testutil.AssertNoError(t, err)
	if history.Degraded {
		t.Error("live history must not be degraded")
	}
	if len(history.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(history.Points))
	}
}

func TestGetPriceHistory_EmptyFeedServesMock(t *testing.T) {
	s := newTestService(t, &stubQuotes{}, &stubScraper{}, &stubResolver{})

	history, err := s.GetPriceHistory(context.Background(), "069500", 30)
	testutil.AssertNoError(t, err)
	if !history.Degraded {
		t.Error("synthetic history must be degraded")
	}
	if len(history.Points) != 30 {
		t.Errorf("expected 30 synthetic points, got %d", len(history.Points))
	}
}

func TestGetDividend_PassesKind(t *testing.T) {
	resolver := &stubResolver{info: provider.DividendInfo{DividendYield: 1.82}}
	s := newTestService(t, &stubQuotes{}, &stubScraper{}, resolver)

	info, err := s.GetDividend(context.Background(), "069500")
	testutil.AssertNoError(t, err)
	if resolver.lastKind != models.KindETF {
		t.Errorf("expected ETF kind for 069500, got %s", resolver.lastKind)
	}
	if info.DividendYield != 1.82 {
		t.Errorf("expected resolver passthrough, got %v", info.DividendYield)
	}

	if _, err := s.GetDividend(context.Background(), "005930"); err != nil {
		t.Fatal(err)
	}
	if resolver.lastKind != models.KindStock {
		t.Errorf("expected STOCK kind for 005930, got %s", resolver.lastKind)
	}

	_, err = s.GetDividend(context.Background(), "999999")
	testutil.AssertAppError(t, err, "UNKNOWN_TICKER")
}

func TestGetHoldings(t *testing.T) {
	s := newTestService(t, &stubQuotes{}, &stubScraper{}, &stubResolver{})

	holdings, err := s.GetHoldings(context.Background(), "069500")
	testutil.AssertNoError(t, err)
	if len(holdings) == 0 {
		t.Error("expected a constituent breakdown for 069500")
	}

	_, err = s.GetHoldings(context.Background(), "999999")
	testutil.AssertAppError(t, err, "UNKNOWN_TICKER")
}

func TestSearch_MasterTable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	s := NewAssetService(db, &stubQuotes{}, &stubScraper{}, &stubResolver{}, time.Minute)

	testutil.CreateTestMasterRow(t, db, "005930", "삼성전자", "KOSPI")
	testutil.CreateTestMasterRow(t, db, "005935", "삼성전자우", "KOSPI")
	testutil.CreateTestMasterRow(t, db, "069500", "KODEX 200", "ETF")

	result, err := s.Search(context.Background(), "삼성")
	testutil.AssertNoError(t, err)
	if result.Degraded {
		t.Error("a table hit must not be degraded")
	}
	if len(result.Hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(result.Hits))
	}
	if result.Hits[0].Ticker != "005930" {
		t.Errorf("expected hits ordered by ticker, got %s first", result.Hits[0].Ticker)
	}

	// Case-insensitive on the Latin part of names.
	result, err = s.Search(context.Background(), "kodex")
	testutil.AssertNoError(t, err)
	if len(result.Hits) != 1 || result.Hits[0].Ticker != "069500" {
		t.Errorf("expected the KODEX row, got %+v", result.Hits)
	}
}

func TestSearch_EmptyTableFallsBack(t *testing.T) {
	s := newTestService(t, &stubQuotes{}, &stubScraper{}, &stubResolver{})

	result, err := s.Search(context.Background(), "KODEX")
	testutil.AssertNoError(t, err)
	if !result.Degraded {
		t.Error("an empty table must degrade to the mock dataset")
	}
	if len(result.Hits) == 0 {
		t.Error("expected mock hits for KODEX")
	}

	// A blank query is not an error; it just matches nothing.
	result, err = s.Search(context.Background(), "   ")
	testutil.AssertNoError(t, err)
	if result.Degraded {
		t.Error("a blank query must not be degraded")
	}
	if len(result.Hits) != 0 {
		t.Errorf("expected no hits for a blank query, got %d", len(result.Hits))
	}
}
