package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wondex/internal/dividend"
	"wondex/internal/handlers"
	"wondex/internal/logger"
	"wondex/internal/middleware"
	"wondex/internal/models"
	"wondex/internal/provider"
	"wondex/internal/registry"
	"wondex/internal/services"
	"wondex/internal/testutil"
	"wondex/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Quotes *fakeQuotes
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// fakeQuotes stands in for the Naver feed. Setting down makes every quote
// and chart fetch fail, exercising the mock fallback path.
type fakeQuotes struct {
	down bool
}

func (f *fakeQuotes) FetchOne(ctx context.Context, ticker string) (*provider.RawQuote, error) {
	if f.down {
		return nil, fmt.Errorf("feed down")
	}
	return testutil.SampleQuote(ticker), nil
}

func (f *fakeQuotes) FetchMany(ctx context.Context, tickers []string) map[string]*provider.RawQuote {
	result := make(map[string]*provider.RawQuote, len(tickers))
	if f.down {
		return result
	}
	for _, ticker := range tickers {
		result[ticker] = testutil.SampleQuote(ticker)
	}
	return result
}

func (f *fakeQuotes) FetchHistory(ctx context.Context, ticker string, days int) ([]provider.RawQuote, error) {
	if f.down {
		return nil, fmt.Errorf("feed down")
	}
	raws := make([]provider.RawQuote, days)
	for i := range raws {
		raws[i] = provider.RawQuote{Ticker: ticker, ClosePrice: "35000"}
	}
	return raws, nil
}

type fakeScraper struct {
	info provider.DividendInfo
}

func (f *fakeScraper) ScrapeDividend(ctx context.Context, ticker string) provider.DividendInfo {
	return f.info
}

type fakeStockDividends struct {
	info provider.DividendInfo
}

func (f *fakeStockDividends) FetchStockDividend(ctx context.Context, ticker string) provider.DividendInfo {
	return f.info
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.AssetMaster{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite and a fake upstream feed.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	quotes := &fakeQuotes{}
	scraper := &fakeScraper{info: provider.DividendInfo{DividendYield: 2.1, DividendCycle: models.CycleAnnual, LastDividendAmount: 170}}
	resolver := dividend.NewResolver(
		&fakeStockDividends{info: provider.DividendInfo{DividendYield: 1.82, DividendCycle: models.CycleQuarterly, LastDividendAmount: 361}},
		scraper,
	)

	assetService := services.NewAssetService(db, quotes, scraper, resolver, 5*time.Minute)
	assetHandler := handlers.NewAssetHandler(assetService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.GET("/assets", assetHandler.ListAssets)
	v1.GET("/assets/:ticker", assetHandler.GetAsset)
	v1.GET("/assets/:ticker/price-history", assetHandler.GetPriceHistory)
	v1.GET("/assets/:ticker/holdings", assetHandler.GetHoldings)
	v1.GET("/dividend/:ticker", assetHandler.GetDividend)
	v1.GET("/search", assetHandler.Search)

	return &testApp{DB: db, Quotes: quotes, Router: router}
}

// get performs a GET request against the app.
func (app *testApp) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	app.Router.ServeHTTP(w, req)
	return w
}

// seedMaster loads a small assets_master snapshot.
func seedMaster(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []models.AssetMaster{
		{Ticker: "005930", Name: "삼성전자", MarketType: "KOSPI", LastUpdated: time.Now()},
		{Ticker: "069500", Name: "KODEX 200", MarketType: "ETF", LastUpdated: time.Now()},
		{Ticker: "035720", Name: "카카오", MarketType: "KOSDAQ", LastUpdated: time.Now()},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("failed to seed assets_master: %v", err)
	}
}

// tickerCount keeps the expected dataset size in one place.
func tickerCount() int {
	return len(registry.AllTickers())
}
