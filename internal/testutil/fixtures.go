package testutil

import (
	"testing"
	"time"

	"wondex/internal/models"
	"wondex/internal/provider"

	"gorm.io/gorm"
)

// CreateTestMasterRow inserts one assets_master row.
func CreateTestMasterRow(t *testing.T, db *gorm.DB, ticker, name, marketType string) models.AssetMaster {
	t.Helper()

	row := models.AssetMaster{
		Ticker:      ticker,
		Name:        name,
		MarketType:  marketType,
		LastUpdated: time.Now(),
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to create assets_master row: %v", err)
	}
	return row
}

// SampleQuote returns a realistic realtime quote for the given ticker.
func SampleQuote(ticker string) *provider.RawQuote {
	return &provider.RawQuote{
		Ticker:     ticker,
		Name:       "KODEX 200",
		ClosePrice: "35000",
		ChangeRate: "1.25",
		Volume:     "4520000",
		MarketCap:  "0",
	}
}

// SampleListingRows returns listing rows spanning two base dates, with one
// ETF-branded name mixed in.
func SampleListingRows() []provider.ListingRow {
	return []provider.ListingRow{
		{BasDt: "20260210", SrtnCd: "005930", ItmsNm: "삼성전자", MrktCtg: "KOSPI"},
		{BasDt: "20260211", SrtnCd: "005930", ItmsNm: "삼성전자", MrktCtg: "KOSPI"},
		{BasDt: "20260211", SrtnCd: "069500", ItmsNm: "KODEX 200", MrktCtg: "KOSPI"},
		{BasDt: "20260211", SrtnCd: "035720", ItmsNm: "카카오", MrktCtg: "KOSDAQ"},
	}
}
