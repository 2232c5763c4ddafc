// Package models defines the asset domain types and persistent records.
//
// ETF and stock records share a common base but are distinct shapes; they are
// modeled as a sealed interface with exactly two implementations so that
// switches over the kind are exhaustive by construction.
package models

// AssetKind discriminates the two asset record shapes.
type AssetKind string

const (
	KindETF   AssetKind = "ETF"
	KindStock AssetKind = "STOCK"
)

// Dividend payout cycles as displayed to users. The Korean labels are part of
// the API contract consumed by the frontend.
const (
	CycleMonthly    = "월배당"
	CycleQuarterly  = "분기배당"
	CycleSemiannual = "반기배당"
	CycleAnnual     = "연배당"
	CycleNone       = "미지급"
)

// BaseAsset holds the fields shared by ETF and stock records.
type BaseAsset struct {
	ID            string    `json:"id"`
	Kind          AssetKind `json:"type"`
	Ticker        string    `json:"ticker"`
	Name          string    `json:"name"`
	CurrentPrice  int64     `json:"currentPrice"`
	ChangeRate    float64   `json:"changeRate"`
	MarketCap     int64     `json:"marketCap"`
	Volume        int64     `json:"volume"`
	DividendYield float64   `json:"dividendYield"`
	Category      string    `json:"category"`
}

// Asset is the discriminated union of ETFAsset and StockAsset.
type Asset interface {
	AssetKind() AssetKind
	Base() BaseAsset

	// sealed marks the implementations closed to this package.
	sealed()
}

// ETFAsset is an exchange-traded fund record.
type ETFAsset struct {
	BaseAsset
	ExpenseRatio       float64 `json:"expenseRatio"`
	Issuer             string  `json:"issuer"`
	NAV                int64   `json:"nav"`
	DividendCycle      string  `json:"dividendCycle"`
	LastDividendAmount int64   `json:"lastDividendAmount"`
}

// StockAsset is a listed-company record.
type StockAsset struct {
	BaseAsset
	PER                float64 `json:"per"`
	PBR                float64 `json:"pbr"`
	Sector             string  `json:"sector"`
	DividendCycle      string  `json:"dividendCycle"`
	LastDividendAmount int64   `json:"lastDividendAmount"`
}

func (e ETFAsset) AssetKind() AssetKind   { return KindETF }
func (e ETFAsset) Base() BaseAsset        { return e.BaseAsset }
func (e ETFAsset) sealed()                {}
func (s StockAsset) AssetKind() AssetKind { return KindStock }
func (s StockAsset) Base() BaseAsset      { return s.BaseAsset }
func (s StockAsset) sealed()              {}

// ETFAssetDetail extends ETFAsset with listing metadata.
type ETFAssetDetail struct {
	ETFAsset
	Benchmark   string `json:"benchmark"`
	ListingDate string `json:"listingDate"`
}

// StockAssetDetail extends StockAsset with company fundamentals.
type StockAssetDetail struct {
	StockAsset
	Description     string `json:"description"`
	ListingDate     string `json:"listingDate"`
	Employees       int64  `json:"employees"`
	Revenue         int64  `json:"revenue"`
	OperatingProfit int64  `json:"operatingProfit"`
	NetIncome       int64  `json:"netIncome"`
}

// AssetDetail is the discriminated union of the two detail shapes.
type AssetDetail interface {
	Asset
	detail()
}

func (ETFAssetDetail) detail()   {}
func (StockAssetDetail) detail() {}

// PricePoint is one entry of a daily close-price series.
type PricePoint struct {
	Date  string `json:"date"`
	Price int64  `json:"price"`
}

// Holding is one constituent of an ETF basket.
type Holding struct {
	Name   string  `json:"name"`
	Ticker string  `json:"ticker"`
	Weight float64 `json:"weight"`
}
