// Package normalize merges raw upstream quotes with registry metadata and
// dividend info into the strict ETF/stock record shapes.
package normalize

import (
	"strconv"
	"time"

	"wondex/internal/mockdata"
	"wondex/internal/models"
	"wondex/internal/provider"
	"wondex/internal/registry"
)

// Asset builds an asset record from a raw quote. Returns nil when the quote
// is missing or the ticker is in neither registry; callers fall back to the
// mock dataset or a 404.
// The dividend override carries scraped or structured dividend data; pass nil
// when none was fetched.
func Asset(raw *provider.RawQuote, ticker string, override *provider.DividendInfo) models.Asset {
	if raw == nil {
		return nil
	}
	etfMeta, isETF := registry.ETF(ticker)
	stockMeta, isStock := registry.Stock(ticker)
	if !isETF && !isStock {
		return nil
	}

	currentPrice := parseInt(raw.ClosePrice)
	changeRate := parseFloat(raw.ChangeRate)
	volume := parseInt(raw.Volume)

	// A reported market cap of 0 (or an unparseable one) means the source
	// does not carry the field; substitute the last-known value.
	marketCap := parseInt(raw.MarketCap)
	if marketCap <= 0 {
		marketCap = mockdata.MarketCap(ticker)
	}

	name := raw.Name
	if name == "" {
		name = mockdata.Name(ticker)
	}
	if name == "" {
		name = ticker
	}

	if isETF {
		scrapedYield := 0.0
		if override != nil {
			scrapedYield = override.DividendYield
		}
		yield := scrapedYield
		if yield == 0 {
			yield = estimateETFYield(etfMeta, currentPrice)
		}

		lastAmount := etfMeta.LastDividendAmount
		if override != nil && override.LastDividendAmount > 0 {
			lastAmount = override.LastDividendAmount
		}

		// Neither live source reports true ETF payout frequency; the
		// registry cycle always wins. The clamp keeps the record
		// consistent: zero yield and a "none" cycle imply each other.
		cycle := etfMeta.DividendCycle
		if cycle == models.CycleNone {
			yield, lastAmount = 0, 0
		}
		if yield == 0 {
			cycle = models.CycleNone
		}

		return models.ETFAsset{
			BaseAsset: models.BaseAsset{
				ID:            "etf-" + ticker,
				Kind:          models.KindETF,
				Ticker:        ticker,
				Name:          name,
				CurrentPrice:  currentPrice,
				ChangeRate:    changeRate,
				MarketCap:     marketCap,
				Volume:        volume,
				DividendYield: yield,
				Category:      etfMeta.Category,
			},
			ExpenseRatio:       etfMeta.ExpenseRatio,
			Issuer:             etfMeta.Issuer,
			NAV:                etfMeta.NAV,
			DividendCycle:      cycle,
			LastDividendAmount: lastAmount,
		}
	}

	yield := 0.0
	var lastAmount int64
	if override != nil {
		yield = override.DividendYield
		lastAmount = override.LastDividendAmount
	}

	return models.StockAsset{
		BaseAsset: models.BaseAsset{
			ID:            "stock-" + ticker,
			Kind:          models.KindStock,
			Ticker:        ticker,
			Name:          name,
			CurrentPrice:  currentPrice,
			ChangeRate:    changeRate,
			MarketCap:     marketCap,
			Volume:        volume,
			DividendYield: yield,
			Category:      stockMeta.Category,
		},
		PER:    stockMeta.PER,
		PBR:    stockMeta.PBR,
		Sector: stockMeta.Sector,
		// The live sources cannot tell stock payout frequency apart either.
		DividendCycle:      stockMeta.DividendCycle,
		LastDividendAmount: lastAmount,
	}
}

// Detail layers registry-only descriptive fields on top of Asset. The live
// sources never contribute to these fields.
func Detail(raw *provider.RawQuote, ticker string, override *provider.DividendInfo) models.AssetDetail {
	base := Asset(raw, ticker, override)
	if base == nil {
		return nil
	}

	switch a := base.(type) {
	case models.ETFAsset:
		meta, _ := registry.ETF(ticker)
		return models.ETFAssetDetail{
			ETFAsset:    a,
			Benchmark:   meta.Benchmark,
			ListingDate: meta.ListingDate,
		}
	case models.StockAsset:
		meta, _ := registry.Stock(ticker)
		return models.StockAssetDetail{
			StockAsset:      a,
			Description:     meta.Description,
			ListingDate:     meta.ListingDate,
			Employees:       meta.Employees,
			Revenue:         meta.Revenue,
			OperatingProfit: meta.OperatingProfit,
			NetIncome:       meta.NetIncome,
		}
	}
	return nil
}

// PriceHistory converts a raw series into dated points. The chart payload
// carries no dates after parsing, so dates are reconstructed by counting
// backward from today; the input must already be ordered oldest to newest,
// one entry per trading day.
func PriceHistory(raws []provider.RawQuote) []models.PricePoint {
	today := time.Now()
	points := make([]models.PricePoint, 0, len(raws))
	for i, raw := range raws {
		d := today.AddDate(0, 0, -(len(raws) - 1 - i))
		points = append(points, models.PricePoint{
			Date:  d.Format("1/2"),
			Price: parseInt(raw.ClosePrice),
		})
	}
	return points
}

// estimateETFYield annualizes the registry's last per-share amount by its
// cadence against the current price.
func estimateETFYield(meta registry.ETFMeta, currentPrice int64) float64 {
	if meta.LastDividendAmount <= 0 || currentPrice <= 0 {
		return 0
	}

	var perYear int64
	switch meta.DividendCycle {
	case models.CycleMonthly:
		perYear = 12
	case models.CycleQuarterly:
		perYear = 4
	default:
		perYear = 1
	}
	return float64(meta.LastDividendAmount*perYear) / float64(currentPrice) * 100
}

// parseInt parses an upstream numeric string, degrading to 0.
func parseInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseFloat parses an upstream numeric string, degrading to 0.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
