// Package mockdata is the static fallback dataset served when live sources
// are unavailable, and the last-known-value source for fields the polling API
// does not carry (market cap). Figures are a frozen snapshot, not live data.
package mockdata

import (
	"math"
	"strings"
	"time"

	"wondex/internal/models"
)

func base(kind models.AssetKind, ticker, name string, price int64, change float64, marketCap, volume int64, yield float64, category string) models.BaseAsset {
	prefix := "etf-"
	if kind == models.KindStock {
		prefix = "stock-"
	}
	return models.BaseAsset{
		ID:            prefix + ticker,
		Kind:          kind,
		Ticker:        ticker,
		Name:          name,
		CurrentPrice:  price,
		ChangeRate:    change,
		MarketCap:     marketCap,
		Volume:        volume,
		DividendYield: yield,
		Category:      category,
	}
}

func etf(ticker, name, issuer string, price, nav int64, change float64, marketCap int64, expense float64, category string, volume int64, yield float64, cycle string, lastDiv int64) models.ETFAsset {
	return models.ETFAsset{
		BaseAsset:          base(models.KindETF, ticker, name, price, change, marketCap, volume, yield, category),
		ExpenseRatio:       expense,
		Issuer:             issuer,
		NAV:                nav,
		DividendCycle:      cycle,
		LastDividendAmount: lastDiv,
	}
}

func stock(ticker, name string, price int64, change float64, marketCap, volume int64, category string, yield float64, sector string, per, pbr float64, cycle string) models.StockAsset {
	return models.StockAsset{
		BaseAsset:     base(models.KindStock, ticker, name, price, change, marketCap, volume, yield, category),
		PER:           per,
		PBR:           pbr,
		Sector:        sector,
		DividendCycle: cycle,
	}
}

var mockETFs = []models.ETFAsset{
	etf("069500", "KODEX 200", "삼성자산운용", 35420, 35450, 1.23, 5_8234_0000_0000, 0.15, "국내주식", 12_340_000, 1.82, models.CycleQuarterly, 160),
	etf("133690", "TIGER 미국나스닥100", "미래에셋자산운용", 98750, 98820, 2.15, 8_4521_0000_0000, 0.07, "해외주식", 8_920_000, 0.51, models.CycleQuarterly, 125),
	etf("278530", "RISE 200", "KB자산운용", 11230, 11245, -0.87, 1_2340_0000_0000, 0.017, "국내주식", 3_450_000, 1.95, models.CycleQuarterly, 55),
	etf("371460", "TIGER 차이나전기차SOLACTIVE", "미래에셋자산운용", 7890, 7910, -2.34, 9870_0000_0000, 0.49, "해외주식", 7_560_000, 0, models.CycleNone, 0),
	etf("381180", "TIGER 미국S&P500", "미래에셋자산운용", 17850, 17870, 0.89, 4_5600_0000_0000, 0.07, "해외주식", 6_540_000, 1.21, models.CycleQuarterly, 54),
	etf("305720", "KODEX 2차전지산업", "삼성자산운용", 8765, 8780, -1.45, 7560_0000_0000, 0.45, "국내주식", 5_430_000, 0, models.CycleNone, 0),
	etf("379810", "KODEX 미국S&P500TR", "삼성자산운용", 14560, 14580, 1.02, 3_2100_0000_0000, 0.05, "해외주식", 4_320_000, 0, models.CycleNone, 0),
	etf("364690", "KODEX Fn반도체", "삼성자산운용", 11890, 11910, 3.21, 1_8760_0000_0000, 0.45, "국내주식", 9_870_000, 0.35, models.CycleAnnual, 42),
	etf("261240", "RISE 미국S&P500", "KB자산운용", 18920, 18940, 0.56, 2_1300_0000_0000, 0.021, "해외주식", 2_340_000, 1.18, models.CycleQuarterly, 56),
	etf("252670", "KODEX 200선물인버스2X", "삼성자산운용", 2340, 2345, -3.21, 4_3210_0000_0000, 0.64, "국내주식", 18_760_000, 0, models.CycleNone, 0),
	etf("102110", "TIGER 200", "미래에셋자산운용", 35680, 35710, 1.18, 3_9800_0000_0000, 0.05, "국내주식", 4_560_000, 1.78, models.CycleQuarterly, 158),
	etf("114800", "KODEX 인버스", "삼성자산운용", 4120, 4125, -1.52, 2_8900_0000_0000, 0.64, "국내주식", 15_430_000, 0, models.CycleNone, 0),
	etf("229200", "KODEX 코스닥150", "삼성자산운용", 12340, 12360, -0.32, 8900_0000_0000, 0.25, "국내주식", 3_210_000, 0.42, models.CycleAnnual, 52),
	etf("091160", "KODEX 반도체", "삼성자산운용", 34500, 34530, 2.87, 1_5670_0000_0000, 0.45, "국내주식", 7_890_000, 0.28, models.CycleAnnual, 97),
	etf("453810", "RISE 미국나스닥100", "KB자산운용", 15670, 15690, 1.95, 6780_0000_0000, 0.021, "해외주식", 2_890_000, 0.48, models.CycleQuarterly, 19),
	etf("458730", "TIGER 미국배당다우존스", "미래에셋자산운용", 12850, 12870, 0.64, 3_1200_0000_0000, 0.01, "해외주식", 5_670_000, 3.52, models.CycleMonthly, 38),
	etf("441800", "TIGER 미국배당+7%프리미엄다우존스", "미래에셋자산운용", 11340, 11360, 0.32, 1_8500_0000_0000, 0.39, "해외주식", 4_120_000, 7.15, models.CycleMonthly, 68),
	etf("446720", "KODEX 미국배당다우존스", "삼성자산운용", 12420, 12440, 0.58, 1_2300_0000_0000, 0.01, "해외주식", 3_450_000, 3.48, models.CycleMonthly, 36),
	etf("490600", "RISE 미국배당다우존스", "KB자산운용", 10870, 10890, 0.45, 4560_0000_0000, 0.01, "해외주식", 1_890_000, 3.45, models.CycleMonthly, 31),
}

var mockStocks = []models.StockAsset{
	stock("005930", "삼성전자", 72400, 1.54, 432_1200_0000_0000, 15_230_000, "전자/반도체", 2.07, "반도체", 13.2, 1.15, models.CycleQuarterly),
	stock("000660", "SK하이닉스", 178500, 2.87, 129_8700_0000_0000, 4_560_000, "전자/반도체", 0.67, "반도체", 8.5, 1.82, models.CycleAnnual),
	stock("005380", "현대차", 245000, -0.41, 52_3400_0000_0000, 1_890_000, "자동차", 3.27, "자동차", 5.8, 0.62, models.CycleQuarterly),
	stock("035420", "NAVER", 215000, 0.94, 35_2100_0000_0000, 1_230_000, "IT/플랫폼", 0.42, "인터넷", 24.3, 1.45, models.CycleAnnual),
	stock("068270", "셀트리온", 198000, -1.25, 28_1400_0000_0000, 2_340_000, "바이오", 0.25, "바이오", 38.7, 3.21, models.CycleAnnual),
}

// Assets returns every mock asset, ETFs first.
func Assets() []models.Asset {
	out := make([]models.Asset, 0, len(mockETFs)+len(mockStocks))
	for _, e := range mockETFs {
		out = append(out, e)
	}
	for _, s := range mockStocks {
		out = append(out, s)
	}
	return out
}

// Find returns the mock asset for a ticker, or nil.
func Find(ticker string) models.Asset {
	for _, e := range mockETFs {
		if e.Ticker == ticker {
			return e
		}
	}
	for _, s := range mockStocks {
		if s.Ticker == ticker {
			return s
		}
	}
	return nil
}

// MarketCap returns the last-known market cap for a ticker, or 0.
func MarketCap(ticker string) int64 {
	if a := Find(ticker); a != nil {
		return a.Base().MarketCap
	}
	return 0
}

// Name returns the mock instrument name for a ticker, or "".
func Name(ticker string) string {
	if a := Find(ticker); a != nil {
		return a.Base().Name
	}
	return ""
}

type etfDetailMeta struct {
	benchmark   string
	listingDate string
}

var etfDetails = map[string]etfDetailMeta{
	"069500": {"KOSPI 200", "2002-10-14"},
	"133690": {"NASDAQ 100", "2010-10-18"},
	"278530": {"KOSPI 200", "2017-08-29"},
	"371460": {"Solactive China Electric Vehicle", "2021-01-07"},
	"381180": {"S&P 500", "2021-04-09"},
	"305720": {"FnGuide 2차전지산업 지수", "2018-09-10"},
	"379810": {"S&P 500 TR", "2021-04-09"},
	"364690": {"FnGuide 반도체 지수", "2020-10-29"},
	"261240": {"S&P 500", "2016-08-12"},
	"252670": {"KOSPI 200 선물인버스2X", "2016-09-22"},
	"102110": {"KOSPI 200", "2005-10-17"},
	"114800": {"KOSPI 200 인버스", "2009-09-25"},
	"229200": {"KOSDAQ 150", "2015-10-05"},
	"091160": {"KRX 반도체", "2006-06-27"},
	"453810": {"NASDAQ 100", "2022-11-15"},
	"458730": {"Dow Jones U.S. Dividend 100", "2023-06-20"},
	"441800": {"Dow Jones U.S. Dividend 100 7% Premium", "2022-09-27"},
	"446720": {"Dow Jones U.S. Dividend 100", "2022-11-15"},
	"490600": {"Dow Jones U.S. Dividend 100", "2024-01-23"},
}

type stockDetailMeta struct {
	description     string
	listingDate     string
	employees       int64
	revenue         int64
	operatingProfit int64
	netIncome       int64
}

var stockDetails = map[string]stockDetailMeta{
	"005930": {"반도체, 스마트폰, 디스플레이 등을 제조하는 글로벌 전자기업", "1975-06-11", 267937, 258_9400_0000_0000, 6_5700_0000_0000, 15_4800_0000_0000},
	"000660": {"DRAM, NAND Flash 등 메모리 반도체를 제조하는 기업", "1996-12-26", 35000, 66_1900_0000_0000, 28_8800_0000_0000, 19_5700_0000_0000},
	"005380": {"승용차, 상용차 및 자동차 부품을 제조·판매하는 자동차 기업", "1974-06-28", 75000, 162_6600_0000_0000, 14_8700_0000_0000, 12_2700_0000_0000},
	"035420": {"검색, 커머스, 핀테크, 콘텐츠 등 인터넷 플랫폼 기업", "2002-10-29", 4500, 9_6700_0000_0000, 1_5800_0000_0000, 1_0500_0000_0000},
	"068270": {"바이오시밀러 및 항체 의약품을 개발·생산하는 바이오 기업", "2018-11-08", 8500, 3_5200_0000_0000, 5800_0000_0000, 4200_0000_0000},
}

// AssetDetail returns the mock detail record for a ticker, or nil.
func AssetDetail(ticker string) models.AssetDetail {
	for _, e := range mockETFs {
		if e.Ticker != ticker {
			continue
		}
		d, ok := etfDetails[ticker]
		if !ok {
			d = etfDetailMeta{benchmark: "-", listingDate: "2020-01-01"}
		}
		return models.ETFAssetDetail{ETFAsset: e, Benchmark: d.benchmark, ListingDate: d.listingDate}
	}
	for _, s := range mockStocks {
		if s.Ticker != ticker {
			continue
		}
		d, ok := stockDetails[ticker]
		if !ok {
			d = stockDetailMeta{description: "-", listingDate: "2000-01-01"}
		}
		return models.StockAssetDetail{
			StockAsset:      s,
			Description:     d.description,
			ListingDate:     d.listingDate,
			Employees:       d.employees,
			Revenue:         d.revenue,
			OperatingProfit: d.operatingProfit,
			NetIncome:       d.netIncome,
		}
	}
	return nil
}

// PriceHistory generates a deterministic 30-day synthetic close series seeded
// by the ticker, anchored around the mock current price. Returns nil for
// unknown tickers.
func PriceHistory(ticker string) []models.PricePoint {
	a := Find(ticker)
	if a == nil {
		return nil
	}

	basePrice := a.Base().CurrentPrice
	var seed int64
	for _, r := range ticker {
		seed += int64(r)
	}

	points := make([]models.PricePoint, 0, 30)
	price := float64(basePrice) * 0.95
	floor := float64(basePrice) * 0.85
	today := time.Now()

	for i := 29; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		seed = (seed*9301 + 49297) % 233280
		rnd := float64(seed) / 233280
		price = math.Max(price+(rnd-0.45)*float64(basePrice)*0.02, floor)
		points = append(points, models.PricePoint{
			Date:  datestamp(d),
			Price: int64(math.Round(price)),
		})
	}
	return points
}

func datestamp(d time.Time) string {
	return d.Format("1/2")
}

var holdings = map[string][]models.Holding{
	"069500": {
		{Name: "삼성전자", Ticker: "005930", Weight: 29.8},
		{Name: "SK하이닉스", Ticker: "000660", Weight: 11.2},
		{Name: "현대차", Ticker: "005380", Weight: 4.1},
		{Name: "셀트리온", Ticker: "068270", Weight: 3.2},
		{Name: "KB금융", Ticker: "105560", Weight: 2.8},
		{Name: "신한지주", Ticker: "055550", Weight: 2.5},
		{Name: "POSCO홀딩스", Ticker: "005490", Weight: 2.3},
		{Name: "NAVER", Ticker: "035420", Weight: 2.1},
		{Name: "삼성바이오로직스", Ticker: "207940", Weight: 1.9},
		{Name: "LG화학", Ticker: "051910", Weight: 1.7},
	},
	"133690": {
		{Name: "Apple", Ticker: "AAPL", Weight: 8.9},
		{Name: "Microsoft", Ticker: "MSFT", Weight: 8.1},
		{Name: "NVIDIA", Ticker: "NVDA", Weight: 7.6},
		{Name: "Amazon", Ticker: "AMZN", Weight: 5.2},
		{Name: "Broadcom", Ticker: "AVGO", Weight: 4.8},
		{Name: "Meta Platforms", Ticker: "META", Weight: 4.5},
		{Name: "Tesla", Ticker: "TSLA", Weight: 3.8},
		{Name: "Alphabet A", Ticker: "GOOGL", Weight: 3.2},
		{Name: "Costco", Ticker: "COST", Weight: 2.7},
		{Name: "Netflix", Ticker: "NFLX", Weight: 2.4},
	},
	"102110": {
		{Name: "삼성전자", Ticker: "005930", Weight: 30.1},
		{Name: "SK하이닉스", Ticker: "000660", Weight: 11.5},
		{Name: "현대차", Ticker: "005380", Weight: 4.0},
		{Name: "셀트리온", Ticker: "068270", Weight: 3.3},
		{Name: "기아", Ticker: "000270", Weight: 2.7},
		{Name: "KB금융", Ticker: "105560", Weight: 2.6},
		{Name: "신한지주", Ticker: "055550", Weight: 2.4},
		{Name: "POSCO홀딩스", Ticker: "005490", Weight: 2.2},
		{Name: "NAVER", Ticker: "035420", Weight: 2.0},
		{Name: "삼성바이오로직스", Ticker: "207940", Weight: 1.8},
	},
	"305720": {
		{Name: "LG에너지솔루션", Ticker: "373220", Weight: 22.5},
		{Name: "삼성SDI", Ticker: "006400", Weight: 18.3},
		{Name: "에코프로비엠", Ticker: "247540", Weight: 12.1},
		{Name: "포스코퓨처엠", Ticker: "003670", Weight: 9.8},
		{Name: "에코프로", Ticker: "086520", Weight: 7.4},
		{Name: "엘앤에프", Ticker: "066970", Weight: 5.2},
		{Name: "SK이노베이션", Ticker: "096770", Weight: 4.1},
		{Name: "코스모신소재", Ticker: "005070", Weight: 3.3},
		{Name: "천보", Ticker: "278280", Weight: 2.8},
		{Name: "나노신소재", Ticker: "121600", Weight: 2.1},
	},
	"364690": {
		{Name: "삼성전자", Ticker: "005930", Weight: 25.4},
		{Name: "SK하이닉스", Ticker: "000660", Weight: 23.8},
		{Name: "한미반도체", Ticker: "042700", Weight: 8.2},
		{Name: "리노공업", Ticker: "058470", Weight: 5.6},
		{Name: "ISC", Ticker: "095340", Weight: 4.1},
		{Name: "주성엔지니어링", Ticker: "036930", Weight: 3.5},
		{Name: "테크윙", Ticker: "089030", Weight: 3.0},
		{Name: "하나마이크론", Ticker: "067310", Weight: 2.6},
		{Name: "DB하이텍", Ticker: "000990", Weight: 2.2},
		{Name: "넥스틴", Ticker: "348210", Weight: 1.9},
	},
	"091160": {
		{Name: "삼성전자", Ticker: "005930", Weight: 27.2},
		{Name: "SK하이닉스", Ticker: "000660", Weight: 24.5},
		{Name: "한미반도체", Ticker: "042700", Weight: 7.9},
		{Name: "리노공업", Ticker: "058470", Weight: 5.3},
		{Name: "DB하이텍", Ticker: "000990", Weight: 4.8},
		{Name: "주성엔지니어링", Ticker: "036930", Weight: 3.7},
		{Name: "ISC", Ticker: "095340", Weight: 3.1},
		{Name: "테크윙", Ticker: "089030", Weight: 2.5},
		{Name: "하나마이크론", Ticker: "067310", Weight: 2.0},
		{Name: "넥스틴", Ticker: "348210", Weight: 1.6},
	},
}

var defaultHoldings = []models.Holding{
	{Name: "삼성전자", Ticker: "005930", Weight: 15.2},
	{Name: "SK하이닉스", Ticker: "000660", Weight: 8.7},
	{Name: "LG에너지솔루션", Ticker: "373220", Weight: 5.3},
	{Name: "현대차", Ticker: "005380", Weight: 4.1},
	{Name: "셀트리온", Ticker: "068270", Weight: 3.5},
	{Name: "기아", Ticker: "000270", Weight: 2.9},
	{Name: "KB금융", Ticker: "105560", Weight: 2.6},
	{Name: "신한지주", Ticker: "055550", Weight: 2.3},
	{Name: "NAVER", Ticker: "035420", Weight: 2.0},
	{Name: "POSCO홀딩스", Ticker: "005490", Weight: 1.8},
}

// Holdings returns the constituent list for an ETF ticker, falling back to a
// representative default basket.
func Holdings(ticker string) []models.Holding {
	if h, ok := holdings[ticker]; ok {
		return h
	}
	return defaultHoldings
}

// Search filters the mock dataset by a case-insensitive substring of ticker
// or name, capped at limit results.
func Search(q string, limit int) []models.Asset {
	lq := strings.ToLower(q)
	var out []models.Asset
	for _, a := range Assets() {
		b := a.Base()
		if strings.Contains(strings.ToLower(b.Ticker), lq) || strings.Contains(strings.ToLower(b.Name), lq) {
			out = append(out, a)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
