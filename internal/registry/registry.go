// Package registry is the static per-ticker metadata table.
//
// It is the source of truth for fields no live source provides: issuer,
// expense ratio, sector, PER/PBR baselines, benchmark index, listing date,
// and — deliberately — the dividend cycle, because neither the polling source
// nor the scraper reports true payout frequency.
package registry

import "wondex/internal/models"

// ETFMeta is the static metadata for one ETF.
type ETFMeta struct {
	Issuer             string
	ExpenseRatio       float64
	NAV                int64
	Category           string
	DividendCycle      string
	LastDividendAmount int64
	Benchmark          string
	ListingDate        string
}

// StockMeta is the static metadata for one listed company.
type StockMeta struct {
	Sector          string
	Category        string
	DividendCycle   string
	PER             float64
	PBR             float64
	Description     string
	ListingDate     string
	Employees       int64
	Revenue         int64
	OperatingProfit int64
	NetIncome       int64
}

var etfRegistry = map[string]ETFMeta{
	"069500": {Issuer: "삼성자산운용", ExpenseRatio: 0.15, NAV: 35450, Category: "국내주식", DividendCycle: models.CycleQuarterly, LastDividendAmount: 160, Benchmark: "KOSPI 200", ListingDate: "2002-10-14"},
	"133690": {Issuer: "미래에셋자산운용", ExpenseRatio: 0.07, NAV: 98820, Category: "해외주식", DividendCycle: models.CycleQuarterly, LastDividendAmount: 125, Benchmark: "NASDAQ 100", ListingDate: "2010-10-18"},
	"278530": {Issuer: "KB자산운용", ExpenseRatio: 0.017, NAV: 11245, Category: "국내주식", DividendCycle: models.CycleQuarterly, LastDividendAmount: 55, Benchmark: "KOSPI 200", ListingDate: "2017-08-29"},
	"371460": {Issuer: "미래에셋자산운용", ExpenseRatio: 0.49, NAV: 7910, Category: "해외주식", DividendCycle: models.CycleNone, LastDividendAmount: 0, Benchmark: "Solactive China Electric Vehicle", ListingDate: "2021-01-07"},
	"381180": {Issuer: "미래에셋자산운용", ExpenseRatio: 0.07, NAV: 17870, Category: "해외주식", DividendCycle: models.CycleQuarterly, LastDividendAmount: 54, Benchmark: "S&P 500", ListingDate: "2021-04-09"},
	"305720": {Issuer: "삼성자산운용", ExpenseRatio: 0.45, NAV: 8780, Category: "국내주식", DividendCycle: models.CycleNone, LastDividendAmount: 0, Benchmark: "FnGuide 2차전지산업 지수", ListingDate: "2018-09-10"},
	"379810": {Issuer: "삼성자산운용", ExpenseRatio: 0.05, NAV: 14580, Category: "해외주식", DividendCycle: models.CycleNone, LastDividendAmount: 0, Benchmark: "S&P 500 TR", ListingDate: "2021-04-09"},
	"364690": {Issuer: "삼성자산운용", ExpenseRatio: 0.45, NAV: 11910, Category: "국내주식", DividendCycle: models.CycleAnnual, LastDividendAmount: 42, Benchmark: "FnGuide 반도체 지수", ListingDate: "2020-10-29"},
	"261240": {Issuer: "KB자산운용", ExpenseRatio: 0.021, NAV: 18940, Category: "해외주식", DividendCycle: models.CycleQuarterly, LastDividendAmount: 56, Benchmark: "S&P 500", ListingDate: "2016-08-12"},
	"252670": {Issuer: "삼성자산운용", ExpenseRatio: 0.64, NAV: 2345, Category: "국내주식", DividendCycle: models.CycleNone, LastDividendAmount: 0, Benchmark: "KOSPI 200 선물인버스2X", ListingDate: "2016-09-22"},
	"102110": {Issuer: "미래에셋자산운용", ExpenseRatio: 0.05, NAV: 35710, Category: "국내주식", DividendCycle: models.CycleQuarterly, LastDividendAmount: 158, Benchmark: "KOSPI 200", ListingDate: "2005-10-17"},
	"114800": {Issuer: "삼성자산운용", ExpenseRatio: 0.64, NAV: 4125, Category: "국내주식", DividendCycle: models.CycleNone, LastDividendAmount: 0, Benchmark: "KOSPI 200 인버스", ListingDate: "2009-09-25"},
	"229200": {Issuer: "삼성자산운용", ExpenseRatio: 0.25, NAV: 12360, Category: "국내주식", DividendCycle: models.CycleAnnual, LastDividendAmount: 52, Benchmark: "KOSDAQ 150", ListingDate: "2015-10-05"},
	"091160": {Issuer: "삼성자산운용", ExpenseRatio: 0.45, NAV: 34530, Category: "국내주식", DividendCycle: models.CycleAnnual, LastDividendAmount: 97, Benchmark: "KRX 반도체", ListingDate: "2006-06-27"},
	"453810": {Issuer: "KB자산운용", ExpenseRatio: 0.021, NAV: 15690, Category: "해외주식", DividendCycle: models.CycleQuarterly, LastDividendAmount: 19, Benchmark: "NASDAQ 100", ListingDate: "2022-11-15"},
	"458730": {Issuer: "미래에셋자산운용", ExpenseRatio: 0.01, NAV: 12870, Category: "해외주식", DividendCycle: models.CycleMonthly, LastDividendAmount: 38, Benchmark: "Dow Jones U.S. Dividend 100", ListingDate: "2023-06-20"},
	"441800": {Issuer: "미래에셋자산운용", ExpenseRatio: 0.39, NAV: 11360, Category: "해외주식", DividendCycle: models.CycleMonthly, LastDividendAmount: 68, Benchmark: "Dow Jones U.S. Dividend 100 7% Premium", ListingDate: "2022-09-27"},
	"446720": {Issuer: "삼성자산운용", ExpenseRatio: 0.01, NAV: 12440, Category: "해외주식", DividendCycle: models.CycleMonthly, LastDividendAmount: 36, Benchmark: "Dow Jones U.S. Dividend 100", ListingDate: "2022-11-15"},
	"490600": {Issuer: "KB자산운용", ExpenseRatio: 0.01, NAV: 10890, Category: "해외주식", DividendCycle: models.CycleMonthly, LastDividendAmount: 31, Benchmark: "Dow Jones U.S. Dividend 100", ListingDate: "2024-01-23"},
}

var stockRegistry = map[string]StockMeta{
	"005930": {Sector: "반도체", Category: "전자/반도체", DividendCycle: models.CycleQuarterly, PER: 13.2, PBR: 1.15, Description: "반도체, 스마트폰, 디스플레이 등을 제조하는 글로벌 전자기업", ListingDate: "1975-06-11", Employees: 267937, Revenue: 258_9400_0000_0000, OperatingProfit: 6_5700_0000_0000, NetIncome: 15_4800_0000_0000},
	"000660": {Sector: "반도체", Category: "전자/반도체", DividendCycle: models.CycleAnnual, PER: 8.5, PBR: 1.82, Description: "DRAM, NAND Flash 등 메모리 반도체를 제조하는 기업", ListingDate: "1996-12-26", Employees: 35000, Revenue: 66_1900_0000_0000, OperatingProfit: 28_8800_0000_0000, NetIncome: 19_5700_0000_0000},
	"005380": {Sector: "자동차", Category: "자동차", DividendCycle: models.CycleQuarterly, PER: 5.8, PBR: 0.62, Description: "승용차, 상용차 및 자동차 부품을 제조·판매하는 자동차 기업", ListingDate: "1974-06-28", Employees: 75000, Revenue: 162_6600_0000_0000, OperatingProfit: 14_8700_0000_0000, NetIncome: 12_2700_0000_0000},
	"035420": {Sector: "인터넷", Category: "IT/플랫폼", DividendCycle: models.CycleAnnual, PER: 24.3, PBR: 1.45, Description: "검색, 커머스, 핀테크, 콘텐츠 등 인터넷 플랫폼 기업", ListingDate: "2002-10-29", Employees: 4500, Revenue: 9_6700_0000_0000, OperatingProfit: 1_5800_0000_0000, NetIncome: 1_0500_0000_0000},
	"068270": {Sector: "바이오", Category: "바이오", DividendCycle: models.CycleAnnual, PER: 38.7, PBR: 3.21, Description: "바이오시밀러 및 항체 의약품을 개발·생산하는 바이오 기업", ListingDate: "2018-11-08", Employees: 8500, Revenue: 3_5200_0000_0000, OperatingProfit: 5800_0000_0000, NetIncome: 4200_0000_0000},
}

// etfTickers and stockTickers fix the iteration order for AllTickers.
var etfTickers = []string{
	"069500", "133690", "278530", "371460", "381180", "305720", "379810",
	"364690", "261240", "252670", "102110", "114800", "229200", "091160",
	"453810", "458730", "441800", "446720", "490600",
}

var stockTickers = []string{"005930", "000660", "005380", "035420", "068270"}

// ETF returns the ETF metadata for a ticker, or false if it is not a
// registered ETF.
func ETF(ticker string) (ETFMeta, bool) {
	m, ok := etfRegistry[ticker]
	return m, ok
}

// Stock returns the stock metadata for a ticker, or false if it is not a
// registered stock.
func Stock(ticker string) (StockMeta, bool) {
	m, ok := stockRegistry[ticker]
	return m, ok
}

// IsETF reports whether the ticker is a registered ETF.
func IsETF(ticker string) bool {
	_, ok := etfRegistry[ticker]
	return ok
}

// Known reports whether the ticker exists in either registry.
func Known(ticker string) bool {
	if _, ok := etfRegistry[ticker]; ok {
		return true
	}
	_, ok := stockRegistry[ticker]
	return ok
}

// AllTickers returns every registered ticker, ETFs first, in a stable order.
func AllTickers() []string {
	out := make([]string, 0, len(etfTickers)+len(stockTickers))
	out = append(out, etfTickers...)
	out = append(out, stockTickers...)
	return out
}
