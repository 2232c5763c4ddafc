// Package provider contains the clients for the external market-data sources:
// the Naver polling quote API, the Naver chart API, the data.go.kr open-data
// listings and dividend services, and the Naver Finance HTML dividend scraper.
//
// Every numeric field from these sources arrives as text and is passed through
// untouched; parsing happens in the normalizer. Expected failures (timeouts,
// non-2xx, malformed payloads) degrade to nil/empty/default values rather than
// escalating, so callers can always fall back to the mock dataset.
package provider

import (
	"wondex/internal/models"
)

// RawQuote is a single quote record as delivered by an upstream source.
// All numerics are strings; the normalizer owns parsing and fallbacks.
type RawQuote struct {
	Ticker     string
	Name       string
	ClosePrice string
	ChangeRate string
	Volume     string
	MarketCap  string
}

// DividendInfo is the resolved dividend data for one ticker.
type DividendInfo struct {
	DividendYield      float64 `json:"dividendYield"`
	DividendCycle      string  `json:"dividendCycle"`
	LastDividendAmount int64   `json:"lastDividendAmount"`
}

// NoDividend is the value returned whenever dividend data cannot be obtained.
func NoDividend() DividendInfo {
	return DividendInfo{DividendYield: 0, DividendCycle: models.CycleNone, LastDividendAmount: 0}
}

// IsZero reports whether the info carries no dividend data.
func (d DividendInfo) IsZero() bool {
	return d.DividendYield == 0 && d.LastDividendAmount == 0
}
