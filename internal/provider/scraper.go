package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"wondex/internal/models"
)

const (
	scrapeBaseURL = "https://finance.naver.com/item/main.naver"
	scrapeTimeout = 5 * time.Second

	scrapeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// The two markup anchors on the Naver Finance profile page. The surrounding
// HTML shifts occasionally but these label cells have been stable.
var (
	yieldPattern = regexp.MustCompile(`배당수익률\s*</th>\s*<td[^>]*>\s*([\d.]+)%`)
	dpsPattern   = regexp.MustCompile(`주당배당금\s*</th>\s*<td[^>]*>\s*([\d,]+)\s*원`)
)

// Scraper extracts dividend info from the Naver Finance profile page. It is
// the only dividend source covering ETFs, and the fallback for stocks the
// structured service misses.
type Scraper struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewScraper creates a Naver Finance dividend scraper.
func NewScraper(httpClient *http.Client) *Scraper {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Scraper{httpClient: httpClient, baseURL: scrapeBaseURL}
}

// ScrapeDividend fetches the profile page and extracts yield and per-share
// amount. It never returns an error: any failure yields NoDividend. The page
// does not distinguish monthly from quarterly payers, so a nonzero yield is
// always reported as annual; callers that know better (the ETF registry)
// override the cycle.
func (s *Scraper) ScrapeDividend(ctx context.Context, ticker string) DividendInfo {
	ctx, cancel := context.WithTimeout(ctx, scrapeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?code=%s", s.baseURL, ticker), nil)
	if err != nil {
		return NoDividend()
	}
	req.Header.Set("User-Agent", scrapeUA)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return NoDividend()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return NoDividend()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NoDividend()
	}
	html := string(body)

	var yield float64
	if m := yieldPattern.FindStringSubmatch(html); m != nil {
		yield, _ = strconv.ParseFloat(m[1], 64)
	}

	var lastAmount int64
	if m := dpsPattern.FindStringSubmatch(html); m != nil {
		lastAmount, _ = strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
	}

	cycle := models.CycleNone
	if yield > 0 {
		cycle = models.CycleAnnual
	}

	return DividendInfo{
		DividendYield:      yield,
		DividendCycle:      cycle,
		LastDividendAmount: lastAmount,
	}
}
