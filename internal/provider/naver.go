package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

const (
	pollingBaseURL = "https://polling.finance.naver.com/api/realtime/domestic/stock"
	chartBaseURL   = "https://api.finance.naver.com/siseJson.naver"

	quoteTimeout   = 8 * time.Second
	historyTimeout = 10 * time.Second

	// fetchConcurrency bounds in-flight quote requests per batch group.
	fetchConcurrency = 6

	naverUA = "Mozilla/5.0"
)

// dateToken matches the 8-digit date column that opens every data row of the
// siseJson payload.
var dateToken = regexp.MustCompile(`"(\d{8})"`)

// pollingResponse is the Naver realtime polling API envelope.
type pollingResponse struct {
	Datas []struct {
		ItemCode                    string `json:"itemCode"`
		StockName                   string `json:"stockName"`
		ClosePriceRaw               string `json:"closePriceRaw"`
		FluctuationsRatioRaw        string `json:"fluctuationsRatioRaw"`
		AccumulatedTradingVolumeRaw string `json:"accumulatedTradingVolumeRaw"`
	} `json:"datas"`
}

// QuoteClient fetches realtime quotes and daily price history from Naver
// Finance.
type QuoteClient struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	chartURL   string // overridable for tests
}

// NewQuoteClient creates a new Naver quote client. A nil httpClient gets a
// default one; per-call deadlines come from context timeouts.
func NewQuoteClient(httpClient *http.Client) *QuoteClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &QuoteClient{
		httpClient: httpClient,
		baseURL:    pollingBaseURL,
		chartURL:   chartBaseURL,
	}
}

// FetchOne fetches the latest quote for one ticker. On any expected failure
// (timeout, non-2xx, empty payload) it returns (nil, err); callers must treat
// that as "unavailable", not as an error to escalate.
func (c *QuoteClient) FetchOne(ctx context.Context, ticker string) (*RawQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, quoteTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+ticker, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var polled pollingResponse
	if err := json.NewDecoder(resp.Body).Decode(&polled); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(polled.Datas) == 0 {
		return nil, fmt.Errorf("no quote data for %s", ticker)
	}

	data := polled.Datas[0]
	return &RawQuote{
		Ticker:     data.ItemCode,
		Name:       data.StockName,
		ClosePrice: data.ClosePriceRaw,
		ChangeRate: data.FluctuationsRatioRaw,
		Volume:     data.AccumulatedTradingVolumeRaw,
		// The polling API does not carry market cap; the normalizer
		// substitutes the last-known value.
		MarketCap: "0",
	}, nil
}

// FetchMany fetches quotes for many tickers in groups of fetchConcurrency.
// All fetches of a group settle before the next group starts, and a failed
// ticker is simply absent from the result map; one rejection never aborts
// the batch.
func (c *QuoteClient) FetchMany(ctx context.Context, tickers []string) map[string]*RawQuote {
	result := make(map[string]*RawQuote, len(tickers))

	for i := 0; i < len(tickers); i += fetchConcurrency {
		group := tickers[i:min(i+fetchConcurrency, len(tickers))]
		quotes := make([]*RawQuote, len(group))

		var wg sync.WaitGroup
		for j, ticker := range group {
			wg.Add(1)
			go func(slot int, t string) {
				defer wg.Done()
				q, err := c.FetchOne(ctx, t)
				if err == nil {
					quotes[slot] = q
				}
			}(j, ticker)
		}
		wg.Wait()

		for j, q := range quotes {
			if q != nil {
				result[group[j]] = q
			}
		}
	}

	return result
}

// FetchHistory fetches up to days daily closes for a ticker from the chart
// endpoint. The query window is padded 1.5x to absorb weekends and holidays.
// An empty or malformed payload yields an empty slice, not an error; callers
// fall back to synthetic data.
func (c *QuoteClient) FetchHistory(ctx context.Context, ticker string, days int) ([]RawQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, historyTimeout)
	defer cancel()

	now := time.Now()
	start := now.AddDate(0, 0, -int(math.Ceil(float64(days)*1.5)))

	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("requestType", "1")
	params.Set("startTime", start.Format("20060102"))
	params.Set("endTime", now.Format("20060102"))
	params.Set("timeframe", "day")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.chartURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", naverUA)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	rows := parseChartPayload(ticker, string(body))
	if len(rows) > days {
		rows = rows[len(rows)-days:]
	}
	return rows, nil
}

// parseChartPayload extracts close/volume rows from the bracketed CSV blob
// returned by siseJson. Rows look like:
//
//	["20260210", 79300, 79900, 78800, 79500, 12345678, 52.1],
//
// Only lines opening with a quoted date are data rows; the rest is header
// and padding.
func parseChartPayload(ticker, payload string) []RawQuote {
	var rows []RawQuote
	for _, line := range strings.Split(strings.TrimSpace(payload), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, `["2`) {
			continue
		}
		if !dateToken.MatchString(line) {
			continue
		}

		cleaned := strings.NewReplacer("[", "", "]", "", `"`, "").Replace(line)
		parts := strings.Split(cleaned, ",")
		if len(parts) < 6 {
			continue
		}
		for k := range parts {
			parts[k] = strings.TrimSpace(parts[k])
		}

		rows = append(rows, RawQuote{
			Ticker:     ticker,
			Name:       "",
			ClosePrice: parts[4],
			ChangeRate: "0",
			Volume:     parts[5],
			MarketCap:  "0",
		})
	}
	return rows
}
