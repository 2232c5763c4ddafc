package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"wondex/internal/models"
)

const (
	listingsBaseURL = "https://apis.data.go.kr/1160100/service/GetStockSecuritiesInfoService/getStockPriceInfo"
	dividendBaseURL = "https://apis.data.go.kr/1160100/service/GetStockDividendInfoService/getStockDividendInfo"

	listingsTimeout = 30 * time.Second
	dividendTimeout = 8 * time.Second

	// ListingsPageSize is the fixed page size for the full-market listing
	// endpoint.
	ListingsPageSize = 1000
)

// ListingRow is one instrument row of the full-market listing.
type ListingRow struct {
	BasDt   string `json:"basDt"`   // business date, YYYYMMDD
	SrtnCd  string `json:"srtnCd"`  // exchange short code (ticker)
	IsinCd  string `json:"isinCd"`  // ISIN
	ItmsNm  string `json:"itmsNm"`  // instrument name
	MrktCtg string `json:"mrktCtg"` // market segment: KOSPI | KOSDAQ | KONEX
}

// openDataEnvelope is the data.go.kr response wrapper. The items field is the
// empty string when there are no results, an object with a single item, or an
// object with an item array; decodeItems handles all three.
type openDataEnvelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body *struct {
			TotalCount int             `json:"totalCount"`
			PageNo     int             `json:"pageNo"`
			NumOfRows  int             `json:"numOfRows"`
			Items      json.RawMessage `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// decodeItems unpacks the items quirks of the open-data portal into a slice.
func decodeItems(raw json.RawMessage, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.HasPrefix(trimmed, []byte(`"`)) {
		return nil
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return fmt.Errorf("decoding items: %w", err)
	}
	inner := bytes.TrimSpace(wrapper.Item)
	if len(inner) == 0 {
		return nil
	}

	if bytes.HasPrefix(inner, []byte("[")) {
		return json.Unmarshal(inner, out)
	}
	// Single object: wrap it into a one-element array before decoding.
	return json.Unmarshal(append(append([]byte("["), inner...), ']'), out)
}

// ListingsClient pages through the data.go.kr full-market listing service.
type ListingsClient struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	serviceKey string
}

// NewListingsClient creates a listings client with the given open-data
// portal credential.
func NewListingsClient(httpClient *http.Client, serviceKey string) *ListingsClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ListingsClient{
		httpClient: httpClient,
		baseURL:    listingsBaseURL,
		serviceKey: serviceKey,
	}
}

// FetchPage fetches one page of the listing within the date window. Unlike
// the quote clients, page failures are hard errors: the collector aborts the
// whole run rather than commit a partial snapshot.
func (c *ListingsClient) FetchPage(ctx context.Context, pageNo int, beginDt, endDt string) ([]ListingRow, int, error) {
	ctx, cancel := context.WithTimeout(ctx, listingsTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("numOfRows", strconv.Itoa(ListingsPageSize))
	params.Set("pageNo", strconv.Itoa(pageNo))
	params.Set("resultType", "json")
	params.Set("beginBasDt", beginDt)
	params.Set("endBasDt", endDt)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var envelope openDataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, 0, fmt.Errorf("decoding response: %w", err)
	}
	body := envelope.Response.Body
	if body == nil {
		return nil, 0, fmt.Errorf("missing response body: %s %s",
			envelope.Response.Header.ResultCode, envelope.Response.Header.ResultMsg)
	}

	var items []ListingRow
	if err := decodeItems(body.Items, &items); err != nil {
		return nil, 0, err
	}
	return items, body.TotalCount, nil
}

// dividendItem is one record of the stock dividend history service.
type dividendItem struct {
	BasDt          string `json:"basDt"`          // business date, YYYYMMDD
	SrtnCd         string `json:"srtnCd"`         // ticker
	ThstrmDvdnAmt  string `json:"thstrmDvdnAmt"`  // per-share amount, won
	ThstrmDvdnYldt string `json:"thstrmDvdnYldt"` // yield, percent or fraction
	DvdnRcd        string `json:"dvdnRcd"`        // record date
}

// DividendClient queries the data.go.kr structured dividend-history service.
// Its scope covers listed companies only; ETFs go through the scraper.
type DividendClient struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	serviceKey string
}

// NewDividendClient creates a dividend client with the given credential.
func NewDividendClient(httpClient *http.Client, serviceKey string) *DividendClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &DividendClient{
		httpClient: httpClient,
		baseURL:    dividendBaseURL,
		serviceKey: serviceKey,
	}
}

// FetchStockDividend resolves dividend info from up to two years of history.
// It never returns an error: any failure yields NoDividend. The payout cycle
// is inferred from how many records land in a single calendar year.
func (c *DividendClient) FetchStockDividend(ctx context.Context, ticker string) DividendInfo {
	if c.serviceKey == "" {
		return NoDividend()
	}

	ctx, cancel := context.WithTimeout(ctx, dividendTimeout)
	defer cancel()

	now := time.Now()
	twoYearsAgo := time.Date(now.Year()-2, time.January, 1, 0, 0, 0, 0, now.Location())

	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	// Quarterly payers produce at most 8 records over two years.
	params.Set("numOfRows", "10")
	params.Set("pageNo", "1")
	params.Set("resultType", "json")
	params.Set("srtnCd", ticker)
	params.Set("beginBasDt", twoYearsAgo.Format("20060102"))
	params.Set("endBasDt", now.Format("20060102"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return NoDividend()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NoDividend()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return NoDividend()
	}

	var envelope openDataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return NoDividend()
	}
	if envelope.Response.Body == nil {
		return NoDividend()
	}

	var items []dividendItem
	if err := decodeItems(envelope.Response.Body.Items, &items); err != nil || len(items) == 0 {
		return NoDividend()
	}

	sort.Slice(items, func(i, j int) bool { return items[i].BasDt > items[j].BasDt })
	latest := items[0]

	rawYield, _ := strconv.ParseFloat(latest.ThstrmDvdnYldt, 64)
	lastAmount, _ := strconv.ParseInt(latest.ThstrmDvdnAmt, 10, 64)
	if rawYield == 0 && lastAmount == 0 {
		return NoDividend()
	}

	// Some tickers report the yield as a fraction (0.0182) rather than a
	// percent (1.82).
	yield := rawYield
	if yield > 0 && yield < 1 {
		yield *= 100
	}

	return DividendInfo{
		DividendYield:      yield,
		DividendCycle:      inferCycle(items, now.Year()),
		LastDividendAmount: lastAmount,
	}
}

// inferCycle estimates payout cadence from record density: four or more
// records in a calendar year means quarterly, two or more semiannual,
// otherwise annual.
func inferCycle(items []dividendItem, year int) string {
	thisYear := strconv.Itoa(year)
	lastYear := strconv.Itoa(year - 1)

	countIn := func(prefix string) int {
		n := 0
		for _, item := range items {
			if len(item.BasDt) >= 4 && item.BasDt[:4] == prefix {
				n++
			}
		}
		return n
	}

	perYear := max(countIn(thisYear), countIn(lastYear))
	switch {
	case perYear >= 4:
		return models.CycleQuarterly
	case perYear >= 2:
		return models.CycleSemiannual
	default:
		return models.CycleAnnual
	}
}
