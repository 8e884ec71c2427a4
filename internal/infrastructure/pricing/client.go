// Package pricing implements the shopping/price provider client and the
// price enrichment aggregation used by the discovery pipeline.
package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vendorscout/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client calls a Serper-style shopping API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a shopping client
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

type shoppingRequest struct {
	Query  string `json:"q"`
	Locale string `json:"gl,omitempty"`
}

type shoppingResponse struct {
	Shopping []struct {
		Title  string `json:"title"`
		Source string `json:"source"`
		Price  string `json:"price"`
		Link   string `json:"link"`
		Seller string `json:"seller"`
	} `json:"shopping"`
}

// countryLocales maps target countries onto the provider's locale codes
var countryLocales = map[string]string{
	"china": "cn", "india": "in", "germany": "de", "united states": "us",
	"vietnam": "vn", "turkey": "tr", "japan": "jp", "south korea": "kr",
	"united kingdom": "gb", "france": "fr", "italy": "it", "spain": "es",
}

// SearchPrices returns structured price rows for the query in the given
// country's locale
func (c *Client) SearchPrices(ctx context.Context, query, country string) ([]domain.PriceRow, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	payload, err := json.Marshal(shoppingRequest{
		Query:  query,
		Locale: countryLocales[strings.ToLower(strings.TrimSpace(country))],
	})
	if err != nil {
		return nil, fmt.Errorf("marshal shopping request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/shopping", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Pricing] API error - status: %d, query: %q", resp.StatusCode, query)
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode)
	}

	var parsed shoppingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}

	rows := make([]domain.PriceRow, 0, len(parsed.Shopping))
	for _, item := range parsed.Shopping {
		price, currency := ParsePrice(item.Price)
		rows = append(rows, domain.PriceRow{
			Title:    item.Title,
			Source:   item.Source,
			Price:    price,
			RawPrice: item.Price,
			Currency: currency,
			URL:      item.Link,
			Vendor:   item.Seller,
		})
	}

	log.Printf("[Pricing] %d rows for query: %q", len(rows), query)
	return rows, nil
}

var priceNumberRegex = regexp.MustCompile(`[\d]+(?:[.,]\d+)*`)

// currencyTokens maps symbols and codes onto ISO currency codes. Matched in
// slice order so a string carrying two tokens ("₹1,299 (~$15)") always
// resolves the same way: distinctive symbols and codes before the ambiguous
// dollar sign.
var currencyTokens = []struct {
	token string
	code  string
}{
	{"€", "EUR"}, {"£", "GBP"}, {"¥", "CNY"}, {"₹", "INR"}, {"₺", "TRY"}, {"₫", "VND"},
	{"eur", "EUR"}, {"gbp", "GBP"}, {"cny", "CNY"}, {"rmb", "CNY"}, {"inr", "INR"}, {"usd", "USD"},
	{"$", "USD"},
}

// ParsePrice extracts a numeric amount and a currency code from a raw price
// string like "$12.50" or "EUR 1.299,00". Both "." and "," are accepted as
// decimal or thousands separators: with several separators the last one is
// the decimal mark, and a lone separator followed by exactly three digits
// reads as thousands ("1,299" is 1299, not 1.299). Unparseable input yields
// zero.
func ParsePrice(raw string) (float64, string) {
	currency := "USD"
	lowered := strings.ToLower(raw)
	for _, entry := range currencyTokens {
		if strings.Contains(lowered, entry.token) {
			currency = entry.code
			break
		}
	}

	match := priceNumberRegex.FindString(raw)
	if match == "" {
		return 0, currency
	}

	price, err := strconv.ParseFloat(normalizeAmount(match), 64)
	if err != nil {
		return 0, currency
	}
	return price, currency
}

// normalizeAmount rewrites a matched amount into ParseFloat form: thousands
// separators dropped, the decimal mark (if any) as "."
func normalizeAmount(match string) string {
	decimal := -1
	if i := strings.LastIndexAny(match, ".,"); i >= 0 {
		separators := strings.Count(match, ".") + strings.Count(match, ",")
		uniform := strings.Count(match, string(match[i])) == separators
		// Three digits after the last separator reads as a thousands group
		// ("1,299", "1.234.567") unless a different separator precedes it
		// ("1,234.567")
		if len(match)-i-1 != 3 || (separators > 1 && !uniform) {
			decimal = i
		}
	}

	var b strings.Builder
	for i, r := range match {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case i == decimal:
			b.WriteByte('.')
		}
	}
	return b.String()
}
