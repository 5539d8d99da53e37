// Package yahoo implements the market-data and fundamentals providers
// against the public Yahoo Finance chart and quoteSummary endpoints.
// Outbound calls go through a token-bucket rate limiter and a circuit
// breaker so one slow upstream cannot stall a whole scan.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/equityscan/equityscan/internal/data"
	"github.com/equityscan/equityscan/internal/domain/fundamentals"
	"github.com/equityscan/equityscan/internal/domain/series"
)

const (
	defaultBaseURL = "https://query1.finance.yahoo.com"
	userAgent      = "Mozilla/5.0 (compatible; equityscan/1.0)"

	summaryModules = "price,assetProfile,summaryDetail,financialData,defaultKeyStatistics"
)

// Client talks to Yahoo Finance. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	log        zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithRateLimit overrides the default 5 req/s request budget.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// NewClient builds a Yahoo Finance client. The breaker opens after three
// consecutive failures or a >5% failure rate over a 60s window, matching
// the tolerance of a scan that retries on the next cycle anyway.
func NewClient(log zerolog.Logger, opts ...Option) *Client {
	settings := gobreaker.Settings{
		Name:     "yahoo",
		Interval: 60 * time.Second,
		Timeout:  60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= 3 {
				return true
			}
			if counts.Requests < 20 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) > 0.05
		},
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
		breaker:    gobreaker.NewCircuitBreaker(settings),
		log:        log.With().Str("component", "yahoo").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// normalizeSymbol appends the NSE suffix for plain symbols. Index symbols
// (^NSEI) and already-suffixed ones pass through.
func normalizeSymbol(symbol string) string {
	if strings.HasPrefix(symbol, "^") || strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + ".NS"
}

// FetchOHLCV implements data.MarketDataProvider.
func (c *Client) FetchOHLCV(ctx context.Context, symbol, period string) (series.Series, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		c.baseURL, url.PathEscape(normalizeSymbol(symbol)), url.QueryEscape(period))

	var resp chartResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", data.ErrDataUnavailable, symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s: empty chart", data.ErrDataUnavailable, symbol)
	}

	result := resp.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make(series.Series, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		open, high, low, close := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if open == nil || high == nil || low == nil || close == nil {
			continue // non-trading slot, drop the bar
		}
		bar := series.Bar{
			Time:  time.Unix(ts, 0).UTC(),
			Open:  *open,
			High:  *high,
			Low:   *low,
			Close: *close,
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s: all bars null", data.ErrDataUnavailable, symbol)
	}
	if err := bars.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, err)
	}

	c.log.Debug().Str("symbol", symbol).Int("bars", len(bars)).Msg("fetched ohlcv")
	return bars, nil
}

// FetchFundamentals implements data.FundamentalsProvider.
func (c *Client) FetchFundamentals(ctx context.Context, symbol string) (*fundamentals.Bundle, error) {
	normalized := normalizeSymbol(symbol)
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(normalized), url.QueryEscape(summaryModules))

	var resp summaryResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", data.ErrDataUnavailable, symbol, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s: empty summary", data.ErrDataUnavailable, symbol)
	}

	r := resp.QuoteSummary.Result[0]
	bundle := &fundamentals.Bundle{
		Basics: fundamentals.Basics{
			Symbol: strings.TrimSuffix(normalized, ".NS"),
		},
	}
	if r.Price != nil {
		bundle.Basics.CompanyName = r.Price.LongName
		bundle.Basics.Currency = r.Price.Currency
		if p := r.Price.RegularMarketPrice.Raw; p != nil {
			bundle.Basics.CurrentPrice = *p
		}
		if mc := r.Price.MarketCap.Raw; mc != nil {
			bundle.Basics.MarketCap = *mc
		}
	}
	if r.AssetProfile != nil {
		bundle.Basics.Sector = r.AssetProfile.Sector
		bundle.Basics.Industry = r.AssetProfile.Industry
	}
	if sd := r.SummaryDetail; sd != nil {
		bundle.Valuation.PERatio = sd.TrailingPE.ptr()
		bundle.Valuation.ForwardPE = sd.ForwardPE.ptr()
		bundle.Valuation.PriceToSales = sd.PriceToSales.ptr()
		bundle.Dividend.Yield = sd.DividendYield.ptr()
		bundle.Dividend.Rate = sd.DividendRate.ptr()
		bundle.Dividend.PayoutRatio = sd.PayoutRatio.ptr()
	}
	if fd := r.FinancialData; fd != nil {
		bundle.Profitability.ROE = fd.ReturnOnEquity.ptr()
		bundle.Profitability.ROA = fd.ReturnOnAssets.ptr()
		bundle.Profitability.ProfitMargin = fd.ProfitMargins.ptr()
		bundle.Profitability.OperatingMargin = fd.OperatingMargins.ptr()
		bundle.Profitability.GrossMargin = fd.GrossMargins.ptr()
		bundle.Health.DebtToEquity = scaleDebtToEquity(fd.DebtToEquity.ptr())
		bundle.Health.CurrentRatio = fd.CurrentRatio.ptr()
		bundle.Health.QuickRatio = fd.QuickRatio.ptr()
		bundle.Health.TotalCash = fd.TotalCash.ptr()
		bundle.Health.TotalDebt = fd.TotalDebt.ptr()
		bundle.Health.FreeCashFlow = fd.FreeCashflow.ptr()
		bundle.Growth.RevenueGrowth = fd.RevenueGrowth.ptr()
		bundle.Growth.EarningsGrowth = fd.EarningsGrowth.ptr()
	}
	if ks := r.DefaultKeyStatistics; ks != nil {
		bundle.Valuation.PriceToBook = ks.PriceToBook.ptr()
		bundle.Valuation.PEGRatio = ks.PegRatio.ptr()
		bundle.Valuation.EVToRevenue = ks.EnterpriseToRevenue.ptr()
		bundle.Valuation.EVToEBITDA = ks.EnterpriseToEbitda.ptr()
	}

	c.log.Debug().Str("symbol", symbol).Msg("fetched fundamentals")
	return bundle, nil
}

// at safely indexes a column that may be shorter than the timestamp axis.
func at(col []*float64, i int) *float64 {
	if i >= len(col) {
		return nil
	}
	return col[i]
}

// scaleDebtToEquity converts the endpoint's percentage form (e.g. 41.2) to
// the ratio form (0.412) the scorer and criteria expect.
func scaleDebtToEquity(v *float64) *float64 {
	if v == nil {
		return nil
	}
	scaled := *v / 100
	return &scaled
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: not found", data.ErrDataUnavailable)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("yahoo: unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return fmt.Errorf("%w: circuit open", data.ErrDataUnavailable)
		}
		return err
	}
	return json.Unmarshal(body.([]byte), out)
}
