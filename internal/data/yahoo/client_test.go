package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equityscan/equityscan/internal/data"
)

const chartFixture = `{
  "chart": {
    "result": [{
      "timestamp": [1735689600, 1735776000, 1735862400],
      "indicators": {
        "quote": [{
          "open":   [100.0, null, 102.0],
          "high":   [101.0, null, 104.0],
          "low":    [99.0,  null, 101.5],
          "close":  [100.5, null, 103.0],
          "volume": [50000, null, 62000]
        }]
      }
    }],
    "error": null
  }
}`

const summaryFixture = `{
  "quoteSummary": {
    "result": [{
      "price": {
        "longName": "Reliance Industries Limited",
        "currency": "INR",
        "regularMarketPrice": {"raw": 2950.5},
        "marketCap": {"raw": 19950000000000}
      },
      "assetProfile": {"sector": "Energy", "industry": "Oil & Gas Refining"},
      "summaryDetail": {
        "trailingPE": {"raw": 28.4},
        "dividendYield": {"raw": 0.0035}
      },
      "financialData": {
        "returnOnEquity": {"raw": 0.089},
        "profitMargins": {"raw": 0.077},
        "debtToEquity": {"raw": 41.2},
        "currentRatio": {"raw": 1.18},
        "revenueGrowth": {"raw": 0.12}
      },
      "defaultKeyStatistics": {
        "priceToBook": {"raw": 2.1}
      }
    }],
    "error": null
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(zerolog.Nop(), WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestFetchOHLCVParsesAndDropsNullBars(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(chartFixture))
	})

	s, err := c.FetchOHLCV(context.Background(), "RELIANCE", Range1y)
	require.NoError(t, err)
	assert.Equal(t, "/v8/finance/chart/RELIANCE.NS", gotPath)

	// The null middle slot is dropped, not zero-filled.
	require.Len(t, s, 2)
	assert.InDelta(t, 100.5, s[0].Close, 1e-9)
	assert.InDelta(t, 103.0, s[1].Close, 1e-9)
	assert.InDelta(t, 62000.0, s[1].Volume, 1e-9)
	require.NoError(t, s.Validate())
}

func TestFetchOHLCVEmptyResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	})

	_, err := c.FetchOHLCV(context.Background(), "NOSUCH", Range1y)
	assert.ErrorIs(t, err, data.ErrDataUnavailable)
}

func TestFetchOHLCVNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.FetchOHLCV(context.Background(), "NOSUCH", Range1y)
	assert.ErrorIs(t, err, data.ErrDataUnavailable)
}

func TestFetchFundamentalsMapsModules(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v10/finance/quoteSummary/RELIANCE.NS")
		w.Write([]byte(summaryFixture))
	})

	b, err := c.FetchFundamentals(context.Background(), "RELIANCE")
	require.NoError(t, err)

	assert.Equal(t, "RELIANCE", b.Basics.Symbol)
	assert.Equal(t, "Energy", b.Basics.Sector)
	assert.InDelta(t, 2950.5, b.Basics.CurrentPrice, 1e-9)

	require.NotNil(t, b.Valuation.PERatio)
	assert.InDelta(t, 28.4, *b.Valuation.PERatio, 1e-9)
	require.NotNil(t, b.Valuation.PriceToBook)
	assert.InDelta(t, 2.1, *b.Valuation.PriceToBook, 1e-9)

	// Percentage-form debt/equity is scaled to a plain ratio.
	require.NotNil(t, b.Health.DebtToEquity)
	assert.InDelta(t, 0.412, *b.Health.DebtToEquity, 1e-9)

	// Fields the response omitted stay nil.
	assert.Nil(t, b.Valuation.ForwardPE)
	assert.Nil(t, b.Growth.EarningsGrowth)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := c.FetchOHLCV(ctx, "RELIANCE", Range1y)
		require.Error(t, err)
	}
	_, err := c.FetchOHLCV(ctx, "RELIANCE", Range1y)
	assert.ErrorIs(t, err, data.ErrDataUnavailable)
	assert.True(t, errors.Is(err, data.ErrDataUnavailable))
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "TCS.NS", normalizeSymbol("TCS"))
	assert.Equal(t, "TCS.NS", normalizeSymbol("TCS.NS"))
	assert.Equal(t, "^NSEI", normalizeSymbol("^NSEI"))
}
