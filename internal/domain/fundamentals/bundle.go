// Package fundamentals models per-symbol financial ratios and the banded
// financial health score built on them. Provider fields are frequently
// absent for thinly covered symbols, so every ratio is optional; a nil
// field contributes nothing to the score and fails any screening predicate
// that requires it.
package fundamentals

// Basics identifies the company behind a symbol.
type Basics struct {
	Symbol       string  `json:"symbol"`
	CompanyName  string  `json:"company_name"`
	Sector       string  `json:"sector"`
	Industry     string  `json:"industry"`
	MarketCap    float64 `json:"market_cap"`
	CurrentPrice float64 `json:"current_price"`
	Currency     string  `json:"currency"`
}

// Valuation ratios. All trailing unless named otherwise.
type Valuation struct {
	PERatio      *float64 `json:"pe_ratio,omitempty"`
	ForwardPE    *float64 `json:"forward_pe,omitempty"`
	PEGRatio     *float64 `json:"peg_ratio,omitempty"`
	PriceToBook  *float64 `json:"price_to_book,omitempty"`
	PriceToSales *float64 `json:"price_to_sales,omitempty"`
	EVToRevenue  *float64 `json:"ev_to_revenue,omitempty"`
	EVToEBITDA   *float64 `json:"ev_to_ebitda,omitempty"`
}

// Profitability ratios, expressed as fractions (0.15 = 15%).
type Profitability struct {
	ROE             *float64 `json:"roe,omitempty"`
	ROA             *float64 `json:"roa,omitempty"`
	ProfitMargin    *float64 `json:"profit_margin,omitempty"`
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
	GrossMargin     *float64 `json:"gross_margin,omitempty"`
}

// Health covers balance-sheet strength.
type Health struct {
	DebtToEquity *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio *float64 `json:"current_ratio,omitempty"`
	QuickRatio   *float64 `json:"quick_ratio,omitempty"`
	TotalCash    *float64 `json:"total_cash,omitempty"`
	TotalDebt    *float64 `json:"total_debt,omitempty"`
	FreeCashFlow *float64 `json:"free_cash_flow,omitempty"`
}

// Growth metrics, year over year as fractions.
type Growth struct {
	RevenueGrowth  *float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth *float64 `json:"earnings_growth,omitempty"`
}

// Dividend payout characteristics.
type Dividend struct {
	Yield       *float64 `json:"dividend_yield,omitempty"`
	Rate        *float64 `json:"dividend_rate,omitempty"`
	PayoutRatio *float64 `json:"payout_ratio,omitempty"`
}

// Bundle is the full fundamentals view for one symbol.
type Bundle struct {
	Basics        Basics        `json:"basic_info"`
	Valuation     Valuation     `json:"valuation_ratios"`
	Profitability Profitability `json:"profitability_ratios"`
	Health        Health        `json:"financial_health"`
	Growth        Growth        `json:"growth_metrics"`
	Dividend      Dividend      `json:"dividend_info"`
}

// Float returns a pointer to v, for building bundles in tests and criteria.
func Float(v float64) *float64 { return &v }
