package yahoo

// Range tokens accepted by the chart endpoint.
const (
	Range1mo = "1mo"
	Range3mo = "3mo"
	Range6mo = "6mo"
	Range1y  = "1y"
	Range2y  = "2y"
	Range5y  = "5y"
)

type chartResponse struct {
	Chart chartData `json:"chart"`
}

type chartData struct {
	Result []chartResult `json:"result"`
	Error  *apiError     `json:"error"`
}

type chartResult struct {
	Timestamp  []int64         `json:"timestamp"`
	Indicators chartIndicators `json:"indicators"`
}

type chartIndicators struct {
	Quote []chartQuote `json:"quote"`
}

type chartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type summaryResponse struct {
	QuoteSummary quoteSummary `json:"quoteSummary"`
}

type quoteSummary struct {
	Result []summaryResult `json:"result"`
	Error  *apiError       `json:"error"`
}

type summaryResult struct {
	Price                *priceModule       `json:"price"`
	AssetProfile         *assetProfile      `json:"assetProfile"`
	SummaryDetail        *summaryDetail     `json:"summaryDetail"`
	FinancialData        *financialData     `json:"financialData"`
	DefaultKeyStatistics *defaultStatistics `json:"defaultKeyStatistics"`
}

// value is the {raw, fmt} wrapper the summary endpoint uses for every
// numeric field. Missing fields decode to a nil or zero wrapper.
type value struct {
	Raw *float64 `json:"raw"`
}

func (v *value) ptr() *float64 {
	if v == nil {
		return nil
	}
	return v.Raw
}

type priceModule struct {
	LongName           string `json:"longName"`
	Currency           string `json:"currency"`
	RegularMarketPrice value  `json:"regularMarketPrice"`
	MarketCap          value  `json:"marketCap"`
}

type assetProfile struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

type summaryDetail struct {
	TrailingPE    *value `json:"trailingPE"`
	ForwardPE     *value `json:"forwardPE"`
	PriceToSales  *value `json:"priceToSalesTrailing12Months"`
	DividendYield *value `json:"dividendYield"`
	DividendRate  *value `json:"dividendRate"`
	PayoutRatio   *value `json:"payoutRatio"`
}

type financialData struct {
	ReturnOnEquity   *value `json:"returnOnEquity"`
	ReturnOnAssets   *value `json:"returnOnAssets"`
	ProfitMargins    *value `json:"profitMargins"`
	OperatingMargins *value `json:"operatingMargins"`
	GrossMargins     *value `json:"grossMargins"`
	DebtToEquity     *value `json:"debtToEquity"`
	CurrentRatio     *value `json:"currentRatio"`
	QuickRatio       *value `json:"quickRatio"`
	TotalCash        *value `json:"totalCash"`
	TotalDebt        *value `json:"totalDebt"`
	FreeCashflow     *value `json:"freeCashflow"`
	RevenueGrowth    *value `json:"revenueGrowth"`
	EarningsGrowth   *value `json:"earningsGrowth"`
}

type defaultStatistics struct {
	PriceToBook         *value `json:"priceToBook"`
	PegRatio            *value `json:"pegRatio"`
	EnterpriseToRevenue *value `json:"enterpriseToRevenue"`
	EnterpriseToEbitda  *value `json:"enterpriseToEbitda"`
}
