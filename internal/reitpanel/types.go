// Package reitpanel loads and cleans the raw REIT security-month panel.
//
// The cleaning contract: rows missing any key field (ticker, date, return)
// are dropped, duplicate (ticker, month-end) keys keep the first occurrence
// in input order, returns outside the configured bounds are dropped, and
// every surviving date is normalized to a month-end. Row-level defects are
// counted, never fatal; only an unreadable or structurally broken input
// aborts the stage.
package reitpanel

import "time"

// Return bounds applied when the configuration leaves them unset. Bounds
// are inclusive: a -1.0 return (total loss) survives cleaning.
const (
	DefaultReturnMin = -1.0
	DefaultReturnMax = 5.0
)

// SecurityMonth is one REIT security-month observation. Numeric fields use
// NaN for missing values; only Ticker, Date and Return are guaranteed
// present after cleaning.
type SecurityMonth struct {
	Permno          string
	Ticker          string
	CompanyName     string
	REITType        string
	PropertyType    string
	PropertySubtype string
	Date            time.Time // month-end
	Return          float64   // monthly total return, decimal fraction
	Price           float64
	MarketEquity    float64
	Assets          float64
	Sales           float64
	NetIncome       float64
	BookEquity      float64
	DebtAssets      float64
	CashAssets      float64
	OCFAssets       float64
	ROE             float64
	BookToMarket    float64
	Beta            float64
}

// recordKey identifies a security-month for deduplication
type recordKey struct {
	ticker string
	date   time.Time
}

// Column names of the master panel and the cleaned output, in output order.
const (
	ColPermno       = "permno"
	ColTicker       = "ticker"
	ColCompanyName  = "comnam"
	ColDate         = "date"
	ColReturn       = "usdret"
	ColPrice        = "price"
	ColMarketEquity = "market_equity"
	ColREITType     = "rtype"
	ColPropertyType = "ptype"
	ColPropertySub  = "psubtype"
	ColAssets       = "assets"
	ColSales        = "sales"
	ColNetIncome    = "net_income"
	ColBookEquity   = "book_equity"
	ColDebtAssets   = "debt_at"
	ColCashAssets   = "cash_at"
	ColOCFAssets    = "ocf_at"
	ColROE          = "roe"
	ColBookToMarket = "bm"
	ColBeta         = "beta"
)

// Columns returns the canonical column order for the cleaned panel.
func Columns() []string {
	return []string{
		ColPermno, ColTicker, ColCompanyName, ColDate, ColReturn,
		ColPrice, ColMarketEquity, ColREITType, ColPropertyType,
		ColPropertySub, ColAssets, ColSales, ColNetIncome, ColBookEquity,
		ColDebtAssets, ColCashAssets, ColOCFAssets, ColROE,
		ColBookToMarket, ColBeta,
	}
}

// keyColumns must be present in the input header; the stage aborts without
// them because no row could ever form a valid key.
var keyColumns = []string{ColTicker, ColDate, ColReturn}

// LoadStats counts row-level defects seen while reading the raw panel.
// Rows counted here never reach the cleaner.
type LoadStats struct {
	RowsRead       int
	MalformedCSV   int
	MissingKey     int
	InvalidDates   int
	InvalidReturns int
}

// Dropped returns the total rows excluded during loading.
func (s LoadStats) Dropped() int {
	return s.MalformedCSV + s.MissingKey + s.InvalidDates + s.InvalidReturns
}

// CleanStats counts rows excluded by the cleaning filters.
type CleanStats struct {
	Input      int
	Duplicates int
	Outliers   int
	Output     int
}

// Audit is the machine-readable record of one cleaning run, written as a
// JSON sidecar next to the cleaned CSV so the reporting stage can recount
// every filtering step.
type Audit struct {
	Stage                 string `json:"stage"`
	Source                string `json:"source"`
	InputRows             int    `json:"input_rows"`
	DroppedMalformed      int    `json:"dropped_malformed"`
	DroppedMissingKey     int    `json:"dropped_missing_key"`
	DroppedInvalidDates   int    `json:"dropped_invalid_dates"`
	DroppedInvalidReturns int    `json:"dropped_invalid_returns"`
	DroppedDuplicates     int    `json:"dropped_duplicates"`
	DroppedOutliers       int    `json:"dropped_outliers"`
	OutputRows            int    `json:"output_rows"`
	UniqueTickers         int    `json:"unique_tickers"`
	DateMin               string `json:"date_min"`
	DateMax               string `json:"date_max"`
	GeneratedAt           string `json:"generated_at"`
}
