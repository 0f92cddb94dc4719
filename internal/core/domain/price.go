package domain

import "time"

// PriceSource values seen in the wild; free-form otherwise.
const (
	PriceSourceUser = "user:price-editor"
	PriceSourceXfer = "user:xfer-dialog"
)

// Price is one point of the exchange-rate time series for a commodity pair.
// ValueNum/ValueDenom is the amount of Currency one unit of Commodity buys.
type Price struct {
	PriceUID     string    `json:"priceUID"`
	CommodityUID string    `json:"commodityUID"`
	CurrencyUID  string    `json:"currencyUID"` // the quote side
	Date         time.Time `json:"date"`
	Source       string    `json:"source"`
	Type         string    `json:"type"`
	ValueNum     int64     `json:"valueNum"`
	ValueDenom   int64     `json:"valueDenom"`
	AuditFields
}

// Ratio is a raw exchange ratio. The zero Ratio is the "no price recorded"
// sentinel; callers must not use it as a multiplier.
type Ratio struct {
	Num   int64 `json:"num"`
	Denom int64 `json:"denom"`
}

// UnityRatio converts a commodity to itself.
var UnityRatio = Ratio{Num: 1, Denom: 1}

// IsZero reports whether the ratio is the "inconvertible" sentinel.
func (r Ratio) IsZero() bool {
	return r.Num == 0 && r.Denom == 0
}

// Invert swaps numerator and denominator, for prices stored in the opposite
// direction to the one requested.
func (r Ratio) Invert() Ratio {
	return Ratio{Num: r.Denom, Denom: r.Num}
}
