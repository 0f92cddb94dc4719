package models

// Commodity mirrors one row of the commodities table.
type Commodity struct {
	CommodityUID     string `db:"commodity_uid"`
	Namespace        string `db:"namespace"`
	Mnemonic         string `db:"mnemonic"`
	FullName         string `db:"full_name"`
	LocalSymbol      string `db:"local_symbol"`
	CUSIP            string `db:"cusip"`
	SmallestFraction int64  `db:"smallest_fraction"`
	QuoteFlag        bool   `db:"quote_flag"`
	AuditFields
}
