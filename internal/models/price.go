package models

import "time"

// Price mirrors one row of the prices table.
type Price struct {
	PriceUID     string    `db:"price_uid"`
	CommodityUID string    `db:"commodity_uid"`
	CurrencyUID  string    `db:"currency_uid"`
	Date         time.Time `db:"date"`
	Source       string    `db:"source"`
	PriceType    string    `db:"price_type"`
	ValueNum     int64     `db:"value_num"`
	ValueDenom   int64     `db:"value_denom"`
	AuditFields
}
