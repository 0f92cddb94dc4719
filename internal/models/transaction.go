package models

import "time"

// Transaction mirrors one row of the transactions table.
type Transaction struct {
	TransactionUID     string    `db:"transaction_uid"`
	Description        string    `db:"description"`
	Notes              string    `db:"notes"`
	PostDate           time.Time `db:"post_date"`
	EnteredDate        time.Time `db:"entered_date"`
	CommodityUID       string    `db:"commodity_uid"`
	Exported           bool      `db:"exported"`
	Template           bool      `db:"template"`
	ScheduledActionUID string    `db:"scheduled_action_uid"`
	AuditFields
}

// Split mirrors one row of the splits table.
type Split struct {
	SplitUID       string    `db:"split_uid"`
	TransactionUID string    `db:"transaction_uid"`
	AccountUID     string    `db:"account_uid"`
	SplitType      string    `db:"split_type"`
	ValueNum       int64     `db:"value_num"`
	ValueDenom     int64     `db:"value_denom"`
	QuantityNum    int64     `db:"quantity_num"`
	QuantityDenom  int64     `db:"quantity_denom"`
	Memo           string    `db:"memo"`
	ReconcileState string    `db:"reconcile_state"`
	ReconcileDate  time.Time `db:"reconcile_date"`
	AuditFields
}
