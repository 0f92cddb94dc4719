package dto

import "time"

// SaveTransactionOptions tunes SaveTransaction behaviour.
type SaveTransactionOptions struct {
	// DisableAutoBalance makes an unbalanced save fail with ErrUnbalanced
	// instead of injecting an imbalance split.
	DisableAutoBalance bool `json:"disableAutoBalance"`
}

// TimestampBounds reports the post-date range of matching transactions.
// Zero times mean no transaction matched.
type TimestampBounds struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}
