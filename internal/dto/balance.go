package dto

import "github.com/cashbook-app/cashbook/internal/core/domain"

// BalanceResult is the outcome of a balance aggregation. Total carries the
// converted sum in the requested currency; SkippedCurrencies lists commodity
// mnemonics whose contribution was dropped because no price was recorded, so
// callers can flag a possibly incomplete total instead of failing.
type BalanceResult struct {
	Total             domain.Money `json:"total"`
	SkippedCurrencies []string     `json:"skippedCurrencies,omitempty"`
}
