package dto

// RegisterCommodityRequest carries the fields for registering a commodity.
type RegisterCommodityRequest struct {
	Namespace        string `json:"namespace" validate:"required,max=64"`
	Mnemonic         string `json:"mnemonic" validate:"required,max=16"`
	FullName         string `json:"fullName" validate:"max=255"`
	LocalSymbol      string `json:"localSymbol" validate:"max=8"`
	CUSIP            string `json:"cusip" validate:"max=16"`
	SmallestFraction int64  `json:"smallestFraction" validate:"required,gt=0"`
	QuoteFlag        bool   `json:"quoteFlag"`
}
