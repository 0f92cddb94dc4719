package domain

// NamespaceCurrency is the commodity namespace for ISO-4217 currencies.
// Anything else is treated as a custom namespace (securities, funds, ...).
const NamespaceCurrency = "CURRENCY"

// Commodity is a tradable unit: a currency or a security.
// (Namespace, Mnemonic) is the logical identity; CommodityUID is the storage key.
type Commodity struct {
	CommodityUID     string `json:"commodityUID"`
	Namespace        string `json:"namespace"`
	Mnemonic         string `json:"mnemonic"` // e.g. "USD"
	FullName         string `json:"fullName"` // e.g. "US Dollar"
	LocalSymbol      string `json:"localSymbol"`
	CUSIP            string `json:"cusip"`
	SmallestFraction int64  `json:"smallestFraction"` // e.g. 100 for cents; always > 0
	QuoteFlag        bool   `json:"quoteFlag"`
	AuditFields
}

// Equal reports whether two commodities share the same logical identity.
func (c Commodity) Equal(other Commodity) bool {
	return c.Namespace == other.Namespace && c.Mnemonic == other.Mnemonic
}

// IsCurrency reports whether the commodity is an ISO-4217 currency.
func (c Commodity) IsCurrency() bool {
	return c.Namespace == NamespaceCurrency
}

// FractionDigits returns the number of decimal digits implied by the
// smallest fraction (100 -> 2, 1000 -> 3). Non-power-of-ten fractions
// round up to the next digit count.
func (c Commodity) FractionDigits() int32 {
	digits := int32(0)
	for f := c.SmallestFraction; f > 1; f = (f + 9) / 10 {
		digits++
	}
	return digits
}
