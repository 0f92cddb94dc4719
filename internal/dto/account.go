package dto

// SaveAccountRequest carries the fields for creating or replacing an account.
// AccountUID is optional; a new one is generated when absent. ParentUID is
// optional for non-ROOT accounts and defaults to the book's root.
type SaveAccountRequest struct {
	AccountUID                string `json:"accountUID" validate:"omitempty,max=64"`
	Name                      string `json:"name" validate:"required,max=255,excludes=:"`
	Description               string `json:"description" validate:"max=4096"`
	Type                      string `json:"type" validate:"required,oneof=ASSET BANK CASH CREDIT CURRENCY EQUITY EXPENSE INCOME LIABILITY MUTUAL PAYABLE RECEIVABLE ROOT STOCK TRADING"`
	CommodityUID              string `json:"commodityUID" validate:"required"`
	ParentUID                 string `json:"parentUID" validate:"omitempty,max=64"`
	Placeholder               bool   `json:"placeholder"`
	Hidden                    bool   `json:"hidden"`
	Favorite                  bool   `json:"favorite"`
	Color                     string `json:"color" validate:"omitempty,hexcolor"`
	DefaultTransferAccountUID string `json:"defaultTransferAccountUID" validate:"omitempty,max=64"`
}

// DescendantFilter optionally prunes the descendant walk. An excluded account
// hides its whole subtree, even descendants that would match on their own.
type DescendantFilter struct {
	// SameCommodityAsUID keeps only accounts sharing this commodity.
	SameCommodityAsUID string `json:"sameCommodityAsUID"`
}
