package domain

import "strings"

// AccountType defines the accounting taxonomy of an account.
type AccountType string

const (
	Asset      AccountType = "ASSET"
	Bank       AccountType = "BANK"
	Cash       AccountType = "CASH"
	Credit     AccountType = "CREDIT"
	Currency   AccountType = "CURRENCY"
	Equity     AccountType = "EQUITY"
	Expense    AccountType = "EXPENSE"
	Income     AccountType = "INCOME"
	Liability  AccountType = "LIABILITY"
	Mutual     AccountType = "MUTUAL"
	Payable    AccountType = "PAYABLE"
	Receivable AccountType = "RECEIVABLE"
	Root       AccountType = "ROOT"
	Stock      AccountType = "STOCK"
	Trading    AccountType = "TRADING"
)

// HasDebitNormalBalance reports whether the type's natural positive balance
// is reached via debits (asset/expense-like) rather than credits
// (liability/income/equity-like).
func (t AccountType) HasDebitNormalBalance() bool {
	switch t {
	case Asset, Bank, Cash, Currency, Expense, Mutual, Receivable, Stock, Root:
		return true
	default:
		return false
	}
}

// FullNameSeparator joins ancestor account names into the materialized path.
const FullNameSeparator = ":"

// RootFullName is the materialized full name of the root account. A single
// space sorts before every printable account name and is never part of a
// descendant's path.
const RootFullName = " "

// Account is one node of the hierarchical account tree.
type Account struct {
	AccountUID                string      `json:"accountUID"`
	Name                      string      `json:"name"`
	Description               string      `json:"description"`
	Type                      AccountType `json:"type"`
	CommodityUID              string      `json:"commodityUID"`
	ParentUID                 string      `json:"parentUID"` // empty only for ROOT
	FullName                  string      `json:"fullName"`  // colon-joined ancestor path, excluding ROOT
	Placeholder               bool        `json:"placeholder"`
	Hidden                    bool        `json:"hidden"`
	Favorite                  bool        `json:"favorite"`
	Color                     string      `json:"color"`
	DefaultTransferAccountUID string      `json:"defaultTransferAccountUID"`
	AuditFields
}

// IsRoot reports whether this is the book's root account.
func (a Account) IsRoot() bool {
	return a.Type == Root
}

// ChildFullName composes the materialized full name of a direct child given
// the parent's full name. Children of ROOT start a fresh path.
func ChildFullName(parentFullName, childName string) string {
	if parentFullName == "" || parentFullName == RootFullName {
		return childName
	}
	return parentFullName + FullNameSeparator + childName
}

// LeafName returns the last path segment of a full name.
func LeafName(fullName string) string {
	if idx := strings.LastIndex(fullName, FullNameSeparator); idx >= 0 {
		return fullName[idx+1:]
	}
	return fullName
}
