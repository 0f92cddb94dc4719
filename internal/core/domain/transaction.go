package domain

import "time"

// TransactionType indicates whether a split debits or credits its account.
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// ReconcileState tracks whether a split has been reconciled against an
// external statement.
type ReconcileState string

const (
	NotReconciled ReconcileState = "n"
	Cleared       ReconcileState = "c"
	Reconciled    ReconcileState = "y"
)

// Split is one leg of a double-entry transaction, debiting or crediting
// exactly one account. Value is denominated in the transaction's commodity;
// Quantity in the account's commodity. The two only coincide when those
// commodities match.
type Split struct {
	SplitUID       string          `json:"splitUID"`
	TransactionUID string          `json:"transactionUID"`
	AccountUID     string          `json:"accountUID"`
	Type           TransactionType `json:"type"`
	ValueNum       int64           `json:"valueNum"`
	ValueDenom     int64           `json:"valueDenom"`
	QuantityNum    int64           `json:"quantityNum"`
	QuantityDenom  int64           `json:"quantityDenom"`
	Memo           string          `json:"memo"`
	ReconcileState ReconcileState  `json:"reconcileState"`
	ReconcileDate  time.Time       `json:"reconcileDate"`
	AuditFields
}

// Value returns the split's value as Money in the transaction's commodity.
func (s Split) Value(txnCommodity Commodity) Money {
	return Money{Num: s.ValueNum, Denom: s.ValueDenom, Commodity: txnCommodity}
}

// Quantity returns the split's quantity as Money in the account's commodity.
func (s Split) Quantity(accountCommodity Commodity) Money {
	return Money{Num: s.QuantityNum, Denom: s.QuantityDenom, Commodity: accountCommodity}
}

// SignedValue applies the debit/credit convention: debits add, credits
// subtract.
func (s Split) SignedValue(txnCommodity Commodity) Money {
	v := s.Value(txnCommodity)
	if s.Type == TransactionTypeCredit {
		return v.Neg()
	}
	return v
}

// Transaction is a double-entry record owning an ordered set of splits.
// A persisted, non-template transaction always balances to zero in its own
// commodity.
type Transaction struct {
	TransactionUID     string    `json:"transactionUID"`
	Description        string    `json:"description"`
	Notes              string    `json:"notes"`
	PostDate           time.Time `json:"postDate"`
	EnteredDate        time.Time `json:"enteredDate"`
	CommodityUID       string    `json:"commodityUID"`
	Exported           bool      `json:"exported"`
	Template           bool      `json:"template"`
	ScheduledActionUID string    `json:"scheduledActionUID"` // empty unless created from a scheduled action
	Splits             []Split   `json:"splits"`
	AuditFields
}

// Imbalance sums the signed split values in the transaction's commodity.
// A zero result means the transaction satisfies the double-entry constraint.
func (t Transaction) Imbalance(txnCommodity Commodity) (Money, error) {
	sum := ZeroMoney(txnCommodity)
	for _, s := range t.Splits {
		next, err := sum.Add(s.SignedValue(txnCommodity))
		if err != nil {
			return Money{}, err
		}
		sum = next
	}
	return sum, nil
}
