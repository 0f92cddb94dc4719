package accounting

import (
	"fmt"

	"github.com/cashbook-app/cashbook/internal/core/domain"
)

// SignedValue applies the debit/credit sign convention to a split's value:
// DEBIT adds, CREDIT subtracts. The same convention is used by auto-balance
// computation and by every balance aggregation so the two can never disagree.
func SignedValue(split domain.Split, txnCommodity domain.Commodity) domain.Money {
	return split.SignedValue(txnCommodity)
}

// SignedQuantity applies the debit/credit sign convention to a split's
// quantity (the amount in the owning account's commodity).
func SignedQuantity(split domain.Split, accountCommodity domain.Commodity) domain.Money {
	q := split.Quantity(accountCommodity)
	if split.Type == domain.TransactionTypeCredit {
		return q.Neg()
	}
	return q
}

// SumSignedValues sums the signed split values in the transaction's
// commodity. A zero result means the double-entry constraint holds.
func SumSignedValues(splits []domain.Split, txnCommodity domain.Commodity) (domain.Money, error) {
	sum := domain.ZeroMoney(txnCommodity)
	for _, s := range splits {
		next, err := sum.Add(SignedValue(s, txnCommodity))
		if err != nil {
			return domain.Money{}, fmt.Errorf("summing split %s: %w", s.SplitUID, err)
		}
		sum = next
	}
	return sum, nil
}

// ValidateBalanced returns an error unless the splits sum to zero in the
// transaction's commodity.
func ValidateBalanced(splits []domain.Split, txnCommodity domain.Commodity) error {
	sum, err := SumSignedValues(splits, txnCommodity)
	if err != nil {
		return err
	}
	if !sum.IsZero() {
		return fmt.Errorf("splits sum to %s, expected zero", sum)
	}
	return nil
}
