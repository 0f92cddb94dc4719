package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/cashbook-app/cashbook/internal/apperrors"
)

// Money is an exact rational amount tied to a commodity. The value is
// Num/Denom with Denom > 0; arithmetic never goes through binary floating
// point. Amounts of different commodities must be converted through a
// recorded price before they can be combined.
type Money struct {
	Num       int64     `json:"num"`
	Denom     int64     `json:"denom"`
	Commodity Commodity `json:"commodity"`
}

// NewMoney builds a Money from a raw numerator/denominator pair.
func NewMoney(num, denom int64, commodity Commodity) (Money, error) {
	if denom <= 0 {
		return Money{}, fmt.Errorf("%w: money denominator must be positive, got %d", apperrors.ErrValidation, denom)
	}
	return Money{Num: num, Denom: denom, Commodity: commodity}, nil
}

// ZeroMoney returns the zero amount of the given commodity, denominated in
// its smallest fraction.
func ZeroMoney(commodity Commodity) Money {
	denom := commodity.SmallestFraction
	if denom <= 0 {
		denom = 1
	}
	return Money{Num: 0, Denom: denom, Commodity: commodity}
}

// MoneyFromDecimalString parses a decimal string ("12.34") into a Money
// denominated in the commodity's smallest fraction (1234/100 for USD).
// Excess precision is rounded half-even to the commodity's fraction digits.
func MoneyFromDecimalString(s string, commodity Commodity) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: invalid decimal amount %q: %v", apperrors.ErrValidation, s, err)
	}
	return MoneyFromDecimal(d, commodity)
}

// MoneyFromDecimal converts an exact decimal into a Money denominated in the
// commodity's smallest fraction.
func MoneyFromDecimal(d decimal.Decimal, commodity Commodity) (Money, error) {
	denom := commodity.SmallestFraction
	if denom <= 0 {
		return Money{}, fmt.Errorf("%w: commodity %s has no smallest fraction", apperrors.ErrValidation, commodity.Mnemonic)
	}
	scaled := d.Mul(decimal.NewFromInt(denom)).RoundBank(0)
	if !scaled.BigInt().IsInt64() {
		return Money{}, fmt.Errorf("%w: amount %s overflows commodity fraction %d", apperrors.ErrValidation, d, denom)
	}
	return Money{Num: scaled.BigInt().Int64(), Denom: denom, Commodity: commodity}, nil
}

func (m Money) sameCommodity(other Money) error {
	if !m.Commodity.Equal(other.Commodity) {
		return fmt.Errorf("%w: %s vs %s", apperrors.ErrCurrencyMismatch, m.Commodity.Mnemonic, other.Commodity.Mnemonic)
	}
	return nil
}

// Add returns m + other. Both operands must share a commodity.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCommodity(other); err != nil {
		return Money{}, err
	}
	if m.Denom == other.Denom {
		sum := m.Num + other.Num
		if (other.Num > 0 && sum < m.Num) || (other.Num < 0 && sum > m.Num) {
			return Money{}, fmt.Errorf("%w: amount overflows 64-bit rational", apperrors.ErrValidation)
		}
		return Money{Num: sum, Denom: m.Denom, Commodity: m.Commodity}, nil
	}
	num := new(big.Int).Add(
		new(big.Int).Mul(big.NewInt(m.Num), big.NewInt(other.Denom)),
		new(big.Int).Mul(big.NewInt(other.Num), big.NewInt(m.Denom)),
	)
	denom := new(big.Int).Mul(big.NewInt(m.Denom), big.NewInt(other.Denom))
	return reduceBig(num, denom, m.Commodity)
}

// Sub returns m - other. Both operands must share a commodity.
func (m Money) Sub(other Money) (Money, error) {
	return m.Add(other.Neg())
}

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return Money{Num: -m.Num, Denom: m.Denom, Commodity: m.Commodity}
}

// Abs returns the absolute amount.
func (m Money) Abs() Money {
	if m.Num < 0 {
		return m.Neg()
	}
	return m
}

// Cmp compares two amounts of the same commodity via cross-multiplication,
// returning -1, 0 or 1. It never converts to floating point.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.sameCommodity(other); err != nil {
		return 0, err
	}
	left := new(big.Int).Mul(big.NewInt(m.Num), big.NewInt(other.Denom))
	right := new(big.Int).Mul(big.NewInt(other.Num), big.NewInt(m.Denom))
	return left.Cmp(right), nil
}

// IsNegative reports whether the amount is strictly below zero.
func (m Money) IsNegative() bool {
	return m.Num < 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Num == 0
}

// Amount returns the value as an exact decimal at the commodity's fraction digits.
func (m Money) Amount() decimal.Decimal {
	return m.decimalAtScale(m.Commodity.FractionDigits())
}

// ToDecimalString renders the amount with the requested number of decimal
// places, rounding half-even when the rational does not terminate there.
func (m Money) ToDecimalString(scale int32) string {
	return m.decimalAtScale(scale).StringFixed(scale)
}

func (m Money) decimalAtScale(scale int32) decimal.Decimal {
	rat := big.NewRat(m.Num, m.Denom)
	// Two guard digits so RoundBank sees the true remainder.
	return decimal.NewFromBigRat(rat, scale+2).RoundBank(scale)
}

// String renders the amount at the commodity's native precision with its code.
func (m Money) String() string {
	return m.ToDecimalString(m.Commodity.FractionDigits()) + " " + m.Commodity.Mnemonic
}

// ConvertTo converts the amount into the target commodity by multiplying with
// the price ratio ratioNum/ratioDenom, then rounding half-even to the target
// commodity's smallest fraction. A (0, 0) ratio is the "no price recorded"
// sentinel and yields ErrConversionUnavailable.
func (m Money) ConvertTo(target Commodity, ratioNum, ratioDenom int64) (Money, error) {
	if ratioNum == 0 && ratioDenom == 0 {
		return Money{}, fmt.Errorf("%w: %s to %s", apperrors.ErrConversionUnavailable, m.Commodity.Mnemonic, target.Mnemonic)
	}
	if ratioDenom == 0 {
		return Money{}, fmt.Errorf("%w: price ratio denominator is zero", apperrors.ErrValidation)
	}
	rat := new(big.Rat).Mul(big.NewRat(m.Num, m.Denom), big.NewRat(ratioNum, ratioDenom))
	scale := target.FractionDigits()
	rounded := decimal.NewFromBigRat(rat, scale+2).RoundBank(scale)
	return MoneyFromDecimal(rounded, target)
}

// reduceBig normalizes an exact big rational back to int64 components,
// reducing by the gcd first.
func reduceBig(num, denom *big.Int, commodity Commodity) (Money, error) {
	if denom.Sign() < 0 {
		num.Neg(num)
		denom.Neg(denom)
	}
	gcd := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), denom)
	if gcd.Sign() > 0 {
		num.Quo(num, gcd)
		denom.Quo(denom, gcd)
	}
	if !num.IsInt64() || !denom.IsInt64() {
		return Money{}, fmt.Errorf("%w: amount overflows 64-bit rational", apperrors.ErrValidation)
	}
	return Money{Num: num.Int64(), Denom: denom.Int64(), Commodity: commodity}, nil
}
