package models

import (
	"github.com/shopspring/decimal"
)

// ComponentAmounts holds the result of splitting a deposit across the
// four components.
type ComponentAmounts struct {
	Charity    decimal.Decimal
	Spend      decimal.Decimal
	Savings    decimal.Decimal
	Investment decimal.Decimal
}

// Sum returns the sum of the four amounts.
func (a ComponentAmounts) Sum() decimal.Decimal {
	return a.Charity.Add(a.Spend).Add(a.Savings).Add(a.Investment)
}

// Amount returns the sub-amount for a single component.
func (a ComponentAmounts) Amount(component Component) decimal.Decimal {
	switch component {
	case ComponentCharity:
		return a.Charity
	case ComponentSpend:
		return a.Spend
	case ComponentSavings:
		return a.Savings
	default:
		return a.Investment
	}
}

// Split computes the per-component amounts for a deposit.
//
// Charity, Spend and Savings are rounded independently to currency
// precision. Because independent rounding can make the shares drift
// from the total, the Investment share is not computed from its
// percentage but as the remainder, so the four amounts always sum
// exactly to the deposit amount. The remainder component is fixed, the
// split is fully deterministic.
func (s Settings) Split(amount decimal.Decimal) (ComponentAmounts, error) {
	if !amount.IsPositive() {
		return ComponentAmounts{}, ErrInvalidAmount
	}

	hundred := decimal.NewFromInt(100)
	amount = amount.Round(2)

	split := ComponentAmounts{
		Charity: amount.Mul(s.CharityPercentage).Div(hundred).Round(2),
		Spend:   amount.Mul(s.SpendPercentage).Div(hundred).Round(2),
		Savings: amount.Mul(s.SavingsPercentage).Div(hundred).Round(2),
	}
	split.Investment = amount.Sub(split.Charity).Sub(split.Spend).Sub(split.Savings)

	// With a zero or tiny investment percentage, rounding the other
	// three shares up can push the remainder below zero. Take the
	// deficit out of the largest rounded share so no sub-amount is ever
	// negative and the sum stays exact.
	if split.Investment.IsNegative() {
		largest := &split.Charity
		if split.Spend.GreaterThan(*largest) {
			largest = &split.Spend
		}
		if split.Savings.GreaterThan(*largest) {
			largest = &split.Savings
		}

		*largest = largest.Add(split.Investment)
		split.Investment = decimal.Zero
	}

	return split, nil
}
