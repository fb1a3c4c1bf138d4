package models

import (
	"golang.org/x/exp/slices"
)

// Component is one of the four allocation buckets a kid's balance is
// split into.
type Component string

const (
	ComponentCharity    Component = "CHARITY"
	ComponentSpend      Component = "SPEND"
	ComponentSavings    Component = "SAVINGS"
	ComponentInvestment Component = "INVESTMENT"
)

// Components returns all components in allocation order.
func Components() []Component {
	return []Component{ComponentCharity, ComponentSpend, ComponentSavings, ComponentInvestment}
}

// Valid reports whether the component is one of the four known buckets.
func (c Component) Valid() bool {
	return slices.Contains(Components(), c)
}

// Limited reports whether withdrawals from the component are subject to
// a monthly limit. Charity and Spend withdrawals are unlimited.
func (c Component) Limited() bool {
	return c == ComponentSavings || c == ComponentInvestment
}

// depositColumn is the transactions column holding the deposit
// sub-amount for the component.
func (c Component) depositColumn() string {
	switch c {
	case ComponentCharity:
		return "charity_amount"
	case ComponentSpend:
		return "spend_amount"
	case ComponentSavings:
		return "savings_amount"
	default:
		return "investment_amount"
	}
}
