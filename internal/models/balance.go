package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Balances holds the derived per-component balances and their total.
//
// Balances are never stored: they are always computed from the full
// transaction history, so they cannot drift from the ledger.
type Balances struct {
	Charity    decimal.Decimal `json:"charityBalance"`
	Spend      decimal.Decimal `json:"spendBalance"`
	Savings    decimal.Decimal `json:"savingsBalance"`
	Investment decimal.Decimal `json:"investmentBalance"`
	Total      decimal.Decimal `json:"totalBalance"`
}

func (b *Balances) set(component Component, amount decimal.Decimal) {
	switch component {
	case ComponentCharity:
		b.Charity = amount
	case ComponentSpend:
		b.Spend = amount
	case ComponentSavings:
		b.Savings = amount
	case ComponentInvestment:
		b.Investment = amount
	}

	b.Total = b.Charity.Add(b.Spend).Add(b.Savings).Add(b.Investment)
}

// KidBalances derives the component balances of a kid from the ledger.
// All four components are read in one database transaction so the
// result reflects a single committed ledger state.
func KidBalances(kidID, guardianID uuid.UUID) (Balances, error) {
	var balances Balances

	err := DB.Transaction(func(tx *gorm.DB) error {
		var kid Kid
		err := tx.First(&kid, "id = ? AND guardian_id = ?", kidID, guardianID).Error
		if err != nil {
			return err
		}

		for _, component := range Components() {
			balance, err := componentBalance(tx, kid.ID, component)
			if err != nil {
				return err
			}

			balances.set(component, balance)
		}

		return nil
	})
	if err != nil {
		return Balances{}, err
	}

	return balances, nil
}

// GuardianBalances sums the component balances across all kids of the
// guardian.
func GuardianBalances(guardianID uuid.UUID) (Balances, error) {
	var balances Balances

	err := DB.Transaction(func(tx *gorm.DB) error {
		for _, component := range Components() {
			deposits, err := sumAmounts(tx.Model(&Transaction{}).
				Where("guardian_id = ? AND type = ?", guardianID, TypeDeposit), component.depositColumn())
			if err != nil {
				return err
			}

			withdrawals, err := sumAmounts(tx.Model(&Transaction{}).
				Where("guardian_id = ? AND type = ? AND withdrawal_component = ?", guardianID, TypeWithdrawal, component), "total_amount")
			if err != nil {
				return err
			}

			balances.set(component, deposits.Sub(withdrawals))
		}

		return nil
	})
	if err != nil {
		return Balances{}, err
	}

	return balances, nil
}

// componentBalance derives the balance of one component for a kid:
// the sum of all deposit sub-amounts minus the sum of all withdrawals
// from that component.
func componentBalance(tx *gorm.DB, kidID uuid.UUID, component Component) (decimal.Decimal, error) {
	deposits, err := sumAmounts(tx.Model(&Transaction{}).
		Where("kid_id = ? AND type = ?", kidID, TypeDeposit), component.depositColumn())
	if err != nil {
		return decimal.Zero, err
	}

	withdrawals, err := sumAmounts(tx.Model(&Transaction{}).
		Where("kid_id = ? AND type = ? AND withdrawal_component = ?", kidID, TypeWithdrawal, component), "total_amount")
	if err != nil {
		return decimal.Zero, err
	}

	return deposits.Sub(withdrawals), nil
}

// sumAmounts sums one amount column over the transactions matching the
// query.
func sumAmounts(query *gorm.DB, column string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := query.Select("SUM(" + column + ")").Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing %s failed: %w", column, err)
	}

	return sum.Decimal, nil
}
