package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/piggybank/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// kidMutexes serializes balance-affecting writes per kid so that the
// check-then-append sequence of a withdrawal can never interleave with
// another write for the same kid. Writes for different kids proceed in
// parallel.
var kidMutexes sync.Map

func lockKid(kidID uuid.UUID) func() {
	value, _ := kidMutexes.LoadOrStore(kidID, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()
	return mutex.Unlock
}

// RecordDeposit splits the amount according to the guardian's settings
// and appends a DEPOSIT transaction for the kid.
func RecordDeposit(guardianID, kidID uuid.UUID, amount decimal.Decimal, description string) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, ErrInvalidAmount
	}

	unlock := lockKid(kidID)
	defer unlock()

	var transaction Transaction
	err := DB.Transaction(func(tx *gorm.DB) error {
		var kid Kid
		err := tx.First(&kid, "id = ? AND guardian_id = ?", kidID, guardianID).Error
		if err != nil {
			return err
		}

		settings, err := settingsForGuardian(tx, guardianID)
		if err != nil {
			return err
		}

		split, err := settings.Split(amount)
		if err != nil {
			return err
		}

		transaction = Transaction{
			GuardianID:           guardianID,
			KidID:                kid.ID,
			Type:                 TypeDeposit,
			TotalAmount:          amount.Round(2),
			CharityAmount:        split.Charity,
			SpendAmount:          split.Spend,
			SavingsAmount:        split.Savings,
			InvestmentAmount:     split.Investment,
			CharityPercentage:    settings.CharityPercentage,
			SpendPercentage:      settings.SpendPercentage,
			SavingsPercentage:    settings.SavingsPercentage,
			InvestmentPercentage: settings.InvestmentPercentage,
			Description:          description,
		}

		return tx.Create(&transaction).Error
	})
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

// RecordWithdrawal appends a WITHDRAWAL transaction debiting a single
// component.
//
// The balance check, the monthly limit check and the append run inside
// one database transaction under the kid's mutex: two racing
// withdrawals for the same kid can never both pass the checks and then
// both commit. The request either commits or fails with a typed error,
// the ledger is never left partially updated.
func RecordWithdrawal(guardianID, kidID uuid.UUID, component Component, amount decimal.Decimal, description string) (Transaction, error) {
	if !component.Valid() {
		return Transaction{}, ErrComponentInvalid
	}

	if !amount.IsPositive() {
		return Transaction{}, ErrInvalidAmount
	}
	amount = amount.Round(2)

	unlock := lockKid(kidID)
	defer unlock()

	var transaction Transaction
	err := DB.Transaction(func(tx *gorm.DB) error {
		var kid Kid
		err := tx.First(&kid, "id = ? AND guardian_id = ?", kidID, guardianID).Error
		if err != nil {
			return err
		}

		balance, err := componentBalance(tx, kid.ID, component)
		if err != nil {
			return err
		}

		if amount.GreaterThan(balance) {
			return ErrInsufficientFunds
		}

		if component.Limited() {
			settings, err := settingsForGuardian(tx, guardianID)
			if err != nil {
				return err
			}

			count, err := withdrawalsInMonth(tx, kid.ID, component, types.MonthOf(time.Now()))
			if err != nil {
				return err
			}

			if count >= int64(settings.MonthlyWithdrawalLimit(component)) {
				return ErrMonthlyLimitExceeded
			}
		}

		transaction = Transaction{
			GuardianID:          guardianID,
			KidID:               kid.ID,
			Type:                TypeWithdrawal,
			TotalAmount:         amount,
			WithdrawalComponent: component,
			Description:         description,
		}

		return tx.Create(&transaction).Error
	})
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

// withdrawalsInMonth counts the committed withdrawals from a component
// for a kid within a calendar month.
func withdrawalsInMonth(tx *gorm.DB, kidID uuid.UUID, component Component, month types.Month) (int64, error) {
	var count int64

	err := tx.Model(&Transaction{}).
		Where("kid_id = ? AND type = ? AND withdrawal_component = ?", kidID, TypeWithdrawal, component).
		Where("date >= ? AND date < ?", month.Start(), month.AddDate(0, 1).Start()).
		Count(&count).Error

	return count, err
}
