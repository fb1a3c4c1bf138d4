package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType describes the effect a transaction has on a kid's
// balance.
type TransactionType string

const (
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
)

// Transaction is one entry of the append-only ledger.
//
// A DEPOSIT carries the four component sub-amounts, which always sum
// exactly to the total amount, plus a snapshot of the percentages the
// split was computed with. A WITHDRAWAL debits exactly one component.
//
// Ledger entries are immutable: there is no update or delete path for
// transactions, balances are always derived from the full history.
type Transaction struct {
	DefaultModel
	GuardianID uuid.UUID       `json:"-"`
	Guardian   Guardian        `json:"-"`
	KidID      uuid.UUID       `json:"kidId"`
	Kid        Kid             `json:"-"`
	Type       TransactionType `json:"transactionType"`

	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:DECIMAL(20,8)"`

	// Deposit split. Zero for withdrawals.
	CharityAmount    decimal.Decimal `json:"charityAmount" gorm:"type:DECIMAL(20,8)"`
	SpendAmount      decimal.Decimal `json:"spendAmount" gorm:"type:DECIMAL(20,8)"`
	SavingsAmount    decimal.Decimal `json:"savingsAmount" gorm:"type:DECIMAL(20,8)"`
	InvestmentAmount decimal.Decimal `json:"investmentAmount" gorm:"type:DECIMAL(20,8)"`

	// Percentages the deposit was split with, kept so that later
	// settings changes do not rewrite history.
	CharityPercentage    decimal.Decimal `json:"charityPercentage" gorm:"type:DECIMAL(5,2)"`
	SpendPercentage      decimal.Decimal `json:"spendPercentage" gorm:"type:DECIMAL(5,2)"`
	SavingsPercentage    decimal.Decimal `json:"savingsPercentage" gorm:"type:DECIMAL(5,2)"`
	InvestmentPercentage decimal.Decimal `json:"investmentPercentage" gorm:"type:DECIMAL(5,2)"`

	// The component a withdrawal debits. Empty for deposits.
	WithdrawalComponent Component `json:"withdrawalComponent,omitempty"`

	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"transactionDate"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(_ *gorm.DB) (err error) {
	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave sets the timezone for the Date for UTC.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Description = strings.TrimSpace(t.Description)

	return nil
}
