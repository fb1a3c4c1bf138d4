package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Settings is the allocation policy of a guardian: how deposits are
// split across the four components and how often the limited components
// allow withdrawals per month.
//
// There is at most one row per guardian and it is always replaced
// wholesale. Changing the settings does not re-split past transactions,
// every transaction keeps the percentages it was recorded with.
type Settings struct {
	DefaultModel
	GuardianID uuid.UUID `json:"-" gorm:"uniqueIndex"`
	Guardian   Guardian  `json:"-"`

	CharityPercentage    decimal.Decimal `json:"charityPercentage" gorm:"type:DECIMAL(5,2)" example:"25"`
	SpendPercentage      decimal.Decimal `json:"spendPercentage" gorm:"type:DECIMAL(5,2)" example:"25"`
	SavingsPercentage    decimal.Decimal `json:"savingsPercentage" gorm:"type:DECIMAL(5,2)" example:"25"`
	InvestmentPercentage decimal.Decimal `json:"investmentPercentage" gorm:"type:DECIMAL(5,2)" example:"25"`

	SavingsMonthlyWithdrawalLimit    int `json:"savingsMonthlyWithdrawalLimit" example:"2"`
	InvestmentMonthlyWithdrawalLimit int `json:"investmentMonthlyWithdrawalLimit" example:"2"`
}

// percentageSumTolerance is the allowed deviation of the percentage sum
// from 100.
var percentageSumTolerance = decimal.NewFromFloat(0.01)

// DefaultSettings returns the policy used for guardians who never saved
// one: an even 25/25/25/25 split with two withdrawals per month for
// both Savings and Investment.
func DefaultSettings() Settings {
	even := decimal.NewFromInt(25)

	return Settings{
		CharityPercentage:                even,
		SpendPercentage:                  even,
		SavingsPercentage:                even,
		InvestmentPercentage:             even,
		SavingsMonthlyWithdrawalLimit:    2,
		InvestmentMonthlyWithdrawalLimit: 2,
	}
}

// Validate checks the policy invariants: every percentage in [0,100],
// the sum equal to 100 within the tolerance, both limits in [0,10].
func (s Settings) Validate() error {
	hundred := decimal.NewFromInt(100)

	for _, pct := range []decimal.Decimal{s.CharityPercentage, s.SpendPercentage, s.SavingsPercentage, s.InvestmentPercentage} {
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return ErrPercentagesOutOfRange
		}
	}

	sum := s.CharityPercentage.
		Add(s.SpendPercentage).
		Add(s.SavingsPercentage).
		Add(s.InvestmentPercentage)

	if sum.Sub(hundred).Abs().GreaterThan(percentageSumTolerance) {
		return ErrPercentagesDontSumTo100
	}

	for _, limit := range []int{s.SavingsMonthlyWithdrawalLimit, s.InvestmentMonthlyWithdrawalLimit} {
		if limit < 0 || limit > 10 {
			return ErrLimitOutOfRange
		}
	}

	return nil
}

// MonthlyWithdrawalLimit returns the configured limit for a limited
// component.
func (s Settings) MonthlyWithdrawalLimit(component Component) int {
	if component == ComponentSavings {
		return s.SavingsMonthlyWithdrawalLimit
	}

	return s.InvestmentMonthlyWithdrawalLimit
}

// SettingsForGuardian returns the saved settings of the guardian or
// DefaultSettings if none have been saved yet. The default is not
// persisted on read.
func SettingsForGuardian(guardianID uuid.UUID) (Settings, error) {
	return settingsForGuardian(DB, guardianID)
}

func settingsForGuardian(tx *gorm.DB, guardianID uuid.UUID) (Settings, error) {
	var settings Settings

	err := tx.First(&settings, "guardian_id = ?", guardianID).Error
	if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		settings = DefaultSettings()
		settings.GuardianID = guardianID
		return settings, nil
	}
	if err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// ReplaceSettings validates the settings and atomically replaces the
// stored policy of the guardian.
func ReplaceSettings(guardianID uuid.UUID, settings Settings) (Settings, error) {
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}

	settings.GuardianID = guardianID

	err := DB.Transaction(func(tx *gorm.DB) error {
		var existing Settings
		err := tx.First(&existing, "guardian_id = ?", guardianID).Error

		switch {
		case err == nil:
			settings.DefaultModel = existing.DefaultModel
			return tx.Model(&existing).Select(
				"CharityPercentage", "SpendPercentage", "SavingsPercentage", "InvestmentPercentage",
				"SavingsMonthlyWithdrawalLimit", "InvestmentMonthlyWithdrawalLimit",
			).Updates(&settings).Error
		case errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&settings).Error
		default:
			return err
		}
	})
	if err != nil {
		return Settings{}, err
	}

	return settings, nil
}
