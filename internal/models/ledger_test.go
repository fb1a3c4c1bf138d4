package models_test

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/piggybank/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRecordDeposit() {
	guardian := suite.createTestGuardian(models.Guardian{})
	kid := suite.createTestKid(models.Kid{GuardianID: guardian.ID})

	transaction, err := models.RecordDeposit(guardian.ID, kid.ID, decimal.NewFromFloat(100), "Birthday money")
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), models.TypeDeposit, transaction.Type)
	assert.True(suite.T(), transaction.TotalAmount.Equal(decimal.NewFromFloat(100)))
	assert.True(suite.T(), transaction.CharityAmount.Equal(decimal.NewFromFloat(25)))
	assert.True(suite.T(), transaction.SpendAmount.Equal(decimal.NewFromFloat(25)))
	assert.True(suite.T(), transaction.SavingsAmount.Equal(decimal.NewFromFloat(25)))
	assert.True(suite.T(), transaction.InvestmentAmount.Equal(decimal.NewFromFloat(25)))
	assert.Equal(suite.T(), "Birthday money", transaction.Description)
	assert.False(suite.T(), transaction.Date.IsZero())
}

func (suite *TestSuiteStandard) TestRecordDepositSnapshotsPercentages() {
	guardian := suite.createTestGuardian(models.Guardian{})
	kid := suite.createTestKid(models.Kid{GuardianID: guardian.ID})

	_, err := models.ReplaceSettings(guardian.ID, settingsFromInts(10, 40, 30, 20))
	assert.Nil(suite.T(), err)

	transaction, err := models.RecordDeposit(guardian.ID, kid.ID, decimal.NewFromFloat(100), "")
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), transaction.CharityAmount.Equal(decimal.NewFromFloat(10)))
	assert.True(suite.T(), transaction.SpendAmount.Equal(decimal.NewFromFloat(40)))
	assert.True(suite.T(), transaction.SavingsAmount.Equal(decimal.NewFromFloat(30)))
	assert.True(suite.T(), transaction.InvestmentAmount.Equal(decimal.NewFromFloat(20)))
	assert.True(suite.T(), transaction.SpendPercentage.Equal(decimal.NewFromInt(40)))

	// Changing the settings afterwards must not rewrite the snapshot
	_, err = models.ReplaceSettings(guardian.ID, settingsFromInts(25, 25, 25, 25))
	assert.Nil(suite.T(), err)

	var stored models.Transaction
	assert.Nil(suite.T(), models.DB.First(&stored, "id = ?", transaction.ID).Error)
	assert.True(suite.T(), stored.SpendPercentage.Equal(decimal.NewFromInt(40)))
}

func (suite *TestSuiteStandard) TestRecordDepositInvalid() {
	guardian := suite.createTestGuardian(models.Guardian{})
	kid := suite.createTestKid(models.Kid{GuardianID: guardian.ID})

	_, err := models.RecordDeposit(guardian.ID, kid.ID, decimal.Zero, "")
	assert.ErrorIs(suite.T(), err, models.ErrInvalidAmount)

	_, err = models.RecordDeposit(guardian.ID, kid.ID, decimal.NewFromFloat(-10), "")
	assert.ErrorIs(suite.T(), err, models.ErrInvalidAmount)

	// No transaction may have been written
	var count int64
	models.DB.Model(&models.Transaction{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestRecordDepositUnknownKid() {
	guardian := suite.createTestGuardian(models.Guardian{})

	_, err := models.RecordDeposit(guardian.ID, uuid.New(), decimal.NewFromFloat(10), "")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestRecordDepositOtherGuardiansKid() {
	guardian := suite.createTestGuardian(models.Guardian{})
	other := suite.createTestGuardian(models.Guardian{})
	kid := suite.createTestKid(models.Kid{GuardianID: other.ID})

	_, err := models.RecordDeposit(guardian.ID, kid.ID, decimal.NewFromFloat(10), "")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestRecordWithdrawal() {
	guardian := suite.createTestGuardian(models.Guardian{})
	kid := suite.createTestKid(models.Kid{GuardianID: guardian.ID})

	_, err := models.RecordDeposit(guardian.ID, kid.ID, decimal.NewFromFloat(100), "")
	assert.Nil(suite.T(), err)

	transaction, err := models.RecordWithdrawal(guardian.ID, kid.ID, models.ComponentSpend, decimal.NewFromFloat(10), "Toy")
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), models.TypeWithdrawal, transaction.Type)
	assert.Equal(suite.T(), models.ComponentSpend, transaction.WithdrawalComponent)
	assert.True(suite.T(), transaction.TotalAmount.Equal(decimal.NewFromFloat(10)))

	balances, err := models.KidBalances(kid.ID, guardian.ID)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), balances.Spend.Equal(decimal.NewFromFloat(15)), balances.Spend.String())
}

func (suite *TestSuiteStandard) TestRecordWithdrawalInvalid() {
	guardian := suite.createTestGuardian(models.Guardian{})
	kid := suite.createTestKid(models.Kid{GuardianID: guardian.ID})

	_, err := models.RecordWithdrawal(guardian.ID, kid.ID, "LOTTERY", decimal.NewFromFloat(10), "")
	assert.ErrorIs(suite.T(), err, models.ErrComponentInvalid)

	_, err = models.RecordWithdrawal(guardian.ID, kid.ID, models.ComponentSpend, decimal.Zero, "")
	assert.ErrorIs(suite.T(), err, models.ErrInvalidAmount)
}

func (suite *TestSuiteStandard) TestRecordWithdrawalInsufficientFunds() {
	guardian := suite.createTestGuardian(models.Guardian{})
	kid := suite.createTestKid(models.Kid{GuardianID: guardian.ID})

	_, err := models.RecordDeposit(guardian.ID, kid.ID, decimal.NewFromFloat(40), "")
	assert.Nil(suite.T(), err)

	// Each component holds 10.00
	_, err = models.RecordWithdrawal(guardian.ID, kid.ID, models.ComponentCharity, decimal.NewFromFloat(10.01), "")
	assert.ErrorIs(suite.T(), err, models.ErrInsufficientFunds)

	// The failed withdrawal must not have touched the ledger
	balances, err := models.KidBalances(kid.ID, guardian.ID)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), balances.Charity.Equal(decimal.NewFromFloat(10)))

	// Withdrawing the exact balance is fine
	_, err = models.RecordWithdrawal(guardian.ID, kid.ID, models.ComponentCharity, decimal.NewFromFloat(10), "")
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestRecordWithdrawalMonthlyLimit() {
	guardian := suite.createTestGuardian(models.Guardian{})
	kid := suite.createTestKid(models.Kid{GuardianID: guardian.ID})

	_, err := models.RecordDeposit(guardian.ID, kid.ID, decimal.NewFromFloat(100), "")
	assert.Nil(suite.T(), err)

	// The default limit allows two Savings withdrawals per month
	for i := 0; i < 2; i++ {
		_, err = models.RecordWithdrawal(guardian.ID, kid.ID, models.ComponentSavings, decimal.NewFromFloat(1), "")
		assert.Nil(suite.T(), err)
	}

	_, err = models.RecordWithdrawal(guardian.ID, kid.ID, models.ComponentSavings, decimal.NewFromFloat(1), "")
	assert.ErrorIs(suite.T(), err, models.ErrMonthlyLimitExceeded)

	// The Investment limit counts separately
	_, err = models.RecordWithdrawal(guardian.ID, kid.ID, models.ComponentInvestment, decimal.NewFromFloat(1), "")
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestRecordWithdrawalLimitResetsNextMonth() {
	guardian := suite.createTestGuardian(models.Guardian{})
	kid := suite.createTestKid(models.Kid{GuardianID: guardian.ID})

	_, err := models.RecordDeposit(guardian.ID, kid.ID, decimal.NewFromFloat(100), "")
	assert.Nil(suite.T(), err)

	// Two Savings withdrawals from last month do not count against the
	// current month
	lastMonth := time.Now().In(time.UTC).AddDate(0, -1, 0)
	for i := 0; i < 2; i++ {
		suite.createTestTransaction(models.Transaction{
			GuardianID:          guardian.ID,
			KidID:               kid.ID,
			Type:                models.TypeWithdrawal,
			TotalAmount:         decimal.NewFromFloat(1),
			WithdrawalComponent: models.ComponentSavings,
			Date:                lastMonth,
		})
	}

	_, err = models.RecordWithdrawal(guardian.ID, kid.ID, models.ComponentSavings, decimal.NewFromFloat(1), "")
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestRecordWithdrawalUnlimitedComponents() {
	guardian := suite.createTestGuardian(models.Guardian{})
	kid := suite.createTestKid(models.Kid{GuardianID: guardian.ID})

	_, err := models.RecordDeposit(guardian.ID, kid.ID, decimal.NewFromFloat(100), "")
	assert.Nil(suite.T(), err)

	// Charity and Spend withdrawals have no monthly limit
	for i := 0; i < 5; i++ {
		_, err = models.RecordWithdrawal(guardian.ID, kid.ID, models.ComponentCharity, decimal.NewFromFloat(1), "")
		assert.Nil(suite.T(), err)

		_, err = models.RecordWithdrawal(guardian.ID, kid.ID, models.ComponentSpend, decimal.NewFromFloat(1), "")
		assert.Nil(suite.T(), err)
	}
}

func (suite *TestSuiteStandard) TestRecordWithdrawalZeroLimit() {
	guardian := suite.createTestGuardian(models.Guardian{})
	kid := suite.createTestKid(models.Kid{GuardianID: guardian.ID})

	settings := settingsFromInts(25, 25, 25, 25)
	settings.SavingsMonthlyWithdrawalLimit = 0

	_, err := models.ReplaceSettings(guardian.ID, settings)
	assert.Nil(suite.T(), err)

	_, err = models.RecordDeposit(guardian.ID, kid.ID, decimal.NewFromFloat(100), "")
	assert.Nil(suite.T(), err)

	_, err = models.RecordWithdrawal(guardian.ID, kid.ID, models.ComponentSavings, decimal.NewFromFloat(1), "")
	assert.ErrorIs(suite.T(), err, models.ErrMonthlyLimitExceeded)
}

func (suite *TestSuiteStandard) TestRecordWithdrawalConcurrent() {
	guardian := suite.createTestGuardian(models.Guardian{})
	kid := suite.createTestKid(models.Kid{GuardianID: guardian.ID})

	_, err := models.RecordDeposit(guardian.ID, kid.ID, decimal.NewFromFloat(40), "")
	assert.Nil(suite.T(), err)

	// The Savings component holds 10.00. Two concurrent withdrawals of
	// the full balance race, exactly one of them can commit.
	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = models.RecordWithdrawal(guardian.ID, kid.ID, models.ComponentSavings, decimal.NewFromFloat(10), "")
		}(i)
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(suite.T(), err, models.ErrInsufficientFunds)
			failed++
		}
	}

	assert.Equal(suite.T(), 1, succeeded)
	assert.Equal(suite.T(), 1, failed)

	balances, err := models.KidBalances(kid.ID, guardian.ID)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), balances.Savings.IsZero(), balances.Savings.String())
}
