package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// Settings validation
	ErrPercentagesOutOfRange   = errors.New("all percentages must be between 0 and 100")
	ErrPercentagesDontSumTo100 = errors.New("the percentages must sum to 100")
	ErrLimitOutOfRange         = errors.New("monthly withdrawal limits must be between 0 and 10")

	// Ledger
	ErrInvalidAmount        = errors.New("the amount must be positive")
	ErrComponentInvalid     = errors.New("the component must be one of CHARITY, SPEND, SAVINGS, INVESTMENT")
	ErrInsufficientFunds    = errors.New("the withdrawal amount exceeds the available balance in this component")
	ErrMonthlyLimitExceeded = errors.New("the monthly withdrawal limit for this component has been reached")

	// Guardians and kids
	ErrPhoneNumberInUse   = errors.New("an account with this phone number already exists")
	ErrInvalidCredentials = errors.New("the phone number or PIN is incorrect")
	ErrKidHasTransactions = errors.New("a kid with recorded transactions cannot be deleted")
)
