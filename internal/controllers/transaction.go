package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/piggybank/backend/internal/httputil"
	"github.com/piggybank/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var (
	errTransactionTypeInvalid = errors.New("the type filter must be one of ALL, DEPOSIT, WITHDRAWAL")
	errDateRangeInvalid       = errors.New("the range filter must be one of ALL, TODAY, WEEK, MONTH")
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
//
// The ledger is append-only, so there are no update or delete routes.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/deposit", OptionsDeposit)
	r.POST("/deposit", CreateDeposit)

	r.OPTIONS("/withdraw", OptionsWithdraw)
	r.POST("/withdraw", CreateWithdrawal)

	r.OPTIONS("/kid/:kidId", OptionsKidTransactions)
	r.GET("/kid/:kidId", GetKidTransactions)
}

type DepositRequest struct {
	KidID       uuid.UUID       `json:"kidId" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type WithdrawalRequest struct {
	KidID               uuid.UUID        `json:"kidId" binding:"required"`
	Amount              decimal.Decimal  `json:"amount"`
	WithdrawalComponent models.Component `json:"withdrawalComponent" binding:"required,component"`
	Description         string           `json:"description"`
}

// TransactionQueryFilter are the filters the transaction history
// supports, matching the filter taxonomy of the mobile client.
type TransactionQueryFilter struct {
	Type      string    `form:"type"`                                            // ALL, DEPOSIT or WITHDRAWAL
	Range     string    `form:"range"`                                           // ALL, TODAY, WEEK or MONTH
	FromDate  time.Time `form:"fromDate" time_format:"2006-01-02" time_utc:"1"`  // Transactions at and after this date
	UntilDate time.Time `form:"untilDate" time_format:"2006-01-02" time_utc:"1"` // Transactions before and at this date, inclusive of the whole day
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/api/transactions/deposit [options]
func OptionsDeposit(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/api/transactions/withdraw [options]
func OptionsWithdraw(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/api/transactions/kid/{kidId} [options]
func OptionsKidTransactions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Deposit
// @Description	Splits the amount across the four components according to the guardian's settings and appends a DEPOSIT transaction
// @Tags			Transactions
// @Produce		json
// @Success		201	{object}	Response
// @Failure		400	{object}	Response
// @Failure		404	{object}	Response
// @Router			/api/transactions/deposit [post]
func CreateDeposit(c *gin.Context) {
	guardian, ok := guardianID(c)
	if !ok {
		return
	}

	var request DepositRequest
	if err := httputil.BindData(c, &request); err != nil {
		respondError(c, err)
		return
	}

	transaction, err := models.RecordDeposit(guardian, request.KidID, request.Amount, request.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, "Deposit processed successfully", transaction)
}

// @Summary		Withdraw
// @Description	Debits a single component. Fails if the amount exceeds the component balance or, for Savings and Investment, if the monthly withdrawal limit is reached.
// @Tags			Transactions
// @Produce		json
// @Success		201	{object}	Response
// @Failure		400	{object}	Response
// @Failure		404	{object}	Response
// @Router			/api/transactions/withdraw [post]
func CreateWithdrawal(c *gin.Context) {
	guardian, ok := guardianID(c)
	if !ok {
		return
	}

	var request WithdrawalRequest
	if err := httputil.BindData(c, &request); err != nil {
		respondError(c, err)
		return
	}

	transaction, err := models.RecordWithdrawal(guardian, request.KidID, request.WithdrawalComponent, request.Amount, request.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, "Withdrawal processed successfully", transaction)
}

// @Summary		Get transactions
// @Description	Returns the kid's transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	Response
// @Failure		400	{object}	Response
// @Failure		404	{object}	Response
// @Router			/api/transactions/kid/{kidId} [get]
// @Param			type		query	string	false	"Filter by transaction type: ALL, DEPOSIT, WITHDRAWAL"
// @Param			range		query	string	false	"Relative date range: ALL, TODAY, WEEK, MONTH"
// @Param			fromDate	query	string	false	"Transactions at and after this date (YYYY-MM-DD)"
// @Param			untilDate	query	string	false	"Transactions before and at this date (YYYY-MM-DD), inclusive of the whole day"
func GetKidTransactions(c *gin.Context) {
	guardian, ok := guardianID(c)
	if !ok {
		return
	}

	kidID, err := parseKidID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	kid, err := models.KidOfGuardian(kidID, guardian)
	if err != nil {
		respondError(c, err)
		return
	}

	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		respondError(c, httputil.ErrInvalidBody)
		return
	}

	q := models.DB.
		Where("kid_id = ?", kid.ID).
		Order("date DESC, created_at DESC")

	if filter.Type != "" && filter.Type != "ALL" {
		if !slices.Contains([]string{string(models.TypeDeposit), string(models.TypeWithdrawal)}, filter.Type) {
			respondError(c, errTransactionTypeInvalid)
			return
		}

		q = q.Where("type = ?", filter.Type)
	}

	if filter.Range != "" && filter.Range != "ALL" {
		from, err := rangeStart(filter.Range, time.Now().In(time.UTC))
		if err != nil {
			respondError(c, err)
			return
		}

		q = q.Where("date >= ?", from)
	}

	if !filter.FromDate.IsZero() {
		from := time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("date >= ?", from)
	}

	if !filter.UntilDate.IsZero() {
		// Inclusive of the whole end day
		until := time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
		q = q.Where("date < ?", until)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "", transactions)
}

// rangeStart translates the client's relative date ranges into a start
// instant.
func rangeStart(name string, now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch name {
	case "TODAY":
		return today, nil
	case "WEEK":
		return today.AddDate(0, 0, -7), nil
	case "MONTH":
		return today.AddDate(0, -1, 0), nil
	default:
		return time.Time{}, errDateRangeInvalid
	}
}
