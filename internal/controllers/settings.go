package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piggybank/backend/internal/httputil"
	"github.com/piggybank/backend/internal/models"
	"github.com/shopspring/decimal"
)

// RegisterSettingsRoutes registers the routes for the allocation
// settings with the RouterGroup that is passed.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettings)
	r.GET("", GetSettings)
	r.PUT("", SetSettings)
}

// SettingsEditable are the fields a guardian can change. The settings
// are always replaced wholesale, there is no partial update.
type SettingsEditable struct {
	CharityPercentage    decimal.Decimal `json:"charityPercentage"`
	SpendPercentage      decimal.Decimal `json:"spendPercentage"`
	SavingsPercentage    decimal.Decimal `json:"savingsPercentage"`
	InvestmentPercentage decimal.Decimal `json:"investmentPercentage"`

	SavingsMonthlyWithdrawalLimit    int `json:"savingsMonthlyWithdrawalLimit"`
	InvestmentMonthlyWithdrawalLimit int `json:"investmentMonthlyWithdrawalLimit"`
}

func (editable SettingsEditable) model() models.Settings {
	return models.Settings{
		CharityPercentage:                editable.CharityPercentage,
		SpendPercentage:                  editable.SpendPercentage,
		SavingsPercentage:                editable.SavingsPercentage,
		InvestmentPercentage:             editable.InvestmentPercentage,
		SavingsMonthlyWithdrawalLimit:    editable.SavingsMonthlyWithdrawalLimit,
		InvestmentMonthlyWithdrawalLimit: editable.InvestmentMonthlyWithdrawalLimit,
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/api/settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// @Summary		Get settings
// @Description	Returns the guardian's allocation settings, or the default 25/25/25/25 split with limits of 2 if none have been saved
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	Response
// @Router			/api/settings [get]
func GetSettings(c *gin.Context) {
	guardian, ok := guardianID(c)
	if !ok {
		return
	}

	settings, err := models.SettingsForGuardian(guardian)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "", settings)
}

// @Summary		Set settings
// @Description	Validates and replaces the guardian's allocation settings. Past transactions keep the split they were recorded with.
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	Response
// @Failure		400	{object}	Response
// @Router			/api/settings [put]
func SetSettings(c *gin.Context) {
	guardian, ok := guardianID(c)
	if !ok {
		return
	}

	var data SettingsEditable
	if err := httputil.BindData(c, &data); err != nil {
		respondError(c, err)
		return
	}

	settings, err := models.ReplaceSettings(guardian, data.model())
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Settings saved successfully", settings)
}
