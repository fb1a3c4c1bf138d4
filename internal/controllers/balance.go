package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piggybank/backend/internal/httputil"
	"github.com/piggybank/backend/internal/models"
)

// RegisterBalanceRoutes registers the routes for derived balances with
// the RouterGroup that is passed.
func RegisterBalanceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/kid/:kidId", OptionsKidBalances)
	r.GET("/kid/:kidId", GetKidBalances)

	r.OPTIONS("/total", OptionsGuardianBalances)
	r.GET("/total", GetGuardianBalances)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Balances
// @Success		204
// @Router			/api/balances/kid/{kidId} [options]
func OptionsKidBalances(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Balances
// @Success		204
// @Router			/api/balances/total [options]
func OptionsGuardianBalances(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Kid balances
// @Description	Returns the kid's four component balances and their total, derived from the ledger
// @Tags			Balances
// @Produce		json
// @Success		200	{object}	Response
// @Failure		404	{object}	Response
// @Router			/api/balances/kid/{kidId} [get]
func GetKidBalances(c *gin.Context) {
	guardian, ok := guardianID(c)
	if !ok {
		return
	}

	kidID, err := parseKidID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	balances, err := models.KidBalances(kidID, guardian)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "", balances)
}

// @Summary		Guardian totals
// @Description	Returns the component balances summed across all kids of the authenticated guardian
// @Tags			Balances
// @Produce		json
// @Success		200	{object}	Response
// @Router			/api/balances/total [get]
func GetGuardianBalances(c *gin.Context) {
	guardian, ok := guardianID(c)
	if !ok {
		return
	}

	balances, err := models.GuardianBalances(guardian)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "", balances)
}
