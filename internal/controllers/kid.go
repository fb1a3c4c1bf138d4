package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piggybank/backend/internal/httputil"
	"github.com/piggybank/backend/internal/models"
)

// RegisterKidRoutes registers the routes for kids with the RouterGroup
// that is passed.
func RegisterKidRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsKidList)
		r.GET("", GetKids)
		r.POST("", CreateKid)
	}

	// Kid with ID
	{
		r.OPTIONS("/:kidId", OptionsKidDetail)
		r.GET("/:kidId", GetKid)
		r.PATCH("/:kidId", UpdateKid)
		r.DELETE("/:kidId", DeleteKid)
	}
}

type KidCreate struct {
	Name string `json:"name" binding:"required"`
	Age  int    `json:"age" binding:"gte=0,lte=18"`
}

type KidUpdate struct {
	Name *string `json:"name"`
	Age  *int    `json:"age" binding:"omitnil,gte=0,lte=18"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Kids
// @Success		204
// @Router			/api/kids [options]
func OptionsKidList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Kids
// @Success		204
// @Router			/api/kids/{kidId} [options]
func OptionsKidDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List kids
// @Description	Returns all kids of the authenticated guardian
// @Tags			Kids
// @Produce		json
// @Success		200	{object}	Response
// @Router			/api/kids [get]
func GetKids(c *gin.Context) {
	guardian, ok := guardianID(c)
	if !ok {
		return
	}

	var kids []models.Kid
	err := models.DB.Where("guardian_id = ?", guardian).Order("created_at ASC").Find(&kids).Error
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "", kids)
}

// @Summary		Create kid
// @Description	Creates a new kid for the authenticated guardian
// @Tags			Kids
// @Produce		json
// @Success		201	{object}	Response
// @Failure		400	{object}	Response
// @Router			/api/kids [post]
func CreateKid(c *gin.Context) {
	guardian, ok := guardianID(c)
	if !ok {
		return
	}

	var data KidCreate
	if err := httputil.BindData(c, &data); err != nil {
		respondError(c, err)
		return
	}

	kid := models.Kid{
		GuardianID: guardian,
		Name:       data.Name,
		Age:        data.Age,
	}

	if err := models.DB.Create(&kid).Error; err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, "Kid added successfully", kid)
}

// @Summary		Get kid
// @Description	Returns a specific kid of the authenticated guardian
// @Tags			Kids
// @Produce		json
// @Success		200	{object}	Response
// @Failure		404	{object}	Response
// @Router			/api/kids/{kidId} [get]
func GetKid(c *gin.Context) {
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

	respondData(c, http.StatusOK, "", kid)
}

// @Summary		Update kid
// @Description	Updates the name or age of a kid
// @Tags			Kids
// @Produce		json
// @Success		200	{object}	Response
// @Failure		404	{object}	Response
// @Router			/api/kids/{kidId} [patch]
func UpdateKid(c *gin.Context) {
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

	var data KidUpdate
	if err := httputil.BindData(c, &data); err != nil {
		respondError(c, err)
		return
	}

	updates := map[string]any{}
	if data.Name != nil {
		updates["name"] = *data.Name
	}
	if data.Age != nil {
		updates["age"] = *data.Age
	}

	if len(updates) > 0 {
		if err := models.DB.Model(&kid).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}

	respondData(c, http.StatusOK, "Kid updated successfully", kid)
}

// @Summary		Delete kid
// @Description	Soft-deletes a kid. Kids with recorded transactions cannot be deleted.
// @Tags			Kids
// @Success		200	{object}	Response
// @Failure		404	{object}	Response
// @Failure		409	{object}	Response
// @Router			/api/kids/{kidId} [delete]
func DeleteKid(c *gin.Context) {
	guardian, ok := guardianID(c)
	if !ok {
		return
	}

	kidID, err := parseKidID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := models.DeleteKid(kidID, guardian); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Kid deleted successfully", nil)
}
