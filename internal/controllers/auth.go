package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piggybank/backend/internal/auth"
	"github.com/piggybank/backend/internal/httputil"
	"github.com/piggybank/backend/internal/models"
	"gorm.io/gorm"
)

var errPinMismatch = errors.New("the PIN and its confirmation do not match")

// RegisterAuthRoutes registers the routes for authentication with the
// RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/signup", OptionsAuth)
	r.POST("/signup", Signup)

	r.OPTIONS("/login", OptionsAuth)
	r.POST("/login", Login)
}

type SignupRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Pin         string `json:"pin" binding:"required,numeric,min=4,max=6"`
	ConfirmPin  string `json:"confirmPin" binding:"required"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Pin         string `json:"pin" binding:"required"`
}

// AuthData is returned on successful signup and login.
type AuthData struct {
	Token    string          `json:"token"`
	Guardian models.Guardian `json:"guardian"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/api/auth/signup [options]
func OptionsAuth(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Sign up
// @Description	Registers a guardian account and returns a token
// @Tags			Auth
// @Produce		json
// @Success		201	{object}	Response
// @Failure		400	{object}	Response
// @Router			/api/auth/signup [post]
func Signup(c *gin.Context) {
	var request SignupRequest
	if err := httputil.BindData(c, &request); err != nil {
		respondError(c, err)
		return
	}

	if request.Pin != request.ConfirmPin {
		respondError(c, errPinMismatch)
		return
	}

	guardian := models.Guardian{PhoneNumber: request.PhoneNumber}
	if err := guardian.SetPin(request.Pin); err != nil {
		respondError(c, models.ErrGeneral)
		return
	}

	if err := models.DB.Create(&guardian).Error; err != nil {
		respondError(c, err)
		return
	}

	token, err := auth.GenerateToken(guardian)
	if err != nil {
		respondError(c, models.ErrGeneral)
		return
	}

	respondData(c, http.StatusCreated, "Account created successfully", AuthData{
		Token:    token,
		Guardian: guardian,
	})
}

// @Summary		Log in
// @Description	Authenticates a guardian by phone number and PIN
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	Response
// @Failure		401	{object}	Response
// @Router			/api/auth/login [post]
func Login(c *gin.Context) {
	var request LoginRequest
	if err := httputil.BindData(c, &request); err != nil {
		respondError(c, err)
		return
	}

	guardian, err := models.GuardianByPhoneNumber(request.PhoneNumber)
	if err != nil {
		// Do not leak whether the phone number is registered
		if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			err = models.ErrInvalidCredentials
		}
		respondError(c, err)
		return
	}

	if !guardian.CheckPin(request.Pin) {
		respondError(c, models.ErrInvalidCredentials)
		return
	}

	token, err := auth.GenerateToken(guardian)
	if err != nil {
		respondError(c, models.ErrGeneral)
		return
	}

	respondData(c, http.StatusOK, "Login successful", AuthData{
		Token:    token,
		Guardian: guardian,
	})
}
