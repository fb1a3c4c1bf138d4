// Package auth issues and verifies the JWTs guardians authenticate
// with.
package auth

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/piggybank/backend/internal/models"
	"github.com/rs/zerolog/log"
)

const defaultTokenExpiry = 24 * time.Hour

var (
	ErrMissingToken = errors.New("the Authorization header must contain a Bearer token")
	ErrInvalidToken = errors.New("the token is invalid or has expired")
)

// ContextGuardianID is the gin context key the middleware stores the
// authenticated guardian's ID under.
const ContextGuardianID = "guardianID"

var (
	jwtKeyOnce sync.Once
	jwtKey     []byte
)

// key returns the JWT signing key from the JWT_SECRET environment
// variable. An explicit secret is required outside of debug mode.
func key() []byte {
	jwtKeyOnce.Do(func() {
		secret, ok := os.LookupEnv("JWT_SECRET")
		if !ok {
			if !gin.IsDebugging() {
				log.Fatal().Msg("JWT_SECRET must be set")
			}

			log.Warn().Msg("JWT_SECRET is not set, using an insecure development key")
			secret = "insecure-development-key"
		}

		jwtKey = []byte(secret)
	})

	return jwtKey
}

// Claims are the claims carried by a guardian token.
type Claims struct {
	GuardianID  uuid.UUID `json:"guardianId"`
	PhoneNumber string    `json:"phoneNumber"`
	jwt.RegisteredClaims
}

// tokenExpiry reads the token lifetime from JWT_EXPIRES_IN, falling
// back to 24h.
func tokenExpiry() time.Duration {
	value, ok := os.LookupEnv("JWT_EXPIRES_IN")
	if !ok {
		return defaultTokenExpiry
	}

	expiry, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Str("JWT_EXPIRES_IN", value).Msg("invalid token expiry, using 24h")
		return defaultTokenExpiry
	}

	return expiry
}

// GenerateToken signs a token for the guardian.
func GenerateToken(guardian models.Guardian) (string, error) {
	now := time.Now()

	claims := &Claims{
		GuardianID:  guardian.ID,
		PhoneNumber: guardian.PhoneNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenExpiry())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "piggybank-backend",
			Subject:   guardian.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key())
}

// parseToken verifies the signature and standard claims of a token.
func parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return key(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Middleware verifies the Bearer token and stores the guardian ID in
// the gin context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		parts := strings.SplitN(header, " ", 2)
		if header == "" || len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, ErrMissingToken)
			return
		}

		claims, err := parseToken(parts[1])
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(ContextGuardianID, claims.GuardianID)
		c.Next()
	}
}

// GuardianID returns the authenticated guardian's ID from the gin
// context.
func GuardianID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextGuardianID)
	if !ok {
		return uuid.Nil, false
	}

	id, ok := value.(uuid.UUID)
	return id, ok
}

func abortUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": err.Error(),
	})
}
