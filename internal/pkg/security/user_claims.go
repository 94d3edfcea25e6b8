package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "sabzee-market"
	JWTExpirationTime        = time.Hour * 24 * 30
)

// UserClaims carries the authenticated identity inside the token.
type UserClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
