// server/internal/auth/auth.go
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cmms-api-server/internal/models"
)

// JWTClaims defines the payload for the JWT. It replaces the source
// system's process-wide session globals: identity travels with the request.
type JWTClaims struct {
	UserID string `json:"userID"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var JwtSecret = []byte("CHANGE_ME_IN_CONFIG")

var tokenTTL = 24 * time.Hour

// Configure sets the signing secret and token lifetime from config. Called
// once at startup, before the router starts serving.
func Configure(secret, expiration string) {
	if secret != "" {
		JwtSecret = []byte(secret)
	}
	if d, err := time.ParseDuration(expiration); err == nil && d > 0 {
		tokenTTL = d
	}
}

// GenerateJWT issues a signed session token for the given user.
func GenerateJWT(user models.User) (string, error) {
	claims := &JWTClaims{
		UserID: user.ID.Hex(),
		Nombre: user.Nombre,
		Email:  user.Email,
		Role:   user.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtSecret)
}

// ParseToken validates a session token and returns its claims.
func ParseToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
