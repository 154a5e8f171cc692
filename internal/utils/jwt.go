package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken создаёт access-токен (HS256).
func GenerateToken(secret string, userID int, username, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(), // issued at — доп. уникальность
	}

	claims["token_type"] = "access"

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
