package utils

import (
	"errors"
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

type Claims struct {
	UserID string    `json:"userId"`
	Kind   TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

const (
	accessTokenLifetime  = 24 * time.Hour
	refreshTokenLifetime = 30 * 24 * time.Hour
)

// GenerateTokenPair issues an access and a refresh token for the user.
func GenerateTokenPair(userID string) (access string, refresh string, err error) {
	access, err = generateToken(userID, TokenAccess, accessTokenLifetime)
	if err != nil {
		return "", "", err
	}
	refresh, err = generateToken(userID, TokenRefresh, refreshTokenLifetime)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func generateToken(userID string, kind TokenKind, lifetime time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "diary-workout-tracker-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ValidateToken parses the token and checks it is of the expected kind.
func ValidateToken(tokenString string, kind TokenKind) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Kind != kind {
		return nil, errors.New("wrong token kind")
	}
	return claims, nil
}
