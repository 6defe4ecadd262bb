package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"aileana/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// refreshSecret returns the refresh signing key. A separate
// REFRESH_SECRET keeps access tokens out of the refresh endpoint; it
// falls back to JWT_SECRET when unset.
func refreshSecret() string {
	if secret := os.Getenv("REFRESH_SECRET"); secret != "" {
		return secret
	}
	return os.Getenv("JWT_SECRET")
}

func signToken(userClaims *models.UserClaims, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "aileana-api",
			Subject:   strconv.FormatUint(uint64(userClaims.UserID), 10),
		},
		UserID: userClaims.UserID,
		Email:  userClaims.Email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseWithSecret(tokenStr, secret string) (*jwt.Token, *models.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, nil, errors.New("invalid token claims")
	}
	return token, claims, nil
}

// GenerateTokens issues an access token and a refresh token for the
// given user claims. JWT_SECRET must be set in the environment.
func GenerateTokens(claims *models.UserClaims) (accessToken string, refreshToken string, err error) {
	if os.Getenv("JWT_SECRET") == "" {
		return "", "", errors.New("JWT_SECRET not configured")
	}

	accessToken, err = signToken(claims, accessTokenTTL, os.Getenv("JWT_SECRET"))
	if err != nil {
		return "", "", err
	}

	refreshToken, err = signToken(claims, refreshTokenTTL, refreshSecret())
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ParseToken validates an access token.
func ParseToken(tokenStr string) (*jwt.Token, *models.UserClaims, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, nil, errors.New("JWT_SECRET not configured")
	}
	return parseWithSecret(tokenStr, jwtSecret)
}

// ParseRefreshToken validates a refresh token against the refresh
// signing key.
func ParseRefreshToken(tokenStr string) (*jwt.Token, *models.UserClaims, error) {
	secret := refreshSecret()
	if secret == "" {
		return nil, nil, errors.New("JWT_SECRET not configured")
	}
	return parseWithSecret(tokenStr, secret)
}
