package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"takapay/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
	tokenIssuer     = "takapay-api"
)

var errSecretMissing = errors.New("JWT_SECRET not configured")

// signToken stamps the registered claims onto a copy of the user claims and
// signs it with HS256.
func signToken(claims *models.UserClaims, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	signed := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
		},
		UserID:       claims.UserID,
		Email:        claims.Email,
		Role:         claims.Role,
		Permissions:  claims.Permissions,
		TokenVersion: claims.TokenVersion,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, signed).SignedString(secret)
}

// GenerateTokens issues the access/refresh token pair for the given user
// claims, signed with JWT_SECRET from the environment.
func GenerateTokens(claims *models.UserClaims) (accessToken string, refreshToken string, err error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", "", errSecretMissing
	}

	if accessToken, err = signToken(claims, accessTokenTTL, []byte(secret)); err != nil {
		return "", "", err
	}
	if refreshToken, err = signToken(claims, refreshTokenTTL, []byte(secret)); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// ParseToken validates a token string and returns its claims. Only HMAC
// signatures are accepted.
func ParseToken(tokenStr string) (*jwt.Token, *models.UserClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, nil, errSecretMissing
	}

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
