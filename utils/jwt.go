package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type SignedDetails struct {
	Username string `json:"username"`
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

// Tokens issues and validates HS256 tokens for logged-in accounts.
type Tokens struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokens(secret string, accessTTL, refreshTTL time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (t *Tokens) GenerateTokens(username, userType string) (string, string, error) {
	now := time.Now()
	accessClaims := &SignedDetails{
		Username: username,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(t.secret)
	if err != nil {
		return "", "", err
	}

	refreshClaims := &SignedDetails{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.refreshTTL)),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(t.secret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (t *Tokens) ValidateToken(tokenString string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SignedDetails{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// ValidateRefreshToken returns the username of a refresh token. Access tokens
// carry a user type and are rejected here.
func (t *Tokens) ValidateRefreshToken(tokenString string) (string, error) {
	claims, err := t.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	if claims.UserType != "" || claims.Username == "" {
		return "", errors.New("not a refresh token")
	}
	return claims.Username, nil
}
