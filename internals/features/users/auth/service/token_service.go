package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"dugsiku_backend/internals/configs"
	"dugsiku_backend/internals/features/users/auth/model"
)

const (
	AccessTokenTTL  = 2 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// GenerateTokenPair issues the access/refresh JWTs for a user.
func GenerateTokenPair(u *model.UserModel) (access string, refresh string, err error) {
	access, err = signToken(u, configs.JWTSecret, AccessTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}
	refresh, err = signToken(u, configs.JWTRefreshSecret, RefreshTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return access, refresh, nil
}

func signToken(u *model.UserModel, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt secret not configured")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   u.ID.String(),
		"user_name": u.UserName,
		"role":      u.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	if u.SchoolID != nil {
		claims["school_id"] = u.SchoolID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseRefreshToken validates a refresh token and returns its claims.
func ParseRefreshToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
