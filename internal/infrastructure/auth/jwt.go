package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lumen/internal/shared/authorization"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims carried in both token types. Role is advisory: it lets middleware
// short-circuit obviously non-admin requests, but the authoritative admin
// verdict always comes from the role store via the verify flow.
type Claims struct {
	UserID    uint                   `json:"user_id"`
	Role      authorization.UserRole `json:"role"`
	TokenType TokenType              `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
	refreshExpDays   int
}

func NewJWTService(secret string, accessExpMinutes, refreshExpDays int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		refreshExpDays:   refreshExpDays,
	}
}

func (s *JWTService) sign(userID uint, role authorization.UserRole, tokenType TokenType, now time.Time, exp time.Time) (string, error) {
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *JWTService) Generate(userID uint, role authorization.UserRole) (*TokenPair, error) {
	now := time.Now().UTC()

	access, err := s.sign(userID, role, TokenTypeAccess, now,
		now.Add(time.Duration(s.accessExpMinutes)*time.Minute))
	if err != nil {
		return nil, err
	}

	refresh, err := s.sign(userID, role, TokenTypeRefresh, now,
		now.Add(time.Duration(s.refreshExpDays)*24*time.Hour))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessExpMinutes * 60),
	}, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// Refresh exchanges a valid refresh token for a new access+refresh pair
// (refresh token rotation).
func (s *JWTService) Refresh(refreshTokenString string) (*TokenPair, error) {
	claims, err := s.Verify(refreshTokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, fmt.Errorf("token is not a refresh token")
	}
	return s.Generate(claims.UserID, claims.Role)
}
