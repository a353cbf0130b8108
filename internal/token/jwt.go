package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Maron09/Product-Store/internal/entity"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carried by both access and refresh tokens. TokenType tells the
// two apart so a refresh token cannot be used on protected endpoints.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string      `json:"user_id"`
	Role      entity.Role `json:"role"`
	TokenType string      `json:"token_type"`
}

// Pair is what Login hands back to the client.
type Pair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (m *Manager) GeneratePair(userID string, role entity.Role) (*Pair, error) {
	access, err := m.sign(userID, role, TypeAccess, m.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := m.sign(userID, role, TypeRefresh, m.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *Manager) sign(userID string, role entity.Role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse validates the signature and expiry and checks the token is of the
// expected type.
func (m *Manager) Parse(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.TokenType != expectedType {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
