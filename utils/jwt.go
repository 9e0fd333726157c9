package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blogaulas/models"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID   uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 identity tokens. Verification is
// stateless: a role change only takes effect once older tokens expire.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) GenerateJWT(id models.Identity) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID:   id.ID,
		Username: id.Username,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) ValidateJWT(tokenString string) (*models.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))

	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.ExpiresAt == nil || !claims.Role.Valid() || claims.Username == "" {
		return nil, ErrInvalidToken
	}

	return &models.Identity{ID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}
