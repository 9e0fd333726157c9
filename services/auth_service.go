package services

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogaulas/apperr"
	"blogaulas/metrics"
	"blogaulas/models"
	"blogaulas/utils"
)

var errInvalidCredentials = apperr.New(apperr.Unauthenticated, "invalid credentials")

type AuthService struct {
	users  UserStore
	tokens *utils.TokenManager
	// dummyHash is compared against when the username is unknown, so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

func NewAuthService(users UserStore, tokens *utils.TokenManager) (*AuthService, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword(secret, bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{users: users, tokens: tokens, dummyHash: hash}, nil
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return "", nil, apperr.New(apperr.Validation, "username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.Wrap(apperr.Internal, "find user for login", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		metrics.LoginFailures.Inc()
		return "", nil, errInvalidCredentials
	}

	if !user.CheckPassword(req.Password) {
		metrics.LoginFailures.Inc()
		return "", nil, errInvalidCredentials
	}

	token, err := s.tokens.GenerateJWT(user.Identity())
	if err != nil {
		return "", nil, apperr.Wrap(apperr.Internal, "generate token", err)
	}
	return token, user, nil
}
