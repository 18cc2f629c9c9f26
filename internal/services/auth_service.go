package services

import (
	"context"
	"crypto/subtle"

	"github.com/ArowuTest/numbers-lottery-backend/internal/models"
	"github.com/ArowuTest/numbers-lottery-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var _ AuthService = (*authService)(nil)

type authService struct {
	username     string
	passwordHash []byte
	tokens       *jwt.TokenService
	log          logrus.FieldLogger
}

// NewAuthService creates an AuthService for the single configured operator.
// passwordHash is a bcrypt hash; when empty every login fails.
func NewAuthService(username, passwordHash string, tokens *jwt.TokenService, log logrus.FieldLogger) AuthService {
	return &authService{
		username:     username,
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		log:          log,
	}
}

// Login checks the operator credentials and issues a token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if len(s.passwordHash) == 0 {
		s.log.Warn("Operator login attempted but no password hash is configured")
		return nil, ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil || !userOK {
		s.log.WithField("username", req.Username).Warn("Operator login rejected")
		return nil, ErrInvalidCredentials
	}

	token, expires, err := s.tokens.Issue(s.username, jwt.RoleOperator)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, ExpiresAt: expires}, nil
}
