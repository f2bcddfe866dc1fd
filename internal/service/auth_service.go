package service

import (
	"errors"
	"strings"
	"time"

	"go-farm-store/internal/model"
	"go-farm-store/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAuthDisabled       = errors.New("admin authentication is disabled")
)

type AuthService interface {
	// Enabled reports whether admin routes require a token.
	Enabled() bool
	Login(email, password string) (*model.LoginResponse, error)
	ValidateToken(token string) (*jwt.Claims, error)
}

type authService struct {
	admin   *model.Admin
	enabled bool
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

// NewAuthService hashes password for the configured admin. With enabled
// false, admin routes stay open.
func NewAuthService(enabled bool, email, password, secret string, ttl time.Duration) (AuthService, error) {
	s := &authService{
		enabled: enabled,
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
	}
	if !enabled {
		return s, nil
	}
	admin := &model.Admin{Email: strings.ToLower(email)}
	if err := admin.SetPassword(password); err != nil {
		return nil, err
	}
	s.admin = admin
	return s, nil
}

func (s *authService) Enabled() bool {
	return s.enabled
}

func (s *authService) Login(email, password string) (*model.LoginResponse, error) {
	if !s.enabled {
		return nil, ErrAuthDisabled
	}
	if strings.ToLower(email) != s.admin.Email || !s.admin.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	token, expiresAt, err := jwt.GenerateToken(s.secret, s.admin.Email, s.now(), s.ttl)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, Email: s.admin.Email, ExpiresAt: expiresAt}, nil
}

func (s *authService) ValidateToken(token string) (*jwt.Claims, error) {
	return jwt.ValidateToken(s.secret, token)
}
