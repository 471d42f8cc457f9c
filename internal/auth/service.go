// Package auth implements the administrative authority gate: a single
// configured admin logs in and receives a JWT that unlocks the mutating
// roster, period, pause, and treasury endpoints.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"stipend/pkg/config"
	"stipend/pkg/errors"
)

const UserTypeAdmin = "admin"

type Service struct {
	adminEmail   string
	passwordHash string
	jwtSecret    string
	jwtExpiry    time.Duration
	now          func() time.Time
}

func NewService(admin config.AdminConfig, jwtCfg config.JWTConfig) *Service {
	return &Service{
		adminEmail:   admin.Email,
		passwordHash: admin.PasswordHash,
		jwtSecret:    jwtCfg.Secret,
		jwtExpiry:    jwtCfg.Expiration,
		now:          time.Now,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Login verifies the configured admin credential and issues a short-lived
// token. Both failure modes return the same error to avoid leaking which
// part of the credential was wrong.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.adminEmail)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password))
	if !emailOK || passErr != nil {
		return nil, errors.ErrInvalidCredentials
	}

	expiresAt := s.now().Add(s.jwtExpiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":     s.adminEmail,
		"user_type": UserTypeAdmin,
		"iat":       s.now().Unix(),
		"exp":       expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &TokenResponse{AccessToken: signed, ExpiresAt: expiresAt}, nil
}
