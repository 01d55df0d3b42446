package service

import (
	"context"
	"crypto/subtle"
	"time"

	"tablepos/internal/config"
	"tablepos/internal/dto"
	"tablepos/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthService checks the single configured admin account.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	cfg *config.Config
	now Clock
}

func NewAuthService(cfg *config.Config, now Clock) AuthService {
	return &authService{cfg: cfg, now: now}
}

func (s *authService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.cfg.AdminPasswordHash == "" {
		log.Warn().Msg("login attempted but ADMIN_PASSWORD_HASH is not set")
		return nil, ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.AdminUsername)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	token, err := s.generateToken(req.Username, ttl)
	if err != nil {
		return nil, err
	}
	log.Info().Str("username", req.Username).Msg("admin login")
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(ttl.Seconds()),
		Username:    req.Username,
	}, nil
}

func (s *authService) generateToken(username string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := middleware.JWTClaims{
		Username: username,
		Role:     middleware.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
