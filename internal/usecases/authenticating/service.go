package authenticating

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/commerce-insights-api/internal/config"
	"github.com/vfg2006/commerce-insights-api/internal/domain"
)

type Authenticator interface {
	Login(username, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg config.Auth
}

func NewService(cfg config.Auth) Authenticator {
	return &Service{cfg: cfg}
}

// Login valida as credenciais do operador e emite um token JWT com
// validade de 24 horas.
func (s *Service) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingRequiredData
	}

	if username != s.cfg.OperatorUser {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.OperatorPasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := domain.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
