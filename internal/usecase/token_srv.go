package usecase

import (
	"errors"
	"fmt"
	"time"

	"food-delivery/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Clock is injected into the services so expiry logic is testable.
type Clock func() time.Time

func clockOrDefault(now Clock) Clock {
	if now == nil {
		return time.Now
	}
	return now
}

type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// TokenPair is handed to the client after register, login, OTP
// verification and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService signs and verifies stateless JWTs. Verification never
// touches the store.
type TokenService interface {
	IssuePair(customerID uuid.UUID) (*TokenPair, error)
	Issue(customerID uuid.UUID, kind TokenKind) (string, error)
	Verify(token string, kind TokenKind) (uuid.UUID, error)
}

type tokenClaims struct {
	CustomerID string    `json:"_id"`
	Kind       TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

type tokenService struct {
	config utils.JWTConfig
	now    Clock
}

func NewTokenService(config utils.JWTConfig, now Clock) TokenService {
	return &tokenService{
		config: config,
		now:    clockOrDefault(now),
	}
}

func (s *tokenService) secret(kind TokenKind) ([]byte, time.Duration, error) {
	switch kind {
	case AccessToken:
		return []byte(s.config.AccessSecret), s.config.AccessExpiry, nil
	case RefreshToken:
		return []byte(s.config.RefreshSecret), s.config.RefreshExpiry, nil
	default:
		return nil, 0, fmt.Errorf("unknown token kind %q", kind)
	}
}

func (s *tokenService) Issue(customerID uuid.UUID, kind TokenKind) (string, error) {
	secret, ttl, err := s.secret(kind)
	if err != nil {
		return "", err
	}

	now := s.now()
	claims := &tokenClaims{
		CustomerID: customerID.String(),
		Kind:       kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   customerID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

func (s *tokenService) IssuePair(customerID uuid.UUID) (*TokenPair, error) {
	access, err := s.Issue(customerID, AccessToken)
	if err != nil {
		return nil, err
	}

	refresh, err := s.Issue(customerID, RefreshToken)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify returns the customer id carried by a token of the given kind.
// Failures are ErrExpiredToken or ErrInvalidToken.
func (s *tokenService) Verify(token string, kind TokenKind) (uuid.UUID, error) {
	secret, _, err := s.secret(kind)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	claims := &tokenClaims{}
	_, err = jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrExpiredToken
		}
		return uuid.Nil, ErrInvalidToken
	}

	if claims.Kind != kind {
		return uuid.Nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.CustomerID)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}

	return id, nil
}
