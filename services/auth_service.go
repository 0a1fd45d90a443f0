package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const boardTokenTTL = 14 * time.Hour // covers even the longest club night

// AuthService guards the board with a shared club access code. There are
// no user accounts; anyone with the code gets a board token.
type AuthService interface {
	Login(ctx context.Context, accessCode string) (string, error)
}

type authService struct {
	accessCodeHash []byte // bcrypt
	jwtSecret      []byte
}

func NewAuthService(accessCodeHash, jwtSecret string) AuthService {
	return &authService{
		accessCodeHash: []byte(accessCodeHash),
		jwtSecret:      []byte(jwtSecret),
	}
}

func (s *authService) Login(_ context.Context, accessCode string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.accessCodeHash, []byte(accessCode)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidAccessCode
		}
		return "", fmt.Errorf("failed to compare access code hash: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role": "board",
		"iat":  now.Unix(),
		"exp":  now.Add(boardTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign board token: %w", err)
	}
	return token, nil
}
