package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/datatrail-io/datatrail/internal/models"
	"github.com/datatrail-io/datatrail/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login fails; the cause (unknown
// user vs. wrong password) is deliberately not distinguished.
var ErrInvalidCredentials = errors.New("invalid username or password")

const tokenTTL = 24 * time.Hour

// RegisterUser creates an account with a bcrypt-hashed password.
func RegisterUser(ctx context.Context, st store.Store, username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return st.Users().Create(ctx, &models.User{
		Username: username,
		Password: string(hash),
	})
}

// Authenticate checks credentials and returns a signed session token.
func Authenticate(ctx context.Context, st store.Store, secret, username, password string) (string, error) {
	user, err := st.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// ValidateToken verifies a session token and returns the subject username.
func ValidateToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token carries no subject")
	}
	return claims.Subject, nil
}

// BootstrapDemoUser ensures the configured demo account exists. Process-wide
// state like this is constructed explicitly at startup, never as a package
// singleton.
func BootstrapDemoUser(ctx context.Context, st store.Store, username, password string) error {
	if username == "" {
		return nil
	}

	_, err := st.Users().GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if _, err := RegisterUser(ctx, st, username, password); err != nil {
		return fmt.Errorf("bootstrap demo user: %w", err)
	}
	log.Printf("Created demo user: %s", username)
	return nil
}
