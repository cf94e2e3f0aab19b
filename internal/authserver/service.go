// Package authserver is a reference implementation of the remote
// authentication service the storefront client talks to. It is used for
// local development and end-to-end tests.
package authserver

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// Service implements account registration and login.
type Service struct {
	repo      ports.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
	cost      int
}

func NewService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Service{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, cost: bcrypt.DefaultCost}
}

// Register creates an account. New accounts are customers; admins are
// created with Provision.
func (s *Service) Register(ctx context.Context, signup domain.Signup) (*domain.Account, error) {
	return s.create(ctx, signup, domain.RoleCustomer)
}

// Provision creates an account with the given role. An existing account with
// the same username is left as it is.
func (s *Service) Provision(ctx context.Context, signup domain.Signup, role domain.Role) (*domain.Account, error) {
	account, err := s.create(ctx, signup, role)
	if errors.Is(err, domain.ErrUserExists) {
		return s.repo.FindByUsername(ctx, signup.Username)
	}
	return account, err
}

func (s *Service) create(ctx context.Context, signup domain.Signup, role domain.Role) (*domain.Account, error) {
	if strings.TrimSpace(signup.Username) == "" || signup.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), s.cost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Username:     signup.Username,
		Email:        signup.Email,
		Address:      signup.Address,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, account)
}

// Login verifies the credentials and issues an access token.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}

	return token, account, nil
}

func (s *Service) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":  account.Username,
		"role": string(account.Role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
