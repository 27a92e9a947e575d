package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"handcrafted-haven/internal/domain"
	userrepo "handcrafted-haven/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles registration, login and token lookup.
type Service struct {
	repo        userrepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	passwordMin int
}

// New creates a Service signing tokens with secret.
func New(repo userrepo.Repository, secret string, accessTTL time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(secret),
		accessTTL:   accessTTL,
		passwordMin: 8,
	}, nil
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// Register creates a buyer or seller account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, domain.Invalidf("email required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Invalidf("email %q is not valid", email)
	}
	role := domain.Role(strings.ToLower(strings.TrimSpace(in.Role)))
	if role == "" {
		role = domain.RoleBuyer
	}
	if !role.Valid() {
		return nil, domain.Invalidf("role must be buyer or seller")
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email[:strings.Index(email, "@")]
	}
	return s.repo.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		Role:         role,
	})
}

// Login validates credentials and returns a signed access token plus the user.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	password = strings.TrimSpace(password)
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(*u, s.accessTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, token, nil
}

// LookupByToken returns the user bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	meta, ok := s.tokens.Validate(token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.repo.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if u.Role != meta.Role {
		return nil, ErrInvalidToken
	}
	return u, nil
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

func validatePassword(p string, min int) error {
	trimmed := strings.TrimSpace(p)
	if len(trimmed) < min {
		return domain.Invalidf("password must be at least %d characters", min)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return domain.Invalidf("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
