package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"handcrafted-haven/internal/domain"
)

type claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type tokenMeta struct {
	UserID    string
	Role      domain.Role
	ExpiresAt time.Time
}

// tokenManager issues and verifies HS256 access tokens carrying sub, role and exp.
type tokenManager struct {
	secret []byte
	now    func() time.Time
}

func newTokenManager(secret string) *tokenManager {
	return &tokenManager{secret: []byte(secret), now: time.Now}
}

func (m *tokenManager) Issue(u domain.User, ttl time.Duration) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(m.secret)
}

func (m *tokenManager) Validate(token string) (tokenMeta, bool) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return tokenMeta{}, false
	}
	if c.Subject == "" || !c.Role.Valid() {
		return tokenMeta{}, false
	}
	return tokenMeta{UserID: c.Subject, Role: c.Role, ExpiresAt: c.ExpiresAt.Time}, true
}

var errEmptySecret = errors.New("jwt secret must not be empty")
