// Package token issues and validates signed, time-limited bearer tokens.
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ramennsama/blog-api/internal/errs"
	"github.com/ramennsama/blog-api/internal/model"
)

// minKeyLen is the minimum decoded secret length for HS256 (256 bits).
const minKeyLen = 32

// Service signs and verifies HS256 JWTs whose subject is the principal's
// email. Verification is pure computation and never blocks.
type Service struct {
	signKey   []byte
	accessTTL time.Duration
}

// NewService decodes the base64 secret and constructs a token service.
func NewService(secretB64 string, accessTTL time.Duration) (*Service, error) {
	key, err := base64.StdEncoding.DecodeString(secretB64)
	if err != nil {
		return nil, fmt.Errorf("decode jwt secret: %w", err)
	}
	if len(key) < minKeyLen {
		return nil, fmt.Errorf("jwt secret too short: %d bytes, need %d", len(key), minKeyLen)
	}
	return &Service{signKey: key, accessTTL: accessTTL}, nil
}

// Issue creates a signed token for the user with the given custom claims.
// Subject is the user's email; issued-at is now, expiry now+TTL.
func (s *Service) Issue(claims map[string]any, u *model.User) (string, error) {
	now := time.Now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["sub"] = u.Email
	mc["iat"] = jwt.NewNumericDate(now)
	mc["exp"] = jwt.NewNumericDate(now.Add(s.accessTTL))

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return tok.SignedString(s.signKey)
}

// ExtractSubject parses and signature-verifies the token and returns its
// subject. Returns errs.ErrTokenExpired past expiry, errs.ErrTokenInvalid on
// a bad signature or malformed structure.
func (s *Service) ExtractSubject(tokenStr string) (string, error) {
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.signKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errs.ErrTokenExpired
		}
		return "", errs.ErrTokenInvalid
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errs.ErrTokenInvalid
	}
	return sub, nil
}

// IsValid reports whether the token belongs to the user and is not expired.
// Signature verification happens once, inside ExtractSubject.
func (s *Service) IsValid(tokenStr string, u *model.User) bool {
	sub, err := s.ExtractSubject(tokenStr)
	return err == nil && sub == u.Email
}
