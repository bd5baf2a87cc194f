// Package token issues and validates signed identity tokens.
//
// Tokens are HS256 JWTs carrying the login as subject plus the account id.
// They expire a fixed TTL after issuance and cannot be renewed.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/weathertask/internal/platform/errors"
	"github.com/louisbranch/weathertask/internal/platform/requestctx"
)

// TTL is the lifetime of an issued token.
const TTL = 6 * time.Hour

// MinSecretLength is the smallest accepted HS256 key, in bytes.
const MinSecretLength = 32

// ErrInvalidToken is returned for every validation failure, whatever the
// underlying cause.
var ErrInvalidToken = apperrors.New(apperrors.CodeInvalidToken, "invalid token")

// claims is the wire shape of the token payload.
type claims struct {
	AccountID int64 `json:"accountId"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a process-wide secret.
type Service struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

// NewService builds a token service. now defaults to time.Now.
func NewService(secret string, now func() time.Time) (*Service, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("token secret must be at least %d bytes", MinSecretLength)
	}
	if now == nil {
		now = time.Now
	}
	s := &Service{
		secret: []byte(secret),
		now:    now,
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	return s, nil
}

// Issue returns a signed token for the account, valid for TTL.
func (s *Service) Issue(accountID int64, login string) (string, error) {
	if accountID <= 0 {
		return "", fmt.Errorf("account id is required")
	}
	if strings.TrimSpace(login) == "" {
		return "", fmt.Errorf("login is required")
	}
	issuedAt := s.now().UTC()
	payload := claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   login,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies the signature and expiry and returns the identity the
// token was issued for.
func (s *Service) Validate(tokenString string) (requestctx.Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return requestctx.Identity{}, ErrInvalidToken
	}
	var parsed claims
	_, err := s.parser.ParseWithClaims(tokenString, &parsed, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return requestctx.Identity{}, invalid(err)
	}
	identity := requestctx.Identity{AccountID: parsed.AccountID, Login: parsed.Subject}
	if !identity.Authenticated() {
		return requestctx.Identity{}, ErrInvalidToken
	}
	return identity, nil
}

// invalid collapses jwt errors into ErrInvalidToken while keeping the cause
// reachable for server-side logging.
func invalid(cause error) error {
	if cause == nil || errors.Is(cause, ErrInvalidToken) {
		return ErrInvalidToken
	}
	return apperrors.Wrap(ErrInvalidToken.Code, ErrInvalidToken.Message, cause)
}
