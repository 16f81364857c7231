// Package token implements the stateless email-verification token codec.
//
// Tokens are signed JWTs (HS256) carrying the account ID, a purpose scope and
// the issuance time. They are never persisted; freshness is determined solely
// by the issuance age against a maximum age at validation time. There is no
// revocation list, so rotating the secret invalidates every outstanding token.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// purposeEmailVerification scopes tokens to the email-verification flow.
// A token minted for any other purpose never validates here, even if it is
// otherwise well-formed and freshly signed with the same secret.
const purposeEmailVerification = "email-verification"

// ErrInvalid is returned for every unusable token: malformed input, bad
// signature, wrong purpose, missing claims or expired age. Collapsing the
// failure modes is deliberate; callers only need to know the link failed.
var ErrInvalid = errors.New("invalid verification token")

// Codec mints and validates verification tokens. It holds no state beyond
// its configuration and is safe for concurrent use.
type Codec struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time // injectable for tests
}

// NewCodec creates a new Codec with the given signing secret and the default
// maximum token age. The same secret must be used for issuance and
// validation.
func NewCodec(secret string, maxAge time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Issue creates a signed, URL-safe verification token for the given account.
// No existence check is performed; that is the caller's responsibility.
func (c *Codec) Issue(accountID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub":     accountID,
		"purpose": purposeEmailVerification,
		"iat":     c.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign verification token: %w", err)
	}

	return signed, nil
}

// Validate checks a token against the codec's default maximum age and returns
// the embedded account ID.
func (c *Codec) Validate(tokenStr string) (uint, error) {
	return c.ValidateWithMaxAge(tokenStr, c.maxAge)
}

// ValidateWithMaxAge checks the token signature, purpose scope and issuance
// age, in that order, and returns the embedded account ID. Every failure mode
// yields ErrInvalid; no partial information is leaked.
func (c *Codec) ValidateWithMaxAge(tokenStr string, maxAge time.Duration) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalid
	}

	if purpose, _ := claims["purpose"].(string); purpose != purposeEmailVerification {
		return 0, ErrInvalid
	}

	iat, ok := claims["iat"].(float64) // JWT numbers are decoded as float64
	if !ok {
		return 0, ErrInvalid
	}
	issuedAt := time.Unix(int64(iat), 0)
	if c.now().Sub(issuedAt) > maxAge {
		return 0, ErrInvalid
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub < 1 {
		return 0, ErrInvalid
	}

	return uint(sub), nil
}
