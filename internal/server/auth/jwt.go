// Package auth holds the credential and token core of the service: bcrypt
// password hashing and HS256 bearer tokens.
package auth

import (
	"maps"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ClaimSubject names the user a token was issued to.
	ClaimSubject = "sub"
	// ClaimExpiresAt is reserved; Issue always overwrites it.
	ClaimExpiresAt = "exp"
)

var signingMethod = jwt.SigningMethodHS256

// Clock returns the current time. Tests inject a fixed or advancing clock.
type Clock func() time.Time

func (c Clock) orDefault() Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// Issuer signs claim sets into compact HS256 tokens.
type Issuer struct {
	secret []byte
	now    Clock
}

// NewIssuer creates an Issuer. A nil clock means time.Now.
func NewIssuer(secret []byte, now Clock) *Issuer {
	return &Issuer{secret: secret, now: now.orDefault()}
}

// Issue signs claims with an expiry of now+ttl, rounded up to the next
// second when ttl is positive. The caller's map is not
// modified; a caller-supplied "exp" is replaced. Issue fails only with
// common.ErrorConfig when the secret is empty.
func (i *Issuer) Issue(claims map[string]any, ttl time.Duration) (string, error) {
	if len(i.secret) == 0 {
		return "", common.ErrorConfig
	}

	c := make(jwt.MapClaims, len(claims)+1)
	maps.Copy(c, claims)
	c[ClaimExpiresAt] = jwt.NewNumericDate(expiresAt(i.now(), ttl))

	return jwt.NewWithClaims(signingMethod, c).SignedString(i.secret)
}

// expiresAt returns now+ttl in whole seconds. A positive ttl rounds up so
// the token is never expired at issuance.
func expiresAt(now time.Time, ttl time.Duration) time.Time {
	exp := now.Add(ttl)
	whole := exp.Truncate(time.Second)
	if ttl > 0 && whole.Before(exp) {
		return whole.Add(time.Second)
	}
	return whole
}

// Validator checks signature, algorithm and expiry of tokens produced by an
// Issuer with the same secret.
type Validator struct {
	secret []byte
	parser *jwt.Parser
}

// NewValidator creates a Validator. A nil clock means time.Now.
func NewValidator(secret []byte, now Clock) *Validator {
	return &Validator{
		secret: secret,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{signingMethod.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithStrictDecoding(),
			jwt.WithTimeFunc(now.orDefault()),
		),
	}
}

// Verify returns the claims of a valid token, including "exp". A token that
// is malformed, signed with another key or algorithm, or expired (exp at or
// before now) yields common.ErrInvalidToken and nothing else.
func (v *Validator) Verify(tokenString string) (jwt.MapClaims, error) {
	if len(v.secret) == 0 {
		return nil, common.ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// SubjectFromClaims returns the "sub" claim when it is a non-empty string.
func SubjectFromClaims(claims jwt.MapClaims) (string, bool) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}
