package jwtsigner

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload shared by access and refresh tokens. Access tokens
// carry Email, refresh tokens carry Timestamp (issue time in milliseconds).
type Claims struct {
	Email     string `json:"email,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 tokens bound to one issuer and audience.
type Signer struct {
	secret   []byte
	Issuer   string
	Audience string
}

func New(secret, issuer, audience string) *Signer {
	return &Signer{secret: []byte(secret), Issuer: issuer, Audience: audience}
}

// Sign issues a token for sub valid for ttl from now. Registered claims in
// c are overwritten.
func (s *Signer) Sign(sub string, ttl time.Duration, now time.Time, c Claims) (string, error) {
	c.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    s.Issuer,
		Subject:   sub,
		Audience:  jwt.ClaimStrings{s.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

// Verify checks signature, expiry, issuer and audience.
func (s *Signer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.Issuer),
		jwt.WithAudience(s.Audience),
		jwt.WithExpirationRequired(),
	)
	tok, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// Reason renders a verification error the way it is reported to API clients.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, jwt.ErrTokenExpired):
		return "jwt expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "jwt not active"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "jwt malformed"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return "invalid signature"
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return "jwt audience invalid"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "jwt issuer invalid"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "jwt claim missing"
	default:
		return "invalid token"
	}
}
