// Package session implements the signed-cookie session lifecycle: a codec for
// the tamper-evident cookie payload, an optional server-side store keyed by
// session id, and a manager that picks between the two at startup.
package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie set for this application.
const CookieName = "villicus_session"

// Payload is the decoded session cookie: either the Discord access token
// itself (direct variant) or a session id pointing into the server-side store
// (indirect variant).
type Payload struct {
	AccessToken string `json:"access_token,omitempty"`
	SID         string `json:"sid,omitempty"`
}

type sessionClaims struct {
	AccessToken string `json:"access_token,omitempty"`
	SID         string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session cookie payloads with an HMAC keyed by the
// process-wide session secret.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode signs the payload into an opaque cookie value.
func (c *Codec) Encode(p Payload) (string, error) {
	claims := sessionClaims{AccessToken: p.AccessToken, SID: p.SID}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies and parses a cookie value. It fails closed: any signature
// or parse failure returns nil, and callers must treat nil exactly like a
// missing cookie.
func (c *Codec) Decode(value string) *Payload {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil
	}
	return &Payload{AccessToken: claims.AccessToken, SID: claims.SID}
}
