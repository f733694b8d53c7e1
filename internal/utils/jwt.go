package utils // package utils provides helpers for token creation and hashing

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed HS256 bearer token along with its expiry.
// The Token field contains the serialized JWT.  Access tokens are short‑lived
// and presented in the Authorization header on every protected request.  The
// payload is signed but not encrypted, so it carries identity claims only.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// IdentityClaims is the claim set embedded in every access token: the staff
// member's email (as subject), display name and role id.  Validation re-resolves
// the email against the users table, so a token outlives its user by at most
// one lookup.
type IdentityClaims struct {
	Email     string
	Firstname string
	Lastname  string
	RoleID    *uint64
}

// NewAccessToken builds and signs an HS256 JWT for a staff user.  It takes the
// signing secret, the identity claims and a TTL in minutes, and returns the
// signed token together with its expiration time.  Standard claims exp and
// iat are filled from the current UTC time.
func NewAccessToken(secret string, id IdentityClaims, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":       id.Email,
		"firstname": id.Firstname,
		"lastname":  id.Lastname,
		"exp":       exp.Unix(),
		"iat":       now.Unix(),
	}
	if id.RoleID != nil {
		claims["role"] = *id.RoleID
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
