package utils // package utils provides helper functions for token creation and hashing

import (
    "errors" // sentinel error for rejected tokens
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed JWT session token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Session tokens are stateless: the server keeps
// no record of issued tokens, so a token is valid exactly when its signature
// verifies and its expiry has not passed.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// Session carries the identity claims extracted from a verified token.
type Session struct {
    AdminID uint64 // subject admin user id
    Email   string // admin email at issue time
    Role    string // "admin" or "editor"
}

// ErrInvalidToken is returned by ParseSessionToken for any token that cannot
// be accepted: bad signature, wrong algorithm, malformed claims or expiry in
// the past.  Callers must not distinguish these cases to the client.
var ErrInvalidToken = errors.New("invalid session token")

// NewSessionToken builds and signs an HS256 JWT for an admin user.  It takes
// the signing secret, the admin's identity and a TTL in hours.  The JWT
// includes standard claims: subject (sub), email, role, expiration (exp)
// and issued at (iat).
func NewSessionToken(secret string, adminID uint64, email, role string, ttlHours int) (SessionToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
    claims := jwt.MapClaims{
        "sub":   adminID,
        "email": email,
        "role":  role,
        "exp":   exp.Unix(),
        "iat":   time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies a raw token string against the secret and
// returns the embedded session identity.  Expiry is checked by the JWT
// library as part of validation.  Any failure collapses to ErrInvalidToken.
func ParseSessionToken(secret, raw string) (Session, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject any signing method other than HMAC to prevent algorithm
        // confusion with asymmetric keys.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return Session{}, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Session{}, ErrInvalidToken
    }
    var s Session
    switch v := claims["sub"].(type) {
    case float64:
        s.AdminID = uint64(v)
    default:
        return Session{}, ErrInvalidToken
    }
    if email, ok := claims["email"].(string); ok {
        s.Email = email
    }
    role, ok := claims["role"].(string)
    if !ok || role == "" {
        return Session{}, ErrInvalidToken
    }
    s.Role = role
    return s, nil
}
