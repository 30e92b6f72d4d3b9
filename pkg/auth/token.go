package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shahzada-shah/flow-studios/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// IssuedSession is a freshly minted shopper session.
type IssuedSession struct {
	SessionID uuid.UUID `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MintSessionToken issues a signed JWT for the given session id using the configured TTL.
func MintSessionToken(cfg config.SessionConfig, now time.Time, sessionID uuid.UUID) (IssuedSession, error) {
	if cfg.Secret == "" {
		return IssuedSession{}, fmt.Errorf("session secret is required")
	}
	if cfg.Issuer == "" {
		return IssuedSession{}, fmt.Errorf("session issuer is required")
	}
	if cfg.TTL <= 0 {
		return IssuedSession{}, fmt.Errorf("session ttl must be positive")
	}
	if sessionID == uuid.Nil {
		return IssuedSession{}, fmt.Errorf("session id is required")
	}

	expiresAt := now.Add(cfg.TTL)
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   sessionID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return IssuedSession{}, fmt.Errorf("signing jwt: %w", err)
	}
	return IssuedSession{SessionID: sessionID, Token: signed, ExpiresAt: expiresAt}, nil
}

// ParseSessionToken validates the JWT string and returns typed claims.
func ParseSessionToken(cfg config.SessionConfig, tokenString string) (*SessionClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if claims.SessionID == uuid.Nil {
		return nil, fmt.Errorf("token carries no session id")
	}
	return claims, nil
}
