package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/twitclone/backend/internal/common/clock"
	"github.com/twitclone/backend/internal/observability/metrics"
)

// Verification failure modes. Expired tokens are reported separately from
// structurally broken or tampered ones so the auth gate can treat expired
// the same as absent.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// TokenIssuer issues and verifies the stateless bearer tokens. A token is
// valid purely by signature and expiry; there is no revocation list, and the
// subject is not re-checked against the account store.
type TokenIssuer struct {
	jwtSecret []byte
	tokenTTL  time.Duration
	clock     clock.Clock
}

func NewTokenIssuer(jwtSecret string, tokenTTL time.Duration, clock clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		clock:     clock,
	}
}

// Issue signs an HS256 token with subject = username and a fixed short
// expiry from now.
func (ti *TokenIssuer) Issue(username string) (string, error) {
	now := ti.clock.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(ti.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.jwtSecret)
	if err != nil {
		return "", err
	}

	metrics.TokensIssuedTotal.Inc()
	return tokenString, nil
}

// Verify validates signature and expiry and returns the embedded subject
// unchanged.
func (ti *TokenIssuer) Verify(tokenString string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ti.clock.Now),
		jwt.WithExpirationRequired(),
	)

	parsed, err := parser.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return ti.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
			return "", ErrTokenExpired
		}
		metrics.TokenVerificationsTotal.WithLabelValues("malformed").Inc()
		return "", ErrTokenMalformed
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		metrics.TokenVerificationsTotal.WithLabelValues("malformed").Inc()
		return "", ErrTokenMalformed
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		metrics.TokenVerificationsTotal.WithLabelValues("malformed").Inc()
		return "", ErrTokenMalformed
	}

	metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
	return sub, nil
}
