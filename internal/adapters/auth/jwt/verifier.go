package jwt

import (
	"context"
	"strings"
	"time"

	"pet-care-log/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var (
	ErrBadToken      = errors.New("invalid token")
	ErrMissingSecret = errors.New("jwt secret not configured")
)

// Claims del token emitido por el servicio de identidad.
// sub = user id.
type Claims struct {
	Email    string `json:"email,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
	gojwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier con HS256.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Verifier{secret: []byte(secret), now: time.Now}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrBadToken
	}

	tok, err := gojwt.ParseWithClaims(token, &Claims{}, func(t *gojwt.Token) (any, error) {
		// bloquea alg confusion (none / RS256 con la secret como key pública)
		if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return v.secret, nil
	}, gojwt.WithTimeFunc(v.now), gojwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return auth.Claims{}, errors.Wrap(ErrBadToken, err.Error())
	}

	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return auth.Claims{}, ErrBadToken
	}

	sub := strings.TrimSpace(c.Subject)
	if sub == "" {
		return auth.Claims{}, errors.Wrap(ErrBadToken, "missing sub")
	}

	return auth.Claims{
		UserID:   sub,
		Email:    strings.TrimSpace(c.Email),
		TenantID: strings.TrimSpace(c.TenantID),
	}, nil
}

// Sign emite un token HS256. Lo usan tests y herramientas locales.
func Sign(secret, userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := Claims{
		Email: email,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return gojwt.NewWithClaims(gojwt.SigningMethodHS256, c).SignedString([]byte(secret))
}
