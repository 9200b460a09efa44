package introspect

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pet-care-log/internal/platform/httpclient"
	"pet-care-log/internal/ports/auth"

	"github.com/pkg/errors"
)

var (
	ErrNotConfigured = errors.New("introspection not configured")
	ErrUnauthorized  = errors.New("token rejected by identity provider")
	ErrUpstream      = errors.New("identity provider error")
)

const verifyPath = "/v1/tokens/verify"

type Config struct {
	BaseURL string
	APIKey  string

	// Header de la API key. Default "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

// Verifier implementa auth.AuthVerifier contra un IAM remoto que expone
// POST {base}/v1/tokens/verify.
type Verifier struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewVerifier(cfg Config) (*Verifier, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c, err := httpclient.New(cfg.BaseURL, timeout, cfg.Transport)
	if err != nil {
		return nil, err
	}

	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}

	return &Verifier{
		http:         c,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	headers := map[string]string{
		"Authorization": "Bearer " + token,
	}
	if v.apiKey != "" {
		headers[v.apiKeyHeader] = v.apiKey
	}

	var out verifyResponse
	err := v.http.DoJSON(ctx, http.MethodPost, verifyPath, headers, verifyRequest{Token: token}, &out)
	if err != nil {
		var herr *httpclient.HTTPError
		if errors.As(err, &herr) && (herr.StatusCode == http.StatusUnauthorized || herr.StatusCode == http.StatusForbidden) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, errors.Wrap(ErrUpstream, err.Error())
	}

	uid := strings.TrimSpace(out.UserID)
	if uid == "" {
		return auth.Claims{}, errors.Wrap(ErrUpstream, "response missing user_id")
	}

	return auth.Claims{
		UserID:   uid,
		Email:    strings.TrimSpace(out.Email),
		TenantID: strings.TrimSpace(out.TenantID),
	}, nil
}
