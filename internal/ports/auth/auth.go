package auth

import (
	"context"
	"strings"
)

// Claims es la identidad resuelta para una request. Solo UserID es
// obligatorio; es el mismo id que se usa como dueño/miembro de mascotas.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
}

// Subject devuelve el UserID normalizado y si identifica a alguien.
func (c Claims) Subject() (string, bool) {
	uid := strings.TrimSpace(c.UserID)
	return uid, uid != ""
}

// AuthVerifier valida un bearer token contra el proveedor configurado.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// VerifierFunc adapta una función a AuthVerifier.
type VerifierFunc func(ctx context.Context, token string) (Claims, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Claims, error) {
	return f(ctx, token)
}
