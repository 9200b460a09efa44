package notifications

import "context"

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Setting, error)
	// ReplaceForUser borra todos los settings del usuario e inserta los nuevos
	// en una sola operación.
	ReplaceForUser(ctx context.Context, userID string, settings []Setting) error
	// ListEnabled devuelve los settings con enabled = true de todos los usuarios.
	ListEnabled(ctx context.Context) ([]Setting, error)
}
