package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	// ListByIDs ignora ids inexistentes. Orden: created_at asc.
	ListByIDs(ctx context.Context, ids []string) ([]Pet, error)
}
