package members

import "context"

type Repository interface {
	// Create falla con ErrAlreadyMember si ya existe la arista (petID, userID).
	Create(ctx context.Context, m Membership) error
	Get(ctx context.Context, petID, userID string) (Membership, error)
	ListByPet(ctx context.Context, petID string) ([]Membership, error)
	ListByUser(ctx context.Context, userID string) ([]Membership, error)
	Delete(ctx context.Context, petID, userID string) error
}
