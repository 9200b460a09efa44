package pets

import (
	"context"

	"pet-care-log/internal/domain/members"
)

// Memberships es lo que pets necesita de members (guard + alta del owner).
type Memberships interface {
	IsOwnerOrMember(ctx context.Context, petID, userID string) (bool, error)
	AddOwner(ctx context.Context, petID, userID string) (members.Membership, error)
	PetIDsForUser(ctx context.Context, userID string) ([]string, error)
}

// authorize: no ser miembro se reporta como ErrNotFound.
func (s *Service) authorize(ctx context.Context, petID, userID string) error {
	ok, err := s.members.IsOwnerOrMember(ctx, petID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
