package memory

import (
	"context"
	"sort"
	"sync"

	"pet-care-log/internal/domain/members"
)

type memberKey struct {
	petID  string
	userID string
}

type memberRepo struct {
	mu    sync.RWMutex
	edges map[memberKey]members.Membership
}

func NewMemberRepo() members.Repository {
	return &memberRepo{
		edges: make(map[memberKey]members.Membership),
	}
}

func (r *memberRepo) Create(ctx context.Context, m members.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := memberKey{m.PetID, m.UserID}
	if _, exists := r.edges[k]; exists {
		return members.ErrAlreadyMember
	}
	r.edges[k] = m
	return nil
}

func (r *memberRepo) Get(ctx context.Context, petID, userID string) (members.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.edges[memberKey{petID, userID}]
	if !ok {
		return members.Membership{}, members.ErrNotFound
	}
	return m, nil
}

func (r *memberRepo) ListByPet(ctx context.Context, petID string) ([]members.Membership, error) {
	return r.list(func(m members.Membership) bool { return m.PetID == petID }), nil
}

func (r *memberRepo) ListByUser(ctx context.Context, userID string) ([]members.Membership, error) {
	return r.list(func(m members.Membership) bool { return m.UserID == userID }), nil
}

func (r *memberRepo) Delete(ctx context.Context, petID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := memberKey{petID, userID}
	if _, exists := r.edges[k]; !exists {
		return members.ErrNotFound
	}
	delete(r.edges, k)
	return nil
}

func (r *memberRepo) list(keep func(members.Membership) bool) []members.Membership {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]members.Membership, 0)
	for _, m := range r.edges {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
