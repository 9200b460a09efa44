package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"pet-care-log/internal/domain/pets"
)

// petRepo guarda copias: BirthDate es puntero y no se comparte con el caller.
type petRepo struct {
	mu   sync.RWMutex
	pets map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{pets: make(map[string]pets.Pet)}
}

func clonePet(p pets.Pet) pets.Pet {
	if p.BirthDate != nil {
		d := *p.BirthDate
		p.BirthDate = &d
	}
	return p
}

func (r *petRepo) Create(_ context.Context, p pets.Pet) error {
	if p.ID == "" {
		return fmt.Errorf("memory: pet id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.pets[p.ID]; taken {
		return fmt.Errorf("memory: pet %s already exists", p.ID)
	}
	r.pets[p.ID] = clonePet(p)
	return nil
}

func (r *petRepo) Update(_ context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[p.ID]; !ok {
		return pets.ErrNotFound
	}
	r.pets[p.ID] = clonePet(p)
	return nil
}

func (r *petRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return pets.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

func (r *petRepo) GetByID(_ context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(p), nil
}

func (r *petRepo) ListByIDs(_ context.Context, ids []string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[string]pets.Pet, len(ids))
	for _, id := range ids {
		if p, ok := r.pets[id]; ok {
			found[id] = clonePet(p)
		}
	}

	out := make([]pets.Pet, 0, len(found))
	for _, p := range found {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
