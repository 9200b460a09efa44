package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-care-log/internal/domain/healthevents"
)

type eventRepo struct {
	mu   sync.RWMutex
	byID map[string]healthevents.HealthEvent
}

func NewEventRepo() healthevents.Repository {
	return &eventRepo{
		byID: make(map[string]healthevents.HealthEvent),
	}
}

// CreateBatch valida el lote completo antes de escribir: todos o ninguno.
func (r *eventRepo) CreateBatch(ctx context.Context, batch []healthevents.HealthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertLocked(batch)
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (healthevents.HealthEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return healthevents.HealthEvent{}, healthevents.ErrNotFound
	}
	return e, nil
}

func (r *eventRepo) ListByPet(ctx context.Context, petID string, f healthevents.ListFilter) ([]healthevents.HealthEvent, error) {
	return r.list(func(e healthevents.HealthEvent) bool {
		return e.PetID == petID && f.Matches(e)
	}), nil
}

func (r *eventRepo) ListByGroup(ctx context.Context, groupID string) ([]healthevents.HealthEvent, error) {
	if groupID == "" {
		return []healthevents.HealthEvent{}, nil
	}
	out := r.list(func(e healthevents.HealthEvent) bool {
		return e.GroupID == groupID
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

func (r *eventRepo) Update(ctx context.Context, e healthevents.HealthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[e.ID]; !ok {
		return healthevents.ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *eventRepo) UpdateGroup(ctx context.Context, groupID string, f healthevents.GroupFields) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.byID {
		if groupID != "" && e.GroupID == groupID {
			r.byID[id] = f.Apply(e)
			n++
		}
	}
	return n, nil
}

func (r *eventRepo) ReplaceGroup(ctx context.Context, groupID string, batch []healthevents.HealthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := make(map[string]healthevents.HealthEvent)
	for id, e := range r.byID {
		if groupID != "" && e.GroupID == groupID {
			removed[id] = e
			delete(r.byID, id)
		}
	}
	if err := r.insertLocked(batch); err != nil {
		for id, e := range removed {
			r.byID[id] = e
		}
		return err
	}
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

func (r *eventRepo) DeleteGroup(ctx context.Context, groupID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.byID {
		if groupID != "" && e.GroupID == groupID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *eventRepo) insertLocked(batch []healthevents.HealthEvent) error {
	seen := make(map[string]struct{}, len(batch))
	for _, e := range batch {
		if e.ID == "" {
			return errors.New("event id required")
		}
		if _, dup := seen[e.ID]; dup {
			return errors.New("duplicate event id in batch")
		}
		if _, exists := r.byID[e.ID]; exists {
			return errors.New("event already exists")
		}
		seen[e.ID] = struct{}{}
	}
	for _, e := range batch {
		r.byID[e.ID] = e
	}
	return nil
}

func (r *eventRepo) list(keep func(healthevents.HealthEvent) bool) []healthevents.HealthEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]healthevents.HealthEvent, 0)
	for _, e := range r.byID {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
