package healthevents

import (
	"context"
	"time"
)

type Repository interface {
	// CreateBatch inserta todos o ninguno.
	CreateBatch(ctx context.Context, events []HealthEvent) error
	GetByID(ctx context.Context, id string) (HealthEvent, error)
	// ListByPet devuelve orden date asc; ListByGroup, orden seq asc.
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]HealthEvent, error)
	ListByGroup(ctx context.Context, groupID string) ([]HealthEvent, error)
	Update(ctx context.Context, e HealthEvent) error
	// UpdateGroup aplica los campos no-nil a todos los miembros (date no se toca).
	UpdateGroup(ctx context.Context, groupID string, fields GroupFields) (int, error)
	// ReplaceGroup borra los miembros de groupID e inserta events, atómicamente.
	ReplaceGroup(ctx context.Context, groupID string, events []HealthEvent) error
	Delete(ctx context.Context, id string) (int, error)
	DeleteGroup(ctx context.Context, groupID string) (int, error)
}

type ListFilter struct {
	Types []EventType
	From  *time.Time
	To    *time.Time
}

// Matches aplica el filtro en memoria (usado por el repo in-memory y tests).
func (f ListFilter) Matches(e HealthEvent) bool {
	if len(f.Types) > 0 {
		ok := false
		for _, t := range f.Types {
			if e.Type == t {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	return true
}

type GroupFields struct {
	Type        *EventType
	Note        *string
	DocumentURL *string
	Completed   *bool
	UpdatedAt   time.Time
}

// Apply copia los campos presentes sobre e.
func (f GroupFields) Apply(e HealthEvent) HealthEvent {
	if f.Type != nil {
		e.Type = *f.Type
	}
	if f.Note != nil {
		e.Note = *f.Note
	}
	if f.DocumentURL != nil {
		e.DocumentURL = *f.DocumentURL
	}
	if f.Completed != nil {
		e.Completed = *f.Completed
	}
	if !f.UpdatedAt.IsZero() {
		e.UpdatedAt = f.UpdatedAt
	}
	return e
}
