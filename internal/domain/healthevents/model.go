package healthevents

import (
	"strings"
	"time"
)

type EventType string

const (
	TypeVaccine       EventType = "vaccine"
	TypeDeworming     EventType = "deworming"
	TypeFleaTreatment EventType = "flea_treatment"
	TypeVetVisit      EventType = "vet_visit"
	TypeMedication    EventType = "medication"
	TypeGrooming      EventType = "grooming"
	TypeOther         EventType = "other"
)

var eventTypes = map[EventType]struct{}{
	TypeVaccine:       {},
	TypeDeworming:     {},
	TypeFleaTreatment: {},
	TypeVetVisit:      {},
	TypeMedication:    {},
	TypeGrooming:      {},
	TypeOther:         {},
}

func (t EventType) Valid() bool {
	_, ok := eventTypes[t]
	return ok
}

func ParseEventType(s string) (EventType, error) {
	t := EventType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrInvalidEventType
	}
	return t, nil
}

// HealthEvent. GroupID vacío = evento suelto (no pertenece a una serie).
// Todos los eventos con el mismo GroupID comparten PetID.
type HealthEvent struct {
	ID    string
	PetID string

	Type EventType

	// Solo fecha (medianoche UTC).
	Date time.Time

	Note        string
	DocumentURL string
	Completed   bool

	Recurrence Recurrence
	GroupID    string
	// Seq es la posición dentro de la serie (0 = ancla). No cambia al
	// editar la fecha de un evento.
	Seq int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e HealthEvent) InSeries() bool {
	return e.GroupID != ""
}

// DateOnly normaliza a medianoche UTC conservando el día calendario.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
