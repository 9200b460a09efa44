package healthevents

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidEventType  = errors.New("invalid event type")
	ErrInvalidRecurrence = errors.New("invalid recurrence: expected none, 1y, 6m, 3m or 1m")
	ErrForbidden         = errors.New("forbidden")
	// ErrNotFound cubre también "existe pero no tenés acceso".
	ErrNotFound = errors.New("health event not found")
)

// Guard decide si userID puede operar sobre los datos de petID.
type Guard interface {
	IsOwnerOrMember(ctx context.Context, petID, userID string) (bool, error)
}

type Service struct {
	repo  Repository
	guard Guard
	locks *groupLocks
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository, guard Guard) *Service {
	return &Service{
		repo:  repo,
		guard: guard,
		locks: newGroupLocks(),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

type CreateInput struct {
	PetID       string
	Type        EventType
	Date        time.Time
	Note        string
	DocumentURL string
	Completed   bool
	Recurrence  Recurrence
}

// Patch: nil = no tocar.
type Patch struct {
	Type        *EventType
	Date        *time.Time
	Note        *string
	DocumentURL *string
	Completed   *bool
	Recurrence  *Recurrence
}

func (s *Service) ListByPet(ctx context.Context, petID, userID string, filter ListFilter) ([]HealthEvent, error) {
	petID = strings.TrimSpace(petID)
	if err := s.authorize(ctx, petID, userID, ErrForbidden); err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, petID, filter)
}

func (s *Service) Get(ctx context.Context, id, userID string) (HealthEvent, error) {
	return s.resolve(ctx, id, userID)
}

// Create crea un evento suelto (recurrence none) o una serie de SeriesLength
// eventos que comparten un group_id nuevo.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) ([]HealthEvent, error) {
	in.PetID = strings.TrimSpace(in.PetID)
	if in.PetID == "" || in.Date.IsZero() {
		return nil, ErrInvalidInput
	}
	if !in.Type.Valid() {
		return nil, ErrInvalidEventType
	}
	if in.Recurrence == "" {
		in.Recurrence = RecurrenceNone
	}
	if !in.Recurrence.Valid() {
		return nil, ErrInvalidRecurrence
	}

	if err := s.authorize(ctx, in.PetID, userID, ErrForbidden); err != nil {
		return nil, err
	}

	groupID := ""
	if in.Recurrence.IsSeries() {
		groupID = s.newID()
	}

	events := s.generate(in, groupID)
	if err := s.repo.CreateBatch(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// Update edita un único evento. No modifica recurrence ni group_id
// ni propaga a los demás miembros de la serie.
func (s *Service) Update(ctx context.Context, id, userID string, p Patch) (HealthEvent, error) {
	e, err := s.resolve(ctx, id, userID)
	if err != nil {
		return HealthEvent{}, err
	}

	if p.Type != nil {
		if !p.Type.Valid() {
			return HealthEvent{}, ErrInvalidEventType
		}
		e.Type = *p.Type
	}
	if p.Date != nil {
		if p.Date.IsZero() {
			return HealthEvent{}, ErrInvalidInput
		}
		e.Date = DateOnly(*p.Date)
	}
	if p.Note != nil {
		e.Note = strings.TrimSpace(*p.Note)
	}
	if p.DocumentURL != nil {
		e.DocumentURL = strings.TrimSpace(*p.DocumentURL)
	}
	if p.Completed != nil {
		e.Completed = *p.Completed
	}
	e.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, e); err != nil {
		return HealthEvent{}, err
	}
	return e, nil
}

// UpdateGroup:
//   - recurrence ausente o igual a la actual: update en bloque de type, note,
//     document_url y completed; cada evento conserva su fecha.
//   - recurrence distinta: se destruye la serie y se regenera desde la fecha del
//     primer evento con el mismo group_id. Con "none" la serie colapsa a un único
//     evento sin group_id.
func (s *Service) UpdateGroup(ctx context.Context, groupID, userID string, p Patch) ([]HealthEvent, error) {
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return nil, ErrNotFound
	}
	if p.Type != nil && !p.Type.Valid() {
		return nil, ErrInvalidEventType
	}
	if p.Recurrence != nil && !p.Recurrence.Valid() {
		return nil, ErrInvalidRecurrence
	}

	unlock := s.locks.Lock(groupID)
	defer unlock()

	current, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(current) == 0 {
		return nil, ErrNotFound
	}

	first := anchor(current)
	if err := s.authorize(ctx, first.PetID, userID, ErrNotFound); err != nil {
		return nil, err
	}

	now := s.now()

	if p.Recurrence == nil || *p.Recurrence == first.Recurrence {
		fields := GroupFields{
			Type:        p.Type,
			Note:        trimPtr(p.Note),
			DocumentURL: trimPtr(p.DocumentURL),
			Completed:   p.Completed,
			UpdatedAt:   now,
		}
		if _, err := s.repo.UpdateGroup(ctx, groupID, fields); err != nil {
			return nil, err
		}
		return s.repo.ListByGroup(ctx, groupID)
	}

	in := CreateInput{
		PetID:       first.PetID,
		Type:        first.Type,
		Date:        first.Date,
		Note:        first.Note,
		DocumentURL: first.DocumentURL,
		Completed:   first.Completed,
		Recurrence:  *p.Recurrence,
	}
	if p.Type != nil {
		in.Type = *p.Type
	}
	if p.Note != nil {
		in.Note = *p.Note
	}
	if p.DocumentURL != nil {
		in.DocumentURL = *p.DocumentURL
	}
	if p.Completed != nil {
		in.Completed = *p.Completed
	}

	newGroupID := groupID
	if !in.Recurrence.IsSeries() {
		newGroupID = ""
	}

	events := s.generate(in, newGroupID)
	if err := s.repo.ReplaceGroup(ctx, groupID, events); err != nil {
		return nil, err
	}
	return events, nil
}

// Delete borra el evento; si pertenece a una serie, borra la serie completa.
// Devuelve la cantidad de eventos eliminados.
func (s *Service) Delete(ctx context.Context, id, userID string) (int, error) {
	e, err := s.resolve(ctx, id, userID)
	if err != nil {
		return 0, err
	}

	if !e.InSeries() {
		return s.repo.Delete(ctx, e.ID)
	}

	unlock := s.locks.Lock(e.GroupID)
	defer unlock()

	return s.repo.DeleteGroup(ctx, e.GroupID)
}

// generate arma los eventos de una serie (o el evento suelto si groupID es "").
func (s *Service) generate(in CreateInput, groupID string) []HealthEvent {
	now := s.now()
	start := DateOnly(in.Date)

	rec := in.Recurrence
	dates := []time.Time{start}
	if groupID != "" {
		dates = SeriesDates(start, rec)
	} else {
		rec = RecurrenceNone
	}

	out := make([]HealthEvent, 0, len(dates))
	for i, d := range dates {
		out = append(out, HealthEvent{
			ID:          s.newID(),
			PetID:       in.PetID,
			Type:        in.Type,
			Date:        d,
			Note:        strings.TrimSpace(in.Note),
			DocumentURL: strings.TrimSpace(in.DocumentURL),
			Completed:   in.Completed,
			Recurrence:  rec,
			GroupID:     groupID,
			Seq:         i,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return out
}

// resolve busca el evento y verifica acceso contra su pet; sin acceso => ErrNotFound.
func (s *Service) resolve(ctx context.Context, id, userID string) (HealthEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return HealthEvent{}, ErrNotFound
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return HealthEvent{}, err
	}
	if err := s.authorize(ctx, e.PetID, userID, ErrNotFound); err != nil {
		return HealthEvent{}, err
	}
	return e, nil
}

func (s *Service) authorize(ctx context.Context, petID, userID string, deny error) error {
	ok, err := s.guard.IsOwnerOrMember(ctx, petID, strings.TrimSpace(userID))
	if err != nil {
		return err
	}
	if !ok {
		return deny
	}
	return nil
}

// anchor devuelve el evento con menor Seq, aunque su fecha se haya editado.
func anchor(series []HealthEvent) HealthEvent {
	a := series[0]
	for _, e := range series[1:] {
		if e.Seq < a.Seq {
			a = e
		}
	}
	return a
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
