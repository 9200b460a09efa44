package sqlstore

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-log/internal/domain/healthevents"

	"github.com/pkg/errors"
)

const eventColumns = `id, pet_id, type, event_date, note, document_url, completed, recurrence, group_id, seq, created_at, updated_at`

type EventsRepo struct {
	s *Store
}

func NewEventsRepo(s *Store) *EventsRepo {
	return &EventsRepo{s: s}
}

func (r *EventsRepo) CreateBatch(ctx context.Context, events []healthevents.HealthEvent) error {
	return r.s.inTx(ctx, func(tx *sql.Tx) error {
		return r.insert(ctx, tx, events)
	})
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (healthevents.HealthEvent, error) {
	row := r.s.queryRow(ctx, r.s.db, `SELECT `+eventColumns+` FROM health_events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return healthevents.HealthEvent{}, healthevents.ErrNotFound
	}
	if err != nil {
		return healthevents.HealthEvent{}, errors.Wrap(err, "get health event")
	}
	return e, nil
}

func (r *EventsRepo) ListByPet(ctx context.Context, petID string, f healthevents.ListFilter) ([]healthevents.HealthEvent, error) {
	where := []string{"pet_id = ?"}
	args := []any{petID}

	if len(f.Types) > 0 {
		where = append(where, "type IN ("+placeholders(len(f.Types))+")")
		for _, t := range f.Types {
			args = append(args, string(t))
		}
	}
	if f.From != nil {
		where = append(where, "event_date >= ?")
		args = append(args, dateArg(*f.From))
	}
	if f.To != nil {
		where = append(where, "event_date <= ?")
		args = append(args, dateArg(*f.To))
	}

	return r.list(ctx, `
		SELECT `+eventColumns+`
		FROM health_events
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY event_date ASC, created_at ASC, id ASC
	`, args...)
}

func (r *EventsRepo) ListByGroup(ctx context.Context, groupID string) ([]healthevents.HealthEvent, error) {
	if groupID == "" {
		return []healthevents.HealthEvent{}, nil
	}
	return r.list(ctx, `
		SELECT `+eventColumns+`
		FROM health_events
		WHERE group_id = ?
		ORDER BY seq ASC, id ASC
	`, groupID)
}

func (r *EventsRepo) Update(ctx context.Context, e healthevents.HealthEvent) error {
	res, err := r.s.exec(ctx, r.s.db, `
		UPDATE health_events
		SET
			type = ?,
			event_date = ?,
			note = ?,
			document_url = ?,
			completed = ?,
			updated_at = ?
		WHERE id = ?
	`,
		string(e.Type),
		dateArg(e.Date),
		e.Note,
		e.DocumentURL,
		e.Completed,
		r.s.timeArg(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return errors.Wrap(err, "update health event")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return healthevents.ErrNotFound
	}
	return nil
}

// UpdateGroup: los campos nil quedan como están (COALESCE). date no se toca.
func (r *EventsRepo) UpdateGroup(ctx context.Context, groupID string, f healthevents.GroupFields) (int, error) {
	if groupID == "" {
		return 0, nil
	}

	var typ, note, docURL sql.NullString
	var completed sql.NullBool
	if f.Type != nil {
		typ = sql.NullString{String: string(*f.Type), Valid: true}
	}
	if f.Note != nil {
		note = sql.NullString{String: *f.Note, Valid: true}
	}
	if f.DocumentURL != nil {
		docURL = sql.NullString{String: *f.DocumentURL, Valid: true}
	}
	if f.Completed != nil {
		completed = sql.NullBool{Bool: *f.Completed, Valid: true}
	}

	res, err := r.s.exec(ctx, r.s.db, `
		UPDATE health_events
		SET
			type = COALESCE(?, type),
			note = COALESCE(?, note),
			document_url = COALESCE(?, document_url),
			completed = COALESCE(?, completed),
			updated_at = ?
		WHERE group_id = ?
	`, typ, note, docURL, completed, r.s.timeArg(f.UpdatedAt), groupID)
	if err != nil {
		return 0, errors.Wrap(err, "update health event group")
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ReplaceGroup: delete + insert en una transacción.
func (r *EventsRepo) ReplaceGroup(ctx context.Context, groupID string, events []healthevents.HealthEvent) error {
	return r.s.inTx(ctx, func(tx *sql.Tx) error {
		if groupID != "" {
			if _, err := r.s.exec(ctx, tx, `DELETE FROM health_events WHERE group_id = ?`, groupID); err != nil {
				return errors.Wrap(err, "delete health event group")
			}
		}
		return r.insert(ctx, tx, events)
	})
}

func (r *EventsRepo) Delete(ctx context.Context, id string) (int, error) {
	res, err := r.s.exec(ctx, r.s.db, `DELETE FROM health_events WHERE id = ?`, id)
	if err != nil {
		return 0, errors.Wrap(err, "delete health event")
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *EventsRepo) DeleteGroup(ctx context.Context, groupID string) (int, error) {
	if groupID == "" {
		return 0, nil
	}
	res, err := r.s.exec(ctx, r.s.db, `DELETE FROM health_events WHERE group_id = ?`, groupID)
	if err != nil {
		return 0, errors.Wrap(err, "delete health event group")
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *EventsRepo) insert(ctx context.Context, tx *sql.Tx, events []healthevents.HealthEvent) error {
	for _, e := range events {
		_, err := r.s.exec(ctx, tx, `
			INSERT INTO health_events (`+eventColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			e.ID,
			e.PetID,
			string(e.Type),
			dateArg(e.Date),
			e.Note,
			e.DocumentURL,
			e.Completed,
			string(e.Recurrence),
			nullString(e.GroupID),
			e.Seq,
			r.s.timeArg(e.CreatedAt),
			r.s.timeArg(e.UpdatedAt),
		)
		if err != nil {
			return errors.Wrapf(err, "insert health event %s", e.ID)
		}
	}
	return nil
}

func (r *EventsRepo) list(ctx context.Context, query string, args ...any) ([]healthevents.HealthEvent, error) {
	rows, err := r.s.query(ctx, r.s.db, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list health events")
	}
	defer rows.Close()

	out := make([]healthevents.HealthEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan health event")
		}
		out = append(out, e)
	}
	return out, errors.Wrap(rows.Err(), "list health events")
}

func scanEvent(row rowScanner) (healthevents.HealthEvent, error) {
	var (
		e       healthevents.HealthEvent
		date    dateCol
		groupID sql.NullString
	)
	err := row.Scan(
		&e.ID,
		&e.PetID,
		&e.Type,
		&date,
		&e.Note,
		&e.DocumentURL,
		&e.Completed,
		&e.Recurrence,
		&groupID,
		&e.Seq,
		timeCol{&e.CreatedAt},
		timeCol{&e.UpdatedAt},
	)
	if err != nil {
		return healthevents.HealthEvent{}, err
	}
	e.Date = date.Time
	e.GroupID = groupID.String
	return e, nil
}
