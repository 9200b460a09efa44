package sqlstore

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-log/internal/domain/pets"

	"github.com/pkg/errors"
)

const petColumns = `id, name, species, breed, sex, birth_date, notes, created_at, updated_at`

type PetsRepo struct {
	s *Store
}

func NewPetsRepo(s *Store) *PetsRepo {
	return &PetsRepo{s: s}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.s.exec(ctx, r.s.db, `
		INSERT INTO pets (`+petColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Sex),
		nullDateArg(p.BirthDate),
		p.Notes,
		r.s.timeArg(p.CreatedAt),
		r.s.timeArg(p.UpdatedAt),
	)
	return errors.Wrap(err, "insert pet")
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.s.exec(ctx, r.s.db, `
		UPDATE pets
		SET
			name = ?,
			species = ?,
			breed = ?,
			sex = ?,
			birth_date = ?,
			notes = ?,
			updated_at = ?
		WHERE id = ?
	`,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Sex),
		nullDateArg(p.BirthDate),
		p.Notes,
		r.s.timeArg(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return errors.Wrap(err, "update pet")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.s.exec(ctx, r.s.db, `DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete pet")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.s.queryRow(ctx, r.s.db, `SELECT `+petColumns+` FROM pets WHERE id = ?`, id)
	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, errors.Wrap(err, "get pet")
	}
	return p, nil
}

func (r *PetsRepo) ListByIDs(ctx context.Context, ids []string) ([]pets.Pet, error) {
	if len(ids) == 0 {
		return []pets.Pet{}, nil
	}

	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := r.s.query(ctx, r.s.db, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id IN (`+placeholders(len(ids))+`)
		ORDER BY created_at ASC, id ASC
	`, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list pets")
	}
	defer rows.Close()

	out := make([]pets.Pet, 0, len(ids))
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan pet")
		}
		out = append(out, p)
	}
	return out, errors.Wrap(rows.Err(), "list pets")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var bd dateCol
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Sex,
		&bd,
		&p.Notes,
		timeCol{&p.CreatedAt},
		timeCol{&p.UpdatedAt},
	)
	if err != nil {
		return pets.Pet{}, err
	}
	p.BirthDate = bd.Ptr()
	return p, nil
}
