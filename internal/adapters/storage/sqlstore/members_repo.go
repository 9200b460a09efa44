package sqlstore

import (
	"context"
	"database/sql"

	"pet-care-log/internal/domain/members"

	"github.com/pkg/errors"
)

type MembersRepo struct {
	s *Store
}

func NewMembersRepo(s *Store) *MembersRepo {
	return &MembersRepo{s: s}
}

func (r *MembersRepo) Create(ctx context.Context, m members.Membership) error {
	res, err := r.s.exec(ctx, r.s.db, `
		INSERT INTO pet_members (pet_id, user_id, role, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (pet_id, user_id) DO NOTHING
	`, m.PetID, m.UserID, string(m.Role), r.s.timeArg(m.CreatedAt))
	if err != nil {
		return errors.Wrap(err, "insert membership")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return members.ErrAlreadyMember
	}
	return nil
}

func (r *MembersRepo) Get(ctx context.Context, petID, userID string) (members.Membership, error) {
	row := r.s.queryRow(ctx, r.s.db, `
		SELECT pet_id, user_id, role, created_at
		FROM pet_members
		WHERE pet_id = ? AND user_id = ?
	`, petID, userID)

	m, err := scanMembership(row)
	if errors.Is(err, sql.ErrNoRows) {
		return members.Membership{}, members.ErrNotFound
	}
	if err != nil {
		return members.Membership{}, errors.Wrap(err, "get membership")
	}
	return m, nil
}

func (r *MembersRepo) ListByPet(ctx context.Context, petID string) ([]members.Membership, error) {
	return r.list(ctx, `
		SELECT pet_id, user_id, role, created_at
		FROM pet_members
		WHERE pet_id = ?
		ORDER BY created_at ASC, user_id ASC
	`, petID)
}

func (r *MembersRepo) ListByUser(ctx context.Context, userID string) ([]members.Membership, error) {
	return r.list(ctx, `
		SELECT pet_id, user_id, role, created_at
		FROM pet_members
		WHERE user_id = ?
		ORDER BY created_at ASC, pet_id ASC
	`, userID)
}

func (r *MembersRepo) Delete(ctx context.Context, petID, userID string) error {
	res, err := r.s.exec(ctx, r.s.db, `DELETE FROM pet_members WHERE pet_id = ? AND user_id = ?`, petID, userID)
	if err != nil {
		return errors.Wrap(err, "delete membership")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return members.ErrNotFound
	}
	return nil
}

func (r *MembersRepo) list(ctx context.Context, query string, arg string) ([]members.Membership, error) {
	rows, err := r.s.query(ctx, r.s.db, query, arg)
	if err != nil {
		return nil, errors.Wrap(err, "list memberships")
	}
	defer rows.Close()

	out := make([]members.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan membership")
		}
		out = append(out, m)
	}
	return out, errors.Wrap(rows.Err(), "list memberships")
}

func scanMembership(row rowScanner) (members.Membership, error) {
	var m members.Membership
	err := row.Scan(&m.PetID, &m.UserID, &m.Role, timeCol{&m.CreatedAt})
	return m, err
}
