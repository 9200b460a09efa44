package sqlstore

import (
	"context"
	"database/sql"

	"pet-care-log/internal/domain/users"

	"github.com/pkg/errors"
)

type UsersRepo struct {
	s *Store
}

func NewUsersRepo(s *Store) *UsersRepo {
	return &UsersRepo{s: s}
}

// Upsert conserva created_at de la fila existente y devuelve la fila final.
func (r *UsersRepo) Upsert(ctx context.Context, u users.User) (users.User, error) {
	_, err := r.s.exec(ctx, r.s.db, `
		INSERT INTO users (id, email, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			updated_at = excluded.updated_at
	`, u.ID, u.Email, u.Name, r.s.timeArg(u.CreatedAt), r.s.timeArg(u.UpdatedAt))
	if err != nil {
		return users.User{}, errors.Wrap(err, "upsert user")
	}
	return r.GetByID(ctx, u.ID)
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	var u users.User
	err := r.s.queryRow(ctx, r.s.db, `
		SELECT id, email, name, created_at, updated_at
		FROM users
		WHERE id = ?
	`, id).Scan(&u.ID, &u.Email, &u.Name, timeCol{&u.CreatedAt}, timeCol{&u.UpdatedAt})
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, errors.Wrap(err, "get user")
	}
	return u, nil
}
