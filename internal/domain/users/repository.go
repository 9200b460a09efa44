package users

import "context"

type Repository interface {
	// Upsert crea o reemplaza email/name; conserva CreatedAt si ya existía.
	Upsert(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
