package users

import "time"

// User: perfil mínimo. ID es la identidad emitida por el proveedor de auth.
type User struct {
	ID    string
	Email string
	Name  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
