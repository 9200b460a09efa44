package members

import "time"

// Role del usuario sobre la mascota.
// owner y member tienen el mismo acceso a datos; solo difieren al remover miembros.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleMember
}

// Membership es la arista usuario-mascota (UserPet).
type Membership struct {
	PetID  string
	UserID string
	Role   Role

	CreatedAt time.Time
}
