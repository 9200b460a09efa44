package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet es el perfil básico. La propiedad vive en members (UserPet).
type Pet struct {
	ID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex

	BirthDate *time.Time

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
