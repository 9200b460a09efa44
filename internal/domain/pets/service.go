package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

type Service struct {
	repo    Repository
	members Memberships
	now     func() time.Time
}

func NewService(repo Repository, m Memberships) *Service {
	return &Service{
		repo:    repo,
		members: m,
		now:     time.Now,
	}
}

type CreateInput struct {
	Name      string
	Species   Species
	Breed     string
	Sex       Sex
	BirthDate *time.Time
	Notes     string
}

// Create registra la mascota y la arista owner del creador.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}

	sex := in.Sex
	if sex == "" {
		sex = SexUnknown
	}
	species := in.Species
	if species == "" {
		species = SpeciesOther
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Species:   species,
		Breed:     strings.TrimSpace(in.Breed),
		Sex:       sex,
		BirthDate: in.BirthDate,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	if _, err := s.members.AddOwner(ctx, p.ID, ownerUserID); err != nil {
		// sin owner la mascota quedaría inaccesible
		_ = s.repo.Delete(ctx, p.ID)
		return Pet{}, err
	}
	return p, nil
}

// Get exige membresía; si no, ErrNotFound.
func (s *Service) Get(ctx context.Context, petID, userID string) (Pet, error) {
	petID = strings.TrimSpace(petID)
	if err := s.authorize(ctx, petID, userID); err != nil {
		return Pet{}, err
	}
	return s.repo.GetByID(ctx, petID)
}

// ListForUser: mascotas donde el usuario es owner o member.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Pet, error) {
	ids, err := s.members.PetIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []Pet{}, nil
	}
	return s.repo.ListByIDs(ctx, ids)
}

type UpdateProfileInput struct {
	// nil = no tocar
	Name    *string
	Species *Species
	Breed   *string
	Sex     *Sex
	Notes   *string

	BirthDate patchBirthDate
}

// patchBirthDate distingue "no enviado" de "null" (limpiar).
type patchBirthDate struct {
	Present bool
	Value   *time.Time
}

func (s *Service) UpdateProfile(ctx context.Context, petID, userID string, in UpdateProfileInput) (Pet, error) {
	petID = strings.TrimSpace(petID)
	if err := s.authorize(ctx, petID, userID); err != nil {
		return Pet{}, err
	}

	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Species != nil {
		p.Species = *in.Species
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		p.Sex = *in.Sex
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.BirthDate.Present {
		p.BirthDate = in.BirthDate.Value
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}
