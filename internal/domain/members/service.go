package members

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyMember = errors.New("already a member")
	ErrOwnerRemoval  = errors.New("owner cannot be removed")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// IsOwnerOrMember es el guard de acceso: cualquier arista autoriza.
func (s *Service) IsOwnerOrMember(ctx context.Context, petID, userID string) (bool, error) {
	petID = strings.TrimSpace(petID)
	userID = strings.TrimSpace(userID)
	if petID == "" || userID == "" {
		return false, nil
	}

	_, err := s.repo.Get(ctx, petID, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddOwner crea la arista owner al registrar la mascota.
func (s *Service) AddOwner(ctx context.Context, petID, userID string) (Membership, error) {
	petID = strings.TrimSpace(petID)
	userID = strings.TrimSpace(userID)
	if petID == "" || userID == "" {
		return Membership{}, ErrInvalidInput
	}

	existing, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return Membership{}, err
	}
	for _, m := range existing {
		if m.Role == RoleOwner {
			// un único owner por mascota
			return Membership{}, ErrAlreadyMember
		}
	}

	m := Membership{PetID: petID, UserID: userID, Role: RoleOwner, CreatedAt: s.now()}
	if err := s.repo.Create(ctx, m); err != nil {
		return Membership{}, err
	}
	return m, nil
}

// AddMember: solo el owner agrega miembros. Idempotente si la arista ya existe.
func (s *Service) AddMember(ctx context.Context, petID, actorID, userID string) (Membership, error) {
	petID = strings.TrimSpace(petID)
	actorID = strings.TrimSpace(actorID)
	userID = strings.TrimSpace(userID)
	if petID == "" || actorID == "" || userID == "" {
		return Membership{}, ErrInvalidInput
	}

	actor, err := s.get(ctx, petID, actorID)
	if err != nil {
		return Membership{}, err
	}
	if actor.Role != RoleOwner {
		return Membership{}, ErrForbidden
	}

	if current, err := s.repo.Get(ctx, petID, userID); err == nil {
		return current, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Membership{}, err
	}

	m := Membership{PetID: petID, UserID: userID, Role: RoleMember, CreatedAt: s.now()}
	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, ErrAlreadyMember) {
			return s.repo.Get(ctx, petID, userID)
		}
		return Membership{}, err
	}
	return m, nil
}

// RemoveMember:
// - el owner puede remover a cualquier member
// - un member solo puede removerse a sí mismo
// - el owner nunca se remueve (ni a sí mismo)
func (s *Service) RemoveMember(ctx context.Context, petID, actorID, userID string) error {
	petID = strings.TrimSpace(petID)
	actorID = strings.TrimSpace(actorID)
	userID = strings.TrimSpace(userID)
	if petID == "" || actorID == "" || userID == "" {
		return ErrInvalidInput
	}

	actor, err := s.get(ctx, petID, actorID)
	if err != nil {
		return err
	}

	target, err := s.get(ctx, petID, userID)
	if err != nil {
		return err
	}
	if target.Role == RoleOwner {
		return ErrOwnerRemoval
	}
	if actor.Role != RoleOwner && actor.UserID != target.UserID {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, petID, userID)
}

// ListByPet devuelve los miembros; el caller debe pertenecer a la mascota.
func (s *Service) ListByPet(ctx context.Context, petID, actorID string) ([]Membership, error) {
	if _, err := s.get(ctx, strings.TrimSpace(petID), strings.TrimSpace(actorID)); err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, strings.TrimSpace(petID))
}

// PetIDsForUser lista las mascotas donde userID tiene cualquier rol.
func (s *Service) PetIDsForUser(ctx context.Context, userID string) ([]string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, m := range items {
		out = append(out, m.PetID)
	}
	return out, nil
}

// get trata "no es miembro" igual que "no existe" (no filtra existencia).
func (s *Service) get(ctx context.Context, petID, userID string) (Membership, error) {
	if petID == "" || userID == "" {
		return Membership{}, ErrNotFound
	}
	m, err := s.repo.Get(ctx, petID, userID)
	if err != nil {
		return Membership{}, err
	}
	return m, nil
}
