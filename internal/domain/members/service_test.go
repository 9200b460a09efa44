package members

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byKey map[string]Membership
}

func newTestRepo() *testRepo {
	return &testRepo{byKey: map[string]Membership{}}
}

func key(petID, userID string) string { return petID + "|" + userID }

func (r *testRepo) Create(ctx context.Context, m Membership) error {
	if _, ok := r.byKey[key(m.PetID, m.UserID)]; ok {
		return ErrAlreadyMember
	}
	r.byKey[key(m.PetID, m.UserID)] = m
	return nil
}

func (r *testRepo) Get(ctx context.Context, petID, userID string) (Membership, error) {
	m, ok := r.byKey[key(petID, userID)]
	if !ok {
		return Membership{}, ErrNotFound
	}
	return m, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Membership, error) {
	out := make([]Membership, 0)
	for _, m := range r.byKey {
		if m.PetID == petID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Membership, error) {
	out := make([]Membership, 0)
	for _, m := range r.byKey {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, petID, userID string) error {
	if _, ok := r.byKey[key(petID, userID)]; !ok {
		return ErrNotFound
	}
	delete(r.byKey, key(petID, userID))
	return nil
}

func newTestService(t *testing.T) (*Service, *testRepo) {
	t.Helper()
	repo := newTestRepo()
	svc := NewService(repo)
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestService_IsOwnerOrMember(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddOwner(ctx, "pet-1", "owner-1"); err != nil {
		t.Fatalf("add owner: %v", err)
	}
	if _, err := svc.AddMember(ctx, "pet-1", "owner-1", "member-1"); err != nil {
		t.Fatalf("add member: %v", err)
	}

	cases := []struct {
		petID, userID string
		want          bool
	}{
		{"pet-1", "owner-1", true},
		{"pet-1", "member-1", true},
		{"pet-1", "stranger", false},
		{"pet-2", "owner-1", false},
		{"", "owner-1", false},
	}
	for _, tc := range cases {
		got, err := svc.IsOwnerOrMember(ctx, tc.petID, tc.userID)
		if err != nil {
			t.Fatalf("IsOwnerOrMember(%q,%q): %v", tc.petID, tc.userID, err)
		}
		if got != tc.want {
			t.Fatalf("IsOwnerOrMember(%q,%q) = %v, want %v", tc.petID, tc.userID, got, tc.want)
		}
	}
}

func TestService_AddOwner_SingleOwnerPerPet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	m, err := svc.AddOwner(ctx, "pet-1", "owner-1")
	if err != nil {
		t.Fatalf("add owner: %v", err)
	}
	if m.Role != RoleOwner {
		t.Fatalf("expected owner role, got %s", m.Role)
	}

	if _, err := svc.AddOwner(ctx, "pet-1", "owner-2"); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember for second owner, got %v", err)
	}
}

func TestService_AddMember_OnlyOwner_Idempotent(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, _ = svc.AddOwner(ctx, "pet-1", "owner-1")

	m, err := svc.AddMember(ctx, "pet-1", "owner-1", "member-1")
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	if m.Role != RoleMember {
		t.Fatalf("expected member role, got %s", m.Role)
	}

	// idempotente
	if _, err := svc.AddMember(ctx, "pet-1", "owner-1", "member-1"); err != nil {
		t.Fatalf("re-add member: %v", err)
	}
	if len(repo.byKey) != 2 {
		t.Fatalf("expected 2 memberships, got %d", len(repo.byKey))
	}

	// un member no puede agregar
	if _, err := svc.AddMember(ctx, "pet-1", "member-1", "other"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// un extraño ni siquiera ve la mascota
	if _, err := svc.AddMember(ctx, "pet-1", "stranger", "other"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_RemoveMember_Rules(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *Service {
		svc, _ := newTestService(t)
		_, _ = svc.AddOwner(ctx, "pet-1", "owner-1")
		_, _ = svc.AddMember(ctx, "pet-1", "owner-1", "m1")
		_, _ = svc.AddMember(ctx, "pet-1", "owner-1", "m2")
		return svc
	}

	t.Run("owner removes member", func(t *testing.T) {
		svc := setup(t)
		if err := svc.RemoveMember(ctx, "pet-1", "owner-1", "m1"); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if ok, _ := svc.IsOwnerOrMember(ctx, "pet-1", "m1"); ok {
			t.Fatalf("m1 should no longer be a member")
		}
	})

	t.Run("member removes self", func(t *testing.T) {
		svc := setup(t)
		if err := svc.RemoveMember(ctx, "pet-1", "m1", "m1"); err != nil {
			t.Fatalf("remove self: %v", err)
		}
	})

	t.Run("member cannot remove other member", func(t *testing.T) {
		svc := setup(t)
		if err := svc.RemoveMember(ctx, "pet-1", "m1", "m2"); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("owner cannot be removed", func(t *testing.T) {
		svc := setup(t)
		if err := svc.RemoveMember(ctx, "pet-1", "m1", "owner-1"); !errors.Is(err, ErrOwnerRemoval) {
			t.Fatalf("expected ErrOwnerRemoval, got %v", err)
		}
		if err := svc.RemoveMember(ctx, "pet-1", "owner-1", "owner-1"); !errors.Is(err, ErrOwnerRemoval) {
			t.Fatalf("expected ErrOwnerRemoval on self-removal, got %v", err)
		}
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		svc := setup(t)
		if err := svc.RemoveMember(ctx, "pet-1", "stranger", "m1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestService_ListByPet_RequiresMembership(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _ = svc.AddOwner(ctx, "pet-1", "owner-1")
	_, _ = svc.AddMember(ctx, "pet-1", "owner-1", "m1")

	items, err := svc.ListByPet(ctx, "pet-1", "m1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 members, got %d", len(items))
	}

	if _, err := svc.ListByPet(ctx, "pet-1", "stranger"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for stranger, got %v", err)
	}
}

func TestService_PetIDsForUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _ = svc.AddOwner(ctx, "pet-1", "u1")
	_, _ = svc.AddOwner(ctx, "pet-2", "u2")
	_, _ = svc.AddMember(ctx, "pet-2", "u2", "u1")

	ids, err := svc.PetIDsForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("pet ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 pets for u1, got %v", ids)
	}
}
