package sqlstore

import (
	"context"
	"testing"
	"time"

	"pet-care-log/internal/domain/healthevents"
	"pet-care-log/internal/domain/members"
	"pet-care-log/internal/domain/notifications"
	"pet-care-log/internal/domain/pets"
	"pet-care-log/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustDate(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedPet(t *testing.T, s *Store, id string) {
	t.Helper()
	require.NoError(t, NewPetsRepo(s).Create(context.Background(), pets.Pet{
		ID:        id,
		Name:      "Luna",
		Species:   pets.SpeciesDog,
		Sex:       pets.SexFemale,
		CreatedAt: t0,
		UpdatedAt: t0,
	}))
}

func TestRebind(t *testing.T) {
	pg := &Store{dialect: DialectPostgres}
	assert.Equal(t, "SELECT * FROM x WHERE a = $1 AND b IN ($2,$3)", pg.rebind("SELECT * FROM x WHERE a = ? AND b IN (?,?)"))

	lite := &Store{dialect: DialectSQLite}
	assert.Equal(t, "a = ?", lite.rebind("a = ?"))
}

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x")
	require.Error(t, err)
}

func TestPetsRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	repo := NewPetsRepo(s)

	bd := mustDate("2020-05-17")
	p := pets.Pet{
		ID:        "p1",
		Name:      "Milo",
		Species:   pets.SpeciesCat,
		Breed:     "Siamés",
		Sex:       pets.SexMale,
		BirthDate: &bd,
		Notes:     "alérgico al pollo",
		CreatedAt: t0,
		UpdatedAt: t0,
	}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Species, got.Species)
	require.NotNil(t, got.BirthDate)
	assert.Equal(t, "2020-05-17", got.BirthDate.Format(dateLayout))
	assert.True(t, got.CreatedAt.Equal(t0))

	got.BirthDate = nil
	got.Name = "Milo II"
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got.BirthDate)
	assert.Equal(t, "Milo II", got.Name)

	seedPet(t, s, "p0")
	list, err := repo.ListByIDs(ctx, []string{"p1", "p0", "ghost"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.ErrorIs(t, repo.Update(ctx, pets.Pet{ID: "ghost"}), pets.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "p1"))
	_, err = repo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, pets.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "p1"), pets.ErrNotFound)
}

func TestMembersRepo_EdgesAndSingleOwner(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	seedPet(t, s, "p1")
	repo := NewMembersRepo(s)

	require.NoError(t, repo.Create(ctx, members.Membership{PetID: "p1", UserID: "u1", Role: members.RoleOwner, CreatedAt: t0}))
	assert.ErrorIs(t, repo.Create(ctx, members.Membership{PetID: "p1", UserID: "u1", Role: members.RoleMember, CreatedAt: t0}), members.ErrAlreadyMember)

	// El índice parcial impide un segundo owner.
	err := repo.Create(ctx, members.Membership{PetID: "p1", UserID: "u2", Role: members.RoleOwner, CreatedAt: t0})
	require.Error(t, err)

	require.NoError(t, repo.Create(ctx, members.Membership{PetID: "p1", UserID: "u2", Role: members.RoleMember, CreatedAt: t0.Add(time.Second)}))

	m, err := repo.Get(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, members.RoleOwner, m.Role)

	byPet, err := repo.ListByPet(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, byPet, 2)
	assert.Equal(t, "u1", byPet[0].UserID)

	byUser, err := repo.ListByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	require.NoError(t, repo.Delete(ctx, "p1", "u2"))
	assert.ErrorIs(t, repo.Delete(ctx, "p1", "u2"), members.ErrNotFound)
	_, err = repo.Get(ctx, "p1", "u2")
	assert.ErrorIs(t, err, members.ErrNotFound)
}

func TestUsersRepo_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewUsersRepo(openTestStore(t))

	u, err := repo.Upsert(ctx, users.User{ID: "u1", Email: "a@example.com", Name: "Ana", CreatedAt: t0, UpdatedAt: t0})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)

	later := t0.Add(time.Hour)
	u, err = repo.Upsert(ctx, users.User{ID: "u1", Email: "b@example.com", CreatedAt: later, UpdatedAt: later})
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", u.Email)
	assert.True(t, u.CreatedAt.Equal(t0))
	assert.True(t, u.UpdatedAt.Equal(later))

	_, err = repo.GetByID(ctx, "nobody")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func series(groupID string, start string, r healthevents.Recurrence) []healthevents.HealthEvent {
	out := []healthevents.HealthEvent{}
	for i, d := range healthevents.SeriesDates(mustDate(start), r) {
		out = append(out, healthevents.HealthEvent{
			ID:         groupID + "-" + string(rune('a'+i)),
			PetID:      "p1",
			Type:       healthevents.TypeVaccine,
			Date:       d,
			Note:       "rabia",
			Recurrence: r,
			GroupID:    groupID,
			Seq:        i,
			CreatedAt:  t0,
			UpdatedAt:  t0,
		})
	}
	return out
}

func TestEventsRepo_SeriesLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	seedPet(t, s, "p1")
	repo := NewEventsRepo(s)

	require.NoError(t, repo.CreateBatch(ctx, series("g1", "2024-01-31", healthevents.RecurrenceQuarter)))
	require.NoError(t, repo.CreateBatch(ctx, []healthevents.HealthEvent{{
		ID: "solo", PetID: "p1", Type: healthevents.TypeVetVisit, Date: mustDate("2024-03-01"),
		Recurrence: healthevents.RecurrenceNone, CreatedAt: t0, UpdatedAt: t0,
	}}))

	group, err := repo.ListByGroup(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, group, 4)
	dates := []string{}
	for _, e := range group {
		dates = append(dates, e.Date.Format(dateLayout))
		assert.Equal(t, healthevents.RecurrenceQuarter, e.Recurrence)
	}
	assert.Equal(t, []string{"2024-01-31", "2024-04-30", "2024-07-31", "2024-10-31"}, dates)

	solo, err := repo.GetByID(ctx, "solo")
	require.NoError(t, err)
	assert.Equal(t, "", solo.GroupID)

	done := true
	note := "refuerzo"
	n, err := repo.UpdateGroup(ctx, "g1", healthevents.GroupFields{Note: &note, Completed: &done, UpdatedAt: t0.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	group, _ = repo.ListByGroup(ctx, "g1")
	for _, e := range group {
		assert.Equal(t, "refuerzo", e.Note)
		assert.True(t, e.Completed)
		assert.Equal(t, healthevents.TypeVaccine, e.Type)
	}

	require.NoError(t, repo.ReplaceGroup(ctx, "g1", series("g1", "2024-01-31", healthevents.RecurrenceYearly)))
	group, _ = repo.ListByGroup(ctx, "g1")
	require.Len(t, group, 4)
	assert.Equal(t, "2025-01-31", group[1].Date.Format(dateLayout))

	from, to := mustDate("2024-02-01"), mustDate("2025-12-31")
	filtered, err := repo.ListByPet(ctx, "p1", healthevents.ListFilter{
		Types: []healthevents.EventType{healthevents.TypeVaccine, healthevents.TypeVetVisit},
		From:  &from,
		To:    &to,
	})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "solo", filtered[0].ID)

	n, err = repo.DeleteGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	n, err = repo.Delete(ctx, "solo")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.GetByID(ctx, "solo")
	assert.ErrorIs(t, err, healthevents.ErrNotFound)
}

func TestEventsRepo_ListByGroupKeepsSeriesOrder(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	seedPet(t, s, "p1")
	repo := NewEventsRepo(s)

	require.NoError(t, repo.CreateBatch(ctx, series("g1", "2024-01-31", healthevents.RecurrenceQuarter)))

	first, err := repo.GetByID(ctx, "g1-a")
	require.NoError(t, err)
	first.Date = mustDate("2025-06-01")
	require.NoError(t, repo.Update(ctx, first))

	group, err := repo.ListByGroup(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, group, 4)
	assert.Equal(t, "g1-a", group[0].ID)
	assert.Equal(t, 0, group[0].Seq)
	assert.Equal(t, "2025-06-01", group[0].Date.Format(dateLayout))
	assert.Equal(t, 3, group[3].Seq)
}

func TestEventsRepo_BatchRollsBack(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	seedPet(t, s, "p1")
	repo := NewEventsRepo(s)

	batch := series("g1", "2024-01-01", healthevents.RecurrenceMonthly)
	batch[3].PetID = "missing-pet"
	require.Error(t, repo.CreateBatch(ctx, batch))

	all, err := repo.ListByPet(ctx, "p1", healthevents.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, repo.CreateBatch(ctx, series("g2", "2024-01-01", healthevents.RecurrenceMonthly)))
	bad := series("g2", "2024-06-01", healthevents.RecurrenceHalf)
	bad[2].PetID = "missing-pet"
	require.Error(t, repo.ReplaceGroup(ctx, "g2", bad))

	group, _ := repo.ListByGroup(ctx, "g2")
	require.Len(t, group, 4)
	assert.Equal(t, healthevents.RecurrenceMonthly, group[0].Recurrence)
}

func TestEventsRepo_CascadeOnPetDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	seedPet(t, s, "p1")
	repo := NewEventsRepo(s)

	require.NoError(t, repo.CreateBatch(ctx, series("g1", "2024-01-01", healthevents.RecurrenceYearly)))
	require.NoError(t, NewPetsRepo(s).Delete(ctx, "p1"))

	group, err := repo.ListByGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Empty(t, group)
}

func TestNotificationsRepo_ReplaceIsWholesale(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationsRepo(openTestStore(t))

	require.NoError(t, repo.ReplaceForUser(ctx, "u1", []notifications.Setting{
		{ID: "s1", Type: notifications.TypeWalk, Enabled: true, Times: []string{"08:00", "18:30"}},
		{ID: "s2", Type: notifications.TypeMeal, Enabled: false, Times: []string{"12:00"}},
	}))
	require.NoError(t, repo.ReplaceForUser(ctx, "u2", []notifications.Setting{
		{ID: "s3", Type: notifications.TypeHealth, Enabled: true, Times: nil},
	}))

	mine, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "u1", mine[0].UserID)

	enabled, err := repo.ListEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, enabled, 2)
	assert.Equal(t, []string{"08:00", "18:30"}, enabled[0].Times)
	assert.Equal(t, []string{}, enabled[1].Times)

	require.NoError(t, repo.ReplaceForUser(ctx, "u1", []notifications.Setting{
		{ID: "s4", Type: notifications.TypeGeneral, Enabled: true, Times: []string{"07:00"}},
	}))
	mine, _ = repo.ListByUser(ctx, "u1")
	require.Len(t, mine, 1)
	assert.Equal(t, "s4", mine[0].ID)

	// Un id duplicado hace fallar el insert: el set anterior se conserva.
	err = repo.ReplaceForUser(ctx, "u1", []notifications.Setting{
		{ID: "dup", Type: notifications.TypeWalk, Times: []string{"09:00"}},
		{ID: "dup", Type: notifications.TypeMeal, Times: []string{"10:00"}},
	})
	require.Error(t, err)
	mine, _ = repo.ListByUser(ctx, "u1")
	require.Len(t, mine, 1)
	assert.Equal(t, "s4", mine[0].ID)
}
