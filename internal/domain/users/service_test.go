package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Upsert(ctx context.Context, u User) (User, error) {
	if prev, ok := r.byID[u.ID]; ok {
		u.CreatedAt = prev.CreatedAt
	}
	r.byID[u.ID] = u
	return u, nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func TestSaveProfile_NormalizesAndKeepsCreatedAt(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	u, err := svc.SaveProfile(context.Background(), "u1", ProfileInput{Email: "  Ana@Example.COM ", Name: " Ana "})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "Ana", u.Name)

	t1 := t0.Add(time.Hour)
	svc.now = func() time.Time { return t1 }
	u, err = svc.SaveProfile(context.Background(), "u1", ProfileInput{Email: "ana@example.org"})
	require.NoError(t, err)
	assert.Equal(t, t0, u.CreatedAt)
	assert.Equal(t, t1, u.UpdatedAt)
	assert.Equal(t, "ana@example.org", u.Email)
}

func TestSaveProfile_RejectsBadEmail(t *testing.T) {
	svc := NewService(newTestRepo())

	for _, email := range []string{"", "   ", "not-an-email"} {
		_, err := svc.SaveProfile(context.Background(), "u1", ProfileInput{Email: email})
		assert.ErrorIs(t, err, ErrInvalidInput, email)
	}

	_, err := svc.SaveProfile(context.Background(), "", ProfileInput{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNotFound)
}
