package notifications

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byUser map[string][]Setting
}

func newTestRepo() *testRepo {
	return &testRepo{byUser: map[string][]Setting{}}
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]Setting, error) {
	return append([]Setting(nil), r.byUser[userID]...), nil
}

func (r *testRepo) ReplaceForUser(ctx context.Context, userID string, settings []Setting) error {
	r.byUser[userID] = append([]Setting(nil), settings...)
	return nil
}

func (r *testRepo) ListEnabled(ctx context.Context) ([]Setting, error) {
	var out []Setting
	for _, items := range r.byUser {
		for _, s := range items {
			if s.Enabled {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo)
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("set-%d", n)
	}
	return svc
}

func TestReplace_ReplacesWholeSet(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Replace(ctx, "u1", []SettingInput{
		{Type: TypeWalk, Enabled: true, Times: []string{"08:00"}},
		{Type: TypeMeal, Enabled: true, Times: []string{"12:00"}},
	})
	require.NoError(t, err)

	saved, err := svc.Replace(ctx, "u1", []SettingInput{
		{Type: TypeHealth, Enabled: false, Times: []string{"20:00"}},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	got, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, TypeHealth, got[0].Type)
	assert.Equal(t, "u1", got[0].UserID)

	_, err = svc.Replace(ctx, "u1", nil)
	require.NoError(t, err)
	got, _ = svc.List(ctx, "u1")
	assert.Empty(t, got)
}

func TestReplace_NormalizesTimesAndType(t *testing.T) {
	svc := newTestService(newTestRepo())

	saved, err := svc.Replace(context.Background(), "u1", []SettingInput{
		{Type: " MEAL ", Enabled: true, Times: []string{"19:00", "12:00", " 12:00", "07:05"}},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, TypeMeal, saved[0].Type)
	assert.Equal(t, []string{"07:05", "12:00", "19:00"}, saved[0].Times)
}

func TestReplace_RejectsBadInputWithoutWriting(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Replace(ctx, "u1", []SettingInput{{Type: TypeWalk, Enabled: true, Times: []string{"08:00"}}})
	require.NoError(t, err)

	_, err = svc.Replace(ctx, "u1", []SettingInput{
		{Type: TypeMeal, Times: []string{"12:00"}},
		{Type: "bath", Times: []string{"13:00"}},
	})
	assert.ErrorIs(t, err, ErrInvalidType)

	for _, bad := range []string{"8:00", "24:00", "12:60", "noon", ""} {
		_, err = svc.Replace(ctx, "u1", []SettingInput{{Type: TypeMeal, Times: []string{bad}}})
		assert.ErrorIs(t, err, ErrInvalidTime, bad)
	}

	got, _ := svc.List(ctx, "u1")
	require.Len(t, got, 1)
	assert.Equal(t, TypeWalk, got[0].Type)

	_, err = svc.Replace(ctx, " ", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRender_EveryTypeHasContent(t *testing.T) {
	for _, typ := range []Type{TypeWalk, TypeMeal, TypeHealth, TypeGeneral, "legacy_bath"} {
		m := Render(typ)
		assert.NotEmpty(t, m.Subject, typ)
		assert.NotEmpty(t, m.Text, typ)
		assert.NotEmpty(t, m.HTML, typ)
		assert.Empty(t, m.To, typ)
	}

	assert.NotEqual(t, Render(TypeWalk).Subject, Render(TypeMeal).Subject)
	assert.Equal(t, Render(TypeGeneral), Render("legacy_bath"))
}
