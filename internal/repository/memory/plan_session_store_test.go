package memory

import (
	"context"
	"testing"
	"time"

	"birthplan-agent-be/internal/repository/contract"
	"birthplan-agent-be/pkg/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFindRoundTrip(t *testing.T) {
	store := NewPlanSessionStore()
	ctx := context.Background()

	s := plan.NewSession()
	s.Stage = plan.StageChooseTheme
	require.NoError(t, store.Create(ctx, s))

	got, err := store.Find(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, plan.StageChooseTheme, got.Stage)
}

func TestFindUnknownReturnsNil(t *testing.T) {
	store := NewPlanSessionStore()

	got, err := store.Find(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindReturnsCopy(t *testing.T) {
	store := NewPlanSessionStore()
	ctx := context.Background()

	s := plan.NewSession()
	require.NoError(t, store.Create(ctx, s))

	first, err := store.Find(ctx, s.ID)
	require.NoError(t, err)
	first.Themes = append(first.Themes, plan.Theme{Name: "Pijnbestrijding"})

	second, err := store.Find(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, second.Themes, "mutating a returned session must not touch the stored one")
}

func TestUpdateBumpsVersion(t *testing.T) {
	store := NewPlanSessionStore()
	ctx := context.Background()

	s := plan.NewSession()
	require.NoError(t, store.Create(ctx, s))

	s.Stage = plan.StageChooseTheme
	require.NoError(t, store.Update(ctx, s))
	assert.Equal(t, int64(1), s.Version)

	got, err := store.Find(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, plan.StageChooseTheme, got.Stage)
}

func TestUpdateStaleVersionConflicts(t *testing.T) {
	store := NewPlanSessionStore()
	ctx := context.Background()

	s := plan.NewSession()
	require.NoError(t, store.Create(ctx, s))

	winner, err := store.Find(ctx, s.ID)
	require.NoError(t, err)
	loser, err := store.Find(ctx, s.ID)
	require.NoError(t, err)

	winner.Stage = plan.StageChooseTheme
	require.NoError(t, store.Update(ctx, winner))

	loser.Stage = plan.StageReview
	err = store.Update(ctx, loser)
	assert.ErrorIs(t, err, contract.ErrVersionConflict)

	got, err := store.Find(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.StageChooseTheme, got.Stage, "the stale write must not land")
}

func TestUpdateUnknownSessionConflicts(t *testing.T) {
	store := NewPlanSessionStore()

	s := plan.NewSession()
	err := store.Update(context.Background(), s)
	assert.ErrorIs(t, err, contract.ErrVersionConflict)
}

func TestFindAllNewestFirst(t *testing.T) {
	store := NewPlanSessionStore()
	ctx := context.Background()

	old := plan.NewSession()
	old.UpdatedAt = time.Now().Add(-time.Hour)
	recent := plan.NewSession()
	recent.UpdatedAt = time.Now()
	require.NoError(t, store.Create(ctx, old))
	require.NoError(t, store.Create(ctx, recent))

	all, err := store.FindAll(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, recent.ID, all[0].ID)
	assert.Equal(t, old.ID, all[1].ID)
}

func TestFindAllPagination(t *testing.T) {
	store := NewPlanSessionStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		s := plan.NewSession()
		s.UpdatedAt = time.Now().Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.Create(ctx, s))
	}

	page, err := store.FindAll(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	tail, err := store.FindAll(ctx, 2, 4)
	require.NoError(t, err)
	assert.Len(t, tail, 1)

	beyond, err := store.FindAll(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
