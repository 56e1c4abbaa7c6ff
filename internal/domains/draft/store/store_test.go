package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"trek/internal/domains/draft/model"
	"trek/internal/domains/draft/store"
)

func TestMemoryStore_SaveIsIdempotentOverwrite(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	env := model.Envelope{
		SessionID: "sess-1",
		State:     model.StateDrafting,
		Draft: model.Draft{
			TourID:        "tour-1",
			TravelerCount: 2,
			Email:         "jane@example.com",
		},
	}

	assert.NoError(t, s.Save(ctx, env))
	assert.NoError(t, s.Save(ctx, env))

	loaded, err := s.Load(ctx, "sess-1")
	assert.NoError(t, err)
	assert.Equal(t, env.State, loaded.State)
	assert.Equal(t, env.Draft, loaded.Draft)
}

func TestMemoryStore_LoadMissing(t *testing.T) {
	s := store.NewMemoryStore()

	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	assert.NoError(t, s.Save(ctx, model.Envelope{SessionID: "sess-1"}))
	assert.NoError(t, s.Clear(ctx, "sess-1"))

	_, err := s.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_EmailIndexNormalizes(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	assert.NoError(t, s.IndexEmail(ctx, "  Jane@Example.com ", "sess-1"))

	sessionID, err := s.SessionByEmail(ctx, "jane@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "sess-1", sessionID)

	assert.NoError(t, s.DropEmail(ctx, "JANE@example.com"))

	_, err = s.SessionByEmail(ctx, "jane@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_ClaimTransitionOnce(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	claimed, err := s.ClaimTransition(ctx, "sess-1", "authorize")
	assert.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = s.ClaimTransition(ctx, "sess-1", "authorize")
	assert.NoError(t, err)
	assert.False(t, claimed)

	claimed, err = s.ClaimTransition(ctx, "sess-2", "authorize")
	assert.NoError(t, err)
	assert.True(t, claimed)
}
