package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/voicegate/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()
		_, err := store.Get(ctx, "nobody")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("save and get", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()
		sess := session.Session{
			ID:             uuid.New(),
			UserID:         "buddy",
			Role:           "master",
			StartedAt:      time.Now(),
			LastActivityAt: time.Now(),
			Active:         true,
		}
		require.NoError(t, store.Save(ctx, sess))

		got, err := store.Get(ctx, "buddy")
		require.NoError(t, err)
		assert.Equal(t, sess.ID, got.ID)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()
		require.NoError(t, store.Save(ctx, session.Session{UserID: "buddy"}))
		require.NoError(t, store.Delete(ctx, "buddy"))
		require.NoError(t, store.Delete(ctx, "buddy"))
		assert.Zero(t, store.Len())
	})

	t.Run("empty user id rejected", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()
		_, err := store.Get(ctx, "")
		assert.ErrorIs(t, err, session.ErrEmptyUserID)
		assert.ErrorIs(t, store.Save(ctx, session.Session{}), session.ErrEmptyUserID)
		assert.ErrorIs(t, store.Delete(ctx, ""), session.ErrEmptyUserID)
	})

	t.Run("all returns snapshot", func(t *testing.T) {
		t.Parallel()
		store := session.NewMemoryStore()
		require.NoError(t, store.Save(ctx, session.Session{UserID: "a"}))
		require.NoError(t, store.Save(ctx, session.Session{UserID: "b"}))

		all, err := store.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestPhraseSet(t *testing.T) {
	t.Parallel()

	set := session.NewPhraseSet("Happy Birthday", "  ", "")

	assert.True(t, set.Match("well, HAPPY BIRTHDAY to you"))
	assert.False(t, set.Match("happy new year"))
	assert.False(t, session.NewPhraseSet().Match("anything"))
	assert.Equal(t, []string{"happy birthday"}, set.Phrases())
}
