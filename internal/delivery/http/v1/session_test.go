package v1

import (
	"testing"

	"go-jobtracker-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSessionStore(t *testing.T) {
	t.Run("Should reuse the session across calls for the same user", func(t *testing.T) {
		store := NewSessionStore(nil)
		first := store.Get("user1", "token")
		second := store.Get("user1", "other-token")
		assert.Same(t, first, second)
	})

	t.Run("Should isolate sessions per user", func(t *testing.T) {
		store := NewSessionStore(nil)
		assert.NotSame(t, store.Get("user1", "t"), store.Get("user2", "t"))
	})

	t.Run("Should clear and recreate on the next call", func(t *testing.T) {
		store := NewSessionStore(nil)
		first := store.Get("user1", "t")
		assert.True(t, store.Clear("user1"))
		assert.False(t, store.Clear("user1"))
		assert.NotSame(t, first, store.Get("user1", "t"))
	})
}

func TestGridBuffer(t *testing.T) {
	t.Run("Should queue instructions and clear on drain", func(t *testing.T) {
		buf := newGridBuffer()
		buf.AddRow(domain.ApplicationRecord{ID: "a"}, 0)
		buf.UpdateRow("a", map[string]any{"company": "Acme"})
		buf.ShowSuccess("Saved")

		deltas := buf.Drain()
		assert.Len(t, deltas, 3)
		assert.Equal(t, OpAddRow, deltas[0].Op)
		assert.Equal(t, OpUpdateRow, deltas[1].Op)
		assert.Equal(t, OpShowSuccess, deltas[2].Op)
		assert.Empty(t, buf.Drain())
	})

	t.Run("Should carry the insertion index on add", func(t *testing.T) {
		buf := newGridBuffer()
		buf.AddRow(domain.ApplicationRecord{ID: "a"}, 0)
		deltas := buf.Drain()
		assert.NotNil(t, deltas[0].AtIndex)
		assert.Equal(t, 0, *deltas[0].AtIndex)
	})
}
