package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"architect/internal/brain"
)

const instruction = "You are the Server Architect."

func TestStore_Start(t *testing.T) {
	t.Run("creates a session seeded with the instruction turn", func(t *testing.T) {
		store := NewStore()

		require.NoError(t, store.Start("user-1", "guild-1", instruction))
		require.True(t, store.Exists("user-1"))

		history, err := store.History("user-1")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, brain.RoleSystem, history[0].Role)
		assert.Equal(t, instruction, history[0].Content)

		guildID, err := store.GuildID("user-1")
		require.NoError(t, err)
		assert.Equal(t, "guild-1", guildID)
	})

	t.Run("second start is rejected without altering the session", func(t *testing.T) {
		store := NewStore()
		require.NoError(t, store.Start("user-1", "guild-1", instruction))
		require.NoError(t, store.Append("user-1", brain.Message{Role: brain.RoleUser, Content: "hi"}))

		err := store.Start("user-1", "guild-2", instruction)
		require.ErrorIs(t, err, ErrSessionExists)

		guildID, err := store.GuildID("user-1")
		require.NoError(t, err)
		assert.Equal(t, "guild-1", guildID)

		history, err := store.History("user-1")
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})

	t.Run("sessions are independent per user", func(t *testing.T) {
		store := NewStore()
		require.NoError(t, store.Start("user-1", "guild-1", instruction))
		require.NoError(t, store.Start("user-2", "guild-2", instruction))

		store.End("user-1")

		assert.False(t, store.Exists("user-1"))
		assert.True(t, store.Exists("user-2"))
	})
}

func TestStore_Append(t *testing.T) {
	t.Run("preserves turn order", func(t *testing.T) {
		store := NewStore()
		require.NoError(t, store.Start("user-1", "guild-1", instruction))

		require.NoError(t, store.Append("user-1", brain.Message{Role: brain.RoleUser, Content: "a gaming server"}))
		require.NoError(t, store.Append("user-1", brain.Message{Role: brain.RoleAssistant, Content: "What should it be called?"}))
		require.NoError(t, store.Append("user-1", brain.Message{Role: brain.RoleUser, Content: "Nova"}))

		history, err := store.History("user-1")
		require.NoError(t, err)

		roles := make([]string, len(history))
		for i, msg := range history {
			roles[i] = msg.Role
		}
		assert.Equal(t, []string{brain.RoleSystem, brain.RoleUser, brain.RoleAssistant, brain.RoleUser}, roles)
	})

	t.Run("fails without a session", func(t *testing.T) {
		store := NewStore()

		err := store.Append("user-1", brain.Message{Role: brain.RoleUser, Content: "hello?"})
		require.ErrorIs(t, err, ErrNoSession)
	})
}

func TestStore_History(t *testing.T) {
	t.Run("returns a copy", func(t *testing.T) {
		store := NewStore()
		require.NoError(t, store.Start("user-1", "guild-1", instruction))

		history, err := store.History("user-1")
		require.NoError(t, err)
		history[0].Content = "mutated"

		fresh, err := store.History("user-1")
		require.NoError(t, err)
		assert.Equal(t, instruction, fresh[0].Content)
	})

	t.Run("fails without a session", func(t *testing.T) {
		store := NewStore()

		_, err := store.History("user-1")
		require.ErrorIs(t, err, ErrNoSession)
	})
}

func TestStore_End(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Start("user-1", "guild-1", instruction))

	store.End("user-1")
	assert.False(t, store.Exists("user-1"))

	// Ending again is a no-op.
	store.End("user-1")

	_, err := store.GuildID("user-1")
	require.ErrorIs(t, err, ErrNoSession)
}
