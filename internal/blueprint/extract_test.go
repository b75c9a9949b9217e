package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	t.Run("plain conversation is not terminal", func(t *testing.T) {
		_, err := Extract("What would you like to call the server?")
		require.ErrorIs(t, err, ErrNotTerminal)
	})

	t.Run("mentioning json without a fence is not terminal", func(t *testing.T) {
		_, err := Extract("I will eventually produce a json object for you.")
		require.ErrorIs(t, err, ErrNotTerminal)
	})

	t.Run("full blueprint", func(t *testing.T) {
		reply := "```json\n" + `{
  "server_name": "Nova",
  "roles": [{"name": "Admin"}, {"name": "Member"}],
  "categories": [
    {"name": "Main", "channels": [{"name": "general", "type": "text"}]},
    {"name": "Voice Chats", "channels": [{"name": "Lobby", "type": "voice"}]}
  ]
}` + "\n```"

		bp, err := Extract(reply)
		require.NoError(t, err)

		assert.Equal(t, "Nova", bp.ServerName)
		require.Len(t, bp.Roles, 2)
		assert.Equal(t, "Admin", bp.Roles[0].Name)
		require.Len(t, bp.Categories, 2)
		assert.Equal(t, "Main", bp.Categories[0].Name)
		require.Len(t, bp.Categories[0].Channels, 1)
		assert.Equal(t, KindText, bp.Categories[0].Channels[0].Kind())
		assert.Equal(t, KindVoice, bp.Categories[1].Channels[0].Kind())
	})

	t.Run("prose around the fence is ignored", func(t *testing.T) {
		reply := "Here is the final configuration:\n```json\n{\"server_name\": \"X\"}\n```\nLet me know!"

		bp, err := Extract(reply)
		require.NoError(t, err)
		assert.Equal(t, "X", bp.ServerName)
	})

	t.Run("first matching fence wins", func(t *testing.T) {
		reply := "```json\n{\"server_name\": \"First\"}\n```\n```json\n{\"server_name\": \"Second\"}\n```"

		bp, err := Extract(reply)
		require.NoError(t, err)
		assert.Equal(t, "First", bp.ServerName)
	})

	t.Run("missing closing fence", func(t *testing.T) {
		_, err := Extract("```json\n{\"server_name\": \"X\"}")
		require.ErrorIs(t, err, ErrUnclosedFence)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := Extract("```json\n{not valid\n```")
		require.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("truncated object", func(t *testing.T) {
		_, err := Extract("```json\n{\"server_name\": \"X\"\n```")
		require.ErrorIs(t, err, ErrInvalidPayload)
	})

	t.Run("empty object", func(t *testing.T) {
		bp, err := Extract("```json\n{}\n```")
		require.NoError(t, err)
		assert.Empty(t, bp.ServerName)
		assert.Empty(t, bp.Roles)
		assert.Empty(t, bp.Categories)
	})
}

func TestChannel_Kind(t *testing.T) {
	tests := []struct {
		declared string
		want     Kind
	}{
		{declared: "text", want: KindText},
		{declared: "TEXT", want: KindText},
		{declared: "Text", want: KindText},
		{declared: "", want: KindText},
		{declared: "stage", want: KindText},
		{declared: "voice", want: KindVoice},
		{declared: "Voice", want: KindVoice},
		{declared: "VOICE", want: KindVoice},
		{declared: " voice ", want: KindVoice},
	}

	for _, tt := range tests {
		t.Run("type "+tt.declared, func(t *testing.T) {
			ch := Channel{Name: "general", Type: tt.declared}
			assert.Equal(t, tt.want, ch.Kind())
		})
	}
}
