// Package blueprint defines the structured server layout the assistant
// produces at the end of a dialogue, and the extraction of that layout from
// a free-text assistant reply.
package blueprint

import "strings"

// Kind is the type of a channel to create.
type Kind int

const (
	// KindText is a text channel. Unrecognized type strings fall back to text.
	KindText Kind = iota
	// KindVoice is a voice channel.
	KindVoice
)

// Blueprint describes the desired layout of a guild.
// All fields are optional; absent fields leave the corresponding part of the
// guild empty (or, for ServerName, unchanged).
type Blueprint struct {
	ServerName string     `json:"server_name"`
	Roles      []Role     `json:"roles"`
	Categories []Category `json:"categories"`
}

// Role is a role to create.
type Role struct {
	Name string `json:"name"`
}

// Category is a channel category and the channels nested under it.
type Category struct {
	Name     string    `json:"name"`
	Channels []Channel `json:"channels"`
}

// Channel is a channel to create inside a category.
type Channel struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Kind resolves the channel's declared type, case-insensitively.
// "voice" yields KindVoice; anything else, including an absent type, yields
// KindText.
func (c Channel) Kind() Kind {
	if strings.EqualFold(strings.TrimSpace(c.Type), "voice") {
		return KindVoice
	}
	return KindText
}
