// Package discord provides the bot's Discord surface.
//
// It bridges go-sarah's bot framework with Discord using discordgo for the
// underlying API integration: direct messages are converted into sarah.Input
// and dispatched to the dialogue command, and the /start application command
// opens a configuration session from inside a guild.
package discord
