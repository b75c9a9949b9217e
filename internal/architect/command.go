package architect

import (
	"context"

	"github.com/oklahomer/go-sarah/v4"

	"architect/internal/discord"
)

// NewCommandProps builds the sarah command that feeds direct messages from
// users mid-dialogue into the Driver. Messages from users without an open
// session never match, so they are ignored without a response.
func NewCommandProps(driver *Driver) *sarah.CommandProps {
	return sarah.NewCommandPropsBuilder().
		BotType(discord.DISCORD).
		Identifier("architect").
		MatchFunc(func(input sarah.Input) bool {
			in, ok := input.(*discord.Input)
			return ok && in.IsDirectMessage() && driver.HasSession(in.UserID())
		}).
		Func(func(ctx context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
			in, ok := input.(*discord.Input)
			if !ok {
				return nil, nil
			}

			channelID, _ := in.ReplyTo().(discord.ChannelID)
			reply := driver.HandleUtterance(ctx, in.UserID(), string(channelID), in.Message())
			if reply == "" {
				return nil, nil
			}
			return discord.NewResponse(input, reply)
		}).
		Instruction("Run /start in a server you administer, then DM me to design its new layout.").
		MustBuild()
}
