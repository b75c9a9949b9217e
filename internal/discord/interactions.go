package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"

	"architect/internal/conversation"
)

// StartCommandName is the application command that begins a configuration
// dialogue for the guild it is invoked in.
const StartCommandName = "start"

// User-facing texts for the /start surface. All of them are ephemeral:
// only the invoking user sees them.
const (
	notAdminText       = "Sorry, you must be a server administrator to use this command."
	inProgressText     = "You already have a server configuration process in progress in your DMs!"
	confirmTextFormat  = "I've sent you a DM to get started on re-configuring the '%s' server!"
	dmsForbiddenText   = "I couldn't send you a DM. Please enable your Direct Messages for this server to continue."
	startFailedText    = "An unexpected error occurred while trying to start our conversation."
	commandDescription = "Start configuring this Discord server. Will begin a chat in your DMs"
)

// SessionStarter is the dialogue-side contract the /start surface drives.
// *architect.Driver satisfies this interface.
type SessionStarter interface {
	StartSession(userID, guildID string) error
	AbandonSession(userID string)
}

// interactionSession abstracts the discordgo.Session methods used by the
// StartCommand, so tests can run against a mock.
type interactionSession interface {
	ApplicationCommandCreate(appID string, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// StartCommand serves the /start application command: it gates on the
// administrator permission, opens a dialogue session and greets the user
// in their DMs.
type StartCommand struct {
	session  interactionSession
	starter  SessionStarter
	greeting string
	guildID  string
}

// NewStartCommand creates a StartCommand. commandGuildID scopes the command
// registration to a single guild; leave it empty to register globally.
// greeting is the first DM sent to the user once the session is open.
func NewStartCommand(session *discordgo.Session, starter SessionStarter, greeting, commandGuildID string) *StartCommand {
	return &StartCommand{
		session:  session,
		starter:  starter,
		greeting: greeting,
		guildID:  commandGuildID,
	}
}

// Register creates the application command under the given application ID.
// Call this once the gateway handshake has completed, e.g. from a Ready
// handler, since the application ID is only known then.
func (c *StartCommand) Register(appID string) error {
	_, err := c.session.ApplicationCommandCreate(appID, c.guildID, &discordgo.ApplicationCommand{
		Name:        StartCommandName,
		Description: commandDescription,
	})
	if err != nil {
		return fmt.Errorf("failed to register the %s command: %w", StartCommandName, err)
	}
	return nil
}

// Handle is a discordgo InteractionCreate handler. Attach it with
// session.AddHandler.
func (c *StartCommand) Handle(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().Name != StartCommandName {
		return
	}

	// The command only makes sense inside a guild; Member is nil for DM
	// invocations.
	if i.Member == nil || i.Member.User == nil {
		return
	}
	userID := i.Member.User.ID

	if i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		c.respond(i, notAdminText)
		return
	}

	if err := c.starter.StartSession(userID, i.GuildID); err != nil {
		if errors.Is(err, conversation.ErrSessionExists) {
			c.respond(i, inProgressText)
		} else {
			logger.Errorf("Failed to start a session for user %s: %+v", userID, err)
			c.respond(i, startFailedText)
		}
		return
	}

	guildName := i.GuildID
	if guild, err := c.session.Guild(i.GuildID); err == nil {
		guildName = guild.Name
	}
	c.respond(i, fmt.Sprintf(confirmTextFormat, guildName))

	if err := c.sendGreeting(userID); err != nil {
		// Without a DM channel the dialogue cannot happen; drop the
		// session right away so the user can retry later.
		logger.Warnf("Failed to open the dialogue with user %s: %+v", userID, err)
		c.starter.AbandonSession(userID)

		text := startFailedText
		if isDMForbidden(err) {
			text = dmsForbiddenText
		}
		c.followup(i, text)
	}
}

func (c *StartCommand) sendGreeting(userID string) error {
	dm, err := c.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to create a DM channel: %w", err)
	}
	if _, err := c.session.ChannelMessageSend(dm.ID, c.greeting); err != nil {
		return fmt.Errorf("failed to send the greeting: %w", err)
	}
	return nil
}

func (c *StartCommand) respond(i *discordgo.InteractionCreate, content string) {
	err := c.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.Errorf("Failed to respond to interaction: %+v", err)
	}
}

func (c *StartCommand) followup(i *discordgo.InteractionCreate, content string) {
	_, err := c.session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		logger.Errorf("Failed to send interaction followup: %+v", err)
	}
}

// isDMForbidden reports whether the error is Discord telling us the user
// does not accept direct messages.
func isDMForbidden(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	return restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeCannotSendMessagesToThisUser
}
