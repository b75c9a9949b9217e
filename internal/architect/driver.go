// Package architect drives the server-design dialogue: it relays each user
// utterance to the chat completion API, watches the replies for the terminal
// blueprint block, and hands a completed blueprint to the guild builder.
package architect

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"

	"architect/internal/blueprint"
	"architect/internal/brain"
	"architect/internal/builder"
	"architect/internal/conversation"
)

// chatClient abstracts the brain.Client for testing with a scripted fake.
type chatClient interface {
	Chat(ctx context.Context, messages []brain.Message) (string, error)
}

// applier abstracts the builder.Builder for testing with a scripted fake.
type applier interface {
	Apply(ctx context.Context, bp *blueprint.Blueprint, guildID string) (*builder.Result, error)
}

// messenger is the subset of discordgo.Session used to push messages that are
// not direct replies to an input, such as the apply progress notification.
type messenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Driver owns the dialogue sessions and the terminal apply pipeline.
type Driver struct {
	store     *conversation.Store
	brain     chatClient
	builder   applier
	messenger messenger

	// inflight serializes turn handling per user; the bot framework's worker
	// pool may otherwise process two messages from one user concurrently.
	mu       sync.Mutex
	inflight map[string]*sync.Mutex
}

// NewDriver creates a Driver with the given collaborators.
func NewDriver(store *conversation.Store, chat chatClient, build applier, messenger messenger) *Driver {
	return &Driver{
		store:     store,
		brain:     chat,
		builder:   build,
		messenger: messenger,
		inflight:  make(map[string]*sync.Mutex),
	}
}

// HasSession reports whether the user has an open dialogue.
func (d *Driver) HasSession(userID string) bool {
	return d.store.Exists(userID)
}

// StartSession opens a dialogue for the user, bound to the guild to rebuild.
// conversation.ErrSessionExists is returned when one is already open.
func (d *Driver) StartSession(userID, guildID string) error {
	return d.store.Start(userID, guildID, SystemPrompt)
}

// AbandonSession drops the user's dialogue without any notification. Used
// when the conversation cannot proceed, e.g. the greeting DM was refused.
func (d *Driver) AbandonSession(userID string) {
	d.store.End(userID)
}

// HandleUtterance processes one user utterance and returns the text to send
// back on the same channel. An empty return means nothing is to be sent: the
// user has no open session, or the terminal pipeline already notified them.
func (d *Driver) HandleUtterance(ctx context.Context, userID, channelID, text string) string {
	if !d.store.Exists(userID) {
		// Only users mid-dialogue are listened to.
		return ""
	}

	lock := d.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	// The session may have ended while waiting for the lock.
	if err := d.store.Append(userID, brain.Message{Role: brain.RoleUser, Content: text}); err != nil {
		return ""
	}

	history, err := d.store.History(userID)
	if err != nil {
		return ""
	}

	reply, err := d.brain.Chat(ctx, history)
	if err != nil {
		// The fate of the user's last utterance is unknown; the dialogue
		// cannot safely continue.
		logger.Errorf("Chat completion failed for user %s: %+v", userID, err)
		d.store.End(userID)
		return apologyText
	}

	if err := d.store.Append(userID, brain.Message{Role: brain.RoleAssistant, Content: reply}); err != nil {
		return ""
	}

	bp, err := blueprint.Extract(reply)
	switch {
	case errors.Is(err, blueprint.ErrNotTerminal):
		return reply
	case errors.Is(err, blueprint.ErrUnclosedFence):
		logger.Warnf("Assistant reply for user %s has an unclosed blueprint fence", userID)
		return unclosedFenceText
	case err != nil:
		logger.Warnf("Assistant reply for user %s carries an unparsable blueprint: %+v", userID, err)
		return invalidPayloadText
	}

	d.applyBlueprint(ctx, userID, channelID, bp)
	return ""
}

// applyBlueprint runs the terminal pipeline: the session ends regardless of
// how the apply turns out.
func (d *Driver) applyBlueprint(ctx context.Context, userID, channelID string, bp *blueprint.Blueprint) {
	defer d.store.End(userID)

	guildID, err := d.store.GuildID(userID)
	if err != nil {
		return
	}

	d.send(channelID, progressText)

	result, err := d.builder.Apply(ctx, bp, guildID)
	if err != nil {
		logger.Errorf("Reconfiguration of guild %s failed: %+v", guildID, err)
		if errors.Is(err, builder.ErrGuildUnavailable) {
			d.send(channelID, guildGoneText)
		} else {
			d.send(channelID, applyFailedText)
		}
		return
	}

	d.send(channelID, fmt.Sprintf(successTextFormat, result.GuildName))
}

func (d *Driver) send(channelID, content string) {
	if _, err := d.messenger.ChannelMessageSend(channelID, content); err != nil {
		logger.Errorf("Failed to send message to %s: %+v", channelID, err)
	}
}

func (d *Driver) userLock(userID string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()

	lock, ok := d.inflight[userID]
	if !ok {
		lock = &sync.Mutex{}
		d.inflight[userID] = lock
	}
	return lock
}
