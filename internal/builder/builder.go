// Package builder applies a blueprint to a live guild.
//
// The apply procedure is destructive, best-effort and non-transactional: the
// guild is renamed, every existing channel and every deletable role is wiped,
// then the blueprint's roles, categories and channels are created. Individual
// item failures are recorded and skipped rather than aborting the run; only
// a failure to resolve or enumerate the guild stops the procedure.
package builder

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/oklahomer/go-kasumi/logger"

	"architect/internal/blueprint"
)

// DefaultReason is the audit log reason attached to destructive calls.
const DefaultReason = "Server reconfiguration"

// EveryoneRole is the reserved name of the implicit default role. Blueprint
// roles with this name are never created.
const EveryoneRole = "@everyone"

// guildSession is an internal interface that abstracts the discordgo.Session
// methods used by the Builder. This allows mocking the session in tests.
// *discordgo.Session satisfies this interface.
type guildSession interface {
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildEdit(guildID string, g *discordgo.GuildParams, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	ChannelDelete(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildRoleDelete(guildID, roleID string, options ...discordgo.RequestOption) error
	GuildRoleCreate(guildID string, data *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error)
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// Failure records one item-level error encountered during an apply run.
type Failure struct {
	// Kind names the step that failed: "rename", "channel_wipe", "role_wipe",
	// "role_create", "category_create" or "channel_create".
	Kind string

	// Name identifies the item, e.g. the channel or role name.
	Name string

	// Err is the underlying error.
	Err error
}

// Result summarizes an apply run.
type Result struct {
	// OperationID correlates log lines belonging to one run.
	OperationID string

	// GuildName is the guild's name after the rename step.
	GuildName string

	// Failures lists every item-level error, in the order encountered.
	Failures []Failure
}

// Builder performs guild reconfiguration through a Discord session.
type Builder struct {
	session guildSession
}

// New creates a Builder operating on the given Discord session.
func New(session *discordgo.Session) *Builder {
	return &Builder{session: session}
}

// Apply wipes the guild and rebuilds it from the blueprint.
//
// A non-nil error means the procedure stopped before completion — the guild
// could not be resolved, or an enumeration call failed mid-run — and the
// guild may be partially wiped. Otherwise the returned Result lists every
// item-level failure; partial success is deliberate and never rolled back.
func (b *Builder) Apply(ctx context.Context, bp *blueprint.Blueprint, guildID string) (*Result, error) {
	result := &Result{
		OperationID: uuid.NewString(),
	}
	opt := discordgo.WithContext(ctx)

	guild, err := b.session.Guild(guildID, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve guild %s: %w: %v", guildID, ErrGuildUnavailable, err)
	}
	result.GuildName = guild.Name

	logger.Infof("[%s] Starting reconfiguration of guild %q (%s)", result.OperationID, guild.Name, guildID)

	// Rename. A failure here does not stop the run.
	if bp.ServerName != "" {
		_, err := b.session.GuildEdit(guildID, &discordgo.GuildParams{Name: bp.ServerName}, opt)
		if err != nil {
			result.record("rename", bp.ServerName, err)
		} else {
			result.GuildName = bp.ServerName
		}
	}

	if err := b.wipeChannels(guildID, result, opt); err != nil {
		return nil, err
	}
	if err := b.wipeRoles(guildID, result, opt); err != nil {
		return nil, err
	}

	b.createRoles(guildID, bp.Roles, result, opt)
	b.createCategories(guildID, bp.Categories, result, opt)

	logger.Infof("[%s] Reconfiguration finished with %d item failure(s)", result.OperationID, len(result.Failures))
	return result, nil
}

func (b *Builder) wipeChannels(guildID string, result *Result, opt discordgo.RequestOption) error {
	channels, err := b.session.GuildChannels(guildID, opt)
	if err != nil {
		return fmt.Errorf("failed to enumerate channels: %w", err)
	}

	reason := discordgo.WithAuditLogReason(DefaultReason)
	for _, channel := range channels {
		if _, err := b.session.ChannelDelete(channel.ID, opt, reason); err != nil {
			result.record("channel_wipe", channel.Name, err)
		}
	}
	return nil
}

func (b *Builder) wipeRoles(guildID string, result *Result, opt discordgo.RequestOption) error {
	roles, err := b.session.GuildRoles(guildID, opt)
	if err != nil {
		return fmt.Errorf("failed to enumerate roles: %w", err)
	}

	reason := discordgo.WithAuditLogReason(DefaultReason)
	for _, role := range roles {
		// The default role shares its ID with the guild, and managed roles
		// belong to integrations; neither can be deleted.
		if role.ID == guildID || role.Managed {
			continue
		}
		if err := b.session.GuildRoleDelete(guildID, role.ID, opt, reason); err != nil {
			// Typically a role positioned above the bot's own role.
			result.record("role_wipe", role.Name, err)
		}
	}
	return nil
}

func (b *Builder) createRoles(guildID string, roles []blueprint.Role, result *Result, opt discordgo.RequestOption) {
	for _, role := range roles {
		if role.Name == "" || role.Name == EveryoneRole {
			continue
		}
		if _, err := b.session.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: role.Name}, opt); err != nil {
			result.record("role_create", role.Name, err)
		}
	}
}

func (b *Builder) createCategories(guildID string, categories []blueprint.Category, result *Result, opt discordgo.RequestOption) {
	for _, category := range categories {
		if category.Name == "" {
			continue
		}

		parent, err := b.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
			Name: category.Name,
			Type: discordgo.ChannelTypeGuildCategory,
		}, opt)
		if err != nil {
			// Without the category its channels have no parent; skip them.
			result.record("category_create", category.Name, err)
			continue
		}

		for _, channel := range category.Channels {
			if channel.Name == "" {
				continue
			}

			channelType := discordgo.ChannelTypeGuildText
			if channel.Kind() == blueprint.KindVoice {
				channelType = discordgo.ChannelTypeGuildVoice
			}

			_, err := b.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
				Name:     channel.Name,
				Type:     channelType,
				ParentID: parent.ID,
			}, opt)
			if err != nil {
				result.record("channel_create", channel.Name, err)
			}
		}
	}
}

func (r *Result) record(kind, name string, err error) {
	logger.Warnf("[%s] %s failed for %q: %+v", r.OperationID, kind, name, err)
	r.Failures = append(r.Failures, Failure{Kind: kind, Name: name, Err: err})
}
