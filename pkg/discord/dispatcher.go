package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/darkangel/imperialbot/internal/logging"
	"github.com/darkangel/imperialbot/internal/types"
	"github.com/darkangel/imperialbot/pkg/commands"
	"github.com/darkangel/imperialbot/pkg/entities"
	"github.com/darkangel/imperialbot/pkg/repositories/audit"
	"github.com/darkangel/imperialbot/pkg/services/settings"
)

// StatusRecorder is the slice of the status store the dispatcher needs
type StatusRecorder interface {
	IsDisabled() bool
	IncrementCommands() error
}

// Dispatcher routes incoming messages through the command pipeline:
// ignore filter, prefix match, tokenize, resolve, channel restriction,
// permission check, cooldown, execute. The order is fixed.
type Dispatcher struct {
	session     Session
	registry    *commands.Registry
	settings    *settings.Service
	status      StatusRecorder
	audit       audit.Sink
	cooldowns   *CooldownTable
	logger      *logging.Logger
	developerID string

	// overridable for tests; defaults to the session state lookup
	memberPermissions func(guildID, channelID, userID string) (int64, error)
}

// NewDispatcher creates a dispatcher wired to the given collaborators
func NewDispatcher(session Session, registry *commands.Registry, settingsSvc *settings.Service, status StatusRecorder, auditSink audit.Sink, logger *logging.Logger, developerID string) *Dispatcher {
	d := &Dispatcher{
		session:     session,
		registry:    registry,
		settings:    settingsSvc,
		status:      status,
		audit:       auditSink,
		cooldowns:   NewCooldownTable(),
		logger:      logger,
		developerID: developerID,
	}
	d.memberPermissions = func(guildID, channelID, userID string) (int64, error) {
		return session.State().UserChannelPermissions(userID, channelID)
	}
	return d
}

// HandleMessage is the discordgo MessageCreate handler entry point
func (d *Dispatcher) HandleMessage(_ *discordgo.Session, m *discordgo.MessageCreate) {
	d.Dispatch(context.Background(), m)
}

// Dispatch runs one message through the pipeline
func (d *Dispatcher) Dispatch(ctx context.Context, m *discordgo.MessageCreate) {
	// Ignore filter: bots, webhooks and DMs never reach the pipeline
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	if d.status != nil && d.status.IsDisabled() {
		return
	}

	// Prefix match: the guild prefix wins, the global default is the fallback
	prefix := d.settings.Prefix(ctx, m.GuildID)
	if !strings.HasPrefix(m.Content, prefix) {
		return
	}

	// Tokenize
	fields := strings.Fields(m.Content[len(prefix):])
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	// Resolve: unknown commands are ignored silently
	cmd, err := d.registry.Resolve(name)
	if err != nil {
		return
	}

	// Channel restriction
	if err := d.checkRestriction(ctx, cmd, m.GuildID, m.ChannelID); err != nil {
		d.replyError(m.ChannelID, err)
		return
	}

	// Permission check, with the developer bypass
	if err := d.checkPermissions(cmd, m.GuildID, m.ChannelID, m.Author.ID); err != nil {
		d.replyError(m.ChannelID, err)
		return
	}

	// Cooldown
	if remaining, onCooldown := d.cooldowns.Check(cmd.Name, m.Author.ID, cmd.Cooldown); onCooldown {
		d.replyError(m.ChannelID, types.NewCommandError(
			types.ErrOnCooldown,
			fmt.Sprintf("Slow down! Try again in %s.", formatDuration(remaining)),
		))
		return
	}

	d.execute(ctx, cmd, m, args, prefix)
}

func (d *Dispatcher) execute(ctx context.Context, cmd *commands.Command, m *discordgo.MessageCreate, args []string, prefix string) {
	cmdCtx := &commands.Context{
		Ctx:       ctx,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		UserID:    m.Author.ID,
		UserTag:   m.Author.Username,
		Args:      args,
		Prefix:    prefix,
		MessageID: m.ID,
	}

	started := time.Now()
	err := d.runHandler(cmd, cmdCtx)
	d.record(ctx, cmd, m, args, time.Since(started), err)

	if err != nil {
		// External failures are shown to the user but still logged
		if !types.IsUserFacing(err) || types.IsCommandError(err, types.ErrExternalError) {
			d.logger.LogError(err)
		}
		d.replyError(m.ChannelID, err)
	}
}

// runHandler executes the handler, converting a panic into an internal error
func (d *Dispatcher) runHandler(cmd *commands.Command, cmdCtx *commands.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = types.WrapError(
				types.ErrInternalError,
				"Something went wrong running that command.",
				fmt.Errorf("panic in %s: %v", cmd.Name, r),
			)
		}
	}()
	return cmd.Handler(cmdCtx)
}

func (d *Dispatcher) record(ctx context.Context, cmd *commands.Command, m *discordgo.MessageCreate, args []string, duration time.Duration, cmdErr error) {
	if d.status != nil {
		if err := d.status.IncrementCommands(); err != nil {
			d.logger.Warn("failed to bump command counter: %v", err)
		}
	}

	if d.audit == nil {
		return
	}
	entry := audit.NewEntry(m.GuildID, m.Author.ID, cmd.Name, args, duration, cmdErr)
	if err := d.audit.Record(ctx, entry); err != nil {
		d.logger.Warn("failed to record audit entry: %v", err)
	}
}

func (d *Dispatcher) checkRestriction(ctx context.Context, cmd *commands.Command, guildID, channelID string) error {
	if !entities.IsRestrictable(cmd.Category) {
		return nil
	}

	gs, _, err := d.settings.GetOrCreate(ctx, guildID)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to load guild settings", err)
	}

	restricted, ok := gs.RestrictedChannels[cmd.Category]
	if !ok || restricted == "" || restricted == channelID {
		return nil
	}

	return types.NewCommandError(
		types.ErrChannelRestricted,
		fmt.Sprintf("%s commands can only be used in <#%s>.", cmd.Category, restricted),
	)
}

func (d *Dispatcher) checkPermissions(cmd *commands.Command, guildID, channelID, userID string) error {
	if cmd.Permissions == 0 {
		return nil
	}
	if d.developerID != "" && userID == d.developerID {
		return nil
	}

	perms, err := d.memberPermissions(guildID, channelID, userID)
	if err != nil {
		return types.WrapError(types.ErrInternalError, "failed to resolve member permissions", err)
	}

	if perms&discordgo.PermissionAdministrator != 0 {
		return nil
	}
	if perms&cmd.Permissions != cmd.Permissions {
		return types.NewCommandError(
			types.ErrPermissionDenied,
			"You don't have permission to use that command.",
		)
	}
	return nil
}

// replyError sends exactly one user-visible reply for a failed pipeline stage
func (d *Dispatcher) replyError(channelID string, err error) {
	message := "Something went wrong running that command."
	var cmdErr *types.CommandError
	if types.As(err, &cmdErr) && types.IsUserFacing(err) {
		message = cmdErr.Message
	}

	if _, sendErr := d.session.ChannelMessageSendEmbed(channelID, ErrorEmbed(message)); sendErr != nil {
		d.logger.Error("failed to send error reply: %v", sendErr)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Second {
		return "a moment"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
