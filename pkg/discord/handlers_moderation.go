package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/darkangel/imperialbot/internal/types"
	"github.com/darkangel/imperialbot/pkg/commands"
	"github.com/darkangel/imperialbot/pkg/entities"
	"github.com/darkangel/imperialbot/pkg/services/moderation"
)

const maxTimeout = 28 * 24 * time.Hour

func (b *Bot) handleBan(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "ban <@user> [reason]")
	}

	targetID, ok := parseMention(ctx.Args[0])
	if !ok {
		return types.NewCommandError(types.ErrInvalidArgument, "Mention the user to ban.")
	}
	if targetID == ctx.UserID {
		return types.NewCommandError(types.ErrInvalidArgument, "You can't ban yourself.")
	}

	reason := joinReason(ctx.Args[1:])

	if err := b.session.GuildBanCreateWithReason(ctx.GuildID, targetID, reason, 0); err != nil {
		return types.WrapError(types.ErrInternalError, "Failed to ban that user.", err)
	}

	message := b.moderation.ActionMessage(ctx.Ctx, ctx.GuildID, entities.ModActionBan, moderation.MessageContext{
		User:      fmt.Sprintf("<@%s>", targetID),
		Reason:    reason,
		Moderator: fmt.Sprintf("<@%s>", ctx.UserID),
	})

	if _, err := b.session.ChannelMessageSend(ctx.ChannelID, message); err != nil {
		return err
	}

	b.logModeration(ctx, "Ban", targetID, reason, "")
	return nil
}

func (b *Bot) handleKick(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "kick <@user> [reason]")
	}

	targetID, ok := parseMention(ctx.Args[0])
	if !ok {
		return types.NewCommandError(types.ErrInvalidArgument, "Mention the user to kick.")
	}
	if targetID == ctx.UserID {
		return types.NewCommandError(types.ErrInvalidArgument, "You can't kick yourself.")
	}

	reason := joinReason(ctx.Args[1:])

	if err := b.session.GuildMemberDeleteWithReason(ctx.GuildID, targetID, reason); err != nil {
		return types.WrapError(types.ErrInternalError, "Failed to kick that user.", err)
	}

	embed := SuccessEmbed("👢 Kicked", fmt.Sprintf("<@%s> was kicked. Reason: %s", targetID, reason))
	if _, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed); err != nil {
		return err
	}

	b.logModeration(ctx, "Kick", targetID, reason, "")
	return nil
}

func (b *Bot) handleWarn(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "warn <@user> [reason]")
	}

	targetID, ok := parseMention(ctx.Args[0])
	if !ok {
		return types.NewCommandError(types.ErrInvalidArgument, "Mention the user to warn.")
	}

	reason := joinReason(ctx.Args[1:])

	warning, total, err := b.moderation.Warn(ctx.Ctx, ctx.GuildID, targetID, reason, ctx.UserID, ctx.UserTag)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to record warning", err)
	}

	message := b.moderation.ActionMessage(ctx.Ctx, ctx.GuildID, entities.ModActionWarn, moderation.MessageContext{
		User:          fmt.Sprintf("<@%s>", targetID),
		Reason:        reason,
		Moderator:     fmt.Sprintf("<@%s>", ctx.UserID),
		WarningID:     warning.ID,
		TotalWarnings: total,
	})

	if _, err := b.session.ChannelMessageSend(ctx.ChannelID, message); err != nil {
		return err
	}

	b.logModeration(ctx, "Warn", targetID, reason, fmt.Sprintf("warning #%d", warning.ID))
	return nil
}

func (b *Bot) handleWarnings(ctx *commands.Context) error {
	targetID := ctx.UserID
	if len(ctx.Args) > 0 {
		if id, ok := parseMention(ctx.Args[0]); ok {
			targetID = id
		}
	}

	warnings, err := b.moderation.Warnings(ctx.Ctx, ctx.GuildID, targetID)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to load warnings", err)
	}

	if len(warnings) == 0 {
		embed := NewEmbed(entities.CategoryModeration, "⚠️ Warnings", fmt.Sprintf("<@%s> has no warnings.", targetID))
		_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
		return err
	}

	var sb strings.Builder
	for _, w := range warnings {
		fmt.Fprintf(&sb, "**#%d** — %s\nby %s on %s\n\n", w.ID, w.Reason, w.ModeratorTag, w.Timestamp.Format("2006-01-02"))
	}
	embed := NewEmbed(entities.CategoryModeration,
		fmt.Sprintf("⚠️ %d warning(s)", len(warnings)), sb.String())
	_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleClearWarnings(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "clearwarnings <@user>")
	}

	targetID, ok := parseMention(ctx.Args[0])
	if !ok {
		return types.NewCommandError(types.ErrInvalidArgument, "Mention the user to clear.")
	}

	removed, err := b.moderation.ClearWarnings(ctx.Ctx, ctx.GuildID, targetID)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to clear warnings", err)
	}

	embed := SuccessEmbed("🧹 Warnings cleared", fmt.Sprintf("Removed %d warning(s) from <@%s>.", removed, targetID))
	_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

// handleMute applies a Discord timeout; mute and timeout are the same
// mechanism with different announcement templates
func (b *Bot) handleMute(ctx *commands.Context) error {
	return b.timeoutUser(ctx, entities.ModActionMute, "mute <@user> <duration> [reason]")
}

func (b *Bot) handleTimeout(ctx *commands.Context) error {
	return b.timeoutUser(ctx, entities.ModActionTimeout, "timeout <@user> <duration> [reason]")
}

func (b *Bot) timeoutUser(ctx *commands.Context, action entities.ModAction, usage string) error {
	if len(ctx.Args) < 2 {
		return usageError(ctx.Prefix, usage)
	}

	targetID, ok := parseMention(ctx.Args[0])
	if !ok {
		return types.NewCommandError(types.ErrInvalidArgument, "Mention the user to mute.")
	}

	duration, err := time.ParseDuration(ctx.Args[1])
	if err != nil || duration <= 0 || duration > maxTimeout {
		return types.NewCommandError(types.ErrInvalidArgument,
			"Duration must be between 1s and 28 days, like `10m` or `2h`.")
	}

	reason := joinReason(ctx.Args[2:])

	until := time.Now().Add(duration)
	if err := b.session.GuildMemberTimeout(ctx.GuildID, targetID, &until); err != nil {
		return types.WrapError(types.ErrInternalError, "Failed to mute that user.", err)
	}

	message := b.moderation.ActionMessage(ctx.Ctx, ctx.GuildID, action, moderation.MessageContext{
		User:      fmt.Sprintf("<@%s>", targetID),
		Reason:    reason,
		Moderator: fmt.Sprintf("<@%s>", ctx.UserID),
		Duration:  duration.String(),
	})

	if _, err := b.session.ChannelMessageSend(ctx.ChannelID, message); err != nil {
		return err
	}

	b.logModeration(ctx, titleCase(string(action)), targetID, reason, duration.String())
	return nil
}

func (b *Bot) handleUnmute(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "unmute <@user>")
	}

	targetID, ok := parseMention(ctx.Args[0])
	if !ok {
		return types.NewCommandError(types.ErrInvalidArgument, "Mention the user to unmute.")
	}

	if err := b.session.GuildMemberTimeout(ctx.GuildID, targetID, nil); err != nil {
		return types.WrapError(types.ErrInternalError, "Failed to unmute that user.", err)
	}

	embed := SuccessEmbed("🔊 Unmuted", fmt.Sprintf("<@%s> can speak again.", targetID))
	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleSlowmode(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "slowmode <seconds>")
	}

	seconds, err := strconv.Atoi(ctx.Args[0])
	if err != nil || seconds < 0 || seconds > 21600 {
		return types.NewCommandError(types.ErrInvalidArgument, "Seconds must be between 0 and 21600.")
	}

	if _, err := b.session.ChannelEdit(ctx.ChannelID, &discordgo.ChannelEdit{
		RateLimitPerUser: &seconds,
	}); err != nil {
		return types.WrapError(types.ErrInternalError, "Failed to set slowmode.", err)
	}

	var embed *discordgo.MessageEmbed
	if seconds == 0 {
		embed = SuccessEmbed("🐇 Slowmode off", "This channel is back to full speed.")
	} else {
		embed = SuccessEmbed("🐢 Slowmode on", fmt.Sprintf("One message every %d second(s).", seconds))
	}
	_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

// logModeration posts the action to the guild's moderation log channel when
// one is configured
func (b *Bot) logModeration(ctx *commands.Context, action, targetID, reason, extra string) {
	gs, _, err := b.settings.GetOrCreate(ctx.Ctx, ctx.GuildID)
	if err != nil || gs.ModerationLogs == "" {
		return
	}

	embed := NewEmbed(entities.CategoryModeration, "📋 "+action, "")
	embed.Fields = []*discordgo.MessageEmbedField{
		field("User", fmt.Sprintf("<@%s>", targetID)),
		field("Moderator", fmt.Sprintf("<@%s>", ctx.UserID)),
		field("Reason", reason),
	}
	if extra != "" {
		embed.Fields = append(embed.Fields, field("Details", extra))
	}

	if _, err := b.session.ChannelMessageSendEmbed(gs.ModerationLogs, embed); err != nil {
		b.logger.Warn("failed to post moderation log: %v", err)
	}
}

func joinReason(args []string) string {
	reason := strings.Join(args, " ")
	if reason == "" {
		return "No reason provided"
	}
	return reason
}
