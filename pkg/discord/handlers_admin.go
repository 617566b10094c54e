package discord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/darkangel/imperialbot/internal/types"
	"github.com/darkangel/imperialbot/pkg/commands"
	"github.com/darkangel/imperialbot/pkg/entities"
	"github.com/darkangel/imperialbot/pkg/services/settings"
)

func (b *Bot) handleSettings(ctx *commands.Context) error {
	gs, _, err := b.settings.GetOrCreate(ctx.Ctx, ctx.GuildID)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to load settings", err)
	}

	orNone := func(s string) string {
		if s == "" {
			return "not set"
		}
		return fmt.Sprintf("<#%s>", s)
	}

	embed := NewEmbed(entities.CategoryAdmin, "⚙️ Server Settings", "")
	embed.Fields = []*discordgo.MessageEmbedField{
		field("Prefix", fmt.Sprintf("`%s`", gs.Prefix)),
		field("Welcome channel", orNone(gs.WelcomeChannel)),
		field("Welcome DMs", onOff(gs.WelcomeDMEnabled)),
		field("Moderation logs", orNone(gs.ModerationLogs)),
		field("Automod", onOff(gs.Automod.Enabled)),
	}

	if len(gs.RestrictedChannels) > 0 {
		var sb strings.Builder
		for _, category := range entities.RestrictableCategories {
			if channelID, ok := gs.RestrictedChannels[category]; ok {
				fmt.Fprintf(&sb, "%s → <#%s>\n", category, channelID)
			}
		}
		embed.Fields = append(embed.Fields, field("Restricted channels", sb.String()))
	}

	_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleSetPrefix(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "setprefix <prefix>")
	}

	prefix := ctx.Args[0]
	if len(prefix) > 5 {
		return types.NewCommandError(types.ErrInvalidArgument, "Prefix must be at most 5 characters.")
	}

	if _, err := b.settings.SetPrefix(ctx.Ctx, ctx.GuildID, prefix); err != nil {
		if errors.Is(err, settings.ErrEmptyPrefix) {
			return types.NewCommandError(types.ErrInvalidArgument, "Prefix must not be empty.")
		}
		return types.WrapError(types.ErrDatabaseError, "failed to set prefix", err)
	}

	embed := SuccessEmbed("⚙️ Prefix updated", fmt.Sprintf("Commands now start with `%s`.", prefix))
	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

// handleSetChannel pins a command category to a channel, or lifts the
// restriction with "off"
func (b *Bot) handleSetChannel(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "setchannel <category> [#channel|off]")
	}

	category := entities.Category(strings.ToLower(ctx.Args[0]))

	channelID := ctx.ChannelID
	if len(ctx.Args) > 1 {
		if strings.EqualFold(ctx.Args[1], "off") {
			channelID = ""
		} else if id, ok := parseChannelMention(ctx.Args[1]); ok {
			channelID = id
		} else {
			return types.NewCommandError(types.ErrChannelNotFound, "That doesn't look like a channel.")
		}
	}

	if _, err := b.settings.SetRestrictedChannel(ctx.Ctx, ctx.GuildID, category, channelID); err != nil {
		if errors.Is(err, settings.ErrInvalidCategory) {
			return types.NewCommandError(types.ErrInvalidArgument,
				fmt.Sprintf("Category must be one of: %s.", joinCategories()))
		}
		return types.WrapError(types.ErrDatabaseError, "failed to set channel restriction", err)
	}

	var embed *discordgo.MessageEmbed
	if channelID == "" {
		embed = SuccessEmbed("⚙️ Restriction lifted", fmt.Sprintf("`%s` commands work everywhere again.", category))
	} else {
		embed = SuccessEmbed("⚙️ Channel restricted", fmt.Sprintf("`%s` commands are now locked to <#%s>.", category, channelID))
	}
	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleSetModLogs(ctx *commands.Context) error {
	channelID := ctx.ChannelID
	if len(ctx.Args) > 0 {
		if strings.EqualFold(ctx.Args[0], "off") {
			channelID = ""
		} else if id, ok := parseChannelMention(ctx.Args[0]); ok {
			channelID = id
		} else {
			return types.NewCommandError(types.ErrChannelNotFound, "That doesn't look like a channel.")
		}
	}

	if _, err := b.settings.SetModerationLogs(ctx.Ctx, ctx.GuildID, channelID); err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to set moderation logs", err)
	}

	var embed *discordgo.MessageEmbed
	if channelID == "" {
		embed = SuccessEmbed("⚙️ Moderation logs off", "Moderation actions will no longer be logged.")
	} else {
		embed = SuccessEmbed("⚙️ Moderation logs on", fmt.Sprintf("Logging to <#%s>.", channelID))
	}
	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleCustomMessage(ctx *commands.Context) error {
	if len(ctx.Args) < 2 {
		return usageError(ctx.Prefix, "custommessage <ban|mute|warn|timeout> <template>")
	}

	action := entities.ModAction(strings.ToLower(ctx.Args[0]))
	template := strings.Join(ctx.Args[1:], " ")

	if _, err := b.settings.SetCustomMessage(ctx.Ctx, ctx.GuildID, action, template); err != nil {
		if errors.Is(err, settings.ErrInvalidAction) {
			return types.NewCommandError(types.ErrInvalidArgument, "Action must be ban, mute, warn or timeout.")
		}
		return types.WrapError(types.ErrDatabaseError, "failed to set custom message", err)
	}

	embed := SuccessEmbed("⚙️ Message updated",
		fmt.Sprintf("Custom `%s` announcement saved. Placeholders: {user}, {reason}, {moderator}, {duration}, {warning_id}, {total_warnings}.", action))
	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleResetMessage(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "resetmessage <ban|mute|warn|timeout>")
	}

	action := entities.ModAction(strings.ToLower(ctx.Args[0]))

	if _, err := b.settings.ResetCustomMessage(ctx.Ctx, ctx.GuildID, action); err != nil {
		if errors.Is(err, settings.ErrInvalidAction) {
			return types.NewCommandError(types.ErrInvalidArgument, "Action must be ban, mute, warn or timeout.")
		}
		return types.WrapError(types.ErrDatabaseError, "failed to reset custom message", err)
	}

	embed := SuccessEmbed("⚙️ Message reset", fmt.Sprintf("`%s` announcements are back to the default.", action))
	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleSetWelcome(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "setwelcome <#channel|off> [message]")
	}

	if strings.EqualFold(ctx.Args[0], "off") {
		if _, err := b.settings.SetWelcome(ctx.Ctx, ctx.GuildID, "", ""); err != nil {
			return types.WrapError(types.ErrDatabaseError, "failed to disable welcome messages", err)
		}
		embed := SuccessEmbed("⚙️ Welcome off", "New members will no longer be announced.")
		_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
		return err
	}

	channelID, ok := parseChannelMention(ctx.Args[0])
	if !ok {
		return types.NewCommandError(types.ErrChannelNotFound, "That doesn't look like a channel.")
	}
	message := strings.Join(ctx.Args[1:], " ")

	if _, err := b.settings.SetWelcome(ctx.Ctx, ctx.GuildID, channelID, message); err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to set welcome channel", err)
	}

	embed := SuccessEmbed("⚙️ Welcome on",
		fmt.Sprintf("Greeting new members in <#%s>. Placeholders: {user}, {server}, {memberCount}.", channelID))
	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleWelcomeDM(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "welcomedm <on|off> [message]")
	}

	var enabled bool
	switch strings.ToLower(ctx.Args[0]) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return types.NewCommandError(types.ErrInvalidArgument, "Say `on` or `off`.")
	}

	message := strings.Join(ctx.Args[1:], " ")

	if _, err := b.settings.SetWelcomeDM(ctx.Ctx, ctx.GuildID, enabled, message); err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to update welcome DMs", err)
	}

	embed := SuccessEmbed("⚙️ Welcome DMs "+onOff(enabled), "")
	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleAutomod(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "automod <on|off|profanity|spam> ...")
	}

	gs, _, err := b.settings.GetOrCreate(ctx.Ctx, ctx.GuildID)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to load settings", err)
	}
	automod := gs.Automod

	switch strings.ToLower(ctx.Args[0]) {
	case "on":
		automod.Enabled = true
	case "off":
		automod.Enabled = false
	case "profanity":
		enabled, err := parseOnOff(ctx.Args[1:])
		if err != nil {
			return usageError(ctx.Prefix, "automod profanity <on|off>")
		}
		automod.FilterProfanity = enabled
	case "spam":
		enabled, err := parseOnOff(ctx.Args[1:])
		if err != nil {
			return usageError(ctx.Prefix, "automod spam <on|off>")
		}
		automod.AntiSpam = enabled
	default:
		return types.NewCommandError(types.ErrInvalidArgument,
			"Say `on`, `off`, `profanity <on|off>` or `spam <on|off>`.")
	}

	if strings.EqualFold(ctx.Args[0], "on") || strings.EqualFold(ctx.Args[0], "off") {
		if len(ctx.Args) > 1 {
			if n, err := strconv.Atoi(ctx.Args[1]); err == nil && n > 0 {
				automod.MaxMentions = n
			}
		}
		if len(ctx.Args) > 2 {
			if n, err := strconv.Atoi(ctx.Args[2]); err == nil && n > 0 {
				automod.MaxEmojis = n
			}
		}
	}

	if _, err := b.settings.SetAutomod(ctx.Ctx, ctx.GuildID, automod); err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to update automod", err)
	}

	embed := SuccessEmbed("⚙️ Automod "+onOff(automod.Enabled),
		fmt.Sprintf("Max mentions: %d, max emojis: %d. Profanity filter: %s, anti-spam: %s.",
			automod.MaxMentions, automod.MaxEmojis,
			onOff(automod.FilterProfanity), onOff(automod.AntiSpam)))
	_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

// parseOnOff reads a single on/off argument
func parseOnOff(args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("expected one of on, off")
	}
	switch strings.ToLower(args[0]) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("expected one of on, off")
}

func (b *Bot) handleAnnounce(ctx *commands.Context) error {
	if len(ctx.Args) < 2 {
		return usageError(ctx.Prefix, "announce <#channel> <message>")
	}

	channelID, ok := parseChannelMention(ctx.Args[0])
	if !ok {
		return types.NewCommandError(types.ErrChannelNotFound, "That doesn't look like a channel.")
	}
	message := strings.Join(ctx.Args[1:], " ")

	embed := NewEmbed(entities.CategoryAdmin, "📣 Announcement", message)
	if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		return types.WrapError(types.ErrInternalError, "Failed to post the announcement.", err)
	}

	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID,
		SuccessEmbed("📣 Posted", fmt.Sprintf("Announcement sent to <#%s>.", channelID)))
	return err
}

// handleEmbed posts a custom embed: first | separates title from body
func (b *Bot) handleEmbed(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "embed <title> | <message>")
	}

	raw := strings.Join(ctx.Args, " ")
	title := ""
	body := raw
	if idx := strings.Index(raw, "|"); idx >= 0 {
		title = strings.TrimSpace(raw[:idx])
		body = strings.TrimSpace(raw[idx+1:])
	}
	if body == "" {
		return types.NewCommandError(types.ErrInvalidArgument, "The embed needs a message.")
	}

	embed := NewEmbed(entities.CategoryAdmin, title, body)
	if err := b.session.ChannelMessageDelete(ctx.ChannelID, ctx.MessageID); err != nil {
		b.logger.Debug("could not delete embed command message: %v", err)
	}
	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func joinCategories() string {
	names := make([]string, len(entities.RestrictableCategories))
	for i, c := range entities.RestrictableCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
