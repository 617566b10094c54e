package discord

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// handleGuildMemberAdd posts the guild's welcome message and, when enabled,
// a welcome DM
func (b *Bot) handleGuildMemberAdd(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.User == nil || m.User.Bot {
		return
	}

	ctx, cancel := b.eventContext()
	defer cancel()

	gs, _, err := b.settings.GetOrCreate(ctx, m.GuildID)
	if err != nil {
		b.logger.Error("failed to load settings for welcome: %v", err)
		return
	}

	serverName := m.GuildID
	memberCount := 0
	if guild, err := b.session.Guild(m.GuildID); err == nil {
		serverName = guild.Name
		memberCount = guild.MemberCount
	}

	if gs.WelcomeChannel != "" {
		message := FormatWelcome(gs.WelcomeMessage, m.User.Mention(), serverName, memberCount)
		if _, err := b.session.ChannelMessageSend(gs.WelcomeChannel, message); err != nil {
			b.logger.Error("failed to send welcome message: %v", err)
		}
	}

	if gs.WelcomeDMEnabled {
		channel, err := b.session.UserChannelCreate(m.User.ID)
		if err != nil {
			b.logger.Warn("failed to open welcome DM: %v", err)
			return
		}
		message := FormatWelcome(gs.WelcomeDMMessage, m.User.Username, serverName, memberCount)
		if _, err := b.session.ChannelMessageSend(channel.ID, message); err != nil {
			b.logger.Warn("failed to send welcome DM: %v", err)
		}
	}
}

// FormatWelcome substitutes the welcome placeholders into a template
func FormatWelcome(template, user, server string, memberCount int) string {
	r := strings.NewReplacer(
		"{user}", user,
		"{server}", server,
		"{memberCount}", strconv.Itoa(memberCount),
	)
	return r.Replace(template)
}
