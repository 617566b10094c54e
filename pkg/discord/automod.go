package discord

import (
	"fmt"
	"regexp"

	"github.com/bwmarrin/discordgo"
)

// Matches unicode emoji ranges and custom Discord emoji (<:name:id>)
var emojiPattern = regexp.MustCompile(`<a?:\w+:\d+>|[\x{1F300}-\x{1FAFF}]|[\x{2600}-\x{27BF}]`)

// handleAutomodMessage removes messages that break the guild's automod
// limits. Runs on every message, before any command handling.
func (b *Bot) handleAutomodMessage(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	ctx, cancel := b.eventContext()
	defer cancel()

	gs, _, err := b.settings.GetOrCreate(ctx, m.GuildID)
	if err != nil || !gs.Automod.Enabled {
		return
	}

	var violation string
	switch {
	case gs.Automod.MaxMentions > 0 && len(m.Mentions) > gs.Automod.MaxMentions:
		violation = fmt.Sprintf("too many mentions (max %d)", gs.Automod.MaxMentions)
	case gs.Automod.MaxEmojis > 0 && countEmojis(m.Content) > gs.Automod.MaxEmojis:
		violation = fmt.Sprintf("too many emojis (max %d)", gs.Automod.MaxEmojis)
	default:
		return
	}

	if err := b.session.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		b.logger.Warn("automod failed to delete message: %v", err)
		return
	}

	notice := fmt.Sprintf("<@%s>, your message was removed: %s.", m.Author.ID, violation)
	if _, err := b.session.ChannelMessageSend(m.ChannelID, notice); err != nil {
		b.logger.Warn("automod failed to send notice: %v", err)
	}
}

func countEmojis(content string) int {
	return len(emojiPattern.FindAllString(content, -1))
}
