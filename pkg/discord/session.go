package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Session defines the interface for Discord session operations
type Session interface {
	// Messaging methods
	ChannelMessageSend(channelID string, content string) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	ChannelMessageDelete(channelID string, messageID string) error
	MessageReactionAdd(channelID string, messageID string, emojiID string) error
	UserChannelCreate(recipientID string) (*discordgo.Channel, error)

	// Guild and member methods
	Guild(guildID string) (*discordgo.Guild, error)
	GuildMember(guildID string, userID string) (*discordgo.Member, error)

	// Moderation methods
	GuildBanCreateWithReason(guildID string, userID string, reason string, days int) error
	GuildMemberDeleteWithReason(guildID string, userID string, reason string) error
	GuildMemberTimeout(guildID string, userID string, until *time.Time) error
	ChannelEdit(channelID string, data *discordgo.ChannelEdit) (*discordgo.Channel, error)

	// Session methods
	Open() error
	Close() error
	AddHandler(handler interface{}) func()
	UpdateGameStatus(idle int, name string) error

	// State methods
	State() *discordgo.State
}

// DiscordSession implements Session using discordgo.Session
type DiscordSession struct {
	*discordgo.Session
}

// NewSession creates a new DiscordSession
func NewSession(token string) (*DiscordSession, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent
	return &DiscordSession{Session: s}, nil
}

// Ensure DiscordSession implements Session
var _ Session = (*DiscordSession)(nil)

// ChannelMessageSend implements Session
func (s *DiscordSession) ChannelMessageSend(channelID string, content string) (*discordgo.Message, error) {
	return s.Session.ChannelMessageSend(channelID, content)
}

// ChannelMessageSendEmbed implements Session
func (s *DiscordSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return s.Session.ChannelMessageSendEmbed(channelID, embed)
}

// ChannelMessageSendComplex implements Session
func (s *DiscordSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	return s.Session.ChannelMessageSendComplex(channelID, data)
}

// ChannelMessageDelete implements Session
func (s *DiscordSession) ChannelMessageDelete(channelID string, messageID string) error {
	return s.Session.ChannelMessageDelete(channelID, messageID)
}

// MessageReactionAdd implements Session
func (s *DiscordSession) MessageReactionAdd(channelID string, messageID string, emojiID string) error {
	return s.Session.MessageReactionAdd(channelID, messageID, emojiID)
}

// UserChannelCreate implements Session
func (s *DiscordSession) UserChannelCreate(recipientID string) (*discordgo.Channel, error) {
	return s.Session.UserChannelCreate(recipientID)
}

// Guild implements Session
func (s *DiscordSession) Guild(guildID string) (*discordgo.Guild, error) {
	return s.Session.Guild(guildID)
}

// GuildMember implements Session
func (s *DiscordSession) GuildMember(guildID string, userID string) (*discordgo.Member, error) {
	return s.Session.GuildMember(guildID, userID)
}

// GuildBanCreateWithReason implements Session
func (s *DiscordSession) GuildBanCreateWithReason(guildID string, userID string, reason string, days int) error {
	return s.Session.GuildBanCreateWithReason(guildID, userID, reason, days)
}

// GuildMemberDeleteWithReason implements Session
func (s *DiscordSession) GuildMemberDeleteWithReason(guildID string, userID string, reason string) error {
	return s.Session.GuildMemberDeleteWithReason(guildID, userID, reason)
}

// GuildMemberTimeout implements Session
func (s *DiscordSession) GuildMemberTimeout(guildID string, userID string, until *time.Time) error {
	return s.Session.GuildMemberTimeout(guildID, userID, until)
}

// ChannelEdit implements Session
func (s *DiscordSession) ChannelEdit(channelID string, data *discordgo.ChannelEdit) (*discordgo.Channel, error) {
	return s.Session.ChannelEdit(channelID, data)
}

// Open implements Session
func (s *DiscordSession) Open() error {
	return s.Session.Open()
}

// Close implements Session
func (s *DiscordSession) Close() error {
	return s.Session.Close()
}

// AddHandler implements Session
func (s *DiscordSession) AddHandler(handler interface{}) func() {
	return s.Session.AddHandler(handler)
}

// UpdateGameStatus implements Session
func (s *DiscordSession) UpdateGameStatus(idle int, name string) error {
	return s.Session.UpdateGameStatus(idle, name)
}

// State implements Session
func (s *DiscordSession) State() *discordgo.State {
	return s.Session.State
}
