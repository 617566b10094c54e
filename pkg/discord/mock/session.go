package mock

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

// Session is a mock implementation of discord.Session
type Session struct {
	mock.Mock
}

// ChannelMessageSend implements discord.Session
func (s *Session) ChannelMessageSend(channelID string, content string) (*discordgo.Message, error) {
	args := s.Called(channelID, content)
	msg, _ := args.Get(0).(*discordgo.Message)
	return msg, args.Error(1)
}

// ChannelMessageSendEmbed implements discord.Session
func (s *Session) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	args := s.Called(channelID, embed)
	msg, _ := args.Get(0).(*discordgo.Message)
	return msg, args.Error(1)
}

// ChannelMessageSendComplex implements discord.Session
func (s *Session) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	args := s.Called(channelID, data)
	msg, _ := args.Get(0).(*discordgo.Message)
	return msg, args.Error(1)
}

// ChannelMessageDelete implements discord.Session
func (s *Session) ChannelMessageDelete(channelID string, messageID string) error {
	args := s.Called(channelID, messageID)
	return args.Error(0)
}

// MessageReactionAdd implements discord.Session
func (s *Session) MessageReactionAdd(channelID string, messageID string, emojiID string) error {
	args := s.Called(channelID, messageID, emojiID)
	return args.Error(0)
}

// UserChannelCreate implements discord.Session
func (s *Session) UserChannelCreate(recipientID string) (*discordgo.Channel, error) {
	args := s.Called(recipientID)
	ch, _ := args.Get(0).(*discordgo.Channel)
	return ch, args.Error(1)
}

// Guild implements discord.Session
func (s *Session) Guild(guildID string) (*discordgo.Guild, error) {
	args := s.Called(guildID)
	g, _ := args.Get(0).(*discordgo.Guild)
	return g, args.Error(1)
}

// GuildMember implements discord.Session
func (s *Session) GuildMember(guildID string, userID string) (*discordgo.Member, error) {
	args := s.Called(guildID, userID)
	m, _ := args.Get(0).(*discordgo.Member)
	return m, args.Error(1)
}

// GuildBanCreateWithReason implements discord.Session
func (s *Session) GuildBanCreateWithReason(guildID string, userID string, reason string, days int) error {
	args := s.Called(guildID, userID, reason, days)
	return args.Error(0)
}

// GuildMemberDeleteWithReason implements discord.Session
func (s *Session) GuildMemberDeleteWithReason(guildID string, userID string, reason string) error {
	args := s.Called(guildID, userID, reason)
	return args.Error(0)
}

// GuildMemberTimeout implements discord.Session
func (s *Session) GuildMemberTimeout(guildID string, userID string, until *time.Time) error {
	args := s.Called(guildID, userID, until)
	return args.Error(0)
}

// ChannelEdit implements discord.Session
func (s *Session) ChannelEdit(channelID string, data *discordgo.ChannelEdit) (*discordgo.Channel, error) {
	args := s.Called(channelID, data)
	ch, _ := args.Get(0).(*discordgo.Channel)
	return ch, args.Error(1)
}

// Open implements discord.Session
func (s *Session) Open() error {
	args := s.Called()
	return args.Error(0)
}

// Close implements discord.Session
func (s *Session) Close() error {
	args := s.Called()
	return args.Error(0)
}

// AddHandler implements discord.Session
func (s *Session) AddHandler(handler interface{}) func() {
	args := s.Called(handler)
	fn, _ := args.Get(0).(func())
	return fn
}

// UpdateGameStatus implements discord.Session
func (s *Session) UpdateGameStatus(idle int, name string) error {
	args := s.Called(idle, name)
	return args.Error(0)
}

// State implements discord.Session
func (s *Session) State() *discordgo.State {
	args := s.Called()
	st, _ := args.Get(0).(*discordgo.State)
	return st
}
