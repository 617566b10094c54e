package discord

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/darkangel/imperialbot/internal/config"
	"github.com/darkangel/imperialbot/internal/logging"
	"github.com/darkangel/imperialbot/pkg/commands"
	discordmock "github.com/darkangel/imperialbot/pkg/discord/mock"
	"github.com/darkangel/imperialbot/pkg/repositories/audit"
	guildRepo "github.com/darkangel/imperialbot/pkg/repositories/guild"
	userRepo "github.com/darkangel/imperialbot/pkg/repositories/user"
	"github.com/darkangel/imperialbot/pkg/services/economy"
	"github.com/darkangel/imperialbot/pkg/services/moderation"
	"github.com/darkangel/imperialbot/pkg/services/settings"
	"github.com/darkangel/imperialbot/pkg/status"
)

type botFixture struct {
	bot      *Bot
	session  *discordmock.Session
	settings *settings.Service
}

func newBotFixture(t *testing.T) *botFixture {
	t.Helper()

	session := new(discordmock.Session)
	settingsSvc := settings.NewService(guildRepo.NewMemoryRepository(), "!")
	users := userRepo.NewMemoryRepository()

	store, err := status.NewStore(filepath.Join(t.TempDir(), "status.json"))
	require.NoError(t, err)

	bot := NewBot(
		session,
		&config.Config{Prefix: "!"},
		settingsSvc,
		economy.NewService(users),
		moderation.NewService(users, settingsSvc),
		store,
		audit.NewMemorySink(10),
		logging.NewLogger(logging.ERROR),
	)

	return &botFixture{bot: bot, session: session, settings: settingsSvc}
}

func adminContext(args ...string) *commands.Context {
	return &commands.Context{
		Ctx:       context.Background(),
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		UserID:    "admin-1",
		UserTag:   "Admin",
		Args:      args,
		Prefix:    "!",
	}
}

func TestAutomodEnableWithLimits(t *testing.T) {
	f := newBotFixture(t)
	f.session.On("ChannelMessageSendEmbed", "channel-1", mock.Anything).Return(&discordgo.Message{}, nil)

	require.NoError(t, f.bot.handleAutomod(adminContext("on", "3", "7")))

	gs, _, err := f.settings.GetOrCreate(context.Background(), "guild-1")
	require.NoError(t, err)
	assert.True(t, gs.Automod.Enabled)
	assert.Equal(t, 3, gs.Automod.MaxMentions)
	assert.Equal(t, 7, gs.Automod.MaxEmojis)
}

func TestAutomodProfanityToggle(t *testing.T) {
	f := newBotFixture(t)
	f.session.On("ChannelMessageSendEmbed", "channel-1", mock.Anything).Return(&discordgo.Message{}, nil)

	require.NoError(t, f.bot.handleAutomod(adminContext("profanity", "on")))

	gs, _, err := f.settings.GetOrCreate(context.Background(), "guild-1")
	require.NoError(t, err)
	assert.True(t, gs.Automod.FilterProfanity)

	require.NoError(t, f.bot.handleAutomod(adminContext("profanity", "off")))

	gs, _, err = f.settings.GetOrCreate(context.Background(), "guild-1")
	require.NoError(t, err)
	assert.False(t, gs.Automod.FilterProfanity)
}

func TestAutomodSpamToggle(t *testing.T) {
	f := newBotFixture(t)
	f.session.On("ChannelMessageSendEmbed", "channel-1", mock.Anything).Return(&discordgo.Message{}, nil)

	require.NoError(t, f.bot.handleAutomod(adminContext("spam", "on")))

	gs, _, err := f.settings.GetOrCreate(context.Background(), "guild-1")
	require.NoError(t, err)
	assert.True(t, gs.Automod.AntiSpam)
}

func TestAutomodTogglesKeepLimits(t *testing.T) {
	f := newBotFixture(t)
	f.session.On("ChannelMessageSendEmbed", "channel-1", mock.Anything).Return(&discordgo.Message{}, nil)

	require.NoError(t, f.bot.handleAutomod(adminContext("on", "3", "7")))
	require.NoError(t, f.bot.handleAutomod(adminContext("spam", "on")))

	gs, _, err := f.settings.GetOrCreate(context.Background(), "guild-1")
	require.NoError(t, err)
	assert.True(t, gs.Automod.Enabled)
	assert.Equal(t, 3, gs.Automod.MaxMentions)
	assert.Equal(t, 7, gs.Automod.MaxEmojis)
	assert.True(t, gs.Automod.AntiSpam)
}

func TestAutomodRejectsUnknownSubcommand(t *testing.T) {
	f := newBotFixture(t)

	err := f.bot.handleAutomod(adminContext("loudness"))
	require.Error(t, err)

	err = f.bot.handleAutomod(adminContext("profanity", "maybe"))
	require.Error(t, err)

	// Nothing was stored
	gs, _, getErr := f.settings.GetOrCreate(context.Background(), "guild-1")
	require.NoError(t, getErr)
	assert.False(t, gs.Automod.FilterProfanity)
}
