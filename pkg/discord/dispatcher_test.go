package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/darkangel/imperialbot/internal/logging"
	"github.com/darkangel/imperialbot/internal/types"
	"github.com/darkangel/imperialbot/pkg/commands"
	discordmock "github.com/darkangel/imperialbot/pkg/discord/mock"
	"github.com/darkangel/imperialbot/pkg/entities"
	"github.com/darkangel/imperialbot/pkg/repositories/audit"
	guildRepo "github.com/darkangel/imperialbot/pkg/repositories/guild"
	"github.com/darkangel/imperialbot/pkg/services/settings"
)

type fakeStatus struct {
	disabled bool
	commands int
}

func (f *fakeStatus) IsDisabled() bool { return f.disabled }
func (f *fakeStatus) IncrementCommands() error {
	f.commands++
	return nil
}

type dispatcherFixture struct {
	dispatcher *Dispatcher
	session    *discordmock.Session
	settings   *settings.Service
	status     *fakeStatus
	audit      *audit.MemorySink
	registry   *commands.Registry
}

func newDispatcherFixture(developerID string) *dispatcherFixture {
	session := new(discordmock.Session)
	settingsSvc := settings.NewService(guildRepo.NewMemoryRepository(), "!")
	registry := commands.NewRegistry()
	st := &fakeStatus{}
	sink := audit.NewMemorySink(100)

	d := NewDispatcher(session, registry, settingsSvc, st, sink, logging.NewLogger(logging.ERROR), developerID)
	d.memberPermissions = func(_, _, _ string) (int64, error) {
		return 0, nil
	}

	return &dispatcherFixture{
		dispatcher: d,
		session:    session,
		settings:   settingsSvc,
		status:     st,
		audit:      sink,
		registry:   registry,
	}
}

func message(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ID:        "msg-1",
			GuildID:   "guild-1",
			ChannelID: "channel-1",
			Content:   content,
			Author:    &discordgo.User{ID: "user-1", Username: "Tester"},
		},
	}
}

func TestDispatchExecutesHandler(t *testing.T) {
	f := newDispatcherFixture("")

	var got *commands.Context
	require.NoError(t, f.registry.Register(&commands.Command{
		Name:     "ping",
		Category: entities.CategoryGeneral,
		Handler: func(ctx *commands.Context) error {
			got = ctx
			return nil
		},
	}))

	f.dispatcher.Dispatch(context.Background(), message("!ping one two"))

	require.NotNil(t, got)
	assert.Equal(t, "guild-1", got.GuildID)
	assert.Equal(t, []string{"one", "two"}, got.Args)
	assert.Equal(t, "!", got.Prefix)
	assert.Equal(t, 1, f.status.commands)

	entries := f.audit.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "ping", entries[0].Command)
}

func TestDispatchIgnoresNonPrefix(t *testing.T) {
	f := newDispatcherFixture("")

	called := false
	require.NoError(t, f.registry.Register(&commands.Command{
		Name:     "ping",
		Category: entities.CategoryGeneral,
		Handler:  func(*commands.Context) error { called = true; return nil },
	}))

	f.dispatcher.Dispatch(context.Background(), message("hello there"))
	assert.False(t, called)
	assert.Equal(t, 0, f.status.commands)
}

func TestDispatchIgnoresBots(t *testing.T) {
	f := newDispatcherFixture("")

	called := false
	require.NoError(t, f.registry.Register(&commands.Command{
		Name:     "ping",
		Category: entities.CategoryGeneral,
		Handler:  func(*commands.Context) error { called = true; return nil },
	}))

	m := message("!ping")
	m.Author.Bot = true
	f.dispatcher.Dispatch(context.Background(), m)
	assert.False(t, called)
}

func TestDispatchIgnoresDMs(t *testing.T) {
	f := newDispatcherFixture("")

	called := false
	require.NoError(t, f.registry.Register(&commands.Command{
		Name:     "ping",
		Category: entities.CategoryGeneral,
		Handler:  func(*commands.Context) error { called = true; return nil },
	}))

	m := message("!ping")
	m.GuildID = ""
	f.dispatcher.Dispatch(context.Background(), m)
	assert.False(t, called)
}

func TestDispatchDisabledShortCircuits(t *testing.T) {
	f := newDispatcherFixture("")
	f.status.disabled = true

	called := false
	require.NoError(t, f.registry.Register(&commands.Command{
		Name:     "ping",
		Category: entities.CategoryGeneral,
		Handler:  func(*commands.Context) error { called = true; return nil },
	}))

	f.dispatcher.Dispatch(context.Background(), message("!ping"))
	assert.False(t, called)
}

func TestDispatchUsesGuildPrefix(t *testing.T) {
	f := newDispatcherFixture("")
	ctx := context.Background()

	_, err := f.settings.SetPrefix(ctx, "guild-1", "?")
	require.NoError(t, err)

	called := false
	require.NoError(t, f.registry.Register(&commands.Command{
		Name:     "ping",
		Category: entities.CategoryGeneral,
		Handler:  func(*commands.Context) error { called = true; return nil },
	}))

	// The global default no longer matches
	f.dispatcher.Dispatch(ctx, message("!ping"))
	assert.False(t, called)

	f.dispatcher.Dispatch(ctx, message("?ping"))
	assert.True(t, called)
}

func TestDispatchChannelRestrictionBlocks(t *testing.T) {
	f := newDispatcherFixture("")
	ctx := context.Background()

	_, err := f.settings.SetRestrictedChannel(ctx, "guild-1", entities.CategoryGames, "games-channel")
	require.NoError(t, err)

	called := false
	require.NoError(t, f.registry.Register(&commands.Command{
		Name:     "slots",
		Category: entities.CategoryGames,
		Handler:  func(*commands.Context) error { called = true; return nil },
	}))

	f.session.On("ChannelMessageSendEmbed", "channel-1", mock.Anything).Return(&discordgo.Message{}, nil)

	f.dispatcher.Dispatch(ctx, message("!slots 50"))

	assert.False(t, called)
	// Restricted commands never bump the counter
	assert.Equal(t, 0, f.status.commands)
	f.session.AssertCalled(t, "ChannelMessageSendEmbed", "channel-1", mock.Anything)
}

func TestDispatchRestrictionAllowsMatchingChannel(t *testing.T) {
	f := newDispatcherFixture("")
	ctx := context.Background()

	_, err := f.settings.SetRestrictedChannel(ctx, "guild-1", entities.CategoryGames, "channel-1")
	require.NoError(t, err)

	called := false
	require.NoError(t, f.registry.Register(&commands.Command{
		Name:     "slots",
		Category: entities.CategoryGames,
		Handler:  func(*commands.Context) error { called = true; return nil },
	}))

	f.dispatcher.Dispatch(ctx, message("!slots 50"))
	assert.True(t, called)
}

func TestDispatchPermissionDenied(t *testing.T) {
	f := newDispatcherFixture("")

	called := false
	require.NoError(t, f.registry.Register(&commands.Command{
		Name:        "ban",
		Category:    entities.CategoryModeration,
		Permissions: discordgo.PermissionBanMembers,
		Handler:     func(*commands.Context) error { called = true; return nil },
	}))

	f.session.On("ChannelMessageSendEmbed", "channel-1", mock.Anything).Return(&discordgo.Message{}, nil)

	f.dispatcher.Dispatch(context.Background(), message("!ban <@2>"))
	assert.False(t, called)
}

func TestDispatchDeveloperBypassesPermissions(t *testing.T) {
	f := newDispatcherFixture("user-1")

	called := false
	require.NoError(t, f.registry.Register(&commands.Command{
		Name:        "ban",
		Category:    entities.CategoryModeration,
		Permissions: discordgo.PermissionBanMembers,
		Handler:     func(*commands.Context) error { called = true; return nil },
	}))

	f.dispatcher.Dispatch(context.Background(), message("!ban <@2>"))
	assert.True(t, called)
}

func TestDispatchCooldown(t *testing.T) {
	f := newDispatcherFixture("")

	calls := 0
	require.NoError(t, f.registry.Register(&commands.Command{
		Name:     "slots",
		Category: entities.CategoryGames,
		Cooldown: time.Minute,
		Handler:  func(*commands.Context) error { calls++; return nil },
	}))

	f.session.On("ChannelMessageSendEmbed", "channel-1", mock.Anything).Return(&discordgo.Message{}, nil)

	f.dispatcher.Dispatch(context.Background(), message("!slots 50"))
	f.dispatcher.Dispatch(context.Background(), message("!slots 50"))

	assert.Equal(t, 1, calls)
}

func TestDispatchHandlerErrorRepliesOnce(t *testing.T) {
	f := newDispatcherFixture("")

	require.NoError(t, f.registry.Register(&commands.Command{
		Name:     "broken",
		Category: entities.CategoryGeneral,
		Handler: func(*commands.Context) error {
			return types.NewCommandError(types.ErrInvalidArgument, "Bad input.")
		},
	}))

	f.session.On("ChannelMessageSendEmbed", "channel-1", mock.MatchedBy(func(e *discordgo.MessageEmbed) bool {
		return e.Description == "Bad input."
	})).Return(&discordgo.Message{}, nil)

	f.dispatcher.Dispatch(context.Background(), message("!broken"))

	f.session.AssertNumberOfCalls(t, "ChannelMessageSendEmbed", 1)

	// The failure is still audited
	entries := f.audit.Entries()
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].Error)
}

func TestDispatchInternalErrorIsGeneric(t *testing.T) {
	f := newDispatcherFixture("")

	require.NoError(t, f.registry.Register(&commands.Command{
		Name:     "broken",
		Category: entities.CategoryGeneral,
		Handler: func(*commands.Context) error {
			return errors.New("connection reset")
		},
	}))

	// The raw error text never reaches the user
	f.session.On("ChannelMessageSendEmbed", "channel-1", mock.MatchedBy(func(e *discordgo.MessageEmbed) bool {
		return e.Description == "Something went wrong running that command."
	})).Return(&discordgo.Message{}, nil)

	f.dispatcher.Dispatch(context.Background(), message("!broken"))
	f.session.AssertExpectations(t)
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	f := newDispatcherFixture("")

	require.NoError(t, f.registry.Register(&commands.Command{
		Name:     "boom",
		Category: entities.CategoryGeneral,
		Handler: func(*commands.Context) error {
			panic("unexpected")
		},
	}))

	f.session.On("ChannelMessageSendEmbed", "channel-1", mock.Anything).Return(&discordgo.Message{}, nil)

	assert.NotPanics(t, func() {
		f.dispatcher.Dispatch(context.Background(), message("!boom"))
	})
	f.session.AssertCalled(t, "ChannelMessageSendEmbed", "channel-1", mock.Anything)
}

func TestDispatchUnknownCommandIsSilent(t *testing.T) {
	f := newDispatcherFixture("")

	f.dispatcher.Dispatch(context.Background(), message("!nosuchcommand"))

	// No reply, no audit, no counter bump
	f.session.AssertNotCalled(t, "ChannelMessageSendEmbed", mock.Anything, mock.Anything)
	assert.Empty(t, f.audit.Entries())
	assert.Equal(t, 0, f.status.commands)
}
