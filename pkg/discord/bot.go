package discord

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/darkangel/imperialbot/internal/config"
	"github.com/darkangel/imperialbot/internal/logging"
	"github.com/darkangel/imperialbot/pkg/commands"
	"github.com/darkangel/imperialbot/pkg/meme"
	"github.com/darkangel/imperialbot/pkg/repositories/audit"
	"github.com/darkangel/imperialbot/pkg/services/economy"
	"github.com/darkangel/imperialbot/pkg/services/moderation"
	"github.com/darkangel/imperialbot/pkg/services/settings"
	"github.com/darkangel/imperialbot/pkg/status"
	"github.com/darkangel/imperialbot/pkg/trivia"
)

// Bot ties the session, the command pipeline and the services together
type Bot struct {
	session    Session
	registry   *commands.Registry
	dispatcher *Dispatcher

	settings   *settings.Service
	economy    *economy.Service
	moderation *moderation.Service
	status     *status.Store
	trivia     *trivia.Client
	meme       *meme.Client

	logger      *logging.Logger
	cfg         *config.Config
	rng         *rand.Rand
	startedAt   time.Time
	removeFuncs []func()
}

// NewBot wires the bot and registers the command table
func NewBot(
	session Session,
	cfg *config.Config,
	settingsSvc *settings.Service,
	economySvc *economy.Service,
	moderationSvc *moderation.Service,
	statusStore *status.Store,
	auditSink audit.Sink,
	logger *logging.Logger,
) *Bot {
	registry := commands.NewRegistry()

	b := &Bot{
		session:    session,
		registry:   registry,
		settings:   settingsSvc,
		economy:    economySvc,
		moderation: moderationSvc,
		status:     statusStore,
		trivia:     trivia.NewClient(),
		meme:       meme.NewClient(),
		logger:     logger,
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	b.dispatcher = NewDispatcher(session, registry, settingsSvc, statusStore, auditSink, logger, cfg.DeveloperID)
	b.registerCommands()

	return b
}

// Registry returns the command registry. Used by tests.
func (b *Bot) Registry() *commands.Registry {
	return b.registry
}

// Start opens the gateway connection and installs the event handlers
func (b *Bot) Start() error {
	b.removeFuncs = append(b.removeFuncs,
		b.session.AddHandler(b.handleAutomodMessage),
		b.session.AddHandler(b.dispatcher.HandleMessage),
		b.session.AddHandler(b.handleReady),
		b.session.AddHandler(b.handleGuildMemberAdd),
		b.session.AddHandler(b.handleGuildCreate),
		b.session.AddHandler(b.handleGuildDelete),
	)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening Discord connection: %w", err)
	}

	b.startedAt = time.Now()
	return nil
}

// Stop tears down the gateway connection and marks the bot offline
func (b *Bot) Stop() error {
	for _, remove := range b.removeFuncs {
		if remove != nil {
			remove()
		}
	}
	b.removeFuncs = nil

	if err := b.status.MarkOffline(); err != nil {
		b.logger.Warn("failed to mark status offline: %v", err)
	}

	return b.session.Close()
}

func (b *Bot) handleReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("logged in as %s, serving %d guilds", r.User.Username, len(r.Guilds))

	if err := b.status.MarkOnline(len(r.Guilds)); err != nil {
		b.logger.Warn("failed to mark status online: %v", err)
	}

	if err := b.session.UpdateGameStatus(0, b.cfg.Prefix+"help"); err != nil {
		b.logger.Warn("failed to set presence: %v", err)
	}
}

func (b *Bot) handleGuildCreate(_ *discordgo.Session, _ *discordgo.GuildCreate) {
	b.syncServerCount()
}

func (b *Bot) handleGuildDelete(_ *discordgo.Session, _ *discordgo.GuildDelete) {
	b.syncServerCount()
}

func (b *Bot) syncServerCount() {
	state := b.session.State()
	if state == nil {
		return
	}
	if err := b.status.SetServers(len(state.Guilds)); err != nil {
		b.logger.Warn("failed to sync server count: %v", err)
	}
}

// ensureContext builds a context for event handlers that run outside the
// dispatcher pipeline
func (b *Bot) eventContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
