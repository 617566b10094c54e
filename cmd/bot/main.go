package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/darkangel/imperialbot/internal/config"
	"github.com/darkangel/imperialbot/internal/logging"
	"github.com/darkangel/imperialbot/pkg/discord"
	"github.com/darkangel/imperialbot/pkg/repositories/audit"
	guildRepo "github.com/darkangel/imperialbot/pkg/repositories/guild"
	userRepo "github.com/darkangel/imperialbot/pkg/repositories/user"
	"github.com/darkangel/imperialbot/pkg/services/economy"
	"github.com/darkangel/imperialbot/pkg/services/moderation"
	"github.com/darkangel/imperialbot/pkg/services/settings"
	"github.com/darkangel/imperialbot/pkg/status"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger(logging.ERROR).Error("failed to load configuration: %v", err)
		os.Exit(1)
	}

	level := logging.INFO
	if cfg.IsDevelopment() {
		level = logging.DEBUG
	}
	logger := logging.NewLogger(level)

	users, guilds, cleanup := buildRepositories(cfg, logger)
	defer cleanup()

	settingsSvc := settings.NewService(guilds, cfg.Prefix)
	economySvc := economy.NewService(users)
	moderationSvc := moderation.NewService(users, settingsSvc)

	statusStore, err := status.NewStore(cfg.StatusFile)
	if err != nil {
		logger.Error("failed to open status store: %v", err)
		os.Exit(1)
	}

	auditSink := buildAuditSink(cfg, logger)
	defer func() {
		if err := auditSink.Close(); err != nil {
			logger.Warn("failed to close audit sink: %v", err)
		}
	}()

	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		logger.Error("failed to create Discord session: %v", err)
		os.Exit(1)
	}

	bot := discord.NewBot(session, cfg, settingsSvc, economySvc, moderationSvc, statusStore, auditSink, logger)

	if err := bot.Start(); err != nil {
		logger.Error("failed to start bot: %v", err)
		os.Exit(1)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// /shutdown only flips the disabled flag the dispatcher consults; the
	// process keeps running so /restart can re-enable dispatch. The restart
	// hook additionally cycles the gateway connection.
	server := status.NewServer(cfg.Port, statusStore, status.Controls{
		Restart: func() error {
			logger.Info("restart requested via status API")
			if err := bot.Stop(); err != nil {
				return err
			}
			return bot.Start()
		},
	}, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("status server failed: %v", err)
		}
	}()

	logger.Info("bot is running, press Ctrl+C to exit")
	<-stop

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Warn("error stopping status server: %v", err)
	}
	if err := bot.Stop(); err != nil {
		logger.Warn("error stopping bot: %v", err)
	}
}

// buildRepositories selects the storage backend, falling back to memory when
// SQLite cannot be opened
func buildRepositories(cfg *config.Config, logger *logging.Logger) (userRepo.Repository, guildRepo.Repository, func()) {
	if cfg.StorageType != "sqlite" {
		logger.Info("using in-memory storage (data will be lost on restart)")
		return userRepo.NewMemoryRepository(), guildRepo.NewMemoryRepository(), func() {}
	}

	usersPath := filepath.Join(cfg.DataDir, "users.db")
	guildsPath := filepath.Join(cfg.DataDir, "guilds.db")

	users, err := userRepo.NewSQLiteRepository(usersPath)
	if err != nil {
		logger.Warn("failed to open user database at %s: %v, falling back to memory", usersPath, err)
		return userRepo.NewMemoryRepository(), guildRepo.NewMemoryRepository(), func() {}
	}

	guilds, err := guildRepo.NewSQLiteRepository(guildsPath)
	if err != nil {
		logger.Warn("failed to open guild database at %s: %v, falling back to memory", guildsPath, err)
		if closeErr := users.Close(); closeErr != nil {
			logger.Warn("failed to close user database: %v", closeErr)
		}
		return userRepo.NewMemoryRepository(), guildRepo.NewMemoryRepository(), func() {}
	}

	logger.Info("using SQLite storage under %s", cfg.DataDir)
	cleanup := func() {
		if err := users.Close(); err != nil {
			logger.Warn("failed to close user database: %v", err)
		}
		if err := guilds.Close(); err != nil {
			logger.Warn("failed to close guild database: %v", err)
		}
	}
	return users, guilds, cleanup
}

// buildAuditSink wires the Elasticsearch sink when configured, otherwise a
// bounded in-memory ring
func buildAuditSink(cfg *config.Config, logger *logging.Logger) audit.Sink {
	if cfg.ElasticsearchURL == "" {
		return audit.NewMemorySink(1000)
	}

	sink, err := audit.NewElasticsearchSink(audit.ElasticsearchConfig{
		URL:      cfg.ElasticsearchURL,
		Username: os.Getenv("ELASTICSEARCH_USERNAME"),
		Password: os.Getenv("ELASTICSEARCH_PASSWORD"),
	})
	if err != nil {
		logger.Warn("failed to connect to Elasticsearch: %v, falling back to in-memory audit", err)
		return audit.NewMemorySink(1000)
	}

	logger.Info("command audit wired to Elasticsearch at %s", cfg.ElasticsearchURL)
	return sink
}
