package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/darkangel/imperialbot/pkg/entities"
	guildRepo "github.com/darkangel/imperialbot/pkg/repositories/guild"
)

var (
	ErrInvalidCategory = errors.New("invalid command category")
	ErrInvalidAction   = errors.New("invalid moderation action")
	ErrEmptyPrefix     = errors.New("prefix must not be empty")
)

// Service handles guild settings business logic
type Service struct {
	repo          guildRepo.Repository
	defaultPrefix string
}

// NewService creates a new settings service
func NewService(repo guildRepo.Repository, defaultPrefix string) *Service {
	return &Service{
		repo:          repo,
		defaultPrefix: defaultPrefix,
	}
}

// GetOrCreate retrieves a guild's settings, materializing the default record
// on first access. The materialized record is stored, so a second call
// observes the same record rather than a fresh default.
func (s *Service) GetOrCreate(ctx context.Context, guildID string) (*entities.GuildSettings, bool, error) {
	settings, err := s.repo.Get(ctx, guildID)
	if err == nil {
		return settings, false, nil
	}

	if !errors.Is(err, guildRepo.ErrSettingsNotFound) {
		return nil, false, err
	}

	newSettings := entities.NewGuildSettings(guildID, s.defaultPrefix)
	if err := s.repo.Save(ctx, newSettings); err != nil {
		return nil, false, err
	}

	return newSettings, true, nil
}

// Prefix returns the guild's command prefix, falling back to the global
// default when no record exists yet
func (s *Service) Prefix(ctx context.Context, guildID string) string {
	settings, _, err := s.GetOrCreate(ctx, guildID)
	if err != nil || settings.Prefix == "" {
		return s.defaultPrefix
	}
	return settings.Prefix
}

// SetPrefix updates the guild's command prefix
func (s *Service) SetPrefix(ctx context.Context, guildID, prefix string) (*entities.GuildSettings, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	return s.update(ctx, guildID, func(gs *entities.GuildSettings) error {
		gs.Prefix = prefix
		return nil
	})
}

// SetRestrictedChannel pins a command category to a channel. An empty
// channelID removes the restriction.
func (s *Service) SetRestrictedChannel(ctx context.Context, guildID string, category entities.Category, channelID string) (*entities.GuildSettings, error) {
	if !entities.IsRestrictable(category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}

	return s.update(ctx, guildID, func(gs *entities.GuildSettings) error {
		if gs.RestrictedChannels == nil {
			gs.RestrictedChannels = make(map[entities.Category]string)
		}
		if channelID == "" {
			delete(gs.RestrictedChannels, category)
		} else {
			gs.RestrictedChannels[category] = channelID
		}
		return nil
	})
}

// SetWelcome configures the welcome channel and optional message template.
// An empty channelID disables welcome messages; an empty message keeps the
// current template.
func (s *Service) SetWelcome(ctx context.Context, guildID, channelID, message string) (*entities.GuildSettings, error) {
	return s.update(ctx, guildID, func(gs *entities.GuildSettings) error {
		gs.WelcomeChannel = channelID
		if message != "" {
			gs.WelcomeMessage = message
		}
		return nil
	})
}

// SetWelcomeDM enables or disables welcome DMs and optionally updates the
// DM template
func (s *Service) SetWelcomeDM(ctx context.Context, guildID string, enabled bool, message string) (*entities.GuildSettings, error) {
	return s.update(ctx, guildID, func(gs *entities.GuildSettings) error {
		gs.WelcomeDMEnabled = enabled
		if message != "" {
			gs.WelcomeDMMessage = message
		}
		return nil
	})
}

// SetModerationLogs sets the moderation log channel. An empty channelID
// disables moderation logging.
func (s *Service) SetModerationLogs(ctx context.Context, guildID, channelID string) (*entities.GuildSettings, error) {
	return s.update(ctx, guildID, func(gs *entities.GuildSettings) error {
		gs.ModerationLogs = channelID
		return nil
	})
}

// SetCustomMessage overrides the announcement template for a moderation action
func (s *Service) SetCustomMessage(ctx context.Context, guildID string, action entities.ModAction, message string) (*entities.GuildSettings, error) {
	if !entities.ValidModAction(action) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}

	return s.update(ctx, guildID, func(gs *entities.GuildSettings) error {
		if gs.CustomMessages == nil {
			gs.CustomMessages = make(map[entities.ModAction]string)
		}
		gs.CustomMessages[action] = message
		return nil
	})
}

// ResetCustomMessage restores the default announcement for a moderation action
func (s *Service) ResetCustomMessage(ctx context.Context, guildID string, action entities.ModAction) (*entities.GuildSettings, error) {
	if !entities.ValidModAction(action) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}

	return s.update(ctx, guildID, func(gs *entities.GuildSettings) error {
		delete(gs.CustomMessages, action)
		return nil
	})
}

// SetAutomod replaces the guild's automod configuration
func (s *Service) SetAutomod(ctx context.Context, guildID string, automod entities.AutomodSettings) (*entities.GuildSettings, error) {
	return s.update(ctx, guildID, func(gs *entities.GuildSettings) error {
		gs.Automod = automod
		return nil
	})
}

// update materializes the record if needed, then applies fn under the
// repository's lock
func (s *Service) update(ctx context.Context, guildID string, fn func(*entities.GuildSettings) error) (*entities.GuildSettings, error) {
	if _, _, err := s.GetOrCreate(ctx, guildID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, guildID, fn)
}
