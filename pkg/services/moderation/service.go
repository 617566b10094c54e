package moderation

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/darkangel/imperialbot/pkg/entities"
	userRepo "github.com/darkangel/imperialbot/pkg/repositories/user"
	"github.com/darkangel/imperialbot/pkg/services/settings"
)

// Default announcement templates by action. Guild custom messages override
// these per action.
var defaultMessages = map[entities.ModAction]string{
	entities.ModActionBan:     "🔨 {user} has been banned. Reason: {reason}",
	entities.ModActionMute:    "🔇 {user} has been muted for {duration}. Reason: {reason}",
	entities.ModActionWarn:    "⚠️ {user} has been warned (warning #{warning_id}, {total_warnings} total). Reason: {reason}",
	entities.ModActionTimeout: "⏳ {user} has been timed out for {duration}. Reason: {reason}",
}

// MessageContext carries the values substituted into announcement templates
type MessageContext struct {
	User          string
	Reason        string
	Moderator     string
	Duration      string
	WarningID     int
	TotalWarnings int
}

// Service handles warnings and moderation announcements
type Service struct {
	users    userRepo.Repository
	settings *settings.Service
	now      func() time.Time
}

// NewService creates a new moderation service
func NewService(users userRepo.Repository, settingsSvc *settings.Service) *Service {
	return &Service{
		users:    users,
		settings: settingsSvc,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Warn records a warning against a user and returns it together with the
// user's updated total
func (s *Service) Warn(ctx context.Context, guildID, userID, reason, moderatorID, moderatorTag string) (entities.Warning, int, error) {
	if err := s.ensureUser(ctx, guildID, userID); err != nil {
		return entities.Warning{}, 0, err
	}

	var warning entities.Warning
	var total int
	_, err := s.users.Update(ctx, guildID, userID, func(u *entities.UserRecord) error {
		warning = u.AddWarning(reason, moderatorID, moderatorTag, s.now())
		total = len(u.Warnings)
		return nil
	})
	if err != nil {
		return entities.Warning{}, 0, err
	}

	return warning, total, nil
}

// Warnings lists a user's warnings in insertion order
func (s *Service) Warnings(ctx context.Context, guildID, userID string) ([]entities.Warning, error) {
	record, err := s.users.Get(ctx, guildID, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.Warnings, nil
}

// ClearWarnings removes all of a user's warnings and returns how many were
// removed
func (s *Service) ClearWarnings(ctx context.Context, guildID, userID string) (int, error) {
	var removed int
	_, err := s.users.Update(ctx, guildID, userID, func(u *entities.UserRecord) error {
		removed = len(u.Warnings)
		u.Warnings = nil
		return nil
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return removed, nil
}

// ActionMessage renders the announcement for a moderation action, preferring
// the guild's custom template over the built-in default
func (s *Service) ActionMessage(ctx context.Context, guildID string, action entities.ModAction, mc MessageContext) string {
	template := defaultMessages[action]

	if gs, _, err := s.settings.GetOrCreate(ctx, guildID); err == nil {
		if custom, ok := gs.CustomMessages[action]; ok && custom != "" {
			template = custom
		}
	}

	return FormatMessage(template, mc)
}

// FormatMessage substitutes the announcement placeholders into a template
func FormatMessage(template string, mc MessageContext) string {
	r := strings.NewReplacer(
		"{user}", mc.User,
		"{reason}", mc.Reason,
		"{moderator}", mc.Moderator,
		"{duration}", mc.Duration,
		"{warning_id}", strconv.Itoa(mc.WarningID),
		"{total_warnings}", strconv.Itoa(mc.TotalWarnings),
	)
	return r.Replace(template)
}

func (s *Service) ensureUser(ctx context.Context, guildID, userID string) error {
	_, err := s.users.Get(ctx, guildID, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return err
	}
	return s.users.Save(ctx, entities.NewUserRecord(userID, guildID))
}
