package guild

import (
	"context"
	"errors"

	"github.com/darkangel/imperialbot/pkg/entities"
)

var (
	ErrSettingsNotFound = errors.New("guild settings not found")
)

// Repository defines the interface for guild settings storage
type Repository interface {
	// Get retrieves settings by guild ID
	Get(ctx context.Context, guildID string) (*entities.GuildSettings, error)

	// Save creates or updates a settings record
	Save(ctx context.Context, settings *entities.GuildSettings) error

	// Update applies fn to the stored record under the store's lock so
	// read-modify-write sequences never interleave. The record passed to fn
	// is owned by the store for the duration of the call; fn must not retain
	// it.
	Update(ctx context.Context, guildID string, fn func(*entities.GuildSettings) error) (*entities.GuildSettings, error)

	// Close releases any underlying resources
	Close() error
}
