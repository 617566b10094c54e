package guild

import (
	"context"
	"sync"

	"github.com/darkangel/imperialbot/pkg/entities"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	settings map[string]*entities.GuildSettings
	mu       sync.RWMutex
}

// NewMemoryRepository creates a new in-memory guild settings repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		settings: make(map[string]*entities.GuildSettings),
	}
}

// Get retrieves settings by guild ID
func (r *MemoryRepository) Get(ctx context.Context, guildID string) (*entities.GuildSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	settings, exists := r.settings[guildID]
	if !exists {
		return nil, ErrSettingsNotFound
	}

	// Return a copy to prevent concurrent modification
	return cloneSettings(settings), nil
}

// Save creates or updates a settings record
func (r *MemoryRepository) Save(ctx context.Context, settings *entities.GuildSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings[settings.GuildID] = cloneSettings(settings)
	return nil
}

// Update applies fn to the stored record while holding the write lock
func (r *MemoryRepository) Update(ctx context.Context, guildID string, fn func(*entities.GuildSettings) error) (*entities.GuildSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings, exists := r.settings[guildID]
	if !exists {
		return nil, ErrSettingsNotFound
	}

	if err := fn(settings); err != nil {
		return nil, err
	}

	return cloneSettings(settings), nil
}

// Close implements Repository
func (r *MemoryRepository) Close() error {
	return nil
}

// cloneSettings deep-copies a settings record so callers never share the
// stored maps
func cloneSettings(s *entities.GuildSettings) *entities.GuildSettings {
	c := *s

	c.RestrictedChannels = make(map[entities.Category]string, len(s.RestrictedChannels))
	for k, v := range s.RestrictedChannels {
		c.RestrictedChannels[k] = v
	}

	c.CustomMessages = make(map[entities.ModAction]string, len(s.CustomMessages))
	for k, v := range s.CustomMessages {
		c.CustomMessages[k] = v
	}

	return &c
}
