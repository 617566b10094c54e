package guild

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/darkangel/imperialbot/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

const createGuildSettingsTableSQL = `
	CREATE TABLE IF NOT EXISTS guild_settings (
		guild_id TEXT PRIMARY KEY,
		prefix TEXT NOT NULL DEFAULT '!',
		welcome_channel TEXT NOT NULL DEFAULT '',
		welcome_message TEXT NOT NULL DEFAULT '',
		welcome_dm_enabled INTEGER NOT NULL DEFAULT 0,
		welcome_dm_message TEXT NOT NULL DEFAULT '',
		restricted_channels TEXT NOT NULL DEFAULT '{}',
		moderation_logs TEXT NOT NULL DEFAULT '',
		custom_messages TEXT NOT NULL DEFAULT '{}',
		automod TEXT NOT NULL DEFAULT '{}'
	)`

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB

	// Serializes Update read-modify-write sequences; SQLite access itself is
	// already safe for concurrent use.
	updateMu sync.Mutex
}

// NewSQLiteRepository creates a new SQLite guild settings repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if _, err := db.Exec(createGuildSettingsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating guild_settings table: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Get retrieves settings by guild ID
func (r *SQLiteRepository) Get(ctx context.Context, guildID string) (*entities.GuildSettings, error) {
	query := `
		SELECT guild_id, prefix, welcome_channel, welcome_message,
			welcome_dm_enabled, welcome_dm_message, restricted_channels,
			moderation_logs, custom_messages, automod
		FROM guild_settings WHERE guild_id = ?`

	var settings entities.GuildSettings
	var restrictedJSON, customJSON, automodJSON string

	err := r.db.QueryRowContext(ctx, query, guildID).Scan(
		&settings.GuildID,
		&settings.Prefix,
		&settings.WelcomeChannel,
		&settings.WelcomeMessage,
		&settings.WelcomeDMEnabled,
		&settings.WelcomeDMMessage,
		&restrictedJSON,
		&settings.ModerationLogs,
		&customJSON,
		&automodJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("error getting guild settings: %w", err)
	}

	if err := json.Unmarshal([]byte(restrictedJSON), &settings.RestrictedChannels); err != nil {
		return nil, fmt.Errorf("error decoding restricted channels: %w", err)
	}
	if err := json.Unmarshal([]byte(customJSON), &settings.CustomMessages); err != nil {
		return nil, fmt.Errorf("error decoding custom messages: %w", err)
	}
	if err := json.Unmarshal([]byte(automodJSON), &settings.Automod); err != nil {
		return nil, fmt.Errorf("error decoding automod settings: %w", err)
	}
	if settings.RestrictedChannels == nil {
		settings.RestrictedChannels = make(map[entities.Category]string)
	}
	if settings.CustomMessages == nil {
		settings.CustomMessages = make(map[entities.ModAction]string)
	}

	return &settings, nil
}

// Save creates or updates a settings record
func (r *SQLiteRepository) Save(ctx context.Context, settings *entities.GuildSettings) error {
	restrictedJSON, err := json.Marshal(settings.RestrictedChannels)
	if err != nil {
		return fmt.Errorf("error encoding restricted channels: %w", err)
	}
	customJSON, err := json.Marshal(settings.CustomMessages)
	if err != nil {
		return fmt.Errorf("error encoding custom messages: %w", err)
	}
	automodJSON, err := json.Marshal(settings.Automod)
	if err != nil {
		return fmt.Errorf("error encoding automod settings: %w", err)
	}

	query := `
		INSERT INTO guild_settings (
			guild_id, prefix, welcome_channel, welcome_message,
			welcome_dm_enabled, welcome_dm_message, restricted_channels,
			moderation_logs, custom_messages, automod
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET
			prefix = excluded.prefix,
			welcome_channel = excluded.welcome_channel,
			welcome_message = excluded.welcome_message,
			welcome_dm_enabled = excluded.welcome_dm_enabled,
			welcome_dm_message = excluded.welcome_dm_message,
			restricted_channels = excluded.restricted_channels,
			moderation_logs = excluded.moderation_logs,
			custom_messages = excluded.custom_messages,
			automod = excluded.automod
	`

	_, err = r.db.ExecContext(ctx, query,
		settings.GuildID,
		settings.Prefix,
		settings.WelcomeChannel,
		settings.WelcomeMessage,
		settings.WelcomeDMEnabled,
		settings.WelcomeDMMessage,
		string(restrictedJSON),
		settings.ModerationLogs,
		string(customJSON),
		string(automodJSON),
	)
	if err != nil {
		return fmt.Errorf("error saving guild settings: %w", err)
	}

	return nil
}

// Update applies fn to the stored record as a serialized get+save
func (r *SQLiteRepository) Update(ctx context.Context, guildID string, fn func(*entities.GuildSettings) error) (*entities.GuildSettings, error) {
	r.updateMu.Lock()
	defer r.updateMu.Unlock()

	settings, err := r.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if err := fn(settings); err != nil {
		return nil, err
	}

	if err := r.Save(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
