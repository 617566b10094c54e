package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/darkangel/imperialbot/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

const (
	createUsersTableSQL = `
	CREATE TABLE IF NOT EXISTS users (
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		balance INTEGER NOT NULL DEFAULT 100,
		bank INTEGER NOT NULL DEFAULT 0,
		inventory TEXT NOT NULL DEFAULT '[]',
		last_daily TEXT,
		last_work TEXT,
		warnings TEXT NOT NULL DEFAULT '[]',
		warning_seq INTEGER NOT NULL DEFAULT 0,
		experience INTEGER NOT NULL DEFAULT 0,
		level INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (guild_id, user_id)
	)`

	createUsersIndexSQL = `
	CREATE INDEX IF NOT EXISTS idx_users_guild_id ON users(guild_id)`
)

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB

	// Serializes read-modify-write sequences across Update and UpdatePair
	updateMu sync.Mutex
}

// NewSQLiteRepository creates a new SQLite ledger repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if _, err := db.Exec(createUsersTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating users table: %w", err)
	}

	if _, err := db.Exec(createUsersIndexSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating users index: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Get retrieves a user record
func (r *SQLiteRepository) Get(ctx context.Context, guildID, userID string) (*entities.UserRecord, error) {
	query := `
		SELECT guild_id, user_id, balance, bank, inventory,
			last_daily, last_work, warnings, warning_seq, experience, level
		FROM users WHERE guild_id = ? AND user_id = ?`

	var record entities.UserRecord
	var inventoryJSON, warningsJSON string
	var lastDaily, lastWork sql.NullString

	err := r.db.QueryRowContext(ctx, query, guildID, userID).Scan(
		&record.GuildID,
		&record.UserID,
		&record.Balance,
		&record.Bank,
		&inventoryJSON,
		&lastDaily,
		&lastWork,
		&warningsJSON,
		&record.WarningSeq,
		&record.Experience,
		&record.Level,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user record: %w", err)
	}

	if err := json.Unmarshal([]byte(inventoryJSON), &record.Inventory); err != nil {
		return nil, fmt.Errorf("error decoding inventory: %w", err)
	}
	if err := json.Unmarshal([]byte(warningsJSON), &record.Warnings); err != nil {
		return nil, fmt.Errorf("error decoding warnings: %w", err)
	}

	record.LastDaily, err = parseNullTime(lastDaily)
	if err != nil {
		return nil, fmt.Errorf("error parsing last_daily: %w", err)
	}
	record.LastWork, err = parseNullTime(lastWork)
	if err != nil {
		return nil, fmt.Errorf("error parsing last_work: %w", err)
	}

	return &record, nil
}

// Save creates or updates a user record
func (r *SQLiteRepository) Save(ctx context.Context, record *entities.UserRecord) error {
	inventoryJSON, err := json.Marshal(record.Inventory)
	if err != nil {
		return fmt.Errorf("error encoding inventory: %w", err)
	}
	warningsJSON, err := json.Marshal(record.Warnings)
	if err != nil {
		return fmt.Errorf("error encoding warnings: %w", err)
	}

	query := `
		INSERT INTO users (
			guild_id, user_id, balance, bank, inventory,
			last_daily, last_work, warnings, warning_seq, experience, level
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(guild_id, user_id) DO UPDATE SET
			balance = excluded.balance,
			bank = excluded.bank,
			inventory = excluded.inventory,
			last_daily = excluded.last_daily,
			last_work = excluded.last_work,
			warnings = excluded.warnings,
			warning_seq = excluded.warning_seq,
			experience = excluded.experience,
			level = excluded.level
	`

	_, err = r.db.ExecContext(ctx, query,
		record.GuildID,
		record.UserID,
		record.Balance,
		record.Bank,
		string(inventoryJSON),
		formatNullTime(record.LastDaily),
		formatNullTime(record.LastWork),
		string(warningsJSON),
		record.WarningSeq,
		record.Experience,
		record.Level,
	)
	if err != nil {
		return fmt.Errorf("error saving user record: %w", err)
	}

	return nil
}

// Update applies fn to the stored record as a serialized get+save
func (r *SQLiteRepository) Update(ctx context.Context, guildID, userID string, fn func(*entities.UserRecord) error) (*entities.UserRecord, error) {
	r.updateMu.Lock()
	defer r.updateMu.Unlock()

	record, err := r.Get(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}

	if err := fn(record); err != nil {
		return nil, err
	}

	if err := r.Save(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// UpdatePair applies fn to two records inside a single transaction
func (r *SQLiteRepository) UpdatePair(ctx context.Context, guildID, userA, userB string, fn func(a, b *entities.UserRecord) error) error {
	r.updateMu.Lock()
	defer r.updateMu.Unlock()

	recordA, err := r.Get(ctx, guildID, userA)
	if err != nil {
		return err
	}
	recordB, err := r.Get(ctx, guildID, userB)
	if err != nil {
		return err
	}

	if err := fn(recordA, recordB); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, record := range []*entities.UserRecord{recordA, recordB} {
		if err := saveTx(ctx, tx, record); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func saveTx(ctx context.Context, tx *sql.Tx, record *entities.UserRecord) error {
	inventoryJSON, err := json.Marshal(record.Inventory)
	if err != nil {
		return fmt.Errorf("error encoding inventory: %w", err)
	}
	warningsJSON, err := json.Marshal(record.Warnings)
	if err != nil {
		return fmt.Errorf("error encoding warnings: %w", err)
	}

	query := `
		UPDATE users SET
			balance = ?, bank = ?, inventory = ?,
			last_daily = ?, last_work = ?, warnings = ?,
			experience = ?, level = ?
		WHERE guild_id = ? AND user_id = ?
	`

	_, err = tx.ExecContext(ctx, query,
		record.Balance,
		record.Bank,
		string(inventoryJSON),
		formatNullTime(record.LastDaily),
		formatNullTime(record.LastWork),
		string(warningsJSON),
		record.Experience,
		record.Level,
		record.GuildID,
		record.UserID,
	)
	if err != nil {
		return fmt.Errorf("error saving user record: %w", err)
	}

	return nil
}

func parseNullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatNullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}
