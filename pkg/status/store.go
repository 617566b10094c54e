package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/darkangel/imperialbot/pkg/entities"
)

// Store persists the bot status record to a JSON file. A mutex serializes
// every read-modify-write so concurrent callers cannot interleave on the file.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewStore creates a store backed by the given file path
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating status directory: %w", err)
	}
	return &Store{path: path, now: time.Now}, nil
}

// WithClock overrides the time source. Used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Get returns the current status record, or the default when the file is
// missing or unreadable
func (s *Store) Get() *entities.BotStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// read loads the record without locking; callers hold the mutex
func (s *Store) read() *entities.BotStatus {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return entities.NewBotStatus()
	}

	var status entities.BotStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return entities.NewBotStatus()
	}
	return &status
}

// update applies fn under the lock and writes the record back
func (s *Store) update(fn func(*entities.BotStatus)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := s.read()
	fn(status)

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding status: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("error writing status file: %w", err)
	}
	return nil
}

// MarkOnline records the bot coming up, stamping the restart time
func (s *Store) MarkOnline(servers int) error {
	return s.update(func(st *entities.BotStatus) {
		now := s.now()
		st.Status = "online"
		st.LastActive = &now
		st.LastRestart = &now
		st.Servers = servers
	})
}

// MarkOffline records the bot going down
func (s *Store) MarkOffline() error {
	return s.update(func(st *entities.BotStatus) {
		st.Status = "offline"
	})
}

// SetServers updates the guild count
func (s *Store) SetServers(servers int) error {
	return s.update(func(st *entities.BotStatus) {
		st.Servers = servers
	})
}

// IncrementCommands bumps the processed-command counter and touches the
// last-active timestamp
func (s *Store) IncrementCommands() error {
	return s.update(func(st *entities.BotStatus) {
		now := s.now()
		st.Commands++
		st.LastActive = &now
	})
}

// Disable stops command dispatch without stopping the process
func (s *Store) Disable() error {
	return s.update(func(st *entities.BotStatus) {
		st.IsDisabled = true
	})
}

// Enable resumes command dispatch
func (s *Store) Enable() error {
	return s.update(func(st *entities.BotStatus) {
		st.IsDisabled = false
	})
}

// IsDisabled reports whether command dispatch is switched off
func (s *Store) IsDisabled() bool {
	return s.Get().IsDisabled
}

// Reset clears the status file. Used by restart handling.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing status file: %w", err)
	}
	return nil
}
