package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/darkangel/imperialbot/pkg/entities"
)

var (
	ErrEmptyName      = errors.New("command name must not be empty")
	ErrNilHandler     = errors.New("command handler must not be nil")
	ErrUnknownCommand = errors.New("unknown command")
)

// Context carries everything a handler needs for one invocation
type Context struct {
	Ctx       context.Context
	GuildID   string
	ChannelID string
	UserID    string
	UserTag   string
	Args      []string
	Prefix    string
	MessageID string
}

// Handler executes a command. The returned error is converted to a single
// user-visible reply by the dispatcher.
type Handler func(ctx *Context) error

// Command describes a registered command
type Command struct {
	Name        string
	Aliases     []string
	Category    entities.Category
	Description string
	Usage       string
	Permissions int64 // discordgo permission bits; 0 means everyone
	Cooldown    time.Duration
	Hidden      bool
	Handler     Handler
}

// Registry maps command names and aliases to commands
type Registry struct {
	byName  map[string]*Command
	ordered []*Command
}

// NewRegistry creates an empty command registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Command),
	}
}

// Register adds a command. Name and Handler are required. Registering a name
// that already exists replaces the previous command (last write wins).
func (r *Registry) Register(cmd *Command) error {
	if cmd.Name == "" {
		return ErrEmptyName
	}
	if cmd.Handler == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, cmd.Name)
	}

	if prev, ok := r.byName[cmd.Name]; ok && prev.Name == cmd.Name {
		for i, existing := range r.ordered {
			if existing == prev {
				r.ordered[i] = cmd
				break
			}
		}
		for _, alias := range prev.Aliases {
			delete(r.byName, alias)
		}
	} else {
		r.ordered = append(r.ordered, cmd)
	}

	r.byName[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		// A primary name always beats an alias
		if existing, ok := r.byName[alias]; ok && existing.Name == alias {
			continue
		}
		r.byName[alias] = cmd
	}

	return nil
}

// MustRegister registers a command and panics on a definition error. Used for
// the static command tables built at startup.
func (r *Registry) MustRegister(cmd *Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// Resolve looks a command up by name or alias
func (r *Registry) Resolve(name string) (*Command, error) {
	cmd, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd, nil
}

// ListByCategory returns visible commands in registration order
func (r *Registry) ListByCategory(category entities.Category) []*Command {
	var out []*Command
	for _, cmd := range r.ordered {
		if cmd.Hidden || cmd.Category != category {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// Categories returns the categories that have at least one visible command,
// in first-registration order
func (r *Registry) Categories() []entities.Category {
	seen := make(map[entities.Category]bool)
	var out []entities.Category
	for _, cmd := range r.ordered {
		if cmd.Hidden || seen[cmd.Category] {
			continue
		}
		seen[cmd.Category] = true
		out = append(out, cmd.Category)
	}
	return out
}

// All returns every registered command, hidden included, in registration order
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.ordered))
	copy(out, r.ordered)
	return out
}
