package commands

import (
	"testing"

	"github.com/darkangel/imperialbot/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler(ctx *Context) error { return nil }

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry()

	err := r.Register(&Command{Handler: noopHandler})
	assert.ErrorIs(t, err, ErrEmptyName)

	err = r.Register(&Command{Name: "ping"})
	assert.ErrorIs(t, err, ErrNilHandler)
}

func TestResolveByNameAndAlias(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Command{
		Name:     "balance",
		Aliases:  []string{"bal", "coins"},
		Category: entities.CategoryEconomy,
		Handler:  noopHandler,
	}))

	for _, name := range []string{"balance", "bal", "coins"} {
		cmd, err := r.Resolve(name)
		require.NoError(t, err)
		assert.Equal(t, "balance", cmd.Name)
	}

	_, err := r.Resolve("missing")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRegisterLastWriteWins(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Command{
		Name:        "ping",
		Aliases:     []string{"p"},
		Category:    entities.CategoryGeneral,
		Description: "first",
		Handler:     noopHandler,
	}))
	require.NoError(t, r.Register(&Command{
		Name:        "ping",
		Category:    entities.CategoryGeneral,
		Description: "second",
		Handler:     noopHandler,
	}))

	cmd, err := r.Resolve("ping")
	require.NoError(t, err)
	assert.Equal(t, "second", cmd.Description)

	// The replaced command's alias is gone with it
	_, err = r.Resolve("p")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	// Replacement does not duplicate the registration-order entry
	assert.Len(t, r.ListByCategory(entities.CategoryGeneral), 1)
}

func TestPrimaryNameBeatsAlias(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Command{
		Name:     "stats",
		Category: entities.CategoryGeneral,
		Handler:  noopHandler,
	}))
	require.NoError(t, r.Register(&Command{
		Name:     "info",
		Aliases:  []string{"stats"},
		Category: entities.CategoryGeneral,
		Handler:  noopHandler,
	}))

	cmd, err := r.Resolve("stats")
	require.NoError(t, err)
	assert.Equal(t, "stats", cmd.Name)
}

func TestListByCategory(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Command{Name: "daily", Category: entities.CategoryEconomy, Handler: noopHandler}))
	require.NoError(t, r.Register(&Command{Name: "work", Category: entities.CategoryEconomy, Handler: noopHandler}))
	require.NoError(t, r.Register(&Command{Name: "dev", Category: entities.CategoryGeneral, Hidden: true, Handler: noopHandler}))
	require.NoError(t, r.Register(&Command{Name: "ping", Category: entities.CategoryGeneral, Handler: noopHandler}))

	econ := r.ListByCategory(entities.CategoryEconomy)
	require.Len(t, econ, 2)
	assert.Equal(t, "daily", econ[0].Name)
	assert.Equal(t, "work", econ[1].Name)

	// Hidden commands are resolvable but not listed
	general := r.ListByCategory(entities.CategoryGeneral)
	require.Len(t, general, 1)
	assert.Equal(t, "ping", general[0].Name)

	_, err := r.Resolve("dev")
	assert.NoError(t, err)
}

func TestCategories(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Command{Name: "daily", Category: entities.CategoryEconomy, Handler: noopHandler}))
	require.NoError(t, r.Register(&Command{Name: "ping", Category: entities.CategoryGeneral, Handler: noopHandler}))
	require.NoError(t, r.Register(&Command{Name: "work", Category: entities.CategoryEconomy, Handler: noopHandler}))

	assert.Equal(t, []entities.Category{entities.CategoryEconomy, entities.CategoryGeneral}, r.Categories())
}
