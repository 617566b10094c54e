package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/darkangel/imperialbot/pkg/commands"
	"github.com/darkangel/imperialbot/pkg/entities"
)

// registerCommands builds the static command table. Definition mistakes
// panic at startup rather than surfacing at dispatch time.
func (b *Bot) registerCommands() {
	// Economy
	b.registry.MustRegister(&commands.Command{
		Name: "balance", Aliases: []string{"bal", "coins"},
		Category:    entities.CategoryEconomy,
		Description: "Show your wallet and bank balance",
		Usage:       "balance [@user]",
		Handler:     b.handleBalance,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "daily",
		Category:    entities.CategoryEconomy,
		Description: "Claim your daily coin reward",
		Handler:     b.handleDaily,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "work",
		Category:    entities.CategoryEconomy,
		Description: "Work a job for coins",
		Handler:     b.handleWork,
	})
	b.registry.MustRegister(&commands.Command{
		Name: "shop", Aliases: []string{"store"},
		Category:    entities.CategoryEconomy,
		Description: "Browse the item shop",
		Handler:     b.handleShop,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "buy",
		Category:    entities.CategoryEconomy,
		Description: "Buy an item from the shop",
		Usage:       "buy <item> [quantity]",
		Handler:     b.handleBuy,
	})
	b.registry.MustRegister(&commands.Command{
		Name: "inventory", Aliases: []string{"inv"},
		Category:    entities.CategoryEconomy,
		Description: "Show the items you own",
		Handler:     b.handleInventory,
	})
	b.registry.MustRegister(&commands.Command{
		Name: "transfer", Aliases: []string{"pay", "give"},
		Category:    entities.CategoryEconomy,
		Description: "Send coins to another member",
		Usage:       "transfer <@user> <amount>",
		Cooldown:    5 * time.Second,
		Handler:     b.handleTransfer,
	})

	// Games
	b.registry.MustRegister(&commands.Command{
		Name: "coinflip", Aliases: []string{"flip", "cf"},
		Category:    entities.CategoryGames,
		Description: "Flip a coin, optionally betting coins",
		Usage:       "coinflip <heads|tails> [bet]",
		Cooldown:    3 * time.Second,
		Handler:     b.handleCoinflip,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "slots",
		Category:    entities.CategoryGames,
		Description: "Spin the slot machine",
		Usage:       "slots <bet>",
		Cooldown:    5 * time.Second,
		Handler:     b.handleSlots,
	})
	b.registry.MustRegister(&commands.Command{
		Name: "trivia", Aliases: []string{"quiz"},
		Category:    entities.CategoryGames,
		Description: "Answer a trivia question for coins",
		Cooldown:    30 * time.Second,
		Handler:     b.handleTrivia,
	})

	// Fun
	b.registry.MustRegister(&commands.Command{
		Name: "8ball", Aliases: []string{"eightball"},
		Category:    entities.CategoryFun,
		Description: "Ask the magic 8-ball a question",
		Usage:       "8ball <question>",
		Handler:     b.handleEightBall,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "meme",
		Category:    entities.CategoryFun,
		Description: "Fetch a fresh meme",
		Usage:       "meme [subreddit]",
		Cooldown:    5 * time.Second,
		Handler:     b.handleMeme,
	})

	// General
	b.registry.MustRegister(&commands.Command{
		Name:        "ping",
		Category:    entities.CategoryGeneral,
		Description: "Check that the bot is alive",
		Handler:     b.handlePing,
	})
	b.registry.MustRegister(&commands.Command{
		Name: "info", Aliases: []string{"about", "stats"},
		Category:    entities.CategoryGeneral,
		Description: "Show bot information and statistics",
		Handler:     b.handleInfo,
	})
	b.registry.MustRegister(&commands.Command{
		Name: "help", Aliases: []string{"commands"},
		Category:    entities.CategoryGeneral,
		Description: "List commands or explain one",
		Usage:       "help [command]",
		Handler:     b.handleHelp,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "dev",
		Category:    entities.CategoryGeneral,
		Description: "Runtime diagnostics",
		Hidden:      true,
		Handler:     b.handleDev,
	})

	// Moderation
	b.registry.MustRegister(&commands.Command{
		Name:        "ban",
		Category:    entities.CategoryModeration,
		Description: "Ban a member",
		Usage:       "ban <@user> [reason]",
		Permissions: discordgo.PermissionBanMembers,
		Handler:     b.handleBan,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "kick",
		Category:    entities.CategoryModeration,
		Description: "Kick a member",
		Usage:       "kick <@user> [reason]",
		Permissions: discordgo.PermissionKickMembers,
		Handler:     b.handleKick,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "warn",
		Category:    entities.CategoryModeration,
		Description: "Warn a member",
		Usage:       "warn <@user> [reason]",
		Permissions: discordgo.PermissionModerateMembers,
		Handler:     b.handleWarn,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "warnings",
		Category:    entities.CategoryModeration,
		Description: "List a member's warnings",
		Usage:       "warnings [@user]",
		Permissions: discordgo.PermissionModerateMembers,
		Handler:     b.handleWarnings,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "clearwarnings",
		Category:    entities.CategoryModeration,
		Description: "Clear a member's warnings",
		Usage:       "clearwarnings <@user>",
		Permissions: discordgo.PermissionModerateMembers,
		Handler:     b.handleClearWarnings,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "mute",
		Category:    entities.CategoryModeration,
		Description: "Mute a member for a duration",
		Usage:       "mute <@user> <duration> [reason]",
		Permissions: discordgo.PermissionModerateMembers,
		Handler:     b.handleMute,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "unmute",
		Category:    entities.CategoryModeration,
		Description: "Lift a member's mute",
		Usage:       "unmute <@user>",
		Permissions: discordgo.PermissionModerateMembers,
		Handler:     b.handleUnmute,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "timeout",
		Category:    entities.CategoryModeration,
		Description: "Time a member out for a duration",
		Usage:       "timeout <@user> <duration> [reason]",
		Permissions: discordgo.PermissionModerateMembers,
		Handler:     b.handleTimeout,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "slowmode",
		Category:    entities.CategoryModeration,
		Description: "Set the channel's slowmode interval",
		Usage:       "slowmode <seconds>",
		Permissions: discordgo.PermissionManageChannels,
		Handler:     b.handleSlowmode,
	})

	// Admin
	b.registry.MustRegister(&commands.Command{
		Name:        "settings",
		Category:    entities.CategoryAdmin,
		Description: "Show this server's configuration",
		Permissions: discordgo.PermissionManageServer,
		Handler:     b.handleSettings,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "setprefix",
		Category:    entities.CategoryAdmin,
		Description: "Change the command prefix",
		Usage:       "setprefix <prefix>",
		Permissions: discordgo.PermissionManageServer,
		Handler:     b.handleSetPrefix,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "setchannel",
		Category:    entities.CategoryAdmin,
		Description: "Restrict a command category to one channel",
		Usage:       "setchannel <category> [#channel|off]",
		Permissions: discordgo.PermissionManageServer,
		Handler:     b.handleSetChannel,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "setmodlogs",
		Category:    entities.CategoryAdmin,
		Description: "Set the moderation log channel",
		Usage:       "setmodlogs [#channel|off]",
		Permissions: discordgo.PermissionManageServer,
		Handler:     b.handleSetModLogs,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "custommessage",
		Category:    entities.CategoryAdmin,
		Description: "Override a moderation announcement template",
		Usage:       "custommessage <ban|mute|warn|timeout> <template>",
		Permissions: discordgo.PermissionManageServer,
		Handler:     b.handleCustomMessage,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "resetmessage",
		Category:    entities.CategoryAdmin,
		Description: "Restore a moderation announcement template",
		Usage:       "resetmessage <ban|mute|warn|timeout>",
		Permissions: discordgo.PermissionManageServer,
		Handler:     b.handleResetMessage,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "setwelcome",
		Category:    entities.CategoryAdmin,
		Description: "Configure welcome messages",
		Usage:       "setwelcome <#channel|off> [message]",
		Permissions: discordgo.PermissionManageServer,
		Handler:     b.handleSetWelcome,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "welcomedm",
		Category:    entities.CategoryAdmin,
		Description: "Configure welcome DMs",
		Usage:       "welcomedm <on|off> [message]",
		Permissions: discordgo.PermissionManageServer,
		Handler:     b.handleWelcomeDM,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "automod",
		Category:    entities.CategoryAdmin,
		Description: "Configure automatic moderation",
		Usage:       "automod <on|off> [maxmentions] [maxemojis], automod <profanity|spam> <on|off>",
		Permissions: discordgo.PermissionManageServer,
		Handler:     b.handleAutomod,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "announce",
		Category:    entities.CategoryAdmin,
		Description: "Post an announcement embed to a channel",
		Usage:       "announce <#channel> <message>",
		Permissions: discordgo.PermissionManageServer,
		Handler:     b.handleAnnounce,
	})
	b.registry.MustRegister(&commands.Command{
		Name:        "embed",
		Category:    entities.CategoryAdmin,
		Description: "Post a custom embed in this channel",
		Usage:       "embed <title> | <message>",
		Permissions: discordgo.PermissionManageServer,
		Handler:     b.handleEmbed,
	})
}
