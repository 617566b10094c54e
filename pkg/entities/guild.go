package entities

// Category partitions commands for channel restrictions
type Category string

const (
	CategoryEconomy    Category = "economy"
	CategoryGames      Category = "games"
	CategoryFun        Category = "fun"
	CategoryGeneral    Category = "general"
	CategoryModeration Category = "moderation"
	CategoryAdmin      Category = "admin"
)

// RestrictableCategories are the categories that can be pinned to a single
// channel. Moderation and admin commands are never restricted.
var RestrictableCategories = []Category{
	CategoryEconomy,
	CategoryGames,
	CategoryFun,
	CategoryGeneral,
}

// IsRestrictable reports whether the category supports channel restrictions
func IsRestrictable(c Category) bool {
	for _, rc := range RestrictableCategories {
		if c == rc {
			return true
		}
	}
	return false
}

// ModAction identifies a moderation action with a customizable announcement
type ModAction string

const (
	ModActionBan     ModAction = "ban"
	ModActionMute    ModAction = "mute"
	ModActionWarn    ModAction = "warn"
	ModActionTimeout ModAction = "timeout"
)

// ValidModAction reports whether the action supports custom messages
func ValidModAction(a ModAction) bool {
	switch a {
	case ModActionBan, ModActionMute, ModActionWarn, ModActionTimeout:
		return true
	}
	return false
}

// AutomodSettings holds per-guild automatic moderation configuration
type AutomodSettings struct {
	Enabled         bool `json:"enabled"`
	FilterProfanity bool `json:"filter_profanity"`
	MaxMentions     int  `json:"max_mentions"`
	MaxEmojis       int  `json:"max_emojis"`
	AntiSpam        bool `json:"anti_spam"`
}

// GuildSettings holds per-guild configuration. One record exists per guild,
// created lazily on first access with the defaults from NewGuildSettings.
type GuildSettings struct {
	GuildID            string              `json:"guild_id"`
	Prefix             string              `json:"prefix"`
	WelcomeChannel     string              `json:"welcome_channel"` // empty disables welcome messages
	WelcomeMessage     string              `json:"welcome_message"`
	WelcomeDMEnabled   bool                `json:"welcome_dm_enabled"`
	WelcomeDMMessage   string              `json:"welcome_dm_message"`
	RestrictedChannels map[Category]string `json:"restricted_channels"` // absent/empty means unrestricted
	ModerationLogs     string              `json:"moderation_logs"`     // empty disables mod logs
	CustomMessages     map[ModAction]string `json:"custom_messages"`
	Automod            AutomodSettings     `json:"automod"`
}

// Default welcome templates. Placeholders: {user}, {server}, {memberCount}.
const (
	DefaultWelcomeMessage   = "Welcome to the server, {user}!"
	DefaultWelcomeDMMessage = "Welcome to {server}, {user}! We hope you enjoy your stay."
)

// NewGuildSettings returns the default settings record for a guild
func NewGuildSettings(guildID, prefix string) *GuildSettings {
	return &GuildSettings{
		GuildID:            guildID,
		Prefix:             prefix,
		WelcomeMessage:     DefaultWelcomeMessage,
		WelcomeDMMessage:   DefaultWelcomeDMMessage,
		RestrictedChannels: make(map[Category]string),
		CustomMessages:     make(map[ModAction]string),
		Automod: AutomodSettings{
			MaxMentions: 5,
			MaxEmojis:   10,
		},
	}
}
