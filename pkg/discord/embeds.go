package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/darkangel/imperialbot/pkg/entities"
)

// Embed colors per command category
const (
	ColorEconomy    = 0xF1C40F // gold
	ColorGames      = 0x9B59B6 // purple
	ColorFun        = 0xE91E63 // pink
	ColorGeneral    = 0x3498DB // blue
	ColorModeration = 0xE74C3C // red
	ColorAdmin      = 0x2C3E50 // dark slate
	ColorSuccess    = 0x2ECC71 // green
	ColorError      = 0xE74C3C // red
)

var categoryColors = map[entities.Category]int{
	entities.CategoryEconomy:    ColorEconomy,
	entities.CategoryGames:      ColorGames,
	entities.CategoryFun:        ColorFun,
	entities.CategoryGeneral:    ColorGeneral,
	entities.CategoryModeration: ColorModeration,
	entities.CategoryAdmin:      ColorAdmin,
}

// CategoryColor returns the embed color for a category
func CategoryColor(c entities.Category) int {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return ColorGeneral
}

// NewEmbed builds a category-colored embed with the standard footer
func NewEmbed(category entities.Category, title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       CategoryColor(category),
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Imperial Bot",
		},
	}
}

// SuccessEmbed builds a green confirmation embed
func SuccessEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       ColorSuccess,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// ErrorEmbed builds a red error embed
func ErrorEmbed(description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "❌ Error",
		Description: description,
		Color:       ColorError,
	}
}

// field is a shorthand for an inline embed field
func field(name, value string) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: true}
}
