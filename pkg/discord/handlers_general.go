package discord

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/darkangel/imperialbot/pkg/commands"
	"github.com/darkangel/imperialbot/pkg/entities"
)

func (b *Bot) handlePing(ctx *commands.Context) error {
	_, err := b.session.ChannelMessageSend(ctx.ChannelID, "🏓 Pong!")
	return err
}

func (b *Bot) handleInfo(ctx *commands.Context) error {
	st := b.status.Get()

	embed := NewEmbed(entities.CategoryGeneral, "🏛️ Imperial Bot", "A prefix-driven economy and moderation bot.")
	embed.Fields = []*discordgo.MessageEmbedField{
		field("Servers", fmt.Sprintf("%d", st.Servers)),
		field("Commands served", fmt.Sprintf("%d", st.Commands)),
		field("Uptime", time.Since(b.startedAt).Round(time.Second).String()),
		field("Go version", runtime.Version()),
		field("Prefix", fmt.Sprintf("`%s`", ctx.Prefix)),
	}

	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

// handleDev is hidden and only useful to the developer: it dumps runtime
// numbers for debugging
func (b *Bot) handleDev(ctx *commands.Context) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	embed := NewEmbed(entities.CategoryGeneral, "🔧 Runtime", "")
	embed.Fields = []*discordgo.MessageEmbedField{
		field("Goroutines", fmt.Sprintf("%d", runtime.NumGoroutine())),
		field("Heap", fmt.Sprintf("%.1f MiB", float64(m.HeapAlloc)/1024/1024)),
		field("GC cycles", fmt.Sprintf("%d", m.NumGC)),
	}

	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (b *Bot) handleHelp(ctx *commands.Context) error {
	// Detailed help for a single command
	if len(ctx.Args) > 0 {
		cmd, err := b.registry.Resolve(strings.ToLower(ctx.Args[0]))
		if err != nil || cmd.Hidden {
			_, sendErr := b.session.ChannelMessageSendEmbed(ctx.ChannelID,
				ErrorEmbed(fmt.Sprintf("No command named `%s`.", ctx.Args[0])))
			return sendErr
		}

		embed := NewEmbed(cmd.Category, ctx.Prefix+cmd.Name, cmd.Description)
		if cmd.Usage != "" {
			embed.Fields = append(embed.Fields, field("Usage", "`"+ctx.Prefix+cmd.Usage+"`"))
		}
		if len(cmd.Aliases) > 0 {
			embed.Fields = append(embed.Fields, field("Aliases", strings.Join(cmd.Aliases, ", ")))
		}
		if cmd.Cooldown > 0 {
			embed.Fields = append(embed.Fields, field("Cooldown", cmd.Cooldown.String()))
		}
		_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
		return err
	}

	embed := NewEmbed(entities.CategoryGeneral, "📖 Commands",
		fmt.Sprintf("Use `%shelp <command>` for details.", ctx.Prefix))
	for _, category := range b.registry.Categories() {
		var names []string
		for _, cmd := range b.registry.ListByCategory(category) {
			names = append(names, "`"+cmd.Name+"`")
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  titleCase(string(category)),
			Value: strings.Join(names, " "),
		})
	}

	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}
