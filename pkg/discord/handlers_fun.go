package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/darkangel/imperialbot/internal/types"
	"github.com/darkangel/imperialbot/pkg/commands"
	"github.com/darkangel/imperialbot/pkg/entities"
)

var eightBallAnswers = []string{
	"It is certain.",
	"Without a doubt.",
	"Yes, definitely.",
	"You may rely on it.",
	"Most likely.",
	"Outlook good.",
	"Signs point to yes.",
	"Reply hazy, try again.",
	"Ask again later.",
	"Better not tell you now.",
	"Cannot predict now.",
	"Don't count on it.",
	"My reply is no.",
	"My sources say no.",
	"Outlook not so good.",
	"Very doubtful.",
}

func (b *Bot) handleEightBall(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "8ball <question>")
	}

	answer := eightBallAnswers[b.rng.Intn(len(eightBallAnswers))]
	embed := NewEmbed(entities.CategoryFun, "🎱 Magic 8-Ball", fmt.Sprintf("🗨️ %s", answer))
	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleMeme(ctx *commands.Context) error {
	subreddit := ""
	if len(ctx.Args) > 0 {
		subreddit = ctx.Args[0]
	}

	m, err := b.meme.Fetch(ctx.Ctx, subreddit)
	if err != nil {
		return types.WrapError(types.ErrExternalError, "Couldn't fetch a meme right now. Try again later.", err)
	}

	embed := NewEmbed(entities.CategoryFun, m.Title, "")
	embed.Image = &discordgo.MessageEmbedImage{URL: m.URL}
	embed.Footer.Text = fmt.Sprintf("r/%s • 👍 %d", m.Subreddit, m.Ups)
	embed.URL = m.PostLink

	_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}
