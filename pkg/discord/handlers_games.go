package discord

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/darkangel/imperialbot/internal/types"
	"github.com/darkangel/imperialbot/pkg/commands"
	"github.com/darkangel/imperialbot/pkg/entities"
	"github.com/darkangel/imperialbot/pkg/games"
	"github.com/darkangel/imperialbot/pkg/services/economy"
)

const (
	triviaReward = 100
	triviaWindow = 20 * time.Second
	minSlotsBet  = 10
)

var optionEmojis = []string{"🇦", "🇧", "🇨", "🇩"}

func (b *Bot) handleCoinflip(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "coinflip <heads|tails> [bet]")
	}

	guess := games.CoinSide(strings.ToLower(ctx.Args[0]))
	if guess != games.Heads && guess != games.Tails {
		return types.NewCommandError(types.ErrInvalidArgument, "Call `heads` or `tails`.")
	}

	var bet int64
	if len(ctx.Args) > 1 {
		var err error
		if bet, err = parseAmount(ctx.Args[1]); err != nil {
			return err
		}
		record, _, err := b.economy.GetOrCreateUser(ctx.Ctx, ctx.GuildID, ctx.UserID)
		if err != nil {
			return types.WrapError(types.ErrDatabaseError, "failed to load balance", err)
		}
		if record.Balance < bet {
			return types.NewCommandError(types.ErrInsufficientFunds, "You don't have that many coins.")
		}
	}

	side := games.Flip(b.rng)
	won := side == guess

	description := fmt.Sprintf("The coin landed on **%s**!", side)
	if bet > 0 {
		delta := bet
		if !won {
			delta = -bet
		}
		record, err := b.economy.AdjustBalance(ctx.Ctx, ctx.GuildID, ctx.UserID, delta)
		if err != nil {
			if errors.Is(err, economy.ErrInsufficientFunds) {
				return types.NewCommandError(types.ErrInsufficientFunds, "You don't have that many coins.")
			}
			return types.WrapError(types.ErrDatabaseError, "failed to settle the bet", err)
		}
		if won {
			description += fmt.Sprintf(" You won **%d coins**! Wallet: %d.", bet, record.Balance)
		} else {
			description += fmt.Sprintf(" You lost **%d coins**. Wallet: %d.", bet, record.Balance)
		}
	} else if won {
		description += " Nice call!"
	}

	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, NewEmbed(entities.CategoryGames, "🪙 Coinflip", description))
	return err
}

func (b *Bot) handleSlots(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "slots <bet>")
	}

	bet, err := parseAmount(ctx.Args[0])
	if err != nil {
		return err
	}
	if bet < minSlotsBet {
		return types.NewCommandError(types.ErrInvalidArgument,
			fmt.Sprintf("Minimum bet is %d coins.", minSlotsBet))
	}

	record, _, err := b.economy.GetOrCreateUser(ctx.Ctx, ctx.GuildID, ctx.UserID)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to load balance", err)
	}
	if record.Balance < bet {
		return types.NewCommandError(types.ErrInsufficientFunds, "You don't have that many coins.")
	}

	result := games.Spin(b.rng)
	net := result.Payout(bet) - bet

	record, err = b.economy.AdjustBalance(ctx.Ctx, ctx.GuildID, ctx.UserID, net)
	if err != nil {
		if errors.Is(err, economy.ErrInsufficientFunds) {
			return types.NewCommandError(types.ErrInsufficientFunds, "You don't have that many coins.")
		}
		return types.WrapError(types.ErrDatabaseError, "failed to settle the bet", err)
	}

	reels := strings.Join(result.Reels[:], " | ")
	var description string
	if result.Win() {
		description = fmt.Sprintf("**[ %s ]**\n\nYou won **%d coins** (×%d)! Wallet: %d.",
			reels, result.Payout(bet), result.Multiplier, record.Balance)
	} else {
		description = fmt.Sprintf("**[ %s ]**\n\nNo luck — you lost %d coins. Wallet: %d.",
			reels, bet, record.Balance)
	}

	_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, NewEmbed(entities.CategoryGames, "🎰 Slots", description))
	return err
}

func (b *Bot) handleTrivia(ctx *commands.Context) error {
	question, err := b.trivia.Fetch(ctx.Ctx)
	if err != nil {
		return types.WrapError(types.ErrExternalError, "Couldn't fetch a trivia question right now. Try again later.", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**\n\n", question.Prompt)
	for i, option := range question.Options {
		fmt.Fprintf(&sb, "%s %s\n", optionEmojis[i], option)
	}
	fmt.Fprintf(&sb, "\nReact within %d seconds to answer! (%d coins for a correct answer)",
		int(triviaWindow.Seconds()), triviaReward)

	embed := NewEmbed(entities.CategoryGames, "🧠 Trivia: "+question.Category, sb.String())
	msg, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	if err != nil {
		return err
	}

	for i := range question.Options {
		if err := b.session.MessageReactionAdd(ctx.ChannelID, msg.ID, optionEmojis[i]); err != nil {
			b.logger.Warn("failed to add trivia reaction: %v", err)
		}
	}

	answer := b.awaitReaction(msg.ID, ctx.UserID, triviaWindow)

	// Always produce a terminal reply, reveal included
	correctEmoji := optionEmojis[question.CorrectIndex]
	switch {
	case answer == "":
		_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, NewEmbed(entities.CategoryGames, "⏰ Time's up!",
			fmt.Sprintf("The answer was %s **%s**.", correctEmoji, question.Correct())))
	case answer == correctEmoji:
		record, adjErr := b.economy.AdjustBalance(ctx.Ctx, ctx.GuildID, ctx.UserID, triviaReward)
		if adjErr != nil {
			return types.WrapError(types.ErrDatabaseError, "failed to pay trivia reward", adjErr)
		}
		_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, SuccessEmbed("✅ Correct!",
			fmt.Sprintf("**%s** is right! You earned %d coins. Wallet: %d.", question.Correct(), triviaReward, record.Balance)))
	default:
		_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, NewEmbed(entities.CategoryGames, "❌ Wrong!",
			fmt.Sprintf("The answer was %s **%s**.", correctEmoji, question.Correct())))
	}
	return err
}

// awaitReaction blocks until the user reacts to the message with one of the
// option emojis or the window elapses. Returns the emoji, or "" on timeout.
func (b *Bot) awaitReaction(messageID, userID string, window time.Duration) string {
	answered := make(chan string, 1)

	remove := b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
		if r.MessageID != messageID || r.UserID != userID {
			return
		}
		for _, emoji := range optionEmojis {
			if r.Emoji.Name == emoji {
				select {
				case answered <- emoji:
				default:
				}
				return
			}
		}
	})
	if remove != nil {
		defer remove()
	}

	select {
	case emoji := <-answered:
		return emoji
	case <-time.After(window):
		return ""
	}
}
