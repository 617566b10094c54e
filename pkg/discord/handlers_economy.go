package discord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/darkangel/imperialbot/internal/types"
	"github.com/darkangel/imperialbot/pkg/commands"
	"github.com/darkangel/imperialbot/pkg/entities"
	"github.com/darkangel/imperialbot/pkg/services/economy"
)

func (b *Bot) handleBalance(ctx *commands.Context) error {
	targetID := ctx.UserID
	if len(ctx.Args) > 0 {
		if id, ok := parseMention(ctx.Args[0]); ok {
			targetID = id
		}
	}

	record, _, err := b.economy.GetOrCreateUser(ctx.Ctx, ctx.GuildID, targetID)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to load balance", err)
	}

	embed := NewEmbed(entities.CategoryEconomy, "💰 Balance", fmt.Sprintf("<@%s>'s coins", targetID))
	embed.Fields = []*discordgo.MessageEmbedField{
		field("Wallet", fmt.Sprintf("%d coins", record.Balance)),
		field("Bank", fmt.Sprintf("%d coins", record.Bank)),
	}

	_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleDaily(ctx *commands.Context) error {
	result, err := b.economy.Daily(ctx.Ctx, ctx.GuildID, ctx.UserID)
	if err != nil {
		if errors.Is(err, economy.ErrDailyClaimed) {
			return types.NewCommandError(
				types.ErrOnCooldown,
				fmt.Sprintf("You already claimed today's reward. Come back in %s.", formatDuration(result.NextIn)),
			)
		}
		return types.WrapError(types.ErrDatabaseError, "failed to claim daily reward", err)
	}

	embed := NewEmbed(entities.CategoryEconomy, "🎁 Daily Reward",
		fmt.Sprintf("You claimed **%d coins**! Your wallet now holds %d coins.", result.Reward, result.Record.Balance))
	_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleWork(ctx *commands.Context) error {
	result, err := b.economy.Work(ctx.Ctx, ctx.GuildID, ctx.UserID)
	if err != nil {
		if errors.Is(err, economy.ErrWorkCooldown) {
			return types.NewCommandError(
				types.ErrOnCooldown,
				fmt.Sprintf("You're still resting. You can work again in %s.", formatDuration(result.NextIn)),
			)
		}
		return types.WrapError(types.ErrDatabaseError, "failed to work", err)
	}

	story := strings.ReplaceAll(result.Job.Message, "{amount}", strconv.FormatInt(result.Earned, 10))
	embed := NewEmbed(entities.CategoryEconomy, fmt.Sprintf("💼 %s", result.Job.Title), story)
	embed.Fields = []*discordgo.MessageEmbedField{
		field("Wallet", fmt.Sprintf("%d coins", result.Record.Balance)),
	}
	_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleShop(ctx *commands.Context) error {
	var sb strings.Builder
	for _, item := range b.economy.Catalog() {
		fmt.Fprintf(&sb, "%s **%s** — %d coins\n%s\n\n", item.Emoji, item.Name, item.Price, item.Description)
	}

	embed := NewEmbed(entities.CategoryEconomy, "🏪 Imperial Shop", sb.String())
	embed.Footer.Text = fmt.Sprintf("Buy with %sbuy <item> [quantity]", ctx.Prefix)
	_, err := b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleBuy(ctx *commands.Context) error {
	if len(ctx.Args) == 0 {
		return usageError(ctx.Prefix, "buy <item> [quantity]")
	}

	quantity := 1
	itemArgs := ctx.Args
	if len(ctx.Args) > 1 {
		if q, err := strconv.Atoi(ctx.Args[len(ctx.Args)-1]); err == nil {
			quantity = q
			itemArgs = ctx.Args[:len(ctx.Args)-1]
		}
	}
	itemName := strings.Join(itemArgs, " ")

	record, item, err := b.economy.Purchase(ctx.Ctx, ctx.GuildID, ctx.UserID, itemName, quantity)
	if err != nil {
		switch {
		case errors.Is(err, economy.ErrItemNotFound):
			return types.NewCommandError(types.ErrInvalidArgument,
				fmt.Sprintf("There's no **%s** in the shop. Check `%sshop`.", itemName, ctx.Prefix))
		case errors.Is(err, economy.ErrInsufficientFunds):
			return types.NewCommandError(types.ErrInsufficientFunds, "You can't afford that.")
		case errors.Is(err, economy.ErrInvalidAmount):
			return types.NewCommandError(types.ErrInvalidArgument, "Quantity must be a positive number.")
		}
		return types.WrapError(types.ErrDatabaseError, "failed to complete purchase", err)
	}

	embed := SuccessEmbed("🛒 Purchase complete",
		fmt.Sprintf("You bought %d× %s **%s** for %d coins. Wallet: %d coins.",
			quantity, item.Emoji, item.Name, item.Price*int64(quantity), record.Balance))
	_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleInventory(ctx *commands.Context) error {
	record, _, err := b.economy.GetOrCreateUser(ctx.Ctx, ctx.GuildID, ctx.UserID)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to load inventory", err)
	}

	if len(record.Inventory) == 0 {
		embed := NewEmbed(entities.CategoryEconomy, "🎒 Inventory",
			fmt.Sprintf("Your inventory is empty. Visit the `%sshop`!", ctx.Prefix))
		_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
		return err
	}

	var sb strings.Builder
	for _, item := range record.Inventory {
		fmt.Fprintf(&sb, "**%s** ×%d\n", item.Name, item.Quantity)
	}
	embed := NewEmbed(entities.CategoryEconomy, "🎒 Inventory", sb.String())
	_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}

func (b *Bot) handleTransfer(ctx *commands.Context) error {
	if len(ctx.Args) < 2 {
		return usageError(ctx.Prefix, "transfer <@user> <amount>")
	}

	targetID, ok := parseMention(ctx.Args[0])
	if !ok {
		return types.NewCommandError(types.ErrInvalidArgument, "Mention the user you want to pay.")
	}

	amount, err := parseAmount(ctx.Args[1])
	if err != nil {
		return err
	}

	balance, err := b.economy.Transfer(ctx.Ctx, ctx.GuildID, ctx.UserID, targetID, amount)
	if err != nil {
		switch {
		case errors.Is(err, economy.ErrSelfTransfer):
			return types.NewCommandError(types.ErrInvalidArgument, "You can't pay yourself.")
		case errors.Is(err, economy.ErrInsufficientFunds):
			return types.NewCommandError(types.ErrInsufficientFunds, "You don't have that many coins.")
		case errors.Is(err, economy.ErrInvalidAmount):
			return types.NewCommandError(types.ErrInvalidArgument, "Amount must be a positive number.")
		}
		return types.WrapError(types.ErrDatabaseError, "failed to transfer coins", err)
	}

	embed := SuccessEmbed("💸 Transfer complete",
		fmt.Sprintf("Sent **%d coins** to <@%s>. Your wallet: %d coins.", amount, targetID, balance))
	_, err = b.session.ChannelMessageSendEmbed(ctx.ChannelID, embed)
	return err
}
