package account

import (
	"context"
	"fmt"

	"economy/bot/common"
	"economy/models"
	"economy/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	_, opts := common.Subcommand(i.ApplicationCommandData())

	target := opts.User("user")
	if target == nil {
		target = common.Invoker(i)
	}

	discordID, err := common.ParseSnowflake(target.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", target.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return err
	}

	balance, err := f.accountService.GetBalance(ctx, discordID)
	if err != nil {
		log.Debugf("Balance lookup for %d failed: %v", discordID, err)
		common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
		return err
	}

	displayName := common.GetDisplayName(s, i.GuildID, target.ID)
	message := fmt.Sprintf("💰 %s has **%s**", displayName, common.FormatAmount(balance, f.settings.CurrencyName))
	common.LogRespondError("balance", common.RespondWithMessage(s, i, message, false))
	return nil
}

// adjustment is an admin balance operation on a target user
type adjustment func(ctx context.Context, actor models.Actor, discordID int64, username string, amount int64) (*models.BalanceUpdate, error)

func (f *Feature) handleAdjustment(s *discordgo.Session, i *discordgo.InteractionCreate, command string, apply adjustment, verb string) error {
	ctx := context.Background()

	actor, err := common.BuildActor(i, f.settings.AdminDiscordIDs)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return err
	}

	_, opts := common.Subcommand(i.ApplicationCommandData())
	target := opts.User("user")
	amount, _ := opts.Int("amount")
	if target == nil {
		common.RespondWithError(s, i, "Please specify a user.")
		return fmt.Errorf("missing user: %w", service.ErrInvalidArgument)
	}

	targetID, err := common.ParseSnowflake(target.ID)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user specified.")
		return err
	}

	update, err := apply(ctx, actor, targetID, target.Username, amount)
	if err != nil {
		log.WithFields(log.Fields{
			"command": command,
			"actor":   actor.DiscordID,
			"target":  targetID,
			"amount":  amount,
			"error":   err,
		}).Warn("Balance adjustment failed")
		common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
		return err
	}

	message := fmt.Sprintf("%s **%s** %s %s. New balance: **%s**",
		verb,
		common.FormatAmount(amount, f.settings.CurrencyName),
		directionFor(command),
		common.Mention(targetID),
		common.FormatAmount(update.NewBalance, f.settings.CurrencyName))
	common.LogRespondError(command, common.RespondWithSuccess(s, i, message))
	return nil
}

func directionFor(command string) string {
	if command == "take" {
		return "from"
	}
	return "to"
}

func (f *Feature) handleGive(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return f.handleAdjustment(s, i, "give", f.accountService.Give, "Gave")
}

func (f *Feature) handleTake(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return f.handleAdjustment(s, i, "take", f.accountService.Take, "Took")
}

func (f *Feature) handleSetBalance(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	actor, err := common.BuildActor(i, f.settings.AdminDiscordIDs)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return err
	}
	if !actor.Admin {
		common.RespondWithError(s, i, common.UserMessage(service.ErrUnauthorized, f.settings.CurrencyName))
		return service.ErrUnauthorized
	}

	_, opts := common.Subcommand(i.ApplicationCommandData())
	target := opts.User("user")
	amount, _ := opts.Int("amount")
	if target == nil {
		common.RespondWithError(s, i, "Please specify a user.")
		return fmt.Errorf("missing user: %w", service.ErrInvalidArgument)
	}

	targetID, err := common.ParseSnowflake(target.ID)
	if err != nil {
		common.RespondWithError(s, i, "Invalid user specified.")
		return err
	}

	update, err := f.accountService.SetBalance(ctx, targetID, target.Username, amount)
	if err != nil {
		log.Debugf("Set balance for %d failed: %v", targetID, err)
		common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
		return err
	}

	message := fmt.Sprintf("Balance of %s set to **%s** (was %s)",
		common.Mention(targetID),
		common.FormatAmount(update.NewBalance, f.settings.CurrencyName),
		common.FormatAmount(update.PreviousBalance, f.settings.CurrencyName))
	common.LogRespondError("setbalance", common.RespondWithSuccess(s, i, message))
	return nil
}

func (f *Feature) handleTop(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	entries, err := f.accountService.GetLeaderboard(ctx, service.DefaultLeaderboardSize)
	if err != nil {
		log.Debugf("Leaderboard lookup failed: %v", err)
		common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
		return err
	}

	embed := BuildLeaderboardEmbed(entries, f.settings.CurrencyName)
	common.LogRespondError("top", common.RespondWithEmbed(s, i, embed, false))
	return nil
}
