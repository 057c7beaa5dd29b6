package duels

import (
	"context"
	"fmt"

	"economy/bot/common"
	"economy/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) respondFailure(s *discordgo.Session, i *discordgo.InteractionCreate, action string, err error) error {
	log.WithFields(log.Fields{
		"action": action,
		"error":  err,
	}).Debug("Duel command rejected")
	common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
	return err
}

func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) error {
	ctx := context.Background()

	challengerID, challengerName, err := common.InvokerID(i)
	if err != nil {
		return f.respondFailure(s, i, "create", err)
	}

	target := opts.User("user")
	if target == nil {
		return f.respondFailure(s, i, "create", fmt.Errorf("missing opponent: %w", service.ErrInvalidArgument))
	}
	if target.Bot {
		return f.respondFailure(s, i, "create", fmt.Errorf("cannot duel a bot: %w", service.ErrInvalidArgument))
	}
	targetID, err := common.ParseSnowflake(target.ID)
	if err != nil {
		return f.respondFailure(s, i, "create", err)
	}
	amount, _ := opts.Int("amount")

	duel, err := f.duelService.CreateDuel(ctx, challengerID, challengerName, targetID, target.Username, amount)
	if err != nil {
		return f.respondFailure(s, i, "create", err)
	}

	message := fmt.Sprintf("⚔️ %s challenged %s to a duel for **%s**!\nAccept with `/duel accept id:%s`",
		common.Mention(duel.ChallengerDiscordID),
		common.Mention(duel.TargetDiscordID),
		common.FormatAmount(duel.Amount, f.settings.CurrencyName),
		duel.ID)
	common.LogRespondError("duel create", common.RespondWithMessage(s, i, message, false))
	return nil
}

func (f *Feature) handleAccept(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) error {
	ctx := context.Background()

	accepterID, _, err := common.InvokerID(i)
	if err != nil {
		return f.respondFailure(s, i, "accept", err)
	}

	duel, err := f.duelService.AcceptDuel(ctx, opts.String("id"), accepterID)
	if err != nil {
		return f.respondFailure(s, i, "accept", err)
	}

	message := fmt.Sprintf("%s accepted the duel against %s. Prize: **%s**. Waiting for an admin to resolve it.",
		common.Mention(duel.TargetDiscordID),
		common.Mention(duel.ChallengerDiscordID),
		common.FormatAmount(duel.Prize(), f.settings.CurrencyName))
	common.LogRespondError("duel accept", common.RespondWithSuccess(s, i, message))
	return nil
}

func (f *Feature) handleResolve(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) error {
	ctx := context.Background()

	actor, err := common.BuildActor(i, f.settings.AdminDiscordIDs)
	if err != nil {
		return f.respondFailure(s, i, "resolve", err)
	}

	resolution, err := f.duelService.ResolveDuel(ctx, actor, opts.String("id"))
	if err != nil {
		return f.respondFailure(s, i, "resolve", err)
	}

	message := fmt.Sprintf("🏆 %s won the duel against %s and takes **%s**!",
		common.Mention(resolution.WinnerDiscordID),
		common.Mention(resolution.LoserDiscordID),
		common.FormatAmount(resolution.Prize, f.settings.CurrencyName))
	common.LogRespondError("duel resolve", common.RespondWithMessage(s, i, message, false))
	return nil
}

func (f *Feature) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) error {
	ctx := context.Background()

	actorID, _, err := common.InvokerID(i)
	if err != nil {
		return f.respondFailure(s, i, "cancel", err)
	}

	duel, err := f.duelService.CancelDuel(ctx, opts.String("id"), actorID)
	if err != nil {
		return f.respondFailure(s, i, "cancel", err)
	}

	message := fmt.Sprintf("Duel cancelled. **%s** refunded to %s.",
		common.FormatAmount(duel.Amount, f.settings.CurrencyName),
		common.Mention(duel.ChallengerDiscordID))
	common.LogRespondError("duel cancel", common.RespondWithSuccess(s, i, message))
	return nil
}
