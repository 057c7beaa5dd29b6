package wagers

import (
	"context"
	"fmt"
	"strings"

	"economy/bot/common"
	"economy/models"
	"economy/service"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ParseOdds reads the three multipliers as exact decimals
func ParseOdds(local, draw, away string) (models.Odds, error) {
	values := make([]decimal.Decimal, 0, 3)
	for _, raw := range []string{local, draw, away} {
		d, err := decimal.NewFromString(strings.TrimSpace(strings.Replace(raw, ",", ".", 1)))
		if err != nil {
			return models.Odds{}, fmt.Errorf("invalid odds %q: %w", raw, service.ErrInvalidArgument)
		}
		values = append(values, d)
	}
	return models.Odds{Local: values[0], Draw: values[1], Away: values[2]}, nil
}

func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) error {
	ctx := context.Background()

	actor, err := common.BuildActor(i, f.settings.AdminDiscordIDs)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return err
	}

	odds, err := ParseOdds(opts.String("local"), opts.String("draw"), opts.String("away"))
	if err != nil {
		common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
		return err
	}

	event, err := f.marketService.CreateEvent(ctx, actor, opts.String("name"), odds)
	if err != nil {
		log.WithFields(log.Fields{
			"actor": actor.DiscordID,
			"error": err,
		}).Warn("Failed to create wager event")
		common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
		return err
	}

	common.LogRespondError("bet create", common.RespondWithEmbed(s, i, BuildEventEmbed(event, f.settings.CurrencyName), false))
	return nil
}

func (f *Feature) handlePlace(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) error {
	ctx := context.Background()

	discordID, username, err := common.InvokerID(i)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return err
	}

	outcome, ok := models.ParseOutcome(opts.String("outcome"))
	if !ok {
		err := fmt.Errorf("unknown outcome %q: %w", opts.String("outcome"), service.ErrInvalidArgument)
		common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
		return err
	}
	amount, _ := opts.Int("amount")

	result, err := f.marketService.PlaceStake(ctx, opts.String("id"), outcome, discordID, username, amount)
	if err != nil {
		log.WithFields(log.Fields{
			"eventID":   opts.String("id"),
			"discordID": discordID,
			"amount":    amount,
			"error":     err,
		}).Debug("Stake rejected")
		common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
		return err
	}

	message := fmt.Sprintf("Bet **%s** on **%s** in *%s*. Potential payout: **%s**. New balance: **%s**",
		common.FormatAmount(result.Amount, f.settings.CurrencyName),
		OutcomeLabel(result.Outcome),
		result.EventName,
		common.FormatAmount(result.PotentialPayout, f.settings.CurrencyName),
		common.FormatAmount(result.NewBalance, f.settings.CurrencyName))
	common.LogRespondError("bet place", common.RespondWithSuccess(s, i, message))
	return nil
}

func (f *Feature) handleResolve(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) error {
	ctx := context.Background()

	actor, err := common.BuildActor(i, f.settings.AdminDiscordIDs)
	if err != nil {
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return err
	}

	outcome, ok := models.ParseOutcome(opts.String("outcome"))
	if !ok {
		err := fmt.Errorf("unknown outcome %q: %w", opts.String("outcome"), service.ErrInvalidArgument)
		common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
		return err
	}

	resolution, err := f.marketService.ResolveEvent(ctx, actor, opts.String("id"), outcome)
	if err != nil {
		log.WithFields(log.Fields{
			"eventID": opts.String("id"),
			"actor":   actor.DiscordID,
			"error":   err,
		}).Warn("Failed to resolve wager event")
		common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
		return err
	}

	common.LogRespondError("resolvebet", common.RespondWithEmbed(s, i, BuildResolutionEmbed(resolution, f.settings.CurrencyName), false))
	return nil
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	list, err := f.marketService.ListEvents(ctx)
	if err != nil {
		log.Debugf("Listing wager events failed: %v", err)
		common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
		return err
	}

	common.LogRespondError("bets", common.RespondWithEmbed(s, i, BuildEventListEmbed(list, f.settings.CurrencyName), false))
	return nil
}
