package transfer

import (
	"context"
	"fmt"

	"economy/bot/common"
	"economy/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handlePay(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	_, opts := common.Subcommand(i.ApplicationCommandData())
	recipient := opts.User("user")
	amount, _ := opts.Int("amount")

	if recipient == nil {
		common.RespondWithError(s, i, "Invalid recipient user.")
		return fmt.Errorf("missing recipient: %w", service.ErrInvalidArgument)
	}
	if recipient.Bot {
		common.RespondWithError(s, i, "You cannot pay a bot.")
		return fmt.Errorf("bot recipient: %w", service.ErrInvalidArgument)
	}

	fromID, fromName, err := common.InvokerID(i)
	if err != nil {
		log.Errorf("Error reading sender: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return err
	}

	toID, err := common.ParseSnowflake(recipient.ID)
	if err != nil {
		log.Errorf("Error parsing recipient Discord ID %s: %v", recipient.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return err
	}

	result, err := f.transferService.Transfer(ctx, fromID, fromName, toID, recipient.Username, amount)
	if err != nil {
		log.WithFields(log.Fields{
			"from":   fromID,
			"to":     toID,
			"amount": amount,
			"error":  err,
		}).Warn("Transfer failed")
		common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
		return err
	}

	message := fmt.Sprintf("Transferred **%s** to %s. Your new balance: **%s**",
		common.FormatAmount(result.Amount, f.settings.CurrencyName),
		common.Mention(result.ToDiscordID),
		common.FormatAmount(result.FromNewBalance, f.settings.CurrencyName))
	common.LogRespondError("pay", common.RespondWithSuccess(s, i, message))
	return nil
}
