package claim

import (
	"context"
	"fmt"
	"time"

	"economy/bot/common"
	"economy/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

type Feature struct {
	claimService service.ClaimService
	settings     common.Settings
	now          func() time.Time
}

func New(claimService service.ClaimService, settings common.Settings) *Feature {
	return &Feature{
		claimService: claimService,
		settings:     settings,
		now:          time.Now,
	}
}

// HandleCommand grants the periodic allowance to the invoking user
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	discordID, username, err := common.InvokerID(i)
	if err != nil {
		log.Errorf("Error reading claim invoker: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return err
	}

	result, err := f.claimService.Claim(ctx, discordID, username, f.now())
	if err != nil {
		log.WithFields(log.Fields{
			"discordID": discordID,
			"error":     err,
		}).Debug("Claim rejected")
		common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
		return err
	}

	message := fmt.Sprintf("You claimed **%s**. New balance: **%s**. Next claim %s",
		common.FormatAmount(result.Amount, f.settings.CurrencyName),
		common.FormatAmount(result.NewBalance, f.settings.CurrencyName),
		common.FormatDiscordTimestamp(result.NextClaimAt, "R"))
	common.LogRespondError("claim", common.RespondWithSuccess(s, i, message))
	return nil
}
