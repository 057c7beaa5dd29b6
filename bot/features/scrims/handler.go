package scrims

import (
	"context"
	"fmt"

	"economy/bot/common"
	"economy/models"
	"economy/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) respondFailure(s *discordgo.Session, i *discordgo.InteractionCreate, action string, err error) error {
	log.WithFields(log.Fields{
		"action": action,
		"error":  err,
	}).Debug("Scrim command rejected")
	common.RespondWithError(s, i, common.UserMessage(err, f.settings.CurrencyName))
	return err
}

func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) error {
	ctx := context.Background()

	creatorID, creatorName, err := common.InvokerID(i)
	if err != nil {
		return f.respondFailure(s, i, "create", err)
	}

	players, _ := opts.Int("players")
	amount, _ := opts.Int("amount")

	var channelID int64
	if i.ChannelID != "" {
		channelID, err = common.ParseSnowflake(i.ChannelID)
		if err != nil {
			return f.respondFailure(s, i, "create", err)
		}
	}

	scrim, err := f.scrimService.CreateScrim(ctx, creatorID, creatorName, int(players), amount, channelID)
	if err != nil {
		return f.respondFailure(s, i, "create", err)
	}

	common.LogRespondError("scrim create", common.RespondWithEmbed(s, i, BuildScrimEmbed(scrim, f.settings.CurrencyName), false))
	return nil
}

func (f *Feature) handleJoin(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) error {
	ctx := context.Background()

	discordID, username, err := common.InvokerID(i)
	if err != nil {
		return f.respondFailure(s, i, "join", err)
	}

	team, ok := models.ParseTeam(opts.String("team"))
	if !ok {
		return f.respondFailure(s, i, "join", fmt.Errorf("unknown team %q: %w", opts.String("team"), service.ErrInvalidArgument))
	}

	result, err := f.scrimService.JoinScrim(ctx, opts.String("id"), discordID, username, team)
	if err != nil {
		return f.respondFailure(s, i, "join", err)
	}

	common.LogRespondError("scrim join", common.RespondWithEmbed(s, i, BuildScrimEmbed(result.Scrim, f.settings.CurrencyName), false))
	return nil
}

func (f *Feature) handleResolve(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) error {
	ctx := context.Background()

	actor, err := common.BuildActor(i, f.settings.AdminDiscordIDs)
	if err != nil {
		return f.respondFailure(s, i, "resolve", err)
	}

	team, ok := models.ParseTeam(opts.String("team"))
	if !ok {
		return f.respondFailure(s, i, "resolve", fmt.Errorf("unknown team %q: %w", opts.String("team"), service.ErrInvalidArgument))
	}

	resolution, err := f.scrimService.ResolveScrim(ctx, actor, opts.String("id"), team)
	if err != nil {
		return f.respondFailure(s, i, "resolve", err)
	}

	common.LogRespondError("scrim resolve", common.RespondWithEmbed(s, i, BuildResolutionEmbed(resolution, f.settings.CurrencyName), false))
	return nil
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	list, err := f.scrimService.ListScrims(ctx)
	if err != nil {
		return f.respondFailure(s, i, "list", err)
	}

	common.LogRespondError("scrims", common.RespondWithEmbed(s, i, BuildScrimListEmbed(list, f.settings.CurrencyName), false))
	return nil
}
