package duels

import (
	"economy/bot/common"
	"economy/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	duelService service.DuelService
	settings    common.Settings
}

func New(duelService service.DuelService, settings common.Settings) *Feature {
	return &Feature{
		duelService: duelService,
		settings:    settings,
	}
}

// HandleCommand dispatches the duel subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	sub, opts := common.Subcommand(i.ApplicationCommandData())
	switch sub {
	case "create":
		return f.handleCreate(s, i, opts)
	case "accept":
		return f.handleAccept(s, i, opts)
	case "resolve":
		return f.handleResolve(s, i, opts)
	case "cancel":
		return f.handleCancel(s, i, opts)
	}
	return nil
}
