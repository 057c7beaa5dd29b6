package wagers

import (
	"economy/bot/common"
	"economy/service"

	"github.com/bwmarrin/discordgo"
)

// Feature serves the fixed-odds betting market
type Feature struct {
	marketService service.WagerMarketService
	settings      common.Settings
}

func New(marketService service.WagerMarketService, settings common.Settings) *Feature {
	return &Feature{
		marketService: marketService,
		settings:      settings,
	}
}

// HandleCommand dispatches bet, resolvebet and bets
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "bet":
		sub, opts := common.Subcommand(data)
		switch sub {
		case "create":
			return f.handleCreate(s, i, opts)
		case "place":
			return f.handlePlace(s, i, opts)
		}
	case "resolvebet":
		_, opts := common.Subcommand(data)
		return f.handleResolve(s, i, opts)
	case "bets":
		return f.handleList(s, i)
	}
	return nil
}
