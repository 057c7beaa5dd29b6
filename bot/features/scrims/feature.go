package scrims

import (
	"economy/bot/common"
	"economy/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	scrimService service.ScrimService
	settings     common.Settings
}

func New(scrimService service.ScrimService, settings common.Settings) *Feature {
	return &Feature{
		scrimService: scrimService,
		settings:     settings,
	}
}

// HandleCommand dispatches scrim and scrims
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if data.Name == "scrims" {
		return f.handleList(s, i)
	}

	sub, opts := common.Subcommand(data)
	switch sub {
	case "create":
		return f.handleCreate(s, i, opts)
	case "join":
		return f.handleJoin(s, i, opts)
	case "resolve":
		return f.handleResolve(s, i, opts)
	}
	return nil
}
